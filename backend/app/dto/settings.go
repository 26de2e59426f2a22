package dto

// TimeRestriction mirrors the agent's restriction window. Times are "HH:MM".
type TimeRestriction struct {
	Enabled   bool   `json:"enabled"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// SettingsRequest is the full policy document written by the dashboard.
// Writes always carry the whole document; there are no partial updates.
type SettingsRequest struct {
	Enabled           bool            `json:"enabled"`
	AdBlocking        bool            `json:"ad_blocking"`
	TimeRestriction   TimeRestriction `json:"time_restriction"`
	BlockedCategories map[string]bool `json:"blocked_categories"`
}

type SettingsResponse struct {
	UserID            string          `json:"user_id"`
	Enabled           bool            `json:"enabled"`
	AdBlocking        bool            `json:"ad_blocking"`
	TimeRestriction   TimeRestriction `json:"time_restriction"`
	BlockedCategories map[string]bool `json:"blocked_categories"`
	UpdatedAt         int64           `json:"updated_at"`
}
