package policy

// PolicySettings is the policy document the agent enforces. It mirrors the
// backend's settings response; the agent only ever reads it.
type PolicySettings struct {
	Enabled           bool            `json:"enabled"`
	AdBlocking        bool            `json:"ad_blocking"`
	TimeRestriction   TimeRestriction `json:"time_restriction"`
	BlockedCategories map[string]bool `json:"blocked_categories"`
	UpdatedAt         int64           `json:"updated_at"`
}

type TimeRestriction struct {
	Enabled   bool   `json:"enabled"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Defaults applied on first run, before any backend sync has happened.
func Defaults() PolicySettings {
	return PolicySettings{
		Enabled:    true,
		AdBlocking: true,
		TimeRestriction: TimeRestriction{
			Enabled:   false,
			StartTime: "21:00",
			EndTime:   "06:00",
		},
		BlockedCategories: map[string]bool{
			"adult":    true,
			"violence": true,
			"drugs":    true,
			"gambling": true,
		},
	}
}
