package dto

type WhitelistRequest struct {
	Sites []string `json:"sites"`
}

type WhitelistResponse struct {
	UserID    string   `json:"user_id"`
	Sites     []string `json:"sites"`
	UpdatedAt int64    `json:"updated_at"`
}
