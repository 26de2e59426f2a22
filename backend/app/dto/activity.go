package dto

type ActivityRequest struct {
	URL       string `json:"url"`
	Reason    string `json:"reason"`
	Timestamp int64  `json:"timestamp"`
}

type ActivityResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	URL       string `json:"url"`
	Reason    string `json:"reason"`
	Timestamp int64  `json:"timestamp"`
}
