package models

import "time"

// ActivityLog is append-only: rows are created by the agent's block reports
// and never updated.
type ActivityLog struct {
	ID        string    `gorm:"primaryKey;size:191"`
	UserID    string    `gorm:"index;size:191;not null"`
	URL       string    `gorm:"type:text;not null"`
	Reason    string    `gorm:"size:64;not null"`
	Timestamp time.Time `gorm:"index"`
	CreatedAt time.Time
}
