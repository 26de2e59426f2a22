package models

import "time"

// User is a dashboard parent or an enrolled agent device. PublicID is the
// stable identifier policy documents and activity logs are keyed by.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	PublicID     string `gorm:"uniqueIndex;size:191;not null"`
	Username     string `gorm:"uniqueIndex;size:191;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:32;not null;default:parent"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
