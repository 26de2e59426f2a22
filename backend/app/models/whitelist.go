package models

import "time"

// WhitelistEntry is one allowed domain for a user. Domains are stored
// normalized (lowercase, valid hostname) and unique per user; Position keeps
// the parent's ordering.
type WhitelistEntry struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"size:191;index:idx_whitelist_user_domain,unique;not null"`
	Domain    string `gorm:"size:255;index:idx_whitelist_user_domain,unique;not null"`
	Position  int    `gorm:"not null"`
	CreatedAt time.Time
}
