package db

import "time"

type Token struct {
	ID        uint   `gorm:"primaryKey"`
	Value     string `gorm:"size:8192"`
	CreatedAt time.Time
}

// CachedDocument mirrors one remote policy document (settings or whitelist)
// so the agent can enforce the last-known policy offline.
type CachedDocument struct {
	ID        uint   `gorm:"primaryKey"`
	Key       string `gorm:"uniqueIndex;size:64"`
	Value     string `gorm:"type:text"`
	FetchedAt time.Time
	UpdatedAt time.Time
}
