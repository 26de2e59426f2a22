package models

import "time"

// UserSettings is the persisted policy document for one user. Categories is a
// JSON object of category name -> blocked flag, stored opaque so adding a
// category never needs a migration.
type UserSettings struct {
	ID               uint   `gorm:"primaryKey"`
	UserID           string `gorm:"size:191;uniqueIndex;not null"`
	Enabled          bool   `gorm:"default:true"`
	AdBlocking       bool   `gorm:"default:true"`
	TimeRestriction  bool   `gorm:"default:false"`
	RestrictionStart string `gorm:"size:5"` // "HH:MM"
	RestrictionEnd   string `gorm:"size:5"` // "HH:MM"
	Categories       string `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
