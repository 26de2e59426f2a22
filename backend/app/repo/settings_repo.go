package repo

import (
	"errors"

	"safesurf/backend/app/models"

	"gorm.io/gorm"
)

type SettingsRepository struct{ db *gorm.DB }

func NewSettingsRepository(db *gorm.DB) *SettingsRepository { return &SettingsRepository{db: db} }

// Get returns the settings document for userID, or nil when none exists yet.
func (r *SettingsRepository) Get(userID string) (*models.UserSettings, error) {
	var s models.UserSettings
	err := r.db.Where("user_id = ?", userID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert replaces the whole settings document for s.UserID.
func (r *SettingsRepository) Upsert(s *models.UserSettings) error {
	return r.db.Where("user_id = ?", s.UserID).
		Assign(map[string]any{
			"enabled":           s.Enabled,
			"ad_blocking":       s.AdBlocking,
			"time_restriction":  s.TimeRestriction,
			"restriction_start": s.RestrictionStart,
			"restriction_end":   s.RestrictionEnd,
			"categories":        s.Categories,
		}).
		FirstOrCreate(&models.UserSettings{UserID: s.UserID}).Error
}
