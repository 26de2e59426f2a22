package repo

import (
	"safesurf/backend/app/models"

	"gorm.io/gorm"
)

type WhitelistRepository struct{ db *gorm.DB }

func NewWhitelistRepository(db *gorm.DB) *WhitelistRepository { return &WhitelistRepository{db: db} }

// List returns the user's domains in the order the parent saved them.
func (r *WhitelistRepository) List(userID string) ([]models.WhitelistEntry, error) {
	var entries []models.WhitelistEntry
	err := r.db.Where("user_id = ?", userID).Order("position ASC").Find(&entries).Error
	return entries, err
}

// Replace swaps the user's whitelist for the given domains in one transaction.
func (r *WhitelistRepository) Replace(userID string, domains []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.WhitelistEntry{}).Error; err != nil {
			return err
		}
		for i, d := range domains {
			entry := models.WhitelistEntry{UserID: userID, Domain: d, Position: i}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
