package repo

import (
	"safesurf/backend/app/models"

	"gorm.io/gorm"
)

type ActivityRepository struct{ db *gorm.DB }

func NewActivityRepository(db *gorm.DB) *ActivityRepository { return &ActivityRepository{db: db} }

func (r *ActivityRepository) Create(l *models.ActivityLog) error { return r.db.Create(l).Error }

// LatestByUser returns at most limit entries, newest first.
func (r *ActivityRepository) LatestByUser(userID string, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = 1
	}
	var logs []models.ActivityLog
	err := r.db.Where("user_id = ?", userID).Order("timestamp DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
