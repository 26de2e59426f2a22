package services

import (
	"context"
	"time"

	"safesurf/backend/app/dto"
	"safesurf/backend/app/models"
	"safesurf/backend/app/repo"
	"safesurf/backend/global"
	"safesurf/retry"

	"github.com/google/uuid"
)

type ActivityService struct{ repo *repo.ActivityRepository }

func NewActivityService(r *repo.ActivityRepository) *ActivityService {
	return &ActivityService{repo: r}
}

// Append records one blocking decision. Entries are append-only; there is no
// update path.
func (s *ActivityService) Append(ctx context.Context, userID string, req dto.ActivityRequest) (*dto.ActivityResponse, error) {
	ts := time.Unix(req.Timestamp, 0)
	if req.Timestamp == 0 {
		ts = time.Now()
	}
	l := &models.ActivityLog{
		ID:        uuid.NewString(),
		UserID:    userID,
		URL:       req.URL,
		Reason:    req.Reason,
		Timestamp: ts,
	}
	err := retry.Do(ctx, global.Config.Retry.Attempts, global.Config.Retry.BaseDelay, func(ctx context.Context) error {
		return s.repo.Create(l)
	})
	if err != nil {
		return nil, err
	}
	return activityToDTO(l), nil
}

// Latest returns at most limit entries for the user, newest first.
func (s *ActivityService) Latest(ctx context.Context, userID string, limit int) ([]dto.ActivityResponse, error) {
	var logs []models.ActivityLog
	err := retry.Do(ctx, global.Config.Retry.Attempts, global.Config.Retry.BaseDelay, func(ctx context.Context) error {
		var err error
		logs, err = s.repo.LatestByUser(userID, limit)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ActivityResponse, 0, len(logs))
	for i := range logs {
		out = append(out, *activityToDTO(&logs[i]))
	}
	return out, nil
}

func activityToDTO(l *models.ActivityLog) *dto.ActivityResponse {
	return &dto.ActivityResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		URL:       l.URL,
		Reason:    l.Reason,
		Timestamp: l.Timestamp.Unix(),
	}
}
