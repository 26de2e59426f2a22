package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"safesurf/backend/app/cache"
	"safesurf/backend/app/dto"
	"safesurf/backend/app/models"
	"safesurf/backend/global"
	"safesurf/retry"
)

var ErrInvalidInput = errors.New("invalid input")

// Categories every new user starts with. Matches the defaults applied on
// extension install.
var DefaultCategories = map[string]bool{
	"adult":    true,
	"violence": true,
	"drugs":    true,
	"gambling": true,
}

// SettingsRepo is the persistence surface the service needs; satisfied by
// repo.SettingsRepository.
type SettingsRepo interface {
	Get(userID string) (*models.UserSettings, error)
	Upsert(s *models.UserSettings) error
}

// SettingsCache caches whole settings documents; satisfied by cache.Store.
type SettingsCache interface {
	GetSettings(ctx context.Context, userID string, out any) error
	SetSettings(ctx context.Context, userID string, v any) error
}

type SettingsService struct {
	repo  SettingsRepo
	cache SettingsCache
}

func NewSettingsService(r SettingsRepo, c SettingsCache) *SettingsService {
	return &SettingsService{repo: r, cache: c}
}

// Get serves from the cache inside the freshness window and falls back to the
// database, repopulating the cache on the way out. A missing document yields
// the install defaults rather than an error.
func (s *SettingsService) Get(ctx context.Context, userID string) (*dto.SettingsResponse, error) {
	var cached dto.SettingsResponse
	if err := s.cache.GetSettings(ctx, userID, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		global.Logger.Warn().Err(err).Str("user", userID).Msg("settings cache read failed")
	}

	var doc *models.UserSettings
	err := retry.Do(ctx, global.Config.Retry.Attempts, global.Config.Retry.BaseDelay, func(ctx context.Context) error {
		var err error
		doc, err = s.repo.Get(userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return defaultSettings(userID), nil
	}

	resp := settingsToDTO(doc)
	if err := s.cache.SetSettings(ctx, userID, resp); err != nil {
		global.Logger.Warn().Err(err).Str("user", userID).Msg("settings cache write failed")
	}
	return resp, nil
}

// Update persists the whole document, then writes it through to the cache so
// reads within the freshness window see the new value without refetching.
func (s *SettingsService) Update(ctx context.Context, userID string, req dto.SettingsRequest) (*dto.SettingsResponse, error) {
	if req.TimeRestriction.Enabled {
		if err := validateClock(req.TimeRestriction.StartTime); err != nil {
			return nil, fmt.Errorf("%w: start_time: %v", ErrInvalidInput, err)
		}
		if err := validateClock(req.TimeRestriction.EndTime); err != nil {
			return nil, fmt.Errorf("%w: end_time: %v", ErrInvalidInput, err)
		}
	}

	categories := req.BlockedCategories
	if categories == nil {
		categories = DefaultCategories
	}
	catJSON, err := json.Marshal(categories)
	if err != nil {
		return nil, err
	}

	doc := &models.UserSettings{
		UserID:           userID,
		Enabled:          req.Enabled,
		AdBlocking:       req.AdBlocking,
		TimeRestriction:  req.TimeRestriction.Enabled,
		RestrictionStart: req.TimeRestriction.StartTime,
		RestrictionEnd:   req.TimeRestriction.EndTime,
		Categories:       string(catJSON),
	}
	err = retry.Do(ctx, global.Config.Retry.Attempts, global.Config.Retry.BaseDelay, func(ctx context.Context) error {
		return s.repo.Upsert(doc)
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.SettingsResponse{
		UserID:            userID,
		Enabled:           req.Enabled,
		AdBlocking:        req.AdBlocking,
		TimeRestriction:   req.TimeRestriction,
		BlockedCategories: categories,
		UpdatedAt:         time.Now().Unix(),
	}
	if err := s.cache.SetSettings(ctx, userID, resp); err != nil {
		global.Logger.Warn().Err(err).Str("user", userID).Msg("settings cache write failed")
	}
	return resp, nil
}

func settingsToDTO(doc *models.UserSettings) *dto.SettingsResponse {
	categories := map[string]bool{}
	if doc.Categories != "" {
		if err := json.Unmarshal([]byte(doc.Categories), &categories); err != nil {
			categories = DefaultCategories
		}
	}
	return &dto.SettingsResponse{
		UserID:     doc.UserID,
		Enabled:    doc.Enabled,
		AdBlocking: doc.AdBlocking,
		TimeRestriction: dto.TimeRestriction{
			Enabled:   doc.TimeRestriction,
			StartTime: doc.RestrictionStart,
			EndTime:   doc.RestrictionEnd,
		},
		BlockedCategories: categories,
		UpdatedAt:         doc.UpdatedAt.Unix(),
	}
}

func defaultSettings(userID string) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		UserID:     userID,
		Enabled:    true,
		AdBlocking: true,
		TimeRestriction: dto.TimeRestriction{
			Enabled:   false,
			StartTime: "21:00",
			EndTime:   "06:00",
		},
		BlockedCategories: DefaultCategories,
		UpdatedAt:         time.Now().Unix(),
	}
}

// validateClock accepts "HH:MM" on a 24-hour clock.
func validateClock(v string) error {
	if _, err := time.Parse("15:04", v); err != nil {
		return fmt.Errorf("want HH:MM, got %q", v)
	}
	return nil
}
