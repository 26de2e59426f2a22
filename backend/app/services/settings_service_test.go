package services

import (
	"context"
	"encoding/json"
	"testing"

	"safesurf/backend/app/cache"
	"safesurf/backend/app/dto"
	"safesurf/backend/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettingsRepo struct {
	doc     *models.UserSettings
	gets    int
	upserts int
}

func (f *fakeSettingsRepo) Get(userID string) (*models.UserSettings, error) {
	f.gets++
	return f.doc, nil
}

func (f *fakeSettingsRepo) Upsert(s *models.UserSettings) error {
	f.upserts++
	f.doc = s
	return nil
}

type fakeDocCache struct{ m map[string][]byte }

func newFakeDocCache() *fakeDocCache { return &fakeDocCache{m: map[string][]byte{}} }

func (f *fakeDocCache) GetSettings(_ context.Context, userID string, out any) error {
	b, ok := f.m[userID]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(b, out)
}

func (f *fakeDocCache) SetSettings(_ context.Context, userID string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	f.m[userID] = b
	return nil
}

func TestUpdateWritesThroughToCache(t *testing.T) {
	repo := &fakeSettingsRepo{}
	dc := newFakeDocCache()
	svc := NewSettingsService(repo, dc)

	req := dto.SettingsRequest{
		Enabled:    true,
		AdBlocking: false,
		TimeRestriction: dto.TimeRestriction{
			Enabled:   true,
			StartTime: "20:00",
			EndTime:   "07:00",
		},
		BlockedCategories: map[string]bool{"adult": true, "gambling": false},
	}
	saved, err := svc.Update(context.Background(), "u1", req)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.upserts)

	// A read right after the write is served from the cache: the repo is
	// never consulted and the document matches what was just saved.
	got, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Zero(t, repo.gets, "post-update read must not hit the database")
	assert.Equal(t, *saved, *got)
	assert.False(t, got.AdBlocking)
	assert.Equal(t, "20:00", got.TimeRestriction.StartTime)
}

func TestGetRepopulatesCacheOnMiss(t *testing.T) {
	repo := &fakeSettingsRepo{doc: &models.UserSettings{
		UserID:           "u1",
		Enabled:          true,
		AdBlocking:       true,
		TimeRestriction:  true,
		RestrictionStart: "21:00",
		RestrictionEnd:   "06:00",
		Categories:       `{"adult":true}`,
	}}
	svc := NewSettingsService(repo, newFakeDocCache())

	first, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.gets)
	assert.True(t, first.TimeRestriction.Enabled)

	second, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.gets, "second read served from the repopulated cache")
	assert.Equal(t, *first, *second)
}

func TestGetMissingDocumentYieldsDefaults(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{}, newFakeDocCache())
	got, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, got.Enabled)
	assert.True(t, got.AdBlocking)
	assert.False(t, got.TimeRestriction.Enabled)
}

func TestUpdateRejectsBadClock(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo, newFakeDocCache())
	_, err := svc.Update(context.Background(), "u1", dto.SettingsRequest{
		TimeRestriction: dto.TimeRestriction{Enabled: true, StartTime: "25:00", EndTime: "06:00"},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, repo.upserts, "invalid input is never persisted")
}

func TestValidateClock(t *testing.T) {
	for _, ok := range []string{"00:00", "06:30", "21:00", "23:59"} {
		assert.NoError(t, validateClock(ok), ok)
	}
	for _, bad := range []string{"24:00", "9:0", "09:60", "noon", "", "21:00:00"} {
		assert.Error(t, validateClock(bad), bad)
	}
}

func TestDefaultSettings(t *testing.T) {
	s := defaultSettings("u1")
	require.NotNil(t, s)
	assert.Equal(t, "u1", s.UserID)
	assert.True(t, s.Enabled)
	assert.True(t, s.AdBlocking)
	assert.False(t, s.TimeRestriction.Enabled)
	assert.Equal(t, "21:00", s.TimeRestriction.StartTime)
	assert.Equal(t, "06:00", s.TimeRestriction.EndTime)
	for _, cat := range []string{"adult", "violence", "drugs", "gambling"} {
		assert.True(t, s.BlockedCategories[cat], cat)
	}
}
