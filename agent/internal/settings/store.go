package settings

import (
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"

	"safesurf/agent/internal/backendapi"
	"safesurf/agent/internal/config"
	"safesurf/agent/internal/db"
	"safesurf/agent/internal/logger"
	"safesurf/agent/internal/policy"
	"safesurf/retry"

	"gorm.io/gorm"
)

// Freshness window for the local policy snapshot.
const FreshFor = 5 * time.Minute

const (
	docKeySettings  = "settings"
	docKeyWhitelist = "whitelist"
)

// Snapshot is the agent's read-only view of the current policy. Replaced as a
// whole value on every refresh; readers never see a partial update.
type Snapshot struct {
	Policy    policy.PolicySettings
	Whitelist map[string]struct{}
	FetchedAt time.Time
}

// Whitelisted reports whether hostname is on the whitelist.
func (s Snapshot) Whitelisted(hostname string) bool {
	_, ok := s.Whitelist[strings.ToLower(hostname)]
	return ok
}

// Store owns the policy snapshot and its freshness policy. It refreshes from
// the backend and mirrors each document to the local SQLite store so the last
// known policy survives restarts with no connectivity.
type Store struct {
	api   *backendapi.Client
	value atomic.Value // Snapshot

	// rt is consulted on every refresh so a config reload takes effect
	// without rebuilding the store.
	rt func() config.Retry
}

func NewStore(api *backendapi.Client, rt func() config.Retry) *Store {
	s := &Store{api: api, rt: rt}
	s.value.Store(Snapshot{Policy: policy.Defaults(), Whitelist: map[string]struct{}{}})
	return s
}

func (s *Store) Snapshot() Snapshot {
	return s.value.Load().(Snapshot)
}

// Fresh reports whether the snapshot is inside the freshness window.
func (s *Store) Fresh(now time.Time) bool {
	snap := s.Snapshot()
	return !snap.FetchedAt.IsZero() && now.Sub(snap.FetchedAt) < FreshFor
}

// LoadCached seeds the snapshot from the local mirror. Used at startup before
// the first backend round trip; errors just leave the defaults in place.
func (s *Store) LoadCached() {
	adb := db.Get()
	if adb == nil {
		return
	}
	snap := s.Snapshot()

	var doc db.CachedDocument
	if err := adb.Where("key = ?", docKeySettings).First(&doc).Error; err == nil {
		var p policy.PolicySettings
		if json.Unmarshal([]byte(doc.Value), &p) == nil {
			snap.Policy = p
		}
	}
	var wl db.CachedDocument
	if err := adb.Where("key = ?", docKeyWhitelist).First(&wl).Error; err == nil {
		var sites []string
		if json.Unmarshal([]byte(wl.Value), &sites) == nil {
			snap.Whitelist = toSet(sites)
		}
	}
	// FetchedAt stays zero: a mirrored snapshot is usable but never fresh.
	s.value.Store(snap)
}

// Refresh pulls both policy documents from the backend with bounded retry and
// replaces the snapshot wholesale. On failure the previous snapshot stays in
// effect (degrade to last-known policy, never to no policy).
func (s *Store) Refresh(ctx context.Context) error {
	rt := s.rt()

	var p *policy.PolicySettings
	err := retry.Do(ctx, rt.Attempts, rt.BaseDelay, func(ctx context.Context) error {
		var err error
		p, err = s.api.FetchSettings(ctx)
		return err
	})
	if err != nil {
		return err
	}

	var wl *backendapi.Whitelist
	err = retry.Do(ctx, rt.Attempts, rt.BaseDelay, func(ctx context.Context) error {
		var err error
		wl, err = s.api.FetchWhitelist(ctx)
		return err
	})
	if err != nil {
		return err
	}

	snap := Snapshot{
		Policy:    *p,
		Whitelist: toSet(wl.Sites),
		FetchedAt: time.Now(),
	}
	s.value.Store(snap)
	s.mirror(snap, wl.Sites)
	return nil
}

// Run refreshes on start and then whenever the freshness window lapses, until
// stop is closed.
func (s *Store) Run(ctx context.Context, interval time.Duration, stop <-chan struct{}) {
	if interval <= 0 {
		interval = FreshFor
	}
	if err := s.Refresh(ctx); err != nil {
		logger.Errorf("initial settings refresh failed: %v", err)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				logger.Errorf("settings refresh failed: %v", err)
			}
		case <-stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *Store) mirror(snap Snapshot, sites []string) {
	adb := db.Get()
	if adb == nil {
		return
	}
	if b, err := json.Marshal(snap.Policy); err == nil {
		upsertDoc(adb, docKeySettings, string(b), snap.FetchedAt)
	}
	if b, err := json.Marshal(sites); err == nil {
		upsertDoc(adb, docKeyWhitelist, string(b), snap.FetchedAt)
	}
}

func upsertDoc(adb *gorm.DB, key, value string, fetchedAt time.Time) {
	err := adb.Where("key = ?", key).
		Assign(map[string]any{"value": value, "fetched_at": fetchedAt}).
		FirstOrCreate(&db.CachedDocument{Key: key}).Error
	if err != nil {
		logger.Errorf("mirror %s failed: %v", key, err)
	}
}

func toSet(sites []string) map[string]struct{} {
	set := make(map[string]struct{}, len(sites))
	for _, s := range sites {
		set[strings.ToLower(s)] = struct{}{}
	}
	return set
}
