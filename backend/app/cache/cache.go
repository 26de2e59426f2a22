package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Freshness window for cached policy documents (settings, whitelists).
const DocumentTTL = 5 * time.Minute

var ErrMiss = errors.New("cache miss")

// Store caches whole policy documents in Redis. Values are always replaced as
// a unit; a write-through Set after every DB update keeps readers inside the
// freshness window without a round trip to MySQL.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb, ttl: DocumentTTL}
}

func settingsKey(userID string) string  { return fmt.Sprintf("safesurf:settings:%s", userID) }
func whitelistKey(userID string) string { return fmt.Sprintf("safesurf:whitelist:%s", userID) }

func (s *Store) getJSON(ctx context.Context, key string, out any) error {
	if s == nil || s.rdb == nil {
		return ErrMiss
	}
	b, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func (s *Store) setJSON(ctx context.Context, key string, v any) error {
	if s == nil || s.rdb == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, b, s.ttl).Err()
}

func (s *Store) GetSettings(ctx context.Context, userID string, out any) error {
	return s.getJSON(ctx, settingsKey(userID), out)
}

func (s *Store) SetSettings(ctx context.Context, userID string, v any) error {
	return s.setJSON(ctx, settingsKey(userID), v)
}

func (s *Store) GetWhitelist(ctx context.Context, userID string, out any) error {
	return s.getJSON(ctx, whitelistKey(userID), out)
}

func (s *Store) SetWhitelist(ctx context.Context, userID string, v any) error {
	return s.setJSON(ctx, whitelistKey(userID), v)
}
