package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"safesurf/backend/app/cache"
	"safesurf/backend/app/dto"
	"safesurf/backend/app/models"
	"safesurf/backend/global"
	"safesurf/retry"
)

var ErrInvalidDomain = errors.New("invalid domain")

// RFC 1123 hostname: dot-separated labels, no leading/trailing hyphen.
var hostnameRe = regexp.MustCompile(`^([a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,}$`)

// WhitelistRepo is the persistence surface the service needs; satisfied by
// repo.WhitelistRepository.
type WhitelistRepo interface {
	List(userID string) ([]models.WhitelistEntry, error)
	Replace(userID string, domains []string) error
}

// WhitelistCache caches whole whitelist documents; satisfied by cache.Store.
type WhitelistCache interface {
	GetWhitelist(ctx context.Context, userID string, out any) error
	SetWhitelist(ctx context.Context, userID string, v any) error
}

type WhitelistService struct {
	repo  WhitelistRepo
	cache WhitelistCache
}

func NewWhitelistService(r WhitelistRepo, c WhitelistCache) *WhitelistService {
	return &WhitelistService{repo: r, cache: c}
}

// NormalizeDomain lowercases and trims a hostname and rejects anything that
// is not a syntactically valid domain. Rejected values are never persisted.
func NormalizeDomain(raw string) (string, error) {
	d := strings.ToLower(strings.TrimSpace(raw))
	d = strings.TrimSuffix(d, ".")
	if d == "" || len(d) > 253 || !hostnameRe.MatchString(d) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDomain, raw)
	}
	return d, nil
}

func (s *WhitelistService) Get(ctx context.Context, userID string) (*dto.WhitelistResponse, error) {
	var cached dto.WhitelistResponse
	if err := s.cache.GetWhitelist(ctx, userID, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		global.Logger.Warn().Err(err).Str("user", userID).Msg("whitelist cache read failed")
	}

	var entries []models.WhitelistEntry
	err := retry.Do(ctx, global.Config.Retry.Attempts, global.Config.Retry.BaseDelay, func(ctx context.Context) error {
		var err error
		entries, err = s.repo.List(userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	sites := make([]string, 0, len(entries))
	var updatedAt int64
	for _, e := range entries {
		sites = append(sites, e.Domain)
		if ts := e.CreatedAt.Unix(); ts > updatedAt {
			updatedAt = ts
		}
	}
	resp := &dto.WhitelistResponse{UserID: userID, Sites: sites, UpdatedAt: updatedAt}
	if err := s.cache.SetWhitelist(ctx, userID, resp); err != nil {
		global.Logger.Warn().Err(err).Str("user", userID).Msg("whitelist cache write failed")
	}
	return resp, nil
}

// Update validates every domain before anything is written, deduplicates
// while preserving the parent's order, then replaces the stored list and
// writes the result through to the cache.
func (s *WhitelistService) Update(ctx context.Context, userID string, req dto.WhitelistRequest) (*dto.WhitelistResponse, error) {
	seen := make(map[string]struct{}, len(req.Sites))
	domains := make([]string, 0, len(req.Sites))
	for _, raw := range req.Sites {
		d, err := NormalizeDomain(raw)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		domains = append(domains, d)
	}

	err := retry.Do(ctx, global.Config.Retry.Attempts, global.Config.Retry.BaseDelay, func(ctx context.Context) error {
		return s.repo.Replace(userID, domains)
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.WhitelistResponse{UserID: userID, Sites: domains, UpdatedAt: time.Now().Unix()}
	if err := s.cache.SetWhitelist(ctx, userID, resp); err != nil {
		global.Logger.Warn().Err(err).Str("user", userID).Msg("whitelist cache write failed")
	}
	return resp, nil
}
