package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/organize-activities-api/pkg/errors"
)

const sourceCachePrefix = "activities:src"

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheService is the shared second level behind the in-process source
// stores. Several API replicas read the same snapshots from it.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool
	now        func() time.Time
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = 2 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, defaultTTL: defaultTTL, logger: logger, enabled: enabled, now: time.Now}
}

// SourceCacheKey names the cache entry of one source list of an organization.
func SourceCacheKey(source string, orgID int) string {
	return fmt.Sprintf("%s:%s:%d", sourceCachePrefix, source, orgID)
}

// OrganizationCachePattern matches every source entry of an organization.
func OrganizationCachePattern(orgID int) string {
	return fmt.Sprintf("%s:*:%d", sourceCachePrefix, orgID)
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Get attempts to retrieve a cached entry. It returns true when the cache was hit.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	s.metrics.RecordCacheOperation(err == nil, time.Since(start))
	if err != nil {
		if errors.Is(err, appErrors.ErrCacheMiss) {
			return false, nil
		}
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return false, err
	}
	return true, nil
}

// Set stores the value in cache.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	start := time.Now()
	err := s.repo.Set(ctx, key, value, ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

// Invalidate removes cached values for the provided pattern.
func (s *CacheService) Invalidate(ctx context.Context, pattern string) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.repo.DeleteByPattern(ctx, pattern); err != nil {
		s.logger.Warn("cache invalidate failed", zap.String("pattern", pattern), zap.Error(err))
		return err
	}
	return nil
}

// InvalidateOrganization drops every cached source list of orgID.
func (s *CacheService) InvalidateOrganization(ctx context.Context, orgID int) error {
	return s.Invalidate(ctx, OrganizationCachePattern(orgID))
}

func (s *CacheService) ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl > 0 {
		return ttl
	}
	if s == nil {
		return 0
	}
	return s.defaultTTL
}

// sourceSnapshot is the cached form of one source list.
type sourceSnapshot[T any] struct {
	Items     []T       `json:"items"`
	FetchedAt time.Time `json:"fetched_at"`
}

// CachedLoader serves a source list from the shared cache and falls back to
// fetch on a miss, storing the fresh result for ttl. Snapshots older than ttl
// count as misses even when the backend still holds them. Failed fetches are
// never cached.
func CachedLoader[T any](cache *CacheService, source string, ttl time.Duration, fetch Loader[T]) Loader[T] {
	return func(ctx context.Context, orgID int) ([]T, error) {
		key := SourceCacheKey(source, orgID)
		maxAge := cache.ttlOrDefault(ttl)

		var snapshot sourceSnapshot[T]
		if hit, err := cache.Get(ctx, key, &snapshot); err == nil && hit {
			age := cache.now().Sub(snapshot.FetchedAt)
			if maxAge <= 0 || age <= maxAge {
				cache.logger.Debug("source served from cache",
					zap.String("source", source), zap.Int("org_id", orgID), zap.Duration("age", age))
				return snapshot.Items, nil
			}
		}

		items, err := fetch(ctx, orgID)
		if err != nil {
			return nil, err
		}
		if cache.Enabled() {
			_ = cache.Set(ctx, key, sourceSnapshot[T]{Items: items, FetchedAt: cache.now()}, ttl)
		}
		return items, nil
	}
}
