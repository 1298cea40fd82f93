package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/organize-activities-api/pkg/errors"
	"github.com/noah-isme/organize-activities-api/pkg/jobs"
	applogger "github.com/noah-isme/organize-activities-api/pkg/logger"
)

type refreshableSource interface {
	Name() string
	Refresh(ctx context.Context, orgID int) error
	Invalidate(orgID int)
}

// SourceRefresher runs source loads on a background job queue.
type SourceRefresher struct {
	queue  *jobs.Queue
	cache  *CacheService
	logger *zap.Logger

	mu      sync.RWMutex
	sources map[string]refreshableSource
}

// NewSourceRefresher builds a refresher backed by its own queue.
func NewSourceRefresher(cache *CacheService, cfg jobs.QueueConfig) *SourceRefresher {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	r := &SourceRefresher{
		cache:   cache,
		logger:  cfg.Logger,
		sources: make(map[string]refreshableSource),
	}
	r.queue = jobs.NewQueue("activity-sources", r.handle, cfg)
	return r
}

// Register adds sources that can be refreshed through the queue.
func (r *SourceRefresher) Register(sources ...refreshableSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, source := range sources {
		r.sources[source.Name()] = source
	}
}

// Start launches the queue workers.
func (r *SourceRefresher) Start(ctx context.Context) {
	r.queue.Start(ctx)
}

// Stop stops the queue workers.
func (r *SourceRefresher) Stop() {
	r.queue.Stop()
}

// ScheduleRefresh queues a load of source for orgID. Requests for a load that
// is already pending are collapsed.
func (r *SourceRefresher) ScheduleRefresh(source string, orgID int) error {
	_, err := r.queue.Enqueue(jobs.Job{
		Key:     fmt.Sprintf("%s:%d", source, orgID),
		Type:    source,
		Payload: orgID,
	})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrQueueStopped.Code, appErrors.ErrQueueStopped.Status, appErrors.ErrQueueStopped.Message)
	}
	return nil
}

// RefreshOrganization drops the cached lists of an organization and queues a
// reload of every registered source. It returns the names of the queued sources.
func (r *SourceRefresher) RefreshOrganization(ctx context.Context, orgID int) ([]string, error) {
	logger := applogger.WithContext(ctx, r.logger).With(zap.Int("org_id", orgID))
	if err := r.cache.InvalidateOrganization(ctx, orgID); err != nil {
		logger.Warn("refresh continues with stale cache", zap.Error(err))
	}

	r.mu.RLock()
	names := make([]string, 0, len(r.sources))
	for name, source := range r.sources {
		source.Invalidate(orgID)
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)

	for _, name := range names {
		if err := r.ScheduleRefresh(name, orgID); err != nil {
			logger.Error("refresh not queued", zap.String("source", name), zap.Error(err))
			return nil, err
		}
	}
	logger.Info("organization refresh queued", zap.Strings("sources", names))
	return names, nil
}

func (r *SourceRefresher) handle(ctx context.Context, job jobs.Job) error {
	orgID, ok := job.Payload.(int)
	if !ok {
		r.logger.Error("discarding refresh job with invalid payload", zap.String("job_id", job.ID), zap.String("type", job.Type))
		return nil
	}
	r.mu.RLock()
	source, ok := r.sources[job.Type]
	r.mu.RUnlock()
	if !ok {
		r.logger.Error("discarding refresh job for unknown source", zap.String("job_id", job.ID), zap.String("type", job.Type))
		return nil
	}
	return source.Refresh(ctx, orgID)
}
