package app

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/organize-activities-api/internal/models"
	"github.com/noah-isme/organize-activities-api/internal/repository"
	"github.com/noah-isme/organize-activities-api/internal/service"
	"github.com/noah-isme/organize-activities-api/pkg/config"
	"github.com/noah-isme/organize-activities-api/pkg/jobs"
)

// Activities holds the wired activity sources and the services built on them.
type Activities struct {
	CallAssignments *service.SourceStore[models.CallAssignment]
	Events          *service.SourceStore[models.Event]
	Surveys         *service.SourceStore[models.Survey]
	Tasks           *service.SourceStore[models.Task]

	Cache     *service.CacheService
	Refresher *service.SourceRefresher
	Service   *service.ActivityService
	Exporter  *service.ExportService
}

// NewActivities wires repositories, caches, source stores and the refresh
// queue. redisClient may be nil when caching is disabled.
func NewActivities(cfg *config.Config, db *sqlx.DB, redisClient *redis.Client, metrics *service.MetricsService, logger *zap.Logger) *Activities {
	if logger == nil {
		logger = zap.NewNop()
	}
	acfg := cfg.Activities

	var cacheRepo service.CacheRepository
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient, logger)
	}
	cache := service.NewCacheService(cacheRepo, metrics, acfg.CacheTTL, logger, redisClient != nil)

	refresher := service.NewSourceRefresher(cache, jobs.QueueConfig{
		Workers:    acfg.RefreshWorkers,
		MaxRetries: acfg.RefreshRetries,
		RetryDelay: acfg.RefreshDelay,
		Logger:     logger,
	})

	opts := service.SourceStoreOptions{
		TTL:       acfg.SourceTTL,
		Scheduler: refresher,
		Metrics:   metrics,
		Logger:    logger,
	}
	callAssignments := service.NewSourceStore(service.SourceCallAssignments,
		service.CachedLoader[models.CallAssignment](cache, service.SourceCallAssignments, acfg.CacheTTL, repository.NewCallAssignmentRepository(db).ListByOrganization), opts)
	events := service.NewSourceStore(service.SourceEvents,
		service.CachedLoader[models.Event](cache, service.SourceEvents, acfg.CacheTTL, repository.NewEventRepository(db).ListByOrganization), opts)
	surveys := service.NewSourceStore(service.SourceSurveys,
		service.CachedLoader[models.Survey](cache, service.SourceSurveys, acfg.CacheTTL, repository.NewSurveyRepository(db).ListByOrganization), opts)
	tasks := service.NewSourceStore(service.SourceTasks,
		service.CachedLoader[models.Task](cache, service.SourceTasks, acfg.CacheTTL, repository.NewTaskRepository(db).ListByOrganization), opts)
	refresher.Register(callAssignments, events, surveys, tasks)

	activities := service.NewActivityService(service.ActivityServiceParams{
		CallAssignments: callAssignments,
		Events:          events,
		Surveys:         surveys,
		Tasks:           tasks,
		Location:        acfg.Location(),
		Metrics:         metrics,
		Logger:          logger,
	})

	return &Activities{
		CallAssignments: callAssignments,
		Events:          events,
		Surveys:         surveys,
		Tasks:           tasks,
		Cache:           cache,
		Refresher:       refresher,
		Service:         activities,
		Exporter:        service.NewExportService(activities, nil, logger),
	}
}

// Start launches the background refresh workers.
func (a *Activities) Start(ctx context.Context) {
	a.Refresher.Start(ctx)
}

// Stop stops the background refresh workers.
func (a *Activities) Stop() {
	a.Refresher.Stop()
}

// Warm loads the four sources of orgID synchronously, bypassing the queue.
// The first failure is returned after every source was attempted.
func (a *Activities) Warm(ctx context.Context, orgID int, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	var firstErr error
	for _, refresh := range []func(context.Context, int) error{
		a.CallAssignments.Refresh,
		a.Events.Refresh,
		a.Surveys.Refresh,
		a.Tasks.Refresh,
	} {
		if err := refresh(ctx, orgID); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
