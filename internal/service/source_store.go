package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/organize-activities-api/pkg/errors"
	"github.com/noah-isme/organize-activities-api/pkg/future"
)

// Source names used for cache keys, refresh jobs and metrics.
const (
	SourceCallAssignments = "callAssignments"
	SourceEvents          = "events"
	SourceSurveys         = "surveys"
	SourceTasks           = "tasks"
)

// Loader fetches the full list of one source for an organization.
type Loader[T any] func(ctx context.Context, orgID int) ([]T, error)

// RefreshScheduler queues a background load of a source list.
type RefreshScheduler interface {
	ScheduleRefresh(source string, orgID int) error
}

// SourceStoreOptions tunes a SourceStore.
type SourceStoreOptions struct {
	TTL       time.Duration
	Scheduler RefreshScheduler
	Metrics   *MetricsService
	Logger    *zap.Logger
	Now       func() time.Time
}

type remoteList[T any] struct {
	items     []T
	hasData   bool
	isLoading bool
	err       error
	attempted time.Time
	// generation counts invalidations; a load started under an older
	// generation may hold data from before the invalidation.
	generation uint64
}

func (l *remoteList[T]) future() future.Future[[]T] {
	switch {
	case l.isLoading && l.hasData:
		return future.LoadingWithData(l.items)
	case l.isLoading:
		return future.Loading[[]T]()
	case l.err != nil && l.hasData:
		return future.ErroredWithData(l.err, l.items)
	case l.err != nil:
		return future.Errored[[]T](l.err)
	case l.hasData:
		return future.Resolved(l.items)
	default:
		return future.Loading[[]T]()
	}
}

// SourceStore keeps the last known list of one activity source per
// organization and serves it as a future while refreshes run in the
// background. Lists returned by Get are shared and must not be modified.
type SourceStore[T any] struct {
	name      string
	load      Loader[T]
	ttl       time.Duration
	scheduler RefreshScheduler
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time

	mu    sync.Mutex
	lists map[int]*remoteList[T]
}

// NewSourceStore builds a store for the named source.
func NewSourceStore[T any](name string, load Loader[T], opts SourceStoreOptions) *SourceStore[T] {
	if opts.TTL <= 0 {
		opts.TTL = 5 * time.Minute
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &SourceStore[T]{
		name:      name,
		load:      load,
		ttl:       opts.TTL,
		scheduler: opts.Scheduler,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
		now:       opts.Now,
		lists:     make(map[int]*remoteList[T]),
	}
}

// Name returns the source name.
func (s *SourceStore[T]) Name() string {
	return s.name
}

// SetScheduler attaches the scheduler used for background refreshes.
func (s *SourceStore[T]) SetScheduler(scheduler RefreshScheduler) {
	s.mu.Lock()
	s.scheduler = scheduler
	s.mu.Unlock()
}

// Get returns the current state of the organization's list. A list that was
// never loaded, or whose last attempt is older than the TTL, is scheduled for
// a refresh and reported as loading.
func (s *SourceStore[T]) Get(orgID int) future.Future[[]T] {
	s.mu.Lock()
	list := s.listLocked(orgID)
	scheduler := s.scheduler
	if scheduler == nil || list.isLoading || !s.expiredLocked(list) {
		f := list.future()
		s.mu.Unlock()
		return f
	}
	list.isLoading = true
	s.mu.Unlock()

	if err := scheduler.ScheduleRefresh(s.name, orgID); err != nil {
		s.logger.Warn("schedule source refresh failed",
			zap.String("source", s.name), zap.Int("org_id", orgID), zap.Error(err))
		s.mu.Lock()
		list.isLoading = false
		list.err = appErrors.Upstream(s.name, err)
		list.attempted = s.now()
		s.mu.Unlock()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return list.future()
}

// Refresh loads the organization's list synchronously. On failure the
// previous items are kept and exposed alongside the error. A list invalidated
// while the load was running is loaded again before the result is kept.
func (s *SourceStore[T]) Refresh(ctx context.Context, orgID int) error {
	for {
		s.mu.Lock()
		list := s.listLocked(orgID)
		list.isLoading = true
		generation := list.generation
		s.mu.Unlock()

		start := time.Now()
		items, err := s.load(ctx, orgID)
		s.metrics.ObserveSourceFetch(s.name, err, time.Since(start))

		s.mu.Lock()
		if list.generation != generation {
			if ctxErr := ctx.Err(); ctxErr != nil {
				list.isLoading = false
				s.mu.Unlock()
				return ctxErr
			}
			s.mu.Unlock()
			s.logger.Debug("source invalidated during refresh, reloading",
				zap.String("source", s.name), zap.Int("org_id", orgID))
			continue
		}
		err = s.storeLocked(list, orgID, items, err)
		s.mu.Unlock()
		return err
	}
}

func (s *SourceStore[T]) storeLocked(list *remoteList[T], orgID int, items []T, err error) error {
	list.isLoading = false
	list.attempted = s.now()
	if err != nil {
		list.err = appErrors.Upstream(s.name, err)
		s.logger.Warn("source refresh failed",
			zap.String("source", s.name), zap.Int("org_id", orgID), zap.Error(err))
		return list.err
	}
	if items == nil {
		items = []T{}
	}
	list.items = items
	list.hasData = true
	list.err = nil
	return nil
}

// Invalidate marks the organization's list as expired so that the next Get
// schedules a refresh. Cached items stay visible meanwhile. A refresh already
// running reloads instead of keeping what it fetched.
func (s *SourceStore[T]) Invalidate(orgID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if list, ok := s.lists[orgID]; ok {
		list.attempted = time.Time{}
		list.generation++
	}
}

func (s *SourceStore[T]) listLocked(orgID int) *remoteList[T] {
	list, ok := s.lists[orgID]
	if !ok {
		list = &remoteList[T]{}
		s.lists[orgID] = list
	}
	return list
}

func (s *SourceStore[T]) expiredLocked(list *remoteList[T]) bool {
	return list.attempted.IsZero() || s.now().Sub(list.attempted) >= s.ttl
}
