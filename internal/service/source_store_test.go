package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/organize-activities-api/internal/models"
	appErrors "github.com/noah-isme/organize-activities-api/pkg/errors"
)

type recordingScheduler struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (s *recordingScheduler) ScheduleRefresh(source string, orgID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, source)
	return s.err
}

func (s *recordingScheduler) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type stubLoader struct {
	items []models.Survey
	err   error
	calls int
}

func (l *stubLoader) load(context.Context, int) ([]models.Survey, error) {
	l.calls++
	return l.items, l.err
}

func newTestStore(loader *stubLoader, scheduler RefreshScheduler, clock *manualClock) *SourceStore[models.Survey] {
	return NewSourceStore(SourceSurveys, loader.load, SourceStoreOptions{
		TTL:       time.Minute,
		Scheduler: scheduler,
		Metrics:   NewMetricsService(),
		Now:       clock.Now,
	})
}

func TestSourceStoreSchedulesFirstLoad(t *testing.T) {
	scheduler := &recordingScheduler{}
	clock := &manualClock{now: testNow}
	store := newTestStore(&stubLoader{}, scheduler, clock)

	first := store.Get(testOrgID)
	second := store.Get(testOrgID)

	assert.True(t, first.IsLoading)
	assert.False(t, first.HasData())
	assert.True(t, second.IsLoading)
	assert.Equal(t, []string{SourceSurveys}, scheduler.calls)
}

func TestSourceStoreRefreshResolvesAndExpires(t *testing.T) {
	scheduler := &recordingScheduler{}
	clock := &manualClock{now: testNow}
	loader := &stubLoader{items: []models.Survey{{ID: 1}}}
	store := newTestStore(loader, scheduler, clock)

	require.NoError(t, store.Refresh(context.Background(), testOrgID))

	resolved := store.Get(testOrgID)
	items, ok := resolved.Value()
	require.True(t, ok)
	assert.False(t, resolved.IsLoading)
	assert.Equal(t, 1, items[0].ID)
	assert.Zero(t, scheduler.count())

	clock.Advance(2 * time.Minute)
	stale := store.Get(testOrgID)
	assert.True(t, stale.IsLoading)
	items, ok = stale.Value()
	require.True(t, ok)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, scheduler.count())
}

func TestSourceStoreRefreshFailureKeepsStaleItems(t *testing.T) {
	clock := &manualClock{now: testNow}
	loader := &stubLoader{items: []models.Survey{{ID: 1}}}
	store := newTestStore(loader, &recordingScheduler{}, clock)
	require.NoError(t, store.Refresh(context.Background(), testOrgID))

	loader.err = errors.New("connection reset")
	err := store.Refresh(context.Background(), testOrgID)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrUpstreamFetch)

	result := store.Get(testOrgID)
	assert.False(t, result.IsLoading)
	assert.ErrorIs(t, result.Err, appErrors.ErrUpstreamFetch)
	items, ok := result.Value()
	require.True(t, ok)
	assert.Equal(t, 1, items[0].ID)
}

func TestSourceStoreRefreshFailureWithoutData(t *testing.T) {
	clock := &manualClock{now: testNow}
	store := newTestStore(&stubLoader{err: errors.New("boom")}, &recordingScheduler{}, clock)

	require.Error(t, store.Refresh(context.Background(), testOrgID))

	result := store.Get(testOrgID)
	assert.Error(t, result.Err)
	assert.False(t, result.HasData())
}

func TestSourceStoreSchedulerFailureSurfacesAsError(t *testing.T) {
	scheduler := &recordingScheduler{err: appErrors.ErrQueueStopped}
	store := newTestStore(&stubLoader{}, scheduler, &manualClock{now: testNow})

	result := store.Get(testOrgID)

	assert.False(t, result.IsLoading)
	assert.ErrorIs(t, result.Err, appErrors.ErrQueueStopped)
}

func TestSourceStoreWithoutSchedulerStaysLoading(t *testing.T) {
	store := newTestStore(&stubLoader{}, nil, &manualClock{now: testNow})

	assert.True(t, store.Get(testOrgID).IsLoading)
}

func TestSourceStoreEmptyResultIsResolved(t *testing.T) {
	store := newTestStore(&stubLoader{}, &recordingScheduler{}, &manualClock{now: testNow})
	require.NoError(t, store.Refresh(context.Background(), testOrgID))

	items, ok := store.Get(testOrgID).Value()
	require.True(t, ok)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestSourceStoreInvalidateForcesReload(t *testing.T) {
	scheduler := &recordingScheduler{}
	store := newTestStore(&stubLoader{items: []models.Survey{{ID: 2}}}, scheduler, &manualClock{now: testNow})
	require.NoError(t, store.Refresh(context.Background(), testOrgID))

	store.Invalidate(testOrgID)
	result := store.Get(testOrgID)

	assert.True(t, result.IsLoading)
	assert.True(t, result.HasData())
	assert.Equal(t, 1, scheduler.count())
}

func TestSourceStoreInvalidateDuringRefreshReloads(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int
	load := func(context.Context, int) ([]models.Survey, error) {
		calls++
		if calls == 1 {
			close(started)
			<-release
			return []models.Survey{{ID: 1}}, nil
		}
		return []models.Survey{{ID: 2}}, nil
	}
	store := NewSourceStore(SourceSurveys, load, SourceStoreOptions{
		TTL:     time.Minute,
		Metrics: NewMetricsService(),
		Now:     (&manualClock{now: testNow}).Now,
	})

	done := make(chan error, 1)
	go func() { done <- store.Refresh(context.Background(), testOrgID) }()
	<-started
	store.Invalidate(testOrgID)
	close(release)

	require.NoError(t, <-done)
	assert.Equal(t, 2, calls)
	items, ok := store.Get(testOrgID).Value()
	require.True(t, ok)
	assert.Equal(t, []models.Survey{{ID: 2}}, items)
}

func TestSourceStoreInvalidateDuringCancelledRefresh(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := NewSourceStore(SourceSurveys, func(context.Context, int) ([]models.Survey, error) {
		return []models.Survey{{ID: 1}}, nil
	}, SourceStoreOptions{Metrics: NewMetricsService()})
	require.NoError(t, store.Refresh(ctx, testOrgID))

	scheduler := &recordingScheduler{}
	store.SetScheduler(scheduler)
	store.load = func(ctx context.Context, orgID int) ([]models.Survey, error) {
		store.Invalidate(orgID)
		cancel()
		return []models.Survey{{ID: 9}}, nil
	}

	assert.ErrorIs(t, store.Refresh(ctx, testOrgID), context.Canceled)

	result := store.Get(testOrgID)
	items, _ := result.Value()
	assert.Equal(t, []models.Survey{{ID: 1}}, items)
	assert.Equal(t, 1, scheduler.count())
}
