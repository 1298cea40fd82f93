package service

import (
	"errors"
	"strconv"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/organize-activities-api/internal/models"
	appErrors "github.com/noah-isme/organize-activities-api/pkg/errors"
	"github.com/noah-isme/organize-activities-api/pkg/future"
)

const testOrgID = 7

// Wednesday.
var testNow = time.Date(2024, time.May, 15, 10, 0, 0, 0, time.UTC)

type fakeSource[T any] struct {
	result future.Future[[]T]
	calls  int
}

func (f *fakeSource[T]) Get(int) future.Future[[]T] {
	f.calls++
	return f.result
}

func resolvedSource[T any](items ...T) *fakeSource[T] {
	if items == nil {
		items = []T{}
	}
	return &fakeSource[T]{result: future.Resolved(items)}
}

type activityFixture struct {
	callAssignments *fakeSource[models.CallAssignment]
	events          *fakeSource[models.Event]
	surveys         *fakeSource[models.Survey]
	tasks           *fakeSource[models.Task]
	loc             *time.Location
	now             time.Time
}

func newActivityFixture() *activityFixture {
	return &activityFixture{
		callAssignments: resolvedSource[models.CallAssignment](),
		events:          resolvedSource[models.Event](),
		surveys:         resolvedSource[models.Survey](),
		tasks:           resolvedSource[models.Task](),
		loc:             time.UTC,
		now:             testNow,
	}
}

func (f *activityFixture) service() *ActivityService {
	return NewActivityService(ActivityServiceParams{
		CallAssignments: f.callAssignments,
		Events:          f.events,
		Surveys:         f.surveys,
		Tasks:           f.tasks,
		Location:        f.loc,
		Metrics:         NewMetricsService(),
		Logger:          zap.NewNop(),
		Now:             func() time.Time { return f.now },
	})
}

func campaignRef(id int) *models.CampaignRef {
	return &models.CampaignRef{ID: id, Title: "Campaign"}
}

func strPtr(v string) *string {
	return &v
}

func dayUTC(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func activityIDs(list []models.CampaignActivity) []string {
	ids := make([]string, 0, len(list))
	for _, activity := range list {
		ids = append(ids, string(activity.Kind)+":"+strconv.Itoa(activity.Data.ActivityID()))
	}
	return ids
}

func resolvedValue[T any](t *testing.T, f future.Future[T]) T {
	t.Helper()
	require.False(t, f.IsLoading, "future is loading")
	require.NoError(t, f.Err)
	value, ok := f.Value()
	require.True(t, ok, "future has no data")
	return value
}

func TestAllActivitiesMergesAndSortsSources(t *testing.T) {
	fx := newActivityFixture()
	fx.callAssignments = resolvedSource(models.CallAssignment{ID: 1, StartDate: "2024-05-01", EndDate: "2024-05-31"})
	fx.events = resolvedSource(models.Event{ID: 2, Published: "2024-05-10T08:00:00Z", StartTime: "2024-05-20T18:00:00Z", EndTime: "2024-05-20T20:00:00Z"})
	fx.surveys = resolvedSource(models.Survey{ID: 3, Published: "2024-05-12", Expires: "2024-06-01"})
	fx.tasks = resolvedSource(models.Task{ID: 4})

	all := resolvedValue(t, fx.service().AllActivities(testOrgID, 0))

	require.Len(t, all, 4)
	assert.Equal(t, []string{"task:4", "survey:3", "event:2", "callAssignment:1"}, activityIDs(all))
	assert.Nil(t, all[0].VisibleFrom)
	assert.Equal(t, dayUTC(2024, time.May, 12), *all[1].VisibleFrom)
	assert.Equal(t, dayUTC(2024, time.May, 20), *all[2].VisibleUntil)
}

func TestAllActivitiesKeepsAggregationOrderForEqualDates(t *testing.T) {
	fx := newActivityFixture()
	fx.callAssignments = resolvedSource(models.CallAssignment{ID: 1, StartDate: "2024-05-10", EndDate: "2024-05-31"})
	fx.surveys = resolvedSource(models.Survey{ID: 2, Published: "2024-05-10T15:00:00Z", Expires: "2024-05-31"})
	fx.tasks = resolvedSource(models.Task{ID: 3}, models.Task{ID: 4})

	all := resolvedValue(t, fx.service().AllActivities(testOrgID, 0))

	assert.Equal(t, []string{"task:3", "task:4", "callAssignment:1", "survey:2"}, activityIDs(all))
}

func TestAllActivitiesFiltersByCampaign(t *testing.T) {
	fx := newActivityFixture()
	fx.callAssignments = resolvedSource(
		models.CallAssignment{ID: 1, Campaign: campaignRef(5), StartDate: "2024-05-01", EndDate: "2024-05-31"},
		models.CallAssignment{ID: 2, StartDate: "2024-05-01", EndDate: "2024-05-31"},
	)
	fx.tasks = resolvedSource(models.Task{ID: 3, Campaign: campaignRef(6)}, models.Task{ID: 4, Campaign: campaignRef(5)})

	all := resolvedValue(t, fx.service().AllActivities(testOrgID, 5))

	assert.Equal(t, []string{"task:4", "callAssignment:1"}, activityIDs(all))
}

func TestAllActivitiesLoadingWhenSourceHasNoData(t *testing.T) {
	fx := newActivityFixture()
	fx.surveys = resolvedSource(models.Survey{ID: 1, Published: "2024-05-01", Expires: "2024-06-01"})
	fx.tasks = &fakeSource[models.Task]{result: future.Loading[[]models.Task]()}
	svc := fx.service()

	assert.True(t, svc.AllActivities(testOrgID, 0).IsLoading)
	assert.True(t, svc.CurrentActivities(testOrgID).IsLoading)
	assert.True(t, svc.CampaignActivities(testOrgID, 1).IsLoading)
	assert.True(t, svc.ArchivedActivities(testOrgID, 0).IsLoading)
	assert.True(t, svc.ArchivedStandaloneActivities(testOrgID).IsLoading)
	overview := svc.ActivityOverview(testOrgID, 0)
	assert.True(t, overview.IsLoading)
	assert.False(t, overview.HasData())
}

func TestAllActivitiesUsesStaleDataWhileRevalidating(t *testing.T) {
	fx := newActivityFixture()
	fx.tasks = &fakeSource[models.Task]{result: future.LoadingWithData([]models.Task{{ID: 9}})}

	all := resolvedValue(t, fx.service().AllActivities(testOrgID, 0))

	assert.Equal(t, []string{"task:9"}, activityIDs(all))
}

func TestAllActivitiesErrorPrecedence(t *testing.T) {
	eventsErr := appErrors.Upstream(SourceEvents, errors.New("connection refused"))
	surveysErr := appErrors.Upstream(SourceSurveys, errors.New("timeout"))

	t.Run("loading without data wins over errors", func(t *testing.T) {
		fx := newActivityFixture()
		fx.events = &fakeSource[models.Event]{result: future.Errored[[]models.Event](eventsErr)}
		fx.tasks = &fakeSource[models.Task]{result: future.Loading[[]models.Task]()}

		result := fx.service().AllActivities(testOrgID, 0)
		assert.True(t, result.IsLoading)
		assert.NoError(t, result.Err)
	})

	t.Run("first errored source in aggregation order", func(t *testing.T) {
		fx := newActivityFixture()
		fx.events = &fakeSource[models.Event]{result: future.Errored[[]models.Event](eventsErr)}
		fx.surveys = &fakeSource[models.Survey]{result: future.Errored[[]models.Survey](surveysErr)}

		result := fx.service().AllActivities(testOrgID, 0)
		assert.False(t, result.IsLoading)
		assert.Same(t, eventsErr, result.Err)
		assert.False(t, result.HasData())
	})

	t.Run("error wins over stale data", func(t *testing.T) {
		fx := newActivityFixture()
		fx.surveys = &fakeSource[models.Survey]{result: future.ErroredWithData[[]models.Survey](surveysErr, []models.Survey{{ID: 1}})}

		result := fx.service().AllActivities(testOrgID, 0)
		assert.ErrorIs(t, result.Err, appErrors.ErrUpstreamFetch)
		assert.False(t, result.HasData())

		overview := fx.service().ActivityOverview(testOrgID, 0)
		assert.Same(t, surveysErr, overview.Err)
	})
}

func TestCurrentAndArchivedActivities(t *testing.T) {
	fx := newActivityFixture()
	fx.surveys = resolvedSource(
		models.Survey{ID: 1, Published: "2024-04-01", Expires: "2024-05-01"},
		models.Survey{ID: 2, Published: "2024-05-01", Expires: "2024-05-15"},
		models.Survey{ID: 3, Published: "2024-05-01", Expires: "2024-05-14"},
	)
	fx.tasks = resolvedSource(
		models.Task{ID: 4},
		models.Task{ID: 5, Expires: strPtr("2024-05-01")},
	)
	svc := fx.service()

	current := resolvedValue(t, svc.CurrentActivities(testOrgID))
	assert.Equal(t, []string{"task:4", "survey:2"}, activityIDs(current))

	archived := resolvedValue(t, svc.ArchivedActivities(testOrgID, 0))
	assert.Equal(t, []string{"survey:3", "survey:1"}, activityIDs(archived))
}

func TestDateOnlyBoundsFollowLocalCalendarWestOfUTC(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	fx := newActivityFixture()
	fx.loc = newYork
	fx.now = time.Date(2024, time.May, 15, 10, 0, 0, 0, newYork)
	fx.surveys = resolvedSource(
		models.Survey{ID: 1, Published: "2024-05-01", Expires: "2024-05-15"},
		models.Survey{ID: 2, Published: "2024-05-15", Expires: "2024-06-30"},
		models.Survey{ID: 3, Published: "2024-05-16", Expires: "2024-06-30"},
		models.Survey{ID: 4, Published: "2024-05-01", Expires: "2024-05-14"},
	)
	svc := fx.service()

	current := activityIDs(resolvedValue(t, svc.CurrentActivities(testOrgID)))
	assert.Contains(t, current, "survey:1")
	assert.NotContains(t, current, "survey:4")

	archived := activityIDs(resolvedValue(t, svc.ArchivedActivities(testOrgID, 0)))
	assert.Equal(t, []string{"survey:4"}, archived)

	overview := resolvedValue(t, svc.ActivityOverview(testOrgID, 0))
	assert.ElementsMatch(t, []string{"survey:1", "survey:2"}, activityIDs(overview.Today))
	assert.Equal(t, []string{"survey:3"}, activityIDs(overview.Tomorrow))
}

func TestCampaignActivitiesOnlyLinkedCurrentItems(t *testing.T) {
	fx := newActivityFixture()
	fx.callAssignments = resolvedSource(
		models.CallAssignment{ID: 1, Campaign: campaignRef(5), StartDate: "2024-05-01", EndDate: "2024-05-31"},
		models.CallAssignment{ID: 2, Campaign: campaignRef(5), StartDate: "2024-04-01", EndDate: "2024-04-30"},
		models.CallAssignment{ID: 3, StartDate: "2024-05-01", EndDate: "2024-05-31"},
	)

	campaign := resolvedValue(t, fx.service().CampaignActivities(testOrgID, 5))

	assert.Equal(t, []string{"callAssignment:1"}, activityIDs(campaign))
}

func TestArchivedActivitiesWithCampaignFilter(t *testing.T) {
	fx := newActivityFixture()
	fx.callAssignments = resolvedSource(
		models.CallAssignment{ID: 1, Campaign: campaignRef(5), StartDate: "2024-04-01", EndDate: "2024-04-30"},
		models.CallAssignment{ID: 2, Campaign: campaignRef(6), StartDate: "2024-04-01", EndDate: "2024-04-30"},
	)

	archived := resolvedValue(t, fx.service().ArchivedActivities(testOrgID, 6))

	assert.Equal(t, []string{"callAssignment:2"}, activityIDs(archived))
}

func TestArchivedStandaloneActivities(t *testing.T) {
	fx := newActivityFixture()
	fx.callAssignments = resolvedSource(
		models.CallAssignment{ID: 1, StartDate: "2024-04-01", EndDate: "2024-04-30"},
		models.CallAssignment{ID: 2, Campaign: campaignRef(3), StartDate: "2024-04-01", EndDate: "2024-04-30"},
		models.CallAssignment{ID: 3, StartDate: "2024-05-01", EndDate: "2024-05-31"},
	)

	standalone := resolvedValue(t, fx.service().ArchivedStandaloneActivities(testOrgID))

	assert.Equal(t, []string{"callAssignment:1"}, activityIDs(standalone))
}

func TestActivityOverviewBuckets(t *testing.T) {
	fx := newActivityFixture()
	fx.events = resolvedSource(
		models.Event{ID: 1, Published: "2024-05-01", StartTime: "2024-05-15T18:00:00Z", EndTime: "2024-05-15T20:00:00Z"},
		models.Event{ID: 2, Published: "2024-05-01", StartTime: "2024-05-16T18:00:00Z", EndTime: "2024-05-16T20:00:00Z"},
		models.Event{ID: 3, Published: "2024-05-01", StartTime: "2024-05-19T09:00:00Z", EndTime: "2024-05-19T12:00:00Z"},
		models.Event{ID: 4, Published: "2024-04-01", StartTime: "2024-05-01T09:00:00Z", EndTime: "2024-06-30T12:00:00Z"},
		models.Event{ID: 5, Published: "2024-05-01", StartTime: "2024-05-10T09:00:00Z", EndTime: "2024-05-15T08:00:00Z"},
		models.Event{ID: 6, Published: "2024-05-01", StartTime: "2024-06-10T09:00:00Z", EndTime: "2024-06-10T12:00:00Z"},
		models.Event{ID: 7, Published: "2024-05-01", StartTime: "not a date", EndTime: "2024-05-20T12:00:00Z"},
	)
	fx.surveys = resolvedSource(
		models.Survey{ID: 10, Published: "2024-05-15", Expires: "2024-05-16"},
		models.Survey{ID: 11, Published: "2024-05-01", Expires: "2024-05-16"},
		models.Survey{ID: 12, Published: "2024-05-18", Expires: "2024-06-30"},
		models.Survey{ID: 13, Published: "2024-05-30", Expires: "2024-06-30"},
		models.Survey{ID: 14, Published: "2024-05-05", Expires: "2024-05-12"},
	)
	fx.tasks = resolvedSource(models.Task{ID: 20}, models.Task{ID: 21, Published: strPtr("2024-05-02")})
	svc := fx.service()

	overview := resolvedValue(t, svc.ActivityOverview(testOrgID, 0))

	assert.ElementsMatch(t, []string{"event:1", "survey:10"}, activityIDs(overview.Today))
	assert.ElementsMatch(t, []string{"event:2", "survey:11"}, activityIDs(overview.Tomorrow))
	assert.ElementsMatch(t, []string{"event:3", "event:4", "event:5", "survey:12", "task:21"}, activityIDs(overview.AlsoThisWeek))

	// closed three days ago: archived, never in a bucket
	for _, bucket := range [][]models.CampaignActivity{overview.Today, overview.Tomorrow, overview.AlsoThisWeek} {
		assert.NotContains(t, activityIDs(bucket), "survey:14")
	}
	assert.Contains(t, activityIDs(resolvedValue(t, svc.ArchivedActivities(testOrgID, 0))), "survey:14")
}

func TestActivityOverviewTodaysEventOnlyInToday(t *testing.T) {
	fx := newActivityFixture()
	fx.events = resolvedSource(models.Event{ID: 1, Published: "2024-05-01", StartTime: "2024-05-15T18:00:00Z", EndTime: "2024-05-16T02:00:00Z"})

	overview := resolvedValue(t, fx.service().ActivityOverview(testOrgID, 0))

	assert.Equal(t, []string{"event:1"}, activityIDs(overview.Today))
	assert.Empty(t, overview.Tomorrow)
	assert.Empty(t, overview.AlsoThisWeek)
}

func TestActivityOverviewScopedToCampaign(t *testing.T) {
	fx := newActivityFixture()
	fx.surveys = resolvedSource(
		models.Survey{ID: 1, Campaign: campaignRef(5), Published: "2024-05-15", Expires: "2024-06-01"},
		models.Survey{ID: 2, Campaign: campaignRef(6), Published: "2024-05-15", Expires: "2024-06-01"},
		models.Survey{ID: 3, Published: "2024-05-15", Expires: "2024-06-01"},
	)

	overview := resolvedValue(t, fx.service().ActivityOverview(testOrgID, 5))

	assert.Equal(t, []string{"survey:1"}, activityIDs(overview.Today))
}

func TestActivityOverviewBucketsAreDisjointAndQueriesIdempotent(t *testing.T) {
	fx := newActivityFixture()
	fx.callAssignments = resolvedSource(
		models.CallAssignment{ID: 1, StartDate: "2024-05-15", EndDate: "2024-05-16"},
		models.CallAssignment{ID: 2, StartDate: "2024-05-16", EndDate: "2024-05-17"},
		models.CallAssignment{ID: 3, StartDate: "2024-05-10", EndDate: "2024-05-20"},
	)
	fx.events = resolvedSource(models.Event{ID: 4, Published: "2024-05-01", StartTime: "2024-05-16T10:00:00Z", EndTime: "2024-05-15T23:00:00Z"})
	fx.tasks = resolvedSource(models.Task{ID: 5, Published: strPtr("2024-05-15"), Expires: strPtr("2024-05-16")})
	svc := fx.service()

	first := resolvedValue(t, svc.ActivityOverview(testOrgID, 0))
	second := resolvedValue(t, svc.ActivityOverview(testOrgID, 0))
	assert.Equal(t, first, second)

	seen := map[string]int{}
	for _, bucket := range [][]models.CampaignActivity{first.Today, first.Tomorrow, first.AlsoThisWeek} {
		for _, id := range activityIDs(bucket) {
			seen[id]++
		}
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, "activity %s placed in more than one bucket", id)
	}
	assert.ElementsMatch(t, []string{"callAssignment:1", "task:5"}, activityIDs(first.Today))

	assert.Equal(t, resolvedValue(t, svc.AllActivities(testOrgID, 0)), resolvedValue(t, svc.AllActivities(testOrgID, 0)))
}

func TestActivityServiceReadsEachSourceOncePerAggregation(t *testing.T) {
	fx := newActivityFixture()
	svc := fx.service()

	_ = svc.ActivityOverview(testOrgID, 0)

	assert.Equal(t, 1, fx.callAssignments.calls)
	assert.Equal(t, 1, fx.events.calls)
	assert.Equal(t, 1, fx.surveys.calls)
	assert.Equal(t, 1, fx.tasks.calls)
}
