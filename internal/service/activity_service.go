package service

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/organize-activities-api/internal/models"
	"github.com/noah-isme/organize-activities-api/pkg/dateutil"
	"github.com/noah-isme/organize-activities-api/pkg/future"
)

const (
	futureStateLoading  = "loading"
	futureStateErrored  = "errored"
	futureStateResolved = "resolved"
)

type activitySource[T any] interface {
	Get(orgID int) future.Future[[]T]
}

// ActivityServiceParams wires the activity sources and runtime settings.
type ActivityServiceParams struct {
	CallAssignments activitySource[models.CallAssignment]
	Events          activitySource[models.Event]
	Surveys         activitySource[models.Survey]
	Tasks           activitySource[models.Task]
	Location        *time.Location
	Metrics         *MetricsService
	Logger          *zap.Logger
	Now             func() time.Time
}

// ActivityService merges the four activity sources of an organization and
// derives the current, campaign, archived and overview views from them.
type ActivityService struct {
	callAssignments activitySource[models.CallAssignment]
	events          activitySource[models.Event]
	surveys         activitySource[models.Survey]
	tasks           activitySource[models.Task]

	loc     *time.Location
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
}

// NewActivityService constructs an ActivityService.
func NewActivityService(params ActivityServiceParams) *ActivityService {
	if params.Location == nil {
		params.Location = time.UTC
	}
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &ActivityService{
		callAssignments: params.CallAssignments,
		events:          params.Events,
		surveys:         params.Surveys,
		tasks:           params.Tasks,
		loc:             params.Location,
		metrics:         params.Metrics,
		logger:          params.Logger,
		now:             params.Now,
	}
}

// Location returns the zone used for calendar-date comparisons.
func (s *ActivityService) Location() *time.Location {
	return s.loc
}

// AllActivities returns every activity of the organization, optionally
// limited to one campaign (campaignID 0 means no filter), most recently
// visible first.
func (s *ActivityService) AllActivities(orgID, campaignID int) future.Future[[]models.CampaignActivity] {
	return s.observe("all", orgID, s.allActivities(orgID, campaignID))
}

// CurrentActivities returns activities not yet past their visibility window.
func (s *ActivityService) CurrentActivities(orgID int) future.Future[[]models.CampaignActivity] {
	return s.observe("current", orgID, s.currentActivities(orgID, s.now()))
}

// CampaignActivities returns the current activities linked to campaignID.
func (s *ActivityService) CampaignActivities(orgID, campaignID int) future.Future[[]models.CampaignActivity] {
	return s.observe("campaign", orgID, s.campaignActivities(orgID, campaignID, s.now()))
}

// ArchivedActivities returns activities whose visibility window has closed.
func (s *ActivityService) ArchivedActivities(orgID, campaignID int) future.Future[[]models.CampaignActivity] {
	return s.observe("archived", orgID, s.archivedActivities(orgID, campaignID, s.now()))
}

// ArchivedStandaloneActivities returns archived activities without a campaign.
func (s *ActivityService) ArchivedStandaloneActivities(orgID int) future.Future[[]models.CampaignActivity] {
	archived := s.archivedActivities(orgID, 0, s.now())
	return s.observe("archived_standalone", orgID, future.Map(archived, func(list []models.CampaignActivity) []models.CampaignActivity {
		return filterActivities(list, models.CampaignActivity.IsStandalone)
	}))
}

// ActivityOverview buckets the current activities, or the campaign's when
// campaignID is non-zero, into today, tomorrow and the rest of the week.
func (s *ActivityService) ActivityOverview(orgID, campaignID int) future.Future[models.ActivityOverview] {
	now := s.now()
	var source future.Future[[]models.CampaignActivity]
	if campaignID != 0 {
		source = s.campaignActivities(orgID, campaignID, now)
	} else {
		source = s.currentActivities(orgID, now)
	}
	overview := future.Map(source, func(list []models.CampaignActivity) models.ActivityOverview {
		return buildOverview(list, now, s.loc)
	})

	state := stateOf(overview)
	items := 0
	if value, ok := overview.Value(); ok {
		items = len(value.Today) + len(value.Tomorrow) + len(value.AlsoThisWeek)
	}
	s.metrics.RecordActivityQuery("overview", state, items)
	s.logState("overview", orgID, state, overview.Err)
	return overview
}

type sourceStatus struct {
	name    string
	loading bool
	hasData bool
	err     error
}

func statusOf[T any](name string, f future.Future[T]) sourceStatus {
	return sourceStatus{name: name, loading: f.IsLoading, hasData: f.HasData(), err: f.Err}
}

func (s *ActivityService) allActivities(orgID, campaignID int) future.Future[[]models.CampaignActivity] {
	callAssignments := s.callAssignments.Get(orgID)
	events := s.events.Get(orgID)
	surveys := s.surveys.Get(orgID)
	tasks := s.tasks.Get(orgID)

	statuses := []sourceStatus{
		statusOf(SourceCallAssignments, callAssignments),
		statusOf(SourceEvents, events),
		statusOf(SourceSurveys, surveys),
		statusOf(SourceTasks, tasks),
	}
	for _, st := range statuses {
		if st.loading && !st.hasData {
			return future.Loading[[]models.CampaignActivity]()
		}
	}
	for _, st := range statuses {
		if st.err != nil {
			return future.Errored[[]models.CampaignActivity](st.err)
		}
	}
	for _, st := range statuses {
		if !st.hasData {
			return future.Loading[[]models.CampaignActivity]()
		}
	}

	callAssignmentItems, _ := callAssignments.Value()
	eventItems, _ := events.Value()
	surveyItems, _ := surveys.Value()
	taskItems, _ := tasks.Value()

	activities := make([]models.CampaignActivity, 0,
		len(callAssignmentItems)+len(eventItems)+len(surveyItems)+len(taskItems))
	activities = append(activities, normalize(callAssignmentItems, campaignID, s.loc)...)
	activities = append(activities, normalize(eventItems, campaignID, s.loc)...)
	activities = append(activities, normalize(surveyItems, campaignID, s.loc)...)
	activities = append(activities, normalize(taskItems, campaignID, s.loc)...)

	sort.SliceStable(activities, func(i, j int) bool {
		return dateutil.CompareNilFirstDesc(activities[i].VisibleFrom, activities[j].VisibleFrom) < 0
	})
	return future.Resolved(activities)
}

func (s *ActivityService) currentActivities(orgID int, now time.Time) future.Future[[]models.CampaignActivity] {
	startOfToday := dateutil.LocalDateUTC(now, s.loc)
	return future.Map(s.allActivities(orgID, 0), func(list []models.CampaignActivity) []models.CampaignActivity {
		return filterActivities(list, func(a models.CampaignActivity) bool {
			return a.VisibleUntil == nil || !a.VisibleUntil.Before(startOfToday)
		})
	})
}

func (s *ActivityService) campaignActivities(orgID, campaignID int, now time.Time) future.Future[[]models.CampaignActivity] {
	return future.Map(s.currentActivities(orgID, now), func(list []models.CampaignActivity) []models.CampaignActivity {
		return filterActivities(list, func(a models.CampaignActivity) bool {
			id, linked := a.CampaignID()
			return linked && id == campaignID
		})
	})
}

func (s *ActivityService) archivedActivities(orgID, campaignID int, now time.Time) future.Future[[]models.CampaignActivity] {
	startOfToday := dateutil.LocalDateUTC(now, s.loc)
	return future.Map(s.allActivities(orgID, campaignID), func(list []models.CampaignActivity) []models.CampaignActivity {
		return filterActivities(list, func(a models.CampaignActivity) bool {
			return a.VisibleFrom != nil && a.VisibleUntil != nil && a.VisibleUntil.Before(startOfToday)
		})
	})
}

func filterActivities(list []models.CampaignActivity, keep func(models.CampaignActivity) bool) []models.CampaignActivity {
	result := make([]models.CampaignActivity, 0, len(list))
	for _, activity := range list {
		if keep(activity) {
			result = append(result, activity)
		}
	}
	return result
}

func stateOf[T any](f future.Future[T]) string {
	switch {
	case f.IsLoading:
		return futureStateLoading
	case f.Err != nil:
		return futureStateErrored
	case f.HasData():
		return futureStateResolved
	default:
		return futureStateLoading
	}
}

func (s *ActivityService) observe(query string, orgID int, f future.Future[[]models.CampaignActivity]) future.Future[[]models.CampaignActivity] {
	state := stateOf(f)
	items, _ := f.Value()
	s.metrics.RecordActivityQuery(query, state, len(items))
	s.logState(query, orgID, state, f.Err)
	return f
}

func (s *ActivityService) logState(query string, orgID int, state string, err error) {
	switch state {
	case futureStateErrored:
		s.logger.Warn("activity query failed", zap.String("query", query), zap.Int("org_id", orgID), zap.Error(err))
	case futureStateLoading:
		s.logger.Debug("activity sources loading", zap.String("query", query), zap.Int("org_id", orgID))
	}
}
