package models

import "time"

// ActivityKind discriminates the sources merged into CampaignActivity.
type ActivityKind string

const (
	ActivityKindCallAssignment ActivityKind = "callAssignment"
	ActivityKindEvent          ActivityKind = "event"
	ActivityKindSurvey         ActivityKind = "survey"
	ActivityKindTask           ActivityKind = "task"
)

// ActivityKinds lists every kind in aggregation order.
var ActivityKinds = []ActivityKind{
	ActivityKindCallAssignment,
	ActivityKindEvent,
	ActivityKindSurvey,
	ActivityKindTask,
}

// ActivityData is implemented by CallAssignment, Event, Survey and Task only;
// the unexported method keeps the set closed to this package.
type ActivityData interface {
	activityKind() ActivityKind
	CampaignRef() *CampaignRef
	ActivityID() int
	ActivityTitle() string
}

// CampaignActivity is one entry of the merged activity list.
type CampaignActivity struct {
	Kind         ActivityKind
	Data         ActivityData
	VisibleFrom  *time.Time
	VisibleUntil *time.Time
}

// NewCampaignActivity wraps data, deriving Kind from the concrete type.
func NewCampaignActivity(data ActivityData, visibleFrom, visibleUntil *time.Time) CampaignActivity {
	return CampaignActivity{
		Kind:         data.activityKind(),
		Data:         data,
		VisibleFrom:  visibleFrom,
		VisibleUntil: visibleUntil,
	}
}

// CampaignID returns the linked campaign id and false for standalone items.
func (a CampaignActivity) CampaignID() (int, bool) {
	if a.Data == nil {
		return 0, false
	}
	ref := a.Data.CampaignRef()
	if ref == nil {
		return 0, false
	}
	return ref.ID, true
}

// IsStandalone reports whether the activity belongs to no campaign.
func (a CampaignActivity) IsStandalone() bool {
	_, linked := a.CampaignID()
	return !linked
}

// ActivityOverview groups current activities by temporal proximity. The
// three lists never share an activity.
type ActivityOverview struct {
	Today        []CampaignActivity
	Tomorrow     []CampaignActivity
	AlsoThisWeek []CampaignActivity
}
