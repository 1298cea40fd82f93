package dto

import (
	"time"

	"github.com/noah-isme/organize-activities-api/internal/models"
)

// ActivityResponse is the wire form of one campaign activity.
type ActivityResponse struct {
	Kind         models.ActivityKind `json:"kind"`
	Data         models.ActivityData `json:"data"`
	VisibleFrom  *time.Time          `json:"visibleFrom"`
	VisibleUntil *time.Time          `json:"visibleUntil"`
}

// ActivityOverviewResponse groups activities by temporal proximity.
type ActivityOverviewResponse struct {
	Today        []ActivityResponse `json:"today"`
	Tomorrow     []ActivityResponse `json:"tomorrow"`
	AlsoThisWeek []ActivityResponse `json:"alsoThisWeek"`
}

// RefreshResponse reports which sources were queued for reload.
type RefreshResponse struct {
	OrgID   int      `json:"orgId"`
	Sources []string `json:"sources"`
}

// NewActivityList converts activities keeping their order.
func NewActivityList(activities []models.CampaignActivity) []ActivityResponse {
	result := make([]ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		result = append(result, ActivityResponse{
			Kind:         activity.Kind,
			Data:         activity.Data,
			VisibleFrom:  activity.VisibleFrom,
			VisibleUntil: activity.VisibleUntil,
		})
	}
	return result
}

// NewActivityOverview converts an overview.
func NewActivityOverview(overview models.ActivityOverview) ActivityOverviewResponse {
	return ActivityOverviewResponse{
		Today:        NewActivityList(overview.Today),
		Tomorrow:     NewActivityList(overview.Tomorrow),
		AlsoThisWeek: NewActivityList(overview.AlsoThisWeek),
	}
}
