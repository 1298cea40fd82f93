package service

import (
	"time"

	"github.com/noah-isme/organize-activities-api/internal/models"
	"github.com/noah-isme/organize-activities-api/pkg/dateutil"
)

// buildOverview splits activities into today, tomorrow and the rest of the
// coming week. Each activity lands in at most one bucket, the earliest that
// matches, and input order is kept within a bucket.
func buildOverview(activities []models.CampaignActivity, now time.Time, loc *time.Location) models.ActivityOverview {
	overview := models.ActivityOverview{
		Today:        []models.CampaignActivity{},
		Tomorrow:     []models.CampaignActivity{},
		AlsoThisWeek: []models.CampaignActivity{},
	}

	tomorrow := now.AddDate(0, 0, 1)
	startOfToday := dateutil.StartOfUTCDay(now)
	weekFromNow := startOfToday.AddDate(0, 0, 8)

	for _, activity := range activities {
		switch {
		case occursOn(activity, now, loc):
			overview.Today = append(overview.Today, activity)
		case occursOn(activity, tomorrow, loc):
			overview.Tomorrow = append(overview.Tomorrow, activity)
		case dueThisWeek(activity, startOfToday, weekFromNow, loc):
			overview.AlsoThisWeek = append(overview.AlsoThisWeek, activity)
		}
	}
	return overview
}

// occursOn reports whether an activity belongs to day's bucket. Events count
// on the day they start; everything else on the day it opens or closes.
// Visibility bounds are date-only values, so they are matched by date.
func occursOn(activity models.CampaignActivity, day time.Time, loc *time.Location) bool {
	if event, ok := activity.Data.(models.Event); ok {
		start, parsed := dateutil.ParseTimestamp(event.StartTime, loc)
		return parsed && dateutil.IsSameDate(start, day, loc)
	}
	if activity.VisibleFrom != nil && dateutil.IsDateOn(*activity.VisibleFrom, day, loc) {
		return true
	}
	return activity.VisibleUntil != nil && dateutil.IsDateOn(*activity.VisibleUntil, day, loc)
}

func dueThisWeek(activity models.CampaignActivity, startOfToday, weekFromNow time.Time, loc *time.Location) bool {
	if event, ok := activity.Data.(models.Event); ok {
		return eventDueThisWeek(event, startOfToday, weekFromNow, loc)
	}
	if activity.VisibleFrom == nil || !activity.VisibleFrom.Before(weekFromNow) {
		return false
	}
	return activity.VisibleUntil == nil || !activity.VisibleUntil.Before(startOfToday)
}

// eventDueThisWeek keeps events starting inside the week, events spanning it
// and events that started before today and end before the week is over.
func eventDueThisWeek(event models.Event, startOfToday, weekFromNow time.Time, loc *time.Location) bool {
	start, hasStart := dateutil.ParseTimestamp(event.StartTime, loc)
	if !hasStart {
		return false
	}
	if start.After(startOfToday) && start.Before(weekFromNow) {
		return true
	}
	end, hasEnd := dateutil.ParseTimestamp(event.EndTime, loc)
	if !hasEnd || !start.Before(startOfToday) {
		return false
	}
	return end.After(weekFromNow) || end.Before(weekFromNow)
}
