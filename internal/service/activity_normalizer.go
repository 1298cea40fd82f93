package service

import (
	"time"

	"github.com/noah-isme/organize-activities-api/internal/models"
	"github.com/noah-isme/organize-activities-api/pkg/dateutil"
)

// visibilityWindow derives the date-only window in which an item is shown.
func visibilityWindow(data models.ActivityData, loc *time.Location) (from, until *time.Time) {
	switch d := data.(type) {
	case models.CallAssignment:
		return dateutil.DateOnlyUTC(d.StartDate, loc), dateutil.DateOnlyUTC(d.EndDate, loc)
	case models.Event:
		return dateutil.DateOnlyUTC(d.Published, loc), dateutil.DateOnlyUTC(d.EndTime, loc)
	case models.Survey:
		return dateutil.DateOnlyUTC(d.Published, loc), dateutil.DateOnlyUTC(d.Expires, loc)
	case models.Task:
		return optionalDate(d.Published, loc), optionalDate(d.Expires, loc)
	default:
		return nil, nil
	}
}

func optionalDate(raw *string, loc *time.Location) *time.Time {
	if raw == nil {
		return nil
	}
	return dateutil.DateOnlyUTC(*raw, loc)
}

// normalize wraps raw source items as activities, keeping only those linked to
// campaignID when it is non-zero. Input order is preserved.
func normalize[T models.ActivityData](items []T, campaignID int, loc *time.Location) []models.CampaignActivity {
	result := make([]models.CampaignActivity, 0, len(items))
	for _, item := range items {
		if campaignID != 0 {
			ref := item.CampaignRef()
			if ref == nil || ref.ID != campaignID {
				continue
			}
		}
		from, until := visibilityWindow(item, loc)
		result = append(result, models.NewCampaignActivity(item, from, until))
	}
	return result
}
