package models

// Event is a scheduled organizing event.
type Event struct {
	ID           int             `json:"id"`
	Title        string          `json:"title"`
	Organization OrganizationRef `json:"organization"`
	Campaign     *CampaignRef    `json:"campaign"`
	Location     *string         `json:"location,omitempty"`
	Published    string          `json:"published"`
	StartTime    string          `json:"start_time"`
	EndTime      string          `json:"end_time"`
	Cancelled    *string         `json:"cancelled,omitempty"`
}

func (Event) activityKind() ActivityKind { return ActivityKindEvent }

// CampaignRef implements ActivityData.
func (e Event) CampaignRef() *CampaignRef { return e.Campaign }

// ActivityID implements ActivityData.
func (e Event) ActivityID() int { return e.ID }

// ActivityTitle implements ActivityData.
func (e Event) ActivityTitle() string { return e.Title }
