package models

// CallAssignment is a phone-banking assignment. Dates are serialized
// timestamps as delivered by the data layer.
type CallAssignment struct {
	ID           int             `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Organization OrganizationRef `json:"organization"`
	Campaign     *CampaignRef    `json:"campaign"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
}

func (CallAssignment) activityKind() ActivityKind { return ActivityKindCallAssignment }

// CampaignRef implements ActivityData.
func (c CallAssignment) CampaignRef() *CampaignRef { return c.Campaign }

// ActivityID implements ActivityData.
func (c CallAssignment) ActivityID() int { return c.ID }

// ActivityTitle implements ActivityData.
func (c CallAssignment) ActivityTitle() string { return c.Title }
