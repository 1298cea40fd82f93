package models

// Survey is a questionnaire published to members or the public.
type Survey struct {
	ID           int             `json:"id"`
	Title        string          `json:"title"`
	Organization OrganizationRef `json:"organization"`
	Campaign     *CampaignRef    `json:"campaign"`
	AccessLevel  string          `json:"access"`
	Published    string          `json:"published"`
	Expires      string          `json:"expires"`
}

func (Survey) activityKind() ActivityKind { return ActivityKindSurvey }

// CampaignRef implements ActivityData.
func (s Survey) CampaignRef() *CampaignRef { return s.Campaign }

// ActivityID implements ActivityData.
func (s Survey) ActivityID() int { return s.ID }

// ActivityTitle implements ActivityData.
func (s Survey) ActivityTitle() string { return s.Title }
