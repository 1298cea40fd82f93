package models

// TaskType enumerates the kinds of task an organizer can hand out.
type TaskType string

const (
	TaskTypeOffline     TaskType = "offline"
	TaskTypeShare       TaskType = "share_link"
	TaskTypeVisitLink   TaskType = "visit_link"
	TaskTypeWatchVideo  TaskType = "watch_video"
	TaskTypeCollectDemo TaskType = "demographic"
)

// Task is a call to action. Unlike the other activity sources, its
// publication and expiry timestamps are optional.
type Task struct {
	ID           int             `json:"id"`
	Title        string          `json:"title"`
	Instructions string          `json:"instructions"`
	Type         TaskType        `json:"type"`
	Organization OrganizationRef `json:"organization"`
	Campaign     *CampaignRef    `json:"campaign"`
	Published    *string         `json:"published"`
	Expires      *string         `json:"expires"`
	Deadline     *string         `json:"deadline,omitempty"`
}

func (Task) activityKind() ActivityKind { return ActivityKindTask }

// CampaignRef implements ActivityData.
func (t Task) CampaignRef() *CampaignRef { return t.Campaign }

// ActivityID implements ActivityData.
func (t Task) ActivityID() int { return t.ID }

// ActivityTitle implements ActivityData.
func (t Task) ActivityTitle() string { return t.Title }
