package models

// OrganizationRef is the compact organization reference embedded in entities.
type OrganizationRef struct {
	ID    int    `db:"id" json:"id"`
	Title string `db:"title" json:"title"`
}

// CampaignRef is the compact campaign (project) reference embedded in
// entities. A nil *CampaignRef marks a standalone item.
type CampaignRef struct {
	ID    int    `db:"id" json:"id"`
	Title string `db:"title" json:"title"`
}
