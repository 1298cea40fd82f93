package repository

import (
	"database/sql"

	"github.com/noah-isme/organize-activities-api/internal/models"
)

// sourceRow holds the columns every activity source query selects.
type sourceRow struct {
	ID                int            `db:"id"`
	Title             string         `db:"title"`
	OrganizationID    int            `db:"organization_id"`
	OrganizationTitle string         `db:"organization_title"`
	CampaignID        sql.NullInt64  `db:"campaign_id"`
	CampaignTitle     sql.NullString `db:"campaign_title"`
}

func (r sourceRow) organization() models.OrganizationRef {
	return models.OrganizationRef{ID: r.OrganizationID, Title: r.OrganizationTitle}
}

func (r sourceRow) campaign() *models.CampaignRef {
	if !r.CampaignID.Valid {
		return nil
	}
	return &models.CampaignRef{ID: int(r.CampaignID.Int64), Title: r.CampaignTitle.String}
}

func optionalString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	value := ns.String
	return &value
}
