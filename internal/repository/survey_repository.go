package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/organize-activities-api/internal/models"
)

// SurveyRepository reads surveys.
type SurveyRepository struct {
	db *sqlx.DB
}

// NewSurveyRepository constructs the repository.
func NewSurveyRepository(db *sqlx.DB) *SurveyRepository {
	return &SurveyRepository{db: db}
}

type surveyRow struct {
	sourceRow
	AccessLevel string         `db:"access"`
	Published   sql.NullString `db:"published"`
	Expires     sql.NullString `db:"expires"`
}

// ListByOrganization returns every survey of an organization.
func (r *SurveyRepository) ListByOrganization(ctx context.Context, orgID int) ([]models.Survey, error) {
	const query = `SELECT s.id, s.title, s.organization_id, o.title AS organization_title,
s.campaign_id, c.title AS campaign_title, s.access, s.published, s.expires
FROM surveys s
JOIN organizations o ON o.id = s.organization_id
LEFT JOIN campaigns c ON c.id = s.campaign_id
WHERE s.organization_id = $1
ORDER BY s.id`
	var rows []surveyRow
	if err := r.db.SelectContext(ctx, &rows, query, orgID); err != nil {
		return nil, fmt.Errorf("list surveys for org %d: %w", orgID, err)
	}
	result := make([]models.Survey, 0, len(rows))
	for _, row := range rows {
		result = append(result, models.Survey{
			ID:           row.ID,
			Title:        row.Title,
			Organization: row.organization(),
			Campaign:     row.campaign(),
			AccessLevel:  row.AccessLevel,
			Published:    row.Published.String,
			Expires:      row.Expires.String,
		})
	}
	return result, nil
}
