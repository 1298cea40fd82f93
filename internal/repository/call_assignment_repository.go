package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/organize-activities-api/internal/models"
)

// CallAssignmentRepository reads call assignments.
type CallAssignmentRepository struct {
	db *sqlx.DB
}

// NewCallAssignmentRepository constructs the repository.
func NewCallAssignmentRepository(db *sqlx.DB) *CallAssignmentRepository {
	return &CallAssignmentRepository{db: db}
}

type callAssignmentRow struct {
	sourceRow
	Description sql.NullString `db:"description"`
	StartDate   sql.NullString `db:"start_date"`
	EndDate     sql.NullString `db:"end_date"`
}

// ListByOrganization returns every call assignment of an organization.
func (r *CallAssignmentRepository) ListByOrganization(ctx context.Context, orgID int) ([]models.CallAssignment, error) {
	const query = `SELECT ca.id, ca.title, ca.description, ca.organization_id, o.title AS organization_title,
ca.campaign_id, c.title AS campaign_title, ca.start_date, ca.end_date
FROM call_assignments ca
JOIN organizations o ON o.id = ca.organization_id
LEFT JOIN campaigns c ON c.id = ca.campaign_id
WHERE ca.organization_id = $1
ORDER BY ca.id`
	var rows []callAssignmentRow
	if err := r.db.SelectContext(ctx, &rows, query, orgID); err != nil {
		return nil, fmt.Errorf("list call assignments for org %d: %w", orgID, err)
	}
	result := make([]models.CallAssignment, 0, len(rows))
	for _, row := range rows {
		result = append(result, models.CallAssignment{
			ID:           row.ID,
			Title:        row.Title,
			Description:  row.Description.String,
			Organization: row.organization(),
			Campaign:     row.campaign(),
			StartDate:    row.StartDate.String,
			EndDate:      row.EndDate.String,
		})
	}
	return result, nil
}
