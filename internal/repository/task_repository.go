package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/organize-activities-api/internal/models"
)

// TaskRepository reads tasks.
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository constructs the repository.
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

type taskRow struct {
	sourceRow
	Instructions sql.NullString `db:"instructions"`
	Type         string         `db:"type"`
	Published    sql.NullString `db:"published"`
	Expires      sql.NullString `db:"expires"`
	Deadline     sql.NullString `db:"deadline"`
}

// ListByOrganization returns every task of an organization. Tasks can be
// unpublished and open-ended, so published and expires stay optional.
func (r *TaskRepository) ListByOrganization(ctx context.Context, orgID int) ([]models.Task, error) {
	const query = `SELECT t.id, t.title, t.instructions, t.type, t.organization_id, o.title AS organization_title,
t.campaign_id, c.title AS campaign_title, t.published, t.expires, t.deadline
FROM tasks t
JOIN organizations o ON o.id = t.organization_id
LEFT JOIN campaigns c ON c.id = t.campaign_id
WHERE t.organization_id = $1
ORDER BY t.id`
	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, orgID); err != nil {
		return nil, fmt.Errorf("list tasks for org %d: %w", orgID, err)
	}
	result := make([]models.Task, 0, len(rows))
	for _, row := range rows {
		result = append(result, models.Task{
			ID:           row.ID,
			Title:        row.Title,
			Instructions: row.Instructions.String,
			Type:         models.TaskType(row.Type),
			Organization: row.organization(),
			Campaign:     row.campaign(),
			Published:    optionalString(row.Published),
			Expires:      optionalString(row.Expires),
			Deadline:     optionalString(row.Deadline),
		})
	}
	return result, nil
}
