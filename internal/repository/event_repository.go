package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/organize-activities-api/internal/models"
)

// EventRepository reads organizing events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository constructs the repository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

type eventRow struct {
	sourceRow
	Location  sql.NullString `db:"location"`
	Published sql.NullString `db:"published"`
	StartTime sql.NullString `db:"start_time"`
	EndTime   sql.NullString `db:"end_time"`
	Cancelled sql.NullString `db:"cancelled"`
}

// ListByOrganization returns every event of an organization, including
// unpublished drafts; visibility is decided by the aggregation layer.
func (r *EventRepository) ListByOrganization(ctx context.Context, orgID int) ([]models.Event, error) {
	const query = `SELECT e.id, e.title, e.organization_id, o.title AS organization_title,
e.campaign_id, c.title AS campaign_title, l.title AS location, e.published, e.start_time, e.end_time, e.cancelled
FROM events e
JOIN organizations o ON o.id = e.organization_id
LEFT JOIN campaigns c ON c.id = e.campaign_id
LEFT JOIN locations l ON l.id = e.location_id
WHERE e.organization_id = $1
ORDER BY e.start_time ASC, e.id ASC`
	var rows []eventRow
	if err := r.db.SelectContext(ctx, &rows, query, orgID); err != nil {
		return nil, fmt.Errorf("list events for org %d: %w", orgID, err)
	}
	result := make([]models.Event, 0, len(rows))
	for _, row := range rows {
		result = append(result, models.Event{
			ID:           row.ID,
			Title:        row.Title,
			Organization: row.organization(),
			Campaign:     row.campaign(),
			Location:     optionalString(row.Location),
			Published:    row.Published.String,
			StartTime:    row.StartTime.String,
			EndTime:      row.EndTime.String,
			Cancelled:    optionalString(row.Cancelled),
		})
	}
	return result, nil
}
