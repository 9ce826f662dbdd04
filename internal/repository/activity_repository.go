package repository

import (
	"context"
	"database/sql"

	"github.com/rivieraprestige/concierge-api/internal/model"
)

// ActivityRepo persists audit rows in the `activity_log` table. Inserts come
// from the queue consumer; reads serve the back-office activity viewer.
type ActivityRepo struct{ DB *sql.DB }

func NewActivityRepo(db *sql.DB) *ActivityRepo { return &ActivityRepo{DB: db} }

// Insert appends one audit row. INSERT IGNORE makes redelivered queue
// messages harmless: the event_id column is unique.
func (r *ActivityRepo) Insert(ctx context.Context, e *model.ActivityEntry) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT IGNORE INTO activity_log
		 (event_id,action,entity_type,entity_id,details,actor_id,actor_email,actor_name,occurred_at)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		e.EventID, e.Action, e.EntityType, e.EntityID, e.Details,
		e.ActorID, e.ActorEmail, e.ActorName, e.OccurredAt)
	return err
}

// ListPage returns one page of audit rows, newest first, plus the total count.
func (r *ActivityRepo) ListPage(ctx context.Context, page, pageSize int) ([]model.ActivityEntry, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM activity_log").Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT id,event_id,action,entity_type,entity_id,details,actor_id,actor_email,actor_name,occurred_at,created_at
		 FROM activity_log ORDER BY occurred_at DESC LIMIT ? OFFSET ?`,
		pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []model.ActivityEntry{}
	for rows.Next() {
		var e model.ActivityEntry
		if err := rows.Scan(&e.ID, &e.EventID, &e.Action, &e.EntityType, &e.EntityID, &e.Details,
			&e.ActorID, &e.ActorEmail, &e.ActorName, &e.OccurredAt, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

// Recent returns the n most recent audit rows for the dashboard.
func (r *ActivityRepo) Recent(ctx context.Context, n int) ([]model.ActivityEntry, error) {
	if n < 1 || n > 50 {
		n = 10
	}
	items, _, err := r.ListPage(ctx, 1, n)
	return items, err
}

// CountByEntity returns audit row counts grouped by entity type.
func (r *ActivityRepo) CountByEntity(ctx context.Context) (map[string]int64, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT entity_type, COUNT(*) FROM activity_log GROUP BY entity_type")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int64{}
	for rows.Next() {
		var entity string
		var n int64
		if err := rows.Scan(&entity, &n); err != nil {
			return nil, err
		}
		out[entity] = n
	}
	return out, rows.Err()
}
