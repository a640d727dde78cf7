package repository

import (
	"context"
	"fmt"

	"github.com/insyte-io/linktrack/internal/model"
)

// InsertCall records a booking event. Called by the external booking
// collaborator's ingest path and by tests; reports only read calls.
func (r *Repository) InsertCall(ctx context.Context, call *model.Call) error {
	query := `
		INSERT INTO calls (id, slug, email, status, timestamp)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		call.ID,
		call.Slug,
		call.Email,
		call.Status,
		call.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert call: %w", err)
	}

	return nil
}

// UpdateCallStatus stores a new status for a call. Reports classify
// rows by whatever status is currently stored; transition legality is
// the booking collaborator's concern.
func (r *Repository) UpdateCallStatus(ctx context.Context, id string, status model.CallStatus) error {
	result, err := r.pool.Exec(ctx, `UPDATE calls SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update call status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("call %s not found", id)
	}

	return nil
}

// CountCallsByStatus counts calls with the given status for a slug
// inside the window.
func (r *Repository) CountCallsByStatus(ctx context.Context, slug string, status model.CallStatus, w model.Window) (int64, error) {
	query := `SELECT COUNT(*) FROM calls WHERE slug = $1 AND status = $2`
	args := []any{slug, status}
	query, args = appendWindow(query, "timestamp", w, args)

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count calls: %w", err)
	}

	return count, nil
}

// QueryCalls returns call rows for a slug inside the window, ordered by
// timestamp.
func (r *Repository) QueryCalls(ctx context.Context, slug string, w model.Window) ([]*model.Call, error) {
	query := `SELECT id, slug, email, status, timestamp FROM calls WHERE slug = $1`
	args := []any{slug}
	query, args = appendWindow(query, "timestamp", w, args)
	query += ` ORDER BY timestamp ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query calls: %w", err)
	}
	defer rows.Close()

	var calls []*model.Call
	for rows.Next() {
		var call model.Call
		if err := rows.Scan(&call.ID, &call.Slug, &call.Email, &call.Status, &call.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan call: %w", err)
		}
		calls = append(calls, &call)
	}

	return calls, rows.Err()
}
