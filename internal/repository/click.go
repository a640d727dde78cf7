package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/insyte-io/linktrack/internal/model"
)

// InsertClick appends one click row. Clicks are never updated or
// deleted; a failed insert is surfaced to the caller so the redirect
// can be aborted rather than issued without attribution.
func (r *Repository) InsertClick(ctx context.Context, click *model.Click) error {
	query := `
		INSERT INTO clicks (id, slug, timestamp, ip_address, referrer)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		click.ID,
		click.Slug,
		click.Timestamp,
		click.IPAddress,
		nullableString(click.Referrer),
	)
	if err != nil {
		return fmt.Errorf("failed to insert click: %w", err)
	}

	return nil
}

// CountClicks counts clicks for a slug inside the window.
func (r *Repository) CountClicks(ctx context.Context, slug string, w model.Window) (int64, error) {
	query := `SELECT COUNT(*) FROM clicks WHERE slug = $1`
	args := []any{slug}
	query, args = appendWindow(query, "timestamp", w, args)

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count clicks: %w", err)
	}

	return count, nil
}

// ClicksByDay returns the daily click histogram for a slug inside the
// window, ascending by date. Days without clicks are absent.
func (r *Repository) ClicksByDay(ctx context.Context, slug string, w model.Window) ([]model.DailyClickCount, error) {
	query := `SELECT (timestamp AT TIME ZONE 'UTC')::date AS day, COUNT(*) FROM clicks WHERE slug = $1`
	args := []any{slug}
	query, args = appendWindow(query, "timestamp", w, args)
	query += ` GROUP BY day ORDER BY day ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query clicks by day: %w", err)
	}
	defer rows.Close()

	var series []model.DailyClickCount
	for rows.Next() {
		var day time.Time
		var count int64
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("failed to scan daily clicks: %w", err)
		}
		series = append(series, model.DailyClickCount{
			Date:  day.Format("2006-01-02"),
			Count: count,
		})
	}

	return series, rows.Err()
}

// QueryClicks returns raw click rows for a slug inside the window,
// ordered by timestamp.
func (r *Repository) QueryClicks(ctx context.Context, slug string, w model.Window) ([]*model.Click, error) {
	query := `SELECT id, slug, timestamp, ip_address, COALESCE(referrer, '') FROM clicks WHERE slug = $1`
	args := []any{slug}
	query, args = appendWindow(query, "timestamp", w, args)
	query += ` ORDER BY timestamp ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query clicks: %w", err)
	}
	defer rows.Close()

	var clicks []*model.Click
	for rows.Next() {
		var click model.Click
		if err := rows.Scan(&click.ID, &click.Slug, &click.Timestamp, &click.IPAddress, &click.Referrer); err != nil {
			return nil, fmt.Errorf("failed to scan click: %w", err)
		}
		clicks = append(clicks, &click)
	}

	return clicks, rows.Err()
}

// nullableString returns nil for empty strings.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
