package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/insyte-io/linktrack/internal/model"
)

// UpsertVideoAnalytics stores or refreshes a metrics snapshot for a
// slug/video pair. Written by the external video-platform collaborator,
// never on the request path.
func (r *Repository) UpsertVideoAnalytics(ctx context.Context, va *model.VideoAnalytics) error {
	query := `
		INSERT INTO video_analytics (id, slug, video_id, views, likes, comments, engagement_rate, avg_view_duration, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (slug, video_id) DO UPDATE SET
			views = EXCLUDED.views,
			likes = EXCLUDED.likes,
			comments = EXCLUDED.comments,
			engagement_rate = EXCLUDED.engagement_rate,
			avg_view_duration = EXCLUDED.avg_view_duration,
			last_updated = EXCLUDED.last_updated
	`

	_, err := r.pool.Exec(ctx, query,
		va.ID,
		va.Slug,
		va.VideoID,
		va.Views,
		va.Likes,
		va.Comments,
		va.EngagementRate,
		va.AvgViewDuration,
		va.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert video analytics: %w", err)
	}

	return nil
}

// LatestVideoAnalytics returns the freshest snapshot for a slug whose
// last_updated falls inside the window, or nil when none exists.
func (r *Repository) LatestVideoAnalytics(ctx context.Context, slug string, w model.Window) (*model.VideoAnalytics, error) {
	query := `
		SELECT id, slug, video_id, views, likes, comments, engagement_rate, avg_view_duration, last_updated
		FROM video_analytics
		WHERE slug = $1
	`
	args := []any{slug}
	query, args = appendWindow(query, "last_updated", w, args)
	query += ` ORDER BY last_updated DESC LIMIT 1`

	var va model.VideoAnalytics
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&va.ID,
		&va.Slug,
		&va.VideoID,
		&va.Views,
		&va.Likes,
		&va.Comments,
		&va.EngagementRate,
		&va.AvgViewDuration,
		&va.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find video analytics: %w", err)
	}

	return &va, nil
}
