package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/insyte-io/linktrack/internal/model"
)

// Common errors for link repository operations.
var (
	ErrLinkNotFound = errors.New("link not found")
	ErrSlugExists   = errors.New("slug already exists")
)

const videoLinkColumns = "id, slug, title, destination_url, utm_source, utm_medium, utm_campaign, created_at"

// CreateLink inserts a new video link into the database.
func (r *Repository) CreateLink(ctx context.Context, link *model.VideoLink) error {
	query := `
		INSERT INTO video_links (id, slug, title, destination_url, utm_source, utm_medium, utm_campaign, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		link.ID,
		link.Slug,
		link.Title,
		link.DestinationURL,
		link.UTMSource,
		link.UTMMedium,
		link.UTMCampaign,
		link.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlugExists
		}
		return fmt.Errorf("failed to create link: %w", err)
	}

	return nil
}

// FindLinkBySlug retrieves a video link by its slug.
// This is the hot path for redirects.
func (r *Repository) FindLinkBySlug(ctx context.Context, slug string) (*model.VideoLink, error) {
	query := `SELECT ` + videoLinkColumns + ` FROM video_links WHERE slug = $1`

	link, err := scanVideoLink(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to find link by slug: %w", err)
	}

	return link, nil
}

// ListLinks retrieves all video links, most recently created first.
func (r *Repository) ListLinks(ctx context.Context) ([]*model.VideoLink, error) {
	query := `SELECT ` + videoLinkColumns + ` FROM video_links ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	defer rows.Close()

	return collectVideoLinks(rows)
}

// DeleteLink removes a video link. Dependent clicks, calls, payments and
// analytics rows go with it via ON DELETE CASCADE.
func (r *Repository) DeleteLink(ctx context.Context, slug string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM video_links WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrLinkNotFound
	}

	return nil
}

// SlugExists checks if a slug is already taken.
func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM video_links WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slug existence: %w", err)
	}

	return exists, nil
}

// scanVideoLink scans a single row into a VideoLink model.
func scanVideoLink(row pgx.Row) (*model.VideoLink, error) {
	var link model.VideoLink
	err := row.Scan(
		&link.ID,
		&link.Slug,
		&link.Title,
		&link.DestinationURL,
		&link.UTMSource,
		&link.UTMMedium,
		&link.UTMCampaign,
		&link.CreatedAt,
	)
	return &link, err
}

func collectVideoLinks(rows pgx.Rows) ([]*model.VideoLink, error) {
	var links []*model.VideoLink
	for rows.Next() {
		link, err := scanVideoLink(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating links: %w", err)
	}

	return links, nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	// PostgreSQL error code 23505 is unique_violation
	return err != nil && (strings.Contains(err.Error(), "23505") || strings.Contains(err.Error(), "unique"))
}
