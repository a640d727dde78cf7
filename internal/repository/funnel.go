package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/insyte-io/linktrack/internal/model"
)

// LinkFunnelStats computes the funnel rollup for every link, most
// recently created first. The whole report runs inside one
// repeatable-read read-only transaction so clicks recorded while the
// report is running can never be half-counted across tables.
func (r *Repository) LinkFunnelStats(ctx context.Context, w model.Window) ([]*model.LinkStats, error) {
	tx, err := r.beginReportTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `SELECT `+videoLinkColumns+` FROM video_links ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list links for funnel: %w", err)
	}

	links, err := collectVideoLinks(rows)
	if err != nil {
		return nil, err
	}

	stats := make([]*model.LinkStats, 0, len(links))
	for _, link := range links {
		s, err := linkStatsTx(ctx, tx, link, w)
		if err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit funnel read: %w", err)
	}

	return stats, nil
}

// SlugFunnelStats computes the funnel rollup for one link.
func (r *Repository) SlugFunnelStats(ctx context.Context, slug string, w model.Window) (*model.LinkStats, error) {
	tx, err := r.beginReportTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	link, err := scanVideoLink(tx.QueryRow(ctx, `SELECT `+videoLinkColumns+` FROM video_links WHERE slug = $1`, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to find link for funnel: %w", err)
	}

	stats, err := linkStatsTx(ctx, tx, link, w)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit funnel read: %w", err)
	}

	return stats, nil
}

func (r *Repository) beginReportTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin report transaction: %w", err)
	}
	return tx, nil
}

// linkStatsTx joins clicks, booked calls and payments for one link
// inside the caller's snapshot.
func linkStatsTx(ctx context.Context, tx pgx.Tx, link *model.VideoLink, w model.Window) (*model.LinkStats, error) {
	stats := &model.LinkStats{
		ID:             link.ID,
		Slug:           link.Slug,
		Title:          link.Title,
		DestinationURL: link.DestinationURL,
		CreatedAt:      link.CreatedAt,
	}

	query := `SELECT COUNT(*) FROM clicks WHERE slug = $1`
	args := []any{link.Slug}
	query, args = appendWindow(query, "timestamp", w, args)
	if err := tx.QueryRow(ctx, query, args...).Scan(&stats.Clicks); err != nil {
		return nil, fmt.Errorf("failed to count clicks for %s: %w", link.Slug, err)
	}

	query = `SELECT COUNT(*) FROM calls WHERE slug = $1 AND status = $2`
	args = []any{link.Slug, model.CallStatusBooked}
	query, args = appendWindow(query, "timestamp", w, args)
	if err := tx.QueryRow(ctx, query, args...).Scan(&stats.BookedCalls); err != nil {
		return nil, fmt.Errorf("failed to count booked calls for %s: %w", link.Slug, err)
	}

	query = `SELECT COUNT(*), COALESCE(SUM(amount), 0) FROM payments WHERE slug = $1`
	args = []any{link.Slug}
	query, args = appendWindow(query, "timestamp", w, args)
	if err := tx.QueryRow(ctx, query, args...).Scan(&stats.DealsClosed, &stats.Revenue); err != nil {
		return nil, fmt.Errorf("failed to total payments for %s: %w", link.Slug, err)
	}

	return stats, nil
}
