// Package repository is the PostgreSQL entity store: links, clicks,
// calls, payments and video analytics snapshots.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool sizing. The redirect path is the hot consumer; bounding the
// pool keeps a click burst from opening unbounded connections.
const (
	poolMaxConns        = 10
	poolMinConns        = 2
	poolConnMaxIdleTime = 5 * time.Minute
)

// Repository provides database access methods for the entity store.
type Repository struct {
	pool *pgxpool.Pool
}

// New opens a bounded connection pool and verifies connectivity.
func New(ctx context.Context, databaseURL string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	config.MaxConns = poolMaxConns
	config.MinConns = poolMinConns
	config.MaxConnIdleTime = poolConnMaxIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Repository{pool: pool}, nil
}

// Ping checks database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the connection pool.
func (r *Repository) Close() {
	r.pool.Close()
}

// Pool exposes the underlying pool for tests and probes.
func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}
