// Package testutil provides helpers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/insyte-io/linktrack/internal/model"
)

// RequireEnv reads key from the environment, skipping the test when it
// is unset so integration tests are opt-in.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	v := os.Getenv(key)
	if v == "" {
		t.Skipf("%s not set", key)
	}
	return v
}

const advisoryLockID int64 = 731731

// AcquireDBLock serializes database tests across packages with a
// session advisory lock. The returned func releases it.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire conn for lock: %w", err)
	}
	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("take advisory lock: %w", err)
	}
	release := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("drop advisory lock: %w", err)
		}
		return nil
	}
	return release, nil
}

// TruncateAll empties every table between tests. Truncating video_links
// cascades to clicks, calls, payments and video_analytics.
func TruncateAll(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, "TRUNCATE video_links CASCADE")
	if err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}
	return nil
}

// FlushRedis wipes the selected Redis database between tests.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestLink creates a test video link with sensible defaults.
func NewTestLink(t testing.TB, slug string) *model.VideoLink {
	t.Helper()
	now := time.Now().UTC()
	return &model.VideoLink{
		ID:             model.NewID(),
		Slug:           slug,
		Title:          "Test video " + slug,
		DestinationURL: "https://example.com/landing?page=" + slug,
		CreatedAt:      now,
	}
}

// NewTestClick creates a test click for the given slug.
func NewTestClick(t testing.TB, slug string, at time.Time) *model.Click {
	t.Helper()
	return &model.Click{
		ID:        model.NewID(),
		Slug:      slug,
		Timestamp: at.UTC(),
		IPAddress: "203.0.113.7",
		Referrer:  "https://youtube.com/watch?v=test",
	}
}

// NewTestCall creates a test call with the given status.
func NewTestCall(t testing.TB, slug string, status model.CallStatus, at time.Time) *model.Call {
	t.Helper()
	return &model.Call{
		ID:        model.NewID(),
		Slug:      slug,
		Email:     "lead@example.com",
		Status:    status,
		Timestamp: at.UTC(),
	}
}

// NewTestPayment creates a test payment for the given slug.
func NewTestPayment(t testing.TB, slug string, amount float64, at time.Time) *model.Payment {
	t.Helper()
	return &model.Payment{
		ID:        model.NewID(),
		Slug:      slug,
		Email:     "buyer@example.com",
		Amount:    amount,
		Currency:  model.DefaultCurrency,
		Timestamp: at.UTC(),
	}
}

// NewTestVideoAnalytics creates a test analytics snapshot for the slug.
func NewTestVideoAnalytics(t testing.TB, slug string, views int64, at time.Time) *model.VideoAnalytics {
	t.Helper()
	return &model.VideoAnalytics{
		ID:              model.NewID(),
		Slug:            slug,
		VideoID:         "vid-" + slug,
		Views:           views,
		Likes:           views / 20,
		Comments:        views / 100,
		EngagementRate:  4.2,
		AvgViewDuration: 95.0,
		LastUpdated:     at.UTC(),
	}
}

// UniqueSlug generates a unique slug for tests.
func UniqueSlug(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
