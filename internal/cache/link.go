package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/insyte-io/linktrack/internal/model"
)

// Cache key prefixes and TTLs.
const (
	linkKeyPrefix     = "link:"
	negCacheKeySuffix = ":neg"

	// DefaultLinkTTL is the TTL for cached link data. Links are
	// immutable once created so a short TTL only matters for deletes.
	DefaultLinkTTL = 5 * time.Minute

	// NegativeCacheTTL is the TTL for negative cache entries.
	NegativeCacheTTL = time.Minute
)

// ErrCacheMiss is returned when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// GetLink retrieves a video link from cache by slug.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetLink(ctx context.Context, slug string) (*model.VideoLink, error) {
	key := linkKeyPrefix + slug

	result, err := c.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("read link hash: %w", err)
	}

	if len(result) == 0 {
		return nil, ErrCacheMiss
	}

	cached := &model.CachedVideoLink{
		ID:             result["id"],
		Title:          result["title"],
		DestinationURL: result["destination_url"],
		UTMSource:      result["utm_source"],
		UTMMedium:      result["utm_medium"],
		UTMCampaign:    result["utm_campaign"],
		CreatedAt:      result["created_at"],
	}

	return cached.ToVideoLink(slug), nil
}

// SetLink stores a video link in cache.
func (c *Cache) SetLink(ctx context.Context, link *model.VideoLink) error {
	key := linkKeyPrefix + link.Slug
	cached := link.ToCachedVideoLink()

	fields := map[string]any{
		"id":              cached.ID,
		"title":           cached.Title,
		"destination_url": cached.DestinationURL,
		"created_at":      cached.CreatedAt,
	}

	// Attribution overrides are stored only when set; readers fall
	// back to the defaults on empty fields.
	if cached.UTMSource != "" {
		fields["utm_source"] = cached.UTMSource
	}
	if cached.UTMMedium != "" {
		fields["utm_medium"] = cached.UTMMedium
	}
	if cached.UTMCampaign != "" {
		fields["utm_campaign"] = cached.UTMCampaign
	}

	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, DefaultLinkTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write link hash: %w", err)
	}

	// A freshly cached link supersedes any negative entry.
	c.client.Del(ctx, key+negCacheKeySuffix)

	return nil
}

// DeleteLink removes a link from cache.
func (c *Cache) DeleteLink(ctx context.Context, slug string) error {
	key := linkKeyPrefix + slug

	pipe := c.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.Del(ctx, key+negCacheKeySuffix)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("evict link: %w", err)
	}

	return nil
}

// IsNegativelyCached checks if a slug is known to not exist.
func (c *Cache) IsNegativelyCached(ctx context.Context, slug string) (bool, error) {
	key := linkKeyPrefix + slug + negCacheKeySuffix

	exists, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("check negative entry: %w", err)
	}

	return exists > 0, nil
}

// SetNegativeCache marks a slug as not found.
func (c *Cache) SetNegativeCache(ctx context.Context, slug string) error {
	key := linkKeyPrefix + slug + negCacheKeySuffix

	if err := c.client.SetEx(ctx, key, "", NegativeCacheTTL).Err(); err != nil {
		return fmt.Errorf("set negative entry: %w", err)
	}

	return nil
}
