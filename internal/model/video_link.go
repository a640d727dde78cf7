// Package model defines domain entities for the application.
package model

import (
	"regexp"
	"strconv"
	"time"
)

// Slug constraints: lowercase alphanumeric plus dashes, 3-100 chars.
var slugRegex = regexp.MustCompile(`^[a-z0-9-]{3,100}$`)

// Default attribution values applied when a link carries no overrides.
const (
	DefaultUTMSource = "youtube"
	DefaultUTMMedium = "video"
)

// VideoLink represents a shareable tracking link for a video.
// The slug is its immutable identity; all attribution rows
// (clicks, calls, payments, video analytics) reference it.
type VideoLink struct {
	ID             string    `json:"id"`
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	DestinationURL string    `json:"destination_url"`
	UTMSource      string    `json:"utm_source,omitempty"`   // override, defaults to "youtube"
	UTMMedium      string    `json:"utm_medium,omitempty"`   // override, defaults to "video"
	UTMCampaign    string    `json:"utm_campaign,omitempty"` // optional, omitted when empty
	CreatedAt      time.Time `json:"created_at"`
}

// ValidSlug reports whether s is a well-formed slug.
func ValidSlug(s string) bool {
	return slugRegex.MatchString(s)
}

// Source returns the utm_source for this link, falling back to the default.
func (l *VideoLink) Source() string {
	if l.UTMSource != "" {
		return l.UTMSource
	}
	return DefaultUTMSource
}

// Medium returns the utm_medium for this link, falling back to the default.
func (l *VideoLink) Medium() string {
	if l.UTMMedium != "" {
		return l.UTMMedium
	}
	return DefaultUTMMedium
}

// CachedVideoLink represents link data stored in Redis cache.
// Uses string types for Redis hash compatibility.
type CachedVideoLink struct {
	ID             string `redis:"id"`
	Title          string `redis:"title"`
	DestinationURL string `redis:"destination_url"`
	UTMSource      string `redis:"utm_source"`
	UTMMedium      string `redis:"utm_medium"`
	UTMCampaign    string `redis:"utm_campaign"`
	CreatedAt      string `redis:"created_at"` // Unix timestamp
}

// ToVideoLink converts CachedVideoLink to the domain model.
func (c *CachedVideoLink) ToVideoLink(slug string) *VideoLink {
	link := &VideoLink{
		ID:             c.ID,
		Slug:           slug,
		Title:          c.Title,
		DestinationURL: c.DestinationURL,
		UTMSource:      c.UTMSource,
		UTMMedium:      c.UTMMedium,
		UTMCampaign:    c.UTMCampaign,
	}

	if c.CreatedAt != "" {
		if ts, err := strconv.ParseInt(c.CreatedAt, 10, 64); err == nil {
			link.CreatedAt = time.Unix(ts, 0).UTC()
		}
	}

	return link
}

// ToCachedVideoLink converts the domain model to its cache representation.
func (l *VideoLink) ToCachedVideoLink() *CachedVideoLink {
	return &CachedVideoLink{
		ID:             l.ID,
		Title:          l.Title,
		DestinationURL: l.DestinationURL,
		UTMSource:      l.UTMSource,
		UTMMedium:      l.UTMMedium,
		UTMCampaign:    l.UTMCampaign,
		CreatedAt:      strconv.FormatInt(l.CreatedAt.Unix(), 10),
	}
}
