package model

import "time"

// Click represents one redirect traversal of a tracking link.
// Clicks are append-only: they are never updated or deleted, and the
// timestamp is always the server clock at recording time, never a
// client-supplied value.
type Click struct {
	ID        string    `json:"id"` // ULID (time-sortable)
	Slug      string    `json:"slug"`
	Timestamp time.Time `json:"timestamp"`
	IPAddress string    `json:"ip_address"`
	Referrer  string    `json:"referrer,omitempty"`
}

// DailyClickCount is one bucket of the per-day click histogram.
type DailyClickCount struct {
	Date  string `json:"date"` // ISO date (YYYY-MM-DD)
	Count int64  `json:"count"`
}
