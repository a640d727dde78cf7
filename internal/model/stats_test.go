package model

import (
	"testing"
	"time"
)

func TestCallBreakdown_AddAndTotal(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	var b CallBreakdown
	statuses := []CallStatus{
		CallStatusBooked,
		CallStatusBooked,
		CallStatusConfirmed,
		CallStatusNoShow,
		CallStatusRescheduled,
	}
	for i, status := range statuses {
		b.Add(&Call{
			ID:        string(rune('a' + i)),
			Slug:      "promo",
			Email:     "lead@example.com",
			Status:    status,
			Timestamp: now,
		})
	}

	if b.Booked != 2 || b.Confirmed != 1 || b.NoShow != 1 || b.Rescheduled != 1 {
		t.Errorf("unexpected buckets: %+v", b)
	}
	if b.Pending != 0 || b.Completed != 0 || b.Cancelled != 0 {
		t.Errorf("expected empty buckets to stay zero: %+v", b)
	}
	if got := b.Total(); got != 5 {
		t.Errorf("expected total 5, got %d", got)
	}
	if len(b.List) != 5 {
		t.Errorf("expected 5 records in list, got %d", len(b.List))
	}
	if b.List[0].Date != "2025-06-15T10:00:00Z" {
		t.Errorf("expected RFC 3339 date, got %s", b.List[0].Date)
	}
}

func TestWindow_Contains(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	w := Window{Start: start, End: end}

	if !w.Contains(start) {
		t.Error("expected start to be inside (half-open lower bound)")
	}
	if w.Contains(end) {
		t.Error("expected end to be outside (half-open upper bound)")
	}
	if !w.Contains(start.Add(time.Hour)) {
		t.Error("expected interior point inside")
	}
	if w.Contains(start.Add(-time.Second)) {
		t.Error("expected point before start outside")
	}

	var unbounded Window
	if !unbounded.IsUnbounded() {
		t.Error("expected zero window to be unbounded")
	}
	if !unbounded.Contains(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected unbounded window to contain everything")
	}
}
