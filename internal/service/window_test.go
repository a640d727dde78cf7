package service

import (
	"errors"
	"testing"
	"time"
)

func TestParseWindow_EndDateInclusive(t *testing.T) {
	w, err := ParseWindow("2025-06-01", "2025-06-30")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	wantStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !w.Start.Equal(wantStart) {
		t.Errorf("expected start %v, got %v", wantStart, w.Start)
	}

	// The exclusive upper bound is midnight of the day after the end
	// date, so events anywhere on June 30 are included.
	wantEnd := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	if !w.End.Equal(wantEnd) {
		t.Errorf("expected end %v, got %v", wantEnd, w.End)
	}

	lastMoment := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	if !w.Contains(lastMoment) {
		t.Error("expected 23:59:59 on the end date to be inside the window")
	}
	nextDay := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	if w.Contains(nextDay) {
		t.Error("expected midnight after the end date to be outside the window")
	}
}

func TestParseWindow_EmptyStringsUnbounded(t *testing.T) {
	w, err := ParseWindow("", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !w.IsUnbounded() {
		t.Errorf("expected unbounded window, got %+v", w)
	}
}

func TestParseWindow_PartialBounds(t *testing.T) {
	w, err := ParseWindow("2025-06-01", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if w.Start.IsZero() || !w.End.IsZero() {
		t.Errorf("expected start-only window, got %+v", w)
	}
}

func TestParseWindow_InvalidDates(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
	}{
		{"bad start", "June 1 2025", ""},
		{"bad end", "", "2025/06/30"},
		{"timestamp not date", "2025-06-01T10:00:00Z", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWindow(tt.start, tt.end)
			if !errors.Is(err, ErrInvalidDateRange) {
				t.Errorf("expected ErrInvalidDateRange, got %v", err)
			}
		})
	}
}
