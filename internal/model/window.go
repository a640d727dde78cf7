package model

import "time"

// Window is a half-open time interval [Start, End). A zero bound means
// unbounded on that side. Report queries built from calendar dates use
// End = end date + one day, so the end date's full calendar day is
// included.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if !w.Start.IsZero() && t.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && !t.Before(w.End) {
		return false
	}
	return true
}

// IsUnbounded reports whether the window has no bounds at all.
func (w Window) IsUnbounded() bool {
	return w.Start.IsZero() && w.End.IsZero()
}
