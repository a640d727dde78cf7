package model

import "time"

// CallStatus represents the booking state of a call.
// It is deliberately its own type: call state and integration/connection
// state are different domains and never share a representation.
type CallStatus string

const (
	CallStatusBooked      CallStatus = "booked"      // initial state when the call is scheduled
	CallStatusPending     CallStatus = "pending"     // awaiting confirmation
	CallStatusConfirmed   CallStatus = "confirmed"   // confirmed by both parties
	CallStatusCompleted   CallStatus = "completed"   // call took place
	CallStatusCancelled   CallStatus = "cancelled"   // call was cancelled
	CallStatusNoShow      CallStatus = "no_show"     // client did not show up
	CallStatusRescheduled CallStatus = "rescheduled" // moved to another time
)

// CallStatuses lists the seven classification buckets used by every
// report, in display order.
var CallStatuses = []CallStatus{
	CallStatusBooked,
	CallStatusPending,
	CallStatusConfirmed,
	CallStatusCompleted,
	CallStatusCancelled,
	CallStatusNoShow,
	CallStatusRescheduled,
}

// IsValid reports whether s is one of the known statuses.
func (s CallStatus) IsValid() bool {
	switch s {
	case CallStatusBooked, CallStatusPending, CallStatusConfirmed,
		CallStatusCompleted, CallStatusCancelled, CallStatusNoShow,
		CallStatusRescheduled:
		return true
	}
	return false
}

// IsTerminal reports whether s ends the booking lifecycle.
func (s CallStatus) IsTerminal() bool {
	switch s {
	case CallStatusCompleted, CallStatusCancelled, CallStatusNoShow:
		return true
	}
	return false
}

// Call represents a booked appointment attributed to a tracking link.
// Rows are created by the external booking collaborator; reports only
// classify them by whatever status is currently stored.
type Call struct {
	ID        string     `json:"id"`
	Slug      string     `json:"slug"`
	Email     string     `json:"email"`
	Status    CallStatus `json:"status"`
	Timestamp time.Time  `json:"timestamp"`
}
