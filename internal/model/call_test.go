package model

import "testing"

func TestCallStatus_IsValid(t *testing.T) {
	for _, status := range CallStatuses {
		if !status.IsValid() {
			t.Errorf("expected %s to be valid", status)
		}
	}

	invalid := []CallStatus{"", "connected", "active", "BOOKED", "noshow"}
	for _, status := range invalid {
		if status.IsValid() {
			t.Errorf("expected %q to be invalid", status)
		}
	}
}

func TestCallStatus_IsTerminal(t *testing.T) {
	terminal := map[CallStatus]bool{
		CallStatusBooked:      false,
		CallStatusPending:     false,
		CallStatusConfirmed:   false,
		CallStatusCompleted:   true,
		CallStatusCancelled:   true,
		CallStatusNoShow:      true,
		CallStatusRescheduled: false,
	}

	for status, want := range terminal {
		if got := status.IsTerminal(); got != want {
			t.Errorf("IsTerminal(%s) = %v, want %v", status, got, want)
		}
	}
}
