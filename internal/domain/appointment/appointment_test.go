package appointment

import (
	"errors"
	"testing"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusScheduled, StatusCompleted, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusScheduled, false},
		{StatusCancelled, StatusCompleted, false},
	}

	for _, tt := range tests {
		a := &Appointment{Status: tt.from}
		if got := a.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCancel(t *testing.T) {
	a := &Appointment{Status: StatusScheduled}

	if err := a.Cancel("patient request"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if a.Status != StatusCancelled || a.CancelledAt == nil {
		t.Errorf("cancel did not stick: %+v", a)
	}
	if a.CancellationReason != "patient request" {
		t.Errorf("reason = %q", a.CancellationReason)
	}

	if err := a.Cancel("again"); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("second cancel: expected ErrInvalidStatusTransition, got %v", err)
	}
}
