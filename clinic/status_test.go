package clinic

import "testing"

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusScheduled, StatusConfirmed},
		{StatusScheduled, StatusCancelled},
		{StatusConfirmed, StatusCheckedIn},
		{StatusConfirmed, StatusNoShow},
		{StatusConfirmed, StatusCancelled},
		{StatusCheckedIn, StatusInProgress},
		{StatusInProgress, StatusCompleted},
	}
	for _, a := range allowed {
		if !CanTransition(a.from, a.to) {
			t.Fatalf("expected transition %v -> %v to be allowed", a.from, a.to)
		}
	}
	denied := []struct{ from, to Status }{
		{StatusScheduled, StatusCompleted},
		{StatusCompleted, StatusScheduled},
		{StatusCancelled, StatusConfirmed},
		{StatusNoShow, StatusCheckedIn},
		{StatusInProgress, StatusCancelled},
	}
	for _, d := range denied {
		if CanTransition(d.from, d.to) {
			t.Fatalf("expected transition %v -> %v to be denied", d.from, d.to)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []Status{StatusCompleted, StatusCancelled, StatusNoShow} {
		if !s.IsTerminal() {
			t.Fatalf("expected %v to be terminal", s)
		}
	}
	for _, s := range []Status{StatusScheduled, StatusConfirmed, StatusCheckedIn, StatusInProgress} {
		if s.IsTerminal() {
			t.Fatalf("expected %v to be non-terminal", s)
		}
	}
}

func TestIsValid(t *testing.T) {
	for _, s := range AllStatuses {
		if !s.IsValid() {
			t.Fatalf("expected %v to be valid", s)
		}
	}
	if Status("rescheduled").IsValid() {
		t.Fatal("expected unknown status to be invalid")
	}
}
