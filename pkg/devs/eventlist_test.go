package devs

import (
	"errors"
	"testing"
)

func newTestEvent(t *testing.T, at float64, p Priority) *SimulationEvent {
	t.Helper()
	fn := Callable(func([]any, map[string]any) {})
	e, err := NewSimulationEvent(at, &fn, p, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error building event: %v", err)
	}
	return e
}

func TestEventListOrdersByTimeThenPriority(t *testing.T) {
	el := NewEventList()

	e1 := newTestEvent(t, 10, PriorityDefault)
	e2 := newTestEvent(t, 5, PriorityDefault)
	e3 := newTestEvent(t, 5, PriorityHigh)

	el.AddEvent(e1)
	el.AddEvent(e2)
	el.AddEvent(e3)

	first, err := el.PopEvent()
	if err != nil || first != e3 {
		t.Fatalf("expected e3 (time 5, HIGH) first, got %v err %v", first, err)
	}
	second, err := el.PopEvent()
	if err != nil || second != e2 {
		t.Fatalf("expected e2 (time 5, DEFAULT) second, got %v err %v", second, err)
	}
	third, err := el.PopEvent()
	if err != nil || third != e1 {
		t.Fatalf("expected e1 (time 10) last, got %v err %v", third, err)
	}
}

func TestEventListPopEmptyReturnsErrEmptyQueue(t *testing.T) {
	el := NewEventList()
	if _, err := el.PopEvent(); !errors.Is(err, ErrEmptyQueue) {
		t.Fatalf("expected ErrEmptyQueue popping an empty list, got %v", err)
	}
}

func TestEventListRemoveIsLogical(t *testing.T) {
	el := NewEventList()
	e1 := newTestEvent(t, 1, PriorityDefault)
	e2 := newTestEvent(t, 2, PriorityDefault)
	el.AddEvent(e1)
	el.AddEvent(e2)

	el.Remove(e1)

	if el.Len() != 2 {
		t.Errorf("expected physical length unchanged at 2, got %d", el.Len())
	}
	if el.IsEmpty() {
		t.Error("expected list to still be logically non-empty")
	}

	got, err := el.PopEvent()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != e2 {
		t.Errorf("expected the canceled event to be skipped, got %v", got)
	}
}

func TestEventListIsEmptyAllCanceled(t *testing.T) {
	el := NewEventList()
	e1 := newTestEvent(t, 1, PriorityDefault)
	el.AddEvent(e1)
	el.Remove(e1)

	if !el.IsEmpty() {
		t.Error("expected list with only canceled entries to report IsEmpty")
	}
	if el.Len() != 1 {
		t.Errorf("expected physical length 1, got %d", el.Len())
	}
}

func TestEventListPeakAhead(t *testing.T) {
	el := NewEventList()
	e1 := newTestEvent(t, 1, PriorityDefault)
	e2 := newTestEvent(t, 2, PriorityDefault)
	e3 := newTestEvent(t, 3, PriorityDefault)
	el.AddEvent(e1)
	el.AddEvent(e2)
	el.AddEvent(e3)

	peeked, err := el.PeakAhead(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(peeked) != 2 || peeked[0] != e1 || peeked[1] != e2 {
		t.Fatalf("expected [e1, e2], got %v", peeked)
	}
	if el.Len() != 3 {
		t.Errorf("expected PeakAhead not to remove entries, len=%d", el.Len())
	}
}

func TestEventListPeakAheadSkipsCanceled(t *testing.T) {
	el := NewEventList()
	e1 := newTestEvent(t, 1, PriorityDefault)
	e2 := newTestEvent(t, 2, PriorityDefault)
	e3 := newTestEvent(t, 3, PriorityDefault)
	el.AddEvent(e1)
	el.AddEvent(e2)
	el.AddEvent(e3)
	el.Remove(e1)

	peeked, err := el.PeakAhead(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(peeked) != 2 || peeked[0] != e2 || peeked[1] != e3 {
		t.Fatalf("expected [e2, e3], got %v", peeked)
	}
}

func TestEventListPeakAheadRejectsZero(t *testing.T) {
	el := NewEventList()
	if _, err := el.PeakAhead(0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for n < 1, got %v", err)
	}
}

func TestEventListPeakAheadEmptyQueue(t *testing.T) {
	el := NewEventList()
	if _, err := el.PeakAhead(1); !errors.Is(err, ErrEmptyQueue) {
		t.Fatalf("expected ErrEmptyQueue on an empty list, got %v", err)
	}

	e1 := newTestEvent(t, 1, PriorityDefault)
	el.AddEvent(e1)
	el.Remove(e1)
	if _, err := el.PeakAhead(1); !errors.Is(err, ErrEmptyQueue) {
		t.Fatalf("expected ErrEmptyQueue when only canceled entries remain, got %v", err)
	}
}

func TestEventListContains(t *testing.T) {
	el := NewEventList()
	e1 := newTestEvent(t, 1, PriorityDefault)
	e2 := newTestEvent(t, 2, PriorityDefault)
	el.AddEvent(e1)

	if !el.Contains(e1) {
		t.Error("expected list to contain e1")
	}
	if el.Contains(e2) {
		t.Error("expected list not to contain e2")
	}

	el.Remove(e1)
	if !el.Contains(e1) {
		t.Error("expected canceled e1 to still be physically present")
	}
}

func TestEventListClear(t *testing.T) {
	el := NewEventList()
	el.AddEvent(newTestEvent(t, 1, PriorityDefault))
	el.AddEvent(newTestEvent(t, 2, PriorityDefault))

	el.Clear()

	if el.Len() != 0 {
		t.Errorf("expected length 0 after Clear, got %d", el.Len())
	}
	if !el.IsEmpty() {
		t.Error("expected IsEmpty after Clear")
	}
}

func TestEventListEventsSnapshot(t *testing.T) {
	el := NewEventList()
	e1 := newTestEvent(t, 1, PriorityDefault)
	e2 := newTestEvent(t, 2, PriorityDefault)
	el.AddEvent(e1)
	el.AddEvent(e2)

	snap := el.Events()
	if len(snap) != 2 {
		t.Fatalf("expected snapshot of length 2, got %d", len(snap))
	}

	el.AddEvent(newTestEvent(t, 3, PriorityDefault))
	if len(snap) != 2 {
		t.Error("expected snapshot to be unaffected by later mutation")
	}
}
