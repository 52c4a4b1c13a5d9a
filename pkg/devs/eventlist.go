package devs

import (
	"container/heap"
	"fmt"
	"sync"
)

// eventHeap is the container/heap.Interface backing EventList, adapted from
// the teacher's EventQueue (internal/engine/event.go) to order by the full
// (time, priority, unique id) relation instead of (time, priority) alone.
type eventHeap []*SimulationEvent

func (h eventHeap) Len() int            { return len(h) }
func (h eventHeap) Less(i, j int) bool  { return h[i].Less(h[j]) }
func (h eventHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x interface{}) { *h = append(*h, x.(*SimulationEvent)) }
func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// EventList is a minimum-ordered priority collection of SimulationEvents.
// remove (cancellation) is logical: the physical record stays in the heap
// until it surfaces at the head, so Len reports physical size while IsEmpty
// reports logical emptiness.
type EventList struct {
	mu     sync.Mutex
	events eventHeap
}

// NewEventList returns an empty EventList.
func NewEventList() *EventList {
	el := &EventList{events: make(eventHeap, 0)}
	heap.Init(&el.events)
	return el
}

// AddEvent pushes e onto the heap. O(log n).
func (el *EventList) AddEvent(e *SimulationEvent) {
	el.mu.Lock()
	defer el.mu.Unlock()
	heap.Push(&el.events, e)
}

// PopEvent removes and returns the smallest non-canceled event, skipping
// (and discarding) any canceled entries it encounters along the way. It
// fails with ErrEmptyQueue once the heap empties without finding one.
func (el *EventList) PopEvent() (*SimulationEvent, error) {
	el.mu.Lock()
	defer el.mu.Unlock()
	for el.events.Len() > 0 {
		e := heap.Pop(&el.events).(*SimulationEvent)
		if !e.Canceled {
			return e, nil
		}
	}
	return nil, ErrEmptyQueue
}

// PeakAhead returns up to the first n non-canceled events in order without
// removing them from the list. Canceled events sitting at the head are
// physically dropped as a side effect (lazy compaction); ones found deeper
// during the scan are simply skipped. Fails with ErrEmptyQueue if no
// non-canceled event exists at all, or ErrInvalidArgument if n < 1.
func (el *EventList) PeakAhead(n int) ([]*SimulationEvent, error) {
	if n < 1 {
		return nil, fmt.Errorf("peak_ahead requires n >= 1, got %d: %w", n, ErrInvalidArgument)
	}

	el.mu.Lock()
	defer el.mu.Unlock()

	for el.events.Len() > 0 && el.events[0].Canceled {
		heap.Pop(&el.events)
	}
	if el.events.Len() == 0 {
		return nil, ErrEmptyQueue
	}

	scratch := make(eventHeap, len(el.events))
	copy(scratch, el.events)

	result := make([]*SimulationEvent, 0, n)
	for scratch.Len() > 0 && len(result) < n {
		e := heap.Pop(&scratch).(*SimulationEvent)
		if e.Canceled {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

// Remove logically cancels e. The physical length of the list is unchanged.
func (el *EventList) Remove(e *SimulationEvent) {
	e.Cancel()
}

// Contains reports whether e is still physically present in the list,
// canceled or not.
func (el *EventList) Contains(e *SimulationEvent) bool {
	el.mu.Lock()
	defer el.mu.Unlock()
	for _, x := range el.events {
		if x == e {
			return true
		}
	}
	return false
}

// Len returns the physical number of entries, including canceled ones not
// yet surfaced.
func (el *EventList) Len() int {
	el.mu.Lock()
	defer el.mu.Unlock()
	return el.events.Len()
}

// IsEmpty reports whether no non-canceled event remains reachable from the
// head.
func (el *EventList) IsEmpty() bool {
	el.mu.Lock()
	defer el.mu.Unlock()
	for _, e := range el.events {
		if !e.Canceled {
			return false
		}
	}
	return true
}

// Clear removes every entry, canceled or not.
func (el *EventList) Clear() {
	el.mu.Lock()
	defer el.mu.Unlock()
	el.events = make(eventHeap, 0)
	heap.Init(&el.events)
}

// Events returns a snapshot copy of the physically present events, in no
// particular order. It exists for instrumentation and tests.
func (el *EventList) Events() []*SimulationEvent {
	el.mu.Lock()
	defer el.mu.Unlock()
	out := make([]*SimulationEvent, len(el.events))
	copy(out, el.events)
	return out
}
