package devs

import "errors"

// Sentinel errors identifying the failure kinds in the error handling design
// (spec §7). Callers match on these with errors.Is; wrapped context is added
// with fmt.Errorf("...: %w", ErrX) at the call site, the way the teacher
// wraps errors throughout internal/interaction and internal/resource.
var (
	// ErrInvalidSetup is returned when Setup's preconditions are violated:
	// the model's clock isn't at zero, or the event list isn't empty.
	ErrInvalidSetup = errors.New("devs: invalid setup")

	// ErrInvalidArgument is returned for a nil callable, a peak-ahead count
	// below one, or a non-integer time on an ABMSimulator.
	ErrInvalidArgument = errors.New("devs: invalid argument")

	// ErrPastTime is returned when a schedule call resolves to an absolute
	// time strictly before the model's current clock.
	ErrPastTime = errors.New("devs: scheduled time is in the past")

	// ErrNotConfigured is returned when a driving operation runs before Setup.
	ErrNotConfigured = errors.New("devs: simulator has no model; call Setup first")

	// ErrEmptyQueue is returned by PopEvent/PeakAhead/RunNextEvent when no
	// non-canceled event remains reachable from the head of the list.
	ErrEmptyQueue = errors.New("devs: event list has no pending events")
)
