// Package perf provides timeout enforcement and performance accounting
// for scan and analysis runs.
package perf

import (
	"fmt"
	"time"
)

// TimeoutError is returned when an operation exceeds its wall-clock budget.
type TimeoutError struct {
	// Phase names the operation that was in progress, e.g. "file discovery".
	Phase string

	// Elapsed is the wall-clock time since Start when the check fired.
	Elapsed time.Duration

	// Budget is the configured limit.
	Budget time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("scan exceeded %s timeout during %s (elapsed: %.1fs)",
		e.Budget, e.Phase, e.Elapsed.Seconds())
}

// TimeoutChecker monitors elapsed time against a fixed budget. A budget of
// zero disables checking entirely. The zero value is not usable; construct
// with NewTimeoutChecker and call Start before Check or Elapsed.
type TimeoutChecker struct {
	budget  time.Duration
	started bool
	startAt time.Time
}

// NewTimeoutChecker returns a checker with the given budget. A negative
// budget is a configuration error.
func NewTimeoutChecker(budget time.Duration) (*TimeoutChecker, error) {
	if budget < 0 {
		return nil, fmt.Errorf("timeout budget must be non-negative, got %s", budget)
	}
	return &TimeoutChecker{budget: budget}, nil
}

// Start records the reference instant. It may be called again to reset the
// clock for a fresh run.
func (c *TimeoutChecker) Start() {
	c.started = true
	c.startAt = time.Now()
}

// Check returns a *TimeoutError when the budget has been exceeded, or nil.
// The phase label is carried into the error for diagnostics.
// Calling Check before Start is a programming error and panics.
func (c *TimeoutChecker) Check(phase string) error {
	if !c.started {
		panic("perf: TimeoutChecker.Start must be called before Check")
	}
	if c.budget == 0 {
		return nil
	}
	elapsed := time.Since(c.startAt)
	if elapsed > c.budget {
		return &TimeoutError{Phase: phase, Elapsed: elapsed, Budget: c.budget}
	}
	return nil
}

// Elapsed returns the time since Start. Calling it before Start panics.
func (c *TimeoutChecker) Elapsed() time.Duration {
	if !c.started {
		panic("perf: TimeoutChecker.Start must be called before Elapsed")
	}
	return time.Since(c.startAt)
}
