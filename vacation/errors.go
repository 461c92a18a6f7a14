/*
errors.go - Centralized error types for the vacation engine

ERROR CATEGORIES:
  1. Validation rejections - overlap or balance violations; recoverable,
     reported with distinct reasons so callers can render each warning.
  2. Malformed input - unparseable dates; fail closed for the one employee.
  3. Store errors - persistence-level failures; retryable, unlike rejections.

USAGE:
  Callers classify with errors.Is / errors.As:

    var rej *vacation.RejectionError
    if errors.As(err, &rej) {
        // rej.Overlaps and rej.ExceedsBalance are reported independently
    }
*/
package vacation

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrLeaveOverlap is returned when a proposed leave intersects another
	// leave of the same employee, in any of that employee's cycles.
	ErrLeaveOverlap = errors.New("leave overlaps an existing period")

	// ErrBalanceExceeded is returned when a proposed leave is longer than the
	// cycle's remaining balance.
	ErrBalanceExceeded = errors.New("leave exceeds remaining cycle balance")

	// ErrInvalidPeriod is returned when a period is malformed (end before start).
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrMalformedDate is returned when a recorded date cannot be parsed.
	ErrMalformedDate = errors.New("malformed date")

	// ErrCycleNotFound is returned when a cycle id does not resolve to any
	// generated cycle of the employee.
	ErrCycleNotFound = errors.New("cycle not found")

	// ErrLeaveNotFound is returned when a leave id is absent from its cycle.
	ErrLeaveNotFound = errors.New("leave period not found")

	// ErrEmployeeNotFound is returned when the registry has no such employee.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrStoreUnavailable wraps persistence failures so callers can tell a
	// transient store problem apart from a validation rejection.
	ErrStoreUnavailable = errors.New("schedule store unavailable")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// RejectionError reports why a leave commit was refused. Overlap and balance
// failures are independent flags: both may be true, and both must be checked
// at commit time regardless of what an earlier proposal said.
type RejectionError struct {
	CycleID        CycleID
	Days           int
	Overlaps       bool
	ConflictsWith  LeaveID // first conflicting leave, when Overlaps
	ExceedsBalance bool
	Available      int // balance the commit was checked against
}

func (e *RejectionError) Error() string {
	switch {
	case e.Overlaps && e.ExceedsBalance:
		return fmt.Sprintf("leave rejected: overlaps leave %s and exceeds balance (%d days requested, %d available)",
			e.ConflictsWith, e.Days, e.Available)
	case e.Overlaps:
		return fmt.Sprintf("leave rejected: overlaps leave %s", e.ConflictsWith)
	default:
		return fmt.Sprintf("leave rejected: %d days requested, %d available in cycle %s",
			e.Days, e.Available, e.CycleID)
	}
}

// Unwrap exposes the applicable sentinels so errors.Is matches either reason.
func (e *RejectionError) Unwrap() []error {
	var errs []error
	if e.Overlaps {
		errs = append(errs, ErrLeaveOverlap)
	}
	if e.ExceedsBalance {
		errs = append(errs, ErrBalanceExceeded)
	}
	return errs
}

// MalformedDateError identifies which employee record failed to parse, so a
// listing can skip that one employee and keep going.
type MalformedDateError struct {
	EmployeeID string
	Field      string
	Value      string
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("employee %s: malformed %s %q", e.EmployeeID, e.Field, e.Value)
}

func (e *MalformedDateError) Unwrap() error { return ErrMalformedDate }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsRejection reports whether the error is a validation rejection, as opposed
// to a store failure. Rejections are not retryable; store failures may be.
func IsRejection(err error) bool {
	return errors.Is(err, ErrLeaveOverlap) ||
		errors.Is(err, ErrBalanceExceeded) ||
		errors.Is(err, ErrInvalidPeriod)
}

// IsNotFound reports whether the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCycleNotFound) ||
		errors.Is(err, ErrLeaveNotFound) ||
		errors.Is(err, ErrEmployeeNotFound)
}
