/*
Package vacation implements the vacation entitlement and scheduling engine.

PURPOSE:
  For every eligible employee, the engine reconstructs the statutory 12-month
  acquisition cycles from the admission date, classifies each cycle into a
  lifecycle status, tracks the 30-day balance as it is split across fractional
  leave periods, and validates new leave against overlap and balance rules.

KEY CONCEPTS IN THIS FILE (types.go):
  - CycleID: deterministic key (employee id + acquisition start year)
  - LeavePeriod: a persisted fractional leave with an inclusive day count
  - CycleSkeleton: the derived acquisition window, before classification
  - Cycle: a classified skeleton carrying status, balance, and leave history

DESIGN PRINCIPLES:
  1. Cycles are views, never entities: status and balance are recomputed from
     the admission date, the stored leaves, and the caller-supplied "today".
     Nothing derived is ever persisted, so nothing derived can go stale.
  2. The caller supplies "today". The engine never reads the clock itself,
     which keeps every computation deterministic and testable.
  3. Writes are whole-list replacements per cycle key, so a reader never
     observes a partially updated schedule.

SEE ALSO:
  - generator.go: cycle derivation from the admission date
  - classifier.go: lifecycle status and balance
  - scheduler.go: leave validation and mutation
  - store.go: schedule persistence boundary and legacy upgrade
*/
package vacation

import "fmt"

// =============================================================================
// ENTITLEMENT
// =============================================================================

// FullEntitlementDays is the statutory vacation grant earned per completed
// acquisition cycle.
const FullEntitlementDays = 30

// =============================================================================
// IDENTIFIERS
// =============================================================================

// CycleID keys a cycle's schedule in the store. The format is
// "<employeeID>-<acquisitionStartYear>" and is stable across recomputation.
type CycleID string

// LeaveID identifies one persisted leave period within a cycle.
type LeaveID string

// NewCycleID builds the deterministic cycle key.
func NewCycleID(employeeID string, startYear int) CycleID {
	return CycleID(fmt.Sprintf("%s-%d", employeeID, startYear))
}

// Split decomposes a cycle key into employee id and acquisition start year.
// Employee ids may themselves contain hyphens; the year is always the final
// segment.
func (id CycleID) Split() (employeeID string, startYear int, err error) {
	s := string(id)
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '-' {
			if _, err := fmt.Sscanf(s[i+1:], "%d", &startYear); err != nil || i == 0 {
				return "", 0, fmt.Errorf("malformed cycle id %q", id)
			}
			return s[:i], startYear, nil
		}
	}
	return "", 0, fmt.Errorf("malformed cycle id %q", id)
}

// =============================================================================
// LEAVE PERIOD - The only persisted record the engine owns
// =============================================================================

// LeavePeriod is one fractional slice of a cycle's 30-day entitlement.
// Start and End are inclusive; Days is the inclusive span and is stored
// rather than derived so the record matches what was validated at commit.
type LeavePeriod struct {
	ID    LeaveID `json:"id"`
	Start Date    `json:"start"`
	End   Date    `json:"end"`
	Days  int     `json:"days"`
}

// Contains reports whether the leave is ongoing on the given day.
func (l LeavePeriod) Contains(day Date) bool {
	return day.AfterOrEqual(l.Start) && day.BeforeOrEqual(l.End)
}

// Overlaps reports whether two leaves intersect.
func (l LeavePeriod) Overlaps(other LeavePeriod) bool {
	return RangesOverlap(l.Start, l.End, other.Start, other.End)
}

// =============================================================================
// CYCLE - Derived acquisition window plus classified state
// =============================================================================

// CycleStatus is the lifecycle state of an acquisition cycle.
type CycleStatus string

const (
	// StatusAcquired: entitlement earned, balance available, deadline not breached.
	StatusAcquired CycleStatus = "acquired"
	// StatusOverdue: concessive deadline passed with balance remaining.
	// Triggers the statutory double-pay obligation.
	StatusOverdue CycleStatus = "overdue"
	// StatusInProgress: the employee is on leave from this cycle today.
	StatusInProgress CycleStatus = "in_progress"
	// StatusScheduled: at least one leave lies entirely in the future.
	StatusScheduled CycleStatus = "scheduled"
	// StatusCompleted: balance fully consumed and every leave in the past.
	// Completed cycles carry no further action and are hidden from rosters.
	StatusCompleted CycleStatus = "completed"
)

// CycleSkeleton is the generator's output: the acquisition window and its
// legal deadline, before any leave history is considered.
type CycleSkeleton struct {
	ID                 CycleID
	EmployeeID         string
	AcquisitionStart   Date
	AcquisitionEnd     Date // AcquisitionStart + 1 year - 1 day
	ConcessiveDeadline Date // AcquisitionEnd + 1 year
}

// Cycle is a classified skeleton: the view object handed to callers.
type Cycle struct {
	CycleSkeleton

	Status          CycleStatus
	IsOverdueDouble bool
	ScheduledLeaves []LeavePeriod
	RemainingDays   int
}

// HasBalance reports whether any entitlement is left to schedule.
func (c Cycle) HasBalance() bool { return c.RemainingDays > 0 }
