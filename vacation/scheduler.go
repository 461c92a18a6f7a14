/*
scheduler.go - Leave validation and mutation

PURPOSE:
  The only write path into a cycle's schedule. A proposal is a pure
  computation the UI can render warnings from; a commit re-runs the same
  validation against current stored state before touching the store, so a
  stale proposal can never smuggle an invalid leave in.

INVARIANTS ENFORCED:
  - No two leaves of the same employee overlap, across ALL of that
    employee's cycles. A person cannot be on leave under two acquisition
    cycles at once, so the check is employee-wide, not cycle-local.
  - A cycle's leaves never sum past the 30-day entitlement. On update the
    balance is first credited back the days of the leave being replaced.
  - A rejected commit leaves persisted state untouched: validation happens
    before the single whole-list Put.

WHAT THE SCHEDULER IS NOT:
  It does not retry, cache, or read the clock. Store latency and retries are
  the store's concern; "today" always arrives from the caller.
*/
package vacation

import (
	"context"
	"fmt"
)

// =============================================================================
// SCHEDULER
// =============================================================================

// Scheduler validates and applies leave mutations for one schedule store.
// Safe for concurrent readers; writers serialize on the store's per-key
// atomic Put.
type Scheduler struct {
	Store  ScheduleStore
	Config Config
}

// NewScheduler wires a scheduler with the default generation bounds.
func NewScheduler(store ScheduleStore) *Scheduler {
	return &Scheduler{Store: store, Config: DefaultConfig()}
}

// CommitMode distinguishes creating a new leave from replacing an existing one.
type CommitMode string

const (
	CommitCreate CommitMode = "create"
	CommitUpdate CommitMode = "update"
)

// Proposal is the outcome of validating a candidate leave. Overlap and
// balance verdicts are reported independently so the caller can surface two
// different warnings.
type Proposal struct {
	Days           int
	Overlaps       bool
	ConflictsWith  LeaveID
	ExceedsBalance bool
	Available      int
}

// Accepted reports whether the proposal passed both checks.
func (p Proposal) Accepted() bool { return !p.Overlaps && !p.ExceedsBalance }

// =============================================================================
// READ PATH
// =============================================================================

// CyclesFor returns the employee's classified cycles, oldest first, with
// completed cycles filtered out: they carry no further action and are not
// part of the externally visible set.
func (s *Scheduler) CyclesFor(ctx context.Context, employeeID string, admission, today Date) ([]Cycle, error) {
	all, err := s.allCycles(ctx, employeeID, admission, today)
	if err != nil {
		return nil, err
	}
	visible := all[:0]
	for _, c := range all {
		if c.Status != StatusCompleted {
			visible = append(visible, c)
		}
	}
	return visible, nil
}

// allCycles generates and classifies every finished cycle, completed ones
// included. Validation works on this set: a past leave in a completed cycle
// still blocks an overlapping new leave.
func (s *Scheduler) allCycles(ctx context.Context, employeeID string, admission, today Date) ([]Cycle, error) {
	skeletons := GenerateCycles(employeeID, admission, today, s.Config)
	cycles := make([]Cycle, 0, len(skeletons))
	for _, sk := range skeletons {
		leaves, err := s.Store.Get(ctx, sk.ID)
		if err != nil {
			return nil, fmt.Errorf("loading schedule for cycle %s: %w", sk.ID, err)
		}
		cycles = append(cycles, Classify(sk, leaves, today))
	}
	return cycles, nil
}

// =============================================================================
// PROPOSAL
// =============================================================================

// ProposeLeave validates a candidate leave for the given cycle without
// writing anything. excluding names the leave being edited during an update
// so it neither collides with itself nor counts against the balance.
func (s *Scheduler) ProposeLeave(ctx context.Context, employeeID string, admission, today Date, cycleID CycleID, start, end Date, excluding LeaveID) (Proposal, error) {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return Proposal{}, ErrInvalidPeriod
	}

	cycles, err := s.allCycles(ctx, employeeID, admission, today)
	if err != nil {
		return Proposal{}, err
	}

	target, ok := findCycle(cycles, cycleID)
	if !ok {
		return Proposal{}, fmt.Errorf("%w: %s", ErrCycleNotFound, cycleID)
	}

	proposal := Proposal{Days: InclusiveDays(start, end)}

	// Overlap is employee-wide: scan every cycle's leaves, not just the target's.
	for _, cycle := range cycles {
		for _, leave := range cycle.ScheduledLeaves {
			if leave.ID == excluding {
				continue
			}
			if RangesOverlap(start, end, leave.Start, leave.End) {
				proposal.Overlaps = true
				proposal.ConflictsWith = leave.ID
				break
			}
		}
		if proposal.Overlaps {
			break
		}
	}

	proposal.Available = target.RemainingDays
	if excluding != "" {
		// Editing: the replaced leave's days return to the balance first.
		for _, leave := range target.ScheduledLeaves {
			if leave.ID == excluding {
				proposal.Available += leave.Days
				break
			}
		}
	}
	proposal.ExceedsBalance = proposal.Days > proposal.Available

	return proposal, nil
}

// =============================================================================
// MUTATIONS
// =============================================================================

// CommitLeave validates and persists a leave. The proposal is recomputed
// here; nothing from an earlier ProposeLeave call is trusted. On rejection
// the store is untouched and the returned error reports each failed check.
func (s *Scheduler) CommitLeave(ctx context.Context, employeeID string, admission, today Date, cycleID CycleID, leave LeavePeriod, mode CommitMode) (LeavePeriod, error) {
	excluding := LeaveID("")
	if mode == CommitUpdate {
		if leave.ID == "" {
			return LeavePeriod{}, fmt.Errorf("%w: update requires a leave id", ErrLeaveNotFound)
		}
		excluding = leave.ID
	}

	proposal, err := s.ProposeLeave(ctx, employeeID, admission, today, cycleID, leave.Start, leave.End, excluding)
	if err != nil {
		return LeavePeriod{}, err
	}
	if !proposal.Accepted() {
		return LeavePeriod{}, &RejectionError{
			CycleID:        cycleID,
			Days:           proposal.Days,
			Overlaps:       proposal.Overlaps,
			ConflictsWith:  proposal.ConflictsWith,
			ExceedsBalance: proposal.ExceedsBalance,
			Available:      proposal.Available,
		}
	}

	leave.Days = proposal.Days

	current, err := s.Store.Get(ctx, cycleID)
	if err != nil {
		return LeavePeriod{}, fmt.Errorf("loading schedule for cycle %s: %w", cycleID, err)
	}

	var next []LeavePeriod
	switch mode {
	case CommitUpdate:
		replaced := false
		next = make([]LeavePeriod, len(current))
		for i, existing := range current {
			if existing.ID == leave.ID {
				next[i] = leave
				replaced = true
			} else {
				next[i] = existing
			}
		}
		if !replaced {
			return LeavePeriod{}, fmt.Errorf("%w: %s in cycle %s", ErrLeaveNotFound, leave.ID, cycleID)
		}
	default:
		if leave.ID == "" {
			leave.ID = NewLeaveID()
		}
		next = append(append([]LeavePeriod{}, current...), leave)
	}

	if err := s.Store.Put(ctx, cycleID, next); err != nil {
		return LeavePeriod{}, fmt.Errorf("persisting schedule for cycle %s: %w", cycleID, err)
	}
	return leave, nil
}

// RemoveLeave deletes one leave period. Its days return to the cycle's
// balance on the next classification pass; no balance field exists to update.
func (s *Scheduler) RemoveLeave(ctx context.Context, cycleID CycleID, leaveID LeaveID) (LeavePeriod, error) {
	current, err := s.Store.Get(ctx, cycleID)
	if err != nil {
		return LeavePeriod{}, fmt.Errorf("loading schedule for cycle %s: %w", cycleID, err)
	}

	var removed LeavePeriod
	next := make([]LeavePeriod, 0, len(current))
	for _, leave := range current {
		if leave.ID == leaveID {
			removed = leave
			continue
		}
		next = append(next, leave)
	}
	if removed.ID == "" {
		return LeavePeriod{}, fmt.Errorf("%w: %s in cycle %s", ErrLeaveNotFound, leaveID, cycleID)
	}

	if err := s.Store.Put(ctx, cycleID, next); err != nil {
		return LeavePeriod{}, fmt.Errorf("persisting schedule for cycle %s: %w", cycleID, err)
	}
	return removed, nil
}

// ClearCycle deletes every leave recorded against a cycle. Used when a fully
// lapsed cycle is administratively written off.
func (s *Scheduler) ClearCycle(ctx context.Context, cycleID CycleID) error {
	if err := s.Store.Delete(ctx, cycleID); err != nil {
		return fmt.Errorf("clearing schedule for cycle %s: %w", cycleID, err)
	}
	return nil
}

func findCycle(cycles []Cycle, id CycleID) (Cycle, bool) {
	for _, c := range cycles {
		if c.ID == id {
			return c, true
		}
	}
	return Cycle{}, false
}
