/*
store.go - Persistence boundary for leave schedules

PURPOSE:
  The engine's only mutable collaborator. A ScheduleStore maps cycle ids to
  whole leave lists; the engine requires nothing beyond get/put/delete by
  key. Put replaces the entire list atomically per key, so a reader never
  observes a half-updated schedule and no cross-key transaction is needed.

LEGACY FORMAT:
  The first deployment stored at most one leave per cycle as a bare
  start/end pair with an implicit full-entitlement duration. UpgradeLegacy
  converts that shape into the current list form with days = 30. Store
  implementations run the upgrade once at startup, never in the read path,
  so the engine itself never branches on format version.

IMPLEMENTATIONS:
  - store/sqlite: production store, shared with the employee registry
  - vacation/store: in-memory store for tests and development
*/
package vacation

import (
	"context"

	"github.com/google/uuid"
)

// =============================================================================
// SCHEDULE STORE - External collaborator boundary
// =============================================================================

// ScheduleStore persists leave lists keyed by cycle id.
//
// Get returns nil (no error) for an unknown key: a cycle with no recorded
// leaves is the normal initial state, not a failure.
// Put must replace the stored list for the key atomically.
type ScheduleStore interface {
	Get(ctx context.Context, id CycleID) ([]LeavePeriod, error)
	Put(ctx context.Context, id CycleID, leaves []LeavePeriod) error
	Delete(ctx context.Context, id CycleID) error
}

// =============================================================================
// LEGACY MIGRATION
// =============================================================================

// LegacyLeave is the retired single-leave-per-cycle record shape. The
// duration was implicit: a legacy leave always consumed the full entitlement.
type LegacyLeave struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// UpgradeLegacy converts legacy records into the current multi-leave form.
// Each record becomes a one-element list consuming the full 30 days, with a
// freshly minted id. Pure and deterministic apart from id generation; stores
// call it during their one-time startup migration.
func UpgradeLegacy(legacy map[CycleID]LegacyLeave) map[CycleID][]LeavePeriod {
	if len(legacy) == 0 {
		return nil
	}
	upgraded := make(map[CycleID][]LeavePeriod, len(legacy))
	for id, leave := range legacy {
		upgraded[id] = []LeavePeriod{{
			ID:    NewLeaveID(),
			Start: leave.Start,
			End:   leave.End,
			Days:  FullEntitlementDays,
		}}
	}
	return upgraded
}

// NewLeaveID mints an identifier for a leave period.
func NewLeaveID() LeaveID {
	return LeaveID(uuid.NewString())
}
