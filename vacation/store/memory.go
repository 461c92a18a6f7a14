// Package store provides ScheduleStore implementations.
package store

import (
	"context"
	"sync"

	"github.com/Dupente/programa-cmj/vacation"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory keeps schedules in a map guarded by a RWMutex. Put replaces the
// whole list for a key under the write lock, so readers always see either
// the old list or the new one.
type Memory struct {
	mu        sync.RWMutex
	schedules map[vacation.CycleID][]vacation.LeavePeriod
}

func NewMemory() *Memory {
	return &Memory{schedules: make(map[vacation.CycleID][]vacation.LeavePeriod)}
}

// Get returns a copy of the stored list; nil for an unknown key.
func (m *Memory) Get(_ context.Context, id vacation.CycleID) ([]vacation.LeavePeriod, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored, ok := m.schedules[id]
	if !ok {
		return nil, nil
	}
	result := make([]vacation.LeavePeriod, len(stored))
	copy(result, stored)
	return result, nil
}

// Put replaces the stored list for the key.
func (m *Memory) Put(_ context.Context, id vacation.CycleID, leaves []vacation.LeavePeriod) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]vacation.LeavePeriod, len(leaves))
	copy(stored, leaves)
	m.schedules[id] = stored
	return nil
}

// Delete removes the key entirely. Deleting an absent key is a no-op.
func (m *Memory) Delete(_ context.Context, id vacation.CycleID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.schedules, id)
	return nil
}

// SeedLegacy loads upgraded legacy records, mirroring the one-time startup
// migration the production store performs. Existing keys are preserved.
func (m *Memory) SeedLegacy(legacy map[vacation.CycleID]vacation.LegacyLeave) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, leaves := range vacation.UpgradeLegacy(legacy) {
		if _, exists := m.schedules[id]; !exists {
			m.schedules[id] = leaves
		}
	}
}

var _ vacation.ScheduleStore = (*Memory)(nil)
