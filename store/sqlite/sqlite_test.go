package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dupente/programa-cmj/registry"
	"github.com/Dupente/programa-cmj/vacation"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func insertLegacyRow(t *testing.T, s *Store, cycleID, start, end string) {
	t.Helper()
	_, err := s.db.Exec(
		`INSERT INTO legacy_vacation_schedules (cycle_id, start_date, end_date) VALUES (?, ?, ?)`,
		cycleID, start, end)
	require.NoError(t, err)
}

func testLeave(id string, start, end vacation.Date) vacation.LeavePeriod {
	return vacation.LeavePeriod{
		ID:    vacation.LeaveID(id),
		Start: start,
		End:   end,
		Days:  vacation.InclusiveDays(start, end),
	}
}

// =============================================================================
// SCHEDULE STORE TESTS
// =============================================================================

func TestScheduleStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	id := vacation.CycleID("emp-1-2025")

	leaves := []vacation.LeavePeriod{
		testLeave("l1", vacation.NewDate(2026, time.June, 1), vacation.NewDate(2026, time.June, 15)),
		testLeave("l2", vacation.NewDate(2026, time.August, 1), vacation.NewDate(2026, time.August, 10)),
	}
	require.NoError(t, s.Put(ctx, id, leaves))

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, vacation.LeaveID("l1"), got[0].ID)
	assert.Equal(t, 15, got[0].Days)
	assert.True(t, got[0].Start.Equal(vacation.NewDate(2026, time.June, 1)))

	require.NoError(t, s.Delete(ctx, id))
	got, err = s.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestScheduleStore_UnknownKeyIsNilNotError(t *testing.T) {
	s := newTestStore(t)
	got, err := s.Get(context.Background(), "emp-1-2099")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestScheduleStore_PutReplacesWholeList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	id := vacation.CycleID("emp-1-2025")

	require.NoError(t, s.Put(ctx, id, []vacation.LeavePeriod{
		testLeave("l1", vacation.NewDate(2026, time.June, 1), vacation.NewDate(2026, time.June, 15)),
	}))
	require.NoError(t, s.Put(ctx, id, []vacation.LeavePeriod{
		testLeave("l2", vacation.NewDate(2026, time.July, 1), vacation.NewDate(2026, time.July, 5)),
	}))

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, vacation.LeaveID("l2"), got[0].ID)
}

// =============================================================================
// LEGACY MIGRATION TESTS
// =============================================================================

func TestMigrateLegacySchedules_UpgradesAndDeletes(t *testing.T) {
	// GIVEN: Two legacy rows in the retired single-leave format
	// WHEN: Migrating
	// THEN: Both become current-format one-leave lists with 30 days, the
	//       legacy table is emptied, and a second run migrates nothing

	ctx := context.Background()
	s := newTestStore(t)
	insertLegacyRow(t, s, "emp-1-2025", "01/06/2025", "30/06/2025")
	insertLegacyRow(t, s, "emp-2-2025", "01/07/2025", "30/07/2025")

	migrated, err := s.MigrateLegacySchedules(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, migrated)

	got, err := s.Get(ctx, "emp-1-2025")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, vacation.FullEntitlementDays, got[0].Days)
	assert.NotEmpty(t, got[0].ID)
	assert.True(t, got[0].Start.Equal(vacation.NewDate(2025, time.June, 1)))

	// Idempotent: nothing left to migrate.
	again, err := s.MigrateLegacySchedules(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, again)
}

func TestMigrateLegacySchedules_CurrentFormatWins(t *testing.T) {
	// GIVEN: A cycle that already has a current-format schedule plus a stale
	//        legacy row for the same key
	// WHEN: Migrating
	// THEN: The current schedule is untouched and the legacy row is dropped

	ctx := context.Background()
	s := newTestStore(t)
	current := []vacation.LeavePeriod{
		testLeave("l1", vacation.NewDate(2026, time.June, 1), vacation.NewDate(2026, time.June, 10)),
	}
	require.NoError(t, s.Put(ctx, "emp-1-2025", current))
	insertLegacyRow(t, s, "emp-1-2025", "01/06/2025", "30/06/2025")

	migrated, err := s.MigrateLegacySchedules(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, migrated)

	got, err := s.Get(ctx, "emp-1-2025")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, vacation.LeaveID("l1"), got[0].ID)
}

func TestMigrateLegacySchedules_SkipsUnreadableRows(t *testing.T) {
	// An unreadable legacy row must not abort the upgrade of the good ones.
	ctx := context.Background()
	s := newTestStore(t)
	insertLegacyRow(t, s, "emp-1-2025", "garbage", "30/06/2025")
	insertLegacyRow(t, s, "emp-2-2025", "01/07/2025", "30/07/2025")

	migrated, err := s.MigrateLegacySchedules(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, migrated)

	got, err := s.Get(ctx, "emp-2-2025")
	require.NoError(t, err)
	require.Len(t, got, 1)
}

// =============================================================================
// EMPLOYEE DIRECTORY TESTS
// =============================================================================

func TestEmployeeDirectory_SaveGetList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	emp := registry.Employee{
		ID:            "emp-1",
		Name:          "Beatriz Souza",
		Role:          "Analista",
		Department:    "RH",
		Regime:        registry.RegimeEfetivo,
		AdmissionDate: "10/03/2018",
		Status:        registry.StatusActive,
		MonthlySalary: decimal.RequireFromString("4321.50"),
	}
	require.NoError(t, s.SaveEmployee(ctx, emp))
	require.NoError(t, s.SaveEmployee(ctx, registry.Employee{
		ID:            "emp-2",
		Name:          "Antonio Lima",
		Regime:        registry.RegimeVereador,
		AdmissionDate: "01/01/2021",
		Status:        registry.StatusActive,
		MonthlySalary: decimal.NewFromInt(9000),
	}))

	got, err := s.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Beatriz Souza", got.Name)
	assert.True(t, got.MonthlySalary.Equal(decimal.RequireFromString("4321.50")))
	assert.True(t, got.AccruesVacation())

	all, err := s.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Ordered by name.
	assert.Equal(t, "emp-2", all[0].ID)
	assert.Equal(t, "emp-1", all[1].ID)
}

func TestEmployeeDirectory_SaveUpserts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	emp := registry.Employee{
		ID:            "emp-1",
		Name:          "Beatriz Souza",
		Regime:        registry.RegimeEfetivo,
		AdmissionDate: "10/03/2018",
		Status:        registry.StatusActive,
		MonthlySalary: decimal.NewFromInt(3000),
	}
	require.NoError(t, s.SaveEmployee(ctx, emp))

	emp.Status = registry.StatusTerminated
	require.NoError(t, s.SaveEmployee(ctx, emp))

	got, err := s.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, registry.StatusTerminated, got.Status)
	assert.False(t, got.AccruesVacation())
}

func TestEmployeeDirectory_GetUnknownIsNil(t *testing.T) {
	s := newTestStore(t)
	got, err := s.GetEmployee(context.Background(), "no-such-employee")
	require.NoError(t, err)
	assert.Nil(t, got)
}
