package vacation_test

import (
	"testing"
	"time"

	"github.com/Dupente/programa-cmj/vacation"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(year int, month time.Month, day int) vacation.Date {
	return vacation.NewDate(year, month, day)
}

func mustParse(t *testing.T, s string) vacation.Date {
	t.Helper()
	d, err := vacation.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

// =============================================================================
// CYCLE GENERATION TESTS
// =============================================================================

func TestGenerateCycles_RecentHire_NoCycleYet(t *testing.T) {
	// GIVEN: Employee admitted 15/06/2025, today is 15/11/2025
	// WHEN: Generating cycles
	// THEN: No cycle is emitted; the first one is still accruing

	cycles := vacation.GenerateCycles("emp-1",
		date(2025, time.June, 15), date(2025, time.November, 15),
		vacation.DefaultConfig())

	if len(cycles) != 0 {
		t.Fatalf("expected no cycles, got %d", len(cycles))
	}
}

func TestGenerateCycles_LongTenure_FloorExcludesOldCycles(t *testing.T) {
	// GIVEN: Employee admitted 10/03/2018, today is 15/11/2026
	// WHEN: Generating cycles
	// THEN: Only the 2025 cycle is emitted; everything before the floor is skipped

	cycles := vacation.GenerateCycles("emp-1",
		date(2018, time.March, 10), date(2026, time.November, 15),
		vacation.DefaultConfig())

	if len(cycles) != 1 {
		t.Fatalf("expected 1 cycle, got %d", len(cycles))
	}

	c := cycles[0]
	if c.ID != "emp-1-2025" {
		t.Errorf("expected cycle id emp-1-2025, got %s", c.ID)
	}
	if !c.AcquisitionStart.Equal(date(2025, time.March, 10)) {
		t.Errorf("expected acquisition start 10/03/2025, got %s", c.AcquisitionStart)
	}
	if !c.AcquisitionEnd.Equal(date(2026, time.March, 9)) {
		t.Errorf("expected acquisition end 09/03/2026, got %s", c.AcquisitionEnd)
	}
	if !c.ConcessiveDeadline.Equal(date(2027, time.March, 9)) {
		t.Errorf("expected concessive deadline 09/03/2027, got %s", c.ConcessiveDeadline)
	}
}

func TestGenerateCycles_StopsAtStillAccruingCycle(t *testing.T) {
	// GIVEN: Employee admitted 10/01/2024, today is 15/01/2026
	// WHEN: Generating cycles
	// THEN: The 2024 cycle is below the floor, the 2025 cycle is emitted,
	//       and the 2026 cycle (still accruing) is not

	cycles := vacation.GenerateCycles("emp-2",
		date(2024, time.January, 10), date(2026, time.January, 15),
		vacation.DefaultConfig())

	if len(cycles) != 1 {
		t.Fatalf("expected 1 cycle, got %d", len(cycles))
	}
	if cycles[0].ID != "emp-2-2025" {
		t.Errorf("expected cycle id emp-2-2025, got %s", cycles[0].ID)
	}
}

func TestGenerateCycles_EmitsConsecutiveCycles(t *testing.T) {
	// GIVEN: Employee admitted exactly on the floor date, three years elapsed
	// WHEN: Generating cycles
	// THEN: One cycle per completed year, oldest first, contiguous windows

	cycles := vacation.GenerateCycles("emp-3",
		date(2025, time.January, 1), date(2028, time.January, 15),
		vacation.DefaultConfig())

	if len(cycles) != 3 {
		t.Fatalf("expected 3 cycles, got %d", len(cycles))
	}
	for i, c := range cycles {
		wantStart := date(2025+i, time.January, 1)
		wantEnd := date(2025+i, time.December, 31)
		if !c.AcquisitionStart.Equal(wantStart) || !c.AcquisitionEnd.Equal(wantEnd) {
			t.Errorf("cycle %d: expected %s..%s, got %s..%s",
				i, wantStart, wantEnd, c.AcquisitionStart, c.AcquisitionEnd)
		}
	}
}

func TestGenerateCycles_IterationCapBoundsTheWalk(t *testing.T) {
	// GIVEN: A pathological admission date far in the past, a far future today,
	//        and a low cap with no floor
	// WHEN: Generating cycles
	// THEN: The walk emits cap+1 cycles (indexes 0 through MaxCycles) and stops

	cfg := vacation.Config{
		FloorDate: date(1900, time.January, 1),
		MaxCycles: 3,
	}
	cycles := vacation.GenerateCycles("emp-4",
		date(1990, time.January, 1), date(2100, time.January, 1), cfg)

	if len(cycles) != 4 {
		t.Fatalf("expected 4 cycles (cap 3 is inclusive), got %d", len(cycles))
	}
}

func TestGenerateCycles_ZeroAdmission_NoCycles(t *testing.T) {
	cycles := vacation.GenerateCycles("emp-5",
		vacation.Date{}, date(2026, time.January, 1), vacation.DefaultConfig())
	if cycles != nil {
		t.Fatalf("expected nil for zero admission date, got %v", cycles)
	}
}

func TestGenerateCycles_Deterministic(t *testing.T) {
	// Same inputs, same output; the generator keeps no state between calls.
	a := vacation.GenerateCycles("emp-6",
		date(2025, time.February, 1), date(2027, time.June, 1), vacation.DefaultConfig())
	b := vacation.GenerateCycles("emp-6",
		date(2025, time.February, 1), date(2027, time.June, 1), vacation.DefaultConfig())

	if len(a) != len(b) {
		t.Fatalf("non-deterministic cycle count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("cycle %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

// =============================================================================
// CYCLE ID TESTS
// =============================================================================

func TestCycleID_SplitRoundTrip(t *testing.T) {
	id := vacation.NewCycleID("emp-10", 2025)
	empID, year, err := id.Split()
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	// Employee ids may contain hyphens; the year is the final segment.
	if empID != "emp-10" || year != 2025 {
		t.Errorf("expected (emp-10, 2025), got (%s, %d)", empID, year)
	}
}

func TestCycleID_SplitRejectsMalformed(t *testing.T) {
	for _, bad := range []string{"", "noyear", "-2025", "emp-notayear"} {
		if _, _, err := vacation.CycleID(bad).Split(); err == nil {
			t.Errorf("expected error for cycle id %q", bad)
		}
	}
}

// =============================================================================
// DATE ARITHMETIC TESTS
// =============================================================================

func TestInclusiveDays(t *testing.T) {
	// A leave from the 1st to the 15th spans 15 days.
	got := vacation.InclusiveDays(date(2025, time.June, 1), date(2025, time.June, 15))
	if got != 15 {
		t.Errorf("expected 15 days, got %d", got)
	}
	if one := vacation.InclusiveDays(date(2025, time.June, 1), date(2025, time.June, 1)); one != 1 {
		t.Errorf("single-day leave: expected 1 day, got %d", one)
	}
}

func TestRangesOverlap(t *testing.T) {
	jun := func(d int) vacation.Date { return date(2025, time.June, d) }

	if !vacation.RangesOverlap(jun(1), jun(15), jun(10), jun(20)) {
		t.Error("expected overlapping ranges to overlap")
	}
	if !vacation.RangesOverlap(jun(1), jun(15), jun(15), jun(20)) {
		t.Error("expected ranges touching at the boundary to overlap (inclusive ends)")
	}
	if vacation.RangesOverlap(jun(1), jun(14), jun(15), jun(20)) {
		t.Error("expected adjacent ranges not to overlap")
	}
}

func TestParseDate_RecordFormat(t *testing.T) {
	d := mustParse(t, "10/03/2018")
	if !d.Equal(date(2018, time.March, 10)) {
		t.Errorf("expected 10/03/2018, got %s", d)
	}

	if _, err := vacation.ParseDate("2018-03-10"); err == nil {
		t.Error("expected error for ISO-formatted date")
	}
	if _, err := vacation.ParseDate(""); err == nil {
		t.Error("expected error for empty date")
	}
}
