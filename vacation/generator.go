/*
generator.go - Acquisition cycle derivation

PURPOSE:
  Walks forward from an employee's admission date one year at a time and
  emits every acquisition cycle that has finished accruing. Cycles are cheap
  to derive and always reflect the caller's "today", so they are recomputed
  on every read instead of cached.

ALGORITHM:
  For cycleIndex = 0, 1, 2, ...
    start = admission + cycleIndex years
    end   = start + 1 year - 1 day
    stop once end > today          (that cycle is still accruing)
    skip cycles starting before the floor date (out of system scope by policy)
  A hard iteration cap bounds the walk regardless of input.

SEE ALSO:
  - classifier.go: turns skeletons into classified cycles
*/
package vacation

import "time"

// =============================================================================
// CONFIG
// =============================================================================

// Config bounds cycle generation.
type Config struct {
	// FloorDate excludes cycles that started before the system's adoption
	// cutover. This is administrative scope, not a correctness rule.
	FloorDate Date

	// MaxCycles caps the generation walk. It is a safety valve against
	// pathological admission dates, not a business rule; at one cycle per
	// year of service the default is unreachable for real employees.
	MaxCycles int
}

// DefaultConfig matches the deployed system: schedules are tracked from 2025
// onward, and the walk gives up after 50 cycles.
func DefaultConfig() Config {
	return Config{
		FloorDate: NewDate(2025, time.January, 1),
		MaxCycles: 50,
	}
}

// =============================================================================
// GENERATOR
// =============================================================================

// GenerateCycles derives the ordered acquisition cycles for one employee.
// Only cycles whose acquisition window has fully elapsed by today are
// emitted; the cycle currently being earned is never surfaced. The result is
// recomputed fresh on every call and shares no state with previous calls.
func GenerateCycles(employeeID string, admission, today Date, cfg Config) []CycleSkeleton {
	if admission.IsZero() {
		return nil
	}

	var cycles []CycleSkeleton
	for index := 0; index <= cfg.MaxCycles; index++ {
		start := admission.AddYears(index)
		end := start.AddYears(1).AddDays(-1)

		// Still accruing: this and every later cycle are in the future.
		if end.After(today) {
			break
		}

		if start.Before(cfg.FloorDate) {
			continue
		}

		cycles = append(cycles, CycleSkeleton{
			ID:                 NewCycleID(employeeID, start.Year()),
			EmployeeID:         employeeID,
			AcquisitionStart:   start,
			AcquisitionEnd:     end,
			ConcessiveDeadline: end.AddYears(1),
		})
	}
	return cycles
}
