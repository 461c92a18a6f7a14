/*
roster.go - Registry-wide read path

PURPOSE:
  Builds the full vacation roster: every eligible employee's visible cycles,
  classified against today, plus the summary counts the dashboard shows.
  One employee's bad record must never take down the listing, so malformed
  admission dates become per-employee diagnostics instead of errors.
*/
package vacation

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Dupente/programa-cmj/registry"
)

// =============================================================================
// ROSTER - The externally visible cycle set
// =============================================================================

// RosterRow pairs a classified cycle with its employee and, for overdue
// cycles, the double-pay liability.
type RosterRow struct {
	Employee  registry.Employee
	Cycle     Cycle
	Indemnity decimal.Decimal
}

// Diagnostic reports an employee skipped during roster construction.
type Diagnostic struct {
	EmployeeID string
	Err        error
}

// Summary carries the per-status counts. WithBalance counts cycles with any
// remaining days regardless of status, matching how the acquired figure has
// always been reported.
type Summary struct {
	Total       int
	Overdue     int
	WithBalance int
	InProgress  int
	Scheduled   int
}

// Roster is the whole read model for the vacation listing.
type Roster struct {
	Rows        []RosterRow
	Summary     Summary
	Diagnostics []Diagnostic
}

// TotalIndemnity sums the double-pay liability across all overdue rows.
func (r *Roster) TotalIndemnity() decimal.Decimal {
	total := decimal.Zero
	for _, row := range r.Rows {
		total = total.Add(row.Indemnity)
	}
	return total
}

// BuildRoster classifies every eligible employee's cycles as of today.
// Terminated employees and elected officials are skipped silently (they do
// not accrue); employees with unparseable admission dates are skipped with a
// diagnostic. Store failures abort the build: a partial roster would be
// indistinguishable from a complete one.
func (s *Scheduler) BuildRoster(ctx context.Context, employees []registry.Employee, today Date) (*Roster, error) {
	roster := &Roster{}

	for _, emp := range employees {
		if !emp.AccruesVacation() {
			continue
		}

		admission, err := ParseDate(emp.AdmissionDate)
		if err != nil {
			roster.Diagnostics = append(roster.Diagnostics, Diagnostic{
				EmployeeID: emp.ID,
				Err:        &MalformedDateError{EmployeeID: emp.ID, Field: "admission date", Value: emp.AdmissionDate},
			})
			continue
		}

		cycles, err := s.CyclesFor(ctx, emp.ID, admission, today)
		if err != nil {
			return nil, err
		}

		for _, cycle := range cycles {
			roster.Rows = append(roster.Rows, RosterRow{
				Employee:  emp,
				Cycle:     cycle,
				Indemnity: OverdueIndemnity(cycle, emp.MonthlySalary),
			})

			roster.Summary.Total++
			if cycle.RemainingDays > 0 {
				roster.Summary.WithBalance++
			}
			switch cycle.Status {
			case StatusOverdue:
				roster.Summary.Overdue++
			case StatusInProgress:
				roster.Summary.InProgress++
			case StatusScheduled:
				roster.Summary.Scheduled++
			}
		}
	}

	return roster, nil
}
