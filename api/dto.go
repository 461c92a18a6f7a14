/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON shapes for the HTTP boundary, decoupled from the domain types so the
  wire contract can evolve without touching the engine.

NAMING CONVENTION:
  - *DTO: response types returned to clients
  - *Request: request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.
*/
package api

import (
	"github.com/Dupente/programa-cmj/registry"
	"github.com/Dupente/programa-cmj/vacation"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// EmployeeDTO represents a registry record in API responses.
type EmployeeDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	Department    string `json:"department,omitempty"`
	Regime        string `json:"regime"`
	AdmissionDate string `json:"admission_date"`
	Status        string `json:"status"`
	MonthlySalary string `json:"monthly_salary"`
}

// SaveEmployeeRequest creates or updates a registry record.
type SaveEmployeeRequest struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	Department    string `json:"department"`
	Regime        string `json:"regime"`
	AdmissionDate string `json:"admission_date"` // dd/mm/yyyy
	Status        string `json:"status"`
	MonthlySalary string `json:"monthly_salary"`
}

// LeaveDTO represents one fractional leave period.
type LeaveDTO struct {
	ID    string `json:"id"`
	Start string `json:"start"` // dd/mm/yyyy
	End   string `json:"end"`   // dd/mm/yyyy
	Days  int    `json:"days"`
}

// CycleDTO represents one classified acquisition cycle.
type CycleDTO struct {
	ID                 string     `json:"id"`
	EmployeeID         string     `json:"employee_id"`
	EmployeeName       string     `json:"employee_name,omitempty"`
	EmployeeRole       string     `json:"employee_role,omitempty"`
	AcquisitionStart   string     `json:"acquisition_start"`
	AcquisitionEnd     string     `json:"acquisition_end"`
	ConcessiveDeadline string     `json:"concessive_deadline"`
	Status             string     `json:"status"`
	OverdueDouble      bool       `json:"overdue_double"`
	RemainingDays      int        `json:"remaining_days"`
	Leaves             []LeaveDTO `json:"leaves"`
	Indemnity          string     `json:"indemnity,omitempty"`
}

// SummaryDTO carries the dashboard counters.
type SummaryDTO struct {
	Total          int    `json:"total"`
	Overdue        int    `json:"overdue"`
	WithBalance    int    `json:"with_balance"`
	InProgress     int    `json:"in_progress"`
	Scheduled      int    `json:"scheduled"`
	TotalIndemnity string `json:"total_indemnity"`
}

// DiagnosticDTO reports an employee skipped from the roster.
type DiagnosticDTO struct {
	EmployeeID string `json:"employee_id"`
	Error      string `json:"error"`
}

// RosterDTO is the full vacation listing.
type RosterDTO struct {
	Cycles      []CycleDTO      `json:"cycles"`
	Summary     SummaryDTO      `json:"summary"`
	Diagnostics []DiagnosticDTO `json:"diagnostics,omitempty"`
}

// ProposeLeaveRequest validates a candidate leave without committing it.
type ProposeLeaveRequest struct {
	Start            string `json:"start"` // dd/mm/yyyy
	End              string `json:"end"`   // dd/mm/yyyy
	ExcludingLeaveID string `json:"excluding_leave_id,omitempty"`
}

// ProposalDTO is the validation verdict, with both checks reported
// independently so the client can render two different warnings.
type ProposalDTO struct {
	Days           int    `json:"days"`
	Overlaps       bool   `json:"overlaps"`
	ConflictsWith  string `json:"conflicts_with,omitempty"`
	ExceedsBalance bool   `json:"exceeds_balance"`
	Available      int    `json:"available"`
}

// CommitLeaveRequest creates or replaces a leave period.
type CommitLeaveRequest struct {
	Start string `json:"start"` // dd/mm/yyyy
	End   string `json:"end"`   // dd/mm/yyyy
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toEmployeeDTO(e registry.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:            e.ID,
		Name:          e.Name,
		Role:          e.Role,
		Department:    e.Department,
		Regime:        string(e.Regime),
		AdmissionDate: e.AdmissionDate,
		Status:        string(e.Status),
		MonthlySalary: e.MonthlySalary.String(),
	}
}

func toLeaveDTOs(leaves []vacation.LeavePeriod) []LeaveDTO {
	dtos := make([]LeaveDTO, len(leaves))
	for i, l := range leaves {
		dtos[i] = LeaveDTO{
			ID:    string(l.ID),
			Start: l.Start.String(),
			End:   l.End.String(),
			Days:  l.Days,
		}
	}
	return dtos
}

func toCycleDTO(c vacation.Cycle) CycleDTO {
	return CycleDTO{
		ID:                 string(c.ID),
		EmployeeID:         c.EmployeeID,
		AcquisitionStart:   c.AcquisitionStart.String(),
		AcquisitionEnd:     c.AcquisitionEnd.String(),
		ConcessiveDeadline: c.ConcessiveDeadline.String(),
		Status:             string(c.Status),
		OverdueDouble:      c.IsOverdueDouble,
		RemainingDays:      c.RemainingDays,
		Leaves:             toLeaveDTOs(c.ScheduledLeaves),
	}
}

func toRosterDTO(r *vacation.Roster) RosterDTO {
	dto := RosterDTO{
		Cycles: make([]CycleDTO, len(r.Rows)),
		Summary: SummaryDTO{
			Total:          r.Summary.Total,
			Overdue:        r.Summary.Overdue,
			WithBalance:    r.Summary.WithBalance,
			InProgress:     r.Summary.InProgress,
			Scheduled:      r.Summary.Scheduled,
			TotalIndemnity: r.TotalIndemnity().StringFixed(2),
		},
	}
	for i, row := range r.Rows {
		cycle := toCycleDTO(row.Cycle)
		cycle.EmployeeName = row.Employee.Name
		cycle.EmployeeRole = row.Employee.Role
		if row.Cycle.IsOverdueDouble {
			cycle.Indemnity = row.Indemnity.StringFixed(2)
		}
		dto.Cycles[i] = cycle
	}
	for _, d := range r.Diagnostics {
		dto.Diagnostics = append(dto.Diagnostics, DiagnosticDTO{
			EmployeeID: d.EmployeeID,
			Error:      d.Err.Error(),
		})
	}
	return dto
}
