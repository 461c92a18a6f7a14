/*
handlers.go - HTTP API handlers for the vacation engine

ENDPOINTS:
  Employees:
    GET    /api/employees                        List registry records
    GET    /api/employees/{id}                   Get one record
    POST   /api/employees                        Create/update a record
    GET    /api/employees/{id}/cycles            Classified cycles for one employee

  Vacations:
    GET    /api/vacations                        Full roster with summary
    GET    /api/vacations/summary                Summary counters only

  Leaves (cycle-scoped):
    POST   /api/cycles/{cycleID}/leaves/propose  Validate a candidate leave
    POST   /api/cycles/{cycleID}/leaves          Commit a new leave
    PUT    /api/cycles/{cycleID}/leaves/{leaveID} Replace an existing leave
    DELETE /api/cycles/{cycleID}/leaves/{leaveID} Remove a leave
    DELETE /api/cycles/{cycleID}/leaves          Clear the whole cycle

ERROR HANDLING:
  - 400: malformed input (dates, bodies, cycle ids)
  - 404: unknown employee, cycle, or leave
  - 409: validation rejection (overlap and/or balance, reported distinctly)
  - 500: store failures

"TODAY":
  Handlers resolve today once per request through a clock function, so the
  engine itself stays deterministic and tests can pin the date.
*/
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/Dupente/programa-cmj/registry"
	"github.com/Dupente/programa-cmj/vacation"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Directory registry.Directory
	Scheduler *vacation.Scheduler

	// Now supplies "today" for each request. Defaults to the wall clock.
	Now func() vacation.Date
}

// NewHandler wires a handler over the registry and schedule store.
func NewHandler(directory registry.Directory, scheduler *vacation.Scheduler) *Handler {
	return &Handler{
		Directory: directory,
		Scheduler: scheduler,
		Now:       vacation.Today,
	}
}

func (h *Handler) today() vacation.Date {
	if h.Now != nil {
		return h.Now()
	}
	return vacation.Today()
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all registry records.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Directory.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single registry record.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Directory.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// SaveEmployee creates or updates a registry record.
func (h *Handler) SaveEmployee(w http.ResponseWriter, r *http.Request) {
	var req SaveEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required", nil)
		return
	}
	if _, err := vacation.ParseDate(req.AdmissionDate); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid admission_date (use dd/mm/yyyy)", err)
		return
	}

	emp := registry.Employee{
		ID:            req.ID,
		Name:          req.Name,
		Role:          req.Role,
		Department:    req.Department,
		Regime:        registry.Regime(req.Regime),
		AdmissionDate: req.AdmissionDate,
		Status:        registry.Status(req.Status),
		MonthlySalary: parseSalary(req.MonthlySalary),
	}
	if emp.Status == "" {
		emp.Status = registry.StatusActive
	}

	if err := h.Directory.SaveEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// GetEmployeeCycles returns one employee's visible cycles as of today.
func (h *Handler) GetEmployeeCycles(w http.ResponseWriter, r *http.Request) {
	emp, admission, ok := h.resolveEmployee(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	cycles, err := h.Scheduler.CyclesFor(r.Context(), emp.ID, admission, h.today())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute cycles", err)
		return
	}

	dtos := make([]CycleDTO, len(cycles))
	for i, c := range cycles {
		dtos[i] = toCycleDTO(c)
		dtos[i].EmployeeName = emp.Name
		dtos[i].EmployeeRole = emp.Role
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// ROSTER HANDLERS
// =============================================================================

// ListVacations returns the full roster: every eligible employee's visible
// cycles plus the summary counters.
func (h *Handler) ListVacations(w http.ResponseWriter, r *http.Request) {
	roster, ok := h.buildRoster(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toRosterDTO(roster))
}

// GetSummary returns only the summary counters.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	roster, ok := h.buildRoster(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toRosterDTO(roster).Summary)
}

func (h *Handler) buildRoster(w http.ResponseWriter, r *http.Request) (*vacation.Roster, bool) {
	employees, err := h.Directory.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return nil, false
	}
	roster, err := h.Scheduler.BuildRoster(r.Context(), employees, h.today())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build roster", err)
		return nil, false
	}
	for _, d := range roster.Diagnostics {
		log.Printf("roster: skipped employee %s: %v", d.EmployeeID, d.Err)
	}
	return roster, true
}

// =============================================================================
// LEAVE HANDLERS
// =============================================================================

// ProposeLeave validates a candidate leave without committing it.
func (h *Handler) ProposeLeave(w http.ResponseWriter, r *http.Request) {
	cycleID, emp, admission, ok := h.resolveCycle(w, r)
	if !ok {
		return
	}

	var req ProposeLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	start, end, ok := parseRange(w, req.Start, req.End)
	if !ok {
		return
	}

	proposal, err := h.Scheduler.ProposeLeave(r.Context(), emp.ID, admission, h.today(),
		cycleID, start, end, vacation.LeaveID(req.ExcludingLeaveID))
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ProposalDTO{
		Days:           proposal.Days,
		Overlaps:       proposal.Overlaps,
		ConflictsWith:  string(proposal.ConflictsWith),
		ExceedsBalance: proposal.ExceedsBalance,
		Available:      proposal.Available,
	})
}

// CreateLeave commits a new leave period.
func (h *Handler) CreateLeave(w http.ResponseWriter, r *http.Request) {
	h.commitLeave(w, r, vacation.CommitCreate, "")
}

// UpdateLeave replaces an existing leave period.
func (h *Handler) UpdateLeave(w http.ResponseWriter, r *http.Request) {
	h.commitLeave(w, r, vacation.CommitUpdate, vacation.LeaveID(chi.URLParam(r, "leaveID")))
}

func (h *Handler) commitLeave(w http.ResponseWriter, r *http.Request, mode vacation.CommitMode, leaveID vacation.LeaveID) {
	cycleID, emp, admission, ok := h.resolveCycle(w, r)
	if !ok {
		return
	}

	var req CommitLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	start, end, ok := parseRange(w, req.Start, req.End)
	if !ok {
		return
	}

	leave, err := h.Scheduler.CommitLeave(r.Context(), emp.ID, admission, h.today(),
		cycleID, vacation.LeavePeriod{ID: leaveID, Start: start, End: end}, mode)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	status := http.StatusCreated
	if mode == vacation.CommitUpdate {
		status = http.StatusOK
	}
	writeJSON(w, status, LeaveDTO{
		ID:    string(leave.ID),
		Start: leave.Start.String(),
		End:   leave.End.String(),
		Days:  leave.Days,
	})
}

// DeleteLeave removes one leave period; its days return to the balance.
func (h *Handler) DeleteLeave(w http.ResponseWriter, r *http.Request) {
	cycleID := vacation.CycleID(chi.URLParam(r, "cycleID"))
	leaveID := vacation.LeaveID(chi.URLParam(r, "leaveID"))

	removed, err := h.Scheduler.RemoveLeave(r.Context(), cycleID, leaveID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LeaveDTO{
		ID:    string(removed.ID),
		Start: removed.Start.String(),
		End:   removed.End.String(),
		Days:  removed.Days,
	})
}

// ClearCycle removes every leave recorded against a cycle.
func (h *Handler) ClearCycle(w http.ResponseWriter, r *http.Request) {
	cycleID := vacation.CycleID(chi.URLParam(r, "cycleID"))
	if err := h.Scheduler.ClearCycle(r.Context(), cycleID); err != nil {
		writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HELPERS
// =============================================================================

// resolveCycle maps the cycle id in the URL back to its employee, whose
// admission date anchors all validation.
func (h *Handler) resolveCycle(w http.ResponseWriter, r *http.Request) (vacation.CycleID, *registry.Employee, vacation.Date, bool) {
	cycleID := vacation.CycleID(chi.URLParam(r, "cycleID"))
	employeeID, _, err := cycleID.Split()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid cycle id", err)
		return "", nil, vacation.Date{}, false
	}

	emp, admission, ok := h.resolveEmployee(w, r, employeeID)
	if !ok {
		return "", nil, vacation.Date{}, false
	}
	return cycleID, emp, admission, true
}

func (h *Handler) resolveEmployee(w http.ResponseWriter, r *http.Request, id string) (*registry.Employee, vacation.Date, bool) {
	emp, err := h.Directory.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return nil, vacation.Date{}, false
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return nil, vacation.Date{}, false
	}
	admission, err := vacation.ParseDate(emp.AdmissionDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Employee has a malformed admission date", err)
		return nil, vacation.Date{}, false
	}
	return emp, admission, true
}

func parseRange(w http.ResponseWriter, startStr, endStr string) (vacation.Date, vacation.Date, bool) {
	start, err := vacation.ParseDate(startStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start date (use dd/mm/yyyy)", err)
		return vacation.Date{}, vacation.Date{}, false
	}
	end, err := vacation.ParseDate(endStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end date (use dd/mm/yyyy)", err)
		return vacation.Date{}, vacation.Date{}, false
	}
	return start, end, true
}

// parseSalary is lenient: registry imports predate validation, so an
// unreadable figure becomes zero rather than a rejected record.
func parseSalary(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// writeEngineError maps engine errors onto HTTP statuses. Rejections carry
// both verdicts in the details payload so the client can show each warning.
func writeEngineError(w http.ResponseWriter, err error) {
	var rejection *vacation.RejectionError
	switch {
	case errors.As(err, &rejection):
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Error: rejection.Error(),
			Code:  "leave_rejected",
			Details: map[string]any{
				"overlaps":        rejection.Overlaps,
				"conflicts_with":  string(rejection.ConflictsWith),
				"exceeds_balance": rejection.ExceedsBalance,
				"days":            rejection.Days,
				"available":       rejection.Available,
			},
		})
	case errors.Is(err, vacation.ErrInvalidPeriod), errors.Is(err, vacation.ErrMalformedDate):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	case vacation.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error(), nil)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
