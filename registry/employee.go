/*
Package registry holds the employee read model consumed by the vacation
engine. The registry subsystem owns these records; the engine never mutates
them, it only reads admission dates and eligibility.
*/
package registry

import (
	"context"

	"github.com/shopspring/decimal"
)

// =============================================================================
// EMPLOYEE
// =============================================================================

// Regime is the employment category.
type Regime string

const (
	RegimeEfetivo      Regime = "efetivo"
	RegimeComissionado Regime = "comissionado"
	RegimeContratado   Regime = "contratado"
	// RegimeVereador marks elected officials, who do not accrue vacation.
	RegimeVereador Regime = "vereador"
)

// Status is the employment status.
type Status string

const (
	StatusActive     Status = "active"
	StatusTerminated Status = "terminated"
)

// Employee is the registry record. AdmissionDate is kept in the recorded
// dd/mm/yyyy form; the engine parses it and fails closed per employee when a
// record is malformed.
type Employee struct {
	ID            string
	Name          string
	Role          string
	Department    string
	Regime        Regime
	AdmissionDate string
	Status        Status
	MonthlySalary decimal.Decimal
}

// AccruesVacation reports whether the employee participates in vacation
// accrual: active, and not an elected official.
func (e Employee) AccruesVacation() bool {
	return e.Status == StatusActive && e.Regime != RegimeVereador
}

// =============================================================================
// DIRECTORY - Read boundary the engine depends on
// =============================================================================

// Directory lists and resolves employee records.
type Directory interface {
	ListEmployees(ctx context.Context) ([]Employee, error)
	GetEmployee(ctx context.Context, id string) (*Employee, error)
	SaveEmployee(ctx context.Context, e Employee) error
}
