/*
Package sqlite provides the SQLite-backed implementation of the storage
boundaries: the vacation ScheduleStore and the employee registry Directory.

KEY TABLES:
  employees:                 registry records (read-only to the engine)
  vacation_schedules:        cycle id -> JSON leave list (current format)
  legacy_vacation_schedules: retired single-leave-per-cycle records

ATOMICITY:
  The engine requires whole-list replacement per cycle key. Put is a single
  INSERT OR REPLACE, which SQLite applies atomically, so a concurrent reader
  sees either the previous list or the new one, never a mix.

LEGACY MIGRATION:
  MigrateLegacySchedules upgrades any remaining legacy rows into the current
  format (one leave, 30 days) and deletes them, inside one database
  transaction. Running it again finds nothing to do, so startup can call it
  unconditionally.

WAL MODE:
  SQLite is opened with WAL so readers do not block the single writer.

USAGE:
  store, err := sqlite.New("./data/cmj.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()
  migrated, err := store.MigrateLegacySchedules(ctx)
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/Dupente/programa-cmj/registry"
	"github.com/Dupente/programa-cmj/vacation"
)

// Store implements vacation.ScheduleStore and registry.Directory.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the database at path and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Employees (registry records)
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT '',
		department TEXT NOT NULL DEFAULT '',
		regime TEXT NOT NULL,
		admission_date TEXT NOT NULL,
		status TEXT NOT NULL,
		monthly_salary TEXT NOT NULL DEFAULT '0',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_employees_status
		ON employees(status);

	-- Current schedule format: whole leave list per cycle key
	CREATE TABLE IF NOT EXISTS vacation_schedules (
		cycle_id TEXT PRIMARY KEY,
		leaves_json TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Retired format: at most one leave per cycle, implicit 30-day duration.
	-- Rows remaining here are upgraded once by MigrateLegacySchedules.
	CREATE TABLE IF NOT EXISTS legacy_vacation_schedules (
		cycle_id TEXT PRIMARY KEY,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SCHEDULE STORE (vacation.ScheduleStore interface)
// =============================================================================

// Get returns the leave list for a cycle; nil when no schedule is recorded.
func (s *Store) Get(ctx context.Context, id vacation.CycleID) ([]vacation.LeavePeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var leavesJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT leaves_json FROM vacation_schedules WHERE cycle_id = ?`, string(id),
	).Scan(&leavesJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", vacation.ErrStoreUnavailable, err)
	}

	var leaves []vacation.LeavePeriod
	if err := json.Unmarshal([]byte(leavesJSON), &leaves); err != nil {
		return nil, fmt.Errorf("corrupt schedule for cycle %s: %w", id, err)
	}
	return leaves, nil
}

// Put replaces the stored leave list for a cycle in one statement.
func (s *Store) Put(ctx context.Context, id vacation.CycleID, leaves []vacation.LeavePeriod) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if leaves == nil {
		leaves = []vacation.LeavePeriod{}
	}
	leavesJSON, err := json.Marshal(leaves)
	if err != nil {
		return fmt.Errorf("encoding schedule for cycle %s: %w", id, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO vacation_schedules (cycle_id, leaves_json, updated_at) VALUES (?, ?, ?)`,
		string(id), string(leavesJSON), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", vacation.ErrStoreUnavailable, err)
	}
	return nil
}

// Delete removes a cycle's schedule. Unknown keys are a no-op.
func (s *Store) Delete(ctx context.Context, id vacation.CycleID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM vacation_schedules WHERE cycle_id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("%w: %v", vacation.ErrStoreUnavailable, err)
	}
	return nil
}

var _ vacation.ScheduleStore = (*Store)(nil)

// =============================================================================
// LEGACY MIGRATION - one-time upgrade, never in the engine's hot path
// =============================================================================

// MigrateLegacySchedules upgrades remaining legacy rows into the current
// list format and removes them, atomically. Returns how many cycles were
// migrated. Idempotent: a second run migrates zero rows. Legacy rows whose
// cycle already has a current-format schedule are dropped without overwrite.
func (s *Store) MigrateLegacySchedules(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", vacation.ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		`SELECT cycle_id, start_date, end_date FROM legacy_vacation_schedules`)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", vacation.ErrStoreUnavailable, err)
	}

	legacy := make(map[vacation.CycleID]vacation.LegacyLeave)
	for rows.Next() {
		var cycleID, startStr, endStr string
		if err := rows.Scan(&cycleID, &startStr, &endStr); err != nil {
			rows.Close()
			return 0, fmt.Errorf("%w: %v", vacation.ErrStoreUnavailable, err)
		}
		start, err := vacation.ParseDate(startStr)
		if err != nil {
			continue // unreadable legacy row: skip, do not abort the upgrade
		}
		end, err := vacation.ParseDate(endStr)
		if err != nil {
			continue
		}
		legacy[vacation.CycleID(cycleID)] = vacation.LegacyLeave{Start: start, End: end}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", vacation.ErrStoreUnavailable, err)
	}

	migrated := 0
	now := time.Now().UTC().Format(time.RFC3339)
	for id, leaves := range vacation.UpgradeLegacy(legacy) {
		leavesJSON, err := json.Marshal(leaves)
		if err != nil {
			return 0, fmt.Errorf("encoding migrated schedule for cycle %s: %w", id, err)
		}
		// INSERT OR IGNORE: a current-format schedule always wins.
		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO vacation_schedules (cycle_id, leaves_json, updated_at) VALUES (?, ?, ?)`,
			string(id), string(leavesJSON), now,
		)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", vacation.ErrStoreUnavailable, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			migrated++
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM legacy_vacation_schedules`); err != nil {
		return 0, fmt.Errorf("%w: %v", vacation.ErrStoreUnavailable, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: %v", vacation.ErrStoreUnavailable, err)
	}
	return migrated, nil
}

// =============================================================================
// EMPLOYEE DIRECTORY (registry.Directory interface)
// =============================================================================

// ListEmployees returns all employee records ordered by name.
func (s *Store) ListEmployees(ctx context.Context) ([]registry.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, role, department, regime, admission_date, status, monthly_salary
		FROM employees ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []registry.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// GetEmployee returns one employee, or nil if absent.
func (s *Store) GetEmployee(ctx context.Context, id string) (*registry.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, role, department, regime, admission_date, status, monthly_salary
		FROM employees WHERE id = ?`, id)

	emp, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// SaveEmployee upserts an employee record.
func (s *Store) SaveEmployee(ctx context.Context, e registry.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (id, name, role, department, regime, admission_date, status, monthly_salary, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			role = excluded.role,
			department = excluded.department,
			regime = excluded.regime,
			admission_date = excluded.admission_date,
			status = excluded.status,
			monthly_salary = excluded.monthly_salary`,
		e.ID, e.Name, e.Role, e.Department, string(e.Regime),
		e.AdmissionDate, string(e.Status), e.MonthlySalary.String(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save employee %s: %w", e.ID, err)
	}
	return nil
}

var _ registry.Directory = (*Store)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (registry.Employee, error) {
	var e registry.Employee
	var regime, status, salary string
	if err := row.Scan(&e.ID, &e.Name, &e.Role, &e.Department, &regime,
		&e.AdmissionDate, &status, &salary); err != nil {
		return registry.Employee{}, err
	}
	e.Regime = registry.Regime(regime)
	e.Status = registry.Status(status)
	parsed, err := decimal.NewFromString(salary)
	if err != nil {
		parsed = decimal.Zero
	}
	e.MonthlySalary = parsed
	return e, nil
}
