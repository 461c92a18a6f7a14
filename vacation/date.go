package vacation

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// DATE - Day-precision calendar date (the engine never reasons below days)
// =============================================================================

// Date is a calendar date normalized to midnight UTC. All cycle and leave
// arithmetic operates on whole days; wall-clock time never enters the engine.
type Date struct {
	Time time.Time
}

// DateLayout is the record format used by the registry and the HTTP boundary
// (Brazilian dd/mm/yyyy, as the admission dates are recorded).
const DateLayout = "02/01/2006"

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a dd/mm/yyyy date. Out-of-range days (e.g. 31/02/2024)
// are rejected by the layout parser itself.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	return DateOf(t), nil
}

// Comparison
func (d Date) Before(other Date) bool        { return d.normalize().Before(other.normalize()) }
func (d Date) After(other Date) bool         { return d.normalize().After(other.normalize()) }
func (d Date) Equal(other Date) bool         { return d.normalize().Equal(other.normalize()) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (d Date) AddDays(n int) Date  { return Date{Time: d.Time.AddDate(0, 0, n)} }
func (d Date) AddYears(n int) Date { return Date{Time: d.Time.AddDate(n, 0, 0)} }

// Properties
func (d Date) Year() int         { return d.Time.Year() }
func (d Date) Month() time.Month { return d.Time.Month() }
func (d Date) Day() int          { return d.Time.Day() }
func (d Date) IsZero() bool      { return d.Time.IsZero() }

func (d Date) String() string { return d.Time.Format(DateLayout) }

// MarshalJSON writes the date in the dd/mm/yyyy record format. The persisted
// schedule shape uses the same representation as the legacy records did.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// DAY ARITHMETIC
// =============================================================================

// DaysBetween returns the number of whole days from one date to another
// (exclusive of the starting day). Negative if to precedes from.
func DaysBetween(from, to Date) int {
	return int(to.normalize().Sub(from.normalize()).Hours() / 24)
}

// InclusiveDays returns the day count of the closed range [start, end].
// A leave from the 1st to the 15th spans 15 days.
func InclusiveDays(start, end Date) int {
	return DaysBetween(start, end) + 1
}

// RangesOverlap reports whether two inclusive date ranges intersect.
func RangesOverlap(aStart, aEnd, bStart, bEnd Date) bool {
	return aStart.BeforeOrEqual(bEnd) && aEnd.AfterOrEqual(bStart)
}
