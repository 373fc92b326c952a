// Package workday implements calendar arithmetic over working days
// (Monday through Friday). A date maps to its 1-based position among the
// working days of its month, and that position maps back to a concrete
// date in a target month. This is the core of the shift command.
package workday

import (
	"fmt"
	"time"
)

// Date is a calendar date. The zero value is not meaningful; construct
// dates with New or Parse.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New returns a Date after checking that year, month and day name a real
// calendar day.
func New(year int, month time.Month, day int) (Date, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, fmt.Errorf("invalid date: %04d-%02d-%02d", year, month, day)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// Parse parses an ISO calendar date (YYYY-MM-DD), the form used by the
// Asana API for due_on and start_on.
func Parse(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// String renders the date in ISO form, round-tripping with Parse.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Weekday reports the day of the week.
func (d Date) Weekday() time.Weekday {
	return d.time().Weekday()
}

func (d Date) time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func isWorkday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// Ordinal returns the 1-based position of d among the working days of
// its month, counting day by day from the 1st through d inclusive.
// A weekend date contributes nothing to its own count, so the result is
// the ordinal of the nearest preceding weekday; such input is tolerated
// here but never produced by NthWorkday.
func Ordinal(d Date) int {
	target := d.time()
	n := 0
	for t := time.Date(d.Year, d.Month, 1, 0, 0, 0, 0, time.UTC); !t.After(target); t = t.AddDate(0, 0, 1) {
		if isWorkday(t) {
			n++
		}
	}
	return n
}

// NthWorkday finds the nth working day of the given month, scanning
// forward from the 1st. The boolean is false when the month has fewer
// than n working days; the scan never continues into the following
// month and never clamps to the last working day.
func NthWorkday(year int, month time.Month, n int) (Date, bool) {
	if n < 1 {
		return Date{}, false
	}
	count := 0
	for t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC); t.Month() == month; t = t.AddDate(0, 0, 1) {
		if isWorkday(t) {
			count++
			if count == n {
				return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, true
			}
		}
	}
	return Date{}, false
}

// ShiftToNextMonth moves d one month forward keeping its working-day
// ordinal: the 3rd working day of October maps to the 3rd working day
// of November. December rolls over to January of the following year.
// The boolean is false when the next month has too few working days to
// host the ordinal; callers are expected to leave the original date
// unchanged in that case.
func ShiftToNextMonth(d Date) (Date, bool) {
	year, month := d.Year, d.Month+1
	if d.Month == time.December {
		year, month = d.Year+1, time.January
	}
	return NthWorkday(year, month, Ordinal(d))
}
