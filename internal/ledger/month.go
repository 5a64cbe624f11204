package ledger

import (
	"time"

	"github.com/FabricioUDB/control-gastos/internal"
)

// MonthRange resolves (year, month) to the inclusive boundaries of that
// calendar month in loc: the first instant of day 1 and the last instant
// before the next month begins. Day count follows the calendar, so February
// in a leap year ends on the 29th. A month outside [1,12] is rejected rather
// than silently wrapped.
func MonthRange(year, month int, loc *time.Location) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, internal.ErrInvalidMonth
	}
	if loc == nil {
		loc = time.Local
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end, nil
}

// InRange reports whether t falls inside the inclusive [start, end] pair
// produced by MonthRange.
func InRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
