package utils

import (
	"math"
	"time"
)

const DateFormat = "2006-01-02"
const MonthFormat = "2006-01"

const day = 24 * time.Hour

// Truncate returns midnight of t's calendar day in t's location.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateIn returns midnight of t's calendar date in loc. Postgres DATE columns
// come back as UTC midnight, so stored dates are rebuilt in the zone of "now"
// before any day arithmetic.
func DateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DaysUntilDate returns ceil((date - now) in days), with date taken as a
// calendar day in now's zone.
func DaysUntilDate(date, now time.Time) int {
	return CeilDays(now, DateIn(date, now.Location()))
}

// AddMonths adds n calendar months to t keeping the day of month, or the last
// day of the target month when it is shorter (Jan 31 + 1 month = Feb 28/29).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := DaysInMonth(first.Year(), first.Month())
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// CeilDays returns ceil((to - from) / 24h).
func CeilDays(from, to time.Time) int {
	return int(math.Ceil(float64(to.Sub(from)) / float64(day)))
}

// ParseMonth parses a YYYY-MM month key.
func ParseMonth(s string) (time.Time, error) {
	return time.Parse(MonthFormat, s)
}

func MonthKey(t time.Time) string {
	return t.Format(MonthFormat)
}
