package utils

import "time"

// Clock is the source of "now" for every derived instrument field.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// MockClock always reports FixedNow until moved with SetNow or Advance.
type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}

func (m *MockClock) Advance(d time.Duration) {
	m.FixedNow = m.FixedNow.Add(d)
}

// CurrentMonth returns the YYYY-MM key of the clock's current month.
func CurrentMonth(c Clock) string {
	return MonthKey(c.Now())
}
