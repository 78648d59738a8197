package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{"same day next month", date(2024, 3, 15), 1, date(2024, 4, 15)},
		{"clamps to end of february in leap year", date(2024, 1, 31), 1, date(2024, 2, 29)},
		{"clamps to end of february", date(2023, 1, 31), 1, date(2023, 2, 28)},
		{"clamps to 30 day month", date(2024, 5, 31), 1, date(2024, 6, 30)},
		{"crosses year", date(2024, 11, 30), 3, date(2025, 2, 28)},
		{"twelve months", date(2024, 2, 29), 12, date(2025, 2, 28)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonths(tt.in, tt.n))
		})
	}
}

func TestCeilDays(t *testing.T) {
	due := date(2024, 6, 15)

	assert.Equal(t, 0, CeilDays(due.Add(10*time.Hour), due))
	assert.Equal(t, 1, CeilDays(due.Add(-10*time.Hour), due))
	assert.Equal(t, -1, CeilDays(due.Add(34*time.Hour), due))
	assert.Equal(t, 3, CeilDays(date(2024, 6, 12), due))
}

func TestDaysUntilDate(t *testing.T) {
	ist := time.FixedZone("IST", 5*60*60+30*60)
	est := time.FixedZone("EST", -5*60*60)
	stored := date(2024, 3, 15)

	t.Run("stored date is the same calendar day east of UTC", func(t *testing.T) {
		now := time.Date(2024, 3, 15, 2, 0, 0, 0, ist)
		assert.Equal(t, 0, DaysUntilDate(stored, now))
	})

	t.Run("stored date is the next calendar day west of UTC", func(t *testing.T) {
		now := time.Date(2024, 3, 14, 21, 0, 0, 0, est)
		assert.Equal(t, 1, DaysUntilDate(stored, now))
	})

	t.Run("keeps the calendar date when moving zones", func(t *testing.T) {
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, est), DateIn(stored, est))
	})
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2024-07")
	assert.NoError(t, err)
	assert.Equal(t, "2024-07", MonthKey(m))

	_, err = ParseMonth("07-2024")
	assert.Error(t, err)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
