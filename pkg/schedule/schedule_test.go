package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextDueDate(t *testing.T) {
	tests := []struct {
		name   string
		dueDay int
		now    time.Time
		want   time.Time
	}{
		{"due day later this month", 15, at(2024, 3, 10, 9), at(2024, 3, 15, 0)},
		{"due day passed moves to next month", 15, at(2024, 3, 20, 9), at(2024, 4, 15, 0)},
		{"due day is today stays in this month", 15, at(2024, 3, 15, 18), at(2024, 3, 15, 0)},
		{"december rolls into january", 5, at(2024, 12, 28, 0), at(2025, 1, 5, 0)},
		{"day 28 in february", 28, at(2023, 2, 1, 0), at(2023, 2, 28, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextDueDate(tt.dueDay, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextDueDate_RejectsInvalidDueDay(t *testing.T) {
	for _, dueDay := range []int{0, -1, 29, 31} {
		_, err := NextDueDate(dueDay, at(2024, 3, 10, 0))
		assert.ErrorIs(t, err, ErrInvalidDueDay, "due day %d", dueDay)
	}
}

func TestClassify_Boundaries(t *testing.T) {
	assert.Equal(t, Status{DaysUntilDue: -1, Band: BandOverdue, Label: "Overdue"}, Classify(-1, false))
	assert.Equal(t, Status{DaysUntilDue: 0, Band: BandToday, Label: "Due Today"}, Classify(0, false))
	assert.Equal(t, Status{DaysUntilDue: 1, Band: BandSoon, Label: "Due in 1 days"}, Classify(1, false))
	assert.Equal(t, Status{DaysUntilDue: 3, Band: BandSoon, Label: "Due in 3 days"}, Classify(3, false))
	assert.Equal(t, Status{DaysUntilDue: 4, Band: BandNormal, Label: "Due in 4 days"}, Classify(4, false))
}

func TestClassify_PaidWins(t *testing.T) {
	for _, days := range []int{-10, 0, 2, 30} {
		status := Classify(days, true)
		assert.Equal(t, BandPaid, status.Band)
		assert.Equal(t, "Paid", status.Label)
	}
}

func TestEvaluate_UsesCeilingOfDays(t *testing.T) {
	due := at(2024, 6, 15, 0)

	assert.Equal(t, BandToday, Evaluate(due, at(2024, 6, 15, 11), false).Band)
	assert.Equal(t, BandOverdue, Evaluate(due, at(2024, 6, 16, 1), false).Band)
	soon := Evaluate(due, at(2024, 6, 12, 8), false)
	assert.Equal(t, BandSoon, soon.Band)
	assert.Equal(t, 3, soon.DaysUntilDue)
}

func TestEvaluate_StoredDateOutsideServerZone(t *testing.T) {
	tests := []struct {
		name  string
		now   time.Time
		label string
	}{
		{"east of UTC after local midnight", time.Date(2024, 3, 15, 2, 0, 0, 0, time.FixedZone("IST", 19800)), "Due Today"},
		{"west of UTC in the evening before", time.Date(2024, 3, 14, 21, 0, 0, 0, time.FixedZone("EST", -18000)), "Due in 1 days"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// given
			scheduled, err := NextDueDate(15, tt.now)
			require.NoError(t, err)
			y, m, d := scheduled.Date()
			stored := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

			// when
			fresh := Evaluate(scheduled, tt.now, false)
			reloaded := Evaluate(stored, tt.now, false)

			// then
			assert.Equal(t, tt.label, fresh.Label)
			assert.Equal(t, fresh, reloaded)
		})
	}
}

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}
