package savings_goal

import (
	"testing"
	"time"

	"github.com/finboard/finboard/pkg/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 7, 20, 12, 0, 0, 0, time.UTC)

func vacation() SavingsGoal {
	return SavingsGoal{
		Title:         "Goa trip",
		Category:      Vacation,
		TargetAmount:  60000,
		CurrentAmount: 15000,
		TargetDate:    time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestDerive(t *testing.T) {
	t.Run("progress in percent", func(t *testing.T) {
		d, err := Derive(vacation(), now)
		require.NoError(t, err)
		assert.Equal(t, 25.0, d.Progress)
		assert.Equal(t, 45000.0, d.Remaining)
		assert.Equal(t, progress.InProgress, d.Status)
		assert.False(t, d.Urgent)
		assert.False(t, d.Overdue)
	})

	t.Run("progress is capped when saved twice the target", func(t *testing.T) {
		g := vacation()
		g.CurrentAmount = 2 * g.TargetAmount
		d, err := Derive(g, now)
		require.NoError(t, err)
		assert.Equal(t, 100.0, d.Progress)
		assert.Equal(t, progress.Completed, d.Status)
		assert.Equal(t, -60000.0, d.Remaining)
	})

	t.Run("days left rounds up", func(t *testing.T) {
		g := vacation()
		g.TargetDate = time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
		d, err := Derive(g, now)
		require.NoError(t, err)
		assert.Equal(t, 12, d.DaysLeft)
		assert.True(t, d.Urgent)
	})

	t.Run("past target date is overdue unless completed", func(t *testing.T) {
		g := vacation()
		g.TargetDate = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
		d, err := Derive(g, now)
		require.NoError(t, err)
		assert.True(t, d.Overdue)

		g.CurrentAmount = g.TargetAmount
		d, err = Derive(g, now)
		require.NoError(t, err)
		assert.False(t, d.Overdue)
	})
}

func TestDerive_StoredTargetDateOutsideServerZone(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	g := vacation()
	g.TargetDate = time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC)

	t.Run("evening before the target date has one day left", func(t *testing.T) {
		d, err := Derive(g, time.Date(2024, 7, 19, 21, 0, 0, 0, est))
		require.NoError(t, err)
		assert.Equal(t, 1, d.DaysLeft)
		assert.False(t, d.Overdue)
	})

	t.Run("evening of the target date has no days left", func(t *testing.T) {
		d, err := Derive(g, time.Date(2024, 7, 20, 21, 0, 0, 0, est))
		require.NoError(t, err)
		assert.Equal(t, 0, d.DaysLeft)
		assert.True(t, d.Overdue)
	})
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(vacation()))

	tests := []struct {
		name   string
		modify func(g *SavingsGoal)
	}{
		{"empty title", func(g *SavingsGoal) { g.Title = "" }},
		{"unknown category", func(g *SavingsGoal) { g.Category = "Gadgets" }},
		{"zero target", func(g *SavingsGoal) { g.TargetAmount = 0 }},
		{"negative current", func(g *SavingsGoal) { g.CurrentAmount = -1 }},
		{"missing target date", func(g *SavingsGoal) { g.TargetDate = time.Time{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := vacation()
			tt.modify(&g)
			assert.ErrorIs(t, Validate(g), ErrInvalidSavingsGoal)
		})
	}
}
