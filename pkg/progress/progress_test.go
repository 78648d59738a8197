package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBudget_Boundaries(t *testing.T) {
	assert.Equal(t, OnTrack, ClassifyBudget(0))
	assert.Equal(t, OnTrack, ClassifyBudget(80.0))
	assert.Equal(t, NearLimit, ClassifyBudget(80.01))
	assert.Equal(t, NearLimit, ClassifyBudget(100.0))
	assert.Equal(t, OverBudget, ClassifyBudget(100.01))
}

func TestEvaluate_BudgetIsUncapped(t *testing.T) {
	p, err := Evaluate(15000, 10000, Uncapped)

	require.NoError(t, err)
	assert.Equal(t, 150.0, p.Ratio)
	assert.Equal(t, -5000.0, p.Remaining)
	assert.Equal(t, OverBudget, ClassifyBudget(p.Ratio))
}

func TestEvaluate_BudgetAtEightyPercentIsOnTrack(t *testing.T) {
	p, err := Evaluate(8000, 10000, Uncapped)

	require.NoError(t, err)
	assert.Equal(t, OnTrack, ClassifyBudget(p.Ratio))
	assert.Equal(t, 2000.0, p.Remaining)
}

func TestEvaluate_GoalIsCapped(t *testing.T) {
	p, err := Evaluate(200000, 100000, Capped)

	require.NoError(t, err)
	assert.Equal(t, 100.0, p.Ratio)
	assert.Equal(t, Completed, ClassifyGoal(p.Ratio))
	assert.Equal(t, -100000.0, p.Remaining)
}

func TestEvaluate_GoalInProgress(t *testing.T) {
	p, err := Evaluate(25000, 100000, Capped)

	require.NoError(t, err)
	assert.Equal(t, 25.0, p.Ratio)
	assert.Equal(t, InProgress, ClassifyGoal(p.Ratio))
}

func TestEvaluate_ZeroTargetIsZeroRatio(t *testing.T) {
	for _, policy := range []Policy{Uncapped, Capped} {
		p, err := Evaluate(500, 0, policy)

		require.NoError(t, err)
		assert.Equal(t, 0.0, p.Ratio)
		assert.Equal(t, -500.0, p.Remaining)
	}
}

func TestEvaluate_RejectsNegativeInput(t *testing.T) {
	_, err := Evaluate(-1, 100, Uncapped)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Evaluate(1, -100, Capped)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
