// Package progress evaluates an actual amount against a target, the shared
// logic behind budget usage and savings goal progress.
package progress

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidInput = errors.New("invalid progress input")

// Policy selects how the ratio is bounded.
type Policy int

const (
	// Uncapped lets the ratio exceed 100, budgets can be overspent.
	Uncapped Policy = iota
	// Capped stops the ratio at 100, a goal is never more than complete.
	Capped
)

const (
	NearLimitThreshold = 80.0
	LimitThreshold     = 100.0
)

type BudgetStatus string

const (
	OnTrack    BudgetStatus = "on track"
	NearLimit  BudgetStatus = "near limit"
	OverBudget BudgetStatus = "over budget"
)

type GoalStatus string

const (
	InProgress GoalStatus = "in progress"
	Completed  GoalStatus = "completed"
)

type Progress struct {
	// Ratio is a percentage, 0-100 for Capped, 0-100+ for Uncapped.
	Ratio     float64
	Remaining float64
}

func Evaluate(actual, target float64, policy Policy) (Progress, error) {
	if !finite(actual) || actual < 0 {
		return Progress{}, fmt.Errorf("%w: actual must be a non-negative amount, got %v", ErrInvalidInput, actual)
	}
	if !finite(target) || target < 0 {
		return Progress{}, fmt.Errorf("%w: target must be a non-negative amount, got %v", ErrInvalidInput, target)
	}

	ratio := 0.0
	if target > 0 {
		ratio = actual / target * 100
		if policy == Capped {
			ratio = math.Min(ratio, LimitThreshold)
		}
	}
	return Progress{Ratio: ratio, Remaining: target - actual}, nil
}

func ClassifyBudget(ratio float64) BudgetStatus {
	switch {
	case ratio > LimitThreshold:
		return OverBudget
	case ratio > NearLimitThreshold:
		return NearLimit
	default:
		return OnTrack
	}
}

func ClassifyGoal(ratio float64) GoalStatus {
	if ratio >= LimitThreshold {
		return Completed
	}
	return InProgress
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
