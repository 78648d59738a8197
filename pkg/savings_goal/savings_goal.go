package savings_goal

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/finboard/finboard/internal/utils"
	"github.com/finboard/finboard/pkg/progress"
	"github.com/google/uuid"
)

var ErrSavingsGoalNotFound = errors.New("savings goal not found")
var ErrInvalidSavingsGoal = errors.New("invalid savings goal")

type Category string

const (
	EmergencyFund   Category = "Emergency Fund"
	Vacation        Category = "Vacation"
	HomeDownPayment Category = "Home Down Payment"
	CarPurchase     Category = "Car Purchase"
	Education       Category = "Education"
	Retirement      Category = "Retirement"
	Other           Category = "Other"
)

var Categories = []Category{EmergencyFund, Vacation, HomeDownPayment, CarPurchase, Education, Retirement, Other}

// UrgentDays is the number of days left below which a goal deadline is urgent.
const UrgentDays = 30

type SavingsGoal struct {
	Id            uuid.UUID
	Title         string
	Category      Category
	TargetAmount  float64
	CurrentAmount float64
	TargetDate    time.Time
	Created       time.Time
}

type Details struct {
	SavingsGoal
	// Progress is capped at 100.
	Progress  float64
	Remaining float64
	Status    progress.GoalStatus
	DaysLeft  int
	Urgent    bool
	// Overdue is set when the target date has passed before completion.
	Overdue bool
}

func Validate(g SavingsGoal) error {
	if strings.TrimSpace(g.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidSavingsGoal)
	}
	if !slices.Contains(Categories, g.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidSavingsGoal, g.Category)
	}
	if math.IsNaN(g.TargetAmount) || math.IsInf(g.TargetAmount, 0) || g.TargetAmount <= 0 {
		return fmt.Errorf("%w: target amount must be positive", ErrInvalidSavingsGoal)
	}
	if math.IsNaN(g.CurrentAmount) || math.IsInf(g.CurrentAmount, 0) || g.CurrentAmount < 0 {
		return fmt.Errorf("%w: current amount must not be negative", ErrInvalidSavingsGoal)
	}
	if g.TargetDate.IsZero() {
		return fmt.Errorf("%w: target date is required", ErrInvalidSavingsGoal)
	}
	return nil
}

func Derive(g SavingsGoal, now time.Time) (Details, error) {
	p, err := progress.Evaluate(g.CurrentAmount, g.TargetAmount, progress.Capped)
	if err != nil {
		return Details{}, fmt.Errorf("%w: %w", ErrInvalidSavingsGoal, err)
	}
	status := progress.ClassifyGoal(p.Ratio)
	daysLeft := utils.DaysUntilDate(g.TargetDate, now)
	return Details{
		SavingsGoal: g,
		Progress:    p.Ratio,
		Remaining:   p.Remaining,
		Status:      status,
		DaysLeft:    daysLeft,
		Urgent:      daysLeft < UrgentDays,
		Overdue:     daysLeft <= 0 && status != progress.Completed,
	}, nil
}
