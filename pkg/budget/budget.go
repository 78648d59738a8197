package budget

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/finboard/finboard/internal/utils"
	"github.com/finboard/finboard/pkg/progress"
	"github.com/google/uuid"
)

var ErrBudgetCategoryNotFound = errors.New("budget category not found")
var ErrInvalidBudgetCategory = errors.New("invalid budget category")

type Category string

const (
	FoodAndDining     Category = "Food & Dining"
	Transportation    Category = "Transportation"
	Shopping          Category = "Shopping"
	Entertainment     Category = "Entertainment"
	BillsAndUtilities Category = "Bills & Utilities"
	Healthcare        Category = "Healthcare"
	Education         Category = "Education"
	Travel            Category = "Travel"
	Groceries         Category = "Groceries"
	PersonalCare      Category = "Personal Care"
	Other             Category = "Other"
)

var Categories = []Category{
	FoodAndDining,
	Transportation,
	Shopping,
	Entertainment,
	BillsAndUtilities,
	Healthcare,
	Education,
	Travel,
	Groceries,
	PersonalCare,
	Other,
}

// BudgetCategory is the monthly budget of one spending category. A user has at
// most one per (CategoryName, MonthYear).
type BudgetCategory struct {
	Id             uuid.UUID
	CategoryName   Category
	BudgetedAmount float64
	SpentAmount    float64
	// MonthYear is formatted as YYYY-MM.
	MonthYear string
	Created   time.Time
}

type Details struct {
	BudgetCategory
	// Usage is spent as a percentage of budgeted and may exceed 100.
	Usage     float64
	Remaining float64
	Status    progress.BudgetStatus
}

func Validate(b BudgetCategory) error {
	if !slices.Contains(Categories, b.CategoryName) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidBudgetCategory, b.CategoryName)
	}
	if _, err := utils.ParseMonth(b.MonthYear); err != nil {
		return fmt.Errorf("%w: month must be in YYYY-MM format", ErrInvalidBudgetCategory)
	}
	if err := validateAmount("budgeted amount", b.BudgetedAmount); err != nil {
		return err
	}
	return validateAmount("spent amount", b.SpentAmount)
}

func validateAmount(name string, amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidBudgetCategory, name)
	}
	return nil
}

func Derive(b BudgetCategory) (Details, error) {
	p, err := progress.Evaluate(b.SpentAmount, b.BudgetedAmount, progress.Uncapped)
	if err != nil {
		return Details{}, fmt.Errorf("%w: %w", ErrInvalidBudgetCategory, err)
	}
	return Details{
		BudgetCategory: b,
		Usage:          p.Ratio,
		Remaining:      p.Remaining,
		Status:         progress.ClassifyBudget(p.Ratio),
	}, nil
}
