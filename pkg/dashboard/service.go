package dashboard

import (
	"context"
	"fmt"

	"github.com/finboard/finboard/internal/utils"
	"github.com/finboard/finboard/pkg/budget"
	"github.com/finboard/finboard/pkg/emi"
	"github.com/finboard/finboard/pkg/fixed_deposit"
	"github.com/finboard/finboard/pkg/savings_goal"
	"github.com/finboard/finboard/pkg/user"
)

type Service interface {
	// Summary aggregates all instruments of the current user. Budgets are
	// taken from monthYear, or from the current month when empty.
	Summary(ctx context.Context, monthYear string) (Summary, error)
}

type ServiceImpl struct {
	fixedDeposits fixed_deposit.Service
	emis          emi.Service
	budgets       budget.BudgetService
	savings       savings_goal.Service
	clock         utils.Clock
}

func NewService(
	fixedDeposits fixed_deposit.Service,
	emis emi.Service,
	budgets budget.BudgetService,
	savings savings_goal.Service,
	clock utils.Clock,
) *ServiceImpl {
	return &ServiceImpl{
		fixedDeposits: fixedDeposits,
		emis:          emis,
		budgets:       budgets,
		savings:       savings,
		clock:         clock,
	}
}

func (s *ServiceImpl) Summary(ctx context.Context, monthYear string) (Summary, error) {
	if _, err := user.CurrentId(ctx); err != nil {
		return Summary{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if monthYear == "" {
		monthYear = utils.CurrentMonth(s.clock)
	}

	deposits, err := s.fixedDeposits.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to list fixed deposits: %w", err)
	}
	reminders, err := s.emis.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to list emi reminders: %w", err)
	}
	budgets, err := s.budgets.List(ctx, monthYear)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to list budgets: %w", err)
	}
	goals, err := s.savings.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to list savings goals: %w", err)
	}

	return Summary{
		FixedDeposits: summarizeFixedDeposits(deposits),
		EMIs:          summarizeEMIs(reminders),
		Budgets:       summarizeBudgets(monthYear, budgets),
		Savings:       summarizeSavings(goals),
	}, nil
}
