package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finboard/finboard/internal/event_bus"
	"github.com/finboard/finboard/internal/utils"
	"github.com/finboard/finboard/pkg/budget"
	"github.com/finboard/finboard/pkg/emi"
	"github.com/finboard/finboard/pkg/fixed_deposit"
	"github.com/finboard/finboard/pkg/money"
	"github.com/finboard/finboard/pkg/progress"
	"github.com/finboard/finboard/pkg/savings_goal"
	"github.com/finboard/finboard/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1, Uid: "auth|1", Username: "asha"})

type fixture struct {
	clock         *utils.MockClock
	fixedDeposits fixed_deposit.Service
	emis          emi.Service
	budgets       budget.BudgetService
	savings       savings_goal.Service
	service       Service
}

func newFixture() fixture {
	clock := &utils.MockClock{FixedNow: time.Date(2024, 7, 5, 10, 0, 0, 0, time.UTC)}
	bus := event_bus.NewEventBus()
	f := fixture{
		clock:         clock,
		fixedDeposits: fixed_deposit.NewService(fixed_deposit.NewRepositoryStub(), bus, clock),
		emis:          emi.NewService(emi.NewRepositoryStub(), bus, clock),
		budgets:       budget.NewBudgetServiceImpl(budget.NewStubBudgetRepo(), bus, clock),
		savings:       savings_goal.NewService(savings_goal.NewRepositoryStub(), bus, clock),
	}
	f.service = NewService(f.fixedDeposits, f.emis, f.budgets, f.savings, clock)
	return f
}

func (f fixture) seed(t *testing.T) {
	_, err := f.fixedDeposits.Create(ctx, fixed_deposit.FixedDeposit{
		BankName: "State Bank", Principal: 100000, AnnualRate: 7.5, TermMonths: 12,
		StartDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = f.fixedDeposits.Create(ctx, fixed_deposit.FixedDeposit{
		BankName: "Post Office", Principal: 50000, AnnualRate: 0, TermMonths: 12,
		StartDate: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	for _, dueDay := range []int{8, 12, 25} {
		_, err := f.emis.Create(ctx, emi.EMIReminder{
			LoanName: "Loan", BankName: "HDFC", LoanAmount: 100000, EMIAmount: 5000, DueDay: dueDay,
		})
		require.NoError(t, err)
	}
	paid, err := f.emis.Create(ctx, emi.EMIReminder{
		LoanName: "Car", BankName: "ICICI", LoanAmount: 100000, EMIAmount: 2500, DueDay: 11,
	})
	require.NoError(t, err)
	_, err = f.emis.MarkPaid(ctx, paid.Id)
	require.NoError(t, err)

	food, err := f.budgets.Save(ctx, budget.BudgetCategory{CategoryName: budget.FoodAndDining, BudgetedAmount: 10000, MonthYear: "2024-07"})
	require.NoError(t, err)
	_, err = f.budgets.UpdateSpent(ctx, food.Id, 9000)
	require.NoError(t, err)
	_, err = f.budgets.Save(ctx, budget.BudgetCategory{CategoryName: budget.Travel, BudgetedAmount: 5000, MonthYear: "2024-07"})
	require.NoError(t, err)
	_, err = f.budgets.Save(ctx, budget.BudgetCategory{CategoryName: budget.Travel, BudgetedAmount: 7000, MonthYear: "2024-08"})
	require.NoError(t, err)

	_, err = f.savings.Create(ctx, savings_goal.SavingsGoal{
		Title: "Goa", Category: savings_goal.Vacation, TargetAmount: 60000, CurrentAmount: 15000,
		TargetDate: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = f.savings.Create(ctx, savings_goal.SavingsGoal{
		Title: "Buffer", Category: savings_goal.EmergencyFund, TargetAmount: 10000, CurrentAmount: 20000,
		TargetDate: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// the reminder due on the 8th is now overdue, the one on the 12th due soon
	f.clock.SetNow(time.Date(2024, 7, 10, 10, 0, 0, 0, time.UTC))
}

func TestServiceImpl_Summary(t *testing.T) {
	t.Run("should aggregate all instruments", func(t *testing.T) {
		// given
		f := newFixture()
		f.seed(t)

		// when
		summary, err := f.service.Summary(ctx, "")

		// then
		require.NoError(t, err)

		assert.Equal(t, 2, summary.FixedDeposits.Count)
		assert.Equal(t, 1, summary.FixedDeposits.Matured)
		assert.Equal(t, 150000.0, summary.FixedDeposits.TotalPrincipal)
		assert.InDelta(t, 7763.26, summary.FixedDeposits.TotalInterest, 0.01)
		assert.InDelta(t, 157763.26, summary.FixedDeposits.TotalMaturity, 0.01)

		assert.Equal(t, 4, summary.EMIs.Count)
		assert.Equal(t, 17500.0, summary.EMIs.MonthlyOutflow)
		assert.Equal(t, 1, summary.EMIs.DueSoon)
		assert.Equal(t, 1, summary.EMIs.Overdue)

		assert.Equal(t, "2024-07", summary.Budgets.MonthYear)
		assert.Equal(t, 2, summary.Budgets.Count)
		assert.Equal(t, 15000.0, summary.Budgets.TotalBudgeted)
		assert.Equal(t, 9000.0, summary.Budgets.TotalSpent)
		assert.Equal(t, 60.0, summary.Budgets.Usage)
		assert.Equal(t, progress.OnTrack, summary.Budgets.Status)

		assert.Equal(t, 2, summary.Savings.Count)
		assert.Equal(t, 1, summary.Savings.Completed)
		assert.Equal(t, 35000.0, summary.Savings.TotalSaved)
		assert.Equal(t, 70000.0, summary.Savings.TotalTarget)
		assert.Equal(t, 50.0, summary.Savings.Progress)
	})

	t.Run("should use requested budget month", func(t *testing.T) {
		f := newFixture()
		f.seed(t)

		summary, err := f.service.Summary(ctx, "2024-08")

		require.NoError(t, err)
		assert.Equal(t, 1, summary.Budgets.Count)
		assert.Equal(t, 7000.0, summary.Budgets.TotalBudgeted)
		assert.Equal(t, 0.0, summary.Budgets.Usage)
	})

	t.Run("should be empty for a new user", func(t *testing.T) {
		f := newFixture()

		summary, err := f.service.Summary(ctx, "")

		require.NoError(t, err)
		assert.Equal(t, 0, summary.FixedDeposits.Count)
		assert.Equal(t, 0.0, summary.Budgets.Usage)
		assert.Equal(t, 0.0, summary.Savings.Progress)
	})

	t.Run("should require user", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.Summary(context.Background(), "")

		assert.ErrorIs(t, err, user.ErrNoUser)
	})
}

func TestHandler_GetDashboard(t *testing.T) {
	f := newFixture()
	f.seed(t)
	handler := NewHandler(f.service, money.NewFormatter("INR", "en-IN"))

	t.Run("renders totals with formatted amounts", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil).WithContext(ctx)
		w := httptest.NewRecorder()

		handler.GetDashboard(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var dto DashboardDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
		assert.Equal(t, 2, dto.FixedDeposits.Count)
		assert.Equal(t, "₹1,50,000", dto.Formatted.TotalPrincipal)
		assert.Equal(t, "₹17,500", dto.Formatted.MonthlyEMIOutflow)
	})

	t.Run("rejects malformed month", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard?month=2024-7", nil).WithContext(ctx)
		w := httptest.NewRecorder()

		handler.GetDashboard(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
