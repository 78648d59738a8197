package app

import (
	"github.com/finboard/finboard/internal/config"
	"github.com/finboard/finboard/internal/event_bus"
	"github.com/finboard/finboard/internal/metrics"
	"github.com/finboard/finboard/internal/utils"
	"github.com/finboard/finboard/pkg/budget"
	"github.com/finboard/finboard/pkg/dashboard"
	"github.com/finboard/finboard/pkg/emi"
	"github.com/finboard/finboard/pkg/fixed_deposit"
	"github.com/finboard/finboard/pkg/money"
	"github.com/finboard/finboard/pkg/savings_goal"
	"github.com/finboard/finboard/pkg/user"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus  *event_bus.EventBus
	Metrics   *metrics.Collector
	Formatter *money.Formatter

	UserService user.Service
	UserHandler *user.Handler

	FixedDepositService fixed_deposit.Service
	FixedDepositHandler *fixed_deposit.Handler

	EMIService     emi.Service
	EMIHandler     *emi.Handler
	EMIRolloverJob *emi.RolloverJob

	BudgetService budget.BudgetService
	BudgetHandler *budget.BudgetHandler

	SavingsGoalService savings_goal.Service
	SavingsGoalHandler *savings_goal.Handler

	DashboardService dashboard.Service
	DashboardHandler *dashboard.Handler

	Clock utils.Clock
}

// Repositories are the storage backends the services are built on.
type Repositories struct {
	Users         user.Repo
	FixedDeposits fixed_deposit.Repository
	EMIs          emi.Repository
	Budgets       budget.BudgetRepo
	SavingsGoals  savings_goal.Repository
}

func PostgresRepositories(db *pgxpool.Pool) Repositories {
	return Repositories{
		Users:         user.NewUserRepo(db),
		FixedDeposits: fixed_deposit.NewRepository(db),
		EMIs:          emi.NewRepository(db),
		Budgets:       budget.NewBudgetRepo(db),
		SavingsGoals:  savings_goal.NewRepository(db),
	}
}

// BuildDependencies constructs all services and handlers on top of repos.
func BuildDependencies(repos Repositories, cfg config.Application, clock utils.Clock) *Dependencies {
	deps := &Dependencies{}
	deps.Clock = clock
	deps.EventBus = event_bus.NewEventBus()
	deps.Formatter = money.NewFormatter(cfg.Currency.Code, cfg.Currency.Locale)
	if cfg.Metrics.Enabled {
		deps.Metrics = metrics.NewCollector("finboard")
		deps.Metrics.Subscribe(deps.EventBus)
	}

	deps.UserService = user.NewUserService(repos.Users)
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.FixedDepositService = fixed_deposit.NewService(repos.FixedDeposits, deps.EventBus, deps.Clock)
	deps.FixedDepositHandler = fixed_deposit.NewHandler(deps.FixedDepositService, deps.Formatter)

	deps.EMIService = emi.NewService(repos.EMIs, deps.EventBus, deps.Clock)
	deps.EMIHandler = emi.NewHandler(deps.EMIService, deps.Formatter)
	deps.EMIRolloverJob = emi.NewRolloverJob(deps.EMIService)

	deps.BudgetService = budget.NewBudgetServiceImpl(repos.Budgets, deps.EventBus, deps.Clock)
	deps.BudgetHandler = budget.NewBudgetHandler(deps.BudgetService, deps.Formatter)

	deps.SavingsGoalService = savings_goal.NewService(repos.SavingsGoals, deps.EventBus, deps.Clock)
	deps.SavingsGoalHandler = savings_goal.NewHandler(deps.SavingsGoalService, deps.Formatter)

	deps.DashboardService = dashboard.NewService(
		deps.FixedDepositService,
		deps.EMIService,
		deps.BudgetService,
		deps.SavingsGoalService,
		deps.Clock,
	)
	deps.DashboardHandler = dashboard.NewHandler(deps.DashboardService, deps.Formatter)

	return deps
}
