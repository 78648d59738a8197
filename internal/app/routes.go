package app

import (
	"github.com/gorilla/mux"
)

const createUserRoute = "createUser"

// NewRouter builds the router with every middleware and route registered.
func NewRouter(deps *Dependencies) *mux.Router {
	r := mux.NewRouter()
	SetupMiddleware(r, deps)
	RegisterRoutes(r, deps)
	return r
}

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Fixed deposits
	r.HandleFunc("/api/fixeddeposit", deps.FixedDepositHandler.ListFixedDeposits).Methods("GET")
	r.HandleFunc("/api/fixeddeposit", deps.FixedDepositHandler.CreateFixedDeposit).Methods("POST")
	r.HandleFunc("/api/fixeddeposit/preview", deps.FixedDepositHandler.PreviewFixedDeposit).Methods("POST")
	r.HandleFunc("/api/fixeddeposit/{id}", deps.FixedDepositHandler.DeleteFixedDeposit).Methods("DELETE")

	// EMI reminders
	r.HandleFunc("/api/emi", deps.EMIHandler.ListReminders).Methods("GET")
	r.HandleFunc("/api/emi", deps.EMIHandler.CreateReminder).Methods("POST")
	r.HandleFunc("/api/emi/{id}", deps.EMIHandler.UpdateReminder).Methods("PUT")
	r.HandleFunc("/api/emi/{id}/paid", deps.EMIHandler.MarkPaid).Methods("POST")
	r.HandleFunc("/api/emi/{id}", deps.EMIHandler.DeleteReminder).Methods("DELETE")

	// Budgets
	r.HandleFunc("/api/budget", deps.BudgetHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/budget", deps.BudgetHandler.Save).Methods("PUT")
	r.HandleFunc("/api/budget/{id}/spent", deps.BudgetHandler.UpdateSpent).Methods("PUT")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.Delete).Methods("DELETE")

	// Savings goals
	r.HandleFunc("/api/savings", deps.SavingsGoalHandler.ListGoals).Methods("GET")
	r.HandleFunc("/api/savings", deps.SavingsGoalHandler.CreateGoal).Methods("POST")
	r.HandleFunc("/api/savings/{id}", deps.SavingsGoalHandler.UpdateGoal).Methods("PUT")
	r.HandleFunc("/api/savings/{id}", deps.SavingsGoalHandler.DeleteGoal).Methods("DELETE")

	// Dashboard
	r.HandleFunc("/api/dashboard", deps.DashboardHandler.GetDashboard).Methods("GET")

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST").Name(createUserRoute)

	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler()).Methods("GET")
	}
}
