package dashboard

import (
	"errors"
	"net/http"

	"github.com/finboard/finboard/internal/rest"
	"github.com/finboard/finboard/pkg/budget"
	"github.com/finboard/finboard/pkg/money"
	"github.com/finboard/finboard/pkg/user"
	log "github.com/sirupsen/logrus"
)

type DashboardDTO struct {
	Summary
	Formatted FormattedDTO `json:"formatted"`
}

type FormattedDTO struct {
	TotalPrincipal    string `json:"totalPrincipal"`
	TotalInterest     string `json:"totalInterest"`
	TotalMaturity     string `json:"totalMaturity"`
	MonthlyEMIOutflow string `json:"monthlyEmiOutflow"`
	TotalBudgeted     string `json:"totalBudgeted"`
	TotalSpent        string `json:"totalSpent"`
	TotalSaved        string `json:"totalSaved"`
	TotalSavingsGoal  string `json:"totalSavingsGoal"`
}

type Handler struct {
	service   Service
	formatter *money.Formatter
}

func NewHandler(service Service, formatter *money.Formatter) *Handler {
	return &Handler{service: service, formatter: formatter}
}

// GetDashboard godoc
// @Summary Totals of all instruments
// @Tags Dashboard
// @Produce json
// @Param month query string false "Budget month in YYYY-MM format, defaults to the current month"
// @Success 200 {object} DashboardDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/dashboard [get]
// @Security XUserId
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	log.Debug("Building dashboard")
	summary, err := h.service.Summary(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		switch {
		case errors.Is(err, user.ErrNoUser):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, budget.ErrInvalidBudgetCategory):
			rest.WriteError(w, http.StatusBadRequest, "Invalid month", err.Error())
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	rest.WriteJSON(w, http.StatusOK, DashboardDTO{
		Summary: summary,
		Formatted: FormattedDTO{
			TotalPrincipal:    h.formatter.Format(summary.FixedDeposits.TotalPrincipal),
			TotalInterest:     h.formatter.Format(summary.FixedDeposits.TotalInterest),
			TotalMaturity:     h.formatter.Format(summary.FixedDeposits.TotalMaturity),
			MonthlyEMIOutflow: h.formatter.Format(summary.EMIs.MonthlyOutflow),
			TotalBudgeted:     h.formatter.Format(summary.Budgets.TotalBudgeted),
			TotalSpent:        h.formatter.Format(summary.Budgets.TotalSpent),
			TotalSaved:        h.formatter.Format(summary.Savings.TotalSaved),
			TotalSavingsGoal:  h.formatter.Format(summary.Savings.TotalTarget),
		},
	})
}
