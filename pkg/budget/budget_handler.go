package budget

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/finboard/finboard/internal/rest"
	"github.com/finboard/finboard/pkg/money"
	"github.com/finboard/finboard/pkg/progress"
	"github.com/finboard/finboard/pkg/user"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type BudgetRequestDTO struct {
	CategoryName   string  `json:"categoryName"`
	BudgetedAmount float64 `json:"budgetedAmount"`
	MonthYear      string  `json:"monthYear"`
}

type SpentRequestDTO struct {
	SpentAmount float64 `json:"spentAmount"`
}

type BudgetDTO struct {
	Id             string                `json:"id"`
	CategoryName   string                `json:"categoryName"`
	BudgetedAmount float64               `json:"budgetedAmount"`
	SpentAmount    float64               `json:"spentAmount"`
	MonthYear      string                `json:"monthYear"`
	Usage          float64               `json:"usage"`
	Remaining      float64               `json:"remaining"`
	Status         progress.BudgetStatus `json:"status"`
	Formatted      FormattedDTO          `json:"formatted"`
}

type FormattedDTO struct {
	BudgetedAmount string `json:"budgetedAmount"`
	SpentAmount    string `json:"spentAmount"`
	Remaining      string `json:"remaining"`
}

type BudgetHandler struct {
	budgetService BudgetService
	formatter     *money.Formatter
}

func NewBudgetHandler(budgetService BudgetService, formatter *money.Formatter) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, formatter: formatter}
}

// GetAll godoc
// @Summary List budgets of a month
// @Tags Budget
// @Produce json
// @Param month query string false "Month in YYYY-MM format, defaults to the current month"
// @Success 200 {array} BudgetDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/budget [get]
// @Security XUserId
func (handler *BudgetHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	log.Debugf("Listing budgets of month %q", month)

	budgets, err := handler.budgetService.List(r.Context(), month)
	if err != nil {
		handler.writeError(w, err)
		return
	}
	dtos := make([]BudgetDTO, 0, len(budgets))
	for _, b := range budgets {
		dtos = append(dtos, handler.toDTO(b))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// Save godoc
// @Summary Create or replace the budget of a category and month
// @Tags Budget
// @Accept json
// @Produce json
// @Param budget body BudgetRequestDTO true "Budget"
// @Success 200 {object} BudgetDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/budget [put]
// @Security XUserId
func (handler *BudgetHandler) Save(w http.ResponseWriter, r *http.Request) {
	log.Debug("Saving budget")
	var dto BudgetRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	saved, err := handler.budgetService.Save(r.Context(), BudgetCategory{
		CategoryName:   Category(dto.CategoryName),
		BudgetedAmount: dto.BudgetedAmount,
		MonthYear:      dto.MonthYear,
	})
	if err != nil {
		handler.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, handler.toDTO(saved))
}

// UpdateSpent godoc
// @Summary Set the spent amount of a budget
// @Tags Budget
// @Accept json
// @Produce json
// @Param id path string true "Budget ID"
// @Param spent body SpentRequestDTO true "Spent amount"
// @Success 200 {object} BudgetDTO
// @Failure 404 {string} string "Not Found"
// @Router /api/budget/{id}/spent [put]
// @Security XUserId
func (handler *BudgetHandler) UpdateSpent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	var dto SpentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	updated, err := handler.budgetService.UpdateSpent(r.Context(), id, dto.SpentAmount)
	if err != nil {
		handler.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, handler.toDTO(updated))
}

// Delete godoc
// @Summary Delete a budget
// @Tags Budget
// @Param id path string true "Budget ID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Not Found"
// @Router /api/budget/{id} [delete]
// @Security XUserId
func (handler *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	deleted, err := handler.budgetService.Delete(r.Context(), id)
	if err != nil {
		handler.writeError(w, err)
		return
	}
	if !deleted {
		http.Error(w, ErrBudgetCategoryNotFound.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathId(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid budget id", err.Error())
		return uuid.Nil, false
	}
	return id, true
}

func (handler *BudgetHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNoUser):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrInvalidBudgetCategory):
		rest.WriteError(w, http.StatusBadRequest, "Invalid budget", err.Error())
	case errors.Is(err, ErrBudgetCategoryNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *BudgetHandler) toDTO(d Details) BudgetDTO {
	return BudgetDTO{
		Id:             d.Id.String(),
		CategoryName:   string(d.CategoryName),
		BudgetedAmount: d.BudgetedAmount,
		SpentAmount:    d.SpentAmount,
		MonthYear:      d.MonthYear,
		Usage:          d.Usage,
		Remaining:      d.Remaining,
		Status:         d.Status,
		Formatted: FormattedDTO{
			BudgetedAmount: handler.formatter.Format(d.BudgetedAmount),
			SpentAmount:    handler.formatter.Format(d.SpentAmount),
			Remaining:      handler.formatter.Format(d.Remaining),
		},
	}
}
