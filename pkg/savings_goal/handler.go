package savings_goal

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/finboard/finboard/internal/rest"
	"github.com/finboard/finboard/internal/utils"
	"github.com/finboard/finboard/pkg/money"
	"github.com/finboard/finboard/pkg/progress"
	"github.com/finboard/finboard/pkg/user"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type SavingsGoalRequestDTO struct {
	Title         string  `json:"title"`
	Category      string  `json:"category"`
	TargetAmount  float64 `json:"targetAmount"`
	CurrentAmount float64 `json:"currentAmount"`
	TargetDate    string  `json:"targetDate"`
}

type SavingsGoalDTO struct {
	Id            string              `json:"id"`
	Title         string              `json:"title"`
	Category      string              `json:"category"`
	TargetAmount  float64             `json:"targetAmount"`
	CurrentAmount float64             `json:"currentAmount"`
	TargetDate    string              `json:"targetDate"`
	Progress      float64             `json:"progress"`
	Remaining     float64             `json:"remaining"`
	Status        progress.GoalStatus `json:"status"`
	DaysLeft      int                 `json:"daysLeft"`
	Urgent        bool                `json:"urgent"`
	Overdue       bool                `json:"overdue"`
	Formatted     FormattedDTO        `json:"formatted"`
}

type FormattedDTO struct {
	TargetAmount  string `json:"targetAmount"`
	CurrentAmount string `json:"currentAmount"`
	Remaining     string `json:"remaining"`
}

type Handler struct {
	service   Service
	formatter *money.Formatter
}

func NewHandler(service Service, formatter *money.Formatter) *Handler {
	return &Handler{service: service, formatter: formatter}
}

// ListGoals godoc
// @Summary List savings goals
// @Description Newest first, with progress capped at 100%
// @Tags Savings
// @Produce json
// @Success 200 {array} SavingsGoalDTO
// @Router /api/savings [get]
// @Security XUserId
func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing savings goals")
	goals, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	dtos := make([]SavingsGoalDTO, 0, len(goals))
	for _, g := range goals {
		dtos = append(dtos, h.toDTO(g))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// CreateGoal godoc
// @Summary Create a savings goal
// @Tags Savings
// @Accept json
// @Produce json
// @Param goal body SavingsGoalRequestDTO true "Savings goal"
// @Success 201 {object} SavingsGoalDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/savings [post]
// @Security XUserId
func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	goal, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	details, err := h.service.Create(r.Context(), goal)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, h.toDTO(details))
}

// UpdateGoal godoc
// @Summary Update a savings goal
// @Tags Savings
// @Accept json
// @Produce json
// @Param id path string true "Savings goal ID"
// @Param goal body SavingsGoalRequestDTO true "Savings goal"
// @Success 200 {object} SavingsGoalDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {string} string "Not Found"
// @Router /api/savings/{id} [put]
// @Security XUserId
func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	goal, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	goal.Id = id
	details, err := h.service.Update(r.Context(), goal)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.toDTO(details))
}

// DeleteGoal godoc
// @Summary Delete a savings goal
// @Tags Savings
// @Param id path string true "Savings goal ID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Not Found"
// @Router /api/savings/{id} [delete]
// @Security XUserId
func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !deleted {
		http.Error(w, ErrSavingsGoalNotFound.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathId(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid savings goal id", err.Error())
		return uuid.Nil, false
	}
	return id, true
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (SavingsGoal, bool) {
	var dto SavingsGoalRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return SavingsGoal{}, false
	}
	targetDate, err := time.Parse(utils.DateFormat, dto.TargetDate)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid targetDate format", "'targetDate' must be in YYYY-MM-DD format")
		return SavingsGoal{}, false
	}
	return SavingsGoal{
		Title:         dto.Title,
		Category:      Category(dto.Category),
		TargetAmount:  dto.TargetAmount,
		CurrentAmount: dto.CurrentAmount,
		TargetDate:    targetDate,
	}, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNoUser):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrInvalidSavingsGoal):
		rest.WriteError(w, http.StatusBadRequest, "Invalid savings goal", err.Error())
	case errors.Is(err, ErrSavingsGoalNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) toDTO(d Details) SavingsGoalDTO {
	return SavingsGoalDTO{
		Id:            d.Id.String(),
		Title:         d.Title,
		Category:      string(d.Category),
		TargetAmount:  d.TargetAmount,
		CurrentAmount: d.CurrentAmount,
		TargetDate:    d.TargetDate.Format(utils.DateFormat),
		Progress:      d.Progress,
		Remaining:     d.Remaining,
		Status:        d.Status,
		DaysLeft:      d.DaysLeft,
		Urgent:        d.Urgent,
		Overdue:       d.Overdue,
		Formatted: FormattedDTO{
			TargetAmount:  h.formatter.Format(d.TargetAmount),
			CurrentAmount: h.formatter.Format(d.CurrentAmount),
			Remaining:     h.formatter.Format(d.Remaining),
		},
	}
}
