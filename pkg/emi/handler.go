package emi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/finboard/finboard/internal/rest"
	"github.com/finboard/finboard/internal/utils"
	"github.com/finboard/finboard/pkg/money"
	"github.com/finboard/finboard/pkg/schedule"
	"github.com/finboard/finboard/pkg/user"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type EMIRequestDTO struct {
	LoanName   string  `json:"loanName"`
	BankName   string  `json:"bankName"`
	LoanAmount float64 `json:"loanAmount"`
	EMIAmount  float64 `json:"emiAmount"`
	DueDay     int     `json:"dueDay"`
}

type EMIDTO struct {
	Id           string        `json:"id"`
	LoanName     string        `json:"loanName"`
	BankName     string        `json:"bankName"`
	LoanAmount   float64       `json:"loanAmount"`
	EMIAmount    float64       `json:"emiAmount"`
	DueDay       int           `json:"dueDay"`
	Status       Status        `json:"status"`
	NextDueDate  string        `json:"nextDueDate"`
	DaysUntilDue int           `json:"daysUntilDue"`
	Band         schedule.Band `json:"band"`
	StatusLabel  string        `json:"statusLabel"`
	Formatted    FormattedDTO  `json:"formatted"`
}

type FormattedDTO struct {
	LoanAmount string `json:"loanAmount"`
	EMIAmount  string `json:"emiAmount"`
}

type Handler struct {
	service   Service
	formatter *money.Formatter
}

func NewHandler(service Service, formatter *money.Formatter) *Handler {
	return &Handler{service: service, formatter: formatter}
}

// ListReminders godoc
// @Summary List EMI reminders
// @Description Ordered by next due date, with live due status
// @Tags EMI
// @Produce json
// @Success 200 {array} EMIDTO
// @Router /api/emi [get]
// @Security XUserId
func (h *Handler) ListReminders(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing EMI reminders")
	reminders, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	dtos := make([]EMIDTO, 0, len(reminders))
	for _, d := range reminders {
		dtos = append(dtos, h.toDTO(d))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// CreateReminder godoc
// @Summary Create an EMI reminder
// @Tags EMI
// @Accept json
// @Produce json
// @Param reminder body EMIRequestDTO true "EMI reminder"
// @Success 201 {object} EMIDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/emi [post]
// @Security XUserId
func (h *Handler) CreateReminder(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating EMI reminder")
	e, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	details, err := h.service.Create(r.Context(), e)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, h.toDTO(details))
}

// UpdateReminder godoc
// @Summary Update an EMI reminder
// @Description Recomputes the next due date from the due day
// @Tags EMI
// @Accept json
// @Produce json
// @Param id path string true "EMI reminder ID"
// @Param reminder body EMIRequestDTO true "EMI reminder"
// @Success 200 {object} EMIDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {string} string "Not Found"
// @Router /api/emi/{id} [put]
// @Security XUserId
func (h *Handler) UpdateReminder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	e, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	e.Id = id
	details, err := h.service.Update(r.Context(), e)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.toDTO(details))
}

// MarkPaid godoc
// @Summary Mark the current EMI cycle as paid
// @Tags EMI
// @Produce json
// @Param id path string true "EMI reminder ID"
// @Success 200 {object} EMIDTO
// @Failure 404 {string} string "Not Found"
// @Router /api/emi/{id}/paid [post]
// @Security XUserId
func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(w, r)
	if !ok {
		return
	}
	details, err := h.service.MarkPaid(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.toDTO(details))
}

// DeleteReminder godoc
// @Summary Delete an EMI reminder
// @Tags EMI
// @Param id path string true "EMI reminder ID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Not Found"
// @Router /api/emi/{id} [delete]
// @Security XUserId
func (h *Handler) DeleteReminder(w http.ResponseWriter, r *http.Request) {
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
		http.Error(w, ErrEMIReminderNotFound.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathId(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid EMI reminder id", err.Error())
		return uuid.Nil, false
	}
	return id, true
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (EMIReminder, bool) {
	var dto EMIRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return EMIReminder{}, false
	}
	return EMIReminder{
		LoanName:   dto.LoanName,
		BankName:   dto.BankName,
		LoanAmount: dto.LoanAmount,
		EMIAmount:  dto.EMIAmount,
		DueDay:     dto.DueDay,
	}, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNoUser):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrInvalidEMIReminder):
		rest.WriteError(w, http.StatusBadRequest, "Invalid EMI reminder", err.Error())
	case errors.Is(err, ErrEMIReminderNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) toDTO(d Details) EMIDTO {
	return EMIDTO{
		Id:           d.Id.String(),
		LoanName:     d.LoanName,
		BankName:     d.BankName,
		LoanAmount:   d.LoanAmount,
		EMIAmount:    d.EMIAmount,
		DueDay:       d.DueDay,
		Status:       d.Status,
		NextDueDate:  d.NextDueDate.Format(utils.DateFormat),
		DaysUntilDue: d.Due.DaysUntilDue,
		Band:         d.Due.Band,
		StatusLabel:  d.Due.Label,
		Formatted: FormattedDTO{
			LoanAmount: h.formatter.Format(d.LoanAmount),
			EMIAmount:  h.formatter.Format(d.EMIAmount),
		},
	}
}
