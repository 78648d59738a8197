package fixed_deposit

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/finboard/finboard/internal/rest"
	"github.com/finboard/finboard/internal/utils"
	"github.com/finboard/finboard/pkg/money"
	"github.com/finboard/finboard/pkg/user"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type FixedDepositRequestDTO struct {
	BankName   string  `json:"bankName"`
	Principal  float64 `json:"principal"`
	AnnualRate float64 `json:"annualRate"`
	TermMonths int     `json:"termMonths"`
	StartDate  string  `json:"startDate"`
}

type FixedDepositDTO struct {
	Id             string       `json:"id,omitempty"`
	BankName       string       `json:"bankName"`
	Principal      float64      `json:"principal"`
	AnnualRate     float64      `json:"annualRate"`
	TermMonths     int          `json:"termMonths"`
	StartDate      string       `json:"startDate"`
	MaturityDate   string       `json:"maturityDate"`
	MaturityAmount float64      `json:"maturityAmount"`
	InterestEarned float64      `json:"interestEarned"`
	DaysToMaturity int          `json:"daysToMaturity"`
	TermProgress   float64      `json:"termProgress"`
	Status         Status       `json:"status"`
	Formatted      FormattedDTO `json:"formatted"`
}

type FormattedDTO struct {
	Principal      string `json:"principal"`
	MaturityAmount string `json:"maturityAmount"`
	InterestEarned string `json:"interestEarned"`
}

type Handler struct {
	service   Service
	formatter *money.Formatter
}

func NewHandler(service Service, formatter *money.Formatter) *Handler {
	return &Handler{service: service, formatter: formatter}
}

// ListFixedDeposits godoc
// @Summary List fixed deposits
// @Description Newest first, with maturity recomputed for today
// @Tags FixedDeposit
// @Produce json
// @Success 200 {array} FixedDepositDTO
// @Router /api/fixeddeposit [get]
// @Security XUserId
func (h *Handler) ListFixedDeposits(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing fixed deposits")
	deposits, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	dtos := make([]FixedDepositDTO, 0, len(deposits))
	for _, d := range deposits {
		dtos = append(dtos, h.toDTO(d))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// PreviewFixedDeposit godoc
// @Summary Preview a fixed deposit
// @Description Computes maturity amount and date without saving
// @Tags FixedDeposit
// @Accept json
// @Produce json
// @Param deposit body FixedDepositRequestDTO true "Fixed deposit"
// @Success 200 {object} FixedDepositDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/fixeddeposit/preview [post]
// @Security XUserId
func (h *Handler) PreviewFixedDeposit(w http.ResponseWriter, r *http.Request) {
	fd, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	details, err := h.service.Preview(r.Context(), fd)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.toDTO(details))
}

// CreateFixedDeposit godoc
// @Summary Create a fixed deposit
// @Tags FixedDeposit
// @Accept json
// @Produce json
// @Param deposit body FixedDepositRequestDTO true "Fixed deposit"
// @Success 201 {object} FixedDepositDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/fixeddeposit [post]
// @Security XUserId
func (h *Handler) CreateFixedDeposit(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating fixed deposit")
	fd, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	details, err := h.service.Create(r.Context(), fd)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, h.toDTO(details))
}

// DeleteFixedDeposit godoc
// @Summary Delete a fixed deposit
// @Tags FixedDeposit
// @Param id path string true "Fixed deposit ID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Not Found"
// @Router /api/fixeddeposit/{id} [delete]
// @Security XUserId
func (h *Handler) DeleteFixedDeposit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid fixed deposit id", err.Error())
		return
	}
	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !deleted {
		http.Error(w, ErrFixedDepositNotFound.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (FixedDeposit, bool) {
	var dto FixedDepositRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return FixedDeposit{}, false
	}
	startDate, err := time.Parse(utils.DateFormat, dto.StartDate)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid startDate format", "'startDate' must be in YYYY-MM-DD format")
		return FixedDeposit{}, false
	}
	return FixedDeposit{
		BankName:   dto.BankName,
		Principal:  dto.Principal,
		AnnualRate: dto.AnnualRate,
		TermMonths: dto.TermMonths,
		StartDate:  startDate,
	}, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNoUser):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, ErrInvalidFixedDeposit):
		rest.WriteError(w, http.StatusBadRequest, "Invalid fixed deposit", err.Error())
	case errors.Is(err, ErrFixedDepositNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) toDTO(d Details) FixedDepositDTO {
	dto := FixedDepositDTO{
		BankName:       d.BankName,
		Principal:      d.Principal,
		AnnualRate:     d.AnnualRate,
		TermMonths:     d.TermMonths,
		StartDate:      d.StartDate.Format(utils.DateFormat),
		MaturityDate:   d.MaturityDate.Format(utils.DateFormat),
		MaturityAmount: d.MaturityAmount,
		InterestEarned: d.InterestEarned,
		DaysToMaturity: d.DaysToMaturity,
		TermProgress:   d.TermProgress,
		Status:         d.Status,
		Formatted: FormattedDTO{
			Principal:      h.formatter.Format(d.Principal),
			MaturityAmount: h.formatter.Format(d.MaturityAmount),
			InterestEarned: h.formatter.Format(d.InterestEarned),
		},
	}
	if d.Id != uuid.Nil {
		dto.Id = d.Id.String()
	}
	return dto
}
