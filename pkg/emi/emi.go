package emi

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finboard/finboard/internal/utils"
	"github.com/finboard/finboard/pkg/schedule"
	"github.com/google/uuid"
)

var ErrEMIReminderNotFound = errors.New("emi reminder not found")
var ErrInvalidEMIReminder = errors.New("invalid emi reminder")

type Status string

const (
	Active Status = "active"
	Paid   Status = "paid"
)

// EMIReminder tracks one monthly loan installment. NextDueDate is the due date
// of the cycle being tracked; once Paid it is the date of the settled cycle.
type EMIReminder struct {
	Id          uuid.UUID
	LoanName    string
	BankName    string
	LoanAmount  float64
	EMIAmount   float64
	DueDay      int
	Status      Status
	NextDueDate time.Time
	Created     time.Time
}

type Details struct {
	EMIReminder
	Due schedule.Status
}

func Validate(e EMIReminder) error {
	if strings.TrimSpace(e.LoanName) == "" {
		return fmt.Errorf("%w: loan name is required", ErrInvalidEMIReminder)
	}
	if strings.TrimSpace(e.BankName) == "" {
		return fmt.Errorf("%w: bank name is required", ErrInvalidEMIReminder)
	}
	if e.LoanAmount <= 0 {
		return fmt.Errorf("%w: loan amount must be positive", ErrInvalidEMIReminder)
	}
	if e.EMIAmount <= 0 {
		return fmt.Errorf("%w: emi amount must be positive", ErrInvalidEMIReminder)
	}
	if err := schedule.ValidateDueDay(e.DueDay); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEMIReminder, err)
	}
	return nil
}

// Schedule validates e and sets its NextDueDate from the due day.
func Schedule(e EMIReminder, now time.Time) (EMIReminder, error) {
	if err := Validate(e); err != nil {
		return EMIReminder{}, err
	}
	next, err := schedule.NextDueDate(e.DueDay, now)
	if err != nil {
		return EMIReminder{}, fmt.Errorf("%w: %w", ErrInvalidEMIReminder, err)
	}
	e.NextDueDate = next
	return e, nil
}

// Effective applies the rollover rule to a stored reminder: a paid cycle whose
// due date is before today starts the next cycle as active. The second result
// reports whether a rollover happened.
func Effective(e EMIReminder, now time.Time) (EMIReminder, bool) {
	if e.Status != Paid || !utils.DateIn(e.NextDueDate, now.Location()).Before(utils.Truncate(now)) {
		return e, false
	}
	next, err := schedule.NextDueDate(e.DueDay, now)
	if err != nil {
		return e, false
	}
	e.Status = Active
	e.NextDueDate = next
	return e, true
}

// Derive returns the effective reminder with its live due status.
func Derive(e EMIReminder, now time.Time) Details {
	effective, _ := Effective(e, now)
	return Details{
		EMIReminder: effective,
		Due:         schedule.Evaluate(effective.NextDueDate, now, effective.Status == Paid),
	}
}
