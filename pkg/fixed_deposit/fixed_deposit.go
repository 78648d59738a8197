package fixed_deposit

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/finboard/finboard/internal/utils"
	"github.com/finboard/finboard/pkg/maturity"
	"github.com/google/uuid"
)

var ErrFixedDepositNotFound = errors.New("fixed deposit not found")
var ErrInvalidFixedDeposit = errors.New("invalid fixed deposit")

type Status string

const (
	Active  Status = "active"
	Matured Status = "matured"
)

// FixedDeposit is immutable once created. MaturityDate and MaturityAmount are
// the projection stored at creation time.
type FixedDeposit struct {
	Id             uuid.UUID
	BankName       string
	Principal      float64
	AnnualRate     float64
	TermMonths     int
	StartDate      time.Time
	MaturityDate   time.Time
	MaturityAmount float64
	Created        time.Time
}

// Details is a deposit with every derived field recomputed for a given instant.
type Details struct {
	FixedDeposit
	InterestEarned float64
	DaysToMaturity int
	// TermProgress is the elapsed share of the term, 0-100.
	TermProgress float64
	Status       Status
}

// Validate checks the user supplied fields of a deposit.
func Validate(fd FixedDeposit) error {
	if strings.TrimSpace(fd.BankName) == "" {
		return fmt.Errorf("%w: bank name is required", ErrInvalidFixedDeposit)
	}
	if fd.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", ErrInvalidFixedDeposit)
	}
	if err := maturity.Validate(fd.Principal, fd.AnnualRate, fd.TermMonths); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFixedDeposit, err)
	}
	return nil
}

// Project fills in MaturityDate and MaturityAmount from the canonical fields.
func Project(fd FixedDeposit) (FixedDeposit, error) {
	if err := Validate(fd); err != nil {
		return FixedDeposit{}, err
	}
	p, err := maturity.Calculate(fd.Principal, fd.AnnualRate, fd.TermMonths, fd.StartDate)
	if err != nil {
		return FixedDeposit{}, fmt.Errorf("%w: %w", ErrInvalidFixedDeposit, err)
	}
	fd.StartDate = utils.Truncate(fd.StartDate)
	fd.MaturityDate = p.MaturityDate
	fd.MaturityAmount = p.MaturityAmount
	return fd, nil
}

// Derive recomputes the projection of a stored deposit instead of trusting
// the cached columns, then adds the time dependent fields.
func Derive(fd FixedDeposit, now time.Time) (Details, error) {
	projected, err := Project(fd)
	if err != nil {
		return Details{}, err
	}
	projected.Id = fd.Id
	projected.Created = fd.Created

	start := utils.DateIn(projected.StartDate, now.Location())
	end := utils.DateIn(projected.MaturityDate, now.Location())
	days := utils.CeilDays(now, end)
	status := Active
	if days <= 0 {
		status = Matured
	}
	return Details{
		FixedDeposit:   projected,
		InterestEarned: projected.MaturityAmount - projected.Principal,
		DaysToMaturity: days,
		TermProgress:   termProgress(start, end, now),
		Status:         status,
	}, nil
}

func termProgress(start, end, now time.Time) float64 {
	total := end.Sub(start)
	if total <= 0 {
		return 100
	}
	elapsed := float64(now.Sub(start)) / float64(total) * 100
	return math.Max(0, math.Min(elapsed, 100))
}
