// Package maturity projects the value of a fixed-principal, fixed-rate deposit
// compounded monthly.
package maturity

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/finboard/finboard/internal/utils"
)

var ErrInvalidInput = errors.New("invalid maturity input")

type Projection struct {
	MonthlyRate    float64
	MaturityAmount float64
	MaturityDate   time.Time
}

// Validate reports whether the inputs are inside the calculator's domain.
func Validate(principal, annualRatePercent float64, termMonths int) error {
	if math.IsNaN(principal) || math.IsInf(principal, 0) || principal <= 0 {
		return fmt.Errorf("%w: principal must be positive, got %v", ErrInvalidInput, principal)
	}
	if math.IsNaN(annualRatePercent) || math.IsInf(annualRatePercent, 0) || annualRatePercent < 0 {
		return fmt.Errorf("%w: annual rate must not be negative, got %v", ErrInvalidInput, annualRatePercent)
	}
	if termMonths <= 0 {
		return fmt.Errorf("%w: term must be a positive number of months, got %d", ErrInvalidInput, termMonths)
	}
	return nil
}

// Amount returns principal * (1 + annualRatePercent/100/12)^termMonths.
// The same expression backs previews and persisted values so both agree bit for bit.
func Amount(principal, annualRatePercent float64, termMonths int) (float64, error) {
	if err := Validate(principal, annualRatePercent, termMonths); err != nil {
		return 0, err
	}
	return principal * math.Pow(1+monthlyRate(annualRatePercent), float64(termMonths)), nil
}

// Date returns start advanced by termMonths calendar months, clamped to the
// last day of a shorter target month.
func Date(start time.Time, termMonths int) (time.Time, error) {
	if termMonths <= 0 {
		return time.Time{}, fmt.Errorf("%w: term must be a positive number of months, got %d", ErrInvalidInput, termMonths)
	}
	return utils.AddMonths(utils.Truncate(start), termMonths), nil
}

func Calculate(principal, annualRatePercent float64, termMonths int, start time.Time) (Projection, error) {
	amount, err := Amount(principal, annualRatePercent, termMonths)
	if err != nil {
		return Projection{}, err
	}
	maturityDate, err := Date(start, termMonths)
	if err != nil {
		return Projection{}, err
	}
	return Projection{
		MonthlyRate:    monthlyRate(annualRatePercent),
		MaturityAmount: amount,
		MaturityDate:   maturityDate,
	}, nil
}

func monthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 100 / 12
}
