// Package schedule computes monthly recurring due dates and classifies how
// close an obligation is to being due.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/finboard/finboard/internal/utils"
)

const (
	MinDueDay = 1
	// MaxDueDay keeps every month able to hold the due day.
	MaxDueDay = 28
	// NearTermDays is the width of the "due soon" warning band.
	NearTermDays = 3
)

var ErrInvalidDueDay = errors.New("invalid due day")

type Band string

const (
	BandPaid    Band = "paid"
	BandOverdue Band = "overdue"
	BandToday   Band = "today"
	BandSoon    Band = "soon"
	BandNormal  Band = "normal"
)

type Status struct {
	DaysUntilDue int
	Band         Band
	Label        string
}

func ValidateDueDay(dueDay int) error {
	if dueDay < MinDueDay || dueDay > MaxDueDay {
		return fmt.Errorf("%w: %d is outside %d-%d", ErrInvalidDueDay, dueDay, MinDueDay, MaxDueDay)
	}
	return nil
}

// NextDueDate returns the dueDay of now's month, or of the following month when
// that date is already behind now. The comparison ignores time of day.
func NextDueDate(dueDay int, now time.Time) (time.Time, error) {
	if err := ValidateDueDay(dueDay); err != nil {
		return time.Time{}, err
	}
	today := utils.Truncate(now)
	candidate := time.Date(today.Year(), today.Month(), dueDay, 0, 0, 0, 0, now.Location())
	if candidate.Before(today) {
		candidate = utils.AddMonths(candidate, 1)
	}
	return candidate, nil
}

// DaysUntil returns ceil((due - now) in days); negative once due has passed.
// due is compared as a calendar date in now's zone.
func DaysUntil(due, now time.Time) int {
	return utils.DaysUntilDate(due, now)
}

// Classify maps the days left until a due date and the stored paid flag to a
// display status.
func Classify(daysUntilDue int, paid bool) Status {
	switch {
	case paid:
		return Status{DaysUntilDue: daysUntilDue, Band: BandPaid, Label: "Paid"}
	case daysUntilDue < 0:
		return Status{DaysUntilDue: daysUntilDue, Band: BandOverdue, Label: "Overdue"}
	case daysUntilDue == 0:
		return Status{DaysUntilDue: daysUntilDue, Band: BandToday, Label: "Due Today"}
	case daysUntilDue <= NearTermDays:
		return Status{DaysUntilDue: daysUntilDue, Band: BandSoon, Label: dueIn(daysUntilDue)}
	default:
		return Status{DaysUntilDue: daysUntilDue, Band: BandNormal, Label: dueIn(daysUntilDue)}
	}
}

// Evaluate derives the live status of a stored due date.
func Evaluate(nextDueDate time.Time, now time.Time, paid bool) Status {
	return Classify(DaysUntil(nextDueDate, now), paid)
}

func dueIn(days int) string {
	return fmt.Sprintf("Due in %d days", days)
}
