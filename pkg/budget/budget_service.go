package budget

import (
	"context"
	"fmt"

	"github.com/finboard/finboard/internal/event_bus"
	"github.com/finboard/finboard/internal/utils"
	"github.com/finboard/finboard/pkg/user"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type BudgetService interface {
	// List returns the budgets of monthYear, or of the current month when empty.
	List(ctx context.Context, monthYear string) ([]Details, error)
	Save(ctx context.Context, budget BudgetCategory) (Details, error)
	UpdateSpent(ctx context.Context, id uuid.UUID, spent float64) (Details, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type BudgetServiceImpl struct {
	repo     BudgetRepo
	eventBus *event_bus.EventBus
	clock    utils.Clock
}

func NewBudgetServiceImpl(repo BudgetRepo, eventBus *event_bus.EventBus, clock utils.Clock) *BudgetServiceImpl {
	return &BudgetServiceImpl{repo: repo, eventBus: eventBus, clock: clock}
}

func (s *BudgetServiceImpl) List(ctx context.Context, monthYear string) ([]Details, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if monthYear == "" {
		monthYear = utils.CurrentMonth(s.clock)
	} else if _, err := utils.ParseMonth(monthYear); err != nil {
		return nil, fmt.Errorf("%w: month must be in YYYY-MM format", ErrInvalidBudgetCategory)
	}

	budgets, err := s.repo.List(ctx, userId, monthYear)
	if err != nil {
		return nil, err
	}
	result := make([]Details, 0, len(budgets))
	for _, b := range budgets {
		details, err := Derive(b)
		if err != nil {
			log.Errorf("skipping budget %s: %v", b.Id, err)
			continue
		}
		result = append(result, details)
	}
	return result, nil
}

func (s *BudgetServiceImpl) Save(ctx context.Context, budget BudgetCategory) (Details, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Details{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if budget.MonthYear == "" {
		budget.MonthYear = utils.CurrentMonth(s.clock)
	}
	if err := Validate(budget); err != nil {
		return Details{}, err
	}
	// a save starts the category over
	budget.SpentAmount = 0

	saved, err := s.repo.Upsert(ctx, userId, budget)
	if err != nil {
		return Details{}, err
	}
	s.publish(ctx, event_bus.BudgetSaved, userId, saved.Id, saved.BudgetedAmount)
	return s.reload(ctx, userId, saved.Id)
}

func (s *BudgetServiceImpl) UpdateSpent(ctx context.Context, id uuid.UUID, spent float64) (Details, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Details{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validateAmount("spent amount", spent); err != nil {
		return Details{}, err
	}

	updated, err := s.repo.UpdateSpent(ctx, userId, id, spent)
	if err != nil {
		return Details{}, err
	}
	s.publish(ctx, event_bus.BudgetSpentUpdated, userId, updated.Id, updated.SpentAmount)
	return s.reload(ctx, userId, updated.Id)
}

func (s *BudgetServiceImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("budget not deleted, probably because it does not exist (%s) or the user (%d) is not the owner", id, userId)
		return false, nil
	}
	s.publish(ctx, event_bus.BudgetDeleted, userId, id, 0)
	return true, nil
}

func (s *BudgetServiceImpl) reload(ctx context.Context, userId int, id uuid.UUID) (Details, error) {
	stored, err := s.repo.Get(ctx, userId, id)
	if err != nil {
		return Details{}, err
	}
	return Derive(stored)
}

func (s *BudgetServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, userId int, id uuid.UUID, amount float64) {
	if s.eventBus == nil {
		return
	}
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, eventType, event_bus.InstrumentChanged{
		UserId: userId,
		Id:     id,
		Amount: amount,
	}))
	if err != nil {
		log.Errorf("failed to publish %s event: %v", eventType, err)
	}
}
