package savings_goal

import (
	"context"
	"fmt"

	"github.com/finboard/finboard/internal/event_bus"
	"github.com/finboard/finboard/internal/utils"
	"github.com/finboard/finboard/pkg/user"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	List(ctx context.Context) ([]Details, error)
	Create(ctx context.Context, goal SavingsGoal) (Details, error)
	Update(ctx context.Context, goal SavingsGoal) (Details, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
	clock    utils.Clock
}

func NewService(repo Repository, eventBus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus, clock: clock}
}

func (s *ServiceImpl) List(ctx context.Context) ([]Details, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	goals, err := s.repo.List(ctx, userId)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	result := make([]Details, 0, len(goals))
	for _, g := range goals {
		details, err := Derive(g, now)
		if err != nil {
			log.Errorf("skipping savings goal %s: %v", g.Id, err)
			continue
		}
		result = append(result, details)
	}
	return result, nil
}

func (s *ServiceImpl) Create(ctx context.Context, goal SavingsGoal) (Details, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Details{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := Validate(goal); err != nil {
		return Details{}, err
	}
	goal.TargetDate = utils.Truncate(goal.TargetDate)

	created, err := s.repo.Create(ctx, userId, goal)
	if err != nil {
		return Details{}, err
	}
	s.publish(ctx, event_bus.SavingsGoalSaved, userId, created)
	return s.reload(ctx, userId, created.Id)
}

func (s *ServiceImpl) Update(ctx context.Context, goal SavingsGoal) (Details, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Details{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := Validate(goal); err != nil {
		return Details{}, err
	}
	goal.TargetDate = utils.Truncate(goal.TargetDate)

	updated, err := s.repo.Update(ctx, userId, goal)
	if err != nil {
		return Details{}, err
	}
	s.publish(ctx, event_bus.SavingsGoalSaved, userId, updated)
	return s.reload(ctx, userId, updated.Id)
}

func (s *ServiceImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	goal, err := s.repo.Get(ctx, userId, id)
	if err != nil {
		return false, err
	}
	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("savings goal not deleted, probably because it does not exist (%s) or the user (%d) is not the owner", id, userId)
		return false, nil
	}
	s.publish(ctx, event_bus.SavingsGoalDeleted, userId, goal)
	return true, nil
}

func (s *ServiceImpl) reload(ctx context.Context, userId int, id uuid.UUID) (Details, error) {
	stored, err := s.repo.Get(ctx, userId, id)
	if err != nil {
		return Details{}, err
	}
	return Derive(stored, s.clock.Now())
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, userId int, goal SavingsGoal) {
	if s.eventBus == nil {
		return
	}
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, eventType, event_bus.InstrumentChanged{
		UserId: userId,
		Id:     goal.Id,
		Amount: goal.CurrentAmount,
	}))
	if err != nil {
		log.Errorf("failed to publish %s event: %v", eventType, err)
	}
}
