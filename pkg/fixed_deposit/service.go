package fixed_deposit

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
	// Preview computes what Create would store without persisting anything.
	Preview(ctx context.Context, fd FixedDeposit) (Details, error)
	Create(ctx context.Context, fd FixedDeposit) (Details, error)
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
	deposits, err := s.repo.List(ctx, userId)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	result := make([]Details, 0, len(deposits))
	for _, fd := range deposits {
		details, err := Derive(fd, now)
		if err != nil {
			// stored rows satisfy the table constraints, so this is corrupted data
			log.Errorf("skipping fixed deposit %s: %v", fd.Id, err)
			continue
		}
		if details.MaturityAmount != fd.MaturityAmount {
			log.Debugf("fixed deposit %s: stored maturity %v differs from recomputed %v", fd.Id, fd.MaturityAmount, details.MaturityAmount)
		}
		result = append(result, details)
	}
	return result, nil
}

func (s *ServiceImpl) Preview(ctx context.Context, fd FixedDeposit) (Details, error) {
	if _, err := user.CurrentId(ctx); err != nil {
		return Details{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return Derive(fd, s.clock.Now())
}

func (s *ServiceImpl) Create(ctx context.Context, fd FixedDeposit) (Details, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Details{}, fmt.Errorf("failed to get current user: %w", err)
	}
	projected, err := Project(fd)
	if err != nil {
		return Details{}, err
	}

	created, err := s.repo.Create(ctx, userId, projected)
	if err != nil {
		return Details{}, err
	}
	s.publish(ctx, event_bus.FixedDepositCreated, userId, created)

	stored, err := s.repo.Get(ctx, userId, created.Id)
	if err != nil {
		return Details{}, err
	}
	return Derive(stored, s.clock.Now())
}

func (s *ServiceImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	fd, err := s.repo.Get(ctx, userId, id)
	if err != nil {
		return false, err
	}
	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("fixed deposit not deleted, probably because it does not exist (%s) or the user (%d) is not the owner", id, userId)
		return false, nil
	}
	s.publish(ctx, event_bus.FixedDepositDeleted, userId, fd)
	return true, nil
}

// publish notifies subscribers after the change is committed. A failing
// subscriber is logged and does not undo the change.
func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, userId int, fd FixedDeposit) {
	if s.eventBus == nil {
		return
	}
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, eventType, event_bus.InstrumentChanged{
		UserId: userId,
		Id:     fd.Id,
		Amount: fd.Principal,
	}))
	if err != nil {
		log.Errorf("failed to publish %s event: %v", eventType, err)
	}
}
