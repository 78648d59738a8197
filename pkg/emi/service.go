package emi

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/finboard/finboard/internal/event_bus"
	"github.com/finboard/finboard/internal/utils"
	"github.com/finboard/finboard/pkg/user"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	List(ctx context.Context) ([]Details, error)
	Create(ctx context.Context, e EMIReminder) (Details, error)
	Update(ctx context.Context, e EMIReminder) (Details, error)
	// MarkPaid settles the current cycle. Marking a paid reminder again is a no-op.
	MarkPaid(ctx context.Context, id uuid.UUID) (Details, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	// RollOver persists the rollover of every settled cycle of every user and
	// returns the number of reminders that became active again.
	RollOver(ctx context.Context) (int, error)
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
	reminders, err := s.repo.List(ctx, userId)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	result := make([]Details, 0, len(reminders))
	for _, e := range reminders {
		result = append(result, Derive(e, now))
	}
	// a virtual rollover moves a reminder to a later cycle
	sortByDueDate(result)
	return result, nil
}

func (s *ServiceImpl) Create(ctx context.Context, e EMIReminder) (Details, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Details{}, fmt.Errorf("failed to get current user: %w", err)
	}
	now := s.clock.Now()
	scheduled, err := Schedule(e, now)
	if err != nil {
		return Details{}, err
	}
	created, err := s.repo.Create(ctx, userId, scheduled)
	if err != nil {
		return Details{}, err
	}
	s.publishChanged(ctx, event_bus.EMISaved, userId, created)
	return s.reload(ctx, userId, created.Id)
}

func (s *ServiceImpl) Update(ctx context.Context, e EMIReminder) (Details, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Details{}, fmt.Errorf("failed to get current user: %w", err)
	}
	scheduled, err := Schedule(e, s.clock.Now())
	if err != nil {
		return Details{}, err
	}
	updated, err := s.repo.Update(ctx, userId, scheduled)
	if err != nil {
		return Details{}, err
	}
	s.publishChanged(ctx, event_bus.EMISaved, userId, updated)
	return s.reload(ctx, userId, updated.Id)
}

func (s *ServiceImpl) MarkPaid(ctx context.Context, id uuid.UUID) (Details, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Details{}, fmt.Errorf("failed to get current user: %w", err)
	}
	stored, err := s.repo.Get(ctx, userId, id)
	if err != nil {
		return Details{}, err
	}
	now := s.clock.Now()
	current, _ := Effective(stored, now)
	if current.Status == Paid {
		log.Debugf("emi reminder %s is already paid", id)
		return Derive(stored, now), nil
	}

	paid, err := s.repo.SetStatus(ctx, userId, id, Paid, current.NextDueDate)
	if err != nil {
		return Details{}, err
	}
	if s.eventBus != nil {
		err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.EMIPaid, event_bus.EMIPaidEvent{
			UserId:     userId,
			Id:         paid.Id,
			EMIAmount:  paid.EMIAmount,
			SettledDue: paid.NextDueDate,
		}))
		if err != nil {
			log.Errorf("failed to publish %s event: %v", event_bus.EMIPaid, err)
		}
	}
	return s.reload(ctx, userId, id)
}

func (s *ServiceImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	e, err := s.repo.Get(ctx, userId, id)
	if err != nil {
		return false, err
	}
	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("emi reminder not deleted, probably because it does not exist (%s) or the user (%d) is not the owner", id, userId)
		return false, nil
	}
	s.publishChanged(ctx, event_bus.EMIDeleted, userId, e)
	return true, nil
}

func (s *ServiceImpl) RollOver(ctx context.Context) (int, error) {
	now := s.clock.Now()
	settled, err := s.repo.ListPaidBefore(ctx, utils.Truncate(now))
	if err != nil {
		return 0, err
	}
	var errs []error
	count := 0
	for _, o := range settled {
		next, rolled := Effective(o.EMIReminder, now)
		if !rolled {
			continue
		}
		updated, err := s.repo.SetStatus(ctx, o.UserId, o.Id, next.Status, next.NextDueDate)
		if err != nil {
			errs = append(errs, fmt.Errorf("reminder %s: %w", o.Id, err))
			continue
		}
		count++
		s.publishChanged(ctx, event_bus.EMIRolledOver, o.UserId, updated)
	}
	return count, errors.Join(errs...)
}

func (s *ServiceImpl) reload(ctx context.Context, userId int, id uuid.UUID) (Details, error) {
	stored, err := s.repo.Get(ctx, userId, id)
	if err != nil {
		return Details{}, err
	}
	return Derive(stored, s.clock.Now()), nil
}

func (s *ServiceImpl) publishChanged(ctx context.Context, eventType event_bus.EventType, userId int, e EMIReminder) {
	if s.eventBus == nil {
		return
	}
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, eventType, event_bus.InstrumentChanged{
		UserId: userId,
		Id:     e.Id,
		Amount: e.EMIAmount,
	}))
	if err != nil {
		log.Errorf("failed to publish %s event: %v", eventType, err)
	}
}

func sortByDueDate(reminders []Details) {
	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].NextDueDate.Before(reminders[j].NextDueDate)
	})
}
