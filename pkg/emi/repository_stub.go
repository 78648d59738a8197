package emi

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

type RepositoryStub struct {
	reminders map[int]map[uuid.UUID]EMIReminder
	now       time.Time
	// Err, when set, is returned by every call.
	Err error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		reminders: map[int]map[uuid.UUID]EMIReminder{},
		now:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *RepositoryStub) List(ctx context.Context, userId int) ([]EMIReminder, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	reminders := make([]EMIReminder, 0, len(s.reminders[userId]))
	for _, e := range s.reminders[userId] {
		reminders = append(reminders, e)
	}
	sort.Slice(reminders, func(i, j int) bool {
		if !reminders[i].NextDueDate.Equal(reminders[j].NextDueDate) {
			return reminders[i].NextDueDate.Before(reminders[j].NextDueDate)
		}
		return reminders[i].Created.Before(reminders[j].Created)
	})
	return reminders, nil
}

func (s *RepositoryStub) Get(ctx context.Context, userId int, id uuid.UUID) (EMIReminder, error) {
	if s.Err != nil {
		return EMIReminder{}, s.Err
	}
	e, ok := s.reminders[userId][id]
	if !ok {
		return EMIReminder{}, ErrEMIReminderNotFound
	}
	return e, nil
}

func (s *RepositoryStub) Create(ctx context.Context, userId int, e EMIReminder) (EMIReminder, error) {
	if s.Err != nil {
		return EMIReminder{}, s.Err
	}
	s.now = s.now.Add(time.Minute)
	e.Id = uuid.New()
	e.Status = Active
	e.Created = s.now
	if s.reminders[userId] == nil {
		s.reminders[userId] = map[uuid.UUID]EMIReminder{}
	}
	s.reminders[userId][e.Id] = e
	return e, nil
}

func (s *RepositoryStub) Update(ctx context.Context, userId int, e EMIReminder) (EMIReminder, error) {
	if s.Err != nil {
		return EMIReminder{}, s.Err
	}
	stored, ok := s.reminders[userId][e.Id]
	if !ok {
		return EMIReminder{}, ErrEMIReminderNotFound
	}
	stored.LoanName = e.LoanName
	stored.BankName = e.BankName
	stored.LoanAmount = e.LoanAmount
	stored.EMIAmount = e.EMIAmount
	stored.DueDay = e.DueDay
	stored.NextDueDate = e.NextDueDate
	s.reminders[userId][e.Id] = stored
	return stored, nil
}

func (s *RepositoryStub) SetStatus(ctx context.Context, userId int, id uuid.UUID, status Status, nextDueDate time.Time) (EMIReminder, error) {
	if s.Err != nil {
		return EMIReminder{}, s.Err
	}
	stored, ok := s.reminders[userId][id]
	if !ok {
		return EMIReminder{}, ErrEMIReminderNotFound
	}
	stored.Status = status
	stored.NextDueDate = nextDueDate
	s.reminders[userId][id] = stored
	return stored, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, userId int, id uuid.UUID) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	if _, ok := s.reminders[userId][id]; !ok {
		return false, nil
	}
	delete(s.reminders[userId], id)
	return true, nil
}

func (s *RepositoryStub) ListPaidBefore(ctx context.Context, day time.Time) ([]OwnedReminder, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	result := make([]OwnedReminder, 0)
	for userId, reminders := range s.reminders {
		for _, e := range reminders {
			if e.Status == Paid && e.NextDueDate.Before(day) {
				result = append(result, OwnedReminder{UserId: userId, EMIReminder: e})
			}
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].UserId != result[j].UserId {
			return result[i].UserId < result[j].UserId
		}
		return result[i].NextDueDate.Before(result[j].NextDueDate)
	})
	return result, nil
}

func (s *RepositoryStub) Cleanup() {
	s.reminders = map[int]map[uuid.UUID]EMIReminder{}
	s.Err = nil
}
