package fixed_deposit

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

type RepositoryStub struct {
	deposits map[int]map[uuid.UUID]FixedDeposit
	now      time.Time
	// Err, when set, is returned by every call.
	Err error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		deposits: map[int]map[uuid.UUID]FixedDeposit{},
		now:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *RepositoryStub) List(ctx context.Context, userId int) ([]FixedDeposit, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	deposits := make([]FixedDeposit, 0, len(s.deposits[userId]))
	for _, fd := range s.deposits[userId] {
		deposits = append(deposits, fd)
	}
	sort.Slice(deposits, func(i, j int) bool { return deposits[i].Created.After(deposits[j].Created) })
	return deposits, nil
}

func (s *RepositoryStub) Get(ctx context.Context, userId int, id uuid.UUID) (FixedDeposit, error) {
	if s.Err != nil {
		return FixedDeposit{}, s.Err
	}
	fd, ok := s.deposits[userId][id]
	if !ok {
		return FixedDeposit{}, ErrFixedDepositNotFound
	}
	return fd, nil
}

func (s *RepositoryStub) Create(ctx context.Context, userId int, fd FixedDeposit) (FixedDeposit, error) {
	if s.Err != nil {
		return FixedDeposit{}, s.Err
	}
	if fd.Principal <= 0 {
		return FixedDeposit{}, errors.New("violates check constraint fixed_deposit_principal_check")
	}
	// every record gets a distinct, increasing creation time
	s.now = s.now.Add(time.Minute)
	fd.Id = uuid.New()
	fd.Created = s.now
	if s.deposits[userId] == nil {
		s.deposits[userId] = map[uuid.UUID]FixedDeposit{}
	}
	s.deposits[userId][fd.Id] = fd
	return fd, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, userId int, id uuid.UUID) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	if _, ok := s.deposits[userId][id]; !ok {
		return false, nil
	}
	delete(s.deposits[userId], id)
	return true, nil
}

func (s *RepositoryStub) Cleanup() {
	s.deposits = map[int]map[uuid.UUID]FixedDeposit{}
	s.Err = nil
}
