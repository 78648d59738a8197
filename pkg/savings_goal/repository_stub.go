package savings_goal

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

type RepositoryStub struct {
	goals map[int]map[uuid.UUID]SavingsGoal
	now   time.Time
	// Err, when set, is returned by every call.
	Err error
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		goals: map[int]map[uuid.UUID]SavingsGoal{},
		now:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *RepositoryStub) List(ctx context.Context, userId int) ([]SavingsGoal, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	goals := make([]SavingsGoal, 0, len(s.goals[userId]))
	for _, g := range s.goals[userId] {
		goals = append(goals, g)
	}
	sort.Slice(goals, func(i, j int) bool { return goals[i].Created.After(goals[j].Created) })
	return goals, nil
}

func (s *RepositoryStub) Get(ctx context.Context, userId int, id uuid.UUID) (SavingsGoal, error) {
	if s.Err != nil {
		return SavingsGoal{}, s.Err
	}
	g, ok := s.goals[userId][id]
	if !ok {
		return SavingsGoal{}, ErrSavingsGoalNotFound
	}
	return g, nil
}

func (s *RepositoryStub) Create(ctx context.Context, userId int, goal SavingsGoal) (SavingsGoal, error) {
	if s.Err != nil {
		return SavingsGoal{}, s.Err
	}
	s.now = s.now.Add(time.Minute)
	goal.Id = uuid.New()
	goal.Created = s.now
	if s.goals[userId] == nil {
		s.goals[userId] = map[uuid.UUID]SavingsGoal{}
	}
	s.goals[userId][goal.Id] = goal
	return goal, nil
}

func (s *RepositoryStub) Update(ctx context.Context, userId int, goal SavingsGoal) (SavingsGoal, error) {
	if s.Err != nil {
		return SavingsGoal{}, s.Err
	}
	stored, ok := s.goals[userId][goal.Id]
	if !ok {
		return SavingsGoal{}, ErrSavingsGoalNotFound
	}
	goal.Created = stored.Created
	s.goals[userId][goal.Id] = goal
	return goal, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, userId int, id uuid.UUID) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	if _, ok := s.goals[userId][id]; !ok {
		return false, nil
	}
	delete(s.goals[userId], id)
	return true, nil
}

func (s *RepositoryStub) Cleanup() {
	s.goals = map[int]map[uuid.UUID]SavingsGoal{}
	s.Err = nil
}
