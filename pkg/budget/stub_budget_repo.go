package budget

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

type StubBudgetRepo struct {
	data map[int]map[uuid.UUID]BudgetCategory
	now  time.Time
	// Err, when set, is returned by every call.
	Err error
}

func NewStubBudgetRepo() *StubBudgetRepo {
	return &StubBudgetRepo{
		data: map[int]map[uuid.UUID]BudgetCategory{},
		now:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *StubBudgetRepo) List(ctx context.Context, userId int, monthYear string) ([]BudgetCategory, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	budgets := make([]BudgetCategory, 0)
	for _, b := range s.data[userId] {
		if b.MonthYear == monthYear {
			budgets = append(budgets, b)
		}
	}
	sort.Slice(budgets, func(i, j int) bool { return budgets[i].CategoryName < budgets[j].CategoryName })
	return budgets, nil
}

func (s *StubBudgetRepo) Get(ctx context.Context, userId int, id uuid.UUID) (BudgetCategory, error) {
	if s.Err != nil {
		return BudgetCategory{}, s.Err
	}
	b, ok := s.data[userId][id]
	if !ok {
		return BudgetCategory{}, ErrBudgetCategoryNotFound
	}
	return b, nil
}

func (s *StubBudgetRepo) Upsert(ctx context.Context, userId int, budget BudgetCategory) (BudgetCategory, error) {
	if s.Err != nil {
		return BudgetCategory{}, s.Err
	}
	if s.data[userId] == nil {
		s.data[userId] = map[uuid.UUID]BudgetCategory{}
	}
	for id, existing := range s.data[userId] {
		if existing.CategoryName == budget.CategoryName && existing.MonthYear == budget.MonthYear {
			existing.BudgetedAmount = budget.BudgetedAmount
			existing.SpentAmount = budget.SpentAmount
			s.data[userId][id] = existing
			return existing, nil
		}
	}
	s.now = s.now.Add(time.Minute)
	budget.Id = uuid.New()
	budget.Created = s.now
	s.data[userId][budget.Id] = budget
	return budget, nil
}

func (s *StubBudgetRepo) UpdateSpent(ctx context.Context, userId int, id uuid.UUID, spent float64) (BudgetCategory, error) {
	if s.Err != nil {
		return BudgetCategory{}, s.Err
	}
	b, ok := s.data[userId][id]
	if !ok {
		return BudgetCategory{}, ErrBudgetCategoryNotFound
	}
	b.SpentAmount = spent
	s.data[userId][id] = b
	return b, nil
}

func (s *StubBudgetRepo) Delete(ctx context.Context, userId int, id uuid.UUID) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	if _, ok := s.data[userId][id]; !ok {
		return false, nil
	}
	delete(s.data[userId], id)
	return true, nil
}

func (s *StubBudgetRepo) Cleanup() {
	s.data = map[int]map[uuid.UUID]BudgetCategory{}
	s.Err = nil
}
