package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type BudgetRepo interface {
	// List returns the budgets of one month ordered by category name.
	List(ctx context.Context, userId int, monthYear string) ([]BudgetCategory, error)
	Get(ctx context.Context, userId int, id uuid.UUID) (BudgetCategory, error)
	// Upsert inserts the budget or, when the user already has one for the same
	// category and month, replaces its budgeted amount. The spent amount of an
	// existing budget is kept.
	Upsert(ctx context.Context, userId int, budget BudgetCategory) (BudgetCategory, error)
	// UpdateSpent overwrites the spent amount without any concurrency check.
	UpdateSpent(ctx context.Context, userId int, id uuid.UUID, spent float64) (BudgetCategory, error)
	Delete(ctx context.Context, userId int, id uuid.UUID) (bool, error)
}

type BudgetRepoImpl struct {
	db *pgxpool.Pool
}

func NewBudgetRepo(db *pgxpool.Pool) *BudgetRepoImpl {
	return &BudgetRepoImpl{db: db}
}

const budgetColumns = `id, category_name, budgeted_amount, spent_amount, month_year, created`

func (br *BudgetRepoImpl) List(ctx context.Context, userId int, monthYear string) ([]BudgetCategory, error) {
	query := `SELECT ` + budgetColumns + ` FROM budget_category
			  WHERE user_id = $1 AND month_year = $2
			  ORDER BY category_name`
	rows, err := br.db.Query(ctx, query, userId, monthYear)
	if err != nil {
		err := fmt.Errorf("could not query budgets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	budgets := make([]BudgetCategory, 0)
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return budgets, nil
}

func (br *BudgetRepoImpl) Get(ctx context.Context, userId int, id uuid.UUID) (BudgetCategory, error) {
	query := `SELECT ` + budgetColumns + ` FROM budget_category WHERE user_id = $1 AND id = $2`
	return br.queryOne(ctx, "could not get budget", query, userId, id)
}

func (br *BudgetRepoImpl) Upsert(ctx context.Context, userId int, budget BudgetCategory) (BudgetCategory, error) {
	query := `INSERT INTO budget_category (
					id,
					user_id,
					category_name,
					budgeted_amount,
					spent_amount,
					month_year
				) VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT ON CONSTRAINT budget_category_user_category_month_key
				DO UPDATE SET budgeted_amount = EXCLUDED.budgeted_amount,
							  spent_amount = EXCLUDED.spent_amount
				RETURNING ` + budgetColumns

	return br.queryOne(ctx, "could not upsert budget", query,
		uuid.New(),
		userId,
		budget.CategoryName,
		budget.BudgetedAmount,
		budget.SpentAmount,
		budget.MonthYear,
	)
}

func (br *BudgetRepoImpl) UpdateSpent(ctx context.Context, userId int, id uuid.UUID, spent float64) (BudgetCategory, error) {
	query := `UPDATE budget_category SET spent_amount = $3
			  WHERE user_id = $1 AND id = $2
			  RETURNING ` + budgetColumns
	return br.queryOne(ctx, "could not update spent amount", query, userId, id, spent)
}

func (br *BudgetRepoImpl) Delete(ctx context.Context, userId int, id uuid.UUID) (bool, error) {
	query := `DELETE FROM budget_category WHERE id = $1 AND user_id = $2`
	result, err := br.db.Exec(ctx, query, id, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (br *BudgetRepoImpl) queryOne(ctx context.Context, failure string, query string, args ...any) (BudgetCategory, error) {
	b, err := scanBudget(br.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return BudgetCategory{}, ErrBudgetCategoryNotFound
		}
		err := fmt.Errorf("%s: %w", failure, err)
		log.Error(err)
		return BudgetCategory{}, err
	}
	return b, nil
}

func scanBudget(row pgx.Row) (BudgetCategory, error) {
	var b BudgetCategory
	err := row.Scan(
		&b.Id,
		&b.CategoryName,
		&b.BudgetedAmount,
		&b.SpentAmount,
		&b.MonthYear,
		&b.Created,
	)
	return b, err
}
