package savings_goal

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	List(ctx context.Context, userId int) ([]SavingsGoal, error)
	Get(ctx context.Context, userId int, id uuid.UUID) (SavingsGoal, error)
	Create(ctx context.Context, userId int, goal SavingsGoal) (SavingsGoal, error)
	Update(ctx context.Context, userId int, goal SavingsGoal) (SavingsGoal, error)
	Delete(ctx context.Context, userId int, id uuid.UUID) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectColumns = `id, title, category, target_amount, current_amount, target_date, created`

func (r *RepositoryImpl) List(ctx context.Context, userId int) ([]SavingsGoal, error) {
	query := `SELECT ` + selectColumns + ` FROM savings_goal WHERE user_id = $1 ORDER BY created DESC, id`
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query savings goals: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	goals := make([]SavingsGoal, 0)
	for rows.Next() {
		g, err := scan(rows)
		if err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return goals, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, id uuid.UUID) (SavingsGoal, error) {
	query := `SELECT ` + selectColumns + ` FROM savings_goal WHERE user_id = $1 AND id = $2`
	return r.queryOne(ctx, "could not get savings goal", query, userId, id)
}

func (r *RepositoryImpl) Create(ctx context.Context, userId int, goal SavingsGoal) (SavingsGoal, error) {
	query := `INSERT INTO savings_goal (
					id,
					user_id,
					title,
					category,
					target_amount,
					current_amount,
					target_date
				) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING ` + selectColumns

	return r.queryOne(ctx, "could not create savings goal", query,
		uuid.New(),
		userId,
		goal.Title,
		goal.Category,
		goal.TargetAmount,
		goal.CurrentAmount,
		goal.TargetDate,
	)
}

func (r *RepositoryImpl) Update(ctx context.Context, userId int, goal SavingsGoal) (SavingsGoal, error) {
	query := `UPDATE savings_goal
			  SET title = $3,
			      category = $4,
			      target_amount = $5,
			      current_amount = $6,
			      target_date = $7
			  WHERE user_id = $1 AND id = $2
			  RETURNING ` + selectColumns

	return r.queryOne(ctx, "could not update savings goal", query,
		userId,
		goal.Id,
		goal.Title,
		goal.Category,
		goal.TargetAmount,
		goal.CurrentAmount,
		goal.TargetDate,
	)
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id uuid.UUID) (bool, error) {
	query := `DELETE FROM savings_goal WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(ctx, query, id, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) queryOne(ctx context.Context, failure string, query string, args ...any) (SavingsGoal, error) {
	g, err := scan(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SavingsGoal{}, ErrSavingsGoalNotFound
		}
		err := fmt.Errorf("%s: %w", failure, err)
		log.Error(err)
		return SavingsGoal{}, err
	}
	return g, nil
}

func scan(row pgx.Row) (SavingsGoal, error) {
	var g SavingsGoal
	err := row.Scan(
		&g.Id,
		&g.Title,
		&g.Category,
		&g.TargetAmount,
		&g.CurrentAmount,
		&g.TargetDate,
		&g.Created,
	)
	return g, err
}
