package fixed_deposit

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Repository persists deposits of one user. Deposits are never updated.
type Repository interface {
	List(ctx context.Context, userId int) ([]FixedDeposit, error)
	Get(ctx context.Context, userId int, id uuid.UUID) (FixedDeposit, error)
	Create(ctx context.Context, userId int, fd FixedDeposit) (FixedDeposit, error)
	Delete(ctx context.Context, userId int, id uuid.UUID) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectColumns = `id, bank_name, principal, annual_rate, term_months, start_date, maturity_date, maturity_amount, created`

func (r *RepositoryImpl) List(ctx context.Context, userId int) ([]FixedDeposit, error) {
	query := `SELECT ` + selectColumns + ` FROM fixed_deposit WHERE user_id = $1 ORDER BY created DESC, id`
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query fixed deposits: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	deposits := make([]FixedDeposit, 0)
	for rows.Next() {
		fd, err := scan(rows)
		if err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		deposits = append(deposits, fd)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return deposits, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, id uuid.UUID) (FixedDeposit, error) {
	query := `SELECT ` + selectColumns + ` FROM fixed_deposit WHERE user_id = $1 AND id = $2`
	fd, err := scan(r.db.QueryRow(ctx, query, userId, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return FixedDeposit{}, ErrFixedDepositNotFound
		}
		err := fmt.Errorf("could not get fixed deposit: %w", err)
		log.Error(err)
		return FixedDeposit{}, err
	}
	return fd, nil
}

func (r *RepositoryImpl) Create(ctx context.Context, userId int, fd FixedDeposit) (FixedDeposit, error) {
	query := `INSERT INTO fixed_deposit (
					id,
					user_id,
					bank_name,
					principal,
					annual_rate,
					term_months,
					start_date,
					maturity_date,
					maturity_amount
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING created`

	fd.Id = uuid.New()
	err := r.db.QueryRow(ctx, query,
		fd.Id,
		userId,
		fd.BankName,
		fd.Principal,
		fd.AnnualRate,
		fd.TermMonths,
		fd.StartDate,
		fd.MaturityDate,
		fd.MaturityAmount,
	).Scan(&fd.Created)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return FixedDeposit{}, err
	}
	return fd, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id uuid.UUID) (bool, error) {
	query := `DELETE FROM fixed_deposit WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(ctx, query, id, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func scan(row pgx.Row) (FixedDeposit, error) {
	var fd FixedDeposit
	err := row.Scan(
		&fd.Id,
		&fd.BankName,
		&fd.Principal,
		&fd.AnnualRate,
		&fd.TermMonths,
		&fd.StartDate,
		&fd.MaturityDate,
		&fd.MaturityAmount,
		&fd.Created,
	)
	return fd, err
}
