package emi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// OwnedReminder is a reminder together with the id of the user owning it.
type OwnedReminder struct {
	UserId int
	EMIReminder
}

type Repository interface {
	List(ctx context.Context, userId int) ([]EMIReminder, error)
	Get(ctx context.Context, userId int, id uuid.UUID) (EMIReminder, error)
	Create(ctx context.Context, userId int, e EMIReminder) (EMIReminder, error)
	// Update replaces the editable fields and the next due date. Status is kept.
	Update(ctx context.Context, userId int, e EMIReminder) (EMIReminder, error)
	SetStatus(ctx context.Context, userId int, id uuid.UUID, status Status, nextDueDate time.Time) (EMIReminder, error)
	Delete(ctx context.Context, userId int, id uuid.UUID) (bool, error)
	// ListPaidBefore returns paid reminders of all users whose settled due
	// date is before the given day.
	ListPaidBefore(ctx context.Context, day time.Time) ([]OwnedReminder, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectColumns = `id, loan_name, bank_name, loan_amount, emi_amount, due_day, status, next_due_date, created`

func (r *RepositoryImpl) List(ctx context.Context, userId int) ([]EMIReminder, error) {
	query := `SELECT ` + selectColumns + ` FROM emi_reminder WHERE user_id = $1 ORDER BY next_due_date, created`
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query emi reminders: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	reminders := make([]EMIReminder, 0)
	for rows.Next() {
		e, err := scan(rows)
		if err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		reminders = append(reminders, e)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return reminders, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, id uuid.UUID) (EMIReminder, error) {
	query := `SELECT ` + selectColumns + ` FROM emi_reminder WHERE user_id = $1 AND id = $2`
	return r.queryOne(ctx, "could not get emi reminder", query, userId, id)
}

func (r *RepositoryImpl) Create(ctx context.Context, userId int, e EMIReminder) (EMIReminder, error) {
	query := `INSERT INTO emi_reminder (
					id,
					user_id,
					loan_name,
					bank_name,
					loan_amount,
					emi_amount,
					due_day,
					status,
					next_due_date
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING ` + selectColumns

	return r.queryOne(ctx, "could not create emi reminder", query,
		uuid.New(),
		userId,
		e.LoanName,
		e.BankName,
		e.LoanAmount,
		e.EMIAmount,
		e.DueDay,
		Active,
		e.NextDueDate,
	)
}

func (r *RepositoryImpl) Update(ctx context.Context, userId int, e EMIReminder) (EMIReminder, error) {
	query := `UPDATE emi_reminder
			  SET loan_name = $3,
			      bank_name = $4,
			      loan_amount = $5,
			      emi_amount = $6,
			      due_day = $7,
			      next_due_date = $8
			  WHERE user_id = $1 AND id = $2
			  RETURNING ` + selectColumns

	return r.queryOne(ctx, "could not update emi reminder", query,
		userId,
		e.Id,
		e.LoanName,
		e.BankName,
		e.LoanAmount,
		e.EMIAmount,
		e.DueDay,
		e.NextDueDate,
	)
}

func (r *RepositoryImpl) SetStatus(ctx context.Context, userId int, id uuid.UUID, status Status, nextDueDate time.Time) (EMIReminder, error) {
	query := `UPDATE emi_reminder SET status = $3, next_due_date = $4
			  WHERE user_id = $1 AND id = $2
			  RETURNING ` + selectColumns
	return r.queryOne(ctx, "could not update emi reminder status", query, userId, id, status, nextDueDate)
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id uuid.UUID) (bool, error) {
	query := `DELETE FROM emi_reminder WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(ctx, query, id, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) ListPaidBefore(ctx context.Context, day time.Time) ([]OwnedReminder, error) {
	query := `SELECT user_id, ` + selectColumns + ` FROM emi_reminder
			  WHERE status = $1 AND next_due_date < $2
			  ORDER BY user_id, next_due_date`
	rows, err := r.db.Query(ctx, query, Paid, day)
	if err != nil {
		err := fmt.Errorf("could not query paid emi reminders: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	reminders := make([]OwnedReminder, 0)
	for rows.Next() {
		var o OwnedReminder
		err := rows.Scan(
			&o.UserId,
			&o.Id,
			&o.LoanName,
			&o.BankName,
			&o.LoanAmount,
			&o.EMIAmount,
			&o.DueDay,
			&o.Status,
			&o.NextDueDate,
			&o.Created,
		)
		if err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		reminders = append(reminders, o)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return reminders, nil
}

func (r *RepositoryImpl) queryOne(ctx context.Context, failure string, query string, args ...any) (EMIReminder, error) {
	e, err := scan(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return EMIReminder{}, ErrEMIReminderNotFound
		}
		err := fmt.Errorf("%s: %w", failure, err)
		log.Error(err)
		return EMIReminder{}, err
	}
	return e, nil
}

func scan(row pgx.Row) (EMIReminder, error) {
	var e EMIReminder
	err := row.Scan(
		&e.Id,
		&e.LoanName,
		&e.BankName,
		&e.LoanAmount,
		&e.EMIAmount,
		&e.DueDay,
		&e.Status,
		&e.NextDueDate,
		&e.Created,
	)
	return e, err
}
