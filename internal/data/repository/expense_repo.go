package repository

import (
	"context"
	"errors"
	"fmt"

	"boat-ticketing/internal/data/entity"
	"boat-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.TripExpense) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TripExpense, error)
	FindByTrip(ctx context.Context, tripID uuid.UUID) ([]*entity.TripExpense, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.TripExpense, error)
	Update(ctx context.Context, expense *entity.TripExpense) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type expenseRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewExpenseRepository(db database.PgxIface, log *zap.Logger) ExpenseRepository {
	return &expenseRepository{
		db:  db,
		log: log.With(zap.String("repository", "expense")),
	}
}

const expenseColumns = `id, trip_id, description, amount, category, created_by, created_at`

func scanExpense(row scanner) (*entity.TripExpense, error) {
	var e entity.TripExpense
	if err := row.Scan(&e.ID, &e.TripID, &e.Description, &e.Amount, &e.Category, &e.CreatedBy, &e.CreatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *expenseRepository) Create(ctx context.Context, expense *entity.TripExpense) error {
	query := `INSERT INTO trip_expenses (` + expenseColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		expense.ID,
		expense.TripID,
		expense.Description,
		expense.Amount,
		expense.Category,
		expense.CreatedBy,
		expense.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create expense", zap.Error(err), zap.String("trip_id", expense.TripID.String()))
		return fmt.Errorf("create expense: %w", database.Classify(err))
	}

	return nil
}

func (r *expenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TripExpense, error) {
	expense, err := scanExpense(database.Conn(ctx, r.db).QueryRow(ctx, `SELECT `+expenseColumns+` FROM trip_expenses WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find expense", zap.Error(err), zap.String("expense_id", id.String()))
		return nil, fmt.Errorf("find expense %s: %w", id, database.Classify(err))
	}

	return expense, nil
}

func (r *expenseRepository) list(ctx context.Context, query string, args ...any) ([]*entity.TripExpense, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list expenses", zap.Error(err))
		return nil, fmt.Errorf("list expenses: %w", database.Classify(err))
	}
	defer rows.Close()

	var expenses []*entity.TripExpense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense row: %w", err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, rows.Err()
}

func (r *expenseRepository) FindByTrip(ctx context.Context, tripID uuid.UUID) ([]*entity.TripExpense, error) {
	return r.list(ctx, `SELECT `+expenseColumns+` FROM trip_expenses WHERE trip_id = $1 ORDER BY created_at`, tripID)
}

func (r *expenseRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.TripExpense, error) {
	return r.list(ctx, `SELECT `+expenseColumns+` FROM trip_expenses ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *expenseRepository) Update(ctx context.Context, expense *entity.TripExpense) error {
	query := `UPDATE trip_expenses SET trip_id = $2, description = $3, amount = $4, category = $5 WHERE id = $1`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query,
		expense.ID,
		expense.TripID,
		expense.Description,
		expense.Amount,
		expense.Category,
	)
	if err != nil {
		r.log.Error("Failed to update expense", zap.Error(err), zap.String("expense_id", expense.ID.String()))
		return fmt.Errorf("update expense %s: %w", expense.ID, database.Classify(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("expense %s: %w", expense.ID, ErrNotFound)
	}

	return nil
}

func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM trip_expenses WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete expense", zap.Error(err), zap.String("expense_id", id.String()))
		return fmt.Errorf("delete expense %s: %w", id, database.Classify(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("expense %s: %w", id, ErrNotFound)
	}

	return nil
}
