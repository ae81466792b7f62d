package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"boat-ticketing/internal/data/entity"
	"boat-ticketing/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ClosingRepository interface {
	// Create fails with database.ErrConflict when the date is already closed.
	Create(ctx context.Context, closing *entity.CashClosing) error
	FindByDate(ctx context.Context, day time.Time) (*entity.CashClosing, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.CashClosing, error)
}

type closingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewClosingRepository(db database.PgxIface, log *zap.Logger) ClosingRepository {
	return &closingRepository{
		db:  db,
		log: log.With(zap.String("repository", "closing")),
	}
}

const closingColumns = `id, closing_date, operator_id, total_sales, total_expenses, balance, notes, created_at`

func scanClosing(row scanner) (*entity.CashClosing, error) {
	var c entity.CashClosing
	err := row.Scan(
		&c.ID,
		&c.ClosingDate,
		&c.OperatorID,
		&c.TotalSales,
		&c.TotalExpenses,
		&c.Balance,
		&c.Notes,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *closingRepository) Create(ctx context.Context, c *entity.CashClosing) error {
	query := `INSERT INTO cash_closings (` + closingColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		c.ID,
		entity.DateOf(c.ClosingDate),
		c.OperatorID,
		c.TotalSales,
		c.TotalExpenses,
		c.Balance,
		c.Notes,
		c.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create cash closing", zap.Error(err), zap.Time("closing_date", c.ClosingDate))
		return fmt.Errorf("create cash closing: %w", database.Classify(err))
	}

	return nil
}

func (r *closingRepository) FindByDate(ctx context.Context, day time.Time) (*entity.CashClosing, error) {
	closing, err := scanClosing(database.Conn(ctx, r.db).QueryRow(ctx,
		`SELECT `+closingColumns+` FROM cash_closings WHERE closing_date = $1::date`, entity.DateOf(day)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cash closing", zap.Error(err), zap.Time("closing_date", day))
		return nil, fmt.Errorf("find cash closing: %w", database.Classify(err))
	}

	return closing, nil
}

func (r *closingRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.CashClosing, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx,
		`SELECT `+closingColumns+` FROM cash_closings ORDER BY closing_date DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		r.log.Error("Failed to list cash closings", zap.Error(err))
		return nil, fmt.Errorf("list cash closings: %w", database.Classify(err))
	}
	defer rows.Close()

	var closings []*entity.CashClosing
	for rows.Next() {
		closing, err := scanClosing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cash closing row: %w", err)
		}
		closings = append(closings, closing)
	}

	return closings, rows.Err()
}
