package repository

import (
	"context"
	"fmt"

	"boat-ticketing/internal/data/entity"
	"boat-ticketing/pkg/database"

	"go.uber.org/zap"
)

// TransactionRepository is append-only: entries are never updated or removed.
type TransactionRepository interface {
	Create(ctx context.Context, txn *entity.FinancialTransaction) error
	FindAll(ctx context.Context, filter TransactionFilter, limit, offset int) ([]*entity.FinancialTransaction, error)
	Count(ctx context.Context, filter TransactionFilter) (int64, error)
}

type transactionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTransactionRepository(db database.PgxIface, log *zap.Logger) TransactionRepository {
	return &transactionRepository{
		db:  db,
		log: log.With(zap.String("repository", "transaction")),
	}
}

const transactionColumns = `id, kind, amount, payment_method, reference_id, trip_id, description, created_by, created_at`

func transactionWhere(filter TransactionFilter) *whereBuilder {
	w := &whereBuilder{}
	if filter.Kind != nil {
		w.add("kind = ?", *filter.Kind)
	}
	if filter.From != nil {
		w.add("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		w.add("created_at < ?", *filter.To)
	}
	return w
}

func (r *transactionRepository) Create(ctx context.Context, txn *entity.FinancialTransaction) error {
	query := `INSERT INTO financial_transactions (` + transactionColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		txn.ID,
		txn.Kind,
		txn.Amount,
		txn.PaymentMethod,
		txn.ReferenceID,
		txn.TripID,
		txn.Description,
		txn.CreatedBy,
		txn.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to append transaction", zap.Error(err), zap.String("kind", string(txn.Kind)))
		return fmt.Errorf("create transaction: %w", database.Classify(err))
	}

	return nil
}

func (r *transactionRepository) FindAll(ctx context.Context, filter TransactionFilter, limit, offset int) ([]*entity.FinancialTransaction, error) {
	w := transactionWhere(filter)
	query := `SELECT ` + transactionColumns + ` FROM financial_transactions` + w.sql() +
		` ORDER BY created_at DESC` + w.page(limit, offset)

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, w.args...)
	if err != nil {
		r.log.Error("Failed to list transactions", zap.Error(err))
		return nil, fmt.Errorf("list transactions: %w", database.Classify(err))
	}
	defer rows.Close()

	var txns []*entity.FinancialTransaction
	for rows.Next() {
		var t entity.FinancialTransaction
		if err := rows.Scan(
			&t.ID,
			&t.Kind,
			&t.Amount,
			&t.PaymentMethod,
			&t.ReferenceID,
			&t.TripID,
			&t.Description,
			&t.CreatedBy,
			&t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		txns = append(txns, &t)
	}

	return txns, rows.Err()
}

func (r *transactionRepository) Count(ctx context.Context, filter TransactionFilter) (int64, error) {
	w := transactionWhere(filter)

	var total int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM financial_transactions`+w.sql(), w.args...).Scan(&total); err != nil {
		r.log.Error("Failed to count transactions", zap.Error(err))
		return 0, fmt.Errorf("count transactions: %w", database.Classify(err))
	}
	return total, nil
}
