package database

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const maxTxAttempts = 3

type txKey struct{}

// TxManager runs a function inside one database transaction. Repositories
// pick the transaction up from the context through Conn.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type txManager struct {
	db  PgxIface
	log *zap.Logger
}

func NewTxManager(db PgxIface, log *zap.Logger) TxManager {
	return &txManager{
		db:  db,
		log: log.With(zap.String("component", "tx")),
	}
}

// WithTx joins an outer transaction when one is already open. A top level
// transaction that fails with a transient store error is retried.
func (m *txManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if TxFromContext(ctx) != nil {
		return fn(ctx)
	}

	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = m.run(ctx, fn)
		if err == nil || !errors.Is(err, ErrTransient) {
			return err
		}

		m.log.Warn("Transient transaction failure, retrying",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt*25) * time.Millisecond):
		}
	}
	return err
}

func (m *txManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return Classify(err)
	}

	txCtx := context.WithValue(ctx, txKey{}, tx)
	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			m.log.Error("Rollback failed", zap.Error(rbErr))
		}
		return Classify(err)
	}

	return Classify(tx.Commit(ctx))
}

// TxFromContext returns the transaction opened by WithTx, if any.
func TxFromContext(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(txKey{}).(pgx.Tx)
	return tx
}

// Conn returns the transaction bound to ctx, falling back to db.
func Conn(ctx context.Context, db Querier) Querier {
	if tx := TxFromContext(ctx); tx != nil {
		return tx
	}
	return db
}
