package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

type fakeDB struct {
	PgxIface
	txs []*fakeTx
}

func (d *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	tx := &fakeTx{}
	d.txs = append(d.txs, tx)
	return tx, nil
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success and exposes the tx", func(t *testing.T) {
		db := &fakeDB{}
		m := NewTxManager(db, zap.NewNop())

		err := m.WithTx(ctx, func(ctx context.Context) error {
			assert.NotNil(t, TxFromContext(ctx))
			assert.Equal(t, TxFromContext(ctx), Conn(ctx, db))
			return nil
		})

		require.NoError(t, err)
		require.Len(t, db.txs, 1)
		assert.True(t, db.txs[0].committed)
		assert.False(t, db.txs[0].rolledBack)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db := &fakeDB{}
		m := NewTxManager(db, zap.NewNop())
		boom := errors.New("boom")

		err := m.WithTx(ctx, func(ctx context.Context) error { return boom })

		assert.ErrorIs(t, err, boom)
		require.Len(t, db.txs, 1)
		assert.True(t, db.txs[0].rolledBack)
		assert.False(t, db.txs[0].committed)
	})

	t.Run("nested calls join the outer transaction", func(t *testing.T) {
		db := &fakeDB{}
		m := NewTxManager(db, zap.NewNop())

		err := m.WithTx(ctx, func(ctx context.Context) error {
			return m.WithTx(ctx, func(ctx context.Context) error { return nil })
		})

		require.NoError(t, err)
		assert.Len(t, db.txs, 1)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		db := &fakeDB{}
		m := NewTxManager(db, zap.NewNop())
		calls := 0

		err := m.WithTx(ctx, func(ctx context.Context) error {
			calls++
			if calls < 3 {
				return &pgconn.PgError{Code: "40001"}
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.Len(t, db.txs, 3)
	})

	t.Run("gives up after the last attempt", func(t *testing.T) {
		db := &fakeDB{}
		m := NewTxManager(db, zap.NewNop())

		err := m.WithTx(ctx, func(ctx context.Context) error {
			return &pgconn.PgError{Code: "40P01"}
		})

		assert.ErrorIs(t, err, ErrTransient)
		assert.Len(t, db.txs, maxTxAttempts)
	})

	t.Run("conn falls back to the pool outside a tx", func(t *testing.T) {
		db := &fakeDB{}
		assert.Equal(t, Querier(db), Conn(ctx, db))
	})
}
