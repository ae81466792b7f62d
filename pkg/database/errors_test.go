package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		code string
		want error
	}{
		{"23505", ErrConflict},
		{"23503", ErrForeignKey},
		{"23514", ErrConstraint},
		{"22P02", ErrInvalidID},
		{"40001", ErrTransient},
		{"40P01", ErrTransient},
		{"08006", ErrTransient},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			pgErr := &pgconn.PgError{Code: tc.code, ConstraintName: "some_constraint"}
			err := Classify(fmt.Errorf("insert row: %w", pgErr))

			assert.ErrorIs(t, err, tc.want)
			assert.ErrorAs(t, err, &pgErr)
			assert.Equal(t, "some_constraint", ConstraintName(err))
		})
	}

	t.Run("unknown pg code passes through", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "42P01"}
		err := Classify(pgErr)
		assert.Same(t, error(pgErr), err)
	})

	t.Run("plain errors pass through", func(t *testing.T) {
		plain := errors.New("boom")
		assert.Equal(t, plain, Classify(plain))
		assert.NoError(t, Classify(nil))
	})

	t.Run("classification is idempotent", func(t *testing.T) {
		once := Classify(&pgconn.PgError{Code: "23505"})
		assert.Equal(t, once, Classify(once))
	})
}
