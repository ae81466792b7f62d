package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrConflict   = errors.New("conflicting record")
	ErrForeignKey = errors.New("record is referenced or references a missing record")
	ErrConstraint = errors.New("record violates a constraint")
	ErrInvalidID  = errors.New("invalid identifier")
	ErrTransient  = errors.New("temporary database failure")
)

// Classify tags a Postgres error with one of the sentinels above while
// keeping the original error in the chain. Anything else is returned as is.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if isClassified(err) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %w", ErrConflict, err)
		case "23503":
			return fmt.Errorf("%w: %w", ErrForeignKey, err)
		case "23514", "23502":
			return fmt.Errorf("%w: %w", ErrConstraint, err)
		case "22P02":
			return fmt.Errorf("%w: %w", ErrInvalidID, err)
		case "40001", "40P01", "55P03", "57P01":
			return fmt.Errorf("%w: %w", ErrTransient, err)
		}
		// class 08: connection exception
		if len(pgErr.Code) == 5 && pgErr.Code[:2] == "08" {
			return fmt.Errorf("%w: %w", ErrTransient, err)
		}
		return err
	}

	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %w", ErrTransient, err)
	}
	return err
}

func isClassified(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrForeignKey) ||
		errors.Is(err, ErrConstraint) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrTransient)
}

// ConstraintName returns the violated constraint, or "" when err is not a
// Postgres constraint error.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
