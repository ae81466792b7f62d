package repository

import "errors"

// ErrNotFound is returned by updates and deletes that matched no row.
// Lookups return (nil, nil) instead.
var ErrNotFound = errors.New("record not found")

// scanner is satisfied by pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}
