package usecase

import (
	"errors"
	"fmt"
	"time"

	"boat-ticketing/internal/dto/request"
	"boat-ticketing/pkg/database"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w: %s", ErrValidation, ErrInvalidID, field)
	}
	return id, nil
}

func parseOptionalID(field string, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := parseID(field, *raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseDate(field, raw string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w: %s", ErrValidation, ErrInvalidDate, field)
	}
	return t, nil
}

func parseOptionalDate(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := parseDate(field, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// normalizePage clamps paging input to the defaults used by every listing.
func normalizePage(req *request.PaginatedRequest) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 {
		req.PerPage = 10
	}
	if req.PerPage > 100 {
		req.PerPage = 100
	}
}

// translateStoreErr maps classified store errors that have a business meaning.
func translateStoreErr(err error, conflict error) error {
	switch {
	case err == nil:
		return nil
	case conflict != nil && errors.Is(err, database.ErrConflict):
		return fmt.Errorf("%w: %w", conflict, err)
	case errors.Is(err, database.ErrForeignKey):
		return fmt.Errorf("%w: %w", ErrInUse, err)
	}
	return err
}
