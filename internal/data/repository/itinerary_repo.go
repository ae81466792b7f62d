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

type ItineraryRepository interface {
	Create(ctx context.Context, itinerary *entity.Itinerary) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Itinerary, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*entity.Itinerary, error)
	Update(ctx context.Context, itinerary *entity.Itinerary) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type itineraryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewItineraryRepository(db database.PgxIface, log *zap.Logger) ItineraryRepository {
	return &itineraryRepository{
		db:  db,
		log: log.With(zap.String("repository", "itinerary")),
	}
}

const itineraryColumns = `id, name, description, is_active, created_at, updated_at`

func scanItinerary(row scanner) (*entity.Itinerary, error) {
	var it entity.Itinerary
	if err := row.Scan(&it.ID, &it.Name, &it.Description, &it.IsActive, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itineraryRepository) Create(ctx context.Context, itinerary *entity.Itinerary) error {
	query := `INSERT INTO itineraries (` + itineraryColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		itinerary.ID,
		itinerary.Name,
		itinerary.Description,
		itinerary.IsActive,
		itinerary.CreatedAt,
		itinerary.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create itinerary", zap.Error(err), zap.String("name", itinerary.Name))
		return fmt.Errorf("create itinerary %s: %w", itinerary.Name, database.Classify(err))
	}

	return nil
}

func (r *itineraryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Itinerary, error) {
	query := `SELECT ` + itineraryColumns + ` FROM itineraries WHERE id = $1`

	itinerary, err := scanItinerary(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find itinerary", zap.Error(err), zap.String("itinerary_id", id.String()))
		return nil, fmt.Errorf("find itinerary %s: %w", id, database.Classify(err))
	}

	return itinerary, nil
}

func (r *itineraryRepository) FindAll(ctx context.Context, activeOnly bool) ([]*entity.Itinerary, error) {
	query := `SELECT ` + itineraryColumns + ` FROM itineraries WHERE ($1 = FALSE OR is_active) ORDER BY name`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, activeOnly)
	if err != nil {
		r.log.Error("Failed to list itineraries", zap.Error(err))
		return nil, fmt.Errorf("list itineraries: %w", database.Classify(err))
	}
	defer rows.Close()

	var itineraries []*entity.Itinerary
	for rows.Next() {
		itinerary, err := scanItinerary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan itinerary row: %w", err)
		}
		itineraries = append(itineraries, itinerary)
	}

	return itineraries, rows.Err()
}

func (r *itineraryRepository) Update(ctx context.Context, itinerary *entity.Itinerary) error {
	query := `UPDATE itineraries SET name = $2, description = $3, updated_at = $4 WHERE id = $1`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, itinerary.ID, itinerary.Name, itinerary.Description, itinerary.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to update itinerary", zap.Error(err), zap.String("itinerary_id", itinerary.ID.String()))
		return fmt.Errorf("update itinerary %s: %w", itinerary.ID, database.Classify(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("itinerary %s: %w", itinerary.ID, ErrNotFound)
	}

	return nil
}

func (r *itineraryRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx,
		`UPDATE itineraries SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		r.log.Error("Failed to toggle itinerary", zap.Error(err), zap.String("itinerary_id", id.String()))
		return fmt.Errorf("toggle itinerary %s: %w", id, database.Classify(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("itinerary %s: %w", id, ErrNotFound)
	}

	return nil
}
