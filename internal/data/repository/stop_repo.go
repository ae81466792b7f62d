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

type StopRepository interface {
	Create(ctx context.Context, stop *entity.Stop) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Stop, error)
	FindByItinerary(ctx context.Context, itineraryID uuid.UUID) ([]*entity.Stop, error)
	MaxOrder(ctx context.Context, itineraryID uuid.UUID) (int, error)
	Update(ctx context.Context, stop *entity.Stop) error
	SetOrder(ctx context.Context, id uuid.UUID, order int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type stopRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewStopRepository(db database.PgxIface, log *zap.Logger) StopRepository {
	return &stopRepository{
		db:  db,
		log: log.With(zap.String("repository", "stop")),
	}
}

const stopColumns = `id, itinerary_id, name, stop_order, dwell_minutes, created_at`

func scanStop(row scanner) (*entity.Stop, error) {
	var s entity.Stop
	if err := row.Scan(&s.ID, &s.ItineraryID, &s.Name, &s.Order, &s.DwellMinutes, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stopRepository) Create(ctx context.Context, stop *entity.Stop) error {
	query := `INSERT INTO stops (` + stopColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		stop.ID,
		stop.ItineraryID,
		stop.Name,
		stop.Order,
		stop.DwellMinutes,
		stop.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create stop",
			zap.Error(err),
			zap.String("itinerary_id", stop.ItineraryID.String()),
			zap.Int("order", stop.Order))
		return fmt.Errorf("create stop %s: %w", stop.Name, database.Classify(err))
	}

	return nil
}

func (r *stopRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Stop, error) {
	query := `SELECT ` + stopColumns + ` FROM stops WHERE id = $1`

	stop, err := scanStop(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find stop", zap.Error(err), zap.String("stop_id", id.String()))
		return nil, fmt.Errorf("find stop %s: %w", id, database.Classify(err))
	}

	return stop, nil
}

func (r *stopRepository) FindByItinerary(ctx context.Context, itineraryID uuid.UUID) ([]*entity.Stop, error) {
	query := `SELECT ` + stopColumns + ` FROM stops WHERE itinerary_id = $1 ORDER BY stop_order`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, itineraryID)
	if err != nil {
		r.log.Error("Failed to list stops", zap.Error(err), zap.String("itinerary_id", itineraryID.String()))
		return nil, fmt.Errorf("list stops of itinerary %s: %w", itineraryID, database.Classify(err))
	}
	defer rows.Close()

	var stops []*entity.Stop
	for rows.Next() {
		stop, err := scanStop(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stop row: %w", err)
		}
		stops = append(stops, stop)
	}

	return stops, rows.Err()
}

// MaxOrder returns 0 for an itinerary without stops.
func (r *stopRepository) MaxOrder(ctx context.Context, itineraryID uuid.UUID) (int, error) {
	var max int
	err := database.Conn(ctx, r.db).QueryRow(ctx,
		`SELECT COALESCE(MAX(stop_order), 0) FROM stops WHERE itinerary_id = $1`, itineraryID).Scan(&max)
	if err != nil {
		r.log.Error("Failed to read max stop order", zap.Error(err), zap.String("itinerary_id", itineraryID.String()))
		return 0, fmt.Errorf("max stop order of itinerary %s: %w", itineraryID, database.Classify(err))
	}
	return max, nil
}

func (r *stopRepository) Update(ctx context.Context, stop *entity.Stop) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx,
		`UPDATE stops SET name = $2, dwell_minutes = $3 WHERE id = $1`, stop.ID, stop.Name, stop.DwellMinutes)
	if err != nil {
		r.log.Error("Failed to update stop", zap.Error(err), zap.String("stop_id", stop.ID.String()))
		return fmt.Errorf("update stop %s: %w", stop.ID, database.Classify(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("stop %s: %w", stop.ID, ErrNotFound)
	}

	return nil
}

func (r *stopRepository) SetOrder(ctx context.Context, id uuid.UUID, order int) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx, `UPDATE stops SET stop_order = $2 WHERE id = $1`, id, order)
	if err != nil {
		r.log.Error("Failed to set stop order", zap.Error(err), zap.String("stop_id", id.String()), zap.Int("order", order))
		return fmt.Errorf("set order of stop %s: %w", id, database.Classify(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("stop %s: %w", id, ErrNotFound)
	}

	return nil
}

func (r *stopRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM stops WHERE id = $1`, id)
	if err != nil {
		r.log.Warn("Failed to delete stop", zap.Error(err), zap.String("stop_id", id.String()))
		return fmt.Errorf("delete stop %s: %w", id, database.Classify(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("stop %s: %w", id, ErrNotFound)
	}

	return nil
}
