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

type TripRepository interface {
	Create(ctx context.Context, trip *entity.Trip) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Trip, error)
	// FindByIDForShare keeps the trip status stable until the transaction ends.
	FindByIDForShare(ctx context.Context, id uuid.UUID) (*entity.Trip, error)
	FindAll(ctx context.Context, filter TripFilter, limit, offset int) ([]*entity.Trip, error)
	Count(ctx context.Context, filter TripFilter) (int64, error)
	Update(ctx context.Context, trip *entity.Trip) error
	// UpdateStatus changes the status only if it still equals from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.TripStatus) (bool, error)
}

type tripRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTripRepository(db database.PgxIface, log *zap.Logger) TripRepository {
	return &tripRepository{
		db:  db,
		log: log.With(zap.String("repository", "trip")),
	}
}

const tripColumns = `id, itinerary_id, vessel_id, departure_at, status, notes, created_at, updated_at`

func scanTrip(row scanner) (*entity.Trip, error) {
	var t entity.Trip
	err := row.Scan(
		&t.ID,
		&t.ItineraryID,
		&t.VesselID,
		&t.DepartureAt,
		&t.Status,
		&t.Notes,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func tripWhere(filter TripFilter) *whereBuilder {
	w := &whereBuilder{}
	if filter.Status != nil {
		w.add("status = ?", *filter.Status)
	}
	if filter.ItineraryID != nil {
		w.add("itinerary_id = ?", *filter.ItineraryID)
	}
	if filter.VesselID != nil {
		w.add("vessel_id = ?", *filter.VesselID)
	}
	if filter.From != nil {
		w.add("departure_at >= ?", *filter.From)
	}
	if filter.To != nil {
		w.add("departure_at < ?", *filter.To)
	}
	return w
}

func (r *tripRepository) Create(ctx context.Context, trip *entity.Trip) error {
	query := `INSERT INTO trips (` + tripColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		trip.ID,
		trip.ItineraryID,
		trip.VesselID,
		trip.DepartureAt,
		trip.Status,
		trip.Notes,
		trip.CreatedAt,
		trip.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create trip", zap.Error(err), zap.String("itinerary_id", trip.ItineraryID.String()))
		return fmt.Errorf("create trip: %w", database.Classify(err))
	}

	return nil
}

func (r *tripRepository) find(ctx context.Context, query string, id uuid.UUID) (*entity.Trip, error) {
	trip, err := scanTrip(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find trip", zap.Error(err), zap.String("trip_id", id.String()))
		return nil, fmt.Errorf("find trip %s: %w", id, database.Classify(err))
	}
	return trip, nil
}

func (r *tripRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Trip, error) {
	return r.find(ctx, `SELECT `+tripColumns+` FROM trips WHERE id = $1`, id)
}

func (r *tripRepository) FindByIDForShare(ctx context.Context, id uuid.UUID) (*entity.Trip, error) {
	return r.find(ctx, `SELECT `+tripColumns+` FROM trips WHERE id = $1 FOR SHARE`, id)
}

func (r *tripRepository) FindAll(ctx context.Context, filter TripFilter, limit, offset int) ([]*entity.Trip, error) {
	w := tripWhere(filter)
	query := `SELECT ` + tripColumns + ` FROM trips` + w.sql() + ` ORDER BY departure_at DESC` + w.page(limit, offset)

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, w.args...)
	if err != nil {
		r.log.Error("Failed to list trips", zap.Error(err))
		return nil, fmt.Errorf("list trips: %w", database.Classify(err))
	}
	defer rows.Close()

	var trips []*entity.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trip row: %w", err)
		}
		trips = append(trips, trip)
	}

	return trips, rows.Err()
}

func (r *tripRepository) Count(ctx context.Context, filter TripFilter) (int64, error) {
	w := tripWhere(filter)

	var total int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM trips`+w.sql(), w.args...).Scan(&total); err != nil {
		r.log.Error("Failed to count trips", zap.Error(err))
		return 0, fmt.Errorf("count trips: %w", database.Classify(err))
	}
	return total, nil
}

func (r *tripRepository) Update(ctx context.Context, trip *entity.Trip) error {
	query := `
		UPDATE trips
		SET itinerary_id = $2, vessel_id = $3, departure_at = $4, notes = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query,
		trip.ID,
		trip.ItineraryID,
		trip.VesselID,
		trip.DepartureAt,
		trip.Notes,
		trip.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update trip", zap.Error(err), zap.String("trip_id", trip.ID.String()))
		return fmt.Errorf("update trip %s: %w", trip.ID, database.Classify(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("trip %s: %w", trip.ID, ErrNotFound)
	}

	return nil
}

func (r *tripRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.TripStatus) (bool, error) {
	result, err := database.Conn(ctx, r.db).Exec(ctx,
		`UPDATE trips SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`, id, from, to)
	if err != nil {
		r.log.Error("Failed to update trip status",
			zap.Error(err),
			zap.String("trip_id", id.String()),
			zap.String("status", string(to)))
		return false, fmt.Errorf("update trip %s status to %s: %w", id, to, database.Classify(err))
	}

	return result.RowsAffected() == 1, nil
}
