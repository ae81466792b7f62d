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

// CapacityRepository stores per-class berth allocations and numbered seats.
type CapacityRepository interface {
	FindAllocation(ctx context.Context, vesselID, classID uuid.UUID) (*entity.CapacityAllocation, error)
	// FindAllocationForUpdate locks the allocation row until the surrounding
	// transaction ends, serializing sales of the same class.
	FindAllocationForUpdate(ctx context.Context, vesselID, classID uuid.UUID) (*entity.CapacityAllocation, error)
	FindAllocationsByVessel(ctx context.Context, vesselID uuid.UUID) ([]*entity.CapacityAllocation, error)
	UpsertAllocation(ctx context.Context, allocation *entity.CapacityAllocation) error
	DeleteAllocation(ctx context.Context, vesselID, classID uuid.UUID) error
	ReplaceAllocations(ctx context.Context, vesselID uuid.UUID, allocations []*entity.CapacityAllocation) error

	FindSeatsByVessel(ctx context.Context, vesselID uuid.UUID) ([]*entity.Seat, error)
	ReplaceSeats(ctx context.Context, vesselID uuid.UUID, seats []*entity.Seat) error
}

type capacityRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCapacityRepository(db database.PgxIface, log *zap.Logger) CapacityRepository {
	return &capacityRepository{
		db:  db,
		log: log.With(zap.String("repository", "capacity")),
	}
}

const allocationColumns = `id, vessel_id, class_id, quantity, created_at`

func scanAllocation(row scanner) (*entity.CapacityAllocation, error) {
	var a entity.CapacityAllocation
	if err := row.Scan(&a.ID, &a.VesselID, &a.ClassID, &a.Quantity, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *capacityRepository) findAllocation(ctx context.Context, query string, vesselID, classID uuid.UUID) (*entity.CapacityAllocation, error) {
	allocation, err := scanAllocation(database.Conn(ctx, r.db).QueryRow(ctx, query, vesselID, classID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find capacity allocation",
			zap.Error(err),
			zap.String("vessel_id", vesselID.String()),
			zap.String("class_id", classID.String()))
		return nil, fmt.Errorf("find allocation %s/%s: %w", vesselID, classID, database.Classify(err))
	}
	return allocation, nil
}

func (r *capacityRepository) FindAllocation(ctx context.Context, vesselID, classID uuid.UUID) (*entity.CapacityAllocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM capacity_allocations WHERE vessel_id = $1 AND class_id = $2`
	return r.findAllocation(ctx, query, vesselID, classID)
}

func (r *capacityRepository) FindAllocationForUpdate(ctx context.Context, vesselID, classID uuid.UUID) (*entity.CapacityAllocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM capacity_allocations WHERE vessel_id = $1 AND class_id = $2 FOR UPDATE`
	return r.findAllocation(ctx, query, vesselID, classID)
}

func (r *capacityRepository) FindAllocationsByVessel(ctx context.Context, vesselID uuid.UUID) ([]*entity.CapacityAllocation, error) {
	query := `
		SELECT a.id, a.vessel_id, a.class_id, a.quantity, a.created_at
		FROM capacity_allocations a
		JOIN accommodation_classes c ON c.id = a.class_id
		WHERE a.vessel_id = $1
		ORDER BY c.name
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, vesselID)
	if err != nil {
		r.log.Error("Failed to list allocations", zap.Error(err), zap.String("vessel_id", vesselID.String()))
		return nil, fmt.Errorf("list allocations of vessel %s: %w", vesselID, database.Classify(err))
	}
	defer rows.Close()

	var allocations []*entity.CapacityAllocation
	for rows.Next() {
		allocation, err := scanAllocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan allocation row: %w", err)
		}
		allocations = append(allocations, allocation)
	}

	return allocations, rows.Err()
}

func (r *capacityRepository) UpsertAllocation(ctx context.Context, allocation *entity.CapacityAllocation) error {
	query := `
		INSERT INTO capacity_allocations (id, vessel_id, class_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (vessel_id, class_id) DO UPDATE SET quantity = EXCLUDED.quantity
		RETURNING id, created_at
	`

	err := database.Conn(ctx, r.db).QueryRow(ctx, query,
		allocation.ID,
		allocation.VesselID,
		allocation.ClassID,
		allocation.Quantity,
		allocation.CreatedAt,
	).Scan(&allocation.ID, &allocation.CreatedAt)
	if err != nil {
		r.log.Error("Failed to upsert allocation",
			zap.Error(err),
			zap.String("vessel_id", allocation.VesselID.String()),
			zap.String("class_id", allocation.ClassID.String()))
		return fmt.Errorf("upsert allocation: %w", database.Classify(err))
	}

	return nil
}

func (r *capacityRepository) DeleteAllocation(ctx context.Context, vesselID, classID uuid.UUID) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx,
		`DELETE FROM capacity_allocations WHERE vessel_id = $1 AND class_id = $2`, vesselID, classID)
	if err != nil {
		r.log.Error("Failed to delete allocation", zap.Error(err))
		return fmt.Errorf("delete allocation %s/%s: %w", vesselID, classID, database.Classify(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("allocation %s/%s: %w", vesselID, classID, ErrNotFound)
	}

	return nil
}

// ReplaceAllocations deletes every allocation of the vessel and inserts the
// given set. Call it inside a transaction.
func (r *capacityRepository) ReplaceAllocations(ctx context.Context, vesselID uuid.UUID, allocations []*entity.CapacityAllocation) error {
	q := database.Conn(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM capacity_allocations WHERE vessel_id = $1`, vesselID); err != nil {
		r.log.Error("Failed to clear allocations", zap.Error(err), zap.String("vessel_id", vesselID.String()))
		return fmt.Errorf("clear allocations of vessel %s: %w", vesselID, database.Classify(err))
	}

	for _, a := range allocations {
		_, err := q.Exec(ctx,
			`INSERT INTO capacity_allocations (id, vessel_id, class_id, quantity, created_at) VALUES ($1, $2, $3, $4, $5)`,
			a.ID, vesselID, a.ClassID, a.Quantity, a.CreatedAt)
		if err != nil {
			r.log.Error("Failed to insert allocation", zap.Error(err), zap.String("class_id", a.ClassID.String()))
			return fmt.Errorf("insert allocation %s: %w", a.ClassID, database.Classify(err))
		}
	}

	return nil
}

func (r *capacityRepository) FindSeatsByVessel(ctx context.Context, vesselID uuid.UUID) ([]*entity.Seat, error) {
	query := `
		SELECT id, vessel_id, class_id, number, created_at
		FROM seats
		WHERE vessel_id = $1
		ORDER BY class_id, length(number), number
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, vesselID)
	if err != nil {
		r.log.Error("Failed to list seats", zap.Error(err), zap.String("vessel_id", vesselID.String()))
		return nil, fmt.Errorf("list seats of vessel %s: %w", vesselID, database.Classify(err))
	}
	defer rows.Close()

	var seats []*entity.Seat
	for rows.Next() {
		var s entity.Seat
		if err := rows.Scan(&s.ID, &s.VesselID, &s.ClassID, &s.Number, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, &s)
	}

	return seats, rows.Err()
}

// ReplaceSeats regenerates the seat map of a vessel. Call it inside a transaction.
func (r *capacityRepository) ReplaceSeats(ctx context.Context, vesselID uuid.UUID, seats []*entity.Seat) error {
	q := database.Conn(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM seats WHERE vessel_id = $1`, vesselID); err != nil {
		r.log.Error("Failed to clear seats", zap.Error(err), zap.String("vessel_id", vesselID.String()))
		return fmt.Errorf("clear seats of vessel %s: %w", vesselID, database.Classify(err))
	}

	if len(seats) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(seats))
	classIDs := make([]uuid.UUID, len(seats))
	numbers := make([]string, len(seats))
	for i, s := range seats {
		ids[i] = s.ID
		classIDs[i] = s.ClassID
		numbers[i] = s.Number
	}

	_, err := q.Exec(ctx, `
		INSERT INTO seats (id, vessel_id, class_id, number)
		SELECT u.id, $1, u.class_id, u.number
		FROM unnest($2::uuid[], $3::uuid[], $4::text[]) AS u(id, class_id, number)
	`, vesselID, ids, classIDs, numbers)
	if err != nil {
		r.log.Error("Failed to insert seats", zap.Error(err), zap.Int("count", len(seats)))
		return fmt.Errorf("insert seats of vessel %s: %w", vesselID, database.Classify(err))
	}

	return nil
}
