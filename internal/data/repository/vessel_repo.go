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

type VesselRepository interface {
	Create(ctx context.Context, vessel *entity.Vessel) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Vessel, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*entity.Vessel, error)
	Update(ctx context.Context, vessel *entity.Vessel) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type vesselRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVesselRepository(db database.PgxIface, log *zap.Logger) VesselRepository {
	return &vesselRepository{
		db:  db,
		log: log.With(zap.String("repository", "vessel")),
	}
}

const vesselColumns = `id, name, type, capacity, seat_numbering, is_active, created_at, updated_at`

func scanVessel(row scanner) (*entity.Vessel, error) {
	var v entity.Vessel
	err := row.Scan(
		&v.ID,
		&v.Name,
		&v.Type,
		&v.Capacity,
		&v.SeatNumbering,
		&v.IsActive,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vesselRepository) Create(ctx context.Context, vessel *entity.Vessel) error {
	query := `
		INSERT INTO vessels (` + vesselColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		vessel.ID,
		vessel.Name,
		vessel.Type,
		vessel.Capacity,
		vessel.SeatNumbering,
		vessel.IsActive,
		vessel.CreatedAt,
		vessel.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create vessel", zap.Error(err), zap.String("name", vessel.Name))
		return fmt.Errorf("create vessel %s: %w", vessel.Name, database.Classify(err))
	}

	return nil
}

func (r *vesselRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Vessel, error) {
	query := `SELECT ` + vesselColumns + ` FROM vessels WHERE id = $1`

	vessel, err := scanVessel(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find vessel by ID", zap.Error(err), zap.String("vessel_id", id.String()))
		return nil, fmt.Errorf("find vessel %s: %w", id, database.Classify(err))
	}

	return vessel, nil
}

func (r *vesselRepository) FindAll(ctx context.Context, activeOnly bool) ([]*entity.Vessel, error) {
	query := `SELECT ` + vesselColumns + ` FROM vessels WHERE ($1 = FALSE OR is_active) ORDER BY name`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, activeOnly)
	if err != nil {
		r.log.Error("Failed to list vessels", zap.Error(err))
		return nil, fmt.Errorf("list vessels: %w", database.Classify(err))
	}
	defer rows.Close()

	var vessels []*entity.Vessel
	for rows.Next() {
		vessel, err := scanVessel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vessel row: %w", err)
		}
		vessels = append(vessels, vessel)
	}

	return vessels, rows.Err()
}

func (r *vesselRepository) Update(ctx context.Context, vessel *entity.Vessel) error {
	query := `
		UPDATE vessels
		SET name = $2, type = $3, capacity = $4, seat_numbering = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query,
		vessel.ID,
		vessel.Name,
		vessel.Type,
		vessel.Capacity,
		vessel.SeatNumbering,
		vessel.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update vessel", zap.Error(err), zap.String("vessel_id", vessel.ID.String()))
		return fmt.Errorf("update vessel %s: %w", vessel.ID, database.Classify(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("vessel %s: %w", vessel.ID, ErrNotFound)
	}

	return nil
}

func (r *vesselRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx,
		`UPDATE vessels SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		r.log.Error("Failed to toggle vessel", zap.Error(err), zap.String("vessel_id", id.String()))
		return fmt.Errorf("toggle vessel %s: %w", id, database.Classify(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("vessel %s: %w", id, ErrNotFound)
	}

	return nil
}
