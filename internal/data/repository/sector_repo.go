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

type SectorRepository interface {
	Create(ctx context.Context, sector *entity.VesselSector) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.VesselSector, error)
	FindByVessel(ctx context.Context, vesselID uuid.UUID) ([]*entity.VesselSector, error)
	Update(ctx context.Context, sector *entity.VesselSector) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type sectorRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSectorRepository(db database.PgxIface, log *zap.Logger) SectorRepository {
	return &sectorRepository{
		db:  db,
		log: log.With(zap.String("repository", "sector")),
	}
}

const sectorColumns = `id, vessel_id, name, description, capacity_kg, created_at`

func scanSector(row scanner) (*entity.VesselSector, error) {
	var s entity.VesselSector
	if err := row.Scan(&s.ID, &s.VesselID, &s.Name, &s.Description, &s.CapacityKg, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sectorRepository) Create(ctx context.Context, sector *entity.VesselSector) error {
	query := `INSERT INTO vessel_sectors (` + sectorColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		sector.ID,
		sector.VesselID,
		sector.Name,
		sector.Description,
		sector.CapacityKg,
		sector.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create sector", zap.Error(err), zap.String("vessel_id", sector.VesselID.String()))
		return fmt.Errorf("create sector %s: %w", sector.Name, database.Classify(err))
	}

	return nil
}

func (r *sectorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.VesselSector, error) {
	query := `SELECT ` + sectorColumns + ` FROM vessel_sectors WHERE id = $1`

	sector, err := scanSector(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find sector", zap.Error(err), zap.String("sector_id", id.String()))
		return nil, fmt.Errorf("find sector %s: %w", id, database.Classify(err))
	}

	return sector, nil
}

func (r *sectorRepository) FindByVessel(ctx context.Context, vesselID uuid.UUID) ([]*entity.VesselSector, error) {
	query := `SELECT ` + sectorColumns + ` FROM vessel_sectors WHERE vessel_id = $1 ORDER BY name`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, vesselID)
	if err != nil {
		r.log.Error("Failed to list sectors", zap.Error(err), zap.String("vessel_id", vesselID.String()))
		return nil, fmt.Errorf("list sectors of vessel %s: %w", vesselID, database.Classify(err))
	}
	defer rows.Close()

	var sectors []*entity.VesselSector
	for rows.Next() {
		sector, err := scanSector(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sector row: %w", err)
		}
		sectors = append(sectors, sector)
	}

	return sectors, rows.Err()
}

func (r *sectorRepository) Update(ctx context.Context, sector *entity.VesselSector) error {
	query := `UPDATE vessel_sectors SET name = $2, description = $3, capacity_kg = $4 WHERE id = $1`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, sector.ID, sector.Name, sector.Description, sector.CapacityKg)
	if err != nil {
		r.log.Error("Failed to update sector", zap.Error(err), zap.String("sector_id", sector.ID.String()))
		return fmt.Errorf("update sector %s: %w", sector.ID, database.Classify(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("sector %s: %w", sector.ID, ErrNotFound)
	}

	return nil
}

func (r *sectorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM vessel_sectors WHERE id = $1`, id)
	if err != nil {
		r.log.Warn("Failed to delete sector", zap.Error(err), zap.String("sector_id", id.String()))
		return fmt.Errorf("delete sector %s: %w", id, database.Classify(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("sector %s: %w", id, ErrNotFound)
	}

	return nil
}
