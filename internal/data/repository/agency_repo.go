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

type AgencyRepository interface {
	Create(ctx context.Context, agency *entity.Agency) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Agency, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*entity.Agency, error)
	Update(ctx context.Context, agency *entity.Agency) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type agencyRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAgencyRepository(db database.PgxIface, log *zap.Logger) AgencyRepository {
	return &agencyRepository{
		db:  db,
		log: log.With(zap.String("repository", "agency")),
	}
}

const agencyColumns = `id, name, document, phone, commission_percentage, is_active, created_at, updated_at`

func scanAgency(row scanner) (*entity.Agency, error) {
	var a entity.Agency
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Document,
		&a.Phone,
		&a.CommissionPercentage,
		&a.IsActive,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *agencyRepository) Create(ctx context.Context, agency *entity.Agency) error {
	query := `
		INSERT INTO agencies (` + agencyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		agency.ID,
		agency.Name,
		agency.Document,
		agency.Phone,
		agency.CommissionPercentage,
		agency.IsActive,
		agency.CreatedAt,
		agency.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create agency", zap.Error(err), zap.String("name", agency.Name))
		return fmt.Errorf("create agency %s: %w", agency.Name, database.Classify(err))
	}

	return nil
}

func (r *agencyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Agency, error) {
	query := `SELECT ` + agencyColumns + ` FROM agencies WHERE id = $1`

	agency, err := scanAgency(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find agency by ID", zap.Error(err), zap.String("agency_id", id.String()))
		return nil, fmt.Errorf("find agency %s: %w", id, database.Classify(err))
	}

	return agency, nil
}

func (r *agencyRepository) FindAll(ctx context.Context, activeOnly bool) ([]*entity.Agency, error) {
	query := `SELECT ` + agencyColumns + ` FROM agencies WHERE ($1 = FALSE OR is_active) ORDER BY name`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, activeOnly)
	if err != nil {
		r.log.Error("Failed to list agencies", zap.Error(err))
		return nil, fmt.Errorf("list agencies: %w", database.Classify(err))
	}
	defer rows.Close()

	var agencies []*entity.Agency
	for rows.Next() {
		agency, err := scanAgency(rows)
		if err != nil {
			return nil, fmt.Errorf("scan agency row: %w", err)
		}
		agencies = append(agencies, agency)
	}

	return agencies, rows.Err()
}

func (r *agencyRepository) Update(ctx context.Context, agency *entity.Agency) error {
	query := `
		UPDATE agencies
		SET name = $2, document = $3, phone = $4, commission_percentage = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query,
		agency.ID,
		agency.Name,
		agency.Document,
		agency.Phone,
		agency.CommissionPercentage,
		agency.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update agency", zap.Error(err), zap.String("agency_id", agency.ID.String()))
		return fmt.Errorf("update agency %s: %w", agency.ID, database.Classify(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("agency %s: %w", agency.ID, ErrNotFound)
	}

	return nil
}

func (r *agencyRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE agencies SET is_active = $2, updated_at = NOW() WHERE id = $1`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, id, active)
	if err != nil {
		r.log.Error("Failed to toggle agency", zap.Error(err), zap.String("agency_id", id.String()))
		return fmt.Errorf("toggle agency %s: %w", id, database.Classify(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("agency %s: %w", id, ErrNotFound)
	}

	return nil
}
