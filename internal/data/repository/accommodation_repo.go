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

type AccommodationRepository interface {
	Create(ctx context.Context, class *entity.AccommodationClass) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AccommodationClass, error)
	FindAll(ctx context.Context) ([]*entity.AccommodationClass, error)
	Update(ctx context.Context, class *entity.AccommodationClass) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type accommodationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAccommodationRepository(db database.PgxIface, log *zap.Logger) AccommodationRepository {
	return &accommodationRepository{
		db:  db,
		log: log.With(zap.String("repository", "accommodation")),
	}
}

func (r *accommodationRepository) Create(ctx context.Context, class *entity.AccommodationClass) error {
	query := `
		INSERT INTO accommodation_classes (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query, class.ID, class.Name, class.Description, class.CreatedAt, class.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create accommodation class", zap.Error(err), zap.String("name", class.Name))
		return fmt.Errorf("create accommodation class %s: %w", class.Name, database.Classify(err))
	}

	return nil
}

func (r *accommodationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AccommodationClass, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM accommodation_classes WHERE id = $1`

	var c entity.AccommodationClass
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find accommodation class", zap.Error(err), zap.String("class_id", id.String()))
		return nil, fmt.Errorf("find accommodation class %s: %w", id, database.Classify(err))
	}

	return &c, nil
}

func (r *accommodationRepository) FindAll(ctx context.Context) ([]*entity.AccommodationClass, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM accommodation_classes ORDER BY name`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list accommodation classes", zap.Error(err))
		return nil, fmt.Errorf("list accommodation classes: %w", database.Classify(err))
	}
	defer rows.Close()

	var classes []*entity.AccommodationClass
	for rows.Next() {
		var c entity.AccommodationClass
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan accommodation class row: %w", err)
		}
		classes = append(classes, &c)
	}

	return classes, rows.Err()
}

func (r *accommodationRepository) Update(ctx context.Context, class *entity.AccommodationClass) error {
	query := `UPDATE accommodation_classes SET name = $2, description = $3, updated_at = $4 WHERE id = $1`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, class.ID, class.Name, class.Description, class.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to update accommodation class", zap.Error(err), zap.String("class_id", class.ID.String()))
		return fmt.Errorf("update accommodation class %s: %w", class.ID, database.Classify(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("accommodation class %s: %w", class.ID, ErrNotFound)
	}

	return nil
}

// Delete fails with database.ErrForeignKey while allocations, prices or
// tickets still reference the class.
func (r *accommodationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM accommodation_classes WHERE id = $1`, id)
	if err != nil {
		r.log.Warn("Failed to delete accommodation class", zap.Error(err), zap.String("class_id", id.String()))
		return fmt.Errorf("delete accommodation class %s: %w", id, database.Classify(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("accommodation class %s: %w", id, ErrNotFound)
	}

	r.log.Info("Accommodation class deleted", zap.String("class_id", id.String()))
	return nil
}
