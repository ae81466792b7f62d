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

type ParcelRepository interface {
	Create(ctx context.Context, parcel *entity.Parcel) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Parcel, error)
	FindAll(ctx context.Context, filter ParcelFilter, limit, offset int) ([]*entity.Parcel, error)
	Count(ctx context.Context, filter ParcelFilter) (int64, error)
	// FindByTrip returns the manifest of a trip in reception order.
	FindByTrip(ctx context.Context, tripID uuid.UUID) ([]*entity.Parcel, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.ParcelStatus) (bool, error)
}

type parcelRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewParcelRepository(db database.PgxIface, log *zap.Logger) ParcelRepository {
	return &parcelRepository{
		db:  db,
		log: log.With(zap.String("repository", "parcel")),
	}
}

const parcelColumns = `id, code, trip_id, sector_id, sender_name, sender_phone, recipient_name,
	recipient_phone, description, weight_kg, value, payment_method, status, received_by,
	created_at, updated_at`

func scanParcel(row scanner) (*entity.Parcel, error) {
	var p entity.Parcel
	err := row.Scan(
		&p.ID,
		&p.Code,
		&p.TripID,
		&p.SectorID,
		&p.SenderName,
		&p.SenderPhone,
		&p.RecipientName,
		&p.RecipientPhone,
		&p.Description,
		&p.WeightKg,
		&p.Value,
		&p.PaymentMethod,
		&p.Status,
		&p.ReceivedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func parcelWhere(filter ParcelFilter) *whereBuilder {
	w := &whereBuilder{}
	if filter.TripID != nil {
		w.add("trip_id = ?", *filter.TripID)
	}
	if filter.Status != nil {
		w.add("status = ?", *filter.Status)
	}
	return w
}

func (r *parcelRepository) Create(ctx context.Context, parcel *entity.Parcel) error {
	query := `INSERT INTO parcels (` + parcelColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		parcel.ID,
		parcel.Code,
		parcel.TripID,
		parcel.SectorID,
		parcel.SenderName,
		parcel.SenderPhone,
		parcel.RecipientName,
		parcel.RecipientPhone,
		parcel.Description,
		parcel.WeightKg,
		parcel.Value,
		parcel.PaymentMethod,
		parcel.Status,
		parcel.ReceivedBy,
		parcel.CreatedAt,
		parcel.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create parcel", zap.Error(err), zap.String("trip_id", parcel.TripID.String()))
		return fmt.Errorf("create parcel: %w", database.Classify(err))
	}

	return nil
}

func (r *parcelRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Parcel, error) {
	parcel, err := scanParcel(database.Conn(ctx, r.db).QueryRow(ctx, `SELECT `+parcelColumns+` FROM parcels WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find parcel", zap.Error(err), zap.String("parcel_id", id.String()))
		return nil, fmt.Errorf("find parcel %s: %w", id, database.Classify(err))
	}

	return parcel, nil
}

func (r *parcelRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Parcel, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list parcels", zap.Error(err))
		return nil, fmt.Errorf("list parcels: %w", database.Classify(err))
	}
	defer rows.Close()

	var parcels []*entity.Parcel
	for rows.Next() {
		parcel, err := scanParcel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan parcel row: %w", err)
		}
		parcels = append(parcels, parcel)
	}

	return parcels, rows.Err()
}

func (r *parcelRepository) FindAll(ctx context.Context, filter ParcelFilter, limit, offset int) ([]*entity.Parcel, error) {
	w := parcelWhere(filter)
	query := `SELECT ` + parcelColumns + ` FROM parcels` + w.sql() + ` ORDER BY created_at DESC` + w.page(limit, offset)
	return r.list(ctx, query, w.args...)
}

func (r *parcelRepository) Count(ctx context.Context, filter ParcelFilter) (int64, error) {
	w := parcelWhere(filter)

	var total int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM parcels`+w.sql(), w.args...).Scan(&total); err != nil {
		r.log.Error("Failed to count parcels", zap.Error(err))
		return 0, fmt.Errorf("count parcels: %w", database.Classify(err))
	}
	return total, nil
}

func (r *parcelRepository) FindByTrip(ctx context.Context, tripID uuid.UUID) ([]*entity.Parcel, error) {
	return r.list(ctx, `SELECT `+parcelColumns+` FROM parcels WHERE trip_id = $1 ORDER BY created_at`, tripID)
}

func (r *parcelRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.ParcelStatus) (bool, error) {
	result, err := database.Conn(ctx, r.db).Exec(ctx,
		`UPDATE parcels SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`, id, from, to)
	if err != nil {
		r.log.Error("Failed to update parcel status",
			zap.Error(err),
			zap.String("parcel_id", id.String()),
			zap.String("status", string(to)))
		return false, fmt.Errorf("update parcel %s status to %s: %w", id, to, database.Classify(err))
	}

	return result.RowsAffected() == 1, nil
}
