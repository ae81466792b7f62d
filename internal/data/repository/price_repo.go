package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"boat-ticketing/internal/data/entity"
	"boat-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PriceRepository interface {
	Create(ctx context.Context, price *entity.SegmentPrice) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SegmentPrice, error)
	FindAll(ctx context.Context, filter PriceFilter) ([]*entity.SegmentPrice, error)
	FindByKey(ctx context.Context, key entity.SegmentKey) ([]*entity.SegmentPrice, error)
	// FindEffective returns the window covering day with the latest start,
	// or nil when no window covers it.
	FindEffective(ctx context.Context, key entity.SegmentKey, day time.Time) (*entity.SegmentPrice, error)
	Update(ctx context.Context, price *entity.SegmentPrice) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type priceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPriceRepository(db database.PgxIface, log *zap.Logger) PriceRepository {
	return &priceRepository{
		db:  db,
		log: log.With(zap.String("repository", "price")),
	}
}

const priceColumns = `id, itinerary_id, origin_stop_id, destination_stop_id, class_id, price, valid_from, valid_until, created_at, updated_at`

func scanPrice(row scanner) (*entity.SegmentPrice, error) {
	var p entity.SegmentPrice
	err := row.Scan(
		&p.ID,
		&p.ItineraryID,
		&p.OriginStopID,
		&p.DestinationStopID,
		&p.ClassID,
		&p.Price,
		&p.ValidFrom,
		&p.ValidUntil,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *priceRepository) list(ctx context.Context, query string, args ...any) ([]*entity.SegmentPrice, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list segment prices", zap.Error(err))
		return nil, fmt.Errorf("list segment prices: %w", database.Classify(err))
	}
	defer rows.Close()

	var prices []*entity.SegmentPrice
	for rows.Next() {
		price, err := scanPrice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan segment price row: %w", err)
		}
		prices = append(prices, price)
	}

	return prices, rows.Err()
}

func (r *priceRepository) Create(ctx context.Context, price *entity.SegmentPrice) error {
	query := `INSERT INTO segment_prices (` + priceColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		price.ID,
		price.ItineraryID,
		price.OriginStopID,
		price.DestinationStopID,
		price.ClassID,
		price.Price,
		price.ValidFrom,
		price.ValidUntil,
		price.CreatedAt,
		price.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create segment price", zap.Error(err), zap.String("itinerary_id", price.ItineraryID.String()))
		return fmt.Errorf("create segment price: %w", database.Classify(err))
	}

	return nil
}

func (r *priceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SegmentPrice, error) {
	query := `SELECT ` + priceColumns + ` FROM segment_prices WHERE id = $1`

	price, err := scanPrice(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find segment price", zap.Error(err), zap.String("price_id", id.String()))
		return nil, fmt.Errorf("find segment price %s: %w", id, database.Classify(err))
	}

	return price, nil
}

func (r *priceRepository) FindAll(ctx context.Context, filter PriceFilter) ([]*entity.SegmentPrice, error) {
	w := &whereBuilder{}
	if filter.ItineraryID != nil {
		w.add("itinerary_id = ?", *filter.ItineraryID)
	}
	if filter.ClassID != nil {
		w.add("class_id = ?", *filter.ClassID)
	}

	query := `SELECT ` + priceColumns + ` FROM segment_prices` + w.sql() +
		` ORDER BY itinerary_id, origin_stop_id, destination_stop_id, class_id, valid_from DESC`
	return r.list(ctx, query, w.args...)
}

func (r *priceRepository) FindByKey(ctx context.Context, key entity.SegmentKey) ([]*entity.SegmentPrice, error) {
	query := `
		SELECT ` + priceColumns + `
		FROM segment_prices
		WHERE itinerary_id = $1 AND origin_stop_id = $2 AND destination_stop_id = $3 AND class_id = $4
		ORDER BY valid_from DESC
	`
	return r.list(ctx, query, key.ItineraryID, key.OriginStopID, key.DestinationStopID, key.ClassID)
}

func (r *priceRepository) FindEffective(ctx context.Context, key entity.SegmentKey, day time.Time) (*entity.SegmentPrice, error) {
	query := `
		SELECT ` + priceColumns + `
		FROM segment_prices
		WHERE itinerary_id = $1
		  AND origin_stop_id = $2
		  AND destination_stop_id = $3
		  AND class_id = $4
		  AND valid_from <= $5::date
		  AND (valid_until IS NULL OR valid_until >= $5::date)
		ORDER BY valid_from DESC, created_at DESC
		LIMIT 1
	`

	price, err := scanPrice(database.Conn(ctx, r.db).QueryRow(ctx, query,
		key.ItineraryID,
		key.OriginStopID,
		key.DestinationStopID,
		key.ClassID,
		entity.DateOf(day),
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to resolve segment price",
			zap.Error(err),
			zap.String("itinerary_id", key.ItineraryID.String()),
			zap.String("class_id", key.ClassID.String()))
		return nil, fmt.Errorf("resolve segment price: %w", database.Classify(err))
	}

	return price, nil
}

func (r *priceRepository) Update(ctx context.Context, price *entity.SegmentPrice) error {
	query := `
		UPDATE segment_prices
		SET origin_stop_id = $2, destination_stop_id = $3, class_id = $4, price = $5,
		    valid_from = $6, valid_until = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query,
		price.ID,
		price.OriginStopID,
		price.DestinationStopID,
		price.ClassID,
		price.Price,
		price.ValidFrom,
		price.ValidUntil,
		price.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update segment price", zap.Error(err), zap.String("price_id", price.ID.String()))
		return fmt.Errorf("update segment price %s: %w", price.ID, database.Classify(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("segment price %s: %w", price.ID, ErrNotFound)
	}

	return nil
}

func (r *priceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM segment_prices WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete segment price", zap.Error(err), zap.String("price_id", id.String()))
		return fmt.Errorf("delete segment price %s: %w", id, database.Classify(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("segment price %s: %w", id, ErrNotFound)
	}

	return nil
}
