package usecase

import (
	"context"
	"fmt"
	"time"

	"boat-ticketing/internal/data/entity"
	"boat-ticketing/internal/data/repository"

	"go.uber.org/zap"
)

// PriceCatalog resolves the fare of a segment on a given day.
type PriceCatalog interface {
	// ResolvePrice returns the window covering asOf with the latest start, or
	// ErrPriceNotFound when the segment has no fare on that day.
	ResolvePrice(ctx context.Context, key entity.SegmentKey, asOf time.Time) (*entity.SegmentPrice, error)
}

type priceCatalog struct {
	prices repository.PriceRepository
	log    *zap.Logger
}

func NewPriceCatalog(prices repository.PriceRepository, log *zap.Logger) PriceCatalog {
	return &priceCatalog{
		prices: prices,
		log:    log.With(zap.String("service", "price_catalog")),
	}
}

func (c *priceCatalog) ResolvePrice(ctx context.Context, key entity.SegmentKey, asOf time.Time) (*entity.SegmentPrice, error) {
	price, err := c.prices.FindEffective(ctx, key, asOf)
	if err != nil {
		return nil, fmt.Errorf("resolve price: %w", err)
	}
	if price == nil {
		c.log.Debug("No price for segment",
			zap.String("itinerary_id", key.ItineraryID.String()),
			zap.String("origin_stop_id", key.OriginStopID.String()),
			zap.String("destination_stop_id", key.DestinationStopID.String()),
			zap.String("class_id", key.ClassID.String()),
			zap.Time("as_of", asOf))
		return nil, ErrPriceNotFound
	}
	return price, nil
}
