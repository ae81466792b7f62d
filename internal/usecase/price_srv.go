package usecase

import (
	"context"
	"errors"
	"fmt"

	"boat-ticketing/internal/data/entity"
	"boat-ticketing/internal/data/repository"
	"boat-ticketing/internal/dto/request"
	"boat-ticketing/internal/dto/response"
	"boat-ticketing/pkg/clock"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type PriceService interface {
	CreatePrice(ctx context.Context, req *request.PriceRequest) (*response.PriceResponse, error)
	UpdatePrice(ctx context.Context, priceID string, req *request.PriceRequest) (*response.PriceResponse, error)
	DeletePrice(ctx context.Context, priceID string) error
	GetPrice(ctx context.Context, priceID string) (*response.PriceResponse, error)
	ListPrices(ctx context.Context, itineraryID, classID string) ([]response.PriceResponse, error)
	// Quote prices a segment of a trip for today without selling it.
	Quote(ctx context.Context, req *request.QuoteRequest) (*response.QuoteResponse, error)
}

type priceService struct {
	repo     *repository.Repository
	catalog  PriceCatalog
	capacity CapacityLedger
	clock    clock.Clock
	log      *zap.Logger
}

func NewPriceService(repo *repository.Repository, catalog PriceCatalog, capacity CapacityLedger, clk clock.Clock, log *zap.Logger) PriceService {
	return &priceService{
		repo:     repo,
		catalog:  catalog,
		capacity: capacity,
		clock:    clk,
		log:      log.With(zap.String("service", "price")),
	}
}

// buildPrice validates the request against the itinerary and fills a price row.
func (s *priceService) buildPrice(ctx context.Context, req *request.PriceRequest, price *entity.SegmentPrice) error {
	if err := validate(req); err != nil {
		return err
	}

	var err error
	if price.ItineraryID, err = parseID("itinerary_id", req.ItineraryID); err != nil {
		return err
	}
	if price.OriginStopID, err = parseID("origin_stop_id", req.OriginStopID); err != nil {
		return err
	}
	if price.DestinationStopID, err = parseID("destination_stop_id", req.DestinationStopID); err != nil {
		return err
	}
	if price.ClassID, err = parseID("class_id", req.ClassID); err != nil {
		return err
	}
	if price.OriginStopID == price.DestinationStopID {
		return invalidField("destination_stop_id", "Must differ from origin_stop_id")
	}

	if price.ValidFrom, err = parseDate("valid_from", req.ValidFrom); err != nil {
		return err
	}
	price.ValidUntil = nil
	if req.ValidUntil != nil && *req.ValidUntil != "" {
		until, err := parseDate("valid_until", *req.ValidUntil)
		if err != nil {
			return err
		}
		if until.Before(price.ValidFrom) {
			return invalidField("valid_until", "Must not be before valid_from")
		}
		price.ValidUntil = &until
	}
	price.Price = req.Price.Round(2)

	for _, stopID := range []uuid.UUID{price.OriginStopID, price.DestinationStopID} {
		stop, err := s.repo.Stop.FindByID(ctx, stopID)
		if err != nil {
			return err
		}
		if stop == nil {
			return fmt.Errorf("%w: %s", ErrStopNotFound, stopID)
		}
		if stop.ItineraryID != price.ItineraryID {
			return fmt.Errorf("%w: %s", ErrStopNotInItinerary, stopID)
		}
	}

	class, err := s.repo.Accommodation.FindByID(ctx, price.ClassID)
	if err != nil {
		return err
	}
	if class == nil {
		return ErrClassNotFound
	}
	return nil
}

// checkOverlap rejects a window sharing a day with another window of the
// same segment key.
func (s *priceService) checkOverlap(ctx context.Context, price *entity.SegmentPrice) error {
	existing, err := s.repo.Price.FindByKey(ctx, price.Key())
	if err != nil {
		return err
	}
	clash, found := lo.Find(existing, func(p *entity.SegmentPrice) bool {
		return p.ID != price.ID && p.Overlaps(price)
	})
	if found {
		return fmt.Errorf("%w: %s from %s", ErrPriceOverlap, clash.ID, clash.ValidFrom.Format(dateLayout))
	}
	return nil
}

func (s *priceService) CreatePrice(ctx context.Context, req *request.PriceRequest) (*response.PriceResponse, error) {
	now := s.clock.Now()
	price := &entity.SegmentPrice{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
	}

	err := s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.buildPrice(ctx, req, price); err != nil {
			return err
		}
		if err := s.checkOverlap(ctx, price); err != nil {
			return err
		}
		return s.repo.Price.Create(ctx, price)
	})
	if err != nil {
		s.log.Warn("Create price failed", zap.Error(err))
		return nil, err
	}

	s.log.Info("Price created",
		zap.String("price_id", price.ID.String()),
		zap.String("price", price.Price.StringFixed(2)),
		zap.Time("valid_from", price.ValidFrom))
	resp := response.PriceToResponse(price)
	return &resp, nil
}

func (s *priceService) UpdatePrice(ctx context.Context, priceID string, req *request.PriceRequest) (*response.PriceResponse, error) {
	id, err := parseID("price_id", priceID)
	if err != nil {
		return nil, err
	}

	var price *entity.SegmentPrice
	err = s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		price, err = s.repo.Price.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if price == nil {
			return ErrPriceRecordNotFound
		}
		if err := s.buildPrice(ctx, req, price); err != nil {
			return err
		}
		if err := s.checkOverlap(ctx, price); err != nil {
			return err
		}
		price.UpdatedAt = s.clock.Now()
		return s.repo.Price.Update(ctx, price)
	})
	if err != nil {
		s.log.Warn("Update price failed", zap.String("price_id", priceID), zap.Error(err))
		return nil, err
	}

	resp := response.PriceToResponse(price)
	return &resp, nil
}

func (s *priceService) DeletePrice(ctx context.Context, priceID string) error {
	id, err := parseID("price_id", priceID)
	if err != nil {
		return err
	}
	if err := s.repo.Price.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPriceRecordNotFound
		}
		return err
	}
	s.log.Info("Price deleted", zap.String("price_id", priceID))
	return nil
}

func (s *priceService) GetPrice(ctx context.Context, priceID string) (*response.PriceResponse, error) {
	id, err := parseID("price_id", priceID)
	if err != nil {
		return nil, err
	}
	price, err := s.repo.Price.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if price == nil {
		return nil, ErrPriceRecordNotFound
	}
	resp := response.PriceToResponse(price)
	return &resp, nil
}

func (s *priceService) ListPrices(ctx context.Context, itineraryID, classID string) ([]response.PriceResponse, error) {
	var filter repository.PriceFilter
	var err error
	if filter.ItineraryID, err = parseOptionalID("itinerary_id", &itineraryID); err != nil {
		return nil, err
	}
	if filter.ClassID, err = parseOptionalID("class_id", &classID); err != nil {
		return nil, err
	}

	prices, err := s.repo.Price.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return lo.Map(prices, func(p *entity.SegmentPrice, _ int) response.PriceResponse {
		return response.PriceToResponse(p)
	}), nil
}

func (s *priceService) Quote(ctx context.Context, req *request.QuoteRequest) (*response.QuoteResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	tripID, err := parseID("trip_id", req.TripID)
	if err != nil {
		return nil, err
	}
	classID, err := parseID("class_id", req.ClassID)
	if err != nil {
		return nil, err
	}
	boardingID, err := parseID("boarding_stop_id", req.BoardingStopID)
	if err != nil {
		return nil, err
	}
	alightingID, err := parseID("alighting_stop_id", req.AlightingStopID)
	if err != nil {
		return nil, err
	}
	if boardingID == alightingID {
		return nil, ErrSameStops
	}

	trip, err := s.repo.Trip.FindByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}

	price, err := s.catalog.ResolvePrice(ctx, entity.SegmentKey{
		ItineraryID:       trip.ItineraryID,
		OriginStopID:      boardingID,
		DestinationStopID: alightingID,
		ClassID:           classID,
	}, s.clock.Now())
	if err != nil {
		return nil, err
	}

	a, err := s.capacity.CheckAvailability(ctx, trip.ID, trip.VesselID, classID)
	if err != nil {
		return nil, err
	}

	return &response.QuoteResponse{
		PriceID: price.ID.String(),
		Price:   price.Price,
		Availability: response.AvailabilityResponse{
			TripID:    trip.ID.String(),
			ClassID:   classID.String(),
			Available: a.Available,
			Remaining: a.Remaining,
			Total:     a.Total,
			Occupied:  a.Occupied,
		},
	}, nil
}
