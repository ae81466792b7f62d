package usecase

import (
	"context"
	"fmt"

	"boat-ticketing/internal/data/entity"
	"boat-ticketing/internal/data/repository"
	"boat-ticketing/internal/dto/request"
	"boat-ticketing/internal/dto/response"
	"boat-ticketing/pkg/clock"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TripService interface {
	CreateTrip(ctx context.Context, req *request.TripRequest) (*response.TripResponse, error)
	UpdateTrip(ctx context.Context, tripID string, req *request.TripRequest) (*response.TripResponse, error)
	ChangeStatus(ctx context.Context, tripID string, req *request.TripStatusRequest) (*response.TripResponse, error)
	GetTrip(ctx context.Context, tripID string) (*response.TripResponse, error)
	ListTrips(ctx context.Context, req *request.TripListRequest) (*response.PaginatedResponse[response.TripResponse], error)
	Availability(ctx context.Context, tripID, classID string) (*response.AvailabilityResponse, error)
}

type tripService struct {
	repo     *repository.Repository
	capacity CapacityLedger
	clock    clock.Clock
	log      *zap.Logger
}

func NewTripService(repo *repository.Repository, capacity CapacityLedger, clk clock.Clock, log *zap.Logger) TripService {
	return &tripService{
		repo:     repo,
		capacity: capacity,
		clock:    clk,
		log:      log.With(zap.String("service", "trip")),
	}
}

// resolveRefs checks that the itinerary and vessel exist and are active.
func (s *tripService) resolveRefs(ctx context.Context, req *request.TripRequest) (uuid.UUID, uuid.UUID, error) {
	itineraryID, err := parseID("itinerary_id", req.ItineraryID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	vesselID, err := parseID("vessel_id", req.VesselID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	itinerary, err := s.repo.Itinerary.FindByID(ctx, itineraryID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if itinerary == nil {
		return uuid.Nil, uuid.Nil, ErrItineraryNotFound
	}
	if !itinerary.IsActive {
		return uuid.Nil, uuid.Nil, invalidField("itinerary_id", "Itinerary is inactive")
	}

	vessel, err := s.repo.Vessel.FindByID(ctx, vesselID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if vessel == nil {
		return uuid.Nil, uuid.Nil, ErrVesselNotFound
	}
	if !vessel.IsActive {
		return uuid.Nil, uuid.Nil, invalidField("vessel_id", "Vessel is inactive")
	}

	return itineraryID, vesselID, nil
}

func (s *tripService) CreateTrip(ctx context.Context, req *request.TripRequest) (*response.TripResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	itineraryID, vesselID, err := s.resolveRefs(ctx, req)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	trip := &entity.Trip{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		ItineraryID:  itineraryID,
		VesselID:     vesselID,
		DepartureAt:  req.DepartureAt.UTC(),
		Status:       entity.TripStatusScheduled,
		Notes:        req.Notes,
	}
	if err := s.repo.Trip.Create(ctx, trip); err != nil {
		return nil, err
	}

	s.log.Info("Trip scheduled",
		zap.String("trip_id", trip.ID.String()),
		zap.String("itinerary_id", itineraryID.String()),
		zap.Time("departure_at", trip.DepartureAt))
	resp := response.TripToResponse(trip)
	return &resp, nil
}

func (s *tripService) UpdateTrip(ctx context.Context, tripID string, req *request.TripRequest) (*response.TripResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	id, err := parseID("trip_id", tripID)
	if err != nil {
		return nil, err
	}

	trip, err := s.repo.Trip.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}
	if trip.Status.Terminal() {
		return nil, fmt.Errorf("%w: trip is %s", ErrInvalidTransition, trip.Status)
	}

	itineraryID, vesselID, err := s.resolveRefs(ctx, req)
	if err != nil {
		return nil, err
	}

	trip.ItineraryID = itineraryID
	trip.VesselID = vesselID
	trip.DepartureAt = req.DepartureAt.UTC()
	trip.Notes = req.Notes
	trip.UpdatedAt = s.clock.Now()
	if err := s.repo.Trip.Update(ctx, trip); err != nil {
		return nil, err
	}

	resp := response.TripToResponse(trip)
	return &resp, nil
}

// ChangeStatus moves a trip forward along its lifecycle or cancels it.
func (s *tripService) ChangeStatus(ctx context.Context, tripID string, req *request.TripStatusRequest) (*response.TripResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	next := entity.TripStatus(req.Status)
	if !next.Valid() {
		return nil, invalidField("status", "Must be one of: scheduled, boarding, underway, completed, cancelled")
	}
	id, err := parseID("trip_id", tripID)
	if err != nil {
		return nil, err
	}

	trip, err := s.repo.Trip.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}
	if !trip.Status.CanTransitionTo(next) {
		s.log.Warn("Trip transition refused",
			zap.String("trip_id", tripID),
			zap.String("from", string(trip.Status)),
			zap.String("to", string(next)))
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, trip.Status, next)
	}

	ok, err := s.repo.Trip.UpdateStatus(ctx, id, trip.Status, next)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: trip changed concurrently", ErrInvalidTransition)
	}

	s.log.Info("Trip status changed",
		zap.String("trip_id", tripID),
		zap.String("from", string(trip.Status)),
		zap.String("to", string(next)))

	trip.Status = next
	trip.UpdatedAt = s.clock.Now()
	resp := response.TripToResponse(trip)
	return &resp, nil
}

func (s *tripService) GetTrip(ctx context.Context, tripID string) (*response.TripResponse, error) {
	id, err := parseID("trip_id", tripID)
	if err != nil {
		return nil, err
	}
	trip, err := s.repo.Trip.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}
	resp := response.TripToResponse(trip)
	return &resp, nil
}

func (s *tripService) ListTrips(ctx context.Context, req *request.TripListRequest) (*response.PaginatedResponse[response.TripResponse], error) {
	normalizePage(&req.PaginatedRequest)
	if err := validate(req); err != nil {
		return nil, err
	}

	var filter repository.TripFilter
	if req.Status != "" {
		status := entity.TripStatus(req.Status)
		filter.Status = &status
	}
	itineraryID, err := parseOptionalID("itinerary_id", &req.ItineraryID)
	if err != nil {
		return nil, err
	}
	filter.ItineraryID = itineraryID
	if filter.From, err = parseOptionalDate("from", req.From); err != nil {
		return nil, err
	}
	to, err := parseOptionalDate("to", req.To)
	if err != nil {
		return nil, err
	}
	if to != nil {
		// the "to" day is inclusive
		end := to.AddDate(0, 0, 1)
		filter.To = &end
	}

	trips, err := s.repo.Trip.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Trip.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := make([]response.TripResponse, 0, len(trips))
	for _, t := range trips {
		data = append(data, response.TripToResponse(t))
	}
	return response.NewPaginatedResponse(data, req.Page, req.PerPage, total), nil
}

func (s *tripService) Availability(ctx context.Context, tripID, classID string) (*response.AvailabilityResponse, error) {
	tID, err := parseID("trip_id", tripID)
	if err != nil {
		return nil, err
	}
	cID, err := parseID("class_id", classID)
	if err != nil {
		return nil, err
	}

	trip, err := s.repo.Trip.FindByID(ctx, tID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}

	a, err := s.capacity.CheckAvailability(ctx, trip.ID, trip.VesselID, cID)
	if err != nil {
		return nil, err
	}
	return &response.AvailabilityResponse{
		TripID:    tripID,
		ClassID:   classID,
		Available: a.Available,
		Remaining: a.Remaining,
		Total:     a.Total,
		Occupied:  a.Occupied,
	}, nil
}
