package usecase

import (
	"context"
	"errors"

	"boat-ticketing/internal/data/entity"
	"boat-ticketing/internal/data/repository"
	"boat-ticketing/internal/dto/request"
	"boat-ticketing/internal/dto/response"
	"boat-ticketing/pkg/clock"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type ItineraryService interface {
	CreateItinerary(ctx context.Context, req *request.CreateItineraryRequest) (*response.ItineraryResponse, error)
	UpdateItinerary(ctx context.Context, itineraryID string, req *request.UpdateItineraryRequest) (*response.ItineraryResponse, error)
	SetItineraryActive(ctx context.Context, itineraryID string, active bool) error
	GetItinerary(ctx context.Context, itineraryID string) (*response.ItineraryResponse, error)
	ListItineraries(ctx context.Context, activeOnly bool) ([]response.ItineraryResponse, error)

	AddStop(ctx context.Context, itineraryID string, req *request.StopRequest) (*response.StopResponse, error)
	UpdateStop(ctx context.Context, stopID string, req *request.StopRequest) (*response.StopResponse, error)
	DeleteStop(ctx context.Context, stopID string) error
	MoveStop(ctx context.Context, itineraryID, stopID string, req *request.MoveStopRequest) ([]response.StopResponse, error)
}

type itineraryService struct {
	repo  *repository.Repository
	clock clock.Clock
	log   *zap.Logger
}

func NewItineraryService(repo *repository.Repository, clk clock.Clock, log *zap.Logger) ItineraryService {
	return &itineraryService{
		repo:  repo,
		clock: clk,
		log:   log.With(zap.String("service", "itinerary")),
	}
}

// CreateItinerary stores the route with its origin as stop 1 and its
// destination as stop 2.
func (s *itineraryService) CreateItinerary(ctx context.Context, req *request.CreateItineraryRequest) (*response.ItineraryResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	itinerary := &entity.Itinerary{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         req.Name,
		Description:  req.Description,
		IsActive:     true,
	}
	stops := []*entity.Stop{
		{
			BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			ItineraryID: itinerary.ID,
			Name:        req.Origin,
			Order:       1,
		},
		{
			BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			ItineraryID: itinerary.ID,
			Name:        req.Destination,
			Order:       2,
		},
	}

	err := s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Itinerary.Create(ctx, itinerary); err != nil {
			return translateStoreErr(err, ErrDuplicate)
		}
		for _, stop := range stops {
			if err := s.repo.Stop.Create(ctx, stop); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.Warn("Create itinerary failed", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	s.log.Info("Itinerary created", zap.String("itinerary_id", itinerary.ID.String()), zap.String("name", itinerary.Name))
	resp := response.ItineraryToResponse(itinerary, stops)
	return &resp, nil
}

func (s *itineraryService) UpdateItinerary(ctx context.Context, itineraryID string, req *request.UpdateItineraryRequest) (*response.ItineraryResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	id, err := parseID("itinerary_id", itineraryID)
	if err != nil {
		return nil, err
	}

	itinerary, err := s.repo.Itinerary.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if itinerary == nil {
		return nil, ErrItineraryNotFound
	}

	itinerary.Name = req.Name
	itinerary.Description = req.Description
	itinerary.UpdatedAt = s.clock.Now()
	if err := s.repo.Itinerary.Update(ctx, itinerary); err != nil {
		return nil, translateStoreErr(err, ErrDuplicate)
	}

	stops, err := s.repo.Stop.FindByItinerary(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.ItineraryToResponse(itinerary, stops)
	return &resp, nil
}

func (s *itineraryService) SetItineraryActive(ctx context.Context, itineraryID string, active bool) error {
	id, err := parseID("itinerary_id", itineraryID)
	if err != nil {
		return err
	}
	if err := s.repo.Itinerary.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrItineraryNotFound
		}
		return err
	}
	return nil
}

func (s *itineraryService) GetItinerary(ctx context.Context, itineraryID string) (*response.ItineraryResponse, error) {
	id, err := parseID("itinerary_id", itineraryID)
	if err != nil {
		return nil, err
	}

	itinerary, err := s.repo.Itinerary.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if itinerary == nil {
		return nil, ErrItineraryNotFound
	}

	stops, err := s.repo.Stop.FindByItinerary(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := response.ItineraryToResponse(itinerary, stops)
	return &resp, nil
}

func (s *itineraryService) ListItineraries(ctx context.Context, activeOnly bool) ([]response.ItineraryResponse, error) {
	itineraries, err := s.repo.Itinerary.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	return lo.Map(itineraries, func(i *entity.Itinerary, _ int) response.ItineraryResponse {
		return response.ItineraryToResponse(i, nil)
	}), nil
}

// AddStop appends a stop after the current last one.
func (s *itineraryService) AddStop(ctx context.Context, itineraryID string, req *request.StopRequest) (*response.StopResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	id, err := parseID("itinerary_id", itineraryID)
	if err != nil {
		return nil, err
	}

	stop := &entity.Stop{
		BaseSimple:   entity.BaseSimple{ID: uuid.New(), CreatedAt: s.clock.Now()},
		ItineraryID:  id,
		Name:         req.Name,
		DwellMinutes: req.DwellMinutes,
	}

	err = s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		itinerary, err := s.repo.Itinerary.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if itinerary == nil {
			return ErrItineraryNotFound
		}

		last, err := s.repo.Stop.MaxOrder(ctx, id)
		if err != nil {
			return err
		}
		stop.Order = last + 1
		return s.repo.Stop.Create(ctx, stop)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Stop added", zap.String("itinerary_id", itineraryID), zap.Int("order", stop.Order))
	resp := response.StopToResponse(stop)
	return &resp, nil
}

func (s *itineraryService) UpdateStop(ctx context.Context, stopID string, req *request.StopRequest) (*response.StopResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	id, err := parseID("stop_id", stopID)
	if err != nil {
		return nil, err
	}

	stop, err := s.repo.Stop.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stop == nil {
		return nil, ErrStopNotFound
	}

	stop.Name = req.Name
	stop.DwellMinutes = req.DwellMinutes
	if err := s.repo.Stop.Update(ctx, stop); err != nil {
		return nil, err
	}

	resp := response.StopToResponse(stop)
	return &resp, nil
}

// DeleteStop fails with ErrInUse while prices or tickets refer to the stop.
func (s *itineraryService) DeleteStop(ctx context.Context, stopID string) error {
	id, err := parseID("stop_id", stopID)
	if err != nil {
		return err
	}
	if err := s.repo.Stop.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrStopNotFound
		}
		return translateStoreErr(err, nil)
	}
	return nil
}

// MoveStop swaps a stop with its neighbour. The stop is parked on the
// sentinel order first so (itinerary, order) stays unique after every write.
func (s *itineraryService) MoveStop(ctx context.Context, itineraryID, stopID string, req *request.MoveStopRequest) ([]response.StopResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	itID, err := parseID("itinerary_id", itineraryID)
	if err != nil {
		return nil, err
	}
	stID, err := parseID("stop_id", stopID)
	if err != nil {
		return nil, err
	}

	var stops []*entity.Stop
	err = s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		stops, err = s.repo.Stop.FindByItinerary(ctx, itID)
		if err != nil {
			return err
		}

		_, idx, found := lo.FindIndexOf(stops, func(st *entity.Stop) bool { return st.ID == stID })
		if !found {
			return ErrStopNotFound
		}

		neighbour := idx - 1
		if req.Direction == "down" {
			neighbour = idx + 1
		}
		if neighbour < 0 || neighbour >= len(stops) {
			return ErrCannotMove
		}

		a, b := stops[idx], stops[neighbour]
		aOrder, bOrder := a.Order, b.Order

		if err := s.repo.Stop.SetOrder(ctx, a.ID, entity.StopOrderSentinel); err != nil {
			return err
		}
		if err := s.repo.Stop.SetOrder(ctx, b.ID, aOrder); err != nil {
			return err
		}
		if err := s.repo.Stop.SetOrder(ctx, a.ID, bOrder); err != nil {
			return err
		}

		a.Order, b.Order = bOrder, aOrder
		stops[idx], stops[neighbour] = b, a
		return nil
	})
	if err != nil {
		s.log.Warn("Move stop failed", zap.String("stop_id", stopID), zap.Error(err))
		return nil, err
	}

	s.log.Info("Stop moved", zap.String("stop_id", stopID), zap.String("direction", req.Direction))
	return lo.Map(stops, func(st *entity.Stop, _ int) response.StopResponse {
		return response.StopToResponse(st)
	}), nil
}
