package usecase

import (
	"context"
	"fmt"

	"boat-ticketing/internal/data/entity"
	"boat-ticketing/internal/data/repository"
	"boat-ticketing/internal/dto/request"
	"boat-ticketing/internal/dto/response"
	"boat-ticketing/pkg/broker"
	"boat-ticketing/pkg/clock"
	"boat-ticketing/pkg/metrics"
	"boat-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type ParcelService interface {
	CreateParcel(ctx context.Context, req *request.CreateParcelRequest) (*response.ParcelResponse, error)
	UpdateStatus(ctx context.Context, parcelID string, req *request.ParcelStatusRequest) (*response.ParcelResponse, error)
	GetParcel(ctx context.Context, parcelID string) (*response.ParcelResponse, error)
	ListParcels(ctx context.Context, req *request.ParcelListRequest) (*response.PaginatedResponse[response.ParcelResponse], error)
	Manifest(ctx context.Context, tripID string) ([]response.ParcelResponse, error)
}

type parcelService struct {
	repo      *repository.Repository
	publisher broker.Publisher
	clock     clock.Clock
	log       *zap.Logger
}

func NewParcelService(repo *repository.Repository, publisher broker.Publisher, clk clock.Clock, log *zap.Logger) ParcelService {
	return &parcelService{
		repo:      repo,
		publisher: publisher,
		clock:     clk,
		log:       log.With(zap.String("service", "parcel")),
	}
}

func (s *parcelService) CreateParcel(ctx context.Context, req *request.CreateParcelRequest) (*response.ParcelResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	tripID, err := parseID("trip_id", req.TripID)
	if err != nil {
		return nil, err
	}
	sectorID, err := parseOptionalID("sector_id", req.SectorID)
	if err != nil {
		return nil, err
	}
	operatorID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	now := s.clock.Now()
	id := uuid.New()
	parcel := &entity.Parcel{
		BaseNoDelete:   entity.BaseNoDelete{ID: id, CreatedAt: now, UpdatedAt: now},
		Code:           utils.GenerateParcelCode(id, now),
		TripID:         tripID,
		SectorID:       sectorID,
		SenderName:     req.SenderName,
		SenderPhone:    req.SenderPhone,
		RecipientName:  req.RecipientName,
		RecipientPhone: req.RecipientPhone,
		Description:    req.Description,
		WeightKg:       req.WeightKg,
		Value:          req.Value.Round(2),
		PaymentMethod:  entity.PaymentMethod(req.PaymentMethod),
		Status:         entity.ParcelStatusReceived,
		ReceivedBy:     operatorID,
	}

	err = s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		trip, err := s.repo.Trip.FindByIDForShare(ctx, tripID)
		if err != nil {
			return fmt.Errorf("load trip: %w", err)
		}
		if trip == nil {
			return ErrTripNotFound
		}
		if !trip.Status.Sellable() {
			return fmt.Errorf("%w: trip is %s", ErrTripNotOpenForFreight, trip.Status)
		}

		if sectorID != nil {
			sector, err := s.repo.Sector.FindByID(ctx, *sectorID)
			if err != nil {
				return fmt.Errorf("load sector: %w", err)
			}
			if sector == nil {
				return ErrSectorNotFound
			}
			if sector.VesselID != trip.VesselID {
				return ErrSectorNotOnVessel
			}
		}

		if err := s.repo.Parcel.Create(ctx, parcel); err != nil {
			return err
		}
		return s.repo.Transaction.Create(ctx, &entity.FinancialTransaction{
			BaseSimple:    entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			Kind:          entity.TransactionKindFreight,
			Amount:        parcel.Value,
			PaymentMethod: parcel.PaymentMethod,
			ReferenceID:   &parcel.ID,
			TripID:        &parcel.TripID,
			CreatedBy:     &operatorID,
		})
	})
	if err != nil {
		s.log.Warn("Parcel registration failed", zap.String("trip_id", req.TripID), zap.Error(err))
		return nil, err
	}

	metrics.ParcelsReceived.Inc()
	publish(ctx, s.publisher, s.log, broker.EventParcelReceived, ParcelReceivedEvent{
		ParcelID:   parcel.ID.String(),
		Code:       parcel.Code,
		TripID:     parcel.TripID.String(),
		Value:      parcel.Value,
		ReceivedAt: now,
	})
	s.log.Info("Parcel received",
		zap.String("parcel_id", parcel.ID.String()),
		zap.String("code", parcel.Code),
		zap.String("value", parcel.Value.StringFixed(2)))

	resp := response.ParcelToResponse(parcel)
	return &resp, nil
}

func (s *parcelService) UpdateStatus(ctx context.Context, parcelID string, req *request.ParcelStatusRequest) (*response.ParcelResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	id, err := parseID("parcel_id", parcelID)
	if err != nil {
		return nil, err
	}

	parcel, err := s.repo.Parcel.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if parcel == nil {
		return nil, ErrParcelNotFound
	}

	next := entity.ParcelStatus(req.Status)
	if !parcel.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, parcel.Status, next)
	}
	ok, err := s.repo.Parcel.UpdateStatus(ctx, parcel.ID, parcel.Status, next)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: parcel changed concurrently", ErrInvalidTransition)
	}

	from := parcel.Status
	parcel.Status = next
	parcel.UpdatedAt = s.clock.Now()

	publish(ctx, s.publisher, s.log, broker.EventParcelStatusChanged, StatusChangedEvent{
		ID:        parcel.ID.String(),
		Code:      parcel.Code,
		From:      string(from),
		To:        string(next),
		ChangedAt: parcel.UpdatedAt,
	})
	s.log.Info("Parcel status changed",
		zap.String("parcel_id", parcelID),
		zap.String("from", string(from)),
		zap.String("to", string(next)))

	resp := response.ParcelToResponse(parcel)
	return &resp, nil
}

func (s *parcelService) GetParcel(ctx context.Context, parcelID string) (*response.ParcelResponse, error) {
	id, err := parseID("parcel_id", parcelID)
	if err != nil {
		return nil, err
	}
	parcel, err := s.repo.Parcel.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if parcel == nil {
		return nil, ErrParcelNotFound
	}
	resp := response.ParcelToResponse(parcel)
	return &resp, nil
}

func (s *parcelService) ListParcels(ctx context.Context, req *request.ParcelListRequest) (*response.PaginatedResponse[response.ParcelResponse], error) {
	normalizePage(&req.PaginatedRequest)
	if err := validate(req); err != nil {
		return nil, err
	}

	var filter repository.ParcelFilter
	tripID, err := parseOptionalID("trip_id", &req.TripID)
	if err != nil {
		return nil, err
	}
	filter.TripID = tripID
	if req.Status != "" {
		status := entity.ParcelStatus(req.Status)
		filter.Status = &status
	}

	parcels, err := s.repo.Parcel.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Parcel.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := lo.Map(parcels, func(p *entity.Parcel, _ int) response.ParcelResponse {
		return response.ParcelToResponse(p)
	})
	return response.NewPaginatedResponse(data, req.Page, req.PerPage, total), nil
}

func (s *parcelService) Manifest(ctx context.Context, tripID string) ([]response.ParcelResponse, error) {
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

	parcels, err := s.repo.Parcel.FindByTrip(ctx, id)
	if err != nil {
		return nil, err
	}
	return lo.Map(parcels, func(p *entity.Parcel, _ int) response.ParcelResponse {
		return response.ParcelToResponse(p)
	}), nil
}
