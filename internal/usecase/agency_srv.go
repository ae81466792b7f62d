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

type AgencyService interface {
	CreateAgency(ctx context.Context, req *request.AgencyRequest) (*response.AgencyResponse, error)
	UpdateAgency(ctx context.Context, agencyID string, req *request.AgencyRequest) (*response.AgencyResponse, error)
	SetAgencyActive(ctx context.Context, agencyID string, active bool) error
	GetAgency(ctx context.Context, agencyID string) (*response.AgencyResponse, error)
	ListAgencies(ctx context.Context, activeOnly bool) ([]response.AgencyResponse, error)
}

type agencyService struct {
	agencies repository.AgencyRepository
	clock    clock.Clock
	log      *zap.Logger
}

func NewAgencyService(agencies repository.AgencyRepository, clk clock.Clock, log *zap.Logger) AgencyService {
	return &agencyService{
		agencies: agencies,
		clock:    clk,
		log:      log.With(zap.String("service", "agency")),
	}
}

func (s *agencyService) CreateAgency(ctx context.Context, req *request.AgencyRequest) (*response.AgencyResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	agency := &entity.Agency{
		BaseNoDelete:         entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:                 req.Name,
		Document:             req.Document,
		Phone:                req.Phone,
		CommissionPercentage: req.CommissionPercentage.Round(2),
		IsActive:             true,
	}
	if err := s.agencies.Create(ctx, agency); err != nil {
		s.log.Warn("Create agency failed", zap.String("name", req.Name), zap.Error(err))
		return nil, translateStoreErr(err, ErrDuplicate)
	}

	s.log.Info("Agency created",
		zap.String("agency_id", agency.ID.String()),
		zap.String("commission_percentage", agency.CommissionPercentage.String()))
	resp := response.AgencyToResponse(agency)
	return &resp, nil
}

func (s *agencyService) UpdateAgency(ctx context.Context, agencyID string, req *request.AgencyRequest) (*response.AgencyResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	id, err := parseID("agency_id", agencyID)
	if err != nil {
		return nil, err
	}

	agency, err := s.agencies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if agency == nil {
		return nil, ErrAgencyNotFound
	}

	agency.Name = req.Name
	agency.Document = req.Document
	agency.Phone = req.Phone
	agency.CommissionPercentage = req.CommissionPercentage.Round(2)
	agency.UpdatedAt = s.clock.Now()

	if err := s.agencies.Update(ctx, agency); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAgencyNotFound
		}
		return nil, translateStoreErr(err, ErrDuplicate)
	}

	s.log.Info("Agency updated", zap.String("agency_id", agencyID))
	resp := response.AgencyToResponse(agency)
	return &resp, nil
}

func (s *agencyService) SetAgencyActive(ctx context.Context, agencyID string, active bool) error {
	id, err := parseID("agency_id", agencyID)
	if err != nil {
		return err
	}
	if err := s.agencies.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAgencyNotFound
		}
		return err
	}
	s.log.Info("Agency toggled", zap.String("agency_id", agencyID), zap.Bool("active", active))
	return nil
}

func (s *agencyService) GetAgency(ctx context.Context, agencyID string) (*response.AgencyResponse, error) {
	id, err := parseID("agency_id", agencyID)
	if err != nil {
		return nil, err
	}
	agency, err := s.agencies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if agency == nil {
		return nil, ErrAgencyNotFound
	}
	resp := response.AgencyToResponse(agency)
	return &resp, nil
}

func (s *agencyService) ListAgencies(ctx context.Context, activeOnly bool) ([]response.AgencyResponse, error) {
	agencies, err := s.agencies.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	return lo.Map(agencies, func(a *entity.Agency, _ int) response.AgencyResponse {
		return response.AgencyToResponse(a)
	}), nil
}
