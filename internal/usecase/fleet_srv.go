package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"boat-ticketing/internal/data/entity"
	"boat-ticketing/internal/data/repository"
	"boat-ticketing/internal/dto/request"
	"boat-ticketing/internal/dto/response"
	"boat-ticketing/pkg/clock"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type FleetService interface {
	CreateClass(ctx context.Context, req *request.AccommodationClassRequest) (*response.AccommodationClassResponse, error)
	UpdateClass(ctx context.Context, classID string, req *request.AccommodationClassRequest) (*response.AccommodationClassResponse, error)
	DeleteClass(ctx context.Context, classID string) error
	ListClasses(ctx context.Context) ([]response.AccommodationClassResponse, error)

	CreateVessel(ctx context.Context, req *request.VesselRequest) (*response.VesselResponse, error)
	UpdateVessel(ctx context.Context, vesselID string, req *request.VesselRequest) (*response.VesselResponse, error)
	SetVesselActive(ctx context.Context, vesselID string, active bool) error
	GetVessel(ctx context.Context, vesselID string) (*response.VesselResponse, error)
	ListVessels(ctx context.Context, activeOnly bool) ([]response.VesselResponse, error)

	UpsertAllocation(ctx context.Context, vesselID string, req *request.AllocationRequest) (*response.AllocationResponse, error)
	DeleteAllocation(ctx context.Context, vesselID, classID string) error

	CreateSector(ctx context.Context, vesselID string, req *request.SectorRequest) (*response.SectorResponse, error)
	UpdateSector(ctx context.Context, sectorID string, req *request.SectorRequest) (*response.SectorResponse, error)
	DeleteSector(ctx context.Context, sectorID string) error
	ListSectors(ctx context.Context, vesselID string) ([]response.SectorResponse, error)
}

type fleetService struct {
	repo  *repository.Repository
	clock clock.Clock
	log   *zap.Logger
}

func NewFleetService(repo *repository.Repository, clk clock.Clock, log *zap.Logger) FleetService {
	return &fleetService{
		repo:  repo,
		clock: clk,
		log:   log.With(zap.String("service", "fleet")),
	}
}

// ==================== ACCOMMODATION CLASSES ====================

func (s *fleetService) CreateClass(ctx context.Context, req *request.AccommodationClassRequest) (*response.AccommodationClassResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	class := &entity.AccommodationClass{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         req.Name,
		Description:  req.Description,
	}
	if err := s.repo.Accommodation.Create(ctx, class); err != nil {
		return nil, translateStoreErr(err, ErrDuplicate)
	}

	s.log.Info("Accommodation class created", zap.String("class_id", class.ID.String()), zap.String("name", class.Name))
	resp := response.ClassToResponse(class)
	return &resp, nil
}

func (s *fleetService) UpdateClass(ctx context.Context, classID string, req *request.AccommodationClassRequest) (*response.AccommodationClassResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	id, err := parseID("class_id", classID)
	if err != nil {
		return nil, err
	}

	class, err := s.repo.Accommodation.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, ErrClassNotFound
	}

	class.Name = req.Name
	class.Description = req.Description
	class.UpdatedAt = s.clock.Now()
	if err := s.repo.Accommodation.Update(ctx, class); err != nil {
		return nil, translateStoreErr(err, ErrDuplicate)
	}

	resp := response.ClassToResponse(class)
	return &resp, nil
}

// DeleteClass removes a class nothing refers to yet.
func (s *fleetService) DeleteClass(ctx context.Context, classID string) error {
	id, err := parseID("class_id", classID)
	if err != nil {
		return err
	}

	if err := s.repo.Accommodation.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClassNotFound
		}
		return translateStoreErr(err, nil)
	}

	s.log.Info("Accommodation class deleted", zap.String("class_id", classID))
	return nil
}

func (s *fleetService) ListClasses(ctx context.Context) ([]response.AccommodationClassResponse, error) {
	classes, err := s.repo.Accommodation.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(classes, func(c *entity.AccommodationClass, _ int) response.AccommodationClassResponse {
		return response.ClassToResponse(c)
	}), nil
}

// ==================== VESSELS ====================

// buildLayout turns the submitted accommodation list into allocation rows and,
// when numbering is on, seats "1".."quantity" per class.
func (s *fleetService) buildLayout(ctx context.Context, vessel *entity.Vessel, items []request.AllocationItem) ([]*entity.CapacityAllocation, []*entity.Seat, error) {
	classIDs := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		id, err := parseID("class_id", item.ClassID)
		if err != nil {
			return nil, nil, err
		}
		classIDs = append(classIDs, id)
	}
	if dups := lo.FindDuplicates(classIDs); len(dups) > 0 {
		return nil, nil, invalidField("accommodations", "Each class may appear only once")
	}

	now := s.clock.Now()
	allocations := make([]*entity.CapacityAllocation, 0, len(items))
	var seats []*entity.Seat
	for i, item := range items {
		class, err := s.repo.Accommodation.FindByID(ctx, classIDs[i])
		if err != nil {
			return nil, nil, err
		}
		if class == nil {
			return nil, nil, fmt.Errorf("%w: %s", ErrClassNotFound, classIDs[i])
		}

		allocations = append(allocations, &entity.CapacityAllocation{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			VesselID:   vessel.ID,
			ClassID:    class.ID,
			Quantity:   item.Quantity,
		})

		if !vessel.SeatNumbering {
			continue
		}
		for n := 1; n <= item.Quantity; n++ {
			seats = append(seats, &entity.Seat{
				BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
				VesselID:   vessel.ID,
				ClassID:    class.ID,
				Number:     strconv.Itoa(n),
			})
		}
	}

	return allocations, seats, nil
}

func declaredCapacity(req *request.VesselRequest) int {
	if len(req.Accommodations) == 0 {
		return req.Capacity
	}
	return lo.SumBy(req.Accommodations, func(a request.AllocationItem) int { return a.Quantity })
}

func (s *fleetService) CreateVessel(ctx context.Context, req *request.VesselRequest) (*response.VesselResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	vessel := &entity.Vessel{
		BaseNoDelete:  entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:          req.Name,
		Type:          entity.VesselType(req.Type),
		Capacity:      declaredCapacity(req),
		SeatNumbering: req.SeatNumbering,
		IsActive:      true,
	}

	var (
		allocations []*entity.CapacityAllocation
		seats       []*entity.Seat
	)
	err := s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		allocations, seats, err = s.buildLayout(ctx, vessel, req.Accommodations)
		if err != nil {
			return err
		}
		if err := s.repo.Vessel.Create(ctx, vessel); err != nil {
			return translateStoreErr(err, ErrDuplicate)
		}
		if err := s.repo.Capacity.ReplaceAllocations(ctx, vessel.ID, allocations); err != nil {
			return err
		}
		return s.repo.Capacity.ReplaceSeats(ctx, vessel.ID, seats)
	})
	if err != nil {
		s.log.Warn("Create vessel failed", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	s.log.Info("Vessel created",
		zap.String("vessel_id", vessel.ID.String()),
		zap.Int("capacity", vessel.Capacity),
		zap.Int("seats", len(seats)))
	resp := response.VesselToResponse(vessel, allocations, len(seats))
	return &resp, nil
}

// UpdateVessel regenerates allocations and seats from the submitted layout in
// one transaction.
func (s *fleetService) UpdateVessel(ctx context.Context, vesselID string, req *request.VesselRequest) (*response.VesselResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	id, err := parseID("vessel_id", vesselID)
	if err != nil {
		return nil, err
	}

	var (
		vessel      *entity.Vessel
		allocations []*entity.CapacityAllocation
		seats       []*entity.Seat
	)
	err = s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		vessel, err = s.repo.Vessel.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if vessel == nil {
			return ErrVesselNotFound
		}

		vessel.Name = req.Name
		vessel.Type = entity.VesselType(req.Type)
		vessel.Capacity = declaredCapacity(req)
		vessel.SeatNumbering = req.SeatNumbering
		vessel.UpdatedAt = s.clock.Now()

		allocations, seats, err = s.buildLayout(ctx, vessel, req.Accommodations)
		if err != nil {
			return err
		}
		if err := s.repo.Vessel.Update(ctx, vessel); err != nil {
			return translateStoreErr(err, ErrDuplicate)
		}
		if err := s.repo.Capacity.ReplaceAllocations(ctx, vessel.ID, allocations); err != nil {
			return err
		}
		return s.repo.Capacity.ReplaceSeats(ctx, vessel.ID, seats)
	})
	if err != nil {
		s.log.Warn("Update vessel failed", zap.String("vessel_id", vesselID), zap.Error(err))
		return nil, err
	}

	s.log.Info("Vessel updated", zap.String("vessel_id", vesselID), zap.Int("capacity", vessel.Capacity))
	resp := response.VesselToResponse(vessel, allocations, len(seats))
	return &resp, nil
}

func (s *fleetService) SetVesselActive(ctx context.Context, vesselID string, active bool) error {
	id, err := parseID("vessel_id", vesselID)
	if err != nil {
		return err
	}
	if err := s.repo.Vessel.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrVesselNotFound
		}
		return err
	}
	s.log.Info("Vessel toggled", zap.String("vessel_id", vesselID), zap.Bool("active", active))
	return nil
}

func (s *fleetService) vesselResponse(ctx context.Context, vessel *entity.Vessel) (response.VesselResponse, error) {
	allocations, err := s.repo.Capacity.FindAllocationsByVessel(ctx, vessel.ID)
	if err != nil {
		return response.VesselResponse{}, err
	}
	seats, err := s.repo.Capacity.FindSeatsByVessel(ctx, vessel.ID)
	if err != nil {
		return response.VesselResponse{}, err
	}
	return response.VesselToResponse(vessel, allocations, len(seats)), nil
}

func (s *fleetService) GetVessel(ctx context.Context, vesselID string) (*response.VesselResponse, error) {
	id, err := parseID("vessel_id", vesselID)
	if err != nil {
		return nil, err
	}
	vessel, err := s.repo.Vessel.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vessel == nil {
		return nil, ErrVesselNotFound
	}

	resp, err := s.vesselResponse(ctx, vessel)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *fleetService) ListVessels(ctx context.Context, activeOnly bool) ([]response.VesselResponse, error) {
	vessels, err := s.repo.Vessel.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	result := make([]response.VesselResponse, 0, len(vessels))
	for _, v := range vessels {
		resp, err := s.vesselResponse(ctx, v)
		if err != nil {
			return nil, err
		}
		result = append(result, resp)
	}
	return result, nil
}

// ==================== ALLOCATIONS ====================

func (s *fleetService) UpsertAllocation(ctx context.Context, vesselID string, req *request.AllocationRequest) (*response.AllocationResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	vID, err := parseID("vessel_id", vesselID)
	if err != nil {
		return nil, err
	}
	cID, err := parseID("class_id", req.ClassID)
	if err != nil {
		return nil, err
	}

	vessel, err := s.repo.Vessel.FindByID(ctx, vID)
	if err != nil {
		return nil, err
	}
	if vessel == nil {
		return nil, ErrVesselNotFound
	}
	class, err := s.repo.Accommodation.FindByID(ctx, cID)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, ErrClassNotFound
	}

	allocation := &entity.CapacityAllocation{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: s.clock.Now()},
		VesselID:   vID,
		ClassID:    cID,
		Quantity:   req.Quantity,
	}
	if err := s.repo.Capacity.UpsertAllocation(ctx, allocation); err != nil {
		return nil, err
	}

	s.log.Info("Allocation set",
		zap.String("vessel_id", vesselID),
		zap.String("class_id", req.ClassID),
		zap.Int("quantity", req.Quantity))
	return &response.AllocationResponse{ClassID: cID.String(), Quantity: allocation.Quantity}, nil
}

func (s *fleetService) DeleteAllocation(ctx context.Context, vesselID, classID string) error {
	vID, err := parseID("vessel_id", vesselID)
	if err != nil {
		return err
	}
	cID, err := parseID("class_id", classID)
	if err != nil {
		return err
	}
	if err := s.repo.Capacity.DeleteAllocation(ctx, vID, cID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAllocationNotFound
		}
		return err
	}
	return nil
}

// ==================== SECTORS ====================

func (s *fleetService) CreateSector(ctx context.Context, vesselID string, req *request.SectorRequest) (*response.SectorResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	vID, err := parseID("vessel_id", vesselID)
	if err != nil {
		return nil, err
	}

	vessel, err := s.repo.Vessel.FindByID(ctx, vID)
	if err != nil {
		return nil, err
	}
	if vessel == nil {
		return nil, ErrVesselNotFound
	}

	sector := &entity.VesselSector{
		BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: s.clock.Now()},
		VesselID:    vID,
		Name:        req.Name,
		Description: req.Description,
		CapacityKg:  req.CapacityKg,
	}
	if err := s.repo.Sector.Create(ctx, sector); err != nil {
		return nil, translateStoreErr(err, ErrDuplicate)
	}

	resp := response.SectorToResponse(sector)
	return &resp, nil
}

func (s *fleetService) UpdateSector(ctx context.Context, sectorID string, req *request.SectorRequest) (*response.SectorResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	id, err := parseID("sector_id", sectorID)
	if err != nil {
		return nil, err
	}

	sector, err := s.repo.Sector.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sector == nil {
		return nil, ErrSectorNotFound
	}

	sector.Name = req.Name
	sector.Description = req.Description
	sector.CapacityKg = req.CapacityKg
	if err := s.repo.Sector.Update(ctx, sector); err != nil {
		return nil, translateStoreErr(err, ErrDuplicate)
	}

	resp := response.SectorToResponse(sector)
	return &resp, nil
}

func (s *fleetService) DeleteSector(ctx context.Context, sectorID string) error {
	id, err := parseID("sector_id", sectorID)
	if err != nil {
		return err
	}
	if err := s.repo.Sector.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSectorNotFound
		}
		return translateStoreErr(err, nil)
	}
	return nil
}

func (s *fleetService) ListSectors(ctx context.Context, vesselID string) ([]response.SectorResponse, error) {
	vID, err := parseID("vessel_id", vesselID)
	if err != nil {
		return nil, err
	}
	sectors, err := s.repo.Sector.FindByVessel(ctx, vID)
	if err != nil {
		return nil, err
	}
	return lo.Map(sectors, func(sec *entity.VesselSector, _ int) response.SectorResponse {
		return response.SectorToResponse(sec)
	}), nil
}
