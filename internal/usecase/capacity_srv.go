package usecase

import (
	"context"
	"fmt"

	"boat-ticketing/internal/data/entity"
	"boat-ticketing/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Unbounded marks Remaining and Total for classes without an allocation.
const Unbounded = -1

type Availability struct {
	Available bool
	Remaining int
	Total     int
	Occupied  int
}

// CapacityLedger reports how many berths of a class are left on a trip.
type CapacityLedger interface {
	CheckAvailability(ctx context.Context, tripID, vesselID, classID uuid.UUID) (Availability, error)
	// CheckAndHold is CheckAvailability with the allocation row locked until
	// the surrounding transaction ends. It must run inside Tx.WithTx.
	CheckAndHold(ctx context.Context, tripID, vesselID, classID uuid.UUID) (Availability, error)
}

type capacityLedger struct {
	capacity repository.CapacityRepository
	tickets  repository.TicketRepository
	log      *zap.Logger
}

func NewCapacityLedger(capacity repository.CapacityRepository, tickets repository.TicketRepository, log *zap.Logger) CapacityLedger {
	return &capacityLedger{
		capacity: capacity,
		tickets:  tickets,
		log:      log.With(zap.String("service", "capacity_ledger")),
	}
}

func (l *capacityLedger) CheckAvailability(ctx context.Context, tripID, vesselID, classID uuid.UUID) (Availability, error) {
	allocation, err := l.capacity.FindAllocation(ctx, vesselID, classID)
	if err != nil {
		return Availability{}, fmt.Errorf("load allocation: %w", err)
	}
	return l.availability(ctx, tripID, classID, allocation)
}

func (l *capacityLedger) CheckAndHold(ctx context.Context, tripID, vesselID, classID uuid.UUID) (Availability, error) {
	allocation, err := l.capacity.FindAllocationForUpdate(ctx, vesselID, classID)
	if err != nil {
		return Availability{}, fmt.Errorf("lock allocation: %w", err)
	}
	return l.availability(ctx, tripID, classID, allocation)
}

func (l *capacityLedger) availability(ctx context.Context, tripID, classID uuid.UUID, allocation *entity.CapacityAllocation) (Availability, error) {
	// no allocation row: the class is not capacity managed
	if allocation == nil {
		return Availability{Available: true, Remaining: Unbounded, Total: Unbounded}, nil
	}

	occupied, err := l.tickets.CountActive(ctx, tripID, classID)
	if err != nil {
		return Availability{}, fmt.Errorf("count occupied: %w", err)
	}

	remaining := allocation.Quantity - occupied
	return Availability{
		Available: remaining > 0,
		Remaining: remaining,
		Total:     allocation.Quantity,
		Occupied:  occupied,
	}, nil
}
