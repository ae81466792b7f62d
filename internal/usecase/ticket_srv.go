package usecase

import (
	"context"
	"errors"
	"fmt"

	"boat-ticketing/internal/data/entity"
	"boat-ticketing/internal/data/repository"
	"boat-ticketing/internal/dto/request"
	"boat-ticketing/internal/dto/response"
	"boat-ticketing/pkg/broker"
	"boat-ticketing/pkg/clock"
	"boat-ticketing/pkg/database"
	"boat-ticketing/pkg/metrics"
	"boat-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TicketService interface {
	Sell(ctx context.Context, req *request.SellTicketRequest) (*response.TicketResponse, error)
	UpdateStatus(ctx context.Context, ticketID string, req *request.TicketStatusRequest) (*response.TicketResponse, error)
	// Validate checks a passenger in. ref is a ticket id or code.
	Validate(ctx context.Context, ref string) (*response.TicketResponse, error)
	GetTicket(ctx context.Context, ref string) (*response.TicketResponse, error)
	ListTickets(ctx context.Context, req *request.TicketListRequest) (*response.PaginatedResponse[response.TicketResponse], error)
}

type ticketService struct {
	repo      *repository.Repository
	prices    PriceCatalog
	capacity  CapacityLedger
	publisher broker.Publisher
	clock     clock.Clock
	log       *zap.Logger
}

func NewTicketService(
	repo *repository.Repository,
	prices PriceCatalog,
	capacity CapacityLedger,
	publisher broker.Publisher,
	clk clock.Clock,
	log *zap.Logger,
) TicketService {
	return &ticketService{
		repo:      repo,
		prices:    prices,
		capacity:  capacity,
		publisher: publisher,
		clock:     clk,
		log:       log.With(zap.String("service", "ticket")),
	}
}

// rejection labels for the sale rejection counter
var saleRejectReasons = []struct {
	err    error
	reason string
}{
	{ErrValidation, "validation"},
	{ErrSameStops, "same_stops"},
	{ErrNotAuthenticated, "not_authenticated"},
	{ErrTripNotFound, "trip_not_found"},
	{ErrTripNotSellable, "trip_not_sellable"},
	{ErrSoldOut, "sold_out"},
	{ErrPriceNotFound, "no_price"},
	{ErrSeatTaken, "seat_taken"},
}

func (s *ticketService) reject(err error, fields ...zap.Field) error {
	reason := "error"
	for _, r := range saleRejectReasons {
		if errors.Is(err, r.err) {
			reason = r.reason
			break
		}
	}
	metrics.SaleRejections.WithLabelValues(reason).Inc()
	if reason == "error" {
		s.log.Error("Ticket sale failed", append(fields, zap.Error(err))...)
	} else {
		s.log.Warn("Ticket sale rejected", append(fields, zap.String("reason", reason), zap.Error(err))...)
	}
	return err
}

func (s *ticketService) Sell(ctx context.Context, req *request.SellTicketRequest) (*response.TicketResponse, error) {
	if err := validate(req); err != nil {
		return nil, s.reject(err)
	}

	tripID, err := parseID("trip_id", req.TripID)
	if err != nil {
		return nil, s.reject(err)
	}
	classID, err := parseID("class_id", req.ClassID)
	if err != nil {
		return nil, s.reject(err)
	}
	boardingID, err := parseID("boarding_stop_id", req.BoardingStopID)
	if err != nil {
		return nil, s.reject(err)
	}
	alightingID, err := parseID("alighting_stop_id", req.AlightingStopID)
	if err != nil {
		return nil, s.reject(err)
	}

	if boardingID == alightingID {
		return nil, s.reject(ErrSameStops, zap.String("trip_id", req.TripID))
	}

	sellerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, s.reject(ErrNotAuthenticated, zap.String("trip_id", req.TripID))
	}

	now := s.clock.Now()
	var (
		ticket     *entity.Ticket
		commission *entity.Commission
	)

	err = s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		commission = nil

		trip, err := s.repo.Trip.FindByIDForShare(ctx, tripID)
		if err != nil {
			return fmt.Errorf("load trip: %w", err)
		}
		if trip == nil {
			return ErrTripNotFound
		}
		if !trip.Status.Sellable() {
			return fmt.Errorf("%w: trip is %s", ErrTripNotSellable, trip.Status)
		}

		availability, err := s.capacity.CheckAndHold(ctx, trip.ID, trip.VesselID, classID)
		if err != nil {
			return err
		}
		if !availability.Available {
			return ErrSoldOut
		}

		price, err := s.prices.ResolvePrice(ctx, entity.SegmentKey{
			ItineraryID:       trip.ItineraryID,
			OriginStopID:      boardingID,
			DestinationStopID: alightingID,
			ClassID:           classID,
		}, now)
		if err != nil {
			return err
		}

		if req.SeatNumber != nil {
			if err := s.checkSeat(ctx, trip.VesselID, classID, *req.SeatNumber); err != nil {
				return err
			}
		}

		seller, err := s.repo.User.FindByID(ctx, sellerID)
		if err != nil {
			return fmt.Errorf("load seller: %w", err)
		}
		if seller == nil || !seller.IsActive {
			return ErrNotAuthenticated
		}

		id := uuid.New()
		ticket = &entity.Ticket{
			BaseNoDelete: entity.BaseNoDelete{
				ID:        id,
				CreatedAt: now,
				UpdatedAt: now,
			},
			Code:              utils.GenerateTicketCode(id, now),
			TripID:            trip.ID,
			ClassID:           classID,
			BoardingStopID:    boardingID,
			AlightingStopID:   alightingID,
			PassengerName:     req.PassengerName,
			PassengerDocument: req.PassengerDocument,
			PassengerPhone:    req.PassengerPhone,
			SeatNumber:        req.SeatNumber,
			Status:            entity.TicketStatusConfirmed,
			Amount:            price.Price,
			PaymentMethod:     entity.PaymentMethod(req.PaymentMethod),
			SoldBy:            seller.ID,
		}
		if err := s.repo.Ticket.Create(ctx, ticket); err != nil {
			if errors.Is(err, database.ErrConflict) && database.ConstraintName(err) == "tickets_trip_seat_active_key" {
				return fmt.Errorf("%w: %w", ErrSeatTaken, err)
			}
			return err
		}

		if err := s.repo.Transaction.Create(ctx, &entity.FinancialTransaction{
			BaseSimple:    entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			Kind:          entity.TransactionKindTicket,
			Amount:        price.Price,
			PaymentMethod: ticket.PaymentMethod,
			ReferenceID:   &ticket.ID,
			TripID:        &trip.ID,
			CreatedBy:     &seller.ID,
		}); err != nil {
			return err
		}

		if seller.AgencyID == nil {
			return nil
		}
		agency, err := s.repo.Agency.FindByID(ctx, *seller.AgencyID)
		if err != nil {
			return fmt.Errorf("load agency: %w", err)
		}
		if !agency.EarnsCommission() {
			return nil
		}

		commission = &entity.Commission{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			TicketID:   ticket.ID,
			SellerID:   seller.ID,
			AgencyID:   agency.ID,
			Amount:     entity.CommissionAmount(price.Price, agency.CommissionPercentage),
			Percentage: agency.CommissionPercentage,
		}
		return s.repo.Commission.Create(ctx, commission)
	})
	if err != nil {
		return nil, s.reject(err,
			zap.String("trip_id", req.TripID),
			zap.String("class_id", req.ClassID),
			zap.String("seller_id", sellerID.String()))
	}

	amount, _ := ticket.Amount.Float64()
	metrics.TicketsSold.WithLabelValues(string(ticket.PaymentMethod)).Inc()
	metrics.TicketRevenue.Add(amount)

	event := TicketSoldEvent{
		TicketID:      ticket.ID.String(),
		Code:          ticket.Code,
		TripID:        ticket.TripID.String(),
		ClassID:       ticket.ClassID.String(),
		Amount:        ticket.Amount,
		PaymentMethod: string(ticket.PaymentMethod),
		SoldBy:        ticket.SoldBy.String(),
		SoldAt:        now,
	}
	if commission != nil {
		c := commission.Amount.StringFixed(2)
		event.Commission = &c
	}
	publish(ctx, s.publisher, s.log, broker.EventTicketSold, event)

	s.log.Info("Ticket sold",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("code", ticket.Code),
		zap.String("trip_id", ticket.TripID.String()),
		zap.String("amount", ticket.Amount.StringFixed(2)),
		zap.Bool("commission", commission != nil))

	resp := response.TicketToResponse(ticket)
	return &resp, nil
}

func (s *ticketService) checkSeat(ctx context.Context, vesselID, classID uuid.UUID, number string) error {
	seats, err := s.repo.Capacity.FindSeatsByVessel(ctx, vesselID)
	if err != nil {
		return fmt.Errorf("load seats: %w", err)
	}
	for _, seat := range seats {
		if seat.ClassID == classID && seat.Number == number {
			return nil
		}
	}
	return invalidField("seat_number", "Unknown seat for this class")
}

func (s *ticketService) findTicket(ctx context.Context, ref string) (*entity.Ticket, error) {
	var (
		ticket *entity.Ticket
		err    error
	)
	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		ticket, err = s.repo.Ticket.FindByID(ctx, id)
	} else {
		ticket, err = s.repo.Ticket.FindByCode(ctx, ref)
	}
	if err != nil {
		return nil, fmt.Errorf("load ticket: %w", err)
	}
	if ticket == nil {
		return nil, ErrTicketNotFound
	}
	return ticket, nil
}

func (s *ticketService) UpdateStatus(ctx context.Context, ticketID string, req *request.TicketStatusRequest) (*response.TicketResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	id, err := parseID("ticket_id", ticketID)
	if err != nil {
		return nil, err
	}

	ticket, err := s.findTicket(ctx, id.String())
	if err != nil {
		return nil, err
	}

	next := entity.TicketStatus(req.Status)
	if !ticket.Status.CanTransitionTo(next) {
		s.log.Warn("Ticket transition refused",
			zap.String("ticket_id", ticketID),
			zap.String("from", string(ticket.Status)),
			zap.String("to", string(next)))
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, ticket.Status, next)
	}

	ok, err := s.repo.Ticket.UpdateStatus(ctx, ticket.ID, ticket.Status, next)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: ticket changed concurrently", ErrInvalidTransition)
	}

	from := ticket.Status
	ticket.Status = next
	ticket.UpdatedAt = s.clock.Now()

	publish(ctx, s.publisher, s.log, broker.EventTicketStatusChanged, StatusChangedEvent{
		ID:        ticket.ID.String(),
		Code:      ticket.Code,
		From:      string(from),
		To:        string(next),
		ChangedAt: ticket.UpdatedAt,
	})
	s.log.Info("Ticket status changed",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(next)))

	resp := response.TicketToResponse(ticket)
	return &resp, nil
}

// embarkationError explains why a ticket in status cannot board.
func embarkationError(status entity.TicketStatus) error {
	switch status {
	case entity.TicketStatusUsed:
		return ErrTicketAlreadyUsed
	case entity.TicketStatusCancelled:
		return ErrTicketCancelled
	case entity.TicketStatusRefunded:
		return ErrTicketRefunded
	default:
		return ErrTicketNotConfirmed
	}
}

func (s *ticketService) Validate(ctx context.Context, ref string) (*response.TicketResponse, error) {
	ticket, err := s.findTicket(ctx, ref)
	if err != nil {
		return nil, err
	}

	if ticket.Status != entity.TicketStatusConfirmed {
		s.log.Warn("Embarkation refused", zap.String("code", ticket.Code), zap.String("status", string(ticket.Status)))
		return nil, embarkationError(ticket.Status)
	}

	ok, err := s.repo.Ticket.UpdateStatus(ctx, ticket.ID, entity.TicketStatusConfirmed, entity.TicketStatusUsed)
	if err != nil {
		return nil, err
	}
	if !ok {
		// lost a race; report what the ticket became
		current, err := s.findTicket(ctx, ticket.ID.String())
		if err != nil {
			return nil, err
		}
		return nil, embarkationError(current.Status)
	}

	ticket.Status = entity.TicketStatusUsed
	ticket.UpdatedAt = s.clock.Now()

	publish(ctx, s.publisher, s.log, broker.EventTicketStatusChanged, StatusChangedEvent{
		ID:        ticket.ID.String(),
		Code:      ticket.Code,
		From:      string(entity.TicketStatusConfirmed),
		To:        string(entity.TicketStatusUsed),
		ChangedAt: ticket.UpdatedAt,
	})
	s.log.Info("Passenger embarked", zap.String("code", ticket.Code))

	resp := response.TicketToResponse(ticket)
	return &resp, nil
}

func (s *ticketService) GetTicket(ctx context.Context, ref string) (*response.TicketResponse, error) {
	ticket, err := s.findTicket(ctx, ref)
	if err != nil {
		return nil, err
	}
	resp := response.TicketToResponse(ticket)
	return &resp, nil
}

func (s *ticketService) ListTickets(ctx context.Context, req *request.TicketListRequest) (*response.PaginatedResponse[response.TicketResponse], error) {
	normalizePage(&req.PaginatedRequest)
	if err := validate(req); err != nil {
		return nil, err
	}

	filter := repository.TicketFilter{Search: req.Search}
	tripID, err := parseOptionalID("trip_id", &req.TripID)
	if err != nil {
		return nil, err
	}
	filter.TripID = tripID
	if req.Status != "" {
		status := entity.TicketStatus(req.Status)
		filter.Status = &status
	}
	// sellers only see their own sales
	if role, ok := utils.GetRoleFromContext(ctx); ok && entity.UserRole(role) == entity.RoleSeller {
		if userID, ok := utils.GetUserIDFromContext(ctx); ok {
			filter.SoldBy = &userID
		}
	}

	tickets, err := s.repo.Ticket.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Ticket.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := make([]response.TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		data = append(data, response.TicketToResponse(t))
	}
	return response.NewPaginatedResponse(data, req.Page, req.PerPage, total), nil
}
