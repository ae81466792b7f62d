package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TicketStatus string

const (
	TicketStatusReserved  TicketStatus = "reserved"
	TicketStatusConfirmed TicketStatus = "confirmed"
	TicketStatusCancelled TicketStatus = "cancelled"
	TicketStatusUsed      TicketStatus = "used"
	TicketStatusRefunded  TicketStatus = "refunded"
)

var ticketTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusReserved:  {TicketStatusConfirmed, TicketStatusCancelled},
	TicketStatusConfirmed: {TicketStatusUsed, TicketStatusCancelled, TicketStatusRefunded},
}

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusReserved, TicketStatusConfirmed, TicketStatusCancelled, TicketStatusUsed, TicketStatusRefunded:
		return true
	}
	return false
}

func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	for _, allowed := range ticketTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OccupiesCapacity reports whether a ticket in this status holds a berth.
func (s TicketStatus) OccupiesCapacity() bool {
	return s != TicketStatusCancelled && s != TicketStatusRefunded
}

// InactiveTicketStatuses are the statuses that release capacity.
var InactiveTicketStatuses = []TicketStatus{TicketStatusCancelled, TicketStatusRefunded}

type Ticket struct {
	BaseNoDelete
	Code              string          `db:"code"`
	TripID            uuid.UUID       `db:"trip_id"`
	ClassID           uuid.UUID       `db:"class_id"`
	BoardingStopID    uuid.UUID       `db:"boarding_stop_id"`
	AlightingStopID   uuid.UUID       `db:"alighting_stop_id"`
	PassengerName     string          `db:"passenger_name"`
	PassengerDocument string          `db:"passenger_document"`
	PassengerPhone    *string         `db:"passenger_phone"`
	SeatNumber        *string         `db:"seat_number"`
	Status            TicketStatus    `db:"status"`
	Amount            decimal.Decimal `db:"amount"`
	PaymentMethod     PaymentMethod   `db:"payment_method"`
	SoldBy            uuid.UUID       `db:"sold_by"`
}
