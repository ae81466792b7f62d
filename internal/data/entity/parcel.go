package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ParcelStatus string

const (
	ParcelStatusReceived  ParcelStatus = "received"
	ParcelStatusInTransit ParcelStatus = "in_transit"
	ParcelStatusDelivered ParcelStatus = "delivered"
	ParcelStatusReturned  ParcelStatus = "returned"
)

var parcelTransitions = map[ParcelStatus][]ParcelStatus{
	ParcelStatusReceived:  {ParcelStatusInTransit, ParcelStatusReturned},
	ParcelStatusInTransit: {ParcelStatusDelivered, ParcelStatusReturned},
}

func (s ParcelStatus) Valid() bool {
	switch s {
	case ParcelStatusReceived, ParcelStatusInTransit, ParcelStatusDelivered, ParcelStatusReturned:
		return true
	}
	return false
}

func (s ParcelStatus) CanTransitionTo(next ParcelStatus) bool {
	for _, allowed := range parcelTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Parcel struct {
	BaseNoDelete
	Code           string           `db:"code"`
	TripID         uuid.UUID        `db:"trip_id"`
	SectorID       *uuid.UUID       `db:"sector_id"`
	SenderName     string           `db:"sender_name"`
	SenderPhone    *string          `db:"sender_phone"`
	RecipientName  string           `db:"recipient_name"`
	RecipientPhone *string          `db:"recipient_phone"`
	Description    string           `db:"description"`
	WeightKg       *decimal.Decimal `db:"weight_kg"`
	Value          decimal.Decimal  `db:"value"`
	PaymentMethod  PaymentMethod    `db:"payment_method"`
	Status         ParcelStatus     `db:"status"`
	ReceivedBy     uuid.UUID        `db:"received_by"`
}
