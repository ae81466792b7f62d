package request

import "github.com/shopspring/decimal"

type CreateParcelRequest struct {
	TripID         string           `json:"trip_id" validate:"required,uuid4"`
	SectorID       *string          `json:"sector_id,omitempty" validate:"omitempty,uuid4"`
	SenderName     string           `json:"sender_name" validate:"required,min=2,max=120"`
	SenderPhone    *string          `json:"sender_phone,omitempty" validate:"omitempty,min=8,max=20"`
	RecipientName  string           `json:"recipient_name" validate:"required,min=2,max=120"`
	RecipientPhone *string          `json:"recipient_phone,omitempty" validate:"omitempty,min=8,max=20"`
	Description    string           `json:"description" validate:"required,min=2,max=255"`
	WeightKg       *decimal.Decimal `json:"weight_kg,omitempty" validate:"omitempty,gte=0"`
	Value          decimal.Decimal  `json:"value" validate:"required,gt=0"`
	PaymentMethod  string           `json:"payment_method" validate:"required,oneof=pix card cash"`
}

type ParcelStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=received in_transit delivered returned"`
}

type ParcelListRequest struct {
	PaginatedRequest
	TripID string `validate:"omitempty,uuid4"`
	Status string `validate:"omitempty,oneof=received in_transit delivered returned"`
}
