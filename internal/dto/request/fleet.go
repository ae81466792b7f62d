package request

import "github.com/shopspring/decimal"

type AccommodationClassRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=60"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=255"`
}

type AllocationItem struct {
	ClassID  string `json:"class_id" validate:"required,uuid4"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

type VesselRequest struct {
	Name           string           `json:"name" validate:"required,min=2,max=120"`
	Type           string           `json:"type" validate:"required,oneof=boat ship speedboat barge ferry"`
	Capacity       int              `json:"capacity" validate:"min=0"`
	SeatNumbering  bool             `json:"seat_numbering"`
	Accommodations []AllocationItem `json:"accommodations" validate:"dive"`
}

type AllocationRequest struct {
	ClassID  string `json:"class_id" validate:"required,uuid4"`
	Quantity int    `json:"quantity" validate:"min=0"`
}

type SectorRequest struct {
	Name        string           `json:"name" validate:"required,min=1,max=60"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=255"`
	CapacityKg  *decimal.Decimal `json:"capacity_kg,omitempty" validate:"omitempty,gte=0"`
}
