package request

import "github.com/shopspring/decimal"

type PriceRequest struct {
	ItineraryID       string          `json:"itinerary_id" validate:"required,uuid4"`
	OriginStopID      string          `json:"origin_stop_id" validate:"required,uuid4"`
	DestinationStopID string          `json:"destination_stop_id" validate:"required,uuid4"`
	ClassID           string          `json:"class_id" validate:"required,uuid4"`
	Price             decimal.Decimal `json:"price" validate:"required,gt=0"`
	ValidFrom         string          `json:"valid_from" validate:"required,datetime=2006-01-02"`
	ValidUntil        *string         `json:"valid_until,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type QuoteRequest struct {
	TripID          string `json:"trip_id" validate:"required,uuid4"`
	ClassID         string `json:"class_id" validate:"required,uuid4"`
	BoardingStopID  string `json:"boarding_stop_id" validate:"required,uuid4"`
	AlightingStopID string `json:"alighting_stop_id" validate:"required,uuid4"`
}
