package request

import "time"

type TripRequest struct {
	ItineraryID string    `json:"itinerary_id" validate:"required,uuid4"`
	VesselID    string    `json:"vessel_id" validate:"required,uuid4"`
	DepartureAt time.Time `json:"departure_at" validate:"required"`
	Notes       *string   `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type TripStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type TripListRequest struct {
	PaginatedRequest
	Status      string `validate:"omitempty,oneof=scheduled boarding underway completed cancelled"`
	ItineraryID string `validate:"omitempty,uuid4"`
	From        string `validate:"omitempty,datetime=2006-01-02"`
	To          string `validate:"omitempty,datetime=2006-01-02"`
}
