package response

import (
	"time"

	"boat-ticketing/internal/data/entity"
)

type TripResponse struct {
	ID          string            `json:"id"`
	ItineraryID string            `json:"itinerary_id"`
	VesselID    string            `json:"vessel_id"`
	DepartureAt time.Time         `json:"departure_at"`
	Status      entity.TripStatus `json:"status"`
	Notes       *string           `json:"notes,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

func TripToResponse(t *entity.Trip) TripResponse {
	return TripResponse{
		ID:          t.ID.String(),
		ItineraryID: t.ItineraryID.String(),
		VesselID:    t.VesselID.String(),
		DepartureAt: t.DepartureAt,
		Status:      t.Status,
		Notes:       t.Notes,
		CreatedAt:   t.CreatedAt,
	}
}
