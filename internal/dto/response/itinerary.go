package response

import (
	"time"

	"boat-ticketing/internal/data/entity"
)

type StopResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Order        int    `json:"order"`
	DwellMinutes int    `json:"dwell_minutes"`
}

type ItineraryResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description *string        `json:"description,omitempty"`
	IsActive    bool           `json:"is_active"`
	Stops       []StopResponse `json:"stops,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func StopToResponse(s *entity.Stop) StopResponse {
	return StopResponse{
		ID:           s.ID.String(),
		Name:         s.Name,
		Order:        s.Order,
		DwellMinutes: s.DwellMinutes,
	}
}

func ItineraryToResponse(i *entity.Itinerary, stops []*entity.Stop) ItineraryResponse {
	resp := ItineraryResponse{
		ID:          i.ID.String(),
		Name:        i.Name,
		Description: i.Description,
		IsActive:    i.IsActive,
		CreatedAt:   i.CreatedAt,
	}
	for _, s := range stops {
		resp.Stops = append(resp.Stops, StopToResponse(s))
	}
	return resp
}
