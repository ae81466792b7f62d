package response

import (
	"time"

	"boat-ticketing/internal/data/entity"

	"github.com/shopspring/decimal"
)

type AccommodationClassResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type AllocationResponse struct {
	ClassID  string `json:"class_id"`
	Quantity int    `json:"quantity"`
}

type VesselResponse struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Type           entity.VesselType    `json:"type"`
	Capacity       int                  `json:"capacity"`
	SeatNumbering  bool                 `json:"seat_numbering"`
	IsActive       bool                 `json:"is_active"`
	Accommodations []AllocationResponse `json:"accommodations"`
	SeatCount      int                  `json:"seat_count"`
	CreatedAt      time.Time            `json:"created_at"`
}

type SectorResponse struct {
	ID          string           `json:"id"`
	VesselID    string           `json:"vessel_id"`
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	CapacityKg  *decimal.Decimal `json:"capacity_kg,omitempty"`
}

type AvailabilityResponse struct {
	TripID    string `json:"trip_id"`
	ClassID   string `json:"class_id"`
	Available bool   `json:"available"`
	Remaining int    `json:"remaining"`
	Total     int    `json:"total"`
	Occupied  int    `json:"occupied"`
}

func ClassToResponse(c *entity.AccommodationClass) AccommodationClassResponse {
	return AccommodationClassResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

func VesselToResponse(v *entity.Vessel, allocations []*entity.CapacityAllocation, seatCount int) VesselResponse {
	resp := VesselResponse{
		ID:             v.ID.String(),
		Name:           v.Name,
		Type:           v.Type,
		Capacity:       v.Capacity,
		SeatNumbering:  v.SeatNumbering,
		IsActive:       v.IsActive,
		Accommodations: make([]AllocationResponse, 0, len(allocations)),
		SeatCount:      seatCount,
		CreatedAt:      v.CreatedAt,
	}
	for _, a := range allocations {
		resp.Accommodations = append(resp.Accommodations, AllocationResponse{
			ClassID:  a.ClassID.String(),
			Quantity: a.Quantity,
		})
	}
	return resp
}

func SectorToResponse(s *entity.VesselSector) SectorResponse {
	return SectorResponse{
		ID:          s.ID.String(),
		VesselID:    s.VesselID.String(),
		Name:        s.Name,
		Description: s.Description,
		CapacityKg:  s.CapacityKg,
	}
}
