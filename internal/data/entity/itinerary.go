package entity

import "github.com/google/uuid"

type Itinerary struct {
	BaseNoDelete
	Name        string  `db:"name"`
	Description *string `db:"description"`
	IsActive    bool    `db:"is_active"`
}

// Stop order is unique within an itinerary.
type Stop struct {
	BaseSimple
	ItineraryID  uuid.UUID `db:"itinerary_id"`
	Name         string    `db:"name"`
	Order        int       `db:"stop_order"`
	DwellMinutes int       `db:"dwell_minutes"`
}

// StopOrderSentinel parks a stop outside the valid range during a swap.
const StopOrderSentinel = -1
