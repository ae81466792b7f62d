package entity

import (
	"time"

	"github.com/google/uuid"
)

type TripStatus string

const (
	TripStatusScheduled TripStatus = "scheduled"
	TripStatusBoarding  TripStatus = "boarding"
	TripStatusUnderway  TripStatus = "underway"
	TripStatusCompleted TripStatus = "completed"
	TripStatusCancelled TripStatus = "cancelled"
)

// position along the sailing lifecycle; cancelled sits outside it
var tripStage = map[TripStatus]int{
	TripStatusScheduled: 0,
	TripStatusBoarding:  1,
	TripStatusUnderway:  2,
	TripStatusCompleted: 3,
}

func (s TripStatus) Valid() bool {
	_, ok := tripStage[s]
	return ok || s == TripStatusCancelled
}

func (s TripStatus) Terminal() bool {
	return s == TripStatusCompleted || s == TripStatusCancelled
}

// Sellable reports whether tickets may still be sold.
func (s TripStatus) Sellable() bool {
	return s == TripStatusScheduled || s == TripStatusBoarding
}

// CanTransitionTo allows forward moves along the lifecycle and cancelling
// from any non-terminal state.
func (s TripStatus) CanTransitionTo(next TripStatus) bool {
	if s.Terminal() || !next.Valid() {
		return false
	}
	if next == TripStatusCancelled {
		return true
	}
	return tripStage[next] > tripStage[s]
}

type Trip struct {
	BaseNoDelete
	ItineraryID uuid.UUID  `db:"itinerary_id"`
	VesselID    uuid.UUID  `db:"vessel_id"`
	DepartureAt time.Time  `db:"departure_at"`
	Status      TripStatus `db:"status"`
	Notes       *string    `db:"notes"`
}
