package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VesselType string

const (
	VesselTypeBoat      VesselType = "boat"
	VesselTypeShip      VesselType = "ship"
	VesselTypeSpeedboat VesselType = "speedboat"
	VesselTypeBarge     VesselType = "barge"
	VesselTypeFerry     VesselType = "ferry"
)

type Vessel struct {
	BaseNoDelete
	Name          string     `db:"name"`
	Type          VesselType `db:"type"`
	Capacity      int        `db:"capacity"`
	SeatNumbering bool       `db:"seat_numbering"`
	IsActive      bool       `db:"is_active"`
}

// CapacityAllocation is the number of berths of one class aboard one vessel.
// At most one row exists per (vessel, class).
type CapacityAllocation struct {
	BaseSimple
	VesselID uuid.UUID `db:"vessel_id"`
	ClassID  uuid.UUID `db:"class_id"`
	Quantity int       `db:"quantity"`
}

type Seat struct {
	BaseSimple
	VesselID uuid.UUID `db:"vessel_id"`
	ClassID  uuid.UUID `db:"class_id"`
	Number   string    `db:"number"`
}

// VesselSector is a cargo hold parcels can be stowed in.
type VesselSector struct {
	BaseSimple
	VesselID    uuid.UUID        `db:"vessel_id"`
	Name        string           `db:"name"`
	Description *string          `db:"description"`
	CapacityKg  *decimal.Decimal `db:"capacity_kg"`
}
