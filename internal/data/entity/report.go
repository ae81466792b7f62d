package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TripReportRow aggregates one trip's sales and costs.
type TripReportRow struct {
	TripID         uuid.UUID       `db:"trip_id"`
	ItineraryName  string          `db:"itinerary_name"`
	VesselName     string          `db:"vessel_name"`
	DepartureAt    time.Time       `db:"departure_at"`
	Status         TripStatus      `db:"status"`
	TicketCount    int             `db:"ticket_count"`
	ParcelCount    int             `db:"parcel_count"`
	TicketRevenue  decimal.Decimal `db:"ticket_revenue"`
	FreightRevenue decimal.Decimal `db:"freight_revenue"`
	Expenses       decimal.Decimal `db:"expenses"`
}

func (r TripReportRow) Balance() decimal.Decimal {
	return r.TicketRevenue.Add(r.FreightRevenue).Sub(r.Expenses)
}
