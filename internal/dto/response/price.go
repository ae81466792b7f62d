package response

import (
	"boat-ticketing/internal/data/entity"

	"github.com/shopspring/decimal"
)

type PriceResponse struct {
	ID                string          `json:"id"`
	ItineraryID       string          `json:"itinerary_id"`
	OriginStopID      string          `json:"origin_stop_id"`
	DestinationStopID string          `json:"destination_stop_id"`
	ClassID           string          `json:"class_id"`
	Price             decimal.Decimal `json:"price"`
	ValidFrom         string          `json:"valid_from"`
	ValidUntil        *string         `json:"valid_until,omitempty"`
}

type QuoteResponse struct {
	PriceID      string               `json:"price_id"`
	Price        decimal.Decimal      `json:"price"`
	Availability AvailabilityResponse `json:"availability"`
}

func PriceToResponse(p *entity.SegmentPrice) PriceResponse {
	return PriceResponse{
		ID:                p.ID.String(),
		ItineraryID:       p.ItineraryID.String(),
		OriginStopID:      p.OriginStopID.String(),
		DestinationStopID: p.DestinationStopID.String(),
		ClassID:           p.ClassID.String(),
		Price:             p.Price,
		ValidFrom:         p.ValidFrom.Format(dateLayout),
		ValidUntil:        datePtrString(p.ValidUntil),
	}
}
