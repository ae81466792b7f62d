package response

import (
	"time"

	"boat-ticketing/internal/data/entity"

	"github.com/shopspring/decimal"
)

type TicketResponse struct {
	ID                string               `json:"id"`
	Code              string               `json:"code"`
	TripID            string               `json:"trip_id"`
	ClassID           string               `json:"class_id"`
	BoardingStopID    string               `json:"boarding_stop_id"`
	AlightingStopID   string               `json:"alighting_stop_id"`
	PassengerName     string               `json:"passenger_name"`
	PassengerDocument string               `json:"passenger_document"`
	PassengerPhone    *string              `json:"passenger_phone,omitempty"`
	SeatNumber        *string              `json:"seat_number,omitempty"`
	Status            entity.TicketStatus  `json:"status"`
	Amount            decimal.Decimal      `json:"amount"`
	PaymentMethod     entity.PaymentMethod `json:"payment_method"`
	SoldBy            string               `json:"sold_by"`
	CreatedAt         time.Time            `json:"created_at"`
}

func TicketToResponse(t *entity.Ticket) TicketResponse {
	return TicketResponse{
		ID:                t.ID.String(),
		Code:              t.Code,
		TripID:            t.TripID.String(),
		ClassID:           t.ClassID.String(),
		BoardingStopID:    t.BoardingStopID.String(),
		AlightingStopID:   t.AlightingStopID.String(),
		PassengerName:     t.PassengerName,
		PassengerDocument: t.PassengerDocument,
		PassengerPhone:    t.PassengerPhone,
		SeatNumber:        t.SeatNumber,
		Status:            t.Status,
		Amount:            t.Amount,
		PaymentMethod:     t.PaymentMethod,
		SoldBy:            t.SoldBy.String(),
		CreatedAt:         t.CreatedAt,
	}
}
