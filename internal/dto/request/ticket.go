package request

type SellTicketRequest struct {
	TripID            string  `json:"trip_id" validate:"required,uuid4"`
	ClassID           string  `json:"class_id" validate:"required,uuid4"`
	BoardingStopID    string  `json:"boarding_stop_id" validate:"required,uuid4"`
	AlightingStopID   string  `json:"alighting_stop_id" validate:"required,uuid4"`
	PassengerName     string  `json:"passenger_name" validate:"required,min=2,max=120"`
	PassengerDocument string  `json:"passenger_document" validate:"required,min=3,max=30"`
	PassengerPhone    *string `json:"passenger_phone,omitempty" validate:"omitempty,min=8,max=20"`
	SeatNumber        *string `json:"seat_number,omitempty" validate:"omitempty,max=10"`
	PaymentMethod     string  `json:"payment_method" validate:"required,oneof=pix card cash"`
}

type TicketStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=reserved confirmed cancelled used refunded"`
}

type TicketListRequest struct {
	PaginatedRequest
	TripID string `validate:"omitempty,uuid4"`
	Status string `validate:"omitempty,oneof=reserved confirmed cancelled used refunded"`
	Search string `validate:"omitempty,max=60"`
}
