package response

import (
	"time"

	"boat-ticketing/internal/data/entity"

	"github.com/shopspring/decimal"
)

type ParcelResponse struct {
	ID             string               `json:"id"`
	Code           string               `json:"code"`
	TripID         string               `json:"trip_id"`
	SectorID       *string              `json:"sector_id,omitempty"`
	SenderName     string               `json:"sender_name"`
	SenderPhone    *string              `json:"sender_phone,omitempty"`
	RecipientName  string               `json:"recipient_name"`
	RecipientPhone *string              `json:"recipient_phone,omitempty"`
	Description    string               `json:"description"`
	WeightKg       *decimal.Decimal     `json:"weight_kg,omitempty"`
	Value          decimal.Decimal      `json:"value"`
	PaymentMethod  entity.PaymentMethod `json:"payment_method"`
	Status         entity.ParcelStatus  `json:"status"`
	CreatedAt      time.Time            `json:"created_at"`
}

func ParcelToResponse(p *entity.Parcel) ParcelResponse {
	return ParcelResponse{
		ID:             p.ID.String(),
		Code:           p.Code,
		TripID:         p.TripID.String(),
		SectorID:       uuidPtrString(p.SectorID),
		SenderName:     p.SenderName,
		SenderPhone:    p.SenderPhone,
		RecipientName:  p.RecipientName,
		RecipientPhone: p.RecipientPhone,
		Description:    p.Description,
		WeightKg:       p.WeightKg,
		Value:          p.Value,
		PaymentMethod:  p.PaymentMethod,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
	}
}
