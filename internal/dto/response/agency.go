package response

import (
	"time"

	"boat-ticketing/internal/data/entity"

	"github.com/shopspring/decimal"
)

type AgencyResponse struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Document             *string         `json:"document,omitempty"`
	Phone                *string         `json:"phone,omitempty"`
	CommissionPercentage decimal.Decimal `json:"commission_percentage"`
	IsActive             bool            `json:"is_active"`
	CreatedAt            time.Time       `json:"created_at"`
}

func AgencyToResponse(a *entity.Agency) AgencyResponse {
	return AgencyResponse{
		ID:                   a.ID.String(),
		Name:                 a.Name,
		Document:             a.Document,
		Phone:                a.Phone,
		CommissionPercentage: a.CommissionPercentage,
		IsActive:             a.IsActive,
		CreatedAt:            a.CreatedAt,
	}
}
