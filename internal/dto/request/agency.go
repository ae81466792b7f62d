package request

import "github.com/shopspring/decimal"

type AgencyRequest struct {
	Name                 string          `json:"name" validate:"required,min=2,max=120"`
	Document             *string         `json:"document,omitempty" validate:"omitempty,max=30"`
	Phone                *string         `json:"phone,omitempty" validate:"omitempty,min=8,max=20"`
	CommissionPercentage decimal.Decimal `json:"commission_percentage" validate:"gte=0,lte=100"`
}
