package request

import "github.com/shopspring/decimal"

type ExpenseRequest struct {
	TripID      string          `json:"trip_id" validate:"required,uuid4"`
	Description string          `json:"description" validate:"required,min=2,max=255"`
	Amount      decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Category    string          `json:"category" validate:"required,oneof=fuel maintenance food other"`
}

type CloseCashRequest struct {
	Date  string  `json:"date" validate:"required,datetime=2006-01-02"`
	Notes *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type TransactionListRequest struct {
	PaginatedRequest
	Kind string `validate:"omitempty,oneof=ticket freight expense"`
	From string `validate:"omitempty,datetime=2006-01-02"`
	To   string `validate:"omitempty,datetime=2006-01-02"`
}

type CommissionListRequest struct {
	SellerID string `validate:"omitempty,uuid4"`
	From     string `validate:"omitempty,datetime=2006-01-02"`
	To       string `validate:"omitempty,datetime=2006-01-02"`
}
