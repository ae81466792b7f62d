package entity

import "github.com/shopspring/decimal"

type Agency struct {
	BaseNoDelete
	Name                 string          `db:"name"`
	Document             *string         `db:"document"`
	Phone                *string         `db:"phone"`
	CommissionPercentage decimal.Decimal `db:"commission_percentage"`
	IsActive             bool            `db:"is_active"`
}

// EarnsCommission reports whether sales through this agency accrue commission.
func (a *Agency) EarnsCommission() bool {
	return a != nil && a.IsActive && a.CommissionPercentage.IsPositive()
}
