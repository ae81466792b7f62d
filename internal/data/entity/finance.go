package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodPix  PaymentMethod = "pix"
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodCash PaymentMethod = "cash"
)

type TransactionKind string

const (
	TransactionKindTicket  TransactionKind = "ticket"
	TransactionKindFreight TransactionKind = "freight"
	TransactionKindExpense TransactionKind = "expense"
)

// FinancialTransaction is an append-only ledger entry.
type FinancialTransaction struct {
	BaseSimple
	Kind          TransactionKind `db:"kind"`
	Amount        decimal.Decimal `db:"amount"`
	PaymentMethod PaymentMethod   `db:"payment_method"`
	ReferenceID   *uuid.UUID      `db:"reference_id"`
	TripID        *uuid.UUID      `db:"trip_id"`
	Description   *string         `db:"description"`
	CreatedBy     *uuid.UUID      `db:"created_by"`
}

type Commission struct {
	BaseSimple
	TicketID   uuid.UUID       `db:"ticket_id"`
	SellerID   uuid.UUID       `db:"seller_id"`
	AgencyID   uuid.UUID       `db:"agency_id"`
	Amount     decimal.Decimal `db:"amount"`
	Percentage decimal.Decimal `db:"percentage"`
}

// CommissionAmount is price × pct / 100 rounded half-up to cents.
func CommissionAmount(price, pct decimal.Decimal) decimal.Decimal {
	return price.Mul(pct).Div(decimal.NewFromInt(100)).Round(2)
}

type ExpenseCategory string

const (
	ExpenseCategoryFuel        ExpenseCategory = "fuel"
	ExpenseCategoryMaintenance ExpenseCategory = "maintenance"
	ExpenseCategoryFood        ExpenseCategory = "food"
	ExpenseCategoryOther       ExpenseCategory = "other"
)

type TripExpense struct {
	BaseSimple
	TripID      uuid.UUID       `db:"trip_id"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	Category    ExpenseCategory `db:"category"`
	CreatedBy   *uuid.UUID      `db:"created_by"`
}

// CashClosing freezes one day's totals; one per date.
type CashClosing struct {
	BaseSimple
	ClosingDate   time.Time       `db:"closing_date"`
	OperatorID    uuid.UUID       `db:"operator_id"`
	TotalSales    decimal.Decimal `db:"total_sales"`
	TotalExpenses decimal.Decimal `db:"total_expenses"`
	Balance       decimal.Decimal `db:"balance"`
	Notes         *string         `db:"notes"`
}
