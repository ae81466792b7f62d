package response

import (
	"time"

	"boat-ticketing/internal/data/entity"

	"github.com/shopspring/decimal"
)

type TransactionResponse struct {
	ID            string                 `json:"id"`
	Kind          entity.TransactionKind `json:"kind"`
	Amount        decimal.Decimal        `json:"amount"`
	PaymentMethod entity.PaymentMethod   `json:"payment_method"`
	ReferenceID   *string                `json:"reference_id,omitempty"`
	TripID        *string                `json:"trip_id,omitempty"`
	Description   *string                `json:"description,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

type CommissionResponse struct {
	ID         string          `json:"id"`
	TicketID   string          `json:"ticket_id"`
	SellerID   string          `json:"seller_id"`
	AgencyID   string          `json:"agency_id"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
	CreatedAt  time.Time       `json:"created_at"`
}

type CommissionSummaryResponse struct {
	Items []CommissionResponse `json:"items"`
	Total decimal.Decimal      `json:"total"`
}

type ExpenseResponse struct {
	ID          string                 `json:"id"`
	TripID      string                 `json:"trip_id"`
	Description string                 `json:"description"`
	Amount      decimal.Decimal        `json:"amount"`
	Category    entity.ExpenseCategory `json:"category"`
	CreatedAt   time.Time              `json:"created_at"`
}

type ClosingPreviewResponse struct {
	Date             string          `json:"date"`
	TotalSales       decimal.Decimal `json:"total_sales"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	Balance          decimal.Decimal `json:"balance"`
	TransactionCount int             `json:"transaction_count"`
	Closed           bool            `json:"closed"`
}

type ClosingResponse struct {
	ID            string          `json:"id"`
	Date          string          `json:"date"`
	OperatorID    string          `json:"operator_id"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Balance       decimal.Decimal `json:"balance"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

type DailyRevenue struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

type MethodRevenue struct {
	Method entity.PaymentMethod `json:"method"`
	Amount decimal.Decimal      `json:"amount"`
}

type StatusCount struct {
	Status entity.TripStatus `json:"status"`
	Count  int               `json:"count"`
}

type DashboardResponse struct {
	Revenue         decimal.Decimal `json:"revenue"`
	ActiveTickets   int             `json:"active_tickets"`
	ActiveTrips     int             `json:"active_trips"`
	Parcels         int64           `json:"parcels"`
	RevenueByDay    []DailyRevenue  `json:"revenue_by_day"`
	RevenueByMethod []MethodRevenue `json:"revenue_by_method"`
	TripsByStatus   []StatusCount   `json:"trips_by_status"`
}

type TripReportResponse struct {
	TripID         string            `json:"trip_id"`
	ItineraryName  string            `json:"itinerary_name"`
	VesselName     string            `json:"vessel_name"`
	DepartureAt    time.Time         `json:"departure_at"`
	Status         entity.TripStatus `json:"status"`
	TicketCount    int               `json:"ticket_count"`
	ParcelCount    int               `json:"parcel_count"`
	TicketRevenue  decimal.Decimal   `json:"ticket_revenue"`
	FreightRevenue decimal.Decimal   `json:"freight_revenue"`
	Expenses       decimal.Decimal   `json:"expenses"`
	Balance        decimal.Decimal   `json:"balance"`
}

func TransactionToResponse(t *entity.FinancialTransaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID.String(),
		Kind:          t.Kind,
		Amount:        t.Amount,
		PaymentMethod: t.PaymentMethod,
		ReferenceID:   uuidPtrString(t.ReferenceID),
		TripID:        uuidPtrString(t.TripID),
		Description:   t.Description,
		CreatedAt:     t.CreatedAt,
	}
}

func CommissionToResponse(c *entity.Commission) CommissionResponse {
	return CommissionResponse{
		ID:         c.ID.String(),
		TicketID:   c.TicketID.String(),
		SellerID:   c.SellerID.String(),
		AgencyID:   c.AgencyID.String(),
		Amount:     c.Amount,
		Percentage: c.Percentage,
		CreatedAt:  c.CreatedAt,
	}
}

func ExpenseToResponse(e *entity.TripExpense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID.String(),
		TripID:      e.TripID.String(),
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		CreatedAt:   e.CreatedAt,
	}
}

func ClosingToResponse(c *entity.CashClosing) ClosingResponse {
	return ClosingResponse{
		ID:            c.ID.String(),
		Date:          c.ClosingDate.Format(dateLayout),
		OperatorID:    c.OperatorID.String(),
		TotalSales:    c.TotalSales,
		TotalExpenses: c.TotalExpenses,
		Balance:       c.Balance,
		Notes:         c.Notes,
		CreatedAt:     c.CreatedAt,
	}
}

func TripReportToResponse(r *entity.TripReportRow) TripReportResponse {
	return TripReportResponse{
		TripID:         r.TripID.String(),
		ItineraryName:  r.ItineraryName,
		VesselName:     r.VesselName,
		DepartureAt:    r.DepartureAt,
		Status:         r.Status,
		TicketCount:    r.TicketCount,
		ParcelCount:    r.ParcelCount,
		TicketRevenue:  r.TicketRevenue,
		FreightRevenue: r.FreightRevenue,
		Expenses:       r.Expenses,
		Balance:        r.Balance(),
	}
}
