package adaptor

import (
	"net/http"

	"boat-ticketing/internal/dto/request"
	"boat-ticketing/internal/usecase"
	"boat-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type FinanceHandler struct {
	service usecase.FinanceService
	log     *zap.Logger
}

func NewFinanceHandler(service usecase.FinanceService, log *zap.Logger) *FinanceHandler {
	return &FinanceHandler{
		service: service,
		log:     log.With(zap.String("handler", "finance")),
	}
}

// ListTransactions handles GET /api/admin/finance/transactions?kind=&from=&to=&page=&per_page=
func (h *FinanceHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.TransactionListRequest{
		PaginatedRequest: pageFromQuery(r),
		Kind:             query.Get("kind"),
		From:             query.Get("from"),
		To:               query.Get("to"),
	}

	txns, err := h.service.ListTransactions(r.Context(), req)
	if err != nil {
		writeError(w, h.log, err, "list transactions")
		return
	}
	utils.ResponseSuccess(w, "Transactions retrieved successfully", txns)
}

// ==================== EXPENSES ====================

func (h *FinanceHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	req := pageFromQuery(r)
	expenses, err := h.service.ListExpenses(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "list expenses")
		return
	}
	utils.ResponseSuccess(w, "Expenses retrieved successfully", expenses)
}

// TripExpenses handles GET /api/admin/finance/trips/{id}/expenses
func (h *FinanceHandler) TripExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.service.TripExpenses(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err, "trip expenses")
		return
	}
	utils.ResponseSuccess(w, "Expenses retrieved successfully", expenses)
}

func (h *FinanceHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req request.ExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	expense, err := h.service.CreateExpense(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "create expense")
		return
	}
	utils.ResponseCreated(w, "Expense recorded", expense)
}

func (h *FinanceHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req request.ExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	expense, err := h.service.UpdateExpense(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err, "update expense")
		return
	}
	utils.ResponseSuccess(w, "Expense updated", expense)
}

func (h *FinanceHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteExpense(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.log, err, "delete expense")
		return
	}
	utils.ResponseSuccess(w, "Expense deleted", nil)
}

// ==================== CASH CLOSING ====================

// PreviewClosing handles GET /api/admin/finance/closings/preview?date=2024-03-10
func (h *FinanceHandler) PreviewClosing(w http.ResponseWriter, r *http.Request) {
	preview, err := h.service.PreviewClosing(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, h.log, err, "preview closing")
		return
	}
	utils.ResponseSuccess(w, "Closing preview", preview)
}

func (h *FinanceHandler) CloseCash(w http.ResponseWriter, r *http.Request) {
	var req request.CloseCashRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	closing, err := h.service.CloseCash(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "close cash")
		return
	}
	utils.ResponseCreated(w, "Cash closed", closing)
}

func (h *FinanceHandler) ListClosings(w http.ResponseWriter, r *http.Request) {
	req := pageFromQuery(r)
	closings, err := h.service.ListClosings(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "list closings")
		return
	}
	utils.ResponseSuccess(w, "Closings retrieved successfully", closings)
}

// ==================== REPORTS ====================

// ListCommissions handles GET /api/commissions?seller_id=&from=&to=
func (h *FinanceHandler) ListCommissions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.CommissionListRequest{
		SellerID: query.Get("seller_id"),
		From:     query.Get("from"),
		To:       query.Get("to"),
	}

	summary, err := h.service.ListCommissions(r.Context(), req)
	if err != nil {
		writeError(w, h.log, err, "list commissions")
		return
	}
	utils.ResponseSuccess(w, "Commissions retrieved successfully", summary)
}

func (h *FinanceHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		writeError(w, h.log, err, "dashboard")
		return
	}
	utils.ResponseSuccess(w, "Dashboard retrieved successfully", dashboard)
}

// TripReport handles GET /api/admin/finance/trip-report?trip_id=
func (h *FinanceHandler) TripReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.TripReport(r.Context(), r.URL.Query().Get("trip_id"))
	if err != nil {
		writeError(w, h.log, err, "trip report")
		return
	}
	utils.ResponseSuccess(w, "Trip report retrieved successfully", report)
}
