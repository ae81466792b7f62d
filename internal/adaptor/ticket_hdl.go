package adaptor

import (
	"net/http"

	"boat-ticketing/internal/dto/request"
	"boat-ticketing/internal/usecase"
	"boat-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TicketHandler struct {
	service usecase.TicketService
	log     *zap.Logger
}

func NewTicketHandler(service usecase.TicketService, log *zap.Logger) *TicketHandler {
	return &TicketHandler{
		service: service,
		log:     log.With(zap.String("handler", "ticket")),
	}
}

// Sell handles POST /api/tickets (protected)
func (h *TicketHandler) Sell(w http.ResponseWriter, r *http.Request) {
	var req request.SellTicketRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ticket, err := h.service.Sell(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "sell ticket")
		return
	}
	utils.ResponseCreated(w, "Ticket sold", ticket)
}

// ListTickets handles GET /api/tickets?trip_id=&status=&search=&page=&per_page=
func (h *TicketHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.TicketListRequest{
		PaginatedRequest: pageFromQuery(r),
		TripID:           query.Get("trip_id"),
		Status:           query.Get("status"),
		Search:           query.Get("search"),
	}

	tickets, err := h.service.ListTickets(r.Context(), req)
	if err != nil {
		writeError(w, h.log, err, "list tickets")
		return
	}
	utils.ResponseSuccess(w, "Tickets retrieved successfully", tickets)
}

// GetTicket handles GET /api/tickets/{ref}; ref is an id or a ticket code
func (h *TicketHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.service.GetTicket(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		writeError(w, h.log, err, "get ticket")
		return
	}
	utils.ResponseSuccess(w, "Ticket retrieved successfully", ticket)
}

// ValidateTicket handles POST /api/tickets/{ref}/validate at boarding
func (h *TicketHandler) ValidateTicket(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.service.Validate(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		writeError(w, h.log, err, "validate ticket")
		return
	}
	utils.ResponseSuccess(w, "Ticket validated", ticket)
}

// ChangeStatus handles PATCH /api/admin/tickets/{ref}/status
func (h *TicketHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	var req request.TicketStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ticket, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "ref"), &req)
	if err != nil {
		writeError(w, h.log, err, "change ticket status")
		return
	}
	utils.ResponseSuccess(w, "Ticket status updated", ticket)
}
