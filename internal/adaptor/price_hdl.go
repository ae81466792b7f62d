package adaptor

import (
	"net/http"

	"boat-ticketing/internal/dto/request"
	"boat-ticketing/internal/usecase"
	"boat-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PriceHandler struct {
	service usecase.PriceService
	log     *zap.Logger
}

func NewPriceHandler(service usecase.PriceService, log *zap.Logger) *PriceHandler {
	return &PriceHandler{
		service: service,
		log:     log.With(zap.String("handler", "price")),
	}
}

// ListPrices handles GET /api/admin/prices?itinerary_id=&class_id=
func (h *PriceHandler) ListPrices(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	prices, err := h.service.ListPrices(r.Context(), query.Get("itinerary_id"), query.Get("class_id"))
	if err != nil {
		writeError(w, h.log, err, "list prices")
		return
	}
	utils.ResponseSuccess(w, "Prices retrieved successfully", prices)
}

func (h *PriceHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	price, err := h.service.GetPrice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err, "get price")
		return
	}
	utils.ResponseSuccess(w, "Price retrieved successfully", price)
}

func (h *PriceHandler) CreatePrice(w http.ResponseWriter, r *http.Request) {
	var req request.PriceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	price, err := h.service.CreatePrice(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "create price")
		return
	}
	utils.ResponseCreated(w, "Price created successfully", price)
}

func (h *PriceHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	var req request.PriceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	price, err := h.service.UpdatePrice(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err, "update price")
		return
	}
	utils.ResponseSuccess(w, "Price updated successfully", price)
}

func (h *PriceHandler) DeletePrice(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePrice(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.log, err, "delete price")
		return
	}
	utils.ResponseSuccess(w, "Price deleted successfully", nil)
}

// Quote handles POST /api/prices/quote: today's fare and remaining capacity for a
// segment, nothing is sold.
func (h *PriceHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req request.QuoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	quote, err := h.service.Quote(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "quote")
		return
	}
	utils.ResponseSuccess(w, "Quote calculated", quote)
}
