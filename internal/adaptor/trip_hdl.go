package adaptor

import (
	"net/http"

	"boat-ticketing/internal/dto/request"
	"boat-ticketing/internal/usecase"
	"boat-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TripHandler struct {
	service usecase.TripService
	log     *zap.Logger
}

func NewTripHandler(service usecase.TripService, log *zap.Logger) *TripHandler {
	return &TripHandler{
		service: service,
		log:     log.With(zap.String("handler", "trip")),
	}
}

// ListTrips handles GET /api/trips?status=&itinerary_id=&from=&to=&page=&per_page=
func (h *TripHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.TripListRequest{
		PaginatedRequest: pageFromQuery(r),
		Status:           query.Get("status"),
		ItineraryID:      query.Get("itinerary_id"),
		From:             query.Get("from"),
		To:               query.Get("to"),
	}

	trips, err := h.service.ListTrips(r.Context(), req)
	if err != nil {
		writeError(w, h.log, err, "list trips")
		return
	}
	utils.ResponseSuccess(w, "Trips retrieved successfully", trips)
}

func (h *TripHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := h.service.GetTrip(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err, "get trip")
		return
	}
	utils.ResponseSuccess(w, "Trip retrieved successfully", trip)
}

func (h *TripHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req request.TripRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	trip, err := h.service.CreateTrip(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "create trip")
		return
	}
	utils.ResponseCreated(w, "Trip scheduled successfully", trip)
}

func (h *TripHandler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	var req request.TripRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	trip, err := h.service.UpdateTrip(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err, "update trip")
		return
	}
	utils.ResponseSuccess(w, "Trip updated successfully", trip)
}

// ChangeStatus handles PATCH /api/trips/{id}/status
func (h *TripHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	var req request.TripStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	trip, err := h.service.ChangeStatus(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err, "change trip status")
		return
	}
	utils.ResponseSuccess(w, "Trip status updated", trip)
}

// Availability handles GET /api/trips/{id}/availability?class_id=
func (h *TripHandler) Availability(w http.ResponseWriter, r *http.Request) {
	classID := r.URL.Query().Get("class_id")
	if classID == "" {
		utils.ResponseBadRequest(w, "class_id is required", nil)
		return
	}

	availability, err := h.service.Availability(r.Context(), chi.URLParam(r, "id"), classID)
	if err != nil {
		writeError(w, h.log, err, "check availability")
		return
	}
	utils.ResponseSuccess(w, "Availability retrieved successfully", availability)
}
