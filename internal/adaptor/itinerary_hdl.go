package adaptor

import (
	"net/http"

	"boat-ticketing/internal/dto/request"
	"boat-ticketing/internal/usecase"
	"boat-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ItineraryHandler struct {
	service usecase.ItineraryService
	log     *zap.Logger
}

func NewItineraryHandler(service usecase.ItineraryService, log *zap.Logger) *ItineraryHandler {
	return &ItineraryHandler{
		service: service,
		log:     log.With(zap.String("handler", "itinerary")),
	}
}

// ListItineraries handles GET /api/itineraries?active=true
func (h *ItineraryHandler) ListItineraries(w http.ResponseWriter, r *http.Request) {
	itineraries, err := h.service.ListItineraries(r.Context(), activeOnly(r))
	if err != nil {
		writeError(w, h.log, err, "list itineraries")
		return
	}
	utils.ResponseSuccess(w, "Itineraries retrieved successfully", itineraries)
}

// GetItinerary handles GET /api/itineraries/{id}, stops included
func (h *ItineraryHandler) GetItinerary(w http.ResponseWriter, r *http.Request) {
	itinerary, err := h.service.GetItinerary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err, "get itinerary")
		return
	}
	utils.ResponseSuccess(w, "Itinerary retrieved successfully", itinerary)
}

func (h *ItineraryHandler) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	var req request.CreateItineraryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	itinerary, err := h.service.CreateItinerary(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "create itinerary")
		return
	}
	utils.ResponseCreated(w, "Itinerary created successfully", itinerary)
}

func (h *ItineraryHandler) UpdateItinerary(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateItineraryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	itinerary, err := h.service.UpdateItinerary(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err, "update itinerary")
		return
	}
	utils.ResponseSuccess(w, "Itinerary updated successfully", itinerary)
}

func (h *ItineraryHandler) ToggleItinerary(w http.ResponseWriter, r *http.Request) {
	var req request.ToggleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.SetItineraryActive(r.Context(), chi.URLParam(r, "id"), req.IsActive); err != nil {
		writeError(w, h.log, err, "toggle itinerary")
		return
	}
	utils.ResponseSuccess(w, "Itinerary updated successfully", nil)
}

// ==================== STOPS ====================

func (h *ItineraryHandler) AddStop(w http.ResponseWriter, r *http.Request) {
	var req request.StopRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	stop, err := h.service.AddStop(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err, "add stop")
		return
	}
	utils.ResponseCreated(w, "Stop added successfully", stop)
}

func (h *ItineraryHandler) UpdateStop(w http.ResponseWriter, r *http.Request) {
	var req request.StopRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	stop, err := h.service.UpdateStop(r.Context(), chi.URLParam(r, "stopID"), &req)
	if err != nil {
		writeError(w, h.log, err, "update stop")
		return
	}
	utils.ResponseSuccess(w, "Stop updated successfully", stop)
}

func (h *ItineraryHandler) DeleteStop(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteStop(r.Context(), chi.URLParam(r, "stopID")); err != nil {
		writeError(w, h.log, err, "delete stop")
		return
	}
	utils.ResponseSuccess(w, "Stop deleted successfully", nil)
}

// MoveStop handles POST /api/admin/itineraries/{id}/stops/{stopID}/move
// body: {"direction": "up"|"down"}
func (h *ItineraryHandler) MoveStop(w http.ResponseWriter, r *http.Request) {
	var req request.MoveStopRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	stops, err := h.service.MoveStop(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "stopID"), &req)
	if err != nil {
		writeError(w, h.log, err, "move stop")
		return
	}
	utils.ResponseSuccess(w, "Stop moved successfully", stops)
}
