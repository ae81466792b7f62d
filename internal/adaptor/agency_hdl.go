package adaptor

import (
	"net/http"

	"boat-ticketing/internal/dto/request"
	"boat-ticketing/internal/usecase"
	"boat-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AgencyHandler struct {
	service usecase.AgencyService
	log     *zap.Logger
}

func NewAgencyHandler(service usecase.AgencyService, log *zap.Logger) *AgencyHandler {
	return &AgencyHandler{
		service: service,
		log:     log.With(zap.String("handler", "agency")),
	}
}

// ListAgencies handles GET /api/admin/agencies?active=true
func (h *AgencyHandler) ListAgencies(w http.ResponseWriter, r *http.Request) {
	agencies, err := h.service.ListAgencies(r.Context(), activeOnly(r))
	if err != nil {
		writeError(w, h.log, err, "list agencies")
		return
	}
	utils.ResponseSuccess(w, "Agencies retrieved successfully", agencies)
}

func (h *AgencyHandler) GetAgency(w http.ResponseWriter, r *http.Request) {
	agency, err := h.service.GetAgency(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err, "get agency")
		return
	}
	utils.ResponseSuccess(w, "Agency retrieved successfully", agency)
}

func (h *AgencyHandler) CreateAgency(w http.ResponseWriter, r *http.Request) {
	var req request.AgencyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	agency, err := h.service.CreateAgency(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "create agency")
		return
	}
	utils.ResponseCreated(w, "Agency created successfully", agency)
}

func (h *AgencyHandler) UpdateAgency(w http.ResponseWriter, r *http.Request) {
	var req request.AgencyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	agency, err := h.service.UpdateAgency(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err, "update agency")
		return
	}
	utils.ResponseSuccess(w, "Agency updated successfully", agency)
}

// ToggleAgency handles PATCH /api/admin/agencies/{id}/active
func (h *AgencyHandler) ToggleAgency(w http.ResponseWriter, r *http.Request) {
	var req request.ToggleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.SetAgencyActive(r.Context(), chi.URLParam(r, "id"), req.IsActive); err != nil {
		writeError(w, h.log, err, "toggle agency")
		return
	}
	utils.ResponseSuccess(w, "Agency updated successfully", nil)
}
