package adaptor

import (
	"net/http"

	"boat-ticketing/internal/dto/request"
	"boat-ticketing/internal/usecase"
	"boat-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type FleetHandler struct {
	service usecase.FleetService
	log     *zap.Logger
}

func NewFleetHandler(service usecase.FleetService, log *zap.Logger) *FleetHandler {
	return &FleetHandler{
		service: service,
		log:     log.With(zap.String("handler", "fleet")),
	}
}

// ==================== ACCOMMODATION CLASSES ====================

func (h *FleetHandler) ListClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.service.ListClasses(r.Context())
	if err != nil {
		writeError(w, h.log, err, "list classes")
		return
	}
	utils.ResponseSuccess(w, "Classes retrieved successfully", classes)
}

func (h *FleetHandler) CreateClass(w http.ResponseWriter, r *http.Request) {
	var req request.AccommodationClassRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	class, err := h.service.CreateClass(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "create class")
		return
	}
	utils.ResponseCreated(w, "Class created successfully", class)
}

func (h *FleetHandler) UpdateClass(w http.ResponseWriter, r *http.Request) {
	var req request.AccommodationClassRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	class, err := h.service.UpdateClass(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err, "update class")
		return
	}
	utils.ResponseSuccess(w, "Class updated successfully", class)
}

func (h *FleetHandler) DeleteClass(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteClass(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.log, err, "delete class")
		return
	}
	utils.ResponseSuccess(w, "Class deleted successfully", nil)
}

// ==================== VESSELS ====================

// ListVessels handles GET /api/vessels?active=true
func (h *FleetHandler) ListVessels(w http.ResponseWriter, r *http.Request) {
	vessels, err := h.service.ListVessels(r.Context(), activeOnly(r))
	if err != nil {
		writeError(w, h.log, err, "list vessels")
		return
	}
	utils.ResponseSuccess(w, "Vessels retrieved successfully", vessels)
}

func (h *FleetHandler) GetVessel(w http.ResponseWriter, r *http.Request) {
	vessel, err := h.service.GetVessel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err, "get vessel")
		return
	}
	utils.ResponseSuccess(w, "Vessel retrieved successfully", vessel)
}

func (h *FleetHandler) CreateVessel(w http.ResponseWriter, r *http.Request) {
	var req request.VesselRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	vessel, err := h.service.CreateVessel(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "create vessel")
		return
	}
	utils.ResponseCreated(w, "Vessel created successfully", vessel)
}

// UpdateVessel handles PUT /api/admin/vessels/{id}. The accommodation list replaces
// the current layout.
func (h *FleetHandler) UpdateVessel(w http.ResponseWriter, r *http.Request) {
	var req request.VesselRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	vessel, err := h.service.UpdateVessel(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err, "update vessel")
		return
	}
	utils.ResponseSuccess(w, "Vessel updated successfully", vessel)
}

func (h *FleetHandler) ToggleVessel(w http.ResponseWriter, r *http.Request) {
	var req request.ToggleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.SetVesselActive(r.Context(), chi.URLParam(r, "id"), req.IsActive); err != nil {
		writeError(w, h.log, err, "toggle vessel")
		return
	}
	utils.ResponseSuccess(w, "Vessel updated successfully", nil)
}

// ==================== ALLOCATIONS ====================

// UpsertAllocation handles PUT /api/admin/vessels/{id}/allocations
func (h *FleetHandler) UpsertAllocation(w http.ResponseWriter, r *http.Request) {
	var req request.AllocationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	allocation, err := h.service.UpsertAllocation(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err, "upsert allocation")
		return
	}
	utils.ResponseSuccess(w, "Allocation saved successfully", allocation)
}

// DeleteAllocation handles DELETE /api/admin/vessels/{id}/allocations/{classID}
func (h *FleetHandler) DeleteAllocation(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteAllocation(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "classID"))
	if err != nil {
		writeError(w, h.log, err, "delete allocation")
		return
	}
	utils.ResponseSuccess(w, "Allocation deleted successfully", nil)
}

// ==================== SECTORS ====================

func (h *FleetHandler) ListSectors(w http.ResponseWriter, r *http.Request) {
	sectors, err := h.service.ListSectors(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err, "list sectors")
		return
	}
	utils.ResponseSuccess(w, "Sectors retrieved successfully", sectors)
}

func (h *FleetHandler) CreateSector(w http.ResponseWriter, r *http.Request) {
	var req request.SectorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sector, err := h.service.CreateSector(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err, "create sector")
		return
	}
	utils.ResponseCreated(w, "Sector created successfully", sector)
}

func (h *FleetHandler) UpdateSector(w http.ResponseWriter, r *http.Request) {
	var req request.SectorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sector, err := h.service.UpdateSector(r.Context(), chi.URLParam(r, "sectorID"), &req)
	if err != nil {
		writeError(w, h.log, err, "update sector")
		return
	}
	utils.ResponseSuccess(w, "Sector updated successfully", sector)
}

func (h *FleetHandler) DeleteSector(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSector(r.Context(), chi.URLParam(r, "sectorID")); err != nil {
		writeError(w, h.log, err, "delete sector")
		return
	}
	utils.ResponseSuccess(w, "Sector deleted successfully", nil)
}
