package adaptor

import (
	"net/http"

	"boat-ticketing/internal/dto/request"
	"boat-ticketing/internal/usecase"
	"boat-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ParcelHandler struct {
	service usecase.ParcelService
	log     *zap.Logger
}

func NewParcelHandler(service usecase.ParcelService, log *zap.Logger) *ParcelHandler {
	return &ParcelHandler{
		service: service,
		log:     log.With(zap.String("handler", "parcel")),
	}
}

func (h *ParcelHandler) CreateParcel(w http.ResponseWriter, r *http.Request) {
	var req request.CreateParcelRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	parcel, err := h.service.CreateParcel(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "create parcel")
		return
	}
	utils.ResponseCreated(w, "Parcel received", parcel)
}

func (h *ParcelHandler) ListParcels(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ParcelListRequest{
		PaginatedRequest: pageFromQuery(r),
		TripID:           query.Get("trip_id"),
		Status:           query.Get("status"),
	}

	parcels, err := h.service.ListParcels(r.Context(), req)
	if err != nil {
		writeError(w, h.log, err, "list parcels")
		return
	}
	utils.ResponseSuccess(w, "Parcels retrieved successfully", parcels)
}

func (h *ParcelHandler) GetParcel(w http.ResponseWriter, r *http.Request) {
	parcel, err := h.service.GetParcel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err, "get parcel")
		return
	}
	utils.ResponseSuccess(w, "Parcel retrieved successfully", parcel)
}

func (h *ParcelHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	var req request.ParcelStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	parcel, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeError(w, h.log, err, "change parcel status")
		return
	}
	utils.ResponseSuccess(w, "Parcel status updated", parcel)
}

// Manifest handles GET /api/trips/{id}/manifest
func (h *ParcelHandler) Manifest(w http.ResponseWriter, r *http.Request) {
	parcels, err := h.service.Manifest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err, "trip manifest")
		return
	}
	utils.ResponseSuccess(w, "Manifest retrieved successfully", parcels)
}
