package wire

import (
	"boat-ticketing/internal/adaptor"
	"boat-ticketing/internal/data/entity"
	"boat-ticketing/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireParcel(r chi.Router, parcelHandler *adaptor.ParcelHandler, d deps) {
	r.Group(func(r chi.Router) {
		r.Use(d.auth())

		r.Post("/api/parcels", parcelHandler.CreateParcel)
		r.Get("/api/parcels", parcelHandler.ListParcels)
		r.Get("/api/parcels/{id}", parcelHandler.GetParcel)
	})

	r.Group(func(r chi.Router) {
		r.Use(d.auth())
		r.Use(middleware.RequireRole(d.log, entity.RoleOwner, entity.RoleCrew))

		r.Patch("/api/parcels/{id}/status", parcelHandler.ChangeStatus)
		r.Get("/api/trips/{id}/manifest", parcelHandler.Manifest)
	})
}
