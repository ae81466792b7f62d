package wire

import (
	"boat-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireFleet(r chi.Router, fleetHandler *adaptor.FleetHandler, d deps) {
	// ==================== READ ROUTES (any staff) ====================
	r.Group(func(r chi.Router) {
		r.Use(d.auth())

		r.Get("/api/classes", fleetHandler.ListClasses)
		r.Get("/api/vessels", fleetHandler.ListVessels)
		r.Get("/api/vessels/{id}", fleetHandler.GetVessel)
		r.Get("/api/vessels/{id}/sectors", fleetHandler.ListSectors)
	})

	// ==================== ADMIN ROUTES ====================
	r.With(d.auth(), d.admin()).Route("/api/admin/classes", func(r chi.Router) {
		r.Post("/", fleetHandler.CreateClass)
		r.Put("/{id}", fleetHandler.UpdateClass)
		r.Delete("/{id}", fleetHandler.DeleteClass)
	})

	r.With(d.auth(), d.admin()).Route("/api/admin/vessels", func(r chi.Router) {
		r.Post("/", fleetHandler.CreateVessel)
		r.Put("/{id}", fleetHandler.UpdateVessel)
		r.Patch("/{id}/active", fleetHandler.ToggleVessel)

		r.Put("/{id}/allocations", fleetHandler.UpsertAllocation)
		r.Delete("/{id}/allocations/{classID}", fleetHandler.DeleteAllocation)

		r.Post("/{id}/sectors", fleetHandler.CreateSector)
		r.Put("/{id}/sectors/{sectorID}", fleetHandler.UpdateSector)
		r.Delete("/{id}/sectors/{sectorID}", fleetHandler.DeleteSector)
	})
}
