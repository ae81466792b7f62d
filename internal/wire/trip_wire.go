package wire

import (
	"boat-ticketing/internal/adaptor"
	"boat-ticketing/internal/data/entity"
	"boat-ticketing/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireTrip(r chi.Router, tripHandler *adaptor.TripHandler, d deps) {
	r.Group(func(r chi.Router) {
		r.Use(d.auth())

		r.Get("/api/trips", tripHandler.ListTrips) // ?itinerary_id=&status=&from=&to=&page=
		r.Get("/api/trips/{id}", tripHandler.GetTrip)
		r.Get("/api/trips/{id}/availability", tripHandler.Availability) // ?class_id=
	})

	// Crew reports departures and arrivals.
	r.With(d.auth(), middleware.RequireRole(d.log, entity.RoleOwner, entity.RoleCrew)).
		Patch("/api/trips/{id}/status", tripHandler.ChangeStatus)

	r.With(d.auth(), d.admin()).Route("/api/admin/trips", func(r chi.Router) {
		r.Post("/", tripHandler.CreateTrip)
		r.Put("/{id}", tripHandler.UpdateTrip)
	})
}
