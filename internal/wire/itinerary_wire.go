package wire

import (
	"boat-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireItinerary(r chi.Router, itineraryHandler *adaptor.ItineraryHandler, d deps) {
	r.Group(func(r chi.Router) {
		r.Use(d.auth())

		r.Get("/api/itineraries", itineraryHandler.ListItineraries)
		r.Get("/api/itineraries/{id}", itineraryHandler.GetItinerary)
	})

	r.With(d.auth(), d.admin()).Route("/api/admin/itineraries", func(r chi.Router) {
		r.Post("/", itineraryHandler.CreateItinerary)
		r.Put("/{id}", itineraryHandler.UpdateItinerary)
		r.Patch("/{id}/active", itineraryHandler.ToggleItinerary)

		r.Post("/{id}/stops", itineraryHandler.AddStop)
		r.Put("/{id}/stops/{stopID}", itineraryHandler.UpdateStop)
		r.Delete("/{id}/stops/{stopID}", itineraryHandler.DeleteStop)
		r.Post("/{id}/stops/{stopID}/move", itineraryHandler.MoveStop)
	})
}
