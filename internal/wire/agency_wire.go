package wire

import (
	"boat-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAgency(r chi.Router, agencyHandler *adaptor.AgencyHandler, d deps) {
	r.With(d.auth(), d.admin()).Route("/api/admin/agencies", func(r chi.Router) {
		r.Get("/", agencyHandler.ListAgencies) // ?active=true
		r.Post("/", agencyHandler.CreateAgency)
		r.Get("/{id}", agencyHandler.GetAgency)
		r.Put("/{id}", agencyHandler.UpdateAgency)
		r.Patch("/{id}/active", agencyHandler.ToggleAgency)
	})
}
