package wire

import (
	"boat-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePrice(r chi.Router, priceHandler *adaptor.PriceHandler, d deps) {
	r.With(d.auth()).Post("/api/prices/quote", priceHandler.Quote)

	r.With(d.auth(), d.admin()).Route("/api/admin/prices", func(r chi.Router) {
		r.Get("/", priceHandler.ListPrices) // ?itinerary_id=&class_id=
		r.Post("/", priceHandler.CreatePrice)
		r.Get("/{id}", priceHandler.GetPrice)
		r.Put("/{id}", priceHandler.UpdatePrice)
		r.Delete("/{id}", priceHandler.DeletePrice)
	})
}
