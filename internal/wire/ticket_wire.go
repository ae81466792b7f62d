package wire

import (
	"boat-ticketing/internal/adaptor"
	"boat-ticketing/internal/data/entity"
	"boat-ticketing/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireTicket(r chi.Router, ticketHandler *adaptor.TicketHandler, d deps) {
	r.Group(func(r chi.Router) {
		r.Use(d.auth())

		r.With(middleware.RateLimit(d.config.RateLimit, d.rdb, "sell", d.log)).
			Post("/api/tickets", ticketHandler.Sell)
		r.Get("/api/tickets", ticketHandler.ListTickets) // sellers only see their own
		r.Get("/api/tickets/{ref}", ticketHandler.GetTicket)
	})

	// ref is either the ticket id or its printed code.
	r.With(d.auth(), middleware.RequireRole(d.log, entity.RoleOwner, entity.RoleCrew)).
		Post("/api/tickets/{ref}/validate", ticketHandler.ValidateTicket)

	r.With(d.auth(), d.admin()).Patch("/api/admin/tickets/{ref}/status", ticketHandler.ChangeStatus)
}
