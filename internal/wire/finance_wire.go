package wire

import (
	"boat-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireFinance(r chi.Router, financeHandler *adaptor.FinanceHandler, d deps) {
	// Sellers read their own commissions; owners see everyone's.
	r.With(d.auth()).Get("/api/commissions", financeHandler.ListCommissions)

	r.With(d.auth(), d.admin()).Route("/api/admin/finance", func(r chi.Router) {
		r.Get("/transactions", financeHandler.ListTransactions)

		r.Get("/expenses", financeHandler.ListExpenses)
		r.Post("/expenses", financeHandler.CreateExpense)
		r.Put("/expenses/{id}", financeHandler.UpdateExpense)
		r.Delete("/expenses/{id}", financeHandler.DeleteExpense)
		r.Get("/trips/{id}/expenses", financeHandler.TripExpenses)

		r.Get("/closings", financeHandler.ListClosings)
		r.Get("/closings/preview", financeHandler.PreviewClosing) // ?date=2024-03-10
		r.Post("/closings", financeHandler.CloseCash)

		r.Get("/dashboard", financeHandler.Dashboard)
		r.Get("/trip-report", financeHandler.TripReport) // ?trip_id=
	})
}
