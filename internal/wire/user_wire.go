package wire

import (
	"boat-ticketing/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, d deps) {
	r.With(d.auth()).Get("/api/user/profile", userHandler.GetProfile)

	// ==================== ADMIN ROUTES ====================
	r.With(d.auth(), d.admin()).Route("/api/admin/users", func(r chi.Router) {
		r.Get("/", userHandler.GetAllUsers)    // GET /api/admin/users?page=1&per_page=10
		r.Post("/", userHandler.CreateUser)    // POST /api/admin/users
		r.Put("/{id}", userHandler.UpdateUser) // PUT /api/admin/users/{id}
	})
}
