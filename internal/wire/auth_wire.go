package wire

import (
	"boat-ticketing/internal/adaptor"
	"boat-ticketing/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, d deps) {
	// ==================== PUBLIC ROUTES ====================
	r.With(middleware.RateLimit(d.config.RateLimit, d.rdb, "login", d.log)).
		Post("/api/login", authHandler.Login)

	// ==================== PROTECTED ROUTES ====================
	r.With(d.auth()).Post("/api/logout", authHandler.Logout)
}
