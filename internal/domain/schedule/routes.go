package schedule

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/groomspot/groomspot-api/internal/middleware"
)

// Routes returns schedule router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Public reads for the booking screen
	r.Get("/providers/{providerId}", h.Week)
	r.Get("/providers/{providerId}/check", h.Check)

	// Groomer hours setup
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireGroomer())
		r.Put("/days", h.SetDay)
	})

	return r
}
