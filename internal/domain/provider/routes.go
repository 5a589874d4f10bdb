package provider

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/groomspot/groomspot-api/internal/middleware"
)

// Routes returns provider router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Public listing for owners browsing groomers
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)

	// Groomer routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireGroomer())
		r.Post("/apply", h.Apply)
		r.Get("/me", h.GetMine)
		r.Patch("/me", h.UpdateMine)
	})

	return r
}

// AdminRoutes returns provider moderation router (mounted under /admin)
func (h *Handler) AdminRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Use(middleware.RequireAdmin())

	r.Get("/pending", h.ListPending)
	r.Post("/{id}/approve", h.Approve)
	r.Post("/{id}/reject", h.Reject)

	return r
}
