package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/groomspot/groomspot-api/internal/middleware"
)

// Routes returns catalog router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Public reads for the booking screen
	r.Get("/providers/{providerId}/services", h.ListByProvider)
	r.Get("/services/{id}", h.GetService)
	r.Get("/services/{id}/price", h.Resolve)
	r.Get("/services/{id}/size-hints", h.SizeHints)

	// Groomer catalog setup
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireGroomer())
		r.Post("/services", h.CreateService)
		r.Patch("/services/{id}", h.UpdateService)
		r.Delete("/services/{id}", h.DeleteService)
		r.Post("/services/{id}/options", h.AddOption)
		r.Put("/services/{id}/options/{optionId}", h.UpdateOption)
		r.Delete("/services/{id}/options/{optionId}", h.DeleteOption)
		r.Post("/draft", h.SubmitDraft)
	})

	return r
}
