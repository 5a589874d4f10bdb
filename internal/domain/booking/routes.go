package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/groomspot/groomspot-api/internal/middleware"
)

// Routes returns booking router. Everything requires authentication;
// per-booking ownership is checked in the service.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	// Owner side
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireOwner())
		r.Post("/", h.Create)
		r.Get("/", h.ListMine)
		r.Post("/{id}/cancel", h.Cancel)
		r.Post("/{id}/payment-proof", h.SubmitProof)
	})

	// Groomer side
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireGroomer())
		r.Get("/provider", h.ListForProvider)
		r.Post("/{id}/approve", h.Approve)
		r.Post("/{id}/decline", h.Decline)
		r.Post("/{id}/accept-payment", h.AcceptPayment)
		r.Post("/{id}/void", h.Void)
	})

	// Either actor
	r.Get("/{id}", h.Get)
	r.Post("/{id}/reschedule", h.Reschedule)

	return r
}
