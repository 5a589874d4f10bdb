package catalog

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/groomspot/groomspot-api/internal/domain/provider"
	"github.com/groomspot/groomspot-api/internal/middleware"
	"github.com/groomspot/groomspot-api/internal/pkg/errorhandler"
	"github.com/groomspot/groomspot-api/internal/pkg/response"
	"github.com/groomspot/groomspot-api/internal/pkg/validator"
)

// Handler handles catalog HTTP endpoints
type Handler struct {
	service *CatalogService
}

// NewHandler creates catalog handler
func NewHandler(service *CatalogService) *Handler {
	return &Handler{service: service}
}

// CreateService handles POST /catalog/services
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if details := validator.Validate(&req); details != nil {
		response.ValidationError(w, details)
		return
	}

	svc, err := h.service.CreateService(r.Context(), middleware.GetUserID(r.Context()), &req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.Created(w, svc.ToResponse(nil))
}

// UpdateService handles PATCH /catalog/services/{id}
func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	serviceID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid service ID")
		return
	}

	var req UpdateServiceRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if details := validator.Validate(&req); details != nil {
		response.ValidationError(w, details)
		return
	}

	svc, err := h.service.UpdateService(r.Context(), middleware.GetUserID(r.Context()), serviceID, &req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.OK(w, svc.ToResponse(nil))
}

// DeleteService handles DELETE /catalog/services/{id}
func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	serviceID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid service ID")
		return
	}

	if err := h.service.DeleteService(r.Context(), middleware.GetUserID(r.Context()), serviceID); err != nil {
		h.handleError(w, r, err)
		return
	}

	response.NoContent(w)
}

// GetService handles GET /catalog/services/{id}
func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	serviceID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid service ID")
		return
	}

	svc, options, err := h.service.GetService(r.Context(), serviceID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.OK(w, svc.ToResponse(options))
}

// ListByProvider handles GET /catalog/providers/{providerId}/services
func (h *Handler) ListByProvider(w http.ResponseWriter, r *http.Request) {
	providerID, err := uuid.Parse(chi.URLParam(r, "providerId"))
	if err != nil {
		response.BadRequest(w, "Invalid provider ID")
		return
	}

	services, err := h.service.ListByProvider(r.Context(), providerID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.OK(w, services)
}

// AddOption handles POST /catalog/services/{id}/options
func (h *Handler) AddOption(w http.ResponseWriter, r *http.Request) {
	serviceID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid service ID")
		return
	}

	var req OptionRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if details := validator.Validate(&req); details != nil {
		response.ValidationError(w, details)
		return
	}

	opt, err := h.service.AddOption(r.Context(), middleware.GetUserID(r.Context()), serviceID, &req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.Created(w, opt.ToResponse())
}

// UpdateOption handles PUT /catalog/services/{id}/options/{optionId}
func (h *Handler) UpdateOption(w http.ResponseWriter, r *http.Request) {
	serviceID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid service ID")
		return
	}
	optionID, err := uuid.Parse(chi.URLParam(r, "optionId"))
	if err != nil {
		response.BadRequest(w, "Invalid option ID")
		return
	}

	var req OptionRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if details := validator.Validate(&req); details != nil {
		response.ValidationError(w, details)
		return
	}

	opt, err := h.service.UpdateOption(r.Context(), middleware.GetUserID(r.Context()), serviceID, optionID, &req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.OK(w, opt.ToResponse())
}

// DeleteOption handles DELETE /catalog/services/{id}/options/{optionId}
func (h *Handler) DeleteOption(w http.ResponseWriter, r *http.Request) {
	serviceID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid service ID")
		return
	}
	optionID, err := uuid.Parse(chi.URLParam(r, "optionId"))
	if err != nil {
		response.BadRequest(w, "Invalid option ID")
		return
	}

	if err := h.service.DeleteOption(r.Context(), middleware.GetUserID(r.Context()), serviceID, optionID); err != nil {
		h.handleError(w, r, err)
		return
	}

	response.NoContent(w)
}

// Resolve handles GET /catalog/services/{id}/price?pet_type=&size_key=
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	serviceID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid service ID")
		return
	}

	req := ResolveRequest{
		PetType: r.URL.Query().Get("pet_type"),
		SizeKey: r.URL.Query().Get("size_key"),
	}
	if details := validator.Validate(&req); details != nil {
		response.ValidationError(w, details)
		return
	}

	price, err := h.service.Resolve(r.Context(), serviceID, PetType(req.PetType), SizeKey(req.SizeKey))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.OK(w, ResolveResponse{
		ServiceID: serviceID,
		PetType:   PetType(req.PetType),
		SizeKey:   SizeKey(req.SizeKey),
		Price:     price,
	})
}

// SizeHints handles GET /catalog/services/{id}/size-hints?pet_type=
func (h *Handler) SizeHints(w http.ResponseWriter, r *http.Request) {
	serviceID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid service ID")
		return
	}

	petType := r.URL.Query().Get("pet_type")
	if err := validator.ValidateVar(petType, "required,pet_type"); err != nil {
		response.BadRequest(w, "Invalid pet type")
		return
	}

	hints, err := h.service.SizeHints(r.Context(), serviceID, PetType(petType))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.OK(w, hints)
}

// SubmitDraft handles POST /catalog/draft
func (h *Handler) SubmitDraft(w http.ResponseWriter, r *http.Request) {
	var req DraftRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if details := validator.Validate(&req); details != nil {
		response.ValidationError(w, details)
		return
	}

	services, err := h.service.SubmitDraft(r.Context(), middleware.GetUserID(r.Context()), &req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.Created(w, services)
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var conflict *Conflict
	switch {
	case errors.As(err, &conflict):
		response.ErrorWithDetails(w, http.StatusConflict, "PRICING_CONFLICT", conflict.Message, conflict.Details())
	case errors.Is(err, ErrServiceNotFound):
		response.NotFound(w, "Service not found")
	case errors.Is(err, ErrOptionNotFound):
		response.NotFound(w, "Pricing option not found")
	case errors.Is(err, ErrPriceNotFound):
		response.NotFound(w, "No price for this pet type and size")
	case errors.Is(err, ErrNotServiceOwner):
		response.Forbidden(w, "Service belongs to another provider")
	case errors.Is(err, provider.ErrProfileNotFound):
		response.NotFound(w, "Provider profile not found")
	case errors.Is(err, ErrDraftEmpty):
		response.BadRequest(w, "Draft has no services")
	case errors.Is(err, ErrDraftServiceNoPrices):
		response.BadRequest(w, "Every draft service needs at least one pricing option")
	default:
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "CATALOG_ERROR", "Failed to process catalog request", err)
	}
}
