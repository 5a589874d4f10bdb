package provider

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/groomspot/groomspot-api/internal/middleware"
	"github.com/groomspot/groomspot-api/internal/pkg/errorhandler"
	"github.com/groomspot/groomspot-api/internal/pkg/response"
	"github.com/groomspot/groomspot-api/internal/pkg/storage"
	"github.com/groomspot/groomspot-api/internal/pkg/validator"
)

// MaxApplicationSize caps the multipart application form (document included)
const MaxApplicationSize = 12 << 20 // 12 MB

// Handler handles provider HTTP endpoints
type Handler struct {
	service *Service
}

// NewHandler creates provider handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Apply handles POST /providers/apply
// Multipart form: business_name, city, description, address, phone + optional document
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxApplicationSize)

	if err := r.ParseMultipartForm(MaxApplicationSize); err != nil {
		response.BadRequest(w, "File too large or invalid form")
		return
	}

	req := &ApplyRequest{
		BusinessName: r.FormValue("business_name"),
		Description:  r.FormValue("description"),
		City:         r.FormValue("city"),
		Address:      r.FormValue("address"),
		Phone:        r.FormValue("phone"),
	}
	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	userID := middleware.GetUserID(r.Context())

	file, _, err := r.FormFile("document")
	if err != nil && err != http.ErrMissingFile {
		response.BadRequest(w, "Invalid document upload")
		return
	}
	if file != nil {
		defer file.Close()
	}

	profile, err := h.service.Apply(r.Context(), userID, req, file)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.Created(w, profile.ToResponse(h.service.DocumentURL(profile)))
}

// GetMine handles GET /providers/me
func (h *Handler) GetMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	profile, err := h.service.GetMine(r.Context(), userID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.OK(w, profile.ToResponse(h.service.DocumentURL(profile)))
}

// UpdateMine handles PATCH /providers/me
func (h *Handler) UpdateMine(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if details := validator.Validate(&req); details != nil {
		response.ValidationError(w, details)
		return
	}

	userID := middleware.GetUserID(r.Context())

	profile, err := h.service.UpdateMine(r.Context(), userID, &req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.OK(w, profile.ToResponse(h.service.DocumentURL(profile)))
}

// List handles GET /providers (public listing of approved groomers)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	profiles, total, err := h.service.ListApproved(r.Context(), city, limit, (page-1)*limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	items := make([]*ProfileResponse, 0, len(profiles))
	for i := range profiles {
		items = append(items, profiles[i].ToResponse(""))
	}

	pages := (total + limit - 1) / limit
	response.WithMeta(w, items, response.Meta{
		Total:   total,
		Page:    page,
		Limit:   limit,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	})
}

// Get handles GET /providers/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid provider ID")
		return
	}

	profile, err := h.service.GetApproved(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.OK(w, profile.ToResponse(""))
}

// ListPending handles GET /admin/providers/pending
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	profiles, err := h.service.ListPending(r.Context(), limit, (page-1)*limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	items := make([]*ProfileResponse, 0, len(profiles))
	for i := range profiles {
		items = append(items, profiles[i].ToResponse(h.service.DocumentURL(&profiles[i])))
	}

	response.OK(w, items)
}

// Approve handles POST /admin/providers/{id}/approve
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid provider ID")
		return
	}

	profile, err := h.service.Approve(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.OK(w, profile.ToResponse(""))
}

// Reject handles POST /admin/providers/{id}/reject
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid provider ID")
		return
	}

	var req ReviewRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	profile, err := h.service.Reject(r.Context(), id, req.Reason)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.OK(w, profile.ToResponse(""))
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrProfileNotFound):
		response.NotFound(w, "Provider profile not found")
	case errors.Is(err, ErrProfileExists):
		response.Conflict(w, "Provider profile already exists")
	case errors.Is(err, ErrOnlyGroomersCanApply):
		response.Forbidden(w, "Only groomer accounts can apply")
	case errors.Is(err, ErrNotPending):
		response.Conflict(w, "Application is not pending review")
	case errors.Is(err, ErrReasonRequired):
		response.BadRequest(w, "Rejection reason is required")
	case errors.Is(err, ErrNotApproved):
		response.NotFound(w, "Provider profile not found")
	case errors.Is(err, storage.ErrFileTooLarge):
		response.BadRequest(w, "Document exceeds the size limit")
	case errors.Is(err, storage.ErrInvalidMimeType):
		response.BadRequest(w, "Unsupported document type")
	case errors.Is(err, storage.ErrEmptyFile):
		response.BadRequest(w, "Document is empty")
	default:
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "PROVIDER_ERROR", "Failed to process provider request", err)
	}
}
