package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/groomspot/groomspot-api/internal/domain/catalog"
	"github.com/groomspot/groomspot-api/internal/domain/provider"
	"github.com/groomspot/groomspot-api/internal/domain/schedule"
	"github.com/groomspot/groomspot-api/internal/middleware"
	"github.com/groomspot/groomspot-api/internal/pkg/errorhandler"
	"github.com/groomspot/groomspot-api/internal/pkg/response"
	"github.com/groomspot/groomspot-api/internal/pkg/storage"
	"github.com/groomspot/groomspot-api/internal/pkg/validator"
)

// MaxProofSize caps the payment proof multipart form
const MaxProofSize = 12 << 20 // 12 MB

// Handler handles booking HTTP endpoints
type Handler struct {
	service *BookingService
}

// NewHandler creates booking handler
func NewHandler(service *BookingService) *Handler {
	return &Handler{service: service}
}

// Create handles POST /bookings
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if details := validator.Validate(&req); details != nil {
		response.ValidationError(w, details)
		return
	}

	b, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), &req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.Created(w, b.ToResponse(h.service.Now(), "", nil))
}

// Get handles GET /bookings/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	ctx := r.Context()
	b, pets, err := h.service.Get(ctx, middleware.GetUserID(ctx), middleware.GetRole(ctx), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.OK(w, b.ToResponse(h.service.Now(), h.service.ProofURL(b), pets))
}

// ListMine handles GET /bookings (owner dashboard)
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)

	bookings, total, err := h.service.ListForOwner(r.Context(), middleware.GetUserID(r.Context()), limit, (page-1)*limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeList(w, bookings, total, page, limit)
}

// ListForProvider handles GET /bookings/provider (groomer dashboard)
func (h *Handler) ListForProvider(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)

	var status *Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := Status(raw)
		status = &s
	}

	bookings, total, err := h.service.ListForProvider(r.Context(), middleware.GetUserID(r.Context()), status, limit, (page-1)*limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeList(w, bookings, total, page, limit)
}

// Approve handles POST /bookings/{id}/approve
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, EventApprove, false)
}

// Decline handles POST /bookings/{id}/decline
func (h *Handler) Decline(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, EventDecline, true)
}

// Cancel handles POST /bookings/{id}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, EventCancel, false)
}

// AcceptPayment handles POST /bookings/{id}/accept-payment
func (h *Handler) AcceptPayment(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, EventAcceptPayment, false)
}

// Void handles POST /bookings/{id}/void
func (h *Handler) Void(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, EventVoid, true)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, event Event, withReason bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	var reason string
	if withReason {
		var req ReasonRequest
		if err := response.DecodeJSON(r.Body, &req); err != nil {
			response.BadRequest(w, "Invalid request body")
			return
		}
		if details := validator.Validate(&req); details != nil {
			response.ValidationError(w, details)
			return
		}
		reason = req.Reason
	}

	ctx := r.Context()
	b, err := h.service.Transition(ctx, middleware.GetUserID(ctx), middleware.GetRole(ctx), id, event, reason)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.OK(w, b.ToResponse(h.service.Now(), "", nil))
}

// SubmitProof handles POST /bookings/{id}/payment-proof
// Multipart form: proof file + reference_number
func (h *Handler) SubmitProof(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxProofSize)
	if err := r.ParseMultipartForm(MaxProofSize); err != nil {
		response.BadRequest(w, "File too large or invalid form")
		return
	}

	file, _, err := r.FormFile("proof")
	if err != nil {
		response.BadRequest(w, "No proof file provided")
		return
	}
	defer file.Close()

	reference := r.FormValue("reference_number")

	b, err := h.service.SubmitProof(r.Context(), middleware.GetUserID(r.Context()), id, file, reference)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.OK(w, b.ToResponse(h.service.Now(), h.service.ProofURL(b), nil))
}

// Reschedule handles POST /bookings/{id}/reschedule
func (h *Handler) Reschedule(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	var req RescheduleRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if details := validator.Validate(&req); details != nil {
		response.ValidationError(w, details)
		return
	}

	ctx := r.Context()
	b, err := h.service.Reschedule(ctx, middleware.GetUserID(ctx), middleware.GetRole(ctx), id, &req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.OK(w, b.ToResponse(h.service.Now(), "", nil))
}

func (h *Handler) writeList(w http.ResponseWriter, bookings []Booking, total, page, limit int) {
	now := h.service.Now()
	items := make([]*Response, 0, len(bookings))
	for i := range bookings {
		items = append(items, bookings[i].ToResponse(now, "", nil))
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

func pagination(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var conflict *catalog.Conflict
	var outside *schedule.OutsideHoursError
	switch {
	case errors.Is(err, ErrBookingNotFound):
		response.NotFound(w, "Booking not found")
	case errors.Is(err, ErrNotBookingActor):
		response.Forbidden(w, "You are not part of this booking")
	case errors.Is(err, ErrInvalidTransition):
		response.ConflictWithCode(w, "INVALID_TRANSITION", "Booking is not in a state that allows this action", nil)
	case errors.Is(err, ErrReasonRequired):
		response.BadRequest(w, "Reason is required")
	case errors.Is(err, ErrProofRequired):
		response.BadRequest(w, "Payment proof is required")
	case errors.Is(err, schedule.ErrSlotTaken):
		response.ConflictWithCode(w, "SLOT_TAKEN", "This slot is already booked", nil)
	case errors.Is(err, schedule.ErrClosedDay):
		response.UnprocessableEntity(w, "CLOSED_DAY", "Provider is closed on this day")
	case errors.As(err, &outside):
		response.UnprocessableEntity(w, "OUTSIDE_HOURS", outside.Error())
	case errors.Is(err, schedule.ErrInvalidDate), errors.Is(err, schedule.ErrInvalidTime):
		response.BadRequest(w, "Invalid date or time")
	case errors.As(err, &conflict):
		response.ErrorWithDetails(w, http.StatusConflict, "PRICING_CONFLICT", conflict.Message, conflict.Details())
	case errors.Is(err, catalog.ErrServiceNotFound):
		response.NotFound(w, "Service not found")
	case errors.Is(err, catalog.ErrPriceNotFound):
		response.NotFound(w, "No price for this pet type and size")
	case errors.Is(err, provider.ErrProfileNotFound), errors.Is(err, provider.ErrNotApproved):
		response.NotFound(w, "Provider not found")
	case errors.Is(err, storage.ErrFileTooLarge):
		response.BadRequest(w, "Proof exceeds the size limit")
	case errors.Is(err, storage.ErrInvalidMimeType):
		response.BadRequest(w, "Unsupported proof file type")
	case errors.Is(err, storage.ErrEmptyFile):
		response.BadRequest(w, "Proof file is empty")
	default:
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "BOOKING_ERROR", "Failed to process booking request", err)
	}
}
