package schedule

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

// Handler handles schedule HTTP endpoints
type Handler struct {
	service *ScheduleService
}

// NewHandler creates schedule handler
func NewHandler(service *ScheduleService) *Handler {
	return &Handler{service: service}
}

// SetDay handles PUT /schedule/days
func (h *Handler) SetDay(w http.ResponseWriter, r *http.Request) {
	var req SetDayRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if details := validator.Validate(&req); details != nil {
		response.ValidationError(w, details)
		return
	}

	if err := h.service.SetDay(r.Context(), middleware.GetUserID(r.Context()), &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	response.NoContent(w)
}

// Week handles GET /schedule/providers/{providerId}
func (h *Handler) Week(w http.ResponseWriter, r *http.Request) {
	providerID, err := uuid.Parse(chi.URLParam(r, "providerId"))
	if err != nil {
		response.BadRequest(w, "Invalid provider ID")
		return
	}

	week, err := h.service.Week(r.Context(), providerID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	response.OK(w, week)
}

// Check handles GET /schedule/providers/{providerId}/check?date=&time=
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	providerID, err := uuid.Parse(chi.URLParam(r, "providerId"))
	if err != nil {
		response.BadRequest(w, "Invalid provider ID")
		return
	}

	date := r.URL.Query().Get("date")
	timeSlot := r.URL.Query().Get("time")
	if err := validator.ValidateVar(date, "required,booking_date"); err != nil {
		response.BadRequest(w, "Invalid date, expected YYYY-MM-DD")
		return
	}
	if err := validator.ValidateVar(timeSlot, "required,time_slot"); err != nil {
		response.BadRequest(w, "Invalid time, expected HH:MM")
		return
	}

	req := SlotRequest{ProviderID: providerID, Date: date, TimeSlot: timeSlot}
	err = h.service.Check(r.Context(), req, uuid.Nil)

	var outside *OutsideHoursError
	switch {
	case err == nil:
		response.OK(w, CheckSlotResponse{Available: true})
	case errors.Is(err, ErrClosedDay):
		response.OK(w, CheckSlotResponse{Available: false, Reason: "closed_day"})
	case errors.As(err, &outside):
		response.OK(w, CheckSlotResponse{Available: false, Reason: "outside_hours", Windows: outside.Windows})
	case errors.Is(err, ErrSlotTaken):
		response.OK(w, CheckSlotResponse{Available: false, Reason: "slot_taken"})
	default:
		h.handleError(w, r, err)
	}
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, provider.ErrProfileNotFound):
		response.NotFound(w, "Provider profile not found")
	case errors.Is(err, ErrInvalidWindow):
		response.BadRequest(w, "Window start must be before end")
	case errors.Is(err, ErrInvalidTime), errors.Is(err, ErrInvalidDate):
		response.BadRequest(w, "Invalid date or time")
	default:
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "SCHEDULE_ERROR", "Failed to process schedule request", err)
	}
}
