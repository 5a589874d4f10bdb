package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/groomspot/groomspot-api/internal/domain/provider"
)

// HoldSource supplies the bookings currently holding slots for a
// provider on a date. The booking domain implements this.
type HoldSource interface {
	ActiveHolds(ctx context.Context, providerID uuid.UUID, date string) ([]SlotHold, error)
}

// ScheduleService handles operating hours and slot checks
type ScheduleService struct {
	repo         Repository
	providerRepo provider.Repository
	holds        HoldSource
}

// NewService creates schedule service. holds may be nil until the
// booking domain is wired in.
func NewService(repo Repository, providerRepo provider.Repository, holds HoldSource) *ScheduleService {
	return &ScheduleService{repo: repo, providerRepo: providerRepo, holds: holds}
}

// SetHolds wires the booking domain in after construction
func (s *ScheduleService) SetHolds(holds HoldSource) {
	s.holds = holds
}

// SetDay replaces the calling groomer's windows for one weekday
func (s *ScheduleService) SetDay(ctx context.Context, userID uuid.UUID, req *SetDayRequest) error {
	p, err := s.providerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if p == nil {
		return provider.ErrProfileNotFound
	}

	windows := make([]Window, 0, len(req.Windows))
	for _, w := range req.Windows {
		start, err := parseHour(w.Start)
		if err != nil {
			return err
		}
		end, err := parseHour(w.End)
		if err != nil {
			return err
		}
		if start >= end {
			return ErrInvalidWindow
		}
		windows = append(windows, Window{Start: w.Start, End: w.End})
	}

	return s.repo.ReplaceDay(ctx, p.ID, time.Weekday(req.Weekday), windows)
}

// Week returns a provider's hours grouped by weekday
func (s *ScheduleService) Week(ctx context.Context, providerID uuid.UUID) (*WeekResponse, error) {
	hours, err := s.repo.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	resp := &WeekResponse{Days: make(map[int][]Window)}
	for i := range hours {
		day := int(hours[i].Weekday)
		resp.Days[day] = append(resp.Days[day], Window{Start: hours[i].StartTime, End: hours[i].EndTime})
	}
	return resp, nil
}

// Check runs the slot check for one (provider, date, time) triple.
// Re-executed at booking creation and reschedule; see CheckSlot.
func (s *ScheduleService) Check(ctx context.Context, req SlotRequest, excludeBookingID uuid.UUID) error {
	hours, err := s.repo.ListByProvider(ctx, req.ProviderID)
	if err != nil {
		return err
	}

	var holds []SlotHold
	if s.holds != nil {
		holds, err = s.holds.ActiveHolds(ctx, req.ProviderID, req.Date)
		if err != nil {
			return err
		}
	}

	return CheckSlot(req, hours, holds, excludeBookingID)
}
