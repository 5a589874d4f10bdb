package schedule

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout and TimeLayout are the wire formats for slots
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// parseHour converts "HH:MM" to a fractional hour (e.g. "09:30" → 9.5)
func parseHour(value string) (float64, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, ErrInvalidTime
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, ErrInvalidTime
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, ErrInvalidTime
	}
	return float64(h) + float64(m)/60, nil
}

// CheckSlot decides whether a slot is bookable against a provider's
// operating hours and the bookings currently holding slots. Pure
// read-then-decide: the result is advisory for the UI and authoritative
// only together with the storage uniqueness constraint on insert.
// excludeBookingID skips one booking's own hold during a reschedule.
func CheckSlot(req SlotRequest, hours []OperatingHours, holds []SlotHold, excludeBookingID uuid.UUID) error {
	date, err := time.Parse(DateLayout, req.Date)
	if err != nil {
		return ErrInvalidDate
	}
	requested, err := parseHour(req.TimeSlot)
	if err != nil {
		return err
	}

	weekday := date.Weekday()
	var windows []Window
	inWindow := false
	for i := range hours {
		h := &hours[i]
		if h.ProviderID != req.ProviderID || h.Weekday != weekday {
			continue
		}
		windows = append(windows, Window{Start: h.StartTime, End: h.EndTime})

		start, err := parseHour(h.StartTime)
		if err != nil {
			continue
		}
		end, err := parseHour(h.EndTime)
		if err != nil {
			continue
		}
		// a slot at closing time is not bookable
		if requested >= start && requested < end {
			inWindow = true
		}
	}
	if len(windows) == 0 {
		return ErrClosedDay
	}
	if !inWindow {
		return &OutsideHoursError{Windows: windows}
	}

	for i := range holds {
		h := &holds[i]
		if h.BookingID == excludeBookingID {
			continue
		}
		if h.ProviderID == req.ProviderID && h.Date == req.Date && h.TimeSlot == req.TimeSlot {
			return ErrSlotTaken
		}
	}

	return nil
}

// SlotStart returns the appointment start instant for a (date, time) pair
func SlotStart(date, timeSlot string) (time.Time, error) {
	t, err := time.Parse(DateLayout+" "+TimeLayout, date+" "+timeSlot)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
