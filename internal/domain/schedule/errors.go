package schedule

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrClosedDay     = errors.New("provider is closed on this day")
	ErrSlotTaken     = errors.New("slot is already booked")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidTime   = errors.New("invalid time")
	ErrInvalidWindow = errors.New("window start must be before end")
)

// OutsideHoursError reports a time outside every open window of an
// otherwise open day, carrying the windows for caller display
type OutsideHoursError struct {
	Windows []Window
}

func (e *OutsideHoursError) Error() string {
	parts := make([]string, 0, len(e.Windows))
	for _, w := range e.Windows {
		parts = append(parts, fmt.Sprintf("%s-%s", w.Start, w.End))
	}
	return "time is outside operating hours (" + strings.Join(parts, ", ") + ")"
}
