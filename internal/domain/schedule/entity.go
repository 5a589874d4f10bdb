package schedule

import (
	"time"

	"github.com/google/uuid"
)

// OperatingHours is one open window on one weekday. A provider may have
// several disjoint windows per day; a day with no rows is closed.
type OperatingHours struct {
	ID         uuid.UUID    `db:"id" json:"id"`
	ProviderID uuid.UUID    `db:"provider_id" json:"provider_id"`
	Weekday    time.Weekday `db:"weekday" json:"weekday"`
	StartTime  string       `db:"start_time" json:"start_time"`
	EndTime    string       `db:"end_time" json:"end_time"`
}

// Window is one open interval reported back to callers
type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SlotHold is the minimal view of a booking that reserves a slot.
// The booking domain supplies these; the engine never reads booking
// rows directly.
type SlotHold struct {
	BookingID  uuid.UUID
	ProviderID uuid.UUID
	Date       string
	TimeSlot   string
}

// SlotRequest is the (provider, date, time) triple being checked
type SlotRequest struct {
	ProviderID uuid.UUID
	Date       string // 2006-01-02
	TimeSlot   string // 15:04
}
