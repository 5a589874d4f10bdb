package schedule_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/groomspot/groomspot-api/internal/domain/schedule"
)

var (
	providerID = uuid.New()
	// 2025-01-10 is a Friday, 2025-01-13 a Monday
	friday = "2025-01-10"
	monday = "2025-01-13"
)

func window(weekday time.Weekday, start, end string) schedule.OperatingHours {
	return schedule.OperatingHours{
		ID:         uuid.New(),
		ProviderID: providerID,
		Weekday:    weekday,
		StartTime:  start,
		EndTime:    end,
	}
}

func hold(date, timeSlot string) schedule.SlotHold {
	return schedule.SlotHold{
		BookingID:  uuid.New(),
		ProviderID: providerID,
		Date:       date,
		TimeSlot:   timeSlot,
	}
}

func slot(date, timeSlot string) schedule.SlotRequest {
	return schedule.SlotRequest{ProviderID: providerID, Date: date, TimeSlot: timeSlot}
}

func TestCheckSlotClosedDay(t *testing.T) {
	hours := []schedule.OperatingHours{window(time.Monday, "09:00", "17:00")}

	err := schedule.CheckSlot(slot(friday, "10:00"), hours, nil, uuid.Nil)
	if !errors.Is(err, schedule.ErrClosedDay) {
		t.Fatalf("expected ErrClosedDay, got %v", err)
	}
}

func TestCheckSlotOutsideHours(t *testing.T) {
	hours := []schedule.OperatingHours{window(time.Monday, "09:00", "17:00")}

	err := schedule.CheckSlot(slot(monday, "18:00"), hours, nil, uuid.Nil)

	var outside *schedule.OutsideHoursError
	if !errors.As(err, &outside) {
		t.Fatalf("expected OutsideHoursError, got %v", err)
	}
	if len(outside.Windows) != 1 || outside.Windows[0].Start != "09:00" || outside.Windows[0].End != "17:00" {
		t.Fatalf("expected the day's windows in the error, got %v", outside.Windows)
	}
}

func TestCheckSlotClosingTimeExcluded(t *testing.T) {
	hours := []schedule.OperatingHours{window(time.Monday, "09:00", "17:00")}

	if err := schedule.CheckSlot(slot(monday, "17:00"), hours, nil, uuid.Nil); err == nil {
		t.Fatal("a slot at closing time must not be bookable")
	}
	if err := schedule.CheckSlot(slot(monday, "16:30"), hours, nil, uuid.Nil); err != nil {
		t.Fatalf("expected available before closing, got %v", err)
	}
	if err := schedule.CheckSlot(slot(monday, "09:00"), hours, nil, uuid.Nil); err != nil {
		t.Fatalf("opening time must be bookable, got %v", err)
	}
}

func TestCheckSlotMultipleWindows(t *testing.T) {
	hours := []schedule.OperatingHours{
		window(time.Monday, "09:00", "12:00"),
		window(time.Monday, "14:00", "18:00"),
	}

	if err := schedule.CheckSlot(slot(monday, "10:30"), hours, nil, uuid.Nil); err != nil {
		t.Fatalf("morning window must be open, got %v", err)
	}
	if err := schedule.CheckSlot(slot(monday, "15:00"), hours, nil, uuid.Nil); err != nil {
		t.Fatalf("afternoon window must be open, got %v", err)
	}

	err := schedule.CheckSlot(slot(monday, "13:00"), hours, nil, uuid.Nil)
	var outside *schedule.OutsideHoursError
	if !errors.As(err, &outside) {
		t.Fatalf("lunch break must be outside hours, got %v", err)
	}
	if len(outside.Windows) != 2 {
		t.Fatalf("expected both windows reported, got %v", outside.Windows)
	}
}

func TestCheckSlotTaken(t *testing.T) {
	hours := []schedule.OperatingHours{window(time.Friday, "09:00", "17:00")}
	holds := []schedule.SlotHold{hold(friday, "10:00")}

	err := schedule.CheckSlot(slot(friday, "10:00"), hours, holds, uuid.Nil)
	if !errors.Is(err, schedule.ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}

	if err := schedule.CheckSlot(slot(friday, "11:00"), hours, holds, uuid.Nil); err != nil {
		t.Fatalf("a different time must stay available, got %v", err)
	}
}

func TestCheckSlotExcludesOwnBooking(t *testing.T) {
	hours := []schedule.OperatingHours{window(time.Friday, "09:00", "17:00")}
	own := hold(friday, "10:00")
	holds := []schedule.SlotHold{own}

	// rescheduling onto its own slot is allowed
	if err := schedule.CheckSlot(slot(friday, "10:00"), hours, holds, own.BookingID); err != nil {
		t.Fatalf("own hold must be excluded, got %v", err)
	}
}

func TestCheckSlotOtherProviderIgnored(t *testing.T) {
	hours := []schedule.OperatingHours{window(time.Friday, "09:00", "17:00")}
	other := schedule.SlotHold{
		BookingID:  uuid.New(),
		ProviderID: uuid.New(),
		Date:       friday,
		TimeSlot:   "10:00",
	}

	if err := schedule.CheckSlot(slot(friday, "10:00"), hours, []schedule.SlotHold{other}, uuid.Nil); err != nil {
		t.Fatalf("another provider's booking must not block the slot, got %v", err)
	}
}

func TestCheckSlotIdempotent(t *testing.T) {
	hours := []schedule.OperatingHours{window(time.Friday, "09:00", "17:00")}
	holds := []schedule.SlotHold{hold(friday, "10:00")}

	first := schedule.CheckSlot(slot(friday, "10:00"), hours, holds, uuid.Nil)
	second := schedule.CheckSlot(slot(friday, "10:00"), hours, holds, uuid.Nil)
	if !errors.Is(first, schedule.ErrSlotTaken) || !errors.Is(second, schedule.ErrSlotTaken) {
		t.Fatalf("identical inputs must give identical results, got %v then %v", first, second)
	}
}

func TestCheckSlotInvalidInput(t *testing.T) {
	hours := []schedule.OperatingHours{window(time.Friday, "09:00", "17:00")}

	if err := schedule.CheckSlot(slot("not-a-date", "10:00"), hours, nil, uuid.Nil); !errors.Is(err, schedule.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if err := schedule.CheckSlot(slot(friday, "25:00"), hours, nil, uuid.Nil); !errors.Is(err, schedule.ErrInvalidTime) {
		t.Fatalf("expected ErrInvalidTime, got %v", err)
	}
}

func TestSlotStart(t *testing.T) {
	start, err := schedule.SlotStart("2025-01-10", "10:00")
	if err != nil {
		t.Fatalf("slot start: %v", err)
	}
	want := time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Fatalf("expected %v, got %v", want, start)
	}
}
