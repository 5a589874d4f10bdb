package booking_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/groomspot/groomspot-api/internal/domain/booking"
	"github.com/groomspot/groomspot-api/internal/domain/catalog"
)

func paidBooking(date, timeSlot string) *booking.Booking {
	return &booking.Booking{
		ID:         uuid.New(),
		ProviderID: uuid.New(),
		OwnerID:    uuid.New(),
		ServiceID:  uuid.New(),
		PetType:    catalog.PetDog,
		SizeKey:    catalog.SizeMedium,
		Date:       date,
		TimeSlot:   timeSlot,
		Price:      600,
		Status:     booking.StatusPaid,
	}
}

func withStatus(status booking.Status) *booking.Booking {
	b := paidBooking("2025-01-10", "10:00")
	b.Status = status
	return b
}

func at(value string) time.Time {
	t, err := time.Parse("2006-01-02T15:04", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestClassifyCompletionThreshold(t *testing.T) {
	b := paidBooking("2025-01-10", "10:00")

	cases := []struct {
		name string
		now  time.Time
		want booking.Status
	}{
		{"before appointment", at("2025-01-10T09:00"), booking.StatusPaid},
		{"one minute short of threshold", at("2025-01-10T13:59"), booking.StatusPaid},
		{"exactly at threshold", at("2025-01-10T14:00"), booking.StatusCompleted},
		{"well past threshold", at("2025-01-11T08:00"), booking.StatusCompleted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := booking.Classify(b, tc.now); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestClassifyIdempotent(t *testing.T) {
	b := paidBooking("2025-01-10", "10:00")
	now := at("2025-01-10T13:00")

	for i := 0; i < 3; i++ {
		if got := booking.Classify(b, now); got != booking.StatusPaid {
			t.Fatalf("call %d: expected paid, got %s", i, got)
		}
	}
	if b.Status != booking.StatusPaid {
		t.Fatalf("classify must never mutate the booking, stored status is %s", b.Status)
	}
}

func TestClassifyPassesThroughOtherStatuses(t *testing.T) {
	late := at("2025-01-11T08:00")
	for _, status := range []booking.Status{
		booking.StatusPending,
		booking.StatusApproved,
		booking.StatusDeclined,
		booking.StatusAwaitingVerification,
		booking.StatusVoided,
		booking.StatusCancelled,
	} {
		if got := booking.Classify(withStatus(status), late); got != status {
			t.Fatalf("expected %s to pass through, got %s", status, got)
		}
	}
}

func TestNextHappyPath(t *testing.T) {
	now := at("2025-01-09T12:00")

	steps := []struct {
		from   booking.Status
		event  booking.Event
		reason string
		want   booking.Status
	}{
		{booking.StatusPending, booking.EventApprove, "", booking.StatusApproved},
		{booking.StatusApproved, booking.EventSubmitProof, "", booking.StatusAwaitingVerification},
		{booking.StatusAwaitingVerification, booking.EventAcceptPayment, "", booking.StatusPaid},
	}
	for _, step := range steps {
		got, err := booking.Next(withStatus(step.from), now, step.event, step.reason)
		if err != nil {
			t.Fatalf("%s from %s: %v", step.event, step.from, err)
		}
		if got != step.want {
			t.Fatalf("%s from %s: expected %s, got %s", step.event, step.from, step.want, got)
		}
	}
}

func TestNextRejectsInvalidSources(t *testing.T) {
	now := at("2025-01-09T12:00")

	cases := []struct {
		from  booking.Status
		event booking.Event
	}{
		{booking.StatusDeclined, booking.EventApprove},
		{booking.StatusCancelled, booking.EventApprove},
		{booking.StatusPaid, booking.EventApprove},
		{booking.StatusPending, booking.EventSubmitProof},
		{booking.StatusPending, booking.EventAcceptPayment},
		{booking.StatusApproved, booking.EventDecline},
		{booking.StatusAwaitingVerification, booking.EventCancel},
		{booking.StatusVoided, booking.EventSubmitProof},
	}
	for _, tc := range cases {
		_, err := booking.Next(withStatus(tc.from), now, tc.event, "no")
		if !errors.Is(err, booking.ErrInvalidTransition) {
			t.Fatalf("%s from %s: expected ErrInvalidTransition, got %v", tc.event, tc.from, err)
		}
	}
}

func TestNextReasonMandatory(t *testing.T) {
	now := at("2025-01-09T12:00")

	if _, err := booking.Next(withStatus(booking.StatusPending), now, booking.EventDecline, ""); !errors.Is(err, booking.ErrReasonRequired) {
		t.Fatalf("decline without reason: expected ErrReasonRequired, got %v", err)
	}
	if _, err := booking.Next(withStatus(booking.StatusAwaitingVerification), now, booking.EventVoid, ""); !errors.Is(err, booking.ErrReasonRequired) {
		t.Fatalf("void without reason: expected ErrReasonRequired, got %v", err)
	}

	got, err := booking.Next(withStatus(booking.StatusPending), now, booking.EventDecline, "fully booked that week")
	if err != nil {
		t.Fatalf("decline with reason: %v", err)
	}
	if got != booking.StatusDeclined {
		t.Fatalf("expected declined, got %s", got)
	}
}

func TestNextCancelWindow(t *testing.T) {
	beforeCompletion := at("2025-01-10T11:00")

	for _, from := range []booking.Status{booking.StatusPending, booking.StatusApproved} {
		got, err := booking.Next(withStatus(from), beforeCompletion, booking.EventCancel, "")
		if err != nil {
			t.Fatalf("cancel from %s: %v", from, err)
		}
		if got != booking.StatusCancelled {
			t.Fatalf("cancel from %s: expected cancelled, got %s", from, got)
		}
	}

	// paid cancels only while not yet completed
	b := paidBooking("2025-01-10", "10:00")
	if _, err := booking.Next(b, beforeCompletion, booking.EventCancel, ""); err != nil {
		t.Fatalf("cancel from paid before completion: %v", err)
	}
	afterCompletion := at("2025-01-10T14:30")
	if _, err := booking.Next(b, afterCompletion, booking.EventCancel, ""); !errors.Is(err, booking.ErrInvalidTransition) {
		t.Fatalf("cancel after completion: expected ErrInvalidTransition, got %v", err)
	}
}

func TestActorFor(t *testing.T) {
	cases := []struct {
		event booking.Event
		want  booking.Actor
	}{
		{booking.EventApprove, booking.ActorProvider},
		{booking.EventDecline, booking.ActorProvider},
		{booking.EventAcceptPayment, booking.ActorProvider},
		{booking.EventVoid, booking.ActorProvider},
		{booking.EventCancel, booking.ActorOwner},
		{booking.EventSubmitProof, booking.ActorOwner},
	}
	for _, tc := range cases {
		actor, ok := booking.ActorFor(tc.event)
		if !ok {
			t.Fatalf("%s: unknown event", tc.event)
		}
		if actor != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.event, tc.want, actor)
		}
	}

	if _, ok := booking.ActorFor(booking.Event("teleport")); ok {
		t.Fatal("unknown events must not resolve an actor")
	}
}

func TestCanReschedule(t *testing.T) {
	now := at("2025-01-09T12:00")

	for _, status := range []booking.Status{
		booking.StatusPending,
		booking.StatusApproved,
		booking.StatusAwaitingVerification,
	} {
		if !booking.CanReschedule(withStatus(status), now) {
			t.Fatalf("%s must allow reschedule", status)
		}
	}
	for _, status := range []booking.Status{
		booking.StatusDeclined,
		booking.StatusVoided,
		booking.StatusCancelled,
	} {
		if booking.CanReschedule(withStatus(status), now) {
			t.Fatalf("%s must not allow reschedule", status)
		}
	}

	b := paidBooking("2025-01-10", "10:00")
	if !booking.CanReschedule(b, at("2025-01-10T11:00")) {
		t.Fatal("paid before completion must allow reschedule")
	}
	if booking.CanReschedule(b, at("2025-01-10T14:00")) {
		t.Fatal("completed booking must not allow reschedule")
	}
}
