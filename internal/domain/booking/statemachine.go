package booking

import (
	"time"

	"github.com/groomspot/groomspot-api/internal/domain/schedule"
)

// CompletionDelay is how long after the appointment start a paid
// booking counts as completed
const CompletionDelay = 4 * time.Hour

// Actor identifies which side of a booking may fire an event
type Actor string

const (
	ActorOwner    Actor = "owner"
	ActorProvider Actor = "provider"
)

// Event is a booking lifecycle event
type Event string

const (
	EventApprove       Event = "approve"
	EventDecline       Event = "decline"
	EventCancel        Event = "cancel"
	EventSubmitProof   Event = "submit_proof"
	EventAcceptPayment Event = "accept_payment"
	EventVoid          Event = "void"
)

type rule struct {
	from        []Status
	to          Status
	actor       Actor
	needsReason bool
}

// transitions is the whole lifecycle in one table. Every source state
// is matched against the booking's classification at "now", so a paid
// booking past its completion threshold is already out of reach.
var transitions = map[Event]rule{
	EventApprove:       {from: []Status{StatusPending}, to: StatusApproved, actor: ActorProvider},
	EventDecline:       {from: []Status{StatusPending}, to: StatusDeclined, actor: ActorProvider, needsReason: true},
	EventCancel:        {from: []Status{StatusPending, StatusApproved, StatusPaid}, to: StatusCancelled, actor: ActorOwner},
	EventSubmitProof:   {from: []Status{StatusApproved}, to: StatusAwaitingVerification, actor: ActorOwner},
	EventAcceptPayment: {from: []Status{StatusAwaitingVerification}, to: StatusPaid, actor: ActorProvider},
	EventVoid:          {from: []Status{StatusAwaitingVerification}, to: StatusVoided, actor: ActorProvider, needsReason: true},
}

// ActorFor returns which side may fire an event
func ActorFor(event Event) (Actor, bool) {
	r, ok := transitions[event]
	return r.actor, ok
}

// Classify derives a booking's effective status at an instant. Pure and
// idempotent: a stored paid booking classifies as completed once now
// reaches the appointment start plus CompletionDelay, and as paid
// before that. All other statuses pass through unchanged. The result is
// never written back.
func Classify(b *Booking, now time.Time) Status {
	if b.Status != StatusPaid {
		return b.Status
	}
	start, err := schedule.SlotStart(b.Date, b.TimeSlot)
	if err != nil {
		return b.Status
	}
	if !now.Before(start.Add(CompletionDelay)) {
		return StatusCompleted
	}
	return StatusPaid
}

// Next computes the target status for an event fired at now, or
// ErrInvalidTransition when the booking's effective status is not a
// valid source. Decline and void demand a reason. No mutation happens
// here; the caller persists the returned status with a guard on the
// stored one.
func Next(b *Booking, now time.Time, event Event, reason string) (Status, error) {
	r, ok := transitions[event]
	if !ok {
		return "", ErrInvalidTransition
	}
	if r.needsReason && reason == "" {
		return "", ErrReasonRequired
	}

	effective := Classify(b, now)
	for _, from := range r.from {
		if effective == from {
			return r.to, nil
		}
	}
	return "", ErrInvalidTransition
}

// CanReschedule reports whether a booking may move to a new slot at
// now: any active-hold status not yet completed
func CanReschedule(b *Booking, now time.Time) bool {
	return Classify(b, now).HoldsSlot()
}
