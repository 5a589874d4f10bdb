package booking

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/groomspot/groomspot-api/internal/domain/catalog"
	"github.com/groomspot/groomspot-api/internal/domain/provider"
	"github.com/groomspot/groomspot-api/internal/domain/schedule"
	"github.com/groomspot/groomspot-api/internal/domain/user"
	"github.com/groomspot/groomspot-api/internal/pkg/storage"
)

// ProofSubmittedChannel is the Redis channel the proof worker listens
// on for wake-ups. Publishing is best-effort; the worker polls anyway.
const ProofSubmittedChannel = "payment-proofs:submitted"

// BookingService drives the appointment lifecycle
type BookingService struct {
	repo         Repository
	catalogRepo  catalog.Repository
	providerRepo provider.Repository
	sched        *schedule.ScheduleService
	store        storage.Storage
	redis        *redis.Client
	now          func() time.Time
}

// NewService creates booking service. The Redis client is optional and
// only used to nudge the proof worker.
func NewService(repo Repository, catalogRepo catalog.Repository, providerRepo provider.Repository, sched *schedule.ScheduleService, store storage.Storage, rdb *redis.Client) *BookingService {
	return &BookingService{
		repo:         repo,
		catalogRepo:  catalogRepo,
		providerRepo: providerRepo,
		sched:        sched,
		store:        store,
		redis:        rdb,
		now:          time.Now,
	}
}

// Create books a slot for an owner: resolve the price, check the slot,
// insert in pending. The price is snapshotted on the booking. The slot
// check is advisory; the insert's unique index has the final word and a
// violation there comes back as ErrSlotTaken.
func (s *BookingService) Create(ctx context.Context, ownerID uuid.UUID, req *CreateRequest) (*Booking, error) {
	providerID, err := uuid.Parse(req.ProviderID)
	if err != nil {
		return nil, provider.ErrProfileNotFound
	}
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, catalog.ErrServiceNotFound
	}

	p, err := s.providerRepo.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, provider.ErrProfileNotFound
	}
	if !p.IsApproved() {
		return nil, provider.ErrNotApproved
	}

	svc, err := s.catalogRepo.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil || svc.ProviderID != providerID {
		return nil, catalog.ErrServiceNotFound
	}

	options, err := s.catalogRepo.ListOptions(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	petType := catalog.PetType(req.PetType)
	sizeKey := catalog.SizeKey(req.SizeKey)
	price, err := catalog.ResolvePrice(options, petType, sizeKey)
	if err != nil {
		return nil, err
	}
	var optionID uuid.NullUUID
	for i := range options {
		if options[i].SizeKey == sizeKey && (options[i].PetType == petType || options[i].PetType == catalog.PetDogAndCat) {
			optionID = uuid.NullUUID{UUID: options[i].ID, Valid: true}
			break
		}
	}

	slotReq := schedule.SlotRequest{ProviderID: providerID, Date: req.Date, TimeSlot: req.TimeSlot}
	if err := s.sched.Check(ctx, slotReq, uuid.Nil); err != nil {
		return nil, err
	}

	now := s.now()
	b := &Booking{
		ID:              uuid.New(),
		ProviderID:      providerID,
		OwnerID:         ownerID,
		ServiceID:       serviceID,
		PricingOptionID: optionID,
		PetType:         petType,
		SizeKey:         sizeKey,
		Date:            req.Date,
		TimeSlot:        req.TimeSlot,
		Price:           price,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	pets := make([]Pet, 0, len(req.Pets))
	for _, pr := range req.Pets {
		pet := Pet{
			ID:        uuid.New(),
			BookingID: b.ID,
			Name:      pr.Name,
			PetType:   catalog.PetType(pr.PetType),
		}
		if pr.Weight != nil {
			pet.Weight = sql.NullFloat64{Float64: *pr.Weight, Valid: true}
		}
		if pr.ServiceName != "" {
			pet.ServiceName = sql.NullString{String: pr.ServiceName, Valid: true}
		}
		if pr.Notes != "" {
			pet.Notes = sql.NullString{String: pr.Notes, Valid: true}
		}
		pets = append(pets, pet)
	}

	if err := s.repo.Create(ctx, b, pets); err != nil {
		return nil, err
	}
	return b, nil
}

// load fetches a booking and checks the caller is one of its actors
func (s *BookingService) load(ctx context.Context, userID uuid.UUID, role string, bookingID uuid.UUID) (*Booking, Actor, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	if b == nil {
		return nil, "", ErrBookingNotFound
	}

	if role == string(user.RoleOwner) {
		if b.OwnerID != userID {
			return nil, "", ErrNotBookingActor
		}
		return b, ActorOwner, nil
	}

	p, err := s.providerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if p == nil || b.ProviderID != p.ID {
		return nil, "", ErrNotBookingActor
	}
	return b, ActorProvider, nil
}

// Transition fires a lifecycle event. The state machine decides the
// target; persistence is a compare-and-swap on the stored status, so a
// concurrent transition that won the race surfaces as
// ErrInvalidTransition rather than a silent overwrite.
func (s *BookingService) Transition(ctx context.Context, userID uuid.UUID, role string, bookingID uuid.UUID, event Event, reason string) (*Booking, error) {
	b, actor, err := s.load(ctx, userID, role, bookingID)
	if err != nil {
		return nil, err
	}

	required, ok := ActorFor(event)
	if !ok {
		return nil, ErrInvalidTransition
	}
	if actor != required {
		return nil, ErrNotBookingActor
	}

	next, err := Next(b, s.now(), event, reason)
	if err != nil {
		return nil, err
	}

	var applied bool
	if reason != "" {
		applied, err = s.repo.UpdateStatusWithReason(ctx, b.ID, b.Status, next, reason)
	} else {
		applied, err = s.repo.UpdateStatus(ctx, b.ID, b.Status, next)
	}
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, ErrInvalidTransition
	}

	if reason != "" {
		b.RejectionReason = sql.NullString{String: reason, Valid: true}
	}
	b.Status = next
	b.UpdatedAt = s.now()
	return b, nil
}

// SubmitProof uploads a payment proof and moves the booking from
// approved to awaiting verification in one step
func (s *BookingService) SubmitProof(ctx context.Context, ownerID uuid.UUID, bookingID uuid.UUID, proof io.Reader, reference string) (*Booking, error) {
	b, actor, err := s.load(ctx, ownerID, string(user.RoleOwner), bookingID)
	if err != nil {
		return nil, err
	}
	if actor != ActorOwner {
		return nil, ErrNotBookingActor
	}
	if proof == nil {
		return nil, ErrProofRequired
	}

	next, err := Next(b, s.now(), EventSubmitProof, "")
	if err != nil {
		return nil, err
	}

	buf, mimeType, err := storage.ValidateAndBuffer(proof, storage.CategoryPaymentProof)
	if err != nil {
		return nil, err
	}
	ext := storage.GetExtensionForMime(mimeType)
	key := fmt.Sprintf("payment-proofs/%s/%s%s", b.ID, uuid.New(), ext)
	if err := s.store.Put(ctx, key, buf, mimeType); err != nil {
		return nil, err
	}

	applied, err := s.repo.UpdateStatusWithProof(ctx, b.ID, b.Status, next, key, reference)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, ErrInvalidTransition
	}

	if s.redis != nil {
		s.redis.Publish(ctx, ProofSubmittedChannel, b.ID.String())
	}

	b.Status = next
	b.PaymentProofKey = sql.NullString{String: key, Valid: true}
	if reference != "" {
		b.ReferenceNumber = sql.NullString{String: reference, Valid: true}
	}
	b.UpdatedAt = s.now()
	return b, nil
}

// Reschedule moves a booking to a new slot, keeping its status. The
// slot check runs with the booking's own hold excluded. A failed check
// leaves the record untouched.
func (s *BookingService) Reschedule(ctx context.Context, userID uuid.UUID, role string, bookingID uuid.UUID, req *RescheduleRequest) (*Booking, error) {
	b, _, err := s.load(ctx, userID, role, bookingID)
	if err != nil {
		return nil, err
	}

	if !CanReschedule(b, s.now()) {
		return nil, ErrInvalidTransition
	}

	slotReq := schedule.SlotRequest{ProviderID: b.ProviderID, Date: req.Date, TimeSlot: req.TimeSlot}
	if err := s.sched.Check(ctx, slotReq, b.ID); err != nil {
		return nil, err
	}

	applied, err := s.repo.UpdateSlot(ctx, b.ID, b.Status, req.Date, req.TimeSlot)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, ErrInvalidTransition
	}

	b.Date = req.Date
	b.TimeSlot = req.TimeSlot
	b.UpdatedAt = s.now()
	return b, nil
}

// Get returns one booking for either of its actors
func (s *BookingService) Get(ctx context.Context, userID uuid.UUID, role string, bookingID uuid.UUID) (*Booking, []Pet, error) {
	b, _, err := s.load(ctx, userID, role, bookingID)
	if err != nil {
		return nil, nil, err
	}
	pets, err := s.repo.ListPets(ctx, b.ID)
	if err != nil {
		return nil, nil, err
	}
	return b, pets, nil
}

// ListForOwner returns an owner's bookings, newest first
func (s *BookingService) ListForOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Booking, int, error) {
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

// ListForProvider returns a groomer's booking dashboard
func (s *BookingService) ListForProvider(ctx context.Context, userID uuid.UUID, status *Status, limit, offset int) ([]Booking, int, error) {
	p, err := s.providerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if p == nil {
		return nil, 0, provider.ErrProfileNotFound
	}
	return s.repo.ListByProvider(ctx, p.ID, status, limit, offset)
}

// ProofURL resolves the payment proof URL for display
func (s *BookingService) ProofURL(b *Booking) string {
	if !b.PaymentProofKey.Valid {
		return ""
	}
	return s.store.GetURL(b.PaymentProofKey.String)
}

// Now exposes the service clock for response classification
func (s *BookingService) Now() time.Time {
	return s.now()
}
