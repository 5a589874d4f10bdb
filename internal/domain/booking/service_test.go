package booking

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/groomspot/groomspot-api/internal/domain/catalog"
	"github.com/groomspot/groomspot-api/internal/domain/provider"
	"github.com/groomspot/groomspot-api/internal/domain/schedule"
	"github.com/groomspot/groomspot-api/internal/domain/user"
)

/* =========================
   In-memory fakes
   ========================= */

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*Booking
	pets     map[uuid.UUID][]Pet
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: make(map[uuid.UUID]*Booking),
		pets:     make(map[uuid.UUID][]Pet),
	}
}

func (r *fakeBookingRepo) slotHeld(providerID uuid.UUID, date, timeSlot string, exclude uuid.UUID) bool {
	for _, b := range r.bookings {
		if b.ID == exclude {
			continue
		}
		if b.ProviderID == providerID && b.Date == date && b.TimeSlot == timeSlot && b.Status.HoldsSlot() {
			return true
		}
	}
	return false
}

func (r *fakeBookingRepo) Create(ctx context.Context, b *Booking, pets []Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.slotHeld(b.ProviderID, b.Date, b.TimeSlot, uuid.Nil) {
		return schedule.ErrSlotTaken
	}
	clone := *b
	r.bookings[b.ID] = &clone
	r.pets[b.ID] = pets
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	clone := *b
	return &clone, nil
}

func (r *fakeBookingRepo) ListPets(ctx context.Context, bookingID uuid.UUID) ([]Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pets[bookingID], nil
}

func (r *fakeBookingRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Booking, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Booking
	for _, b := range r.bookings {
		if b.OwnerID == ownerID {
			out = append(out, *b)
		}
	}
	return out, len(out), nil
}

func (r *fakeBookingRepo) ListByProvider(ctx context.Context, providerID uuid.UUID, status *Status, limit, offset int) ([]Booking, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Booking
	for _, b := range r.bookings {
		if b.ProviderID != providerID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, *b)
	}
	return out, len(out), nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	return true, nil
}

func (r *fakeBookingRepo) UpdateStatusWithReason(ctx context.Context, id uuid.UUID, from, to Status, reason string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	b.RejectionReason = sql.NullString{String: reason, Valid: true}
	return true, nil
}

func (r *fakeBookingRepo) UpdateStatusWithProof(ctx context.Context, id uuid.UUID, from, to Status, proofKey, reference string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	b.PaymentProofKey = sql.NullString{String: proofKey, Valid: true}
	b.ReferenceNumber = sql.NullString{String: reference, Valid: reference != ""}
	return true, nil
}

func (r *fakeBookingRepo) UpdateSlot(ctx context.Context, id uuid.UUID, current Status, date, timeSlot string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != current {
		return false, nil
	}
	if b.Status.HoldsSlot() && r.slotHeld(b.ProviderID, date, timeSlot, id) {
		return false, schedule.ErrSlotTaken
	}
	b.Date = date
	b.TimeSlot = timeSlot
	return true, nil
}

func (r *fakeBookingRepo) ActiveHolds(ctx context.Context, providerID uuid.UUID, date string) ([]schedule.SlotHold, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var holds []schedule.SlotHold
	for _, b := range r.bookings {
		if b.ProviderID == providerID && b.Date == date && b.Status.HoldsSlot() {
			holds = append(holds, schedule.SlotHold{
				BookingID:  b.ID,
				ProviderID: b.ProviderID,
				Date:       b.Date,
				TimeSlot:   b.TimeSlot,
			})
		}
	}
	return holds, nil
}

type fakeCatalogRepo struct {
	services map[uuid.UUID]*catalog.Service
	options  map[uuid.UUID][]catalog.PricingOption
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		services: make(map[uuid.UUID]*catalog.Service),
		options:  make(map[uuid.UUID][]catalog.PricingOption),
	}
}

func (r *fakeCatalogRepo) CreateService(ctx context.Context, svc *catalog.Service) error {
	r.services[svc.ID] = svc
	return nil
}

func (r *fakeCatalogRepo) GetService(ctx context.Context, id uuid.UUID) (*catalog.Service, error) {
	return r.services[id], nil
}

func (r *fakeCatalogRepo) ListServicesByProvider(ctx context.Context, providerID uuid.UUID) ([]catalog.Service, error) {
	var out []catalog.Service
	for _, svc := range r.services {
		if svc.ProviderID == providerID {
			out = append(out, *svc)
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) UpdateService(ctx context.Context, svc *catalog.Service) error { return nil }

func (r *fakeCatalogRepo) DeleteService(ctx context.Context, id uuid.UUID) error {
	delete(r.services, id)
	delete(r.options, id)
	return nil
}

func (r *fakeCatalogRepo) CreateOption(ctx context.Context, opt *catalog.PricingOption) error {
	r.options[opt.ServiceID] = append(r.options[opt.ServiceID], *opt)
	return nil
}

func (r *fakeCatalogRepo) GetOption(ctx context.Context, id uuid.UUID) (*catalog.PricingOption, error) {
	for _, opts := range r.options {
		for i := range opts {
			if opts[i].ID == id {
				return &opts[i], nil
			}
		}
	}
	return nil, nil
}

func (r *fakeCatalogRepo) ListOptions(ctx context.Context, serviceID uuid.UUID) ([]catalog.PricingOption, error) {
	return r.options[serviceID], nil
}

func (r *fakeCatalogRepo) UpdateOption(ctx context.Context, opt *catalog.PricingOption) error {
	return nil
}

func (r *fakeCatalogRepo) DeleteOption(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeCatalogRepo) SubmitDraft(ctx context.Context, services []catalog.DraftService) error {
	return nil
}

type fakeProviderRepo struct {
	profiles map[uuid.UUID]*provider.Profile
}

func newFakeProviderRepo() *fakeProviderRepo {
	return &fakeProviderRepo{profiles: make(map[uuid.UUID]*provider.Profile)}
}

func (r *fakeProviderRepo) Create(ctx context.Context, p *provider.Profile) error {
	r.profiles[p.ID] = p
	return nil
}

func (r *fakeProviderRepo) GetByID(ctx context.Context, id uuid.UUID) (*provider.Profile, error) {
	return r.profiles[id], nil
}

func (r *fakeProviderRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*provider.Profile, error) {
	for _, p := range r.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProviderRepo) Update(ctx context.Context, p *provider.Profile) error { return nil }

func (r *fakeProviderRepo) UpdateVerification(ctx context.Context, id uuid.UUID, status provider.VerificationStatus, reason sql.NullString) error {
	return nil
}

func (r *fakeProviderRepo) ListApproved(ctx context.Context, city string, limit, offset int) ([]provider.Profile, error) {
	return nil, nil
}

func (r *fakeProviderRepo) CountApproved(ctx context.Context, city string) (int, error) {
	return 0, nil
}

func (r *fakeProviderRepo) ListByStatus(ctx context.Context, status provider.VerificationStatus, limit, offset int) ([]provider.Profile, error) {
	return nil, nil
}

type fakeScheduleRepo struct {
	hours []schedule.OperatingHours
}

func (r *fakeScheduleRepo) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]schedule.OperatingHours, error) {
	return r.hours, nil
}

func (r *fakeScheduleRepo) ReplaceDay(ctx context.Context, providerID uuid.UUID, weekday time.Weekday, windows []schedule.Window) error {
	return nil
}

type fakeStorage struct {
	objects map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (s *fakeStorage) Put(ctx context.Context, key string, reader io.Reader, contentType string) error {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return err
	}
	s.objects[key] = buf.Bytes()
	return nil
}

func (s *fakeStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStorage) Delete(ctx context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func (s *fakeStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := s.objects[key]
	return ok, nil
}

func (s *fakeStorage) GetURL(key string) string {
	return "https://files.test/" + key
}

/* =========================
   Fixture
   ========================= */

type fixture struct {
	service     *BookingService
	repo        *fakeBookingRepo
	ownerID     uuid.UUID
	groomerUser uuid.UUID
	providerID  uuid.UUID
	serviceID   uuid.UUID
	now         time.Time
}

// newFixture builds a groomer open Mondays 09:00-17:00 with a medium-dog
// Full Groom at 600
func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		ownerID:     uuid.New(),
		groomerUser: uuid.New(),
		now:         mustTime("2025-01-06T08:00"), // a Monday morning
	}

	providerRepo := newFakeProviderRepo()
	p := &provider.Profile{
		ID:                 uuid.New(),
		UserID:             f.groomerUser,
		BusinessName:       "Paws & Claws",
		City:               "Almaty",
		VerificationStatus: provider.VerificationApproved,
	}
	providerRepo.Create(context.Background(), p)
	f.providerID = p.ID

	catalogRepo := newFakeCatalogRepo()
	svc := &catalog.Service{
		ID:         uuid.New(),
		ProviderID: p.ID,
		Kind:       catalog.KindPackage,
		Name:       "Full Groom",
	}
	catalogRepo.CreateService(context.Background(), svc)
	f.serviceID = svc.ID
	catalogRepo.CreateOption(context.Background(), &catalog.PricingOption{
		ID:        uuid.New(),
		ServiceID: svc.ID,
		PetType:   catalog.PetDog,
		SizeKey:   catalog.SizeMedium,
		WeightMin: sql.NullFloat64{Float64: 5, Valid: true},
		WeightMax: sql.NullFloat64{Float64: 10, Valid: true},
		Price:     600,
	})

	scheduleRepo := &fakeScheduleRepo{hours: []schedule.OperatingHours{{
		ID:         uuid.New(),
		ProviderID: p.ID,
		Weekday:    time.Monday,
		StartTime:  "09:00",
		EndTime:    "17:00",
	}}}

	f.repo = newFakeBookingRepo()
	sched := schedule.NewService(scheduleRepo, providerRepo, f.repo)

	f.service = NewService(f.repo, catalogRepo, providerRepo, sched, newFakeStorage(), nil)
	f.service.now = func() time.Time { return f.now }
	return f
}

func mustTime(value string) time.Time {
	t, err := time.Parse("2006-01-02T15:04", value)
	if err != nil {
		panic(err)
	}
	return t
}

func (f *fixture) createRequest(date, timeSlot string) *CreateRequest {
	return &CreateRequest{
		ProviderID: f.providerID.String(),
		ServiceID:  f.serviceID.String(),
		PetType:    string(catalog.PetDog),
		SizeKey:    string(catalog.SizeMedium),
		Date:       date,
		TimeSlot:   timeSlot,
		Pets:       []PetRequest{{Name: "Rex", PetType: string(catalog.PetDog)}},
	}
}

/* =========================
   Tests
   ========================= */

func TestCreateBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.service.Create(ctx, f.ownerID, f.createRequest("2025-01-13", "10:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.Status != StatusPending {
		t.Fatalf("expected pending, got %s", b.Status)
	}
	if b.Price != 600 {
		t.Fatalf("expected snapshotted price 600, got %g", b.Price)
	}
}

func TestCreateBookingRejectsBadSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 2025-01-14 is a Tuesday: closed
	if _, err := f.service.Create(ctx, f.ownerID, f.createRequest("2025-01-14", "10:00")); !errors.Is(err, schedule.ErrClosedDay) {
		t.Fatalf("expected ErrClosedDay, got %v", err)
	}

	var outside *schedule.OutsideHoursError
	if _, err := f.service.Create(ctx, f.ownerID, f.createRequest("2025-01-13", "18:00")); !errors.As(err, &outside) {
		t.Fatalf("expected OutsideHoursError, got %v", err)
	}
}

func TestCreateBookingRejectsUnpricedCombination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := f.createRequest("2025-01-13", "10:00")
	req.PetType = string(catalog.PetCat)
	req.SizeKey = string(catalog.SizeCatStandard)

	if _, err := f.service.Create(ctx, f.ownerID, req); !errors.Is(err, catalog.ErrPriceNotFound) {
		t.Fatalf("expected ErrPriceNotFound, got %v", err)
	}
}

func TestCreateBookingDoubleBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.service.Create(ctx, f.ownerID, f.createRequest("2025-01-13", "10:00")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := f.service.Create(ctx, uuid.New(), f.createRequest("2025-01-13", "10:00")); !errors.Is(err, schedule.ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
	// a different slot the same day is fine
	if _, err := f.service.Create(ctx, uuid.New(), f.createRequest("2025-01-13", "11:00")); err != nil {
		t.Fatalf("different slot: %v", err)
	}
}

func TestTransitionAuthorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.service.Create(ctx, f.ownerID, f.createRequest("2025-01-13", "10:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// owner cannot approve
	if _, err := f.service.Transition(ctx, f.ownerID, string(user.RoleOwner), b.ID, EventApprove, ""); !errors.Is(err, ErrNotBookingActor) {
		t.Fatalf("owner approve: expected ErrNotBookingActor, got %v", err)
	}
	// a stranger groomer is not the booking's provider
	if _, err := f.service.Transition(ctx, uuid.New(), string(user.RoleGroomer), b.ID, EventApprove, ""); !errors.Is(err, ErrNotBookingActor) {
		t.Fatalf("stranger approve: expected ErrNotBookingActor, got %v", err)
	}
	// another owner cannot cancel
	if _, err := f.service.Transition(ctx, uuid.New(), string(user.RoleOwner), b.ID, EventCancel, ""); !errors.Is(err, ErrNotBookingActor) {
		t.Fatalf("stranger cancel: expected ErrNotBookingActor, got %v", err)
	}
}

func TestDeclineRequiresReason(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.service.Create(ctx, f.ownerID, f.createRequest("2025-01-13", "10:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.service.Transition(ctx, f.groomerUser, string(user.RoleGroomer), b.ID, EventDecline, ""); !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}

	declined, err := f.service.Transition(ctx, f.groomerUser, string(user.RoleGroomer), b.ID, EventDecline, "fully booked")
	if err != nil {
		t.Fatalf("decline: %v", err)
	}
	if declined.Status != StatusDeclined {
		t.Fatalf("expected declined, got %s", declined.Status)
	}
	if !declined.RejectionReason.Valid || declined.RejectionReason.String != "fully booked" {
		t.Fatalf("expected reason recorded, got %v", declined.RejectionReason)
	}
}

func TestTransitionFromTerminalRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.service.Create(ctx, f.ownerID, f.createRequest("2025-01-13", "10:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.service.Transition(ctx, f.groomerUser, string(user.RoleGroomer), b.ID, EventDecline, "fully booked"); err != nil {
		t.Fatalf("decline: %v", err)
	}

	if _, err := f.service.Transition(ctx, f.groomerUser, string(user.RoleGroomer), b.ID, EventApprove, ""); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("approve after decline: expected ErrInvalidTransition, got %v", err)
	}

	stored, _ := f.repo.GetByID(ctx, b.ID)
	if stored.Status != StatusDeclined {
		t.Fatalf("rejected transition must not mutate, got %s", stored.Status)
	}
}

func TestDeclineFreesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.service.Create(ctx, f.ownerID, f.createRequest("2025-01-13", "10:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.service.Transition(ctx, f.groomerUser, string(user.RoleGroomer), b.ID, EventDecline, "fully booked"); err != nil {
		t.Fatalf("decline: %v", err)
	}

	// the slot no longer holds; someone else can book it
	if _, err := f.service.Create(ctx, uuid.New(), f.createRequest("2025-01-13", "10:00")); err != nil {
		t.Fatalf("rebook after decline: %v", err)
	}
}

func TestSubmitProofFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.service.Create(ctx, f.ownerID, f.createRequest("2025-01-13", "10:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// proof before approval is an invalid transition
	proof := bytes.NewReader(pngBytes())
	if _, err := f.service.SubmitProof(ctx, f.ownerID, b.ID, proof, "TXN-1"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("proof while pending: expected ErrInvalidTransition, got %v", err)
	}

	if _, err := f.service.Transition(ctx, f.groomerUser, string(user.RoleGroomer), b.ID, EventApprove, ""); err != nil {
		t.Fatalf("approve: %v", err)
	}

	proof = bytes.NewReader(pngBytes())
	submitted, err := f.service.SubmitProof(ctx, f.ownerID, b.ID, proof, "TXN-1")
	if err != nil {
		t.Fatalf("submit proof: %v", err)
	}
	if submitted.Status != StatusAwaitingVerification {
		t.Fatalf("expected awaiting_verification, got %s", submitted.Status)
	}
	if !submitted.PaymentProofKey.Valid {
		t.Fatal("expected proof key recorded")
	}
	if !submitted.ReferenceNumber.Valid || submitted.ReferenceNumber.String != "TXN-1" {
		t.Fatalf("expected reference recorded, got %v", submitted.ReferenceNumber)
	}
}

func TestRescheduleExcludesSelf(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.service.Create(ctx, f.ownerID, f.createRequest("2025-01-13", "10:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// moving onto its own slot succeeds: the booking's hold is excluded
	moved, err := f.service.Reschedule(ctx, f.ownerID, string(user.RoleOwner), b.ID, &RescheduleRequest{Date: "2025-01-13", TimeSlot: "10:00"})
	if err != nil {
		t.Fatalf("reschedule onto own slot: %v", err)
	}
	if moved.TimeSlot != "10:00" {
		t.Fatalf("expected 10:00, got %s", moved.TimeSlot)
	}

	// moving to a closed day fails and leaves the record untouched
	_, err = f.service.Reschedule(ctx, f.ownerID, string(user.RoleOwner), b.ID, &RescheduleRequest{Date: "2025-01-14", TimeSlot: "10:00"})
	if !errors.Is(err, schedule.ErrClosedDay) {
		t.Fatalf("expected ErrClosedDay, got %v", err)
	}
	stored, _ := f.repo.GetByID(ctx, b.ID)
	if stored.Date != "2025-01-13" || stored.TimeSlot != "10:00" {
		t.Fatalf("failed reschedule must not move the booking, got %s %s", stored.Date, stored.TimeSlot)
	}

	// moving onto another booking's slot fails
	if _, err := f.service.Create(ctx, uuid.New(), f.createRequest("2025-01-13", "11:00")); err != nil {
		t.Fatalf("second booking: %v", err)
	}
	_, err = f.service.Reschedule(ctx, f.ownerID, string(user.RoleOwner), b.ID, &RescheduleRequest{Date: "2025-01-13", TimeSlot: "11:00"})
	if !errors.Is(err, schedule.ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
}

func TestFullLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.service.Create(ctx, f.ownerID, f.createRequest("2025-01-13", "10:00"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.Status != StatusPending {
		t.Fatalf("expected pending, got %s", b.Status)
	}

	if b, err = f.service.Transition(ctx, f.groomerUser, string(user.RoleGroomer), b.ID, EventApprove, ""); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if b.Status != StatusApproved {
		t.Fatalf("expected approved, got %s", b.Status)
	}

	if b, err = f.service.SubmitProof(ctx, f.ownerID, b.ID, bytes.NewReader(pngBytes()), "TXN-42"); err != nil {
		t.Fatalf("submit proof: %v", err)
	}
	if b.Status != StatusAwaitingVerification {
		t.Fatalf("expected awaiting_verification, got %s", b.Status)
	}

	if b, err = f.service.Transition(ctx, f.groomerUser, string(user.RoleGroomer), b.ID, EventAcceptPayment, ""); err != nil {
		t.Fatalf("accept payment: %v", err)
	}
	if b.Status != StatusPaid {
		t.Fatalf("expected paid, got %s", b.Status)
	}

	// four hours past the appointment the booking classifies as completed
	if got := Classify(b, mustTime("2025-01-13T14:00")); got != StatusCompleted {
		t.Fatalf("expected completed, got %s", got)
	}
	// but the stored status stays paid
	stored, _ := f.repo.GetByID(ctx, b.ID)
	if stored.Status != StatusPaid {
		t.Fatalf("completed must not be materialized, stored status is %s", stored.Status)
	}
}

// pngBytes returns a minimal PNG header so the proof passes mime sniffing
func pngBytes() []byte {
	data := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	return append(data, make([]byte, 512)...)
}
