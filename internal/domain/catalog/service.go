package catalog

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/groomspot/groomspot-api/internal/domain/provider"
)

// CatalogService handles catalog setup and price resolution
type CatalogService struct {
	repo         Repository
	providerRepo provider.Repository
}

// NewService creates catalog service
func NewService(repo Repository, providerRepo provider.Repository) *CatalogService {
	return &CatalogService{repo: repo, providerRepo: providerRepo}
}

func (s *CatalogService) providerFor(ctx context.Context, userID uuid.UUID) (*provider.Profile, error) {
	p, err := s.providerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, provider.ErrProfileNotFound
	}
	return p, nil
}

// ownedService loads a service and checks the calling groomer owns it
func (s *CatalogService) ownedService(ctx context.Context, userID, serviceID uuid.UUID) (*Service, error) {
	p, err := s.providerFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	svc, err := s.repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	if svc.ProviderID != p.ID {
		return nil, ErrNotServiceOwner
	}
	return svc, nil
}

// CreateService adds a new empty service to the calling groomer's catalog
func (s *CatalogService) CreateService(ctx context.Context, userID uuid.UUID, req *CreateServiceRequest) (*Service, error) {
	p, err := s.providerFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	svc := &Service{
		ID:         uuid.New(),
		ProviderID: p.ID,
		Kind:       ServiceKind(req.Kind),
		Name:       req.Name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.Description != "" {
		svc.Description = sql.NullString{String: req.Description, Valid: true}
	}
	if req.Notes != "" {
		svc.Notes = sql.NullString{String: req.Notes, Valid: true}
	}

	if err := s.repo.CreateService(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// UpdateService edits a service's descriptive fields
func (s *CatalogService) UpdateService(ctx context.Context, userID, serviceID uuid.UUID, req *UpdateServiceRequest) (*Service, error) {
	svc, err := s.ownedService(ctx, userID, serviceID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = sql.NullString{String: *req.Description, Valid: *req.Description != ""}
	}
	if req.Notes != nil {
		svc.Notes = sql.NullString{String: *req.Notes, Valid: *req.Notes != ""}
	}

	if err := s.repo.UpdateService(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// DeleteService removes a service; its pricing options cascade with it
func (s *CatalogService) DeleteService(ctx context.Context, userID, serviceID uuid.UUID) error {
	if _, err := s.ownedService(ctx, userID, serviceID); err != nil {
		return err
	}
	return s.repo.DeleteService(ctx, serviceID)
}

// GetService returns one service with its pricing options
func (s *CatalogService) GetService(ctx context.Context, serviceID uuid.UUID) (*Service, []PricingOption, error) {
	svc, err := s.repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, nil, err
	}
	if svc == nil {
		return nil, nil, ErrServiceNotFound
	}
	options, err := s.repo.ListOptions(ctx, serviceID)
	if err != nil {
		return nil, nil, err
	}
	return svc, options, nil
}

// ListByProvider returns a provider's full catalog for the booking screen
func (s *CatalogService) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*ServiceResponse, error) {
	services, err := s.repo.ListServicesByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	out := make([]*ServiceResponse, 0, len(services))
	for i := range services {
		options, err := s.repo.ListOptions(ctx, services[i].ID)
		if err != nil {
			return nil, err
		}
		out = append(out, services[i].ToResponse(options))
	}
	return out, nil
}

// AddOption validates a candidate option against the service's existing
// options and persists it. The validator always runs server-side, no
// matter what choices the UI offered.
func (s *CatalogService) AddOption(ctx context.Context, userID, serviceID uuid.UUID, req *OptionRequest) (*PricingOption, error) {
	if _, err := s.ownedService(ctx, userID, serviceID); err != nil {
		return nil, err
	}

	existing, err := s.repo.ListOptions(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	opt := req.toOption(serviceID)
	opt.CreatedAt = time.Now()
	if err := ValidateOption(existing, &opt); err != nil {
		return nil, err
	}

	if err := s.repo.CreateOption(ctx, &opt); err != nil {
		return nil, err
	}
	return &opt, nil
}

// UpdateOption edits an option, re-running the full validation with the
// edited row excluded from its own sibling set
func (s *CatalogService) UpdateOption(ctx context.Context, userID, serviceID, optionID uuid.UUID, req *OptionRequest) (*PricingOption, error) {
	if _, err := s.ownedService(ctx, userID, serviceID); err != nil {
		return nil, err
	}

	current, err := s.repo.GetOption(ctx, optionID)
	if err != nil {
		return nil, err
	}
	if current == nil || current.ServiceID != serviceID {
		return nil, ErrOptionNotFound
	}

	existing, err := s.repo.ListOptions(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	updated := req.toOption(serviceID)
	updated.ID = current.ID
	updated.CreatedAt = current.CreatedAt
	if err := ValidateOption(existing, &updated); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateOption(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteOption removes one pricing option
func (s *CatalogService) DeleteOption(ctx context.Context, userID, serviceID, optionID uuid.UUID) error {
	if _, err := s.ownedService(ctx, userID, serviceID); err != nil {
		return err
	}
	opt, err := s.repo.GetOption(ctx, optionID)
	if err != nil {
		return err
	}
	if opt == nil || opt.ServiceID != serviceID {
		return ErrOptionNotFound
	}
	return s.repo.DeleteOption(ctx, optionID)
}

// Resolve returns the price for a pet type and size on one service
func (s *CatalogService) Resolve(ctx context.Context, serviceID uuid.UUID, petType PetType, sizeKey SizeKey) (float64, error) {
	svc, err := s.repo.GetService(ctx, serviceID)
	if err != nil {
		return 0, err
	}
	if svc == nil {
		return 0, ErrServiceNotFound
	}
	options, err := s.repo.ListOptions(ctx, serviceID)
	if err != nil {
		return 0, err
	}
	return ResolvePrice(options, petType, sizeKey)
}

// SizeHints returns the size keys a pet type could still use on a
// service without violating the catalog rules. Probes the validator for
// each allowed size, so hints and validation can never disagree.
func (s *CatalogService) SizeHints(ctx context.Context, serviceID uuid.UUID, petType PetType) (*SizeHintsResponse, error) {
	svc, err := s.repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	existing, err := s.repo.ListOptions(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	hints := &SizeHintsResponse{PetType: petType, Sizes: []SizeKey{}}
	for _, size := range AllowedSizes(petType) {
		probe := PricingOption{ID: uuid.New(), ServiceID: serviceID, PetType: petType, SizeKey: size}
		if !isWeightless(size) {
			// probe with a range that cannot overlap anything real
			probe.WeightMin = sql.NullFloat64{Float64: 1, Valid: true}
			probe.WeightMax = sql.NullFloat64{Float64: 2, Valid: true}
		}
		err := ValidateOption(existing, &probe)
		if err == nil {
			hints.Sizes = append(hints.Sizes, size)
			continue
		}
		// overlap depends on the range the groomer will pick; the size
		// itself is still offerable
		if c, ok := err.(*Conflict); ok && c.Kind == ConflictRangeOverlap {
			hints.Sizes = append(hints.Sizes, size)
		}
	}
	return hints, nil
}

// SubmitDraft assembles a full multi-service draft, validates every
// option, and persists the whole catalog in one transaction
func (s *CatalogService) SubmitDraft(ctx context.Context, userID uuid.UUID, req *DraftRequest) ([]*ServiceResponse, error) {
	p, err := s.providerFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	draft := NewDraft(p.ID)
	for i := range req.Services {
		sr := &req.Services[i]
		serviceID := draft.AddService(ServiceKind(sr.Kind), sr.Name, sr.Description, sr.Notes)
		for j := range sr.Options {
			opt := sr.Options[j].toOption(serviceID)
			if err := draft.AddOption(serviceID, opt); err != nil {
				return nil, err
			}
		}
	}

	services, err := draft.Submit()
	if err != nil {
		return nil, err
	}
	if err := s.repo.SubmitDraft(ctx, services); err != nil {
		return nil, err
	}

	out := make([]*ServiceResponse, 0, len(services))
	for i := range services {
		out = append(out, services[i].Service.ToResponse(services[i].Options))
	}
	return out, nil
}
