package provider

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/groomspot/groomspot-api/internal/domain/user"
	"github.com/groomspot/groomspot-api/internal/pkg/storage"
)

// Service handles groomer application and profile business logic
type Service struct {
	repo     Repository
	userRepo user.Repository
	store    storage.Storage
}

// NewService creates provider service
func NewService(repo Repository, userRepo user.Repository, store storage.Storage) *Service {
	return &Service{repo: repo, userRepo: userRepo, store: store}
}

// Apply submits a groomer application with an optional permit document.
// The profile starts in pending verification and is invisible to owners
// until an admin approves it.
func (s *Service) Apply(ctx context.Context, userID uuid.UUID, req *ApplyRequest, document io.Reader) (*Profile, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrProfileNotFound
	}
	if !u.CanProvideServices() {
		return nil, ErrOnlyGroomersCanApply
	}

	existing, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrProfileExists
	}

	now := time.Now()
	p := &Profile{
		ID:                 uuid.New(),
		UserID:             userID,
		BusinessName:       req.BusinessName,
		City:               req.City,
		VerificationStatus: VerificationPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if req.Description != "" {
		p.Description = sql.NullString{String: req.Description, Valid: true}
	}
	if req.Address != "" {
		p.Address = sql.NullString{String: req.Address, Valid: true}
	}
	if req.Phone != "" {
		p.Phone = sql.NullString{String: req.Phone, Valid: true}
	}

	if document != nil {
		key, err := s.storeDocument(ctx, p.ID, document)
		if err != nil {
			return nil, err
		}
		p.DocumentKey = sql.NullString{String: key, Valid: true}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) storeDocument(ctx context.Context, profileID uuid.UUID, document io.Reader) (string, error) {
	buf, mimeType, err := storage.ValidateAndBuffer(document, storage.CategoryProviderDocument)
	if err != nil {
		return "", err
	}

	ext := storage.GetExtensionForMime(mimeType)
	key := fmt.Sprintf("provider-documents/%s/%s%s", profileID, uuid.New(), ext)

	if err := s.store.Put(ctx, key, buf, mimeType); err != nil {
		return "", err
	}
	return key, nil
}

// GetMine returns the calling groomer's profile
func (s *Service) GetMine(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// UpdateMine edits the calling groomer's profile fields
func (s *Service) UpdateMine(ctx context.Context, userID uuid.UUID, req *UpdateRequest) (*Profile, error) {
	p, err := s.GetMine(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.BusinessName != nil {
		p.BusinessName = *req.BusinessName
	}
	if req.Description != nil {
		p.Description = sql.NullString{String: *req.Description, Valid: *req.Description != ""}
	}
	if req.City != nil {
		p.City = *req.City
	}
	if req.Address != nil {
		p.Address = sql.NullString{String: *req.Address, Valid: *req.Address != ""}
	}
	if req.Phone != nil {
		p.Phone = sql.NullString{String: *req.Phone, Valid: *req.Phone != ""}
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListApproved returns the public provider listing
func (s *Service) ListApproved(ctx context.Context, city string, limit, offset int) ([]Profile, int, error) {
	profiles, err := s.repo.ListApproved(ctx, city, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountApproved(ctx, city)
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

// GetApproved returns one approved provider for the public booking screen
func (s *Service) GetApproved(ctx context.Context, id uuid.UUID) (*Profile, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	if !p.IsApproved() {
		return nil, ErrNotApproved
	}
	return p, nil
}

// ListPending returns applications awaiting review (admin)
func (s *Service) ListPending(ctx context.Context, limit, offset int) ([]Profile, error) {
	return s.repo.ListByStatus(ctx, VerificationPending, limit, offset)
}

// Approve approves a pending application (admin)
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*Profile, error) {
	return s.review(ctx, id, VerificationApproved, "")
}

// Reject rejects a pending application with a mandatory reason (admin)
func (s *Service) Reject(ctx context.Context, id uuid.UUID, reason string) (*Profile, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}
	return s.review(ctx, id, VerificationRejected, reason)
}

func (s *Service) review(ctx context.Context, id uuid.UUID, status VerificationStatus, reason string) (*Profile, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	if p.VerificationStatus != VerificationPending {
		return nil, ErrNotPending
	}

	var nullReason sql.NullString
	if reason != "" {
		nullReason = sql.NullString{String: reason, Valid: true}
	}
	if err := s.repo.UpdateVerification(ctx, id, status, nullReason); err != nil {
		return nil, err
	}

	p.VerificationStatus = status
	p.RejectionReason = nullReason
	return p, nil
}

// DocumentURL resolves the public URL for a profile's uploaded document
func (s *Service) DocumentURL(p *Profile) string {
	if !p.DocumentKey.Valid {
		return ""
	}
	return s.store.GetURL(p.DocumentKey.String)
}
