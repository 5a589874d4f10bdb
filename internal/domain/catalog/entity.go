package catalog

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// ServiceKind distinguishes bundled packages from single services
type ServiceKind string

const (
	KindPackage    ServiceKind = "package"
	KindIndividual ServiceKind = "individual"
)

// PetType is the species a pricing option applies to
type PetType string

const (
	PetDog       PetType = "dog"
	PetCat       PetType = "cat"
	PetDogAndCat PetType = "dog_and_cat"
)

// SizeKey is the fixed size enumeration for pricing options
type SizeKey string

const (
	SizeExtraSmall  SizeKey = "extra_small"
	SizeSmall       SizeKey = "small"
	SizeMedium      SizeKey = "medium"
	SizeLarge       SizeKey = "large"
	SizeExtraLarge  SizeKey = "extra_large"
	SizeCatStandard SizeKey = "cat_standard"
	SizeAll         SizeKey = "all"
)

// Service is a provider-defined grooming offering
type Service struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	ProviderID  uuid.UUID      `db:"provider_id" json:"provider_id"`
	Kind        ServiceKind    `db:"kind" json:"kind"`
	Name        string         `db:"name" json:"name"`
	Description sql.NullString `db:"description" json:"-"`
	Notes       sql.NullString `db:"notes" json:"-"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// PricingOption is one priced (pet type, size, weight range) row of a service
type PricingOption struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	ServiceID uuid.UUID       `db:"service_id" json:"service_id"`
	PetType   PetType         `db:"pet_type" json:"pet_type"`
	SizeKey   SizeKey         `db:"size_key" json:"size_key"`
	WeightMin sql.NullFloat64 `db:"weight_min" json:"-"`
	WeightMax sql.NullFloat64 `db:"weight_max" json:"-"`
	Price     float64         `db:"price" json:"price"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// WeightRange returns the option's weight range, or ok=false when the
// size key carries no weight (cat_standard, all)
func (o *PricingOption) WeightRange() (min, max float64, ok bool) {
	if !o.WeightMin.Valid || !o.WeightMax.Valid {
		return 0, 0, false
	}
	return o.WeightMin.Float64, o.WeightMax.Float64, true
}

// ServiceResponse is the API shape for a service
type ServiceResponse struct {
	ID          uuid.UUID               `json:"id"`
	ProviderID  uuid.UUID               `json:"provider_id"`
	Kind        ServiceKind             `json:"kind"`
	Name        string                  `json:"name"`
	Description string                  `json:"description,omitempty"`
	Notes       string                  `json:"notes,omitempty"`
	Options     []PricingOptionResponse `json:"options,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
}

// PricingOptionResponse is the API shape for a pricing option
type PricingOptionResponse struct {
	ID        uuid.UUID `json:"id"`
	PetType   PetType   `json:"pet_type"`
	SizeKey   SizeKey   `json:"size_key"`
	WeightMin *float64  `json:"weight_min,omitempty"`
	WeightMax *float64  `json:"weight_max,omitempty"`
	Price     float64   `json:"price"`
}

// ToResponse converts a service with its options to the API shape
func (s *Service) ToResponse(options []PricingOption) *ServiceResponse {
	resp := &ServiceResponse{
		ID:         s.ID,
		ProviderID: s.ProviderID,
		Kind:       s.Kind,
		Name:       s.Name,
		CreatedAt:  s.CreatedAt,
	}
	if s.Description.Valid {
		resp.Description = s.Description.String
	}
	if s.Notes.Valid {
		resp.Notes = s.Notes.String
	}
	for i := range options {
		resp.Options = append(resp.Options, options[i].ToResponse())
	}
	return resp
}

// ToResponse converts a pricing option to the API shape
func (o *PricingOption) ToResponse() PricingOptionResponse {
	resp := PricingOptionResponse{
		ID:      o.ID,
		PetType: o.PetType,
		SizeKey: o.SizeKey,
		Price:   o.Price,
	}
	if min, max, ok := o.WeightRange(); ok {
		resp.WeightMin = &min
		resp.WeightMax = &max
	}
	return resp
}
