package catalog

import "github.com/google/uuid"

// CreateServiceRequest for POST /catalog/services
type CreateServiceRequest struct {
	Kind        string `json:"kind" validate:"required,service_kind"`
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Notes       string `json:"notes" validate:"max=2000"`
}

// UpdateServiceRequest for PATCH /catalog/services/{id}
type UpdateServiceRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Notes       *string `json:"notes" validate:"omitempty,max=2000"`
}

// OptionRequest for creating or editing a pricing option
type OptionRequest struct {
	PetType   string   `json:"pet_type" validate:"required,pet_type"`
	SizeKey   string   `json:"size_key" validate:"required,size_key"`
	WeightMin *float64 `json:"weight_min" validate:"omitempty,gt=0"`
	WeightMax *float64 `json:"weight_max" validate:"omitempty,gt=0"`
	Price     float64  `json:"price" validate:"required,gt=0"`
}

// ResolveRequest for GET /catalog/services/{id}/price query params
type ResolveRequest struct {
	PetType string `json:"pet_type" validate:"required,pet_type"`
	SizeKey string `json:"size_key" validate:"required,size_key"`
}

// ResolveResponse carries a resolved price
type ResolveResponse struct {
	ServiceID uuid.UUID `json:"service_id"`
	PetType   PetType   `json:"pet_type"`
	SizeKey   SizeKey   `json:"size_key"`
	Price     float64   `json:"price"`
}

// DraftRequest is a full multi-service draft submitted in one call
type DraftRequest struct {
	Services []DraftServiceRequest `json:"services" validate:"required,min=1,dive"`
}

// DraftServiceRequest is one service inside a draft submission
type DraftServiceRequest struct {
	Kind        string          `json:"kind" validate:"required,service_kind"`
	Name        string          `json:"name" validate:"required,min=2,max=200"`
	Description string          `json:"description" validate:"max=2000"`
	Notes       string          `json:"notes" validate:"max=2000"`
	Options     []OptionRequest `json:"options" validate:"required,min=1,dive"`
}

// SizeHintsResponse lists the size keys still offerable for a pet type,
// given a service's existing options
type SizeHintsResponse struct {
	PetType PetType   `json:"pet_type"`
	Sizes   []SizeKey `json:"sizes"`
}

func (r *OptionRequest) toOption(serviceID uuid.UUID) PricingOption {
	opt := PricingOption{
		ID:        uuid.New(),
		ServiceID: serviceID,
		PetType:   PetType(r.PetType),
		SizeKey:   SizeKey(r.SizeKey),
		Price:     r.Price,
	}
	if r.WeightMin != nil {
		opt.WeightMin.Float64, opt.WeightMin.Valid = *r.WeightMin, true
	}
	if r.WeightMax != nil {
		opt.WeightMax.Float64, opt.WeightMax.Valid = *r.WeightMax, true
	}
	return opt
}
