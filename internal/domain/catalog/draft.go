package catalog

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrDraftEmpty           = errors.New("draft has no services")
	ErrDraftServiceNotFound = errors.New("service not in draft")
	ErrDraftServiceNoPrices = errors.New("draft service has no pricing options")
)

// DraftService is one service being assembled inside a draft
type DraftService struct {
	Service Service
	Options []PricingOption
}

// Draft is an in-progress multi-service catalog setup. The provider adds
// services and priced options step by step; every added option is checked
// against the rest of its service, so a draft can never hold an invalid
// combination. Nothing is persisted until Submit hands the finished draft
// to the caller.
type Draft struct {
	ProviderID uuid.UUID
	Services   []DraftService
}

// NewDraft starts an empty draft for a provider
func NewDraft(providerID uuid.UUID) *Draft {
	return &Draft{ProviderID: providerID}
}

// AddService adds a new empty service to the draft and returns its ID
func (d *Draft) AddService(kind ServiceKind, name, description, notes string) uuid.UUID {
	svc := Service{
		ID:         uuid.New(),
		ProviderID: d.ProviderID,
		Kind:       kind,
		Name:       name,
	}
	if description != "" {
		svc.Description.String, svc.Description.Valid = description, true
	}
	if notes != "" {
		svc.Notes.String, svc.Notes.Valid = notes, true
	}
	d.Services = append(d.Services, DraftService{Service: svc})
	return svc.ID
}

// RemoveService drops a service and all its options from the draft
func (d *Draft) RemoveService(serviceID uuid.UUID) error {
	for i := range d.Services {
		if d.Services[i].Service.ID == serviceID {
			d.Services = append(d.Services[:i], d.Services[i+1:]...)
			return nil
		}
	}
	return ErrDraftServiceNotFound
}

func (d *Draft) find(serviceID uuid.UUID) *DraftService {
	for i := range d.Services {
		if d.Services[i].Service.ID == serviceID {
			return &d.Services[i]
		}
	}
	return nil
}

// AddOption validates a candidate option against the draft service's
// existing options and appends it if it passes
func (d *Draft) AddOption(serviceID uuid.UUID, option PricingOption) error {
	ds := d.find(serviceID)
	if ds == nil {
		return ErrDraftServiceNotFound
	}
	if option.ID == uuid.Nil {
		option.ID = uuid.New()
	}
	option.ServiceID = serviceID
	if err := ValidateOption(ds.Options, &option); err != nil {
		return err
	}
	ds.Options = append(ds.Options, option)
	return nil
}

// RemoveOption drops one option from a draft service
func (d *Draft) RemoveOption(serviceID, optionID uuid.UUID) error {
	ds := d.find(serviceID)
	if ds == nil {
		return ErrDraftServiceNotFound
	}
	for i := range ds.Options {
		if ds.Options[i].ID == optionID {
			ds.Options = append(ds.Options[:i], ds.Options[i+1:]...)
			return nil
		}
	}
	return ErrOptionNotFound
}

// Submit checks the draft is complete and returns its services for
// atomic persistence. Every service must carry at least one option.
func (d *Draft) Submit() ([]DraftService, error) {
	if len(d.Services) == 0 {
		return nil, ErrDraftEmpty
	}
	for i := range d.Services {
		if len(d.Services[i].Options) == 0 {
			return nil, ErrDraftServiceNoPrices
		}
	}
	return d.Services, nil
}
