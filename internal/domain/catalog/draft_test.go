package catalog_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/groomspot/groomspot-api/internal/domain/catalog"
)

func TestDraftBuildAndSubmit(t *testing.T) {
	draft := catalog.NewDraft(uuid.New())

	serviceID := draft.AddService(catalog.KindPackage, "Full Groom", "wash, cut, nails", "")

	if err := draft.AddOption(serviceID, weighted(catalog.PetDog, catalog.SizeMedium, 5, 10, 600)); err != nil {
		t.Fatalf("add option: %v", err)
	}
	if err := draft.AddOption(serviceID, weighted(catalog.PetDog, catalog.SizeLarge, 11, 20, 800)); err != nil {
		t.Fatalf("add option: %v", err)
	}

	services, err := draft.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(services) != 1 {
		t.Fatalf("expected 1 service, got %d", len(services))
	}
	if len(services[0].Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(services[0].Options))
	}
}

func TestDraftRejectsInvalidOption(t *testing.T) {
	draft := catalog.NewDraft(uuid.New())
	serviceID := draft.AddService(catalog.KindIndividual, "Nail Trim", "", "")

	if err := draft.AddOption(serviceID, weighted(catalog.PetDog, catalog.SizeSmall, 1, 5, 200)); err != nil {
		t.Fatalf("add option: %v", err)
	}

	err := draft.AddOption(serviceID, weighted(catalog.PetDog, catalog.SizeMedium, 4, 8, 300))
	if kind := conflictKind(t, err); kind != catalog.ConflictRangeOverlap {
		t.Fatalf("expected range_overlap, got %s", kind)
	}

	services, err := draft.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(services[0].Options) != 1 {
		t.Fatalf("rejected option must not enter the draft, got %d options", len(services[0].Options))
	}
}

func TestDraftSubmitRequiresOptions(t *testing.T) {
	draft := catalog.NewDraft(uuid.New())
	draft.AddService(catalog.KindIndividual, "Nail Trim", "", "")

	if _, err := draft.Submit(); !errors.Is(err, catalog.ErrDraftServiceNoPrices) {
		t.Fatalf("expected ErrDraftServiceNoPrices, got %v", err)
	}
}

func TestDraftSubmitEmpty(t *testing.T) {
	draft := catalog.NewDraft(uuid.New())
	if _, err := draft.Submit(); !errors.Is(err, catalog.ErrDraftEmpty) {
		t.Fatalf("expected ErrDraftEmpty, got %v", err)
	}
}

func TestDraftRemove(t *testing.T) {
	draft := catalog.NewDraft(uuid.New())
	serviceID := draft.AddService(catalog.KindPackage, "Full Groom", "", "")

	opt := weighted(catalog.PetDog, catalog.SizeMedium, 5, 10, 600)
	if err := draft.AddOption(serviceID, opt); err != nil {
		t.Fatalf("add option: %v", err)
	}
	if err := draft.RemoveOption(serviceID, opt.ID); err != nil {
		t.Fatalf("remove option: %v", err)
	}

	// once removed, the same pair is free again
	if err := draft.AddOption(serviceID, weighted(catalog.PetDog, catalog.SizeMedium, 5, 10, 650)); err != nil {
		t.Fatalf("re-add option: %v", err)
	}

	if err := draft.RemoveService(serviceID); err != nil {
		t.Fatalf("remove service: %v", err)
	}
	if err := draft.RemoveService(serviceID); !errors.Is(err, catalog.ErrDraftServiceNotFound) {
		t.Fatalf("expected ErrDraftServiceNotFound, got %v", err)
	}
}
