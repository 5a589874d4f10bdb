package catalog_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/groomspot/groomspot-api/internal/domain/catalog"
)

func option(petType catalog.PetType, sizeKey catalog.SizeKey, price float64) catalog.PricingOption {
	return catalog.PricingOption{
		ID:      uuid.New(),
		PetType: petType,
		SizeKey: sizeKey,
		Price:   price,
	}
}

func weighted(petType catalog.PetType, sizeKey catalog.SizeKey, min, max, price float64) catalog.PricingOption {
	opt := option(petType, sizeKey, price)
	opt.WeightMin = sql.NullFloat64{Float64: min, Valid: true}
	opt.WeightMax = sql.NullFloat64{Float64: max, Valid: true}
	return opt
}

func conflictKind(t *testing.T, err error) catalog.ConflictKind {
	t.Helper()
	var c *catalog.Conflict
	if !errors.As(err, &c) {
		t.Fatalf("expected a pricing conflict, got %v", err)
	}
	return c.Kind
}

func TestValidateOptionDuplicatePair(t *testing.T) {
	existing := []catalog.PricingOption{
		weighted(catalog.PetDog, catalog.SizeMedium, 5, 10, 500),
	}
	candidate := weighted(catalog.PetDog, catalog.SizeMedium, 11, 15, 600)

	err := catalog.ValidateOption(existing, &candidate)
	if kind := conflictKind(t, err); kind != catalog.ConflictDuplicatePair {
		t.Fatalf("expected duplicate_pair, got %s", kind)
	}
}

func TestValidateOptionGeneralExclusive(t *testing.T) {
	t.Run("all row blocks specific rows", func(t *testing.T) {
		existing := []catalog.PricingOption{
			option(catalog.PetDogAndCat, catalog.SizeAll, 400),
		}
		candidate := weighted(catalog.PetDog, catalog.SizeSmall, 1, 5, 300)

		err := catalog.ValidateOption(existing, &candidate)
		if kind := conflictKind(t, err); kind != catalog.ConflictGeneralExclusive {
			t.Fatalf("expected general_exclusive, got %s", kind)
		}
	})

	t.Run("specific rows block the all row", func(t *testing.T) {
		existing := []catalog.PricingOption{
			weighted(catalog.PetDog, catalog.SizeSmall, 1, 5, 300),
		}
		candidate := option(catalog.PetDogAndCat, catalog.SizeAll, 400)

		err := catalog.ValidateOption(existing, &candidate)
		if kind := conflictKind(t, err); kind != catalog.ConflictGeneralExclusive {
			t.Fatalf("expected general_exclusive, got %s", kind)
		}
	})
}

func TestValidateOptionCatExclusive(t *testing.T) {
	t.Run("cat_standard blocks weighted cat", func(t *testing.T) {
		existing := []catalog.PricingOption{
			option(catalog.PetCat, catalog.SizeCatStandard, 350),
		}
		candidate := weighted(catalog.PetCat, catalog.SizeSmall, 1, 4, 300)

		err := catalog.ValidateOption(existing, &candidate)
		if kind := conflictKind(t, err); kind != catalog.ConflictCatExclusive {
			t.Fatalf("expected cat_exclusive, got %s", kind)
		}
	})

	t.Run("weighted cat blocks cat_standard", func(t *testing.T) {
		existing := []catalog.PricingOption{
			weighted(catalog.PetCat, catalog.SizeSmall, 1, 4, 300),
		}
		candidate := option(catalog.PetCat, catalog.SizeCatStandard, 350)

		err := catalog.ValidateOption(existing, &candidate)
		if kind := conflictKind(t, err); kind != catalog.ConflictCatExclusive {
			t.Fatalf("expected cat_exclusive, got %s", kind)
		}
	})

	t.Run("dog options do not constrain cats", func(t *testing.T) {
		existing := []catalog.PricingOption{
			weighted(catalog.PetDog, catalog.SizeSmall, 1, 5, 300),
		}
		candidate := option(catalog.PetCat, catalog.SizeCatStandard, 350)

		if err := catalog.ValidateOption(existing, &candidate); err != nil {
			t.Fatalf("expected ok, got %v", err)
		}
	})
}

func TestValidateOptionSizeNotAllowed(t *testing.T) {
	cases := []struct {
		name      string
		candidate catalog.PricingOption
	}{
		{"dog cannot use cat_standard", option(catalog.PetDog, catalog.SizeCatStandard, 300)},
		{"dog cannot use all", option(catalog.PetDog, catalog.SizeAll, 300)},
		{"dog_and_cat cannot use medium", weighted(catalog.PetDogAndCat, catalog.SizeMedium, 5, 10, 300)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := catalog.ValidateOption(nil, &tc.candidate)
			if kind := conflictKind(t, err); kind != catalog.ConflictSizeNotAllowed {
				t.Fatalf("expected size_not_allowed, got %s", kind)
			}
		})
	}
}

func TestValidateOptionWeightRules(t *testing.T) {
	t.Run("weighted size requires a range", func(t *testing.T) {
		candidate := option(catalog.PetDog, catalog.SizeMedium, 500)
		err := catalog.ValidateOption(nil, &candidate)
		if kind := conflictKind(t, err); kind != catalog.ConflictWeightRequired {
			t.Fatalf("expected weight_required, got %s", kind)
		}
	})

	t.Run("cat_standard rejects a range", func(t *testing.T) {
		candidate := weighted(catalog.PetCat, catalog.SizeCatStandard, 1, 4, 350)
		err := catalog.ValidateOption(nil, &candidate)
		if kind := conflictKind(t, err); kind != catalog.ConflictWeightForbidden {
			t.Fatalf("expected weight_forbidden, got %s", kind)
		}
	})

	t.Run("min below one is invalid", func(t *testing.T) {
		candidate := weighted(catalog.PetDog, catalog.SizeSmall, 0.5, 5, 300)
		err := catalog.ValidateOption(nil, &candidate)
		if kind := conflictKind(t, err); kind != catalog.ConflictInvalidRange {
			t.Fatalf("expected invalid_range, got %s", kind)
		}
	})

	t.Run("min must be below max", func(t *testing.T) {
		candidate := weighted(catalog.PetDog, catalog.SizeSmall, 5, 5, 300)
		err := catalog.ValidateOption(nil, &candidate)
		if kind := conflictKind(t, err); kind != catalog.ConflictInvalidRange {
			t.Fatalf("expected invalid_range, got %s", kind)
		}
	})
}

func TestValidateOptionRangeOverlap(t *testing.T) {
	existing := []catalog.PricingOption{
		weighted(catalog.PetDog, catalog.SizeSmall, 1, 5, 300),
	}

	t.Run("overlapping dog ranges rejected", func(t *testing.T) {
		candidate := weighted(catalog.PetDog, catalog.SizeMedium, 4, 8, 500)
		err := catalog.ValidateOption(existing, &candidate)
		if kind := conflictKind(t, err); kind != catalog.ConflictRangeOverlap {
			t.Fatalf("expected range_overlap, got %s", kind)
		}
	})

	t.Run("touching endpoints overlap under closed intervals", func(t *testing.T) {
		candidate := weighted(catalog.PetDog, catalog.SizeMedium, 5, 10, 500)
		err := catalog.ValidateOption(existing, &candidate)
		if kind := conflictKind(t, err); kind != catalog.ConflictRangeOverlap {
			t.Fatalf("expected range_overlap, got %s", kind)
		}
	})

	t.Run("disjoint dog ranges accepted", func(t *testing.T) {
		candidate := weighted(catalog.PetDog, catalog.SizeMedium, 6, 10, 500)
		if err := catalog.ValidateOption(existing, &candidate); err != nil {
			t.Fatalf("expected ok, got %v", err)
		}
	})

	t.Run("cat range may overlap a dog range", func(t *testing.T) {
		candidate := weighted(catalog.PetCat, catalog.SizeSmall, 1, 5, 300)
		if err := catalog.ValidateOption(existing, &candidate); err != nil {
			t.Fatalf("expected ok, got %v", err)
		}
	})
}

func TestValidateOptionEditExcludesSelf(t *testing.T) {
	existing := []catalog.PricingOption{
		weighted(catalog.PetDog, catalog.SizeMedium, 5, 10, 500),
	}

	// editing the same row keeps its own (pet_type, size_key) and range
	edited := existing[0]
	edited.Price = 550

	if err := catalog.ValidateOption(existing, &edited); err != nil {
		t.Fatalf("expected ok editing own row, got %v", err)
	}
}

func TestResolvePrice(t *testing.T) {
	options := []catalog.PricingOption{
		weighted(catalog.PetDog, catalog.SizeMedium, 5, 10, 500),
		weighted(catalog.PetCat, catalog.SizeSmall, 1, 4, 300),
	}

	t.Run("exact match", func(t *testing.T) {
		price, err := catalog.ResolvePrice(options, catalog.PetDog, catalog.SizeMedium)
		if err != nil {
			t.Fatalf("expected price, got %v", err)
		}
		if price != 500 {
			t.Fatalf("expected 500, got %g", price)
		}
	})

	t.Run("no row for requested type", func(t *testing.T) {
		_, err := catalog.ResolvePrice(options, catalog.PetCat, catalog.SizeMedium)
		if !errors.Is(err, catalog.ErrPriceNotFound) {
			t.Fatalf("expected ErrPriceNotFound, got %v", err)
		}
	})

	t.Run("general row covers both species", func(t *testing.T) {
		general := []catalog.PricingOption{
			option(catalog.PetDogAndCat, catalog.SizeAll, 400),
		}
		price, err := catalog.ResolvePrice(general, catalog.PetDog, catalog.SizeAll)
		if err != nil {
			t.Fatalf("expected price, got %v", err)
		}
		if price != 400 {
			t.Fatalf("expected 400, got %g", price)
		}
	})

	t.Run("ambiguous catalog raises a conflict", func(t *testing.T) {
		// two rows matching dog/all can only exist if the catalog was
		// mutated out of band
		corrupted := []catalog.PricingOption{
			option(catalog.PetDogAndCat, catalog.SizeAll, 400),
			option(catalog.PetDog, catalog.SizeAll, 450),
		}
		_, err := catalog.ResolvePrice(corrupted, catalog.PetDog, catalog.SizeAll)
		if kind := conflictKind(t, err); kind != catalog.ConflictAmbiguousPrice {
			t.Fatalf("expected ambiguous_price, got %s", kind)
		}
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		first, err1 := catalog.ResolvePrice(options, catalog.PetDog, catalog.SizeMedium)
		second, err2 := catalog.ResolvePrice(options, catalog.PetDog, catalog.SizeMedium)
		if err1 != nil || err2 != nil {
			t.Fatalf("unexpected errors: %v %v", err1, err2)
		}
		if first != second {
			t.Fatalf("resolution not deterministic: %g vs %g", first, second)
		}
	})
}

func TestAllowedSizes(t *testing.T) {
	dogSizes := catalog.AllowedSizes(catalog.PetDog)
	for _, s := range dogSizes {
		if s == catalog.SizeCatStandard || s == catalog.SizeAll {
			t.Fatalf("dog sizes must not include %s", s)
		}
	}

	generalSizes := catalog.AllowedSizes(catalog.PetDogAndCat)
	if len(generalSizes) != 1 || generalSizes[0] != catalog.SizeAll {
		t.Fatalf("dog_and_cat must only allow all, got %v", generalSizes)
	}
}
