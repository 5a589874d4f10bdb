package catalog

// allowedSizesByPetType is the single source of truth for which size keys
// each pet type may use. The size-hint endpoint and the validator both
// read this table, so the UI can only offer choices the validator accepts.
var allowedSizesByPetType = map[PetType][]SizeKey{
	PetDog:       {SizeExtraSmall, SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge},
	PetCat:       {SizeCatStandard, SizeExtraSmall, SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge},
	PetDogAndCat: {SizeAll},
}

// AllowedSizes returns the size keys a pet type may use
func AllowedSizes(petType PetType) []SizeKey {
	sizes := allowedSizesByPetType[petType]
	out := make([]SizeKey, len(sizes))
	copy(out, sizes)
	return out
}

func sizeAllowed(petType PetType, sizeKey SizeKey) bool {
	for _, s := range allowedSizesByPetType[petType] {
		if s == sizeKey {
			return true
		}
	}
	return false
}

// weightless size keys carry no weight range
func isWeightless(sizeKey SizeKey) bool {
	return sizeKey == SizeCatStandard || sizeKey == SizeAll
}

// excludesGeneral reports whether an existing option rules out adding a
// dog_and_cat/all row, or the reverse. A service either prices everything
// through the general row or through species-specific rows, never both.
func excludesGeneral(existing, candidate *PricingOption) bool {
	if candidate.SizeKey == SizeAll && existing.SizeKey != SizeAll {
		return true
	}
	if existing.SizeKey == SizeAll && candidate.SizeKey != SizeAll {
		return true
	}
	return false
}

// ValidateOption checks a candidate pricing option against a service's
// existing options. Rules run in a fixed order and the first violation
// wins. Pure: nothing is persisted here.
func ValidateOption(existing []PricingOption, candidate *PricingOption) error {
	if !sizeAllowed(candidate.PetType, candidate.SizeKey) {
		return conflictf(ConflictSizeNotAllowed,
			"size %q is not allowed for pet type %q", candidate.SizeKey, candidate.PetType)
	}

	for i := range existing {
		if existing[i].ID == candidate.ID {
			continue
		}
		if existing[i].PetType == candidate.PetType && existing[i].SizeKey == candidate.SizeKey {
			return conflictf(ConflictDuplicatePair,
				"an option for %s/%s already exists", candidate.PetType, candidate.SizeKey)
		}
	}

	for i := range existing {
		if existing[i].ID == candidate.ID {
			continue
		}
		if excludesGeneral(&existing[i], candidate) {
			return conflictf(ConflictGeneralExclusive,
				"a service cannot mix the general dog-and-cat option with species-specific options")
		}
	}

	// Within one service a cat is priced either by the flat cat_standard
	// row or by weighted sizes, never both.
	if candidate.PetType == PetCat {
		for i := range existing {
			if existing[i].ID == candidate.ID || existing[i].PetType != PetCat {
				continue
			}
			existingFlat := existing[i].SizeKey == SizeCatStandard
			candidateFlat := candidate.SizeKey == SizeCatStandard
			if existingFlat != candidateFlat {
				return conflictf(ConflictCatExclusive,
					"cat options must use either cat_standard or weighted sizes, not both")
			}
		}
	}

	min, max, hasWeight := candidate.WeightRange()
	if isWeightless(candidate.SizeKey) {
		if hasWeight {
			return conflictf(ConflictWeightForbidden,
				"size %q does not take a weight range", candidate.SizeKey)
		}
		return nil
	}
	if !hasWeight {
		return conflictf(ConflictWeightRequired,
			"size %q requires a weight range", candidate.SizeKey)
	}
	if min < 1 || min >= max {
		return conflictf(ConflictInvalidRange,
			"weight range %g-%g is invalid: min must be at least 1 and below max", min, max)
	}

	for i := range existing {
		if existing[i].ID == candidate.ID || existing[i].PetType != candidate.PetType {
			continue
		}
		otherMin, otherMax, ok := existing[i].WeightRange()
		if !ok {
			continue
		}
		// closed-interval overlap
		if min <= otherMax && otherMin <= max {
			return conflictf(ConflictRangeOverlap,
				"weight range %g-%g overlaps existing %s range %g-%g",
				min, max, existing[i].SizeKey, otherMin, otherMax)
		}
	}

	return nil
}

// ResolvePrice finds the price for a pet type and size among a service's
// options. A request matches an option whose size key equals the request
// and whose pet type equals the request or is the general dog_and_cat
// bucket. More than one match means the catalog was mutated out of band;
// that is reported as a conflict, never resolved by picking one.
func ResolvePrice(options []PricingOption, petType PetType, sizeKey SizeKey) (float64, error) {
	var matches []*PricingOption
	for i := range options {
		opt := &options[i]
		if opt.SizeKey != sizeKey {
			continue
		}
		if opt.PetType == petType || opt.PetType == PetDogAndCat {
			matches = append(matches, opt)
		}
	}

	switch len(matches) {
	case 0:
		return 0, ErrPriceNotFound
	case 1:
		return matches[0].Price, nil
	default:
		return 0, conflictf(ConflictAmbiguousPrice,
			"%d options match %s/%s", len(matches), petType, sizeKey)
	}
}
