package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrOptionNotFound  = errors.New("pricing option not found")
	ErrPriceNotFound   = errors.New("no price for this pet type and size")
	ErrNotServiceOwner = errors.New("service belongs to another provider")
)

// ConflictKind identifies which catalog rule a candidate option violated
type ConflictKind string

const (
	ConflictDuplicatePair    ConflictKind = "duplicate_pair"
	ConflictGeneralExclusive ConflictKind = "general_exclusive"
	ConflictCatExclusive     ConflictKind = "cat_exclusive"
	ConflictSizeNotAllowed   ConflictKind = "size_not_allowed"
	ConflictWeightRequired   ConflictKind = "weight_required"
	ConflictWeightForbidden  ConflictKind = "weight_forbidden"
	ConflictInvalidRange     ConflictKind = "invalid_range"
	ConflictRangeOverlap     ConflictKind = "range_overlap"
	ConflictAmbiguousPrice   ConflictKind = "ambiguous_price"
)

// Conflict is a catalog invariant violation. It names the violated rule
// so the caller can render an actionable message.
type Conflict struct {
	Kind    ConflictKind
	Message string
}

func (c *Conflict) Error() string {
	return fmt.Sprintf("pricing conflict (%s): %s", c.Kind, c.Message)
}

// Details returns the conflict in the error-details map shape
func (c *Conflict) Details() map[string]string {
	return map[string]string{
		"rule":    string(c.Kind),
		"message": c.Message,
	}
}

func conflictf(kind ConflictKind, format string, args ...interface{}) *Conflict {
	return &Conflict{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
