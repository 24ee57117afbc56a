package catalog

import (
	"errors"
	"fmt"

	"homologacion_motos/internal/domain/entities"
)

var (
	// ErrCycleDetected is a catalog integrity fault: an inclusion path
	// revisited a tier. Write-time validation should make this impossible.
	ErrCycleDetected = errors.New("cycle detected in tier inclusions")
	// ErrInvalidInclusion is a catalog integrity fault: an inclusion row does
	// not reference exactly one of element/tier.
	ErrInvalidInclusion = errors.New("inclusion must reference exactly one of element or tier")
	ErrTierNotFound     = errors.New("tariff tier not found")
)

// Limit is a quantity bound; the zero value is "up to 0", use Unlimited() or
// LimitOf to construct.
type Limit struct {
	Unlimited bool
	Max       int
}

func Unlimited() Limit {
	return Limit{Unlimited: true}
}

// LimitOf maps a stored max-quantity to a Limit; zero or negative means
// unlimited (absent bound).
func LimitOf(maxQuantity int) Limit {
	if maxQuantity <= 0 {
		return Unlimited()
	}
	return Limit{Max: maxQuantity}
}

func (l Limit) Covers(quantity int) bool {
	return l.Unlimited || quantity <= l.Max
}

func (l Limit) String() string {
	if l.Unlimited {
		return "unlimited"
	}
	return fmt.Sprintf("%d", l.Max)
}

// minLimit combines two bounds; unlimited is the identity.
func minLimit(a, b Limit) Limit {
	if a.Unlimited {
		return b
	}
	if b.Unlimited {
		return a
	}
	if b.Max < a.Max {
		return b
	}
	return a
}

// Coverage maps element id -> effective quantity limit under one tier.
type Coverage map[string]Limit

// Resolve flattens a tier's inclusion graph into element coverage.
//
// Depth-first over inclusions; a direct element inclusion contributes its own
// max quantity, a nested tier is resolved recursively with every resulting
// limit clamped to the inclusion's max quantity. An element reachable through
// several paths keeps the minimum limit across paths, never the sum. A tier
// revisited on the current path is ErrCycleDetected.
func Resolve(s entities.CatalogSnapshot, tierID string) (Coverage, error) {
	if _, ok := s.Tiers[tierID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrTierNotFound, tierID)
	}
	cov := make(Coverage)
	onPath := make(map[string]bool)
	if err := resolveInto(s, tierID, Unlimited(), onPath, cov); err != nil {
		return nil, err
	}
	return cov, nil
}

func resolveInto(s entities.CatalogSnapshot, tierID string, clamp Limit, onPath map[string]bool, cov Coverage) error {
	if onPath[tierID] {
		return fmt.Errorf("%w: tier %s revisited on path", ErrCycleDetected, tierID)
	}
	onPath[tierID] = true
	defer delete(onPath, tierID)

	for _, in := range s.Inclusions[tierID] {
		hasElement := in.ElementID != ""
		hasTier := in.IncludedTierID != ""
		switch {
		case hasElement && !hasTier:
			lim := minLimit(LimitOf(in.MaxQuantity), clamp)
			if existing, ok := cov[in.ElementID]; ok {
				lim = minLimit(existing, lim)
			}
			cov[in.ElementID] = lim
		case hasTier && !hasElement:
			if _, ok := s.Tiers[in.IncludedTierID]; !ok {
				return fmt.Errorf("%w: nested %s", ErrTierNotFound, in.IncludedTierID)
			}
			nested := minLimit(LimitOf(in.MaxQuantity), clamp)
			if err := resolveInto(s, in.IncludedTierID, nested, onPath, cov); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: inclusion %s", ErrInvalidInclusion, in.ID)
		}
	}
	return nil
}
