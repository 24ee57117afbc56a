package catalog

import (
	"errors"
	"fmt"
	"strings"

	"homologacion_motos/internal/domain/entities"
)

var (
	ErrNoTierCovers   = errors.New("no tariff tier covers the requested elements")
	ErrUnknownElement = errors.New("unknown element code")
)

// RequestedElement is one line of the case's requested multiset.
type RequestedElement struct {
	Code     string
	Quantity int
}

// Selection is a chosen tier with the coverage that qualified it.
type Selection struct {
	Tier     entities.TariffTier
	Coverage Coverage
}

// ResolveFunc resolves a tier id into coverage; the caller injects its
// memoized version.
type ResolveFunc func(tierID string) (Coverage, error)

// SelectTariff returns the cheapest tier whose coverage admits every
// requested (element, quantity) and whose element-count bounds admit the
// total requested units. Price ties break on the lexically lowest tier code
// so selection stays deterministic. No qualifying tier is ErrNoTierCovers,
// never a fallback pick.
func SelectTariff(s entities.CatalogSnapshot, requested []RequestedElement, resolve ResolveFunc) (Selection, error) {
	if resolve == nil {
		resolve = func(tierID string) (Coverage, error) { return Resolve(s, tierID) }
	}

	totalUnits := 0
	ids := make([]string, 0, len(requested))
	for _, req := range requested {
		el, ok := s.ElementByCode[req.Code]
		if !ok {
			return Selection{}, fmt.Errorf("%w: %s", ErrUnknownElement, req.Code)
		}
		qty := req.Quantity
		if qty <= 0 {
			qty = 1
		}
		totalUnits += qty
		ids = append(ids, el.ID)
	}

	var best Selection
	found := false
	for _, tier := range s.Tiers {
		if tier.MinElements > 0 && totalUnits < tier.MinElements {
			continue
		}
		if tier.MaxElements > 0 && totalUnits > tier.MaxElements {
			continue
		}
		cov, err := resolve(tier.ID)
		if err != nil {
			return Selection{}, err
		}
		if !covers(cov, ids, requested) {
			continue
		}
		if !found || tier.Price < best.Tier.Price ||
			(tier.Price == best.Tier.Price && tier.Code < best.Tier.Code) {
			best = Selection{Tier: tier, Coverage: cov}
			found = true
		}
	}
	if !found {
		return Selection{}, ErrNoTierCovers
	}
	return best, nil
}

func covers(cov Coverage, elementIDs []string, requested []RequestedElement) bool {
	for i, id := range elementIDs {
		lim, ok := cov[id]
		if !ok {
			return false
		}
		qty := requested[i].Quantity
		if qty <= 0 {
			qty = 1
		}
		if !lim.Covers(qty) {
			return false
		}
	}
	return true
}

// ClassifyText nominates a tier from free text through the classification
// keyword rules: any keyword appearing in the folded text makes the tier a
// candidate, the highest priority wins, and equal priorities break on lowest
// price then lowest code (cheapest tier that fits).
func ClassifyText(s entities.CatalogSnapshot, text string) (entities.TariffTier, bool) {
	folded := Fold(text)
	if folded == "" {
		return entities.TariffTier{}, false
	}

	var best entities.TariffTier
	found := false
	for _, tier := range s.Tiers {
		if !keywordHit(tier.Classification.Keywords, folded) {
			continue
		}
		if !found || betterClassified(tier, best) {
			best = tier
			found = true
		}
	}
	return best, found
}

func betterClassified(candidate, current entities.TariffTier) bool {
	if candidate.Classification.Priority != current.Classification.Priority {
		return candidate.Classification.Priority > current.Classification.Priority
	}
	if candidate.Price != current.Price {
		return candidate.Price < current.Price
	}
	return candidate.Code < current.Code
}

func keywordHit(keywords []string, foldedText string) bool {
	for _, kw := range keywords {
		k := Fold(kw)
		if k != "" && strings.Contains(foldedText, k) {
			return true
		}
	}
	return false
}
