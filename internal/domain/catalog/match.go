package catalog

import (
	"fmt"
	"sort"

	"homologacion_motos/internal/domain/entities"
)

// Matching thresholds: a keyword hit scores 0.8, display-name token overlap
// adds up to 0.3, and anything under 0.5 is not trusted.
const (
	keywordScore       = 0.8
	nameOverlapScore   = 0.3
	minConfidenceScore = 0.5
)

type MatchOutcome string

const (
	MatchOutcomeMatched   MatchOutcome = "matched"
	MatchOutcomeAmbiguous MatchOutcome = "ambiguous"
	MatchOutcomeNoMatch   MatchOutcome = "no_match"
)

// MatchResult is the outcome of matching free text against the category.
//
// Ambiguous carries the variant question to persist on the case: the matched
// base element has variants and must not be resolved on this call.
type MatchResult struct {
	Outcome MatchOutcome
	Element entities.Element // matched element (or the base when ambiguous)
	Score   float64

	Prompt  string
	Options []entities.VariantOption
}

// MatchElement scores every element of the snapshot's category against text
// and returns the best one, an Ambiguous result when the best element has
// variants, or NoMatch when nothing reaches the confidence threshold.
func MatchElement(s entities.CatalogSnapshot, text string) MatchResult {
	best, score, ok := bestScored(elementsOf(s), text)
	if !ok || score < minConfidenceScore {
		return MatchResult{Outcome: MatchOutcomeNoMatch, Score: score}
	}

	variants := s.VariantsOf(best.ID)
	if len(variants) == 0 {
		return MatchResult{Outcome: MatchOutcomeMatched, Element: best, Score: score}
	}

	sorted := append([]entities.Element(nil), variants...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Code < sorted[j].Code })
	options := make([]entities.VariantOption, 0, len(sorted))
	for _, v := range sorted {
		options = append(options, entities.VariantOption{Code: v.Code, Name: v.Name})
	}
	return MatchResult{
		Outcome: MatchOutcomeAmbiguous,
		Element: best,
		Score:   score,
		Prompt:  fmt.Sprintf("¿Qué tipo de %s quieres homologar?", best.Name),
		Options: options,
	}
}

// SelectVariant scores text against the candidate variants of a base element
// only, with the same scoring rule. It never falls back to the full-catalog
// match and never guesses: below the threshold the pending question must stay
// open.
func SelectVariant(s entities.CatalogSnapshot, baseCode, text string) (entities.Element, bool) {
	base, ok := s.ElementByCode[baseCode]
	if !ok {
		return entities.Element{}, false
	}
	candidates := s.VariantsOf(base.ID)
	if len(candidates) == 0 {
		return entities.Element{}, false
	}
	winner, score, ok := bestScored(candidates, text)
	if !ok || score < minConfidenceScore {
		return entities.Element{}, false
	}
	return winner, true
}

func elementsOf(s entities.CatalogSnapshot) []entities.Element {
	out := make([]entities.Element, 0, len(s.Elements))
	for _, e := range s.Elements {
		out = append(out, e)
	}
	return out
}

func bestScored(candidates []entities.Element, text string) (entities.Element, float64, bool) {
	folded := Fold(text)
	if folded == "" || len(candidates) == 0 {
		return entities.Element{}, 0, false
	}
	textTokens := tokenSet(folded)

	var best entities.Element
	bestScore := -1.0
	for _, el := range candidates {
		score := scoreElement(el, folded, textTokens)
		if score > bestScore || (score == bestScore && el.Code < best.Code) {
			best = el
			bestScore = score
		}
	}
	return best, bestScore, bestScore >= 0
}

func scoreElement(el entities.Element, foldedText string, textTokens map[string]bool) float64 {
	score := 0.0
	if keywordHit(el.Keywords, foldedText) {
		score += keywordScore
	}

	nameTokens := Tokens(el.Name)
	if len(nameTokens) > 0 {
		hits := 0
		for _, tok := range nameTokens {
			if textTokens[tok] {
				hits++
			}
		}
		score += nameOverlapScore * float64(hits) / float64(len(nameTokens))
	}
	return score
}

func tokenSet(folded string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range Tokens(folded) {
		set[tok] = true
	}
	return set
}
