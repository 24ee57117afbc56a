// Package catalog implements the pure engines that run against a
// CatalogSnapshot: tier resolution, tariff selection and free-text
// element/variant matching. Everything here is side-effect free; callers own
// loading, caching and persistence.
package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s and strips diacritics so that "Diámetro" and "diametro"
// compare equal. Matching and key lookups always go through Fold.
func Fold(s string) string {
	lowered := strings.ToLower(strings.TrimSpace(s))
	// Transformer chains carry internal buffers, so build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, lowered)
	if err != nil {
		return lowered
	}
	return folded
}

// Tokens splits folded text into letter/digit runs.
func Tokens(s string) []string {
	return strings.FieldsFunc(Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// NormalizeKey folds a field key and joins its tokens with underscores, so
// "Diámetro Exterior" resolves the defined key "diametro_exterior".
func NormalizeKey(s string) string {
	return strings.Join(Tokens(s), "_")
}
