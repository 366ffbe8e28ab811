// Package normalize canonicalizes user-entered names for storage and lookup.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var (
	wordSeparatorRe = regexp.MustCompile(`[\s_/]+`)
	nonSlugRe       = regexp.MustCompile(`[^a-z0-9-]`)
	multipleDashRe  = regexp.MustCompile(`-+`)
	hexColorRe      = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	whitespaceRunRe = regexp.MustCompile(`\s+`)
)

// Slug converts a display name to a URL-safe slug.
//
//	"Breakfast"        -> "breakfast"
//	"Crème Brûlée"     -> "creme-brulee"
//	"Quick_and/Easy"   -> "quick-and-easy"
//
// Characters with no ASCII decomposition are dropped, so a purely non-Latin
// name yields "" and the caller must supply the slug explicitly.
func Slug(s string) string {
	s = norm.NFKD.String(s)
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(strings.TrimSpace(s))
	s = wordSeparatorRe.ReplaceAllString(s, "-")
	s = nonSlugRe.ReplaceAllString(s, "")
	s = multipleDashRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Name trims a display name and collapses internal whitespace runs.
func Name(s string) string {
	return whitespaceRunRe.ReplaceAllString(strings.TrimSpace(norm.NFC.String(s)), " ")
}

// SearchKey returns the case-folded form of s used for case-insensitive
// prefix matching. SQLite's LOWER only folds ASCII, so Cyrillic ingredient
// names are folded here before they reach the database.
func SearchKey(s string) string {
	// Casers are stateful; one per call.
	return cases.Fold().String(Name(s))
}

// Color upper-cases a #RRGGBB color. Returns "" when s is not a hex color.
func Color(s string) string {
	s = strings.TrimSpace(s)
	if !hexColorRe.MatchString(s) {
		return ""
	}
	return strings.ToUpper(s)
}
