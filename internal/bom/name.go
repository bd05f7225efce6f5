package bom

import (
	"regexp"
	"strings"
)

// Bracket-code removal patterns, applied in order: leading code, dash-joined
// code, then any remaining embedded group.
var bracketPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*\[[^\]]*\]\s*`),
	regexp.MustCompile(`\s*-\s*\[[^\]]*\]`),
	regexp.MustCompile(`\[[^\]]*\]`),
}

var (
	leadingDash     = regexp.MustCompile(`^\s*-\s*`)
	innerWhitespace = regexp.MustCompile(`\s+`)
)

// CleanMaterialName strips bracket-enclosed supplier codes from a raw name
// and tidies the remaining whitespace. Pure and total. Bracket characters
// left behind by nested groups like "[[A1]]" are swept afterwards, so none
// survive into the clean name.
func CleanMaterialName(raw string) string {
	name := raw
	for _, p := range bracketPatterns {
		for {
			next := p.ReplaceAllString(name, " ")
			if next == name {
				break
			}
			name = next
		}
	}
	name = strings.Map(func(r rune) rune {
		if r == '[' || r == ']' {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	name = leadingDash.ReplaceAllString(name, "")
	name = innerWhitespace.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// packagingKeywords drives the material classification: containment on the
// lowercased clean name, any hit means packaging. Membership test only, so
// keyword order is irrelevant.
var packagingKeywords = []string{
	"bottle", "glass", "label", "cap", "box", "carton", "pouch", "can",
	"lid", "foil", "bag", "case", "pallet", "tray", "jar", "tub",
	"sleeve", "wrap", "shrink", "seal", "tape", "sticker",
}

// DetectItemType classifies a cleaned material name as packaging or
// ingredient.
func DetectItemType(name string) ItemType {
	lower := strings.ToLower(name)
	for _, kw := range packagingKeywords {
		if strings.Contains(lower, kw) {
			return ItemTypePackaging
		}
	}
	return ItemTypeIngredient
}

// junkNameFragments mark extraction artifacts that look like names but are
// headers, footers or page furniture.
var junkNameFragments = []string{"page ", "total", "component product"}

// plausibleName reports whether a cleaned name is worth keeping as a line
// item. Too-short names and known junk fragments are rejected; the caller
// skips the row rather than erroring the document.
func plausibleName(clean string) bool {
	if len(clean) < 3 {
		return false
	}
	lower := strings.ToLower(clean)
	for _, junk := range junkNameFragments {
		if strings.Contains(lower, junk) {
			return false
		}
	}
	return true
}
