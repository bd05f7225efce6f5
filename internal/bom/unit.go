package bom

import "strings"

// unitSynonyms canonicalizes the unit spellings seen across supplier
// exports. Constructed once at init and read-only thereafter.
var unitSynonyms = map[string]string{
	"kg":    "kg",
	"KG":    "kg",
	"l":     "L",
	"L":     "L",
	"ml":    "ml",
	"ML":    "ml",
	"mL":    "ml",
	"ea":    "unit",
	"EA":    "unit",
	"each":  "unit",
	"unit":  "unit",
	"units": "unit",
	"pc":    "unit",
	"pcs":   "unit",
	"m":     "m",
	"M":     "m",
}

// NormalizeUnit canonicalizes a unit token. Nil and blank input stay nil;
// unknown tokens pass through lowercased. Idempotent by construction: every
// canonical form maps to itself.
func NormalizeUnit(token *string) *string {
	if token == nil {
		return nil
	}
	t := strings.TrimSpace(*token)
	if t == "" {
		return nil
	}
	if canonical, ok := unitSynonyms[t]; ok {
		return strPtr(canonical)
	}
	lower := strings.ToLower(t)
	if canonical, ok := unitSynonyms[lower]; ok {
		return strPtr(canonical)
	}
	return strPtr(lower)
}
