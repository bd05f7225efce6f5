package bom

import (
	"regexp"
	"strings"
)

// numToken matches one numeric field, tolerating thousands separators.
const numToken = `(\d[\d,]*(?:\.\d+)?)`

// unitToken matches the unit vocabulary seen in labeled exports. Restricting
// the alternation to known spellings keeps the unit group from swallowing
// the tail of a multi-word name.
const unitToken = `((?i:litre|units|each|pcs|ltr|unit|kg|mg|ml|ea|pc|l|g|m))`

// Line shapes for labeled free-text exports, tried in order, first match
// wins. Numeric fields run quantity, wastage, unit cost, total cost.
var (
	// Bracket-coded name, optional unit token, four numeric fields.
	reCodedItemLine = regexp.MustCompile(
		`^(\[[^\]]+\]\s*\S.*?)\s+(?:` + unitToken + `\s+)?` +
			numToken + `\s+` + numToken + `\s+` + numToken + `\s+` + numToken + `\s*$`)
	// Plain name, optional unit token, four numeric fields.
	rePlainItemLine = regexp.MustCompile(
		`^(\S.*?)\s+(?:` + unitToken + `\s+)?` +
			numToken + `\s+` + numToken + `\s+` + numToken + `\s+` + numToken + `\s*$`)
)

// freeTextSkipTokens mark header and footer lines in labeled exports.
var freeTextSkipTokens = []string{"component product", "unit cost", "wastage", "units"}

// FreeTextExtractor parses labeled BOM exports line by line.
type FreeTextExtractor struct{}

var _ Extractor = (*FreeTextExtractor)(nil)

// NewFreeTextExtractor creates a free-text extractor.
func NewFreeTextExtractor() *FreeTextExtractor { return &FreeTextExtractor{} }

// Extract scans every line for metadata labels and item shapes. Lines that
// match nothing are dropped silently; the document only fails when zero
// items are recovered.
func (e *FreeTextExtractor) Extract(text string) Result {
	res := Result{Metadata: ExtractMetadata(text)}

	var items []LineItem
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isFreeTextHeaderLine(line) {
			continue
		}

		m := reCodedItemLine.FindStringSubmatch(line)
		if m == nil {
			m = rePlainItemLine.FindStringSubmatch(line)
		}
		if m == nil {
			continue
		}

		raw := m[1]
		clean := CleanMaterialName(raw)
		if !plausibleName(clean) {
			continue
		}

		item := LineItem{
			RawName:   raw,
			CleanName: clean,
			ItemType:  DetectItemType(clean),
			Quantity:  ParseQuantity(m[3]),
			// m[4] is wastage: parsed for the field count, not retained.
			UnitCost:  ParseQuantity(m[5]),
			TotalCost: ParseQuantity(m[6]),
		}
		if m[2] != "" {
			item.Unit = NormalizeUnit(strPtr(m[2]))
		}
		items = append(items, item)
	}

	res.Items = Dedupe(items)
	res.Success = len(res.Items) > 0
	if !res.Success {
		res.Errors = append(res.Errors, "no line items found in free-text document")
	}
	return res
}

func isFreeTextHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	for _, tok := range freeTextSkipTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}
