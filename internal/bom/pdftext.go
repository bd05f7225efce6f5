package bom

import (
	"regexp"
	"strings"
)

// lineShape enumerates the row layouts seen in PDF-extracted tables. The set
// is closed: a new table layout becomes a new shape here, not a forked
// extractor.
type lineShape int

const (
	// Name, unit token and four-number run on one line.
	shapeNameUnitRun lineShape = iota
	// Bracket-coded name and run with no explicit unit; the extractor's
	// default unit applies.
	shapeCodedRun
	// The run occupies its own line; the name accumulates from the lines
	// that follow.
	shapeRunOnly
)

// runToken matches the numeric tail of a row. Letters never appear inside a
// run, so the character class can be this loose; splitNumberRun decides
// whether the capture is really four numbers.
const runToken = `(\d[\d.,\s]*\d|\d)`

// lineMatchers are the row classifiers, tried top to bottom; the first whose
// captured run survives disambiguation wins.
var lineMatchers = []struct {
	shape lineShape
	re    *regexp.Regexp
}{
	{shapeNameUnitRun, regexp.MustCompile(`^(\S.*?)\s+` + unitToken + `\s+` + runToken + `\s*$`)},
	{shapeCodedRun, regexp.MustCompile(`^(\[[^\]]+\]\s*\S.*?)\s*` + runToken + `\s*$`)},
	{shapeRunOnly, regexp.MustCompile(`^[\d.,\s]+$`)},
}

// pdfSkipFragments mark header, footer and address lines that PDF text
// extraction interleaves with table rows.
var pdfSkipFragments = []string{
	"component product", "unit cost", "bill of materials", "total value",
	"page ", "continued", "tel:", "fax:", "www.", "@", "vat no", "reg no",
	"registered office",
}

// pdfSkipExact are single-token header cells that land on their own lines.
var pdfSkipExact = map[string]bool{
	"units": true, "wastage": true, "total": true, "qty": true,
	"quantity": true, "description": true, "cost": true,
}

// PDFTextExtractor recovers line items from text extracted out of PDF
// tables, where adjacent cell values frequently arrive with no delimiter at
// all and names wrap across several lines.
type PDFTextExtractor struct {
	// DefaultUnit is applied to rows whose layout carries no unit token.
	// Empty leaves the unit unset.
	DefaultUnit string
}

var _ Extractor = (*PDFTextExtractor)(nil)

// NewPDFTextExtractor creates a PDF-text extractor.
func NewPDFTextExtractor(defaultUnit string) *PDFTextExtractor {
	return &PDFTextExtractor{DefaultUnit: defaultUnit}
}

// Extract runs the tabular line classifier, then the two fallback
// strategies if the classifier finds nothing. Partial extraction is the
// design goal: one recovered item makes the document a success even when
// other lines were unparseable.
func (e *PDFTextExtractor) Extract(text string) Result {
	res := Result{Metadata: ExtractMetadata(text)}
	lines := strings.Split(text, "\n")

	items := e.classifyLines(lines)
	if len(items) == 0 {
		blockItems := e.bracketBlockPass(text)
		lineItems := e.bracketLinePass(lines)
		// Keep whichever fallback recovered more of the document.
		items = blockItems
		if len(lineItems) > len(blockItems) {
			items = lineItems
		}
	}

	res.Items = Dedupe(items)
	res.Success = len(res.Items) > 0
	if !res.Success {
		res.Errors = append(res.Errors, "no line items could be extracted from pdf text")
	}
	return res
}

// pendingRun is an open numbers-only row waiting for its name lines.
type pendingRun struct {
	run       numberRun
	nameParts []string
}

// classifyLines is the primary strategy: classify each line against the
// ordered shape list, stitching multi-line names onto numbers-only rows.
func (e *PDFTextExtractor) classifyLines(lines []string) []LineItem {
	var (
		items   []LineItem
		pending *pendingRun
	)

	flush := func() {
		if pending != nil && len(pending.nameParts) > 0 {
			raw := strings.Join(pending.nameParts, " ")
			if item, ok := e.buildItem(raw, "", pending.run); ok {
				items = append(items, item)
			}
		}
		pending = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if isPDFSkipLine(trimmed) {
			flush()
			continue
		}

		matched := false
		for _, m := range lineMatchers {
			sub := m.re.FindStringSubmatch(trimmed)
			if sub == nil {
				continue
			}
			switch m.shape {
			case shapeNameUnitRun:
				run, ok := splitNumberRun(sub[3])
				if !ok {
					continue
				}
				flush()
				if item, ok := e.buildItem(sub[1], sub[2], run); ok {
					items = append(items, item)
				}
			case shapeCodedRun:
				run, ok := splitNumberRun(sub[2])
				if !ok {
					continue
				}
				flush()
				if item, ok := e.buildItem(sub[1], e.DefaultUnit, run); ok {
					items = append(items, item)
				}
			case shapeRunOnly:
				run, ok := splitNumberRun(trimmed)
				if !ok {
					continue
				}
				flush()
				pending = &pendingRun{run: run}
			}
			matched = true
			break
		}

		if !matched && pending != nil {
			pending.nameParts = append(pending.nameParts, trimmed)
		}
	}
	flush()
	return items
}

// buildItem normalizes a raw name and attaches the disambiguated numbers.
// The run's wastage value is deliberately not carried onto the item.
func (e *PDFTextExtractor) buildItem(raw, unit string, run numberRun) (LineItem, bool) {
	clean := CleanMaterialName(raw)
	if !plausibleName(clean) {
		return LineItem{}, false
	}
	item := LineItem{
		RawName:   raw,
		CleanName: clean,
		ItemType:  DetectItemType(clean),
		Quantity:  floatPtr(run.Quantity),
		UnitCost:  floatPtr(run.UnitCost),
		TotalCost: floatPtr(run.TotalCost),
	}
	if unit != "" {
		item.Unit = NormalizeUnit(&unit)
	}
	return item, true
}

// bracketBlock captures a supplier code and everything up to the next code.
var bracketBlock = regexp.MustCompile(`\[[^\]]+\][^\[]*`)

// trailingRun captures a numeric tail at the end of a block.
var trailingRun = regexp.MustCompile(`(\d[\d.,\s]*\d|\d)\s*$`)

// bracketBlockPass is the first fallback: treat each "[code] text..."
// stretch as one item, splitting any numeric tail off via the disambiguator.
func (e *PDFTextExtractor) bracketBlockPass(text string) []LineItem {
	var items []LineItem
	for _, block := range bracketBlock.FindAllString(text, -1) {
		block = strings.TrimSpace(strings.ReplaceAll(block, "\n", " "))
		raw := block
		var run numberRun
		var hasRun bool
		if m := trailingRun.FindStringSubmatchIndex(block); m != nil {
			if r, ok := splitNumberRun(block[m[2]:m[3]]); ok {
				run = r
				hasRun = true
				raw = strings.TrimSpace(block[:m[2]])
			}
		}
		clean := CleanMaterialName(raw)
		if !plausibleName(clean) {
			continue
		}
		item := LineItem{
			RawName:   raw,
			CleanName: clean,
			ItemType:  DetectItemType(clean),
		}
		if hasRun {
			item.Quantity = floatPtr(run.Quantity)
			item.UnitCost = floatPtr(run.UnitCost)
			item.TotalCost = floatPtr(run.TotalCost)
		}
		if e.DefaultUnit != "" {
			item.Unit = NormalizeUnit(&e.DefaultUnit)
		}
		items = append(items, item)
	}
	return items
}

// bracketLinePass is the second fallback: a stateful scan that opens an item
// on every bracket-led line and attaches a later numeric-only line to the
// item currently open.
func (e *PDFTextExtractor) bracketLinePass(lines []string) []LineItem {
	var items []LineItem
	var open *LineItem

	closeOpen := func() {
		if open != nil && plausibleName(open.CleanName) {
			items = append(items, *open)
		}
		open = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isPDFSkipLine(trimmed) {
			continue
		}

		if strings.HasPrefix(trimmed, "[") {
			closeOpen()
			clean := CleanMaterialName(trimmed)
			open = &LineItem{
				RawName:   trimmed,
				CleanName: clean,
				ItemType:  DetectItemType(clean),
			}
			if e.DefaultUnit != "" {
				open.Unit = NormalizeUnit(&e.DefaultUnit)
			}
			continue
		}

		if open != nil {
			if run, ok := splitNumberRun(trimmed); ok {
				open.Quantity = floatPtr(run.Quantity)
				open.UnitCost = floatPtr(run.UnitCost)
				open.TotalCost = floatPtr(run.TotalCost)
				closeOpen()
				continue
			}
			// Name continuation.
			open.RawName += " " + trimmed
			open.CleanName = CleanMaterialName(open.RawName)
			open.ItemType = DetectItemType(open.CleanName)
		}
	}
	closeOpen()
	return items
}

func isPDFSkipLine(line string) bool {
	lower := strings.ToLower(line)
	if pdfSkipExact[lower] {
		return true
	}
	for _, frag := range pdfSkipFragments {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}
