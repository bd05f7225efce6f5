package bom

import "strings"

// CSVExtractor parses delimiter-separated BOM spreadsheets. The zero
// delimiter means comma.
type CSVExtractor struct {
	delimiter rune
}

var _ Extractor = (*CSVExtractor)(nil)

// NewCSVExtractor creates a CSV extractor for the given one-character
// delimiter.
func NewCSVExtractor(delimiter rune) *CSVExtractor {
	if delimiter == 0 {
		delimiter = ','
	}
	return &CSVExtractor{delimiter: delimiter}
}

// SplitDelimited splits a single record line on delim, honoring quoted cells
// and doubled-quote escapes ("" inside a quoted cell yields a literal ").
func SplitDelimited(line string, delim rune) []string {
	var (
		cells    []string
		cur      strings.Builder
		inQuotes bool
	)
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				cur.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case r == delim && !inQuotes:
			cells = append(cells, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	cells = append(cells, cur.String())
	return cells
}

// Extract tokenizes the document and hands the cells to ExtractRows.
func (e *CSVExtractor) Extract(text string) Result {
	var lines []string
	for _, line := range strings.Split(strings.TrimPrefix(text, "\ufeff"), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return structuralFailure("csv document has insufficient rows: need a header row and at least one data row")
	}

	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, SplitDelimited(line, e.delimiter))
	}
	return e.ExtractRows(rows)
}

// ExtractRows runs header mapping and row extraction over pre-split cells.
// The first row is the header. Shared by the CSV path and the XLSX bridge.
func (e *CSVExtractor) ExtractRows(rows [][]string) Result {
	if len(rows) < 2 {
		return structuralFailure("csv document has insufficient rows: need a header row and at least one data row")
	}

	cols, ok := mapColumns(rows[0])
	if !ok {
		return structuralFailure("no identifiable name column in header row")
	}

	var items []LineItem
	for _, cells := range rows[1:] {
		name := strings.TrimSpace(cellAt(cells, cols.name))
		if len(name) < 2 {
			continue
		}
		clean := CleanMaterialName(name)
		item := LineItem{
			RawName:   name,
			CleanName: clean,
			ItemType:  DetectItemType(clean),
		}
		if cols.quantity >= 0 {
			item.Quantity = ParseQuantity(cellAt(cells, cols.quantity))
		}
		if cols.unit >= 0 {
			if u := strings.TrimSpace(cellAt(cells, cols.unit)); u != "" {
				item.Unit = NormalizeUnit(&u)
			}
		}
		if cols.unitCost >= 0 {
			item.UnitCost = ParseQuantity(cellAt(cells, cols.unitCost))
		}
		if cols.totalCost >= 0 {
			item.TotalCost = ParseQuantity(cellAt(cells, cols.totalCost))
		}
		items = append(items, item)
	}

	deduped := Dedupe(items)
	if len(deduped) == 0 {
		return structuralFailure("no valid data rows in csv document")
	}
	return Result{Success: true, Items: deduped, Errors: []string{}}
}

// columnMap holds resolved column indexes; -1 means not present.
type columnMap struct {
	name      int
	quantity  int
	unit      int
	unitCost  int
	totalCost int
}

// Ordered keyword lists for header mapping. Scanned keyword-first so that
// e.g. a "name" header beats a "product" header for the name column.
var (
	nameKeywords     = []string{"name", "description", "component", "product", "material", "item"}
	quantityKeywords = []string{"quantity", "qty", "amount", "vol", "weight"}
	unitCostKeywords = []string{"unit cost", "unit_cost", "unitcost", "price"}
	totalKeywords    = []string{"total cost", "total_cost", "totalcost", "total", "cost"}
)

// mapColumns resolves field columns from a lowercased header row. A name
// column falls back to column 0 when no keyword matches; the only
// unrecoverable case is a header row with no usable cells at all.
func mapColumns(headers []string) (columnMap, bool) {
	lowered := make([]string, len(headers))
	usable := false
	for i, h := range headers {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
		if lowered[i] != "" {
			usable = true
		}
	}
	if !usable {
		return columnMap{}, false
	}

	cols := columnMap{
		name:      findByKeywords(lowered, nameKeywords, nil),
		quantity:  findByKeywords(lowered, quantityKeywords, nil),
		unit:      findUnitColumn(lowered),
		unitCost:  findByKeywords(lowered, unitCostKeywords, nil),
		totalCost: findByKeywords(lowered, totalKeywords, isUnitCostHeader),
	}
	if cols.name < 0 {
		cols.name = 0
	}
	return cols, true
}

// findByKeywords returns the first header containing any keyword, scanning
// keywords in priority order. Headers rejected by exclude never match.
func findByKeywords(headers, keywords []string, exclude func(string) bool) int {
	for _, kw := range keywords {
		for i, h := range headers {
			if exclude != nil && exclude(h) {
				continue
			}
			if strings.Contains(h, kw) {
				return i
			}
		}
	}
	return -1
}

func isUnitCostHeader(h string) bool {
	for _, kw := range unitCostKeywords {
		if strings.Contains(h, kw) {
			return true
		}
	}
	return false
}

// findUnitColumn matches unit headers exactly or by prefix, but never a
// header that is really a cost column.
func findUnitColumn(headers []string) int {
	for i, h := range headers {
		if h == "unit" || h == "units" || h == "uom" {
			return i
		}
	}
	for i, h := range headers {
		if (strings.HasPrefix(h, "unit") || strings.HasPrefix(h, "uom")) &&
			!strings.Contains(h, "cost") && !strings.Contains(h, "price") {
			return i
		}
	}
	return -1
}

func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}
