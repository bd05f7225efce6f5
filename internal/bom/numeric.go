package bom

import (
	"regexp"
	"strconv"
	"strings"
)

// quantityCleaner drops thousands separators and stray spaces before the
// float parse.
var quantityCleaner = strings.NewReplacer(",", "", " ", "")

// ParseQuantity converts a raw cell value to a float. Blank input and
// non-numeric garbage come back as nil rather than an error, so one bad cell
// never invalidates its row.
func ParseQuantity(value string) *float64 {
	cleaned := quantityCleaner.Replace(strings.TrimSpace(value))
	if cleaned == "" {
		return nil
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &f
}

// numberRun holds the four cost columns recovered from a tabular row, in the
// left-to-right order they are printed: total cost, unit cost, wastage,
// quantity. Wastage is resolved so the split stays honest but the output
// schema carries no field for it.
type numberRun struct {
	TotalCost float64
	UnitCost  float64
	Wastage   float64
	Quantity  float64
}

var decimalToken = regexp.MustCompile(`\d+\.\d+`)

// runDecimalWidths is how many decimal places each cost column prints with
// in the source tables: total cost uses 2, the remaining three use 4. The
// concatenated-run walk slices on these widths.
var runDecimalWidths = [4]int{2, 4, 4, 4}

// splitNumberRun resolves a digit run captured from a table row into the
// four cost columns. PDF text extraction frequently collapses the whitespace
// between adjacent cells, so the run may arrive as one unbroken string of
// digits and decimal points, e.g. "0.0675.33560.00000.0008" for the numbers
// 0.06, 75.3356, 0.0000 and 0.0008.
//
// This is a heuristic, not a guaranteed-correct parser: runs whose adjacent
// integer parts abut with ambiguous digit boundaries can split wrong. It
// therefore returns ok=false whenever it cannot produce exactly four
// numbers; callers must treat that as "not a numeric data line", never as a
// partial result.
func splitNumberRun(run string) (numberRun, bool) {
	run = strings.TrimSpace(run)
	if run == "" {
		return numberRun{}, false
	}

	// Strategy 1: distinct decimal tokens. When the run kept (some of) its
	// separators the regex finds each number individually; the cost columns
	// are the last four.
	if matches := decimalToken.FindAllString(run, -1); len(matches) >= 4 {
		last := matches[len(matches)-4:]
		var vals [4]float64
		for i, m := range last {
			f, err := strconv.ParseFloat(m, 64)
			if err != nil {
				return numberRun{}, false
			}
			vals[i] = f
		}
		return numberRun{TotalCost: vals[0], UnitCost: vals[1], Wastage: vals[2], Quantity: vals[3]}, true
	}

	return splitConcatenatedRun(run)
}

// splitConcatenatedRun walks a fully collapsed run. It repeatedly finds the
// leading number's decimal point and slices the number off after its printed
// decimal width, leaving the remainder to start the next number's integer
// part.
func splitConcatenatedRun(run string) (numberRun, bool) {
	compact := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, run)

	for _, r := range compact {
		if r != '.' && (r < '0' || r > '9') {
			return numberRun{}, false
		}
	}

	var vals [4]float64
	rest := compact
	for i, width := range runDecimalWidths {
		dot := strings.IndexByte(rest, '.')
		if dot <= 0 {
			return numberRun{}, false
		}
		end := dot + 1 + width
		if end > len(rest) {
			return numberRun{}, false
		}
		f, err := strconv.ParseFloat(rest[:end], 64)
		if err != nil {
			return numberRun{}, false
		}
		vals[i] = f
		rest = rest[end:]
	}
	if rest != "" {
		return numberRun{}, false
	}
	return numberRun{TotalCost: vals[0], UnitCost: vals[1], Wastage: vals[2], Quantity: vals[3]}, true
}
