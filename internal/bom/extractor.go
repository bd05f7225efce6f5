package bom

import (
	"strings"

	"bomflow/internal/domain"
)

// Extractor converts one raw document into a Result. Implementations are
// pure transforms over in-memory text: no I/O, safe for concurrent use.
type Extractor interface {
	Extract(text string) Result
}

// Options carries caller context for a single extraction.
type Options struct {
	Format      domain.SourceFormat
	Delimiter   rune
	DefaultUnit string
}

// ExtractDocument dispatches raw text to the extractor for the stated
// format, auto-detecting when the caller did not state one. It never
// returns an error: every outcome, including catastrophic input, is a
// Result.
func ExtractDocument(text string, opts Options) Result {
	delim := opts.Delimiter
	if delim == 0 {
		delim = ','
	}

	format := opts.Format
	if format == "" || format == domain.SourceFormatAuto {
		format = DetectFormat(text, delim)
	}

	switch format {
	case domain.SourceFormatCSV:
		return NewCSVExtractor(delim).Extract(text)
	case domain.SourceFormatFreeText:
		return NewFreeTextExtractor().Extract(text)
	default:
		return NewPDFTextExtractor(opts.DefaultUnit).Extract(text)
	}
}

// DetectFormat guesses the document layout. Labeled exports carry their
// field labels; spreadsheets carry the delimiter on nearly every line;
// everything else is treated as PDF-recovered text.
func DetectFormat(text string, delim rune) domain.SourceFormat {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "product code:") || strings.Contains(lower, "product description:") {
		return domain.SourceFormatFreeText
	}

	var total, delimited int
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		total++
		if strings.ContainsRune(line, delim) {
			delimited++
		}
	}
	if total >= 2 && delimited*2 > total {
		return domain.SourceFormatCSV
	}
	return domain.SourceFormatPDFText
}
