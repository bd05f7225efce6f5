package bom

import (
	"regexp"
	"strings"
)

// Labeled document-level fields scattered through export headers. Each value
// runs up to the next label on the same line, or end of line.
var (
	reProductCode = regexp.MustCompile(`(?i)Product Code:\s*(.*?)\s*(?:Product Description:|Total Value:|Created Date:|$)`)
	reProductDesc = regexp.MustCompile(`(?i)Product Description:\s*(.*?)\s*(?:Product Code:|Total Value:|Created Date:|$)`)
	reTotalValue  = regexp.MustCompile(`(?i)Total Value:\s*([\d,]+(?:\.\d+)?)`)
	reCreatedDate = regexp.MustCompile(`(?i)Created Date:\s*(.*?)\s*(?:Product Code:|Product Description:|Total Value:|$)`)
)

// ExtractMetadata scans raw document text for product-level header fields.
// Every field is optional; the first hit per field wins and absence is not
// an error.
func ExtractMetadata(text string) Metadata {
	var md Metadata
	for _, line := range strings.Split(text, "\n") {
		if md.ProductCode == "" {
			if m := reProductCode.FindStringSubmatch(line); m != nil && m[1] != "" {
				md.ProductCode = m[1]
			}
		}
		if md.ProductDescription == "" {
			if m := reProductDesc.FindStringSubmatch(line); m != nil && m[1] != "" {
				md.ProductDescription = m[1]
			}
		}
		if md.TotalValue == nil {
			if m := reTotalValue.FindStringSubmatch(line); m != nil {
				md.TotalValue = ParseQuantity(m[1])
			}
		}
		if md.CreatedDate == "" {
			if m := reCreatedDate.FindStringSubmatch(line); m != nil && m[1] != "" {
				md.CreatedDate = m[1]
			}
		}
	}
	return md
}
