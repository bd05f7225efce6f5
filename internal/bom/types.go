package bom

// ItemType is the binary material classification of a BOM line.
type ItemType string

const (
	ItemTypeIngredient ItemType = "ingredient"
	ItemTypePackaging  ItemType = "packaging"
)

// LineItem is one normalized BOM row produced by an extractor. Numeric
// fields are pointers: a cell that failed to parse is nil, not zero, so the
// review layer can flag it for manual correction.
type LineItem struct {
	RawName   string   `json:"raw_name"`
	CleanName string   `json:"clean_name"`
	Quantity  *float64 `json:"quantity"`
	Unit      *string  `json:"unit"`
	ItemType  ItemType `json:"item_type"`
	UnitCost  *float64 `json:"unit_cost"`
	TotalCost *float64 `json:"total_cost"`
}

// Metadata holds document-level fields recovered from the raw text. All
// fields are optional.
type Metadata struct {
	ProductCode        string   `json:"product_code,omitempty"`
	ProductDescription string   `json:"product_description,omitempty"`
	TotalValue         *float64 `json:"total_value,omitempty"`
	CreatedDate        string   `json:"created_date,omitempty"`
}

// Result is the outcome of one extraction call. Success mirrors whether any
// items survived; structural failures report success=false with an error
// string and an empty item list. A Result is never mutated after it is
// returned.
type Result struct {
	Success  bool       `json:"success"`
	Items    []LineItem `json:"items"`
	Errors   []string   `json:"errors"`
	Metadata Metadata   `json:"metadata"`
}

// structuralFailure builds the Result for an input that could not be
// processed at all (too short, unmappable header, zero items).
func structuralFailure(msgs ...string) Result {
	return Result{Success: false, Items: []LineItem{}, Errors: msgs}
}

func floatPtr(v float64) *float64 { return &v }

func strPtr(s string) *string { return &s }
