package bom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bomflow/internal/domain"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.SourceFormat
	}{
		{
			name: "labeled export is free text",
			text: "Product Code: FIN0042 Product Description: Calm Night Tincture\n[ING001] Chamomile KG 2 0 1.50 3.00",
			want: domain.SourceFormatFreeText,
		},
		{
			name: "mostly delimited lines are csv",
			text: "Name,Qty,Unit\nChamomile,2,kg\nBeet Sugar,1,kg",
			want: domain.SourceFormatCSV,
		},
		{
			name: "single line is never csv",
			text: "Chamomile,2,kg",
			want: domain.SourceFormatPDFText,
		},
		{
			name: "prose with stray commas is pdf text",
			text: "Bill of Materials\n[ING001] Chamomile\n0.120.50000.00000.2400\nregistered office, 1 High St",
			want: domain.SourceFormatPDFText,
		},
		{
			name: "empty document is pdf text",
			text: "",
			want: domain.SourceFormatPDFText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.text, ','))
		})
	}
}

func TestExtractDocument_ExplicitFormat(t *testing.T) {
	// Commas everywhere, but the caller said pdf text; the dispatcher must
	// not second-guess an explicit format.
	text := "Name,Qty,Unit\nChamomile,2,kg"

	res := ExtractDocument(text, Options{Format: domain.SourceFormatPDFText})

	assert.False(t, res.Success)
	assert.Empty(t, res.Items)
}

func TestExtractDocument_AutoDetectsCSV(t *testing.T) {
	text := "Name,Qty,Unit,Unit Cost,Total Cost\nGlass Bottle,1,unit,0.50,0.50"

	res := ExtractDocument(text, Options{Format: domain.SourceFormatAuto})

	require.True(t, res.Success)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Glass Bottle", res.Items[0].CleanName)
	assert.Equal(t, ItemTypePackaging, res.Items[0].ItemType)
}

func TestExtractDocument_AutoDetectsFreeText(t *testing.T) {
	text := "Product Code: FIN0042 Product Description: Calm Night Tincture Total Value: 12.50\n" +
		"[BABS GVAL003] N04 Valerian Extract KG 0.0008 0.0000 75.3356 0.06"

	res := ExtractDocument(text, Options{})

	require.True(t, res.Success)
	assert.Equal(t, "FIN0042", res.Metadata.ProductCode)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "N04 Valerian Extract", res.Items[0].CleanName)
}

func TestExtractDocument_DefaultUnitReachesPDFExtractor(t *testing.T) {
	text := "[PKG010] Tamper Seal 0.451.50000.00000.3000"

	res := ExtractDocument(text, Options{Format: domain.SourceFormatPDFText, DefaultUnit: "EA"})

	require.True(t, res.Success)
	require.Len(t, res.Items, 1)
	require.NotNil(t, res.Items[0].Unit)
	assert.Equal(t, "unit", *res.Items[0].Unit)
}
