package csvexport

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bomflow/internal/bom"
)

func f(v float64) *float64 { return &v }

func s(v string) *string { return &v }

func TestWriter_WriteItems(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteItems([]bom.LineItem{
		{
			RawName:   "[ING001] Chamomile",
			CleanName: "Chamomile",
			ItemType:  bom.ItemTypeIngredient,
			Quantity:  f(2),
			Unit:      s("kg"),
			UnitCost:  f(1.5),
			TotalCost: f(3),
		},
		{
			RawName:   "Glass Bottle",
			CleanName: "Glass Bottle",
			ItemType:  bom.ItemTypePackaging,
		},
	}))
	w.Flush()
	require.NoError(t, w.Error())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, columns, records[0])
	assert.Equal(t, []string{"[ING001] Chamomile", "Chamomile", "ingredient", "2", "kg", "1.5", "3"}, records[1])
	// Missing numerics export as empty cells, not zeros.
	assert.Equal(t, []string{"Glass Bottle", "Glass Bottle", "packaging", "", "", "", ""}, records[2])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"spaces and punctuation", "Calm Night Tincture (v2)", "Calm_Night_Tincture_v2"},
		{"already clean", "batch-42_final", "batch-42_final"},
		{"collapses underscores", "a   b///c", "a_b_c"},
		{"trims leading and trailing", "  weird  ", "weird"},
		{"truncates long names", strings.Repeat("x", 150), strings.Repeat("x", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	got := BuildFilename("Calm Night Tincture")
	assert.True(t, strings.HasPrefix(got, "Calm_Night_Tincture_"))
	assert.True(t, strings.HasSuffix(got, ".csv"))
}
