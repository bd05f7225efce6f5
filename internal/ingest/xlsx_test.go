package ingest

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestExtractWorkbook(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"Name", "Qty", "Unit", "Unit Cost", "Total Cost"},
		{"Chamomile", 2, "kg", 1.5, 3.0},
		{"Glass Bottle", 10, "unit", 0.5, 5.0},
	})

	res, err := ExtractWorkbook(buf)

	require.NoError(t, err)
	require.True(t, res.Success)
	require.Len(t, res.Items, 2)

	assert.Equal(t, "Chamomile", res.Items[0].CleanName)
	require.NotNil(t, res.Items[0].Quantity)
	assert.InDelta(t, 2.0, *res.Items[0].Quantity, 1e-9)
	require.NotNil(t, res.Items[0].Unit)
	assert.Equal(t, "kg", *res.Items[0].Unit)

	assert.Equal(t, "Glass Bottle", res.Items[1].CleanName)
	require.NotNil(t, res.Items[1].TotalCost)
	assert.InDelta(t, 5.0, *res.Items[1].TotalCost, 1e-9)
}

func TestExtractWorkbook_HeaderOnly(t *testing.T) {
	buf := buildWorkbook(t, [][]interface{}{
		{"Name", "Qty", "Unit"},
	})

	res, err := ExtractWorkbook(buf)

	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Empty(t, res.Items)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "insufficient rows")
}

func TestExtractWorkbook_CorruptFile(t *testing.T) {
	_, err := ExtractWorkbook(bytes.NewReader([]byte("not a zip archive")))
	assert.Error(t, err)
}
