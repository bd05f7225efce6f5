package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"bomflow/internal/bom"
)

// ReadWorkbook returns the cell grid of the first sheet in an XLSX workbook.
func ReadWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// ExtractWorkbook runs the first sheet of an XLSX workbook through the
// spreadsheet extractor. Workbook-level failures (corrupt file, no sheets)
// surface as errors; extraction outcomes, including structural failures,
// are carried on the Result.
func ExtractWorkbook(r io.Reader) (bom.Result, error) {
	rows, err := ReadWorkbook(r)
	if err != nil {
		return bom.Result{}, err
	}
	return bom.NewCSVExtractor(0).ExtractRows(rows), nil
}
