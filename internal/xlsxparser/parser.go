// =============================================================================
// Order Line Cleaner - XLSX Parser
// =============================================================================
//
// This module reads an order line export saved as an Excel workbook. The sheet
// layout mirrors the CSV export:
//
//   | Row 1 | order_id | purchased_at | purchased_date | ... | ship_service_level |
//   | Row 2 | <data>   | <data>       | <data>         | ... | <data>             |
//
// Cells are read as their displayed text, so numbers keep the precision shown
// in the workbook. Empty cells are null. A sheet row with no cells at all
// between data rows becomes an all-null record, matching a CSV row made only
// of delimiters.
//
// =============================================================================

package xlsxparser

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/order-line-cleaner/internal/types"
)

// Parse reads the order lines from an XLSX file.
//
// PARAMETERS:
//   - filePath: The path to the workbook.
//   - sheet: The worksheet to read. Empty selects the first sheet.
//
// RETURNS:
//   - The dataset, one record per sheet row after the header.
//   - A *types.SchemaError if required columns are missing, or another error
//     if the workbook cannot be opened or read.
func Parse(filePath, sheet string) (*types.Dataset, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	ds, err := ParseFile(f, sheet)
	if err != nil {
		return nil, err
	}
	ds.Source = filePath

	if err := types.CheckHeader(filePath, ds.Header); err != nil {
		return nil, err
	}

	return ds, nil
}

// ParseFile reads the order lines from an open workbook. The header is not
// checked against the order line schema.
func ParseFile(f *excelize.File, sheet string) (*types.Dataset, error) {
	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("workbook has no sheets")
		}
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found", sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	headers, err := types.NormalizeHeader(rows[0])
	if err != nil {
		return nil, err
	}

	ds := &types.Dataset{Header: headers}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) > len(headers) && !trailingBlank(row[len(headers):]) {
			return nil, fmt.Errorf("row %d: expected at most %d cells, saw %d", i+1, len(headers), len(row))
		}

		rec := make(types.Record, len(row))
		for col := 0; col < len(row) && col < len(headers); col++ {
			if row[col] == "" {
				continue
			}
			rec[headers[col]] = row[col]
		}

		ds.Records = append(ds.Records, rec)
		ds.RowNumbers = append(ds.RowNumbers, i+1)
	}

	return ds, nil
}

// trailingBlank reports whether every cell is empty. Formatting can leave
// empty cells beyond the header width.
func trailingBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
