package output

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/order-line-cleaner/internal/aggregate"
	"github.com/ginjaninja78/order-line-cleaner/internal/types"
)

// Sheet names of the report workbook.
const (
	SheetSummary   = "Summary"
	SheetMetrics   = "Daily Metrics"
	SheetDiscarded = "Discarded"
)

// Report is the content of the XLSX workbook.
type Report struct {
	Source    string
	Stats     types.Stats
	Metrics   aggregate.Table
	Header    []string
	Discarded []types.Record
}

// WriteReport writes the report workbook. Amounts are stored as numbers so
// they can be summed in a spreadsheet.
func (w *Writer) WriteReport(report Report) (string, error) {
	f, err := buildWorkbook(report)
	if err != nil {
		return "", err
	}
	defer f.Close()

	path, err := w.files.WriteFile(w.report.FileName, func(out io.Writer) error {
		return f.Write(out)
	})
	if err != nil {
		return "", err
	}

	w.logger.Info("Wrote report workbook",
		slog.String("path", path),
		slog.Int("days", len(report.Metrics)),
		slog.Int("discarded", len(report.Discarded)))

	return path, nil
}

func buildWorkbook(report Report) (*excelize.File, error) {
	f := excelize.NewFile()

	// NewFile starts with Sheet1; reuse it for the summary.
	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name summary sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	summary := [][]interface{}{
		{"metric", "value"},
		{"source", report.Source},
		{"total_rows", report.Stats.TotalRows},
		{"total_empty_rows_removed", report.Stats.TotalEmptyRowsRemoved},
		{"total_invalid_rows_removed", report.Stats.TotalInvalidRowsRemoved},
		{"total_duplicate_rows_removed", report.Stats.TotalDuplicateRowsRemoved},
		{"total_usable_rows", report.Stats.TotalUsableRows},
	}

	metrics := [][]interface{}{
		{ColumnDate, ColumnTotalPromoDiscount, ColumnTotalItemPrice, "lines"},
	}
	for _, day := range report.Metrics {
		metrics = append(metrics, []interface{}{
			day.Date.Format(DateLayout),
			day.TotalPromoDiscount.InexactFloat64(),
			day.TotalItemPrice.InexactFloat64(),
			day.Lines,
		})
	}

	header := make([]interface{}, len(report.Header))
	for i, h := range report.Header {
		header[i] = h
	}
	discarded := [][]interface{}{header}
	for _, rec := range report.Discarded {
		values := rec.Values(report.Header)
		row := make([]interface{}, len(values))
		for i, v := range values {
			row[i] = v
		}
		discarded = append(discarded, row)
	}

	sheets := []struct {
		name string
		rows [][]interface{}
	}{
		{SheetSummary, summary},
		{SheetMetrics, metrics},
		{SheetDiscarded, discarded},
	}

	for _, sheet := range sheets {
		if sheet.name != SheetSummary {
			if _, err := f.NewSheet(sheet.name); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to create sheet %s: %w", sheet.name, err)
			}
		}
		if err := fillSheet(f, sheet.name, sheet.rows, bold); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

// fillSheet writes rows from A1 down and bolds the first row.
func fillSheet(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}

	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, headerStyle)
}
