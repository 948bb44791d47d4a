// =============================================================================
// Order Line Cleaner - Output Writer Module
// =============================================================================
//
// This module writes the artifacts of a cleaning run into the output
// directory:
//
//   discarded_rows.csv      header + empty rows, then duplicate rows
//   processing_stats.json   run counters, 4-space indented
//   monthly_metrics.csv     one row per purchase date, ascending
//   usable_rows.csv         (optional) rows that passed every field rule
//   cleaning_report.xlsx    (optional) Summary / Daily Metrics / Discarded
//
// Every artifact goes through utils.FileManager, so each one is either fully
// written or left untouched.
//
// CUSTOMIZATION:
//   - Artifact names come from config.ArtifactSettings
//   - The metrics date column is controlled by config.MetricsSettings
//
// =============================================================================

package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/order-line-cleaner/internal/aggregate"
	"github.com/ginjaninja78/order-line-cleaner/internal/config"
	"github.com/ginjaninja78/order-line-cleaner/internal/types"
	"github.com/ginjaninja78/order-line-cleaner/pkg/utils"
)

// Column names of the metrics artifact.
const (
	ColumnDate               = "purchased_date"
	ColumnTotalPromoDiscount = "total_item_promo_discount"
	ColumnTotalItemPrice     = "total_item_price"
)

// DateLayout is the layout of dates written to artifacts.
const DateLayout = "2006-01-02"

// =============================================================================
// WRITER
// =============================================================================

// Writer writes run artifacts into one output directory.
type Writer struct {
	files     *utils.FileManager
	artifacts config.ArtifactSettings
	metrics   config.MetricsSettings
	report    config.ReportSettings
	logger    *slog.Logger
}

// NewWriter creates a Writer for the directory and file names in cfg.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		files:     utils.NewFileManager(cfg.OutputDir),
		artifacts: cfg.Artifacts,
		metrics:   cfg.Metrics,
		report:    cfg.Report,
		logger:    logger,
	}
}

// WriteDiscarded writes the discarded rows with the source header.
//
// PARAMETERS:
//   - header: The source columns, in source order.
//   - rows: Empty rows followed by duplicate rows.
//
// RETURNS:
//   - The path of the artifact.
//   - An error if the file cannot be written.
func (w *Writer) WriteDiscarded(header []string, rows []types.Record) (string, error) {
	return w.writeRecords(w.artifacts.Discarded, header, rows)
}

// WriteUsable writes the rows that passed every field rule.
func (w *Writer) WriteUsable(header []string, rows []types.Record) (string, error) {
	return w.writeRecords(w.artifacts.Usable, header, rows)
}

func (w *Writer) writeRecords(name string, header []string, rows []types.Record) (string, error) {
	records := make([][]string, len(rows))
	for i, rec := range rows {
		records[i] = rec.Values(header)
	}
	return w.writeCSV(name, header, records)
}

// WriteStats writes the run counters as indented JSON.
func (w *Writer) WriteStats(stats types.Stats) (string, error) {
	data, err := json.MarshalIndent(stats, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to encode stats: %w", err)
	}

	path, err := w.files.WriteFile(w.artifacts.Stats, func(out io.Writer) error {
		_, err := out.Write(data)
		return err
	})
	if err != nil {
		return "", err
	}

	w.logger.Info("Wrote stats file", slog.String("path", path))
	return path, nil
}

// WriteMetrics writes one row per date with the promotion and net price
// totals. Amounts are written with two decimals.
func (w *Writer) WriteMetrics(table aggregate.Table) (string, error) {
	header := []string{ColumnTotalPromoDiscount, ColumnTotalItemPrice}
	if w.metrics.IncludeDate {
		header = append([]string{ColumnDate}, header...)
	}

	records := make([][]string, len(table))
	for i, day := range table {
		row := []string{FormatAmount(day.TotalPromoDiscount), FormatAmount(day.TotalItemPrice)}
		if w.metrics.IncludeDate {
			row = append([]string{day.Date.Format(DateLayout)}, row...)
		}
		records[i] = row
	}

	return w.writeCSV(w.artifacts.Metrics, header, records)
}

// writeCSV writes header and records to the artifact name.
func (w *Writer) writeCSV(name string, header []string, records [][]string) (string, error) {
	path, err := w.files.WriteFile(name, func(out io.Writer) error {
		writer := csv.NewWriter(out)

		if err := writer.Write(header); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
		for i, record := range records {
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write record %d: %w", i, err)
			}
		}

		writer.Flush()
		return writer.Error()
	})
	if err != nil {
		return "", err
	}

	w.logger.Info("Wrote CSV file",
		slog.String("path", path),
		slog.Int("record_count", len(records)))

	return path, nil
}

// FormatAmount renders a money total with two decimals, rounding half away
// from zero.
func FormatAmount(v decimal.Decimal) string {
	return v.StringFixed(2)
}
