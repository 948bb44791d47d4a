package output

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/order-line-cleaner/internal/aggregate"
	"github.com/ginjaninja78/order-line-cleaner/internal/config"
	"github.com/ginjaninja78/order-line-cleaner/internal/logging"
	"github.com/ginjaninja78/order-line-cleaner/internal/testutil"
	"github.com/ginjaninja78/order-line-cleaner/internal/types"
)

func newWriter(t *testing.T) (*Writer, *config.Config) {
	t.Helper()
	cfg := config.Default()
	cfg.OutputDir = filepath.Join(t.TempDir(), "output")
	return NewWriter(cfg, logging.Discard()), cfg
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(s string) time.Time {
	d, _ := time.Parse(DateLayout, s)
	return d
}

func TestWriteDiscarded(t *testing.T) {
	w, cfg := newWriter(t)
	header := []string{"order_id", "sku", "extra"}
	rows := []types.Record{
		{},
		{"order_id": "a", "extra": "x"},
	}

	path, err := w.WriteDiscarded(header, rows)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "discarded_rows.csv"), path)

	assert.Equal(t, [][]string{
		{"order_id", "sku", "extra"},
		{"", "", ""},
		{"a", "", "x"},
	}, readCSV(t, path))
}

func TestWriteDiscarded_NoRows(t *testing.T) {
	w, _ := newWriter(t)

	path, err := w.WriteDiscarded(types.OrderLineFields, nil)
	require.NoError(t, err)

	rows := readCSV(t, path)
	require.Len(t, rows, 1)
	assert.Equal(t, types.OrderLineFields, rows[0])
}

func TestWriteStats(t *testing.T) {
	w, _ := newWriter(t)
	stats := types.Stats{
		TotalRows:                 5,
		TotalEmptyRowsRemoved:     1,
		TotalInvalidRowsRemoved:   2,
		TotalDuplicateRowsRemoved: 1,
		TotalUsableRows:           3,
	}

	path, err := w.WriteStats(stats)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{
    "total_rows": 5,
    "total_empty_rows_removed": 1,
    "total_invalid_rows_removed": 2,
    "total_duplicate_rows_removed": 1,
    "total_usable_rows": 3
}`, string(data))

	var decoded types.Stats
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, stats, decoded)
}

func TestWriteMetrics(t *testing.T) {
	table := aggregate.Table{
		{Date: day("2024-03-01"), TotalPromoDiscount: amount("1"), TotalItemPrice: amount("14"), Lines: 2},
		{Date: day("2024-03-02"), TotalPromoDiscount: amount("0.1").Add(amount("0.2")), TotalItemPrice: amount("9.995"), Lines: 1},
		{Date: day("2024-03-03"), TotalPromoDiscount: amount("0.3"), TotalItemPrice: amount("0.3").Sub(amount("0.1").Add(amount("0.2"))), Lines: 2},
	}

	t.Run("without date", func(t *testing.T) {
		w, _ := newWriter(t)
		path, err := w.WriteMetrics(table)
		require.NoError(t, err)

		assert.Equal(t, [][]string{
			{"total_item_promo_discount", "total_item_price"},
			{"1.00", "14.00"},
			{"0.30", "10.00"},
			{"0.30", "0.00"},
		}, readCSV(t, path))
	})

	t.Run("with date", func(t *testing.T) {
		w, _ := newWriter(t)
		w.metrics.IncludeDate = true
		path, err := w.WriteMetrics(table)
		require.NoError(t, err)

		rows := readCSV(t, path)
		assert.Equal(t, []string{"purchased_date", "total_item_promo_discount", "total_item_price"}, rows[0])
		assert.Equal(t, []string{"2024-03-01", "1.00", "14.00"}, rows[1])
	})

	t.Run("empty table", func(t *testing.T) {
		w, _ := newWriter(t)
		path, err := w.WriteMetrics(nil)
		require.NoError(t, err)
		assert.Len(t, readCSV(t, path), 1)
	})
}

func TestWriteUsable(t *testing.T) {
	w, cfg := newWriter(t)
	rec := testutil.ValidRecord()

	path, err := w.WriteUsable(types.OrderLineFields, []types.Record{rec})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "usable_rows.csv"), path)

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, rec.Values(types.OrderLineFields), rows[1])
}

func TestWrite_OutputDirBlocked(t *testing.T) {
	w, cfg := newWriter(t)
	require.NoError(t, os.WriteFile(cfg.OutputDir, nil, 0644))

	_, err := w.WriteStats(types.Stats{})
	assert.Error(t, err)
}

func TestWriteReport(t *testing.T) {
	w, cfg := newWriter(t)
	header := []string{"order_id", "sku"}

	path, err := w.WriteReport(Report{
		Source:    "orders.csv",
		Stats:     types.Stats{TotalRows: 3, TotalUsableRows: 1},
		Metrics:   aggregate.Table{{Date: day("2024-03-01"), TotalPromoDiscount: amount("1"), TotalItemPrice: amount("14.5"), Lines: 2}},
		Header:    header,
		Discarded: []types.Record{{"order_id": "a"}},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "cleaning_report.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetMetrics, SheetDiscarded}, f.GetSheetList())

	summary, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Equal(t, []string{"total_rows", "3"}, summary[2])

	metrics, err := f.GetRows(SheetMetrics)
	require.NoError(t, err)
	require.Len(t, metrics, 2)
	assert.Equal(t, []string{"2024-03-01", "1", "14.5", "2"}, metrics[1])

	discarded, err := f.GetRows(SheetDiscarded)
	require.NoError(t, err)
	assert.Equal(t, []string{"order_id", "sku"}, discarded[0])
	assert.Equal(t, "a", discarded[1][0])
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"-3.5", "-3.50"},
		{"1234567.891", "1234567.89"},
		{"1.005", "1.01"},
		{"-1.005", "-1.01"},
		{"-0.001", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(amount(tt.in)))
		})
	}
}
