// =============================================================================
// Order Line Cleaner - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - csvparser / xlsxparser (producers)
//   - partition, validation, aggregate (consumers)
//   - pipeline, output
//
// =============================================================================

package types

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// ORDER LINE SCHEMA
// =============================================================================

// Field names of the order line export. The set is fixed and known before any
// file is read.
const (
	FieldOrderID               = "order_id"
	FieldPurchasedAt           = "purchased_at"
	FieldPurchasedDate         = "purchased_date"
	FieldPurchasedMonthEnded   = "purchased_month_ended"
	FieldOrderItemID           = "order_item_id"
	FieldSKU                   = "sku"
	FieldProductTitle          = "product_title"
	FieldProductNameFull       = "product_name_full"
	FieldCurrency              = "currency"
	FieldItemPrice             = "item_price"
	FieldItemTax               = "item_tax"
	FieldShippingPrice         = "shipping_price"
	FieldShippingTax           = "shipping_tax"
	FieldGiftWrapPrice         = "gift_wrap_price"
	FieldGiftWrapTax           = "gift_wrap_tax"
	FieldItemPromoDiscount     = "item_promo_discount"
	FieldShipmentPromoDiscount = "shipment_promo_discount"
	FieldShipServiceLevel      = "ship_service_level"
)

// OrderLineFields lists the required columns in export order.
var OrderLineFields = []string{
	FieldOrderID,
	FieldPurchasedAt,
	FieldPurchasedDate,
	FieldPurchasedMonthEnded,
	FieldOrderItemID,
	FieldSKU,
	FieldProductTitle,
	FieldProductNameFull,
	FieldCurrency,
	FieldItemPrice,
	FieldItemTax,
	FieldShippingPrice,
	FieldShippingTax,
	FieldGiftWrapPrice,
	FieldGiftWrapTax,
	FieldItemPromoDiscount,
	FieldShipmentPromoDiscount,
	FieldShipServiceLevel,
}

// =============================================================================
// RECORD
// =============================================================================

// Record is one input row keyed by column name.
//
// A column that is missing from the map is null. Readers never store null
// cells, so Get is the only way to distinguish "absent" from "empty text".
type Record map[string]string

// Get returns the raw value of a field and whether it is present.
func (r Record) Get(field string) (string, bool) {
	v, ok := r[field]
	return v, ok
}

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// IsBlank reports whether every listed field is null or whitespace only.
func (r Record) IsBlank(fields []string) bool {
	for _, f := range fields {
		if v, ok := r[f]; ok && strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Key builds a string that is equal for two records exactly when every listed
// field is equal, with null distinct from the empty string.
func (r Record) Key(fields []string) string {
	var b strings.Builder
	for _, f := range fields {
		v, ok := r[f]
		if !ok {
			b.WriteByte(0)
			continue
		}
		// Length prefix keeps cell boundaries unambiguous.
		b.WriteByte(1)
		b.WriteString(strconv.Itoa(len(v)))
		b.WriteByte(':')
		b.WriteString(v)
	}
	return b.String()
}

// Values returns the record's cells in column order; null cells are empty.
func (r Record) Values(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = r[f]
	}
	return out
}

// =============================================================================
// DATASET
// =============================================================================

// Dataset is the full input held in memory. It is never modified after load;
// derived views hold their own slices.
type Dataset struct {
	// Header lists the columns in source order, including any extra columns
	// beyond the order line schema.
	Header []string

	// Records holds the data rows in source order.
	Records []Record

	// RowNumbers holds the 1-based source line of each record, parallel to
	// Records. Used for log messages only.
	RowNumbers []int

	// Source is the path the dataset was read from.
	Source string
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// RowNumber returns the source row of record i, or 0 if unknown.
func (d *Dataset) RowNumber(i int) int {
	if i < 0 || i >= len(d.RowNumbers) {
		return 0
	}
	return d.RowNumbers[i]
}

// NormalizeHeader trims header names, names blank columns Column_N and
// rejects repeated names.
func NormalizeHeader(headers []string) ([]string, error) {
	cleaned := make([]string, len(headers))
	seen := make(map[string]int, len(headers))

	for i, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		if prev, dup := seen[header]; dup {
			return nil, fmt.Errorf("column %q appears at positions %d and %d", header, prev+1, i+1)
		}
		seen[header] = i
		cleaned[i] = header
	}

	return cleaned, nil
}

// =============================================================================
// SCHEMA ERRORS
// =============================================================================

// SchemaError reports required columns missing from an input header.
type SchemaError struct {
	Source  string
	Missing []string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required column(s): %s", e.Source, strings.Join(e.Missing, ", "))
}

// CheckHeader returns a *SchemaError if any required field is absent from header.
func CheckHeader(source string, header []string) error {
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[h] = true
	}

	var missing []string
	for _, f := range OrderLineFields {
		if !have[f] {
			missing = append(missing, f)
		}
	}

	if len(missing) > 0 {
		return &SchemaError{Source: source, Missing: missing}
	}
	return nil
}

// =============================================================================
// SUMMARY STATISTICS
// =============================================================================

// Stats summarizes one cleaning run. The JSON names are the keys of the
// processing stats artifact.
type Stats struct {
	// TotalRows is the number of data rows read.
	TotalRows int `json:"total_rows"`

	// TotalEmptyRowsRemoved counts rows with every column null or blank.
	TotalEmptyRowsRemoved int `json:"total_empty_rows_removed"`

	// TotalInvalidRowsRemoved is empty plus duplicate rows. Rows that fail the
	// field rules are not counted here; they are the gap between the removed
	// rows and TotalUsableRows.
	TotalInvalidRowsRemoved int `json:"total_invalid_rows_removed"`

	// TotalDuplicateRowsRemoved counts repeats of an earlier row.
	TotalDuplicateRowsRemoved int `json:"total_duplicate_rows_removed"`

	// TotalUsableRows counts candidates that passed every field rule.
	TotalUsableRows int `json:"total_usable_rows"`
}
