// Package testutil provides order line fixtures shared by package tests.
package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/order-line-cleaner/internal/types"
)

// ValidRecord returns an order line that passes every field rule.
func ValidRecord() types.Record {
	return types.Record{
		types.FieldOrderID:               "550e8400-e29b-41d4-a716-446655440000",
		types.FieldPurchasedAt:           "2024-03-01T10:15:30.123456",
		types.FieldPurchasedDate:         "2024-03-01",
		types.FieldPurchasedMonthEnded:   "2024-03-31",
		types.FieldOrderItemID:           "1001",
		types.FieldSKU:                   "ABC-12345678",
		types.FieldProductTitle:          "Camiseta Azul",
		types.FieldProductNameFull:       "Camiseta Azul Algodón Talla M",
		types.FieldCurrency:              "USD",
		types.FieldItemPrice:             "10.00",
		types.FieldItemTax:               "1.60",
		types.FieldShippingPrice:         "4.99",
		types.FieldShippingTax:           "0.00",
		types.FieldGiftWrapPrice:         "0",
		types.FieldGiftWrapTax:           "0",
		types.FieldItemPromoDiscount:     "1.00",
		types.FieldShipmentPromoDiscount: "0",
		types.FieldShipServiceLevel:      "Standard",
	}
}

// With returns a copy of rec with the given field overrides applied. A value
// of nil removes the field (makes it null).
func With(rec types.Record, overrides map[string]*string) types.Record {
	out := rec.Clone()
	for k, v := range overrides {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = *v
	}
	return out
}

// Str returns a pointer to s, for use with With.
func Str(s string) *string {
	return &s
}

// Dataset wraps records in a Dataset over the order line header.
func Dataset(records ...types.Record) *types.Dataset {
	rows := make([]int, len(records))
	for i := range records {
		rows[i] = i + 2
	}
	return &types.Dataset{
		Header:     append([]string(nil), types.OrderLineFields...),
		Records:    records,
		RowNumbers: rows,
		Source:     "fixture",
	}
}

// WriteCSV writes header and records as CSV into dir and returns the path.
func WriteCSV(t *testing.T, dir, name string, header []string, records []types.Record) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := csv.NewWriter(f)
	require.NoError(t, w.Write(header))
	for _, rec := range records {
		require.NoError(t, w.Write(rec.Values(header)))
	}
	w.Flush()
	require.NoError(t, w.Error())

	return path
}
