// Package aggregate rolls usable order lines up into per-day totals.
package aggregate

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/order-line-cleaner/internal/types"
	"github.com/ginjaninja78/order-line-cleaner/internal/validation"
)

// DailyMetrics holds the totals for one purchase date.
type DailyMetrics struct {
	// Date is the purchase date at midnight UTC.
	Date time.Time

	// TotalPromoDiscount is the sum of item_promo_discount.
	TotalPromoDiscount decimal.Decimal

	// TotalItemPrice is the sum of item_price minus the sum of
	// item_promo_discount.
	TotalItemPrice decimal.Decimal

	// Lines is the number of order lines that fell on Date.
	Lines int
}

// Table is the per-day roll-up sorted by date ascending.
type Table []DailyMetrics

// Find returns the metrics for date, if present.
func (t Table) Find(date time.Time) (DailyMetrics, bool) {
	i := sort.Search(len(t), func(i int) bool { return !t[i].Date.Before(date) })
	if i < len(t) && t[i].Date.Equal(date) {
		return t[i], true
	}
	return DailyMetrics{}, false
}

type sums struct {
	price, promo decimal.Decimal
	lines        int
}

// Daily groups rows by purchased_date and totals their prices and promotions.
//
// Rows whose purchased_date is not a calendar date are skipped. A price or
// discount that does not parse adds nothing to its sum; the row still counts
// toward the other column.
func Daily(rows []types.Record) Table {
	groups := make(map[time.Time]*sums)

	for _, rec := range rows {
		raw, _ := rec.Get(types.FieldPurchasedDate)
		date, ok := validation.ParseDate(raw)
		if !ok {
			continue
		}

		g, exists := groups[date]
		if !exists {
			g = &sums{}
			groups[date] = g
		}
		g.lines++

		if v, ok := numeric(rec, types.FieldItemPrice); ok {
			g.price = g.price.Add(v)
		}
		if v, ok := numeric(rec, types.FieldItemPromoDiscount); ok {
			g.promo = g.promo.Add(v)
		}
	}

	table := make(Table, 0, len(groups))
	for date, g := range groups {
		table = append(table, DailyMetrics{
			Date:               date,
			TotalPromoDiscount: g.promo,
			TotalItemPrice:     g.price.Sub(g.promo),
			Lines:              g.lines,
		})
	}

	sort.Slice(table, func(i, j int) bool {
		return table[i].Date.Before(table[j].Date)
	})

	return table
}

// numeric reads a money field as an exact decimal. Values that pass the number
// rule but that decimal cannot read as written (a leading plus sign, for
// instance) fall back to the float value.
func numeric(rec types.Record, field string) (decimal.Decimal, bool) {
	raw, ok := rec.Get(field)
	if !ok {
		return decimal.Zero, false
	}
	f, ok := validation.ParseNumber(raw)
	if !ok {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.NewFromFloat(f), true
	}
	return d, true
}
