//-------------------------------------------------------------------------
//
// pgEdge Silver Pipeline
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package pipeline

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pgEdge/pgedge-silverpipe/internal/bronze"
)

// CleanStats reports the data quality drops applied by Clean. Drops are
// expected and non-fatal; the counts exist for observability only.
type CleanStats struct {
	InputRows         int
	InvalidDates      int
	DuplicatesDropped int
	OutputRows        int
}

// requiredColumns must be present in the Bronze header for typed binding.
// The helper columns order_dayofweek and shipping_mode are not required:
// they are pruned without being read.
var requiredColumns = []string{
	bronze.ColType,
	bronze.ColDaysShippingReal,
	bronze.ColDaysShipmentScheduled,
	bronze.ColOrderStatus,
	bronze.ColCustomerSegment,
	bronze.ColCustomerState,
	bronze.ColCustomerCountry,
	bronze.ColMarket,
	bronze.ColOrderRegion,
	bronze.ColOrderState,
	bronze.ColOrderCountry,
	bronze.ColOrderYear,
	bronze.ColOrderMonth,
	bronze.ColOrderDay,
	bronze.ColProductName,
	bronze.ColCategoryName,
	bronze.ColDepartmentName,
	bronze.ColQuantity,
	bronze.ColPrice,
	bronze.ColDiscountRate,
	bronze.ColProfitRatio,
}

// Clean validates order dates, removes exact duplicates and binds the
// surviving rows to typed records, pruning the helper columns.
//
// Rows whose year/month/day parts do not form a valid calendar date are
// dropped silently: that is a data quality filter, not an error. Duplicate
// removal keys on the full raw field tuple, including columns pruned
// afterwards, and keeps the first occurrence in input order. A missing
// required column or a malformed numeric in a surviving row is fatal to the
// file and reported as ErrBind.
func Clean(t *bronze.Table) ([]Record, CleanStats, error) {
	stats := CleanStats{InputRows: len(t.Rows)}

	for _, name := range requiredColumns {
		if t.Column(name) < 0 {
			return nil, stats, fmt.Errorf("%w: missing required column %q", ErrBind, name)
		}
	}

	yearIdx := t.Column(bronze.ColOrderYear)
	monthIdx := t.Column(bronze.ColOrderMonth)
	dayIdx := t.Column(bronze.ColOrderDay)

	seen := make(map[string]struct{}, len(t.Rows))
	out := make([]Record, 0, len(t.Rows))

	for _, row := range t.Rows {
		date, ok := validDate(row[yearIdx], row[monthIdx], row[dayIdx])
		if !ok {
			stats.InvalidDates++
			continue
		}

		key := strings.Join(row, "\x1f")
		if _, dup := seen[key]; dup {
			stats.DuplicatesDropped++
			continue
		}
		seen[key] = struct{}{}

		rec, err := bindRecord(t, row)
		if err != nil {
			return nil, stats, err
		}
		rec.OrderDate = date
		out = append(out, rec)
	}

	stats.OutputRows = len(out)
	return out, stats, nil
}

// validDate reconstructs a calendar date from the raw year/month/day parts.
// Non-strict: unparseable parts and out-of-range triples (month 13, day 32,
// Feb 29 outside a leap year) report false rather than an error.
func validDate(year, month, day string) (time.Time, bool) {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return time.Time{}, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil {
		return time.Time{}, false
	}
	d, err := strconv.Atoi(strings.TrimSpace(day))
	if err != nil {
		return time.Time{}, false
	}
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}

	date := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range values (Feb 30 becomes Mar 1/2), so
	// a round-trip mismatch means the triple was not a real calendar date.
	if date.Year() != y || date.Month() != time.Month(m) || date.Day() != d {
		return time.Time{}, false
	}
	return date, true
}

func bindRecord(t *bronze.Table, row []string) (Record, error) {
	b := binder{t: t, row: row}
	rec := Record{
		Type:                  b.str(bronze.ColType),
		DaysShippingReal:      b.i32(bronze.ColDaysShippingReal),
		DaysShipmentScheduled: b.i32(bronze.ColDaysShipmentScheduled),
		OrderStatus:           b.str(bronze.ColOrderStatus),
		CustomerSegment:       b.str(bronze.ColCustomerSegment),
		CustomerState:         b.str(bronze.ColCustomerState),
		CustomerCountry:       b.str(bronze.ColCustomerCountry),
		Market:                b.str(bronze.ColMarket),
		OrderRegion:           b.str(bronze.ColOrderRegion),
		OrderState:            b.str(bronze.ColOrderState),
		OrderCountry:          b.str(bronze.ColOrderCountry),
		OrderYear:             b.i32(bronze.ColOrderYear),
		OrderMonth:            b.i32(bronze.ColOrderMonth),
		OrderDay:              b.i32(bronze.ColOrderDay),
		ProductName:           b.str(bronze.ColProductName),
		CategoryName:          b.str(bronze.ColCategoryName),
		DepartmentName:        b.str(bronze.ColDepartmentName),
		Quantity:              b.i32(bronze.ColQuantity),
		Price:                 b.f64(bronze.ColPrice),
		DiscountRate:          b.f64(bronze.ColDiscountRate),
		ProfitRatio:           b.f64(bronze.ColProfitRatio),
	}
	if b.err != nil {
		return Record{}, b.err
	}
	return rec, nil
}

// binder accumulates the first conversion error across field reads so that
// bindRecord stays a flat field list.
type binder struct {
	t   *bronze.Table
	row []string
	err error
}

func (b *binder) str(col string) string {
	return b.row[b.t.Column(col)]
}

func (b *binder) i32(col string) int32 {
	if b.err != nil {
		return 0
	}
	v, err := strconv.ParseInt(strings.TrimSpace(b.str(col)), 10, 32)
	if err != nil {
		b.err = fmt.Errorf("%w: column %q: %v", ErrBind, col, err)
		return 0
	}
	return int32(v)
}

func (b *binder) f64(col string) float64 {
	if b.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(b.str(col)), 64)
	if err != nil {
		b.err = fmt.Errorf("%w: column %q: %v", ErrBind, col, err)
		return 0
	}
	return v
}
