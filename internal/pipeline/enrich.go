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

	"github.com/pgEdge/pgedge-silverpipe/internal/dims"
)

// Enrich performs the three star schema joins, attaching surrogate keys in
// place of the natural geography, customer and product keys.
//
// All three joins are left-outer: every fact row survives, and rows with no
// dimension match keep nil surrogate keys. The dimension tables are
// unique-keyed by construction, so a fact row matches at most one dimension
// row; the row count invariant is still verified rather than assumed.
func Enrich(in []Record, d *dims.Set) ([]Record, error) {
	out := make([]Record, len(in))
	for i, r := range in {
		if id, ok := d.LookupGeo(r.OrderState, r.OrderCountry, r.OrderRegion, r.Market); ok {
			geoID := id
			r.GeoID = &geoID
		}
		if id, ok := d.LookupCustomerGeo(r.CustomerState, r.CustomerCountry); ok {
			customerGeoID := id
			r.CustomerGeoID = &customerGeoID
		}
		if id, ok := d.LookupProduct(r.ProductName, r.CategoryName, r.DepartmentName); ok {
			productKey := id
			r.ProductKey = &productKey
		}
		out[i] = r
	}

	if len(out) != len(in) {
		return nil, fmt.Errorf("%w: row count changed during enrichment: %d -> %d",
			ErrEnrich, len(in), len(out))
	}
	return out, nil
}
