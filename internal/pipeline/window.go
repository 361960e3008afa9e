//-------------------------------------------------------------------------
//
// pgEdge Silver Pipeline
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package pipeline

// Window computes the group-relative share and density fields over the
// fully-derived fact set, before dimension enrichment.
//
// Each aggregate is a two-pass operation: the first pass builds a group key
// to sum/count mapping, the second attaches the per-row share or class by
// looking up the row's group. The whole file must be materialized; these are
// aggregate-then-broadcast values, not running totals.
func Window(in []Record) []Record {
	categorySales := make(map[string]float64)
	marketSales := make(map[string]float64)
	stateCounts := make(map[string]int64)

	for _, r := range in {
		categorySales[r.CategoryName] += r.GrossSales
		marketSales[r.Market] += r.GrossSales
		stateCounts[r.OrderState]++
	}

	out := make([]Record, len(in))
	for i, r := range in {
		r.CategorySharePct = r.GrossSales / categorySales[r.CategoryName]
		r.MarketSharePct = r.GrossSales / marketSales[r.Market]
		r.StateOrderCount = stateCounts[r.OrderState]
		r.StateDensityClass = stateDensityClass(r.StateOrderCount)
		out[i] = r
	}
	return out
}

func stateDensityClass(orderCount int64) string {
	switch {
	case orderCount > 100:
		return "Strategic Hub"
	case orderCount < 10:
		return "Expansion Zone"
	default:
		return "Standard Zone"
	}
}
