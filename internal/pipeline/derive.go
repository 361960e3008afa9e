//-------------------------------------------------------------------------
//
// pgEdge Silver Pipeline
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package pipeline

import "math"

// Derive computes the financial and operational metric chain. Fields are
// computed in strict dependency order; each step reads only raw inputs or
// the outputs of earlier steps.
//
// Division by a zero quantity (actual_unit_cost) or a zero unit cost
// (markup_pct) is left unguarded and propagates Inf/NaN into the output.
// margin_leakage_pct is the exception: any non-finite result is coerced
// to 0.0.
func Derive(in []Record) []Record {
	out := make([]Record, len(in))
	for i, r := range in {
		r.GrossSales = r.Price * float64(r.Quantity)
		r.DiscountAmount = r.GrossSales * r.DiscountRate
		r.NetRevenue = r.GrossSales - r.DiscountAmount
		r.OrderProfitAmount = r.NetRevenue * r.ProfitRatio
		r.TotalCost = r.NetRevenue - r.OrderProfitAmount
		r.ActualUnitCost = r.TotalCost / float64(r.Quantity)
		r.IsProfitBleeder = r.OrderProfitAmount < 0
		r.ShippingDelta = r.DaysShippingReal - r.DaysShipmentScheduled
		r.MarkupPct = (r.Price - r.ActualUnitCost) / r.ActualUnitCost

		leakage := r.DiscountAmount / (r.OrderProfitAmount + r.DiscountAmount)
		if math.IsNaN(leakage) || math.IsInf(leakage, 0) {
			leakage = 0.0
		}
		r.MarginLeakagePct = leakage

		out[i] = r
	}
	return out
}
