package pipeline

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestDeriveMetricChain(t *testing.T) {
	in := []Record{{
		Quantity:              2,
		Price:                 327.75,
		DiscountRate:          0.04,
		ProfitRatio:           0.29,
		DaysShippingReal:      4,
		DaysShipmentScheduled: 2,
	}}

	out := Derive(in)
	if len(out) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(out))
	}
	r := out[0]

	gross := 327.75 * 2
	discount := gross * 0.04
	net := gross - discount
	profit := net * 0.29
	cost := net - profit

	if !almostEqual(r.GrossSales, gross) {
		t.Errorf("GrossSales = %v, want %v", r.GrossSales, gross)
	}
	if !almostEqual(r.DiscountAmount, discount) {
		t.Errorf("DiscountAmount = %v, want %v", r.DiscountAmount, discount)
	}
	if !almostEqual(r.NetRevenue, net) {
		t.Errorf("NetRevenue = %v, want %v", r.NetRevenue, net)
	}
	if !almostEqual(r.OrderProfitAmount, profit) {
		t.Errorf("OrderProfitAmount = %v, want %v", r.OrderProfitAmount, profit)
	}
	if !almostEqual(r.TotalCost, cost) {
		t.Errorf("TotalCost = %v, want %v", r.TotalCost, cost)
	}
	if !almostEqual(r.ActualUnitCost, cost/2) {
		t.Errorf("ActualUnitCost = %v, want %v", r.ActualUnitCost, cost/2)
	}
	if !almostEqual(r.MarkupPct, (327.75-cost/2)/(cost/2)) {
		t.Errorf("MarkupPct = %v, want %v", r.MarkupPct, (327.75-cost/2)/(cost/2))
	}
	if !almostEqual(r.MarginLeakagePct, discount/(profit+discount)) {
		t.Errorf("MarginLeakagePct = %v, want %v", r.MarginLeakagePct, discount/(profit+discount))
	}
	if r.IsProfitBleeder {
		t.Error("IsProfitBleeder = true for a profitable row")
	}
	if r.ShippingDelta != 2 {
		t.Errorf("ShippingDelta = %d, want 2", r.ShippingDelta)
	}
}

func TestDeriveBalanceInvariants(t *testing.T) {
	in := []Record{
		{Quantity: 3, Price: 19.99, DiscountRate: 0.1, ProfitRatio: 0.2},
		{Quantity: 1, Price: 499.5, DiscountRate: 0.0, ProfitRatio: -0.15},
		{Quantity: 5, Price: 60.0, DiscountRate: 0.25, ProfitRatio: 0.0},
	}

	for i, r := range Derive(in) {
		if !almostEqual(r.NetRevenue, r.GrossSales-r.DiscountAmount) {
			t.Errorf("Row %d: net revenue does not balance: %v != %v - %v",
				i, r.NetRevenue, r.GrossSales, r.DiscountAmount)
		}
		if !almostEqual(r.TotalCost+r.OrderProfitAmount, r.NetRevenue) {
			t.Errorf("Row %d: cost plus profit does not balance: %v + %v != %v",
				i, r.TotalCost, r.OrderProfitAmount, r.NetRevenue)
		}
	}
}

func TestDeriveProfitBleeder(t *testing.T) {
	in := []Record{
		{Quantity: 1, Price: 100, DiscountRate: 0.1, ProfitRatio: -0.2},
		{Quantity: 1, Price: 100, DiscountRate: 0.1, ProfitRatio: 0.0},
		{Quantity: 1, Price: 100, DiscountRate: 0.1, ProfitRatio: 0.2},
	}

	out := Derive(in)
	want := []bool{true, false, false}
	for i, r := range out {
		if r.IsProfitBleeder != want[i] {
			t.Errorf("Row %d: IsProfitBleeder = %v, want %v", i, r.IsProfitBleeder, want[i])
		}
	}
}

func TestDeriveZeroQuantityPropagatesNonFinite(t *testing.T) {
	in := []Record{{Quantity: 0, Price: 100, DiscountRate: 0.1, ProfitRatio: 0.2}}

	r := Derive(in)[0]
	// total_cost is exactly 0 here, so 0/0 yields NaN in the unit cost and
	// it stays NaN downstream. No guard, no substitution.
	if !math.IsNaN(r.ActualUnitCost) {
		t.Errorf("ActualUnitCost = %v, want NaN", r.ActualUnitCost)
	}
	if !math.IsNaN(r.MarkupPct) {
		t.Errorf("MarkupPct = %v, want NaN", r.MarkupPct)
	}
}

func TestDeriveMarginLeakageNonFiniteCoercedToZero(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
	}{
		// discount 0 and profit 0: leakage is 0/0 = NaN.
		{"nan from zero over zero", Record{Quantity: 1, Price: 100, DiscountRate: 0, ProfitRatio: 0}},
		// discount exactly cancels profit: leakage divides by zero.
		{"inf from zero denominator", Record{Quantity: 1, Price: 100, DiscountRate: 0.2, ProfitRatio: -0.25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Derive([]Record{tt.rec})[0]
			if r.MarginLeakagePct != 0.0 {
				t.Errorf("MarginLeakagePct = %v, want exactly 0.0", r.MarginLeakagePct)
			}
		})
	}
}
