package pipeline

import (
	"math"
	"testing"
)

func TestWindowSharesSumToOnePerGroup(t *testing.T) {
	in := []Record{
		{CategoryName: "Fishing", Market: "LATAM", OrderState: "PR", GrossSales: 100},
		{CategoryName: "Fishing", Market: "LATAM", OrderState: "PR", GrossSales: 300},
		{CategoryName: "Fishing", Market: "Europe", OrderState: "Berlin", GrossSales: 50},
		{CategoryName: "Cleats", Market: "Europe", OrderState: "Berlin", GrossSales: 75},
	}

	out := Window(in)

	categoryTotals := make(map[string]float64)
	marketTotals := make(map[string]float64)
	for _, r := range out {
		categoryTotals[r.CategoryName] += r.CategorySharePct
		marketTotals[r.Market] += r.MarketSharePct
	}
	for cat, sum := range categoryTotals {
		if math.Abs(sum-1.0) > 1e-6 {
			t.Errorf("Category %q shares sum to %v, want 1.0", cat, sum)
		}
	}
	for mkt, sum := range marketTotals {
		if math.Abs(sum-1.0) > 1e-6 {
			t.Errorf("Market %q shares sum to %v, want 1.0", mkt, sum)
		}
	}

	if !almostEqual(out[0].CategorySharePct, 0.25) {
		t.Errorf("Row 0 CategorySharePct = %v, want 0.25", out[0].CategorySharePct)
	}
	if !almostEqual(out[2].MarketSharePct, 0.4) {
		t.Errorf("Row 2 MarketSharePct = %v, want 0.4", out[2].MarketSharePct)
	}
}

func TestWindowStateOrderCount(t *testing.T) {
	in := []Record{
		{OrderState: "PR", CategoryName: "X", Market: "M", GrossSales: 1},
		{OrderState: "PR", CategoryName: "X", Market: "M", GrossSales: 1},
		{OrderState: "CA", CategoryName: "X", Market: "M", GrossSales: 1},
	}

	out := Window(in)
	if out[0].StateOrderCount != 2 || out[1].StateOrderCount != 2 {
		t.Errorf("PR rows have counts %d, %d, want 2, 2",
			out[0].StateOrderCount, out[1].StateOrderCount)
	}
	if out[2].StateOrderCount != 1 {
		t.Errorf("CA row has count %d, want 1", out[2].StateOrderCount)
	}
}

func TestStateDensityClassBoundaries(t *testing.T) {
	tests := []struct {
		count int64
		want  string
	}{
		{1, "Expansion Zone"},
		{9, "Expansion Zone"},
		{10, "Standard Zone"},
		{100, "Standard Zone"},
		{101, "Strategic Hub"},
	}

	for _, tt := range tests {
		if got := stateDensityClass(tt.count); got != tt.want {
			t.Errorf("stateDensityClass(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}
