package pipeline

import (
	"testing"
	"time"
)

func TestDeliveryClass(t *testing.T) {
	tests := []struct {
		delta int32
		want  string
	}{
		{-3, "Early"},
		{-1, "Early"},
		{0, "On Time"},
		{1, "Late"},
		{4, "Late"},
	}

	for _, tt := range tests {
		if got := deliveryClass(tt.delta); got != tt.want {
			t.Errorf("deliveryClass(%d) = %q, want %q", tt.delta, got, tt.want)
		}
	}
}

func TestShippingModeClean(t *testing.T) {
	tests := []struct {
		scheduled int32
		want      string
	}{
		{0, "Same Day"},
		{1, "First Class"},
		{2, "First Class"},
		{3, "Second Class"},
		{4, "Standard Class"},
		{6, "Standard Class"},
	}

	for _, tt := range tests {
		if got := shippingModeClean(tt.scheduled); got != tt.want {
			t.Errorf("shippingModeClean(%d) = %q, want %q", tt.scheduled, got, tt.want)
		}
	}
}

func TestPriceSegment(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{0, "Budget"},
		{59.99, "Budget"},
		{60, "Mainstream"},
		{250, "Mainstream"},
		{250.01, "Premium"},
		{1999, "Premium"},
	}

	for _, tt := range tests {
		if got := priceSegment(tt.price); got != tt.want {
			t.Errorf("priceSegment(%v) = %q, want %q", tt.price, got, tt.want)
		}
	}
}

func TestOrderDayType(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2016, 6, 13, 0, 0, 0, 0, time.UTC), "Weekday"}, // Monday
		{time.Date(2016, 6, 17, 0, 0, 0, 0, time.UTC), "Weekday"}, // Friday
		{time.Date(2016, 6, 18, 0, 0, 0, 0, time.UTC), "Weekend"}, // Saturday
		{time.Date(2016, 6, 19, 0, 0, 0, 0, time.UTC), "Weekend"}, // Sunday
	}

	for _, tt := range tests {
		out := Classify([]Record{{OrderDate: tt.date}})
		if out[0].OrderDayType != tt.want {
			t.Errorf("%s: OrderDayType = %q, want %q",
				tt.date.Weekday(), out[0].OrderDayType, tt.want)
		}
		if out[0].DayName != tt.date.Weekday().String() {
			t.Errorf("DayName = %q, want %q", out[0].DayName, tt.date.Weekday())
		}
	}
}

func TestTradeRouteNormalizesCountry(t *testing.T) {
	tests := []struct {
		name           string
		country, state string
		orderCountry   string
		want           string
	}{
		{"locale variant rewritten", "EE. UU.", "PR", "El Salvador", "USA_PR -> El Salvador"},
		{"other countries unchanged", "Mexico", "Sonora", "Honduras", "Mexico_Sonora -> Honduras"},
		{"usa already normalized", "USA", "CA", "Mexico", "USA_CA -> Mexico"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Classify([]Record{{
				CustomerCountry: tt.country,
				CustomerState:   tt.state,
				OrderCountry:    tt.orderCountry,
				OrderDate:       time.Date(2016, 6, 13, 0, 0, 0, 0, time.UTC),
			}})
			if out[0].TradeRoute != tt.want {
				t.Errorf("TradeRoute = %q, want %q", out[0].TradeRoute, tt.want)
			}
		})
	}
}
