//-------------------------------------------------------------------------
//
// pgEdge Silver Pipeline
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package silver defines the Silver layer fact schema and its parquet
// persistence.
package silver

import (
	"sort"

	"github.com/pgEdge/pgedge-silverpipe/internal/pipeline"
)

// FactRow is one row of a Silver fact artifact. Column names are all
// lowercase; the natural geography, customer and product keys consumed by
// the dimension joins do not appear, only their surrogate keys.
type FactRow struct {
	// Surrogate keys. Optional: a fact row with no dimension match carries
	// nulls (left join semantics).
	GeoID         *int32 `parquet:"geo_id,optional"`
	CustomerGeoID *int32 `parquet:"customer_geo_id,optional"`
	ProductKey    *int32 `parquet:"product_key,optional"`

	// Time parts.
	OrderYear    int32  `parquet:"order_year"`
	OrderMonth   int32  `parquet:"order_month"`
	OrderDay     int32  `parquet:"order_day"`
	DayNameStr   string `parquet:"day_name_str"`
	OrderDayType string `parquet:"order_day_type"`

	// Logistics.
	Type                  string `parquet:"type"`
	DaysShippingReal      int32  `parquet:"days_for_shipping_real"`
	DaysShipmentScheduled int32  `parquet:"days_for_shipment_scheduled"`
	ShippingDelta         int32  `parquet:"shipping_delta"`
	DeliveryClass         string `parquet:"delivery_class"`
	ShippingModeClean     string `parquet:"shipping_mode_clean"`
	OrderStatus           string `parquet:"order_status"`
	CustomerSegment       string `parquet:"customer_segment"`

	// Financials.
	Quantity          int32   `parquet:"order_item_quantity"`
	Price             float64 `parquet:"order_item_product_price"`
	DiscountRate      float64 `parquet:"order_item_discount_rate"`
	ProfitRatio       float64 `parquet:"order_item_profit_ratio"`
	GrossSales        float64 `parquet:"gross_sales"`
	DiscountAmount    float64 `parquet:"discount_amount"`
	NetRevenue        float64 `parquet:"net_revenue"`
	OrderProfitAmount float64 `parquet:"order_profit_amount"`
	TotalCost         float64 `parquet:"total_cost"`
	ActualUnitCost    float64 `parquet:"actual_unit_cost"`

	// Metrics.
	IsProfitBleeder   bool    `parquet:"is_profit_bleeder"`
	MarkupPct         float64 `parquet:"markup_pct"`
	MarginLeakagePct  float64 `parquet:"margin_leakage_pct"`
	PriceSegment      string  `parquet:"price_segment"`
	TradeRoute        string  `parquet:"trade_route"`
	CategorySharePct  float64 `parquet:"category_share_pct"`
	MarketSharePct    float64 `parquet:"market_share_pct"`
	StateOrderCount   int64   `parquet:"state_order_count"`
	StateDensityClass string  `parquet:"state_density_class"`
}

// FromRecords projects enriched pipeline records onto the fact schema.
func FromRecords(recs []pipeline.Record) []FactRow {
	rows := make([]FactRow, len(recs))
	for i, r := range recs {
		rows[i] = FactRow{
			GeoID:                 r.GeoID,
			CustomerGeoID:         r.CustomerGeoID,
			ProductKey:            r.ProductKey,
			OrderYear:             r.OrderYear,
			OrderMonth:            r.OrderMonth,
			OrderDay:              r.OrderDay,
			DayNameStr:            r.DayName,
			OrderDayType:          r.OrderDayType,
			Type:                  r.Type,
			DaysShippingReal:      r.DaysShippingReal,
			DaysShipmentScheduled: r.DaysShipmentScheduled,
			ShippingDelta:         r.ShippingDelta,
			DeliveryClass:         r.DeliveryClass,
			ShippingModeClean:     r.ShippingModeClean,
			OrderStatus:           r.OrderStatus,
			CustomerSegment:       r.CustomerSegment,
			Quantity:              r.Quantity,
			Price:                 r.Price,
			DiscountRate:          r.DiscountRate,
			ProfitRatio:           r.ProfitRatio,
			GrossSales:            r.GrossSales,
			DiscountAmount:        r.DiscountAmount,
			NetRevenue:            r.NetRevenue,
			OrderProfitAmount:     r.OrderProfitAmount,
			TotalCost:             r.TotalCost,
			ActualUnitCost:        r.ActualUnitCost,
			IsProfitBleeder:       r.IsProfitBleeder,
			MarkupPct:             r.MarkupPct,
			MarginLeakagePct:      r.MarginLeakagePct,
			PriceSegment:          r.PriceSegment,
			TradeRoute:            r.TradeRoute,
			CategorySharePct:      r.CategorySharePct,
			MarketSharePct:        r.MarketSharePct,
			StateOrderCount:       r.StateOrderCount,
			StateDensityClass:     r.StateDensityClass,
		}
	}
	return rows
}

// Sort orders fact rows by (order_year, order_month, order_day,
// order_item_quantity) ascending. The sort is stable so repeated runs over
// identical input produce byte-identical artifacts.
func Sort(rows []FactRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.OrderYear != b.OrderYear {
			return a.OrderYear < b.OrderYear
		}
		if a.OrderMonth != b.OrderMonth {
			return a.OrderMonth < b.OrderMonth
		}
		if a.OrderDay != b.OrderDay {
			return a.OrderDay < b.OrderDay
		}
		return a.Quantity < b.Quantity
	})
}
