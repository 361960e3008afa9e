//-------------------------------------------------------------------------
//
// pgEdge Silver Pipeline
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package silver

// StrictColumns is the explicit column contract of the warehouse fact
// table. The loader projects every Silver artifact to exactly this list
// before appending; the share columns stay in the Silver layer only.
var StrictColumns = []string{
	// Keys
	"geo_id", "customer_geo_id", "product_key",

	// Time (year / month / day only)
	"order_year", "order_month", "order_day",
	"day_name_str", "order_day_type",

	// Logistics
	"type", "days_for_shipping_real", "days_for_shipment_scheduled",
	"shipping_delta", "delivery_class", "shipping_mode_clean",
	"order_status", "customer_segment",

	// Financials
	"order_item_quantity", "order_item_product_price",
	"order_item_discount_rate", "order_item_profit_ratio",
	"gross_sales", "discount_amount", "net_revenue",
	"order_profit_amount", "total_cost", "actual_unit_cost",

	// Metrics
	"is_profit_bleeder", "markup_pct", "margin_leakage_pct",
	"price_segment", "trade_route",
	"state_order_count", "state_density_class",
}

// StrictValues returns the row's values in StrictColumns order.
func StrictValues(r FactRow) []any {
	return []any{
		r.GeoID, r.CustomerGeoID, r.ProductKey,

		r.OrderYear, r.OrderMonth, r.OrderDay,
		r.DayNameStr, r.OrderDayType,

		r.Type, r.DaysShippingReal, r.DaysShipmentScheduled,
		r.ShippingDelta, r.DeliveryClass, r.ShippingModeClean,
		r.OrderStatus, r.CustomerSegment,

		r.Quantity, r.Price,
		r.DiscountRate, r.ProfitRatio,
		r.GrossSales, r.DiscountAmount, r.NetRevenue,
		r.OrderProfitAmount, r.TotalCost, r.ActualUnitCost,

		r.IsProfitBleeder, r.MarkupPct, r.MarginLeakagePct,
		r.PriceSegment, r.TradeRoute,
		r.StateOrderCount, r.StateDensityClass,
	}
}
