//-------------------------------------------------------------------------
//
// pgEdge Silver Pipeline
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package pipeline

import "strings"

// Classify assigns the categorical segment labels. Every classifier is a
// pure function of already-derived fields; conditions are evaluated top to
// bottom and the first match wins.
func Classify(in []Record) []Record {
	out := make([]Record, len(in))
	for i, r := range in {
		r.DeliveryClass = deliveryClass(r.ShippingDelta)
		r.ShippingModeClean = shippingModeClean(r.DaysShipmentScheduled)
		r.DayName = r.OrderDate.Weekday().String()
		r.OrderDayType = orderDayType(r.DayName)
		r.PriceSegment = priceSegment(r.Price)
		r.TradeRoute = tradeRoute(r.CustomerCountry, r.CustomerState, r.OrderCountry)
		out[i] = r
	}
	return out
}

func deliveryClass(shippingDelta int32) string {
	switch {
	case shippingDelta < 0:
		return "Early"
	case shippingDelta == 0:
		return "On Time"
	default:
		return "Late"
	}
}

func shippingModeClean(scheduledDays int32) string {
	switch {
	case scheduledDays == 0:
		return "Same Day"
	case scheduledDays <= 2:
		return "First Class"
	case scheduledDays == 3:
		return "Second Class"
	default:
		return "Standard Class"
	}
}

func orderDayType(dayName string) string {
	if dayName == "Saturday" || dayName == "Sunday" {
		return "Weekend"
	}
	return "Weekday"
}

func priceSegment(price float64) string {
	switch {
	case price < 60:
		return "Budget"
	case price <= 250:
		return "Mainstream"
	default:
		return "Premium"
	}
}

// tradeRoute concatenates the normalized customer origin with the order
// destination country.
func tradeRoute(customerCountry, customerState, orderCountry string) string {
	return normalizeCountry(customerCountry) + "_" + customerState + " -> " + orderCountry
}

// normalizeCountry rewrites the one known locale variant spelling of the
// United States; every other value passes through unchanged.
func normalizeCountry(country string) string {
	return strings.Replace(country, "EE. UU.", "USA", 1)
}
