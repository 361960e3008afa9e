//-------------------------------------------------------------------------
//
// pgEdge Silver Pipeline
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package pipeline implements the Bronze to Silver transformation stages.
//
// A file's rows flow through Clean, Derive, Classify, Window and Enrich in
// that order. Each stage takes the fully materialized output of its
// predecessor and returns a new slice; no field is recomputed outside the
// stage that owns it. Window aggregates and joins need whole-table
// visibility, so there is no streaming variant.
package pipeline

import (
	"errors"
	"time"
)

// Stage failure sentinels, matched by the run coordinator to classify
// per-file outcomes.
var (
	// ErrBind marks a missing required raw field or a type mismatch while
	// binding Bronze rows to typed records. Fatal to the file.
	ErrBind = errors.New("record binding failed")

	// ErrEnrich marks a dimension enrichment anomaly. Fatal to the file.
	ErrEnrich = errors.New("enrichment failed")
)

// Record is one fact row as it moves through the pipeline. Raw fields are
// bound by Clean; derived fields are populated by the later stages.
type Record struct {
	// Retained raw fields.
	Type                  string
	DaysShippingReal      int32
	DaysShipmentScheduled int32
	OrderStatus           string
	CustomerSegment       string
	CustomerState         string
	CustomerCountry       string
	Market                string
	OrderRegion           string
	OrderState            string
	OrderCountry          string
	OrderYear             int32
	OrderMonth            int32
	OrderDay              int32
	ProductName           string
	CategoryName          string
	DepartmentName        string
	Quantity              int32
	Price                 float64
	DiscountRate          float64
	ProfitRatio           float64

	// OrderDate is the calendar date reconstructed from the year/month/day
	// parts during validation.
	OrderDate time.Time

	// Derived financial fields.
	GrossSales        float64
	DiscountAmount    float64
	NetRevenue        float64
	OrderProfitAmount float64
	TotalCost         float64
	ActualUnitCost    float64
	MarkupPct         float64
	MarginLeakagePct  float64

	// Derived operational fields.
	IsProfitBleeder   bool
	ShippingDelta     int32
	DeliveryClass     string
	ShippingModeClean string

	// Derived strategic fields.
	DayName           string
	OrderDayType      string
	PriceSegment      string
	TradeRoute        string
	CategorySharePct  float64
	MarketSharePct    float64
	StateOrderCount   int64
	StateDensityClass string

	// Surrogate keys attached by dimension enrichment. Nil when the fact
	// row had no dimension match (left join semantics).
	GeoID         *int32
	CustomerGeoID *int32
	ProductKey    *int32
}
