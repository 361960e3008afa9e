//-------------------------------------------------------------------------
//
// pgEdge Silver Pipeline
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package datagen generates realistic Bronze fixtures for development and
// testing.
package datagen

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// Faker provides supply chain fake data generation using gofakeit.
type Faker struct {
	faker *gofakeit.Faker
}

// NewFaker creates a new Faker with a random seed.
func NewFaker() *Faker {
	return &Faker{
		faker: gofakeit.New(uint64(time.Now().UnixNano())),
	}
}

// NewFakerWithSeed creates a new Faker with a specific seed for
// reproducibility.
func NewFakerWithSeed(seed uint64) *Faker {
	return &Faker{
		faker: gofakeit.New(seed),
	}
}

var (
	markets = []string{"Africa", "Europe", "LATAM", "Pacific Asia", "USCA"}

	regionsByMarket = map[string][]string{
		"Africa":       {"East Africa", "North Africa", "West Africa"},
		"Europe":       {"Northern Europe", "Southern Europe", "Western Europe"},
		"LATAM":        {"Caribbean", "Central America", "South America"},
		"Pacific Asia": {"Oceania", "Southeast Asia", "South Asia"},
		"USCA":         {"Canada", "East of USA", "West of USA"},
	}

	departments = []string{"Apparel", "Fan Shop", "Golf", "Technology"}

	categories = map[string][]string{
		"Fan Shop":   {"Fishing", "Camping & Hiking", "Water Sports"},
		"Apparel":    {"Cleats", "Men's Footwear", "Women's Apparel"},
		"Golf":       {"Golf Balls", "Golf Gloves", "Golf Shoes"},
		"Technology": {"Computers", "Cameras", "Electronics"},
	}

	paymentTypes    = []string{"DEBIT", "TRANSFER", "CASH", "PAYMENT"}
	orderStatuses   = []string{"COMPLETE", "CLOSED", "PENDING", "PENDING_PAYMENT", "PROCESSING"}
	customerSegs    = []string{"Consumer", "Corporate", "Home Office"}
	rawShippingMode = []string{"Standard Class", "Second Class", "First Class", "Same Day"}
)

// City generates a random city name.
func (f *Faker) City() string {
	return f.faker.City()
}

// State generates a random state name.
func (f *Faker) State() string {
	return f.faker.State()
}

// Country generates a random country name.
func (f *Faker) Country() string {
	return f.faker.Country()
}

// ProductName generates a random product name.
func (f *Faker) ProductName() string {
	return f.faker.ProductName()
}

// Market picks a sales market.
func (f *Faker) Market() string {
	return f.faker.RandomString(markets)
}

// Region picks an order region belonging to the given market.
func (f *Faker) Region(market string) string {
	return f.faker.RandomString(regionsByMarket[market])
}

// Department picks a product department.
func (f *Faker) Department() string {
	return f.faker.RandomString(departments)
}

// Category picks a category belonging to the given department.
func (f *Faker) Category(department string) string {
	return f.faker.RandomString(categories[department])
}

// PaymentType picks a raw payment type code.
func (f *Faker) PaymentType() string {
	return f.faker.RandomString(paymentTypes)
}

// OrderStatus picks a raw order status code.
func (f *Faker) OrderStatus() string {
	return f.faker.RandomString(orderStatuses)
}

// CustomerSegment picks a customer segment.
func (f *Faker) CustomerSegment() string {
	return f.faker.RandomString(customerSegs)
}

// RawShippingMode picks a value for the unused shipping_mode source column.
func (f *Faker) RawShippingMode() string {
	return f.faker.RandomString(rawShippingMode)
}

// Quantity generates an order item quantity.
func (f *Faker) Quantity() int {
	return f.faker.Number(1, 5)
}

// Price generates a unit price spanning all three price segments.
func (f *Faker) Price() float64 {
	return f.faker.Price(5, 500)
}

// DiscountRate generates an order discount rate.
func (f *Faker) DiscountRate() float64 {
	return f.faker.Float64Range(0, 0.25)
}

// ProfitRatio generates a profit ratio, occasionally negative so profit
// bleeders appear in fixtures.
func (f *Faker) ProfitRatio() float64 {
	return f.faker.Float64Range(-0.3, 0.5)
}

// ShippingDays generates a (scheduled, real) shipping day pair.
func (f *Faker) ShippingDays() (scheduled, real int) {
	scheduled = f.faker.Number(0, 4)
	real = scheduled + f.faker.Number(-2, 3)
	if real < 0 {
		real = 0
	}
	return scheduled, real
}

// Number generates an integer in [min, max].
func (f *Faker) Number(min, max int) int {
	return f.faker.Number(min, max)
}
