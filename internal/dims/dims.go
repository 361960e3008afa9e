//-------------------------------------------------------------------------
//
// pgEdge Silver Pipeline
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package dims loads the curated star schema dimension tables.
//
// Dimension tables are externally owned, pre-built parquet files mapping a
// natural key tuple to a surrogate key. They are read-only to the pipeline
// and safe to share across concurrent file workers.
package dims

import (
	"fmt"

	"github.com/parquet-go/parquet-go"
)

// Geo is one row of the order geography dimension.
type Geo struct {
	GeoID        int32  `parquet:"geo_id"`
	OrderState   string `parquet:"order_state"`
	OrderCountry string `parquet:"order_country"`
	OrderRegion  string `parquet:"order_region"`
	Market       string `parquet:"market"`
}

// CustomerGeo is one row of the customer geography dimension.
type CustomerGeo struct {
	CustomerGeoID   int32  `parquet:"customer_geo_id"`
	CustomerState   string `parquet:"customer_state"`
	CustomerCountry string `parquet:"customer_country"`
}

// Product is one row of the product dimension.
type Product struct {
	ProductKey     int32  `parquet:"product_key"`
	ProductName    string `parquet:"product_name"`
	CategoryName   string `parquet:"category_name"`
	DepartmentName string `parquet:"department_name"`
}

// Paths locates the three dimension parquet files.
type Paths struct {
	Geo         string
	CustomerGeo string
	Product     string
}

type geoKey struct {
	state, country, region, market string
}

type customerKey struct {
	state, country string
}

type productKey struct {
	product, category, department string
}

// Set holds the three dimension tables as unique-keyed lookup maps.
type Set struct {
	geo      map[geoKey]int32
	customer map[customerKey]int32
	product  map[productKey]int32
}

// Load reads all three dimension tables.
func Load(paths Paths) (*Set, error) {
	geoRows, err := parquet.ReadFile[Geo](paths.Geo)
	if err != nil {
		return nil, fmt.Errorf("reading geo dimension %s: %w", paths.Geo, err)
	}
	customerRows, err := parquet.ReadFile[CustomerGeo](paths.CustomerGeo)
	if err != nil {
		return nil, fmt.Errorf("reading customer geo dimension %s: %w", paths.CustomerGeo, err)
	}
	productRows, err := parquet.ReadFile[Product](paths.Product)
	if err != nil {
		return nil, fmt.Errorf("reading product dimension %s: %w", paths.Product, err)
	}

	s := &Set{
		geo:      make(map[geoKey]int32, len(geoRows)),
		customer: make(map[customerKey]int32, len(customerRows)),
		product:  make(map[productKey]int32, len(productRows)),
	}
	for _, r := range geoRows {
		s.geo[geoKey{r.OrderState, r.OrderCountry, r.OrderRegion, r.Market}] = r.GeoID
	}
	for _, r := range customerRows {
		s.customer[customerKey{r.CustomerState, r.CustomerCountry}] = r.CustomerGeoID
	}
	for _, r := range productRows {
		s.product[productKey{r.ProductName, r.CategoryName, r.DepartmentName}] = r.ProductKey
	}
	return s, nil
}

// FromRows builds a Set from in-memory dimension rows. Used by tests and by
// the seed generator, which writes the same rows to parquet.
func FromRows(geo []Geo, customer []CustomerGeo, product []Product) *Set {
	s := &Set{
		geo:      make(map[geoKey]int32, len(geo)),
		customer: make(map[customerKey]int32, len(customer)),
		product:  make(map[productKey]int32, len(product)),
	}
	for _, r := range geo {
		s.geo[geoKey{r.OrderState, r.OrderCountry, r.OrderRegion, r.Market}] = r.GeoID
	}
	for _, r := range customer {
		s.customer[customerKey{r.CustomerState, r.CustomerCountry}] = r.CustomerGeoID
	}
	for _, r := range product {
		s.product[productKey{r.ProductName, r.CategoryName, r.DepartmentName}] = r.ProductKey
	}
	return s
}

// LookupGeo resolves the order geography surrogate key.
func (s *Set) LookupGeo(state, country, region, market string) (int32, bool) {
	id, ok := s.geo[geoKey{state, country, region, market}]
	return id, ok
}

// LookupCustomerGeo resolves the customer geography surrogate key.
func (s *Set) LookupCustomerGeo(state, country string) (int32, bool) {
	id, ok := s.customer[customerKey{state, country}]
	return id, ok
}

// LookupProduct resolves the product surrogate key.
func (s *Set) LookupProduct(product, category, department string) (int32, bool) {
	id, ok := s.product[productKey{product, category, department}]
	return id, ok
}
