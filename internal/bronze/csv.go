//-------------------------------------------------------------------------
//
// pgEdge Silver Pipeline
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package bronze reads raw supply chain CSV files from the Bronze layer.
//
// Bronze files are delimited text in Windows-1252 encoding. Reading performs
// no schema validation; the pipeline stages own correctness of individual
// fields.
package bronze

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ErrIngest marks a source file that could not be read or parsed as
// delimited text. Fatal to the file, not to the batch.
var ErrIngest = errors.New("ingest failed")

// Column names of the raw Bronze layout.
const (
	ColType                  = "type"
	ColDaysShippingReal      = "days_for_shipping_real"
	ColDaysShipmentScheduled = "days_for_shipment_scheduled"
	ColOrderStatus           = "order_status"
	ColCustomerSegment       = "customer_segment"
	ColCustomerState         = "customer_state"
	ColCustomerCountry       = "customer_country"
	ColMarket                = "market"
	ColOrderRegion           = "order_region"
	ColOrderState            = "order_state"
	ColOrderCountry          = "order_country"
	ColOrderYear             = "order_year"
	ColOrderMonth            = "order_month"
	ColOrderDay              = "order_day"
	ColOrderDayOfWeek        = "order_dayofweek"
	ColShippingMode          = "shipping_mode"
	ColProductName           = "product_name"
	ColCategoryName          = "category_name"
	ColDepartmentName        = "department_name"
	ColQuantity              = "order_item_quantity"
	ColPrice                 = "order_item_product_price"
	ColDiscountRate          = "order_item_discount_rate"
	ColProfitRatio           = "order_item_profit_ratio"
)

// Columns is the canonical Bronze header order, used by the seed fixture
// generator. Real Bronze files may order columns differently; ingestion is
// header-driven.
var Columns = []string{
	ColType,
	ColDaysShippingReal,
	ColDaysShipmentScheduled,
	ColOrderStatus,
	ColCustomerSegment,
	ColCustomerState,
	ColCustomerCountry,
	ColMarket,
	ColOrderRegion,
	ColOrderState,
	ColOrderCountry,
	ColOrderYear,
	ColOrderMonth,
	ColOrderDay,
	ColOrderDayOfWeek,
	ColShippingMode,
	ColProductName,
	ColCategoryName,
	ColDepartmentName,
	ColQuantity,
	ColPrice,
	ColDiscountRate,
	ColProfitRatio,
}

// Table is an in-memory Bronze table: a header plus one string tuple per
// input line.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// NewTable builds a Table and its column index from a header and rows.
func NewTable(header []string, rows [][]string) *Table {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	return &Table{Header: header, Rows: rows, index: index}
}

// Column returns the index of the named column, or -1 if absent.
func (t *Table) Column(name string) int {
	i, ok := t.index[name]
	if !ok {
		return -1
	}
	return i
}

// ReadCSV reads a Bronze CSV file under Windows-1252 encoding into a Table.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIngest, err)
	}
	defer f.Close()

	decoded := transform.NewReader(f, charmap.Windows1252.NewDecoder())
	r := csv.NewReader(decoded)
	r.FieldsPerRecord = 0 // all records must match the header width

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrIngest, path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s: empty file", ErrIngest, path)
	}

	return NewTable(records[0], records[1:]), nil
}
