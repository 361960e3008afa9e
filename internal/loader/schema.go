//-------------------------------------------------------------------------
//
// pgEdge Silver Pipeline
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package loader appends Silver layer data into the PostgreSQL warehouse.
//
// The loaders carry no business logic: the fact loader enforces the strict
// column contract and appends, the dimension loader appends the three
// curated dimension tables as-is.
package loader

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema SQL for the warehouse star schema.
const createSchemaSQL = `
-- Order geography dimension
CREATE TABLE IF NOT EXISTS dim_geo (
    geo_id          INTEGER PRIMARY KEY,
    order_state     TEXT NOT NULL,
    order_country   TEXT NOT NULL,
    order_region    TEXT NOT NULL,
    market          TEXT NOT NULL,
    UNIQUE (order_state, order_country, order_region, market)
);

-- Customer geography dimension
CREATE TABLE IF NOT EXISTS dim_customer_geo (
    customer_geo_id  INTEGER PRIMARY KEY,
    customer_state   TEXT NOT NULL,
    customer_country TEXT NOT NULL,
    UNIQUE (customer_state, customer_country)
);

-- Product dimension
CREATE TABLE IF NOT EXISTS dim_product (
    product_key     INTEGER PRIMARY KEY,
    product_name    TEXT NOT NULL,
    category_name   TEXT NOT NULL,
    department_name TEXT NOT NULL,
    UNIQUE (product_name, category_name, department_name)
);

-- Fact table, append-only
CREATE TABLE IF NOT EXISTS fact_sales (
    geo_id                      INTEGER,
    customer_geo_id             INTEGER,
    product_key                 INTEGER,

    order_year                  INTEGER NOT NULL,
    order_month                 INTEGER NOT NULL,
    order_day                   INTEGER NOT NULL,
    day_name_str                TEXT NOT NULL,
    order_day_type              TEXT NOT NULL,

    type                        TEXT NOT NULL,
    days_for_shipping_real      INTEGER NOT NULL,
    days_for_shipment_scheduled INTEGER NOT NULL,
    shipping_delta              INTEGER NOT NULL,
    delivery_class              TEXT NOT NULL,
    shipping_mode_clean         TEXT NOT NULL,
    order_status                TEXT NOT NULL,
    customer_segment            TEXT NOT NULL,

    order_item_quantity         INTEGER NOT NULL,
    order_item_product_price    DOUBLE PRECISION NOT NULL,
    order_item_discount_rate    DOUBLE PRECISION NOT NULL,
    order_item_profit_ratio     DOUBLE PRECISION NOT NULL,
    gross_sales                 DOUBLE PRECISION NOT NULL,
    discount_amount             DOUBLE PRECISION NOT NULL,
    net_revenue                 DOUBLE PRECISION NOT NULL,
    order_profit_amount         DOUBLE PRECISION NOT NULL,
    total_cost                  DOUBLE PRECISION NOT NULL,
    actual_unit_cost            DOUBLE PRECISION NOT NULL,

    is_profit_bleeder           BOOLEAN NOT NULL,
    markup_pct                  DOUBLE PRECISION NOT NULL,
    margin_leakage_pct          DOUBLE PRECISION NOT NULL,
    price_segment               TEXT NOT NULL,
    trade_route                 TEXT NOT NULL,
    state_order_count           BIGINT NOT NULL,
    state_density_class         TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_fact_sales_date
    ON fact_sales (order_year, order_month, order_day);
`

const dropSchemaSQL = `
DROP TABLE IF EXISTS fact_sales;
DROP TABLE IF EXISTS dim_geo;
DROP TABLE IF EXISTS dim_customer_geo;
DROP TABLE IF EXISTS dim_product;
`

// CreateSchema creates the warehouse tables.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, createSchemaSQL)
	return err
}

// DropSchema drops the warehouse tables.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, dropSchemaSQL)
	return err
}
