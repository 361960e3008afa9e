//-------------------------------------------------------------------------
//
// pgEdge Silver Pipeline
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package loader

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/parquet-go/parquet-go"

	"github.com/pgEdge/pgedge-silverpipe/internal/dims"
	"github.com/pgEdge/pgedge-silverpipe/internal/logging"
)

// LoadDimensions appends the three curated dimension parquet files into
// their warehouse tables. Continue-on-error per table: a failing dimension
// is logged and skipped.
func LoadDimensions(ctx context.Context, pool *pgxpool.Pool, paths dims.Paths) error {
	var failed int

	if err := loadGeo(ctx, pool, paths.Geo); err != nil {
		failed++
		logging.Error().Str("table", "dim_geo").Err(err).Msg("Skipping dimension")
	}
	if err := loadCustomerGeo(ctx, pool, paths.CustomerGeo); err != nil {
		failed++
		logging.Error().Str("table", "dim_customer_geo").Err(err).Msg("Skipping dimension")
	}
	if err := loadProduct(ctx, pool, paths.Product); err != nil {
		failed++
		logging.Error().Str("table", "dim_product").Err(err).Msg("Skipping dimension")
	}

	if failed > 0 {
		return fmt.Errorf("%d dimension table(s) failed to load", failed)
	}
	logging.Info().Msg("Dimension loading complete")
	return nil
}

func loadGeo(ctx context.Context, pool *pgxpool.Pool, path string) error {
	rows, err := parquet.ReadFile[dims.Geo](path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	n, err := pool.CopyFrom(ctx,
		pgx.Identifier{"dim_geo"},
		[]string{"geo_id", "order_state", "order_country", "order_region", "market"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := rows[i]
			return []any{r.GeoID, r.OrderState, r.OrderCountry, r.OrderRegion, r.Market}, nil
		}),
	)
	if err != nil {
		return err
	}
	logging.Info().Int64("rows", n).Str("table", "dim_geo").Msg("Loaded dimension")
	return nil
}

func loadCustomerGeo(ctx context.Context, pool *pgxpool.Pool, path string) error {
	rows, err := parquet.ReadFile[dims.CustomerGeo](path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	n, err := pool.CopyFrom(ctx,
		pgx.Identifier{"dim_customer_geo"},
		[]string{"customer_geo_id", "customer_state", "customer_country"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := rows[i]
			return []any{r.CustomerGeoID, r.CustomerState, r.CustomerCountry}, nil
		}),
	)
	if err != nil {
		return err
	}
	logging.Info().Int64("rows", n).Str("table", "dim_customer_geo").Msg("Loaded dimension")
	return nil
}

func loadProduct(ctx context.Context, pool *pgxpool.Pool, path string) error {
	rows, err := parquet.ReadFile[dims.Product](path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	n, err := pool.CopyFrom(ctx,
		pgx.Identifier{"dim_product"},
		[]string{"product_key", "product_name", "category_name", "department_name"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := rows[i]
			return []any{r.ProductKey, r.ProductName, r.CategoryName, r.DepartmentName}, nil
		}),
	)
	if err != nil {
		return err
	}
	logging.Info().Int64("rows", n).Str("table", "dim_product").Msg("Loaded dimension")
	return nil
}
