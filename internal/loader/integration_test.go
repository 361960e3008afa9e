//go:build integration
// +build integration

// Integration tests for the warehouse loader.
// Run with: go test -tags=integration ./internal/loader/...
// Requires PostgreSQL to be available.
// Set SILVERPIPE_TEST_CONN environment variable to override connection string.

package loader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/pgEdge/pgedge-silverpipe/internal/db"
	"github.com/pgEdge/pgedge-silverpipe/internal/dims"
	"github.com/pgEdge/pgedge-silverpipe/internal/loader"
	"github.com/pgEdge/pgedge-silverpipe/internal/silver"
	"github.com/pgEdge/pgedge-silverpipe/internal/testutil"
)

func TestWarehouseLoadIntegration(t *testing.T) {
	baseConnStr := testutil.SkipIfNoPostgres(t)
	testConnStr := testutil.CreateTestDB(t, baseConnStr)

	ctx := context.Background()
	pool, err := db.Connect(ctx, testConnStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(pool.Close)

	root := t.TempDir()
	silverDir := filepath.Join(root, "silver")
	archiveDir := filepath.Join(root, "archive_silver")
	if err := os.MkdirAll(silverDir, 0o755); err != nil {
		t.Fatalf("creating silver dir: %v", err)
	}

	dimPaths := dims.Paths{
		Geo:         filepath.Join(silverDir, "dim_geo.parquet"),
		CustomerGeo: filepath.Join(silverDir, "dim_customer_geo.parquet"),
		Product:     filepath.Join(silverDir, "dim_product.parquet"),
	}

	// Test 1: Create schema
	t.Run("CreateSchema", func(t *testing.T) {
		if err := loader.CreateSchema(ctx, pool); err != nil {
			t.Fatalf("CreateSchema failed: %v", err)
		}
		if err := db.SaveMetadata(ctx, pool, "fact_sales"); err != nil {
			t.Fatalf("SaveMetadata failed: %v", err)
		}
	})

	// Test 2: Load dimensions from parquet
	t.Run("LoadDimensions", func(t *testing.T) {
		geo := []dims.Geo{
			{GeoID: 1, OrderState: "San Salvador", OrderCountry: "El Salvador", OrderRegion: "Caribbean", Market: "LATAM"},
		}
		customer := []dims.CustomerGeo{
			{CustomerGeoID: 10, CustomerState: "PR", CustomerCountry: "EE. UU."},
		}
		product := []dims.Product{
			{ProductKey: 100, ProductName: "Smart watch", CategoryName: "Sporting Goods", DepartmentName: "Fan Shop"},
		}
		if err := parquet.WriteFile(dimPaths.Geo, geo); err != nil {
			t.Fatalf("writing geo fixture: %v", err)
		}
		if err := parquet.WriteFile(dimPaths.CustomerGeo, customer); err != nil {
			t.Fatalf("writing customer geo fixture: %v", err)
		}
		if err := parquet.WriteFile(dimPaths.Product, product); err != nil {
			t.Fatalf("writing product fixture: %v", err)
		}

		if err := loader.LoadDimensions(ctx, pool, dimPaths); err != nil {
			t.Fatalf("LoadDimensions failed: %v", err)
		}

		var count int
		if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM dim_geo").Scan(&count); err != nil {
			t.Fatalf("counting dim_geo: %v", err)
		}
		if count != 1 {
			t.Errorf("dim_geo has %d rows, want 1", count)
		}
	})

	// Test 3: Load facts with a small chunk size to exercise chunking
	t.Run("LoadFacts", func(t *testing.T) {
		geoID := int32(1)
		rows := make([]silver.FactRow, 7)
		for i := range rows {
			rows[i] = silver.FactRow{
				GeoID:      &geoID,
				OrderYear:  2016,
				OrderMonth: 6,
				OrderDay:   int32(i + 1),
				DayNameStr: "Monday",
				Type:       "DEBIT",
				Quantity:   1,
				Price:      19.99,
				TradeRoute: "USA_PR -> El Salvador",
			}
		}
		artifact := filepath.Join(silverDir, "Fact_orders_batch_001.parquet")
		if err := silver.Write(artifact, rows); err != nil {
			t.Fatalf("writing fact fixture: %v", err)
		}

		sum, err := loader.LoadFacts(ctx, pool, loader.FactsConfig{
			SilverDir:  silverDir,
			ArchiveDir: archiveDir,
			FactTable:  "fact_sales",
			ChunkSize:  3,
			Now:        func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) },
		})
		if err != nil {
			t.Fatalf("LoadFacts failed: %v", err)
		}
		if sum.Loaded != 1 || sum.Rows != 7 {
			t.Errorf("Summary = %+v, want 1 file and 7 rows loaded", sum)
		}

		var count int
		if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM fact_sales").Scan(&count); err != nil {
			t.Fatalf("counting fact_sales: %v", err)
		}
		if count != 7 {
			t.Errorf("fact_sales has %d rows, want 7", count)
		}

		// The artifact moved under the LOADED_ prefix.
		if _, err := os.Stat(artifact); !os.IsNotExist(err) {
			t.Error("Loaded artifact should have been archived")
		}
		archived, err := filepath.Glob(filepath.Join(archiveDir, "LOADED_Fact_*.parquet"))
		if err != nil || len(archived) != 1 {
			t.Errorf("Expected 1 archived artifact, got %v (err=%v)", archived, err)
		}
	})

	// Test 4: A second load pass finds nothing pending
	t.Run("Idempotent", func(t *testing.T) {
		sum, err := loader.LoadFacts(ctx, pool, loader.FactsConfig{
			SilverDir:  silverDir,
			ArchiveDir: archiveDir,
			FactTable:  "fact_sales",
		})
		if err != nil {
			t.Fatalf("LoadFacts failed: %v", err)
		}
		if sum.Files != 0 {
			t.Errorf("Second pass found %d files, want 0", sum.Files)
		}
	})
}
