package datagen

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pgEdge/pgedge-silverpipe/internal/bronze"
	"github.com/pgEdge/pgedge-silverpipe/internal/dims"
	"github.com/pgEdge/pgedge-silverpipe/internal/pipeline"
)

func seedConfig(root string) SeedConfig {
	return SeedConfig{
		BronzeDir: filepath.Join(root, "bronze"),
		DimPaths: dims.Paths{
			Geo:         filepath.Join(root, "silver", "dim_geo.parquet"),
			CustomerGeo: filepath.Join(root, "silver", "dim_customer_geo.parquet"),
			Product:     filepath.Join(root, "silver", "dim_product.parquet"),
		},
		Files: 2,
		Rows:  200,
		Seed:  42,
	}
}

func TestSeedWritesFixtures(t *testing.T) {
	root := t.TempDir()
	cfg := seedConfig(root)

	if err := Seed(cfg); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}

	files, err := filepath.Glob(filepath.Join(cfg.BronzeDir, "*.csv"))
	if err != nil {
		t.Fatalf("globbing bronze dir: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 bronze files, got %d", len(files))
	}

	if _, err := dims.Load(cfg.DimPaths); err != nil {
		t.Errorf("Generated dimension files do not load: %v", err)
	}
}

func TestSeedOutputFlowsThroughPipeline(t *testing.T) {
	root := t.TempDir()
	cfg := seedConfig(root)

	if err := Seed(cfg); err != nil {
		t.Fatalf("Seed returned error: %v", err)
	}

	table, err := bronze.ReadCSV(filepath.Join(cfg.BronzeDir, "orders_batch_001.csv"))
	if err != nil {
		t.Fatalf("reading generated file: %v", err)
	}
	if len(table.Rows) != cfg.Rows {
		t.Errorf("Expected %d raw rows, got %d", cfg.Rows, len(table.Rows))
	}

	recs, stats, err := pipeline.Clean(table)
	if err != nil {
		t.Fatalf("Clean rejected generated data: %v", err)
	}
	if stats.DuplicatesDropped == 0 {
		t.Error("Generated data should contain injected duplicates")
	}
	if stats.InvalidDates == 0 {
		t.Error("Generated data should contain injected invalid dates")
	}
	if len(recs) == 0 {
		t.Fatal("Clean dropped every generated row")
	}

	dimSet, err := dims.Load(cfg.DimPaths)
	if err != nil {
		t.Fatalf("loading generated dimensions: %v", err)
	}
	recs = pipeline.Window(pipeline.Classify(pipeline.Derive(recs)))
	enriched, err := pipeline.Enrich(recs, dimSet)
	if err != nil {
		t.Fatalf("Enrich returned error: %v", err)
	}

	matched := 0
	for _, r := range enriched {
		if r.GeoID != nil {
			matched++
		}
	}
	if matched == 0 {
		t.Error("No generated row matched the geography dimension")
	}
}

func TestSeedIsReproducible(t *testing.T) {
	var outputs [][]byte
	for i := 0; i < 2; i++ {
		root := t.TempDir()
		cfg := seedConfig(root)
		if err := Seed(cfg); err != nil {
			t.Fatalf("Seed returned error: %v", err)
		}
		data, err := os.ReadFile(filepath.Join(cfg.BronzeDir, "orders_batch_001.csv"))
		if err != nil {
			t.Fatalf("reading generated file: %v", err)
		}
		outputs = append(outputs, data)
	}

	if !bytes.Equal(outputs[0], outputs[1]) {
		t.Error("Same seed produced different bronze files")
	}
}

func TestFakerRanges(t *testing.T) {
	f := NewFakerWithSeed(7)

	for i := 0; i < 100; i++ {
		if q := f.Quantity(); q < 1 || q > 5 {
			t.Fatalf("Quantity out of range: %d", q)
		}
		if p := f.Price(); p < 5 || p > 500 {
			t.Fatalf("Price out of range: %v", p)
		}
		if d := f.DiscountRate(); d < 0 || d > 0.25 {
			t.Fatalf("DiscountRate out of range: %v", d)
		}
		if r := f.ProfitRatio(); r < -0.3 || r > 0.5 {
			t.Fatalf("ProfitRatio out of range: %v", r)
		}
		scheduled, real := f.ShippingDays()
		if scheduled < 0 || real < 0 {
			t.Fatalf("Negative shipping days: %d, %d", scheduled, real)
		}
	}
}

func TestFakerRegionMatchesMarket(t *testing.T) {
	f := NewFakerWithSeed(7)

	for i := 0; i < 50; i++ {
		market := f.Market()
		region := f.Region(market)
		if region == "" {
			t.Fatalf("Empty region for market %q", market)
		}
	}
}
