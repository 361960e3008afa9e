//-------------------------------------------------------------------------
//
// pgEdge Silver Pipeline
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/parquet-go/parquet-go"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/pgEdge/pgedge-silverpipe/internal/bronze"
	"github.com/pgEdge/pgedge-silverpipe/internal/dims"
	"github.com/pgEdge/pgedge-silverpipe/internal/logging"
)

// SeedConfig holds configuration for fixture generation.
type SeedConfig struct {
	BronzeDir string
	DimPaths  dims.Paths

	Files int
	Rows  int

	// Seed makes output reproducible when non-zero.
	Seed uint64
}

// Seed writes dimension parquet files and Bronze CSV fixtures that exercise
// the whole pipeline: rows drawn from the dimension domains (plus a few
// that miss, for left join nulls), injected exact duplicates, invalid
// calendar dates, and the EE. UU. country spelling.
func Seed(cfg SeedConfig) error {
	f := NewFaker()
	if cfg.Seed != 0 {
		f = NewFakerWithSeed(cfg.Seed)
	}

	geo, customer, product := buildDimensions(f)
	if err := writeDimensions(cfg.DimPaths, geo, customer, product); err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.BronzeDir, 0o755); err != nil {
		return fmt.Errorf("creating bronze dir: %w", err)
	}

	for i := 0; i < cfg.Files; i++ {
		name := fmt.Sprintf("orders_batch_%03d.csv", i+1)
		path := filepath.Join(cfg.BronzeDir, name)
		if err := writeBronzeFile(f, path, cfg.Rows, geo, customer, product); err != nil {
			return err
		}
		logging.Info().Str("file", name).Int("rows", cfg.Rows).Msg("Wrote bronze fixture")
	}

	logging.Info().
		Int("files", cfg.Files).
		Str("bronze", cfg.BronzeDir).
		Msg("Seeding complete")
	return nil
}

func buildDimensions(f *Faker) ([]dims.Geo, []dims.CustomerGeo, []dims.Product) {
	geo := make([]dims.Geo, 0, 12)
	for i := 0; i < 12; i++ {
		market := f.Market()
		geo = append(geo, dims.Geo{
			GeoID:        int32(i + 1),
			OrderState:   f.State(),
			OrderCountry: f.Country(),
			OrderRegion:  f.Region(market),
			Market:       market,
		})
	}

	customer := make([]dims.CustomerGeo, 0, 8)
	for i := 0; i < 8; i++ {
		country := f.Country()
		if i == 0 {
			// Keep the locale variant spelling in play so trade route
			// normalization is exercised end to end.
			country = "EE. UU."
		}
		customer = append(customer, dims.CustomerGeo{
			CustomerGeoID:   int32(i + 1),
			CustomerState:   f.State(),
			CustomerCountry: country,
		})
	}

	product := make([]dims.Product, 0, 20)
	for i := 0; i < 20; i++ {
		department := f.Department()
		product = append(product, dims.Product{
			ProductKey:     int32(i + 1),
			ProductName:    f.ProductName(),
			CategoryName:   f.Category(department),
			DepartmentName: department,
		})
	}

	return geo, customer, product
}

func writeDimensions(paths dims.Paths, geo []dims.Geo, customer []dims.CustomerGeo, product []dims.Product) error {
	for _, dir := range []string{paths.Geo, paths.CustomerGeo, paths.Product} {
		if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
			return fmt.Errorf("creating dimension dir: %w", err)
		}
	}
	if err := parquet.WriteFile(paths.Geo, geo); err != nil {
		return fmt.Errorf("writing geo dimension: %w", err)
	}
	if err := parquet.WriteFile(paths.CustomerGeo, customer); err != nil {
		return fmt.Errorf("writing customer geo dimension: %w", err)
	}
	if err := parquet.WriteFile(paths.Product, product); err != nil {
		return fmt.Errorf("writing product dimension: %w", err)
	}
	return nil
}

func writeBronzeFile(f *Faker, path string, rows int, geo []dims.Geo, customer []dims.CustomerGeo, product []dims.Product) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	// Bronze files are Windows-1252 on the wire.
	w := csv.NewWriter(transform.NewWriter(out, charmap.Windows1252.NewEncoder()))

	if err := w.Write(bronze.Columns); err != nil {
		out.Close()
		return err
	}

	var prev []string
	for i := 0; i < rows; i++ {
		var row []string
		switch {
		case prev != nil && i%25 == 0:
			// Exact duplicate, dropped by dedup.
			row = prev
		default:
			row = bronzeRow(f, geo, customer, product, i%40 == 13)
		}
		if err := w.Write(row); err != nil {
			out.Close()
			return err
		}
		prev = row
	}

	w.Flush()
	if err := w.Error(); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return out.Close()
}

func bronzeRow(f *Faker, geo []dims.Geo, customer []dims.CustomerGeo, product []dims.Product, invalidDate bool) []string {
	g := geo[f.Number(0, len(geo)-1)]
	c := customer[f.Number(0, len(customer)-1)]
	p := product[f.Number(0, len(product)-1)]

	// A slice of rows misses the dimensions on purpose (left join nulls).
	if f.Number(1, 20) == 1 {
		g.OrderState = f.State()
	}
	if f.Number(1, 20) == 1 {
		p.ProductName = f.ProductName()
	}

	year := f.Number(2015, 2017)
	month := f.Number(1, 12)
	day := f.Number(1, 28)
	if invalidDate {
		month = 13
	}
	date := time.Date(year, time.Month(month%13), max(day, 1), 0, 0, 0, 0, time.UTC)

	scheduled, real := f.ShippingDays()

	return []string{
		f.PaymentType(),
		strconv.Itoa(real),
		strconv.Itoa(scheduled),
		f.OrderStatus(),
		f.CustomerSegment(),
		c.CustomerState,
		c.CustomerCountry,
		g.Market,
		g.OrderRegion,
		g.OrderState,
		g.OrderCountry,
		strconv.Itoa(year),
		strconv.Itoa(month),
		strconv.Itoa(day),
		strconv.Itoa(int(date.Weekday())),
		f.RawShippingMode(),
		p.ProductName,
		p.CategoryName,
		p.DepartmentName,
		strconv.Itoa(f.Quantity()),
		strconv.FormatFloat(f.Price(), 'f', 2, 64),
		strconv.FormatFloat(f.DiscountRate(), 'f', 4, 64),
		strconv.FormatFloat(f.ProfitRatio(), 'f', 4, 64),
	}
}
