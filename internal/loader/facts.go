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
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/pgedge-silverpipe/internal/archive"
	"github.com/pgEdge/pgedge-silverpipe/internal/logging"
	"github.com/pgEdge/pgedge-silverpipe/internal/silver"
)

// FactsConfig holds configuration for the Silver to warehouse fact load.
type FactsConfig struct {
	SilverDir  string
	ArchiveDir string
	FactTable  string
	ChunkSize  int

	// Now supplies archive timestamps. Defaults to time.Now.
	Now func() time.Time
}

// FactsSummary reports the outcome of a fact load run.
type FactsSummary struct {
	Files  int
	Loaded int
	Failed int
	Rows   int64
}

// LoadFacts discovers Fact_*.parquet files under the Silver root, appends
// each into the warehouse fact table under the strict column contract, and
// archives successfully loaded files. A failing file is logged and skipped;
// the load continues with the next file.
func LoadFacts(ctx context.Context, pool *pgxpool.Pool, cfg FactsConfig) (FactsSummary, error) {
	if cfg.ChunkSize < 1 {
		cfg.ChunkSize = 10000
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	var sum FactsSummary

	files, err := filepath.Glob(filepath.Join(cfg.SilverDir, "Fact_*.parquet"))
	if err != nil {
		return sum, fmt.Errorf("discovering fact files: %w", err)
	}
	sum.Files = len(files)

	if len(files) == 0 {
		logging.Info().Msg("No fact parquet files found to load")
		return sum, nil
	}

	logging.Info().
		Int("files", len(files)).
		Str("table", cfg.FactTable).
		Msg("Starting fact load")

	for _, path := range files {
		rows, err := loadFactFile(ctx, pool, cfg, path)
		if err != nil {
			sum.Failed++
			logging.Error().
				Str("file", filepath.Base(path)).
				Err(err).
				Msg("Skipping file")
			continue
		}

		// Archive only after the append committed; the LOADED_ prefix keeps
		// warehouse-loaded artifacts apart from process archives.
		archivePath, err := archive.MovePrefixed(path, cfg.ArchiveDir, "LOADED_", cfg.Now())
		if err != nil {
			sum.Failed++
			logging.Error().
				Str("file", filepath.Base(path)).
				Err(err).
				Msg("Loaded but failed to archive")
			continue
		}

		sum.Loaded++
		sum.Rows += rows
		logging.Info().
			Str("file", filepath.Base(path)).
			Int64("rows", rows).
			Str("archived_as", filepath.Base(archivePath)).
			Msg("Loaded file")
	}

	logging.Info().
		Int("loaded", sum.Loaded).
		Int("failed", sum.Failed).
		Int64("rows", sum.Rows).
		Msg("Fact load complete")

	return sum, nil
}

func loadFactFile(ctx context.Context, pool *pgxpool.Pool, cfg FactsConfig, path string) (int64, error) {
	rows, err := silver.Read(path)
	if err != nil {
		return 0, err
	}

	var total int64
	for start := 0; start < len(rows); start += cfg.ChunkSize {
		end := min(start+cfg.ChunkSize, len(rows))
		chunk := rows[start:end]

		n, err := pool.CopyFrom(ctx,
			pgx.Identifier{cfg.FactTable},
			silver.StrictColumns,
			pgx.CopyFromSlice(len(chunk), func(i int) ([]any, error) {
				return silver.StrictValues(chunk[i]), nil
			}),
		)
		if err != nil {
			return total, fmt.Errorf("appending into %s: %w", cfg.FactTable, err)
		}
		total += n
	}
	return total, nil
}
