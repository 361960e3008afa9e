package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-silverpipe/internal/db"
	"github.com/pgEdge/pgedge-silverpipe/internal/dims"
	"github.com/pgEdge/pgedge-silverpipe/internal/loader"
	"github.com/pgEdge/pgedge-silverpipe/internal/logging"
)

var (
	loadSilver  string
	loadArchive string
	loadTable   string

	initDropExisting bool
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Append Silver fact parquet files into the warehouse",
	Long: `Discover Fact_*.parquet files under the Silver root, project each to
the strict warehouse column contract, append into the fact table and archive
the loaded files. A failing file is skipped and the load continues.

Example:
  pgedge-silverpipe load --connection "postgres://..."`,
	RunE: runLoad,
}

var dimsCmd = &cobra.Command{
	Use:   "dims",
	Short: "Append the curated dimension tables into the warehouse",
	RunE:  runDims,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the warehouse star schema",
	Long: `Create the fact and dimension tables plus the metadata table in the
warehouse database. Appending commands never create tables themselves.

Example:
  pgedge-silverpipe init --connection "postgres://..."`,
	RunE: runWarehouseInit,
}

func init() {
	loadCmd.Flags().StringVar(&loadSilver, "silver", "",
		"Silver root containing Fact_*.parquet files")
	loadCmd.Flags().StringVar(&loadArchive, "archive", "",
		"archive root for loaded fact files")
	loadCmd.Flags().StringVar(&loadTable, "table", "",
		"warehouse fact table name")

	initCmd.Flags().BoolVar(&initDropExisting, "drop-existing", false,
		"drop existing warehouse tables before creation")
}

func runLoad(cmd *cobra.Command, args []string) error {
	if loadSilver != "" {
		cfg.Paths.Silver = loadSilver
	}
	if loadArchive != "" {
		cfg.Paths.ArchiveSilver = loadArchive
	}
	if loadTable != "" {
		cfg.Load.FactTable = loadTable
	}

	if err := cfg.ValidateLoad(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to warehouse: %w", err)
	}
	defer pool.Close()

	if exists, err := db.MetadataExists(ctx, pool); err == nil && !exists {
		return fmt.Errorf("warehouse has not been initialized; run 'pgedge-silverpipe init' first")
	}

	sum, err := loader.LoadFacts(ctx, pool, loader.FactsConfig{
		SilverDir:  cfg.Paths.Silver,
		ArchiveDir: cfg.Paths.ArchiveSilver,
		FactTable:  cfg.Load.FactTable,
		ChunkSize:  cfg.Load.ChunkSize,
	})
	if err != nil {
		return err
	}
	if sum.Failed > 0 {
		logging.Warn().
			Int("failed", sum.Failed).
			Msg("Some fact files were not loaded; they remain in the Silver root")
	}
	return nil
}

func runDims(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateLoad(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to warehouse: %w", err)
	}
	defer pool.Close()

	return loader.LoadDimensions(ctx, pool, dims.Paths{
		Geo:         cfg.Paths.DimGeo,
		CustomerGeo: cfg.Paths.DimCustomerGeo,
		Product:     cfg.Paths.DimProduct,
	})
}

func runWarehouseInit(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateLoad(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to warehouse: %w", err)
	}
	defer pool.Close()

	if initDropExisting {
		logging.Warn().Msg("Dropping existing warehouse tables")
		if err := loader.DropSchema(ctx, pool); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
		if err := db.DropMetadata(ctx, pool); err != nil {
			logging.Debug().Err(err).Msg("No metadata table to drop")
		}
	}

	logging.Info().Msg("Creating warehouse schema")
	if err := loader.CreateSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := db.SaveMetadata(ctx, pool, cfg.Load.FactTable); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	logging.Info().
		Str("fact_table", cfg.Load.FactTable).
		Msg("Warehouse initialization complete")
	return nil
}
