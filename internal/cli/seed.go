package cli

import (
	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-silverpipe/internal/datagen"
	"github.com/pgEdge/pgedge-silverpipe/internal/dims"
)

var (
	seedFiles int
	seedRows  int
	seedSeed  uint64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate Bronze CSV fixtures and dimension tables",
	Long: `Generate realistic Bronze layer CSV files plus matching dimension
parquet files for development and testing. Fixtures include duplicate rows,
invalid calendar dates and rows without a dimension match, so a processing
run exercises every data quality path.

Example:
  pgedge-silverpipe seed --files 5 --rows 1000 --seed 42`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&seedFiles, "files", 0,
		"number of Bronze files to generate")
	seedCmd.Flags().IntVar(&seedRows, "rows", 0,
		"rows per generated file")
	seedCmd.Flags().Uint64Var(&seedSeed, "seed", 0,
		"random seed for reproducible output (0 = random)")
}

func runSeed(cmd *cobra.Command, args []string) error {
	if seedFiles > 0 {
		cfg.Seed.Files = seedFiles
	}
	if seedRows > 0 {
		cfg.Seed.Rows = seedRows
	}
	if seedSeed != 0 {
		cfg.Seed.Seed = seedSeed
	}

	if err := cfg.ValidateSeed(); err != nil {
		return err
	}

	return datagen.Seed(datagen.SeedConfig{
		BronzeDir: cfg.Paths.Bronze,
		DimPaths: dims.Paths{
			Geo:         cfg.Paths.DimGeo,
			CustomerGeo: cfg.Paths.DimCustomerGeo,
			Product:     cfg.Paths.DimProduct,
		},
		Files: cfg.Seed.Files,
		Rows:  cfg.Seed.Rows,
		Seed:  cfg.Seed.Seed,
	})
}
