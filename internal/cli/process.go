package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-silverpipe/internal/dims"
	"github.com/pgEdge/pgedge-silverpipe/internal/logging"
	"github.com/pgEdge/pgedge-silverpipe/internal/runner"
)

var (
	processBronze  string
	processSilver  string
	processArchive string
	processWorkers int
)

var processCmd = &cobra.Command{
	Use:   "process [file]",
	Short: "Transform Bronze CSV files into Silver parquet fact datasets",
	Long: `Process every CSV file found under the Bronze discovery root (or a
single named file) through the full transformation pipeline and archive the
processed sources. A file that fails is left in place for the next run and
the batch continues.

Example:
  pgedge-silverpipe process
  pgedge-silverpipe process data/bronze/orders_batch_001.csv
  pgedge-silverpipe process --workers 4`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVar(&processBronze, "bronze", "",
		"Bronze discovery root")
	processCmd.Flags().StringVar(&processSilver, "silver", "",
		"Silver destination root")
	processCmd.Flags().StringVar(&processArchive, "archive", "",
		"archive root for processed source files")
	processCmd.Flags().IntVar(&processWorkers, "workers", 0,
		"number of files processed in parallel")
}

func runProcess(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if processBronze != "" {
		cfg.Paths.Bronze = processBronze
	}
	if processSilver != "" {
		cfg.Paths.Silver = processSilver
	}
	if processArchive != "" {
		cfg.Paths.Archive = processArchive
	}
	if processWorkers > 0 {
		cfg.Process.Workers = processWorkers
	}

	if err := cfg.ValidateProcess(); err != nil {
		return err
	}

	r := runner.New(runner.Config{
		BronzeDir:  cfg.Paths.Bronze,
		SilverDir:  cfg.Paths.Silver,
		ArchiveDir: cfg.Paths.Archive,
		Dims: dims.Paths{
			Geo:         cfg.Paths.DimGeo,
			CustomerGeo: cfg.Paths.DimCustomerGeo,
			Product:     cfg.Paths.DimProduct,
		},
		Workers: cfg.Process.Workers,
	})

	// Single file mode shares the per-file pipeline with the batch.
	if len(args) == 1 {
		res := r.ProcessFile(args[0])
		if res.Err != nil {
			return fmt.Errorf("processing %s: %w", args[0], res.Err)
		}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logging.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
	}()

	results, err := r.Run(ctx)
	r.PrintSummary()
	if err != nil {
		return fmt.Errorf("batch aborted: %w", err)
	}

	var skipped int
	for _, res := range results {
		if res.Status == runner.StatusSkipped {
			skipped++
		}
	}
	if skipped > 0 {
		logging.Warn().
			Int("skipped", skipped).
			Msg("Some files were skipped; they remain in the Bronze root for retry")
	}
	return nil
}
