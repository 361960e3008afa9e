//-------------------------------------------------------------------------
//
// pgEdge Silver Pipeline
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for pgedge-silverpipe.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-silverpipe/internal/config"
	"github.com/pgEdge/pgedge-silverpipe/internal/logging"
	"github.com/pgEdge/pgedge-silverpipe/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "pgedge-silverpipe",
		Short: "Bronze to Silver batch ETL for supply chain fact data",
		Long: `pgedge-silverpipe is a CLI tool that turns raw Bronze layer CSV files
into validated, enriched, star-schema-ready Silver parquet datasets, and
appends the result into a PostgreSQL warehouse.

Processing validates order dates, removes duplicates, derives financial and
operational metrics, computes group-relative shares, joins the curated
dimension tables, and archives each source file so repeated runs never
double-process data. A single file's failure never aborts the batch.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./pgedge-silverpipe.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string for the warehouse")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(dimsCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(seedCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}
