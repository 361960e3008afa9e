//-------------------------------------------------------------------------
//
// pgEdge Silver Pipeline
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for pgedge-silverpipe.
// Configuration is loaded from config files and CLI flags (no environment
// variables). CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for pgedge-silverpipe.
type Config struct {
	// Connection is the PostgreSQL connection string for the warehouse.
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Paths holds the data lake zone layout.
	Paths PathsConfig `mapstructure:"paths"`

	// Process holds configuration for the process subcommand.
	Process ProcessConfig `mapstructure:"process"`

	// Load holds configuration for the load subcommand.
	Load LoadConfig `mapstructure:"load"`

	// Seed holds configuration for the seed subcommand.
	Seed SeedConfig `mapstructure:"seed"`
}

// PathsConfig holds the data lake zone and dimension table locations.
type PathsConfig struct {
	// Bronze is the discovery root for raw CSV input files.
	Bronze string `mapstructure:"bronze"`

	// Silver is the destination root for fact parquet artifacts.
	Silver string `mapstructure:"silver"`

	// Archive is where processed Bronze source files are moved.
	Archive string `mapstructure:"archive"`

	// ArchiveSilver is where warehouse-loaded fact files are moved.
	ArchiveSilver string `mapstructure:"archive_silver"`

	// DimGeo, DimCustomerGeo and DimProduct are the pre-built dimension
	// parquet files.
	DimGeo         string `mapstructure:"dim_geo"`
	DimCustomerGeo string `mapstructure:"dim_customer_geo"`
	DimProduct     string `mapstructure:"dim_product"`
}

// ProcessConfig holds configuration for Bronze to Silver processing.
type ProcessConfig struct {
	// Workers is the number of files processed in parallel.
	Workers int `mapstructure:"workers"`
}

// LoadConfig holds configuration for the Silver to warehouse load.
type LoadConfig struct {
	// FactTable is the warehouse fact table name.
	FactTable string `mapstructure:"fact_table"`

	// ChunkSize is the number of rows appended per batch.
	ChunkSize int `mapstructure:"chunk_size"`
}

// SeedConfig holds configuration for Bronze fixture generation.
type SeedConfig struct {
	// Files is the number of Bronze CSV files to generate.
	Files int `mapstructure:"files"`

	// Rows is the number of rows per generated file.
	Rows int `mapstructure:"rows"`

	// Seed makes generation reproducible when non-zero.
	Seed uint64 `mapstructure:"seed"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Paths: PathsConfig{
			Bronze:         "data/bronze",
			Silver:         "data/silver",
			Archive:        "data/archive",
			ArchiveSilver:  "data/archive_silver",
			DimGeo:         "data/silver/dim_geo.parquet",
			DimCustomerGeo: "data/silver/dim_customer_geo.parquet",
			DimProduct:     "data/silver/dim_product.parquet",
		},
		Process: ProcessConfig{
			Workers: 1,
		},
		Load: LoadConfig{
			FactTable: "fact_sales",
			ChunkSize: 10000,
		},
		Seed: SeedConfig{
			Files: 3,
			Rows:  500,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./pgedge-silverpipe.yaml
// 3. ~/.config/pgedge-silverpipe/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("pgedge-silverpipe")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pgedge-silverpipe"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// ValidateProcess checks configuration required for the process command.
func (c *Config) ValidateProcess() error {
	if c.Paths.Bronze == "" {
		return fmt.Errorf("bronze path is required")
	}
	if c.Paths.Silver == "" {
		return fmt.Errorf("silver path is required")
	}
	if c.Paths.Archive == "" {
		return fmt.Errorf("archive path is required")
	}
	if c.Paths.DimGeo == "" || c.Paths.DimCustomerGeo == "" || c.Paths.DimProduct == "" {
		return fmt.Errorf("all three dimension table paths are required")
	}
	if c.Process.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	return nil
}

// ValidateLoad checks configuration required for the load and dims commands.
func (c *Config) ValidateLoad() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	if c.Load.FactTable == "" {
		return fmt.Errorf("fact table name is required")
	}
	if c.Load.ChunkSize < 1 {
		return fmt.Errorf("chunk_size must be at least 1")
	}
	return nil
}

// ValidateSeed checks configuration required for the seed command.
func (c *Config) ValidateSeed() error {
	if c.Paths.Bronze == "" {
		return fmt.Errorf("bronze path is required")
	}
	if c.Seed.Files < 1 {
		return fmt.Errorf("files must be at least 1")
	}
	if c.Seed.Rows < 1 {
		return fmt.Errorf("rows must be at least 1")
	}
	return nil
}
