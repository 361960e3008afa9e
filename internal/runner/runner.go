//-------------------------------------------------------------------------
//
// pgEdge Silver Pipeline
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package runner coordinates the Bronze to Silver batch.
package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pgEdge/pgedge-silverpipe/internal/archive"
	"github.com/pgEdge/pgedge-silverpipe/internal/bronze"
	"github.com/pgEdge/pgedge-silverpipe/internal/dims"
	"github.com/pgEdge/pgedge-silverpipe/internal/logging"
	"github.com/pgEdge/pgedge-silverpipe/internal/pipeline"
	"github.com/pgEdge/pgedge-silverpipe/internal/silver"
)

// Config holds configuration for a batch run.
type Config struct {
	BronzeDir  string
	SilverDir  string
	ArchiveDir string
	Dims       dims.Paths

	// Workers is the number of files processed concurrently. Files never
	// share mutable state; the dimension set is read-only.
	Workers int

	// Now supplies archive timestamps. Defaults to time.Now.
	Now func() time.Time
}

// Status is the terminal state of a file's processing state machine.
type Status int

const (
	// StatusArchived: the Silver artifact was written and the source moved
	// to the archive.
	StatusArchived Status = iota

	// StatusSkipped: a stage failed; the source was left in place for retry
	// on the next run.
	StatusSkipped
)

// String returns the status label used in log output.
func (s Status) String() string {
	if s == StatusArchived {
		return "archived"
	}
	return "skipped"
}

// FileResult is the outcome of processing one Bronze file. The coordinator
// branches on this value; no stage failure escapes the per-file boundary.
type FileResult struct {
	File              string
	Status            Status
	Rows              int
	InvalidDates      int
	DuplicatesDropped int
	OutputPath        string
	ArchivePath       string
	Err               error
}

// Runner executes the per-file pipeline over a discovery root.
type Runner struct {
	cfg Config

	dimsOnce sync.Once
	dimSet   *dims.Set
	dimsErr  error

	processed atomic.Int64
	archived  atomic.Int64
	skipped   atomic.Int64
	totalRows atomic.Int64
	startTime time.Time
}

// New creates a Runner.
func New(cfg Config) *Runner {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Runner{cfg: cfg}
}

// Discover lists the pending Bronze CSV files in deterministic order.
func (r *Runner) Discover() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(r.cfg.BronzeDir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("discovering bronze files: %w", err)
	}
	return files, nil
}

// Run processes every discovered file, isolating failures per file: a
// failing file is logged and skipped, and the batch continues. Results are
// returned in discovery order.
func (r *Runner) Run(ctx context.Context) ([]FileResult, error) {
	r.startTime = time.Now()

	files, err := r.Discover()
	if err != nil {
		return nil, err
	}

	logging.Info().
		Int("files", len(files)).
		Str("bronze", r.cfg.BronzeDir).
		Msg("Starting batch processing")

	if len(files) == 0 {
		return nil, nil
	}

	results := make([]FileResult, len(files))

	var wg sync.WaitGroup
	work := make(chan int)

	for w := 0; w < r.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				results[i] = r.ProcessFile(files[i])
			}
		}()
	}

	for i := range files {
		select {
		case <-ctx.Done():
			close(work)
			wg.Wait()
			return results, ctx.Err()
		case work <- i:
		}
	}
	close(work)
	wg.Wait()

	return results, nil
}

// ProcessFile runs one file through ingest, clean, derive, classify, window,
// enrich, write and archive. Any failure produces a skipped result with the
// source untouched; the Silver artifact is durably written before the source
// is archived.
func (r *Runner) ProcessFile(path string) FileResult {
	res := FileResult{File: path, Status: StatusSkipped}
	r.processed.Add(1)

	table, err := bronze.ReadCSV(path)
	if err != nil {
		return r.failed(res, err)
	}

	recs, stats, err := pipeline.Clean(table)
	if err != nil {
		return r.failed(res, err)
	}
	res.InvalidDates = stats.InvalidDates
	res.DuplicatesDropped = stats.DuplicatesDropped
	if stats.DuplicatesDropped > 0 {
		logging.Info().
			Str("file", filepath.Base(path)).
			Int("dropped", stats.DuplicatesDropped).
			Msg("Dropped duplicate rows")
	}

	recs = pipeline.Derive(recs)
	recs = pipeline.Classify(recs)
	recs = pipeline.Window(recs)

	dimSet, err := r.dimensions()
	if err != nil {
		return r.failed(res, fmt.Errorf("%w: %v", pipeline.ErrEnrich, err))
	}
	recs, err = pipeline.Enrich(recs, dimSet)
	if err != nil {
		return r.failed(res, err)
	}

	rows := silver.FromRecords(recs)
	silver.Sort(rows)

	res.OutputPath = filepath.Join(r.cfg.SilverDir, silver.ArtifactName(path))
	if err := silver.Write(res.OutputPath, rows); err != nil {
		return r.failed(res, err)
	}
	res.Rows = len(rows)

	archivePath, err := archive.Move(path, r.cfg.ArchiveDir, r.cfg.Now())
	if err != nil {
		// Output exists but the source stays put; the next run rewrites the
		// same artifact and retries the move.
		return r.failed(res, err)
	}
	res.ArchivePath = archivePath
	res.Status = StatusArchived

	r.archived.Add(1)
	r.totalRows.Add(int64(len(rows)))

	logging.Info().
		Str("file", filepath.Base(path)).
		Int("rows", res.Rows).
		Int("invalid_dates", res.InvalidDates).
		Int("duplicates", res.DuplicatesDropped).
		Str("output", filepath.Base(res.OutputPath)).
		Str("archived_as", filepath.Base(archivePath)).
		Msg("Processed file")

	return res
}

// dimensions loads the dimension set once per run and shares it across
// workers. A load failure is remembered and fails each file that needs it,
// so the batch still walks every file.
func (r *Runner) dimensions() (*dims.Set, error) {
	r.dimsOnce.Do(func() {
		r.dimSet, r.dimsErr = dims.Load(r.cfg.Dims)
	})
	return r.dimSet, r.dimsErr
}

func (r *Runner) failed(res FileResult, err error) FileResult {
	res.Err = err
	r.skipped.Add(1)
	logging.Error().
		Str("file", filepath.Base(res.File)).
		Err(err).
		Msg("Skipping file and continuing batch")
	return res
}

// PrintSummary logs batch totals.
func (r *Runner) PrintSummary() {
	logging.Info().
		Int64("files", r.processed.Load()).
		Int64("archived", r.archived.Load()).
		Int64("skipped", r.skipped.Load()).
		Int64("rows", r.totalRows.Load()).
		Dur("elapsed", time.Since(r.startTime)).
		Msg("Batch processing complete")
}
