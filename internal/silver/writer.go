//-------------------------------------------------------------------------
//
// pgEdge Silver Pipeline
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package silver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// ErrWrite marks an unwritable Silver destination. Fatal to the file; the
// source must not be archived when the write did not complete.
var ErrWrite = errors.New("silver write failed")

// ArtifactName returns the deterministic Silver artifact name for a Bronze
// source file.
func ArtifactName(sourceFile string) string {
	base := filepath.Base(sourceFile)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return "Fact_" + stem + ".parquet"
}

// Write persists fact rows as a snappy-compressed parquet file and syncs it
// to stable storage before returning. Archival of the source file must only
// happen after Write returns nil.
func Write(path string, rows []FactRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	w := parquet.NewGenericWriter[FactRow](f, parquet.Compression(&parquet.Snappy))
	if _, err := w.Write(rows); err != nil {
		f.Close()
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	return nil
}

// Read loads a Silver fact artifact.
func Read(path string) ([]FactRow, error) {
	rows, err := parquet.ReadFile[FactRow](path)
	if err != nil {
		return nil, fmt.Errorf("reading fact file %s: %w", path, err)
	}
	return rows, nil
}
