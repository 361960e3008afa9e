//-------------------------------------------------------------------------
//
// pgEdge Silver Pipeline
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package archive moves processed source files out of their discovery root.
//
// The move is the sole signal that a file was processed: a re-run finds
// nothing at the original location and performs no duplicate work.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// timestampLayout is embedded in archive file names.
const timestampLayout = "20060102_150405"

// Name returns the archive file name for a source file at a processing time:
// {stem}_{YYYYMMDD_HHMMSS}{ext}.
func Name(sourceFile string, processedAt time.Time) string {
	base := filepath.Base(sourceFile)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return stem + "_" + processedAt.Format(timestampLayout) + ext
}

// Move relocates src into archiveDir under a timestamped name and returns
// the destination path. The file is moved, never copied, via rename, so a
// partially-written file can never appear in the archive directory. Renaming
// across filesystems fails; the source is then left in place, eligible for
// retry.
func Move(src, archiveDir string, processedAt time.Time) (string, error) {
	return MovePrefixed(src, archiveDir, "", processedAt)
}

// MovePrefixed is Move with a name prefix, used by the warehouse loader to
// mark loaded artifacts (LOADED_...).
func MovePrefixed(src, archiveDir, prefix string, processedAt time.Time) (string, error) {
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return "", fmt.Errorf("creating archive dir %s: %w", archiveDir, err)
	}

	dst := filepath.Join(archiveDir, prefix+Name(src, processedAt))
	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("archiving %s: %w", src, err)
	}
	return dst, nil
}
