package archive

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestName(t *testing.T) {
	at := time.Date(2026, 8, 31, 14, 5, 9, 0, time.UTC)

	tests := []struct {
		source string
		want   string
	}{
		{"orders_batch_001.csv", "orders_batch_001_20260831_140509.csv"},
		{"/data/bronze/orders_batch_002.csv", "orders_batch_002_20260831_140509.csv"},
		{"Fact_orders_batch_001.parquet", "Fact_orders_batch_001_20260831_140509.parquet"},
		{"no_extension", "no_extension_20260831_140509"},
	}

	for _, tt := range tests {
		if got := Name(tt.source, at); got != tt.want {
			t.Errorf("Name(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestMoveRelocatesSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "orders.csv")
	if err := os.WriteFile(src, []byte("header\nrow\n"), 0o644); err != nil {
		t.Fatalf("writing source: %v", err)
	}
	archiveDir := filepath.Join(dir, "archive")
	at := time.Date(2026, 8, 31, 14, 5, 9, 0, time.UTC)

	dst, err := Move(src, archiveDir, at)
	if err != nil {
		t.Fatalf("Move returned error: %v", err)
	}
	want := filepath.Join(archiveDir, "orders_20260831_140509.csv")
	if dst != want {
		t.Errorf("Destination = %q, want %q", dst, want)
	}

	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("Source file still exists after move")
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("reading archived file: %v", err)
	}
	if string(data) != "header\nrow\n" {
		t.Errorf("Archived content = %q", data)
	}
}

func TestMovePrefixed(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Fact_orders.parquet")
	if err := os.WriteFile(src, []byte("PAR1"), 0o644); err != nil {
		t.Fatalf("writing source: %v", err)
	}
	at := time.Date(2026, 8, 31, 14, 5, 9, 0, time.UTC)

	dst, err := MovePrefixed(src, filepath.Join(dir, "archive"), "LOADED_", at)
	if err != nil {
		t.Fatalf("MovePrefixed returned error: %v", err)
	}
	if filepath.Base(dst) != "LOADED_Fact_orders_20260831_140509.parquet" {
		t.Errorf("Destination name = %q", filepath.Base(dst))
	}
}

func TestMoveMissingSourceFails(t *testing.T) {
	dir := t.TempDir()
	_, err := Move(filepath.Join(dir, "absent.csv"), filepath.Join(dir, "archive"), time.Now())
	if err == nil {
		t.Fatal("Expected error for a missing source file")
	}
}

func TestMoveCreatesArchiveDir(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "orders.csv")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatalf("writing source: %v", err)
	}

	nested := filepath.Join(dir, "a", "b", "archive")
	if _, err := Move(src, nested, time.Now()); err != nil {
		t.Fatalf("Move returned error: %v", err)
	}
}
