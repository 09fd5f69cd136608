package workbook

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/noah-isme/freight-quoter/internal/tariff"
)

func TestDiscoverFindsWorkbook(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "notes.txt")
	touch(t, dir, "~$tarifa.xlsx")
	touch(t, dir, "tarifa.XLSX")

	path, err := Discover(dir)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if filepath.Base(path) != "tarifa.XLSX" {
		t.Fatalf("unexpected workbook %s", path)
	}
}

func TestDiscoverDeterministicOrder(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.xlsx")
	touch(t, dir, "a.xlsx")

	path, err := Discover(dir)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if filepath.Base(path) != "a.xlsx" {
		t.Fatalf("expected lexicographically first workbook, got %s", path)
	}
}

func TestDiscoverNoSource(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "readme.md")

	_, err := Discover(dir)
	if !errors.Is(err, tariff.ErrSourceNotFound) {
		t.Fatalf("expected ErrSourceNotFound, got %v", err)
	}
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
		t.Fatal(err)
	}
}
