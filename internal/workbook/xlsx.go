// Package workbook adapts xlsx files on disk to the tariff.Workbook
// interface consumed by the loader.
package workbook

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	excelize "github.com/xuri/excelize/v2"

	"github.com/noah-isme/freight-quoter/internal/tariff"
)

// File is an open xlsx workbook.
type File struct {
	f *excelize.File
}

// Open reads an xlsx file from disk.
func Open(path string) (*File, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &File{f: f}, nil
}

// SheetNames lists the workbook's sheets in file order.
func (w *File) SheetNames() []string {
	return w.f.GetSheetList()
}

// Rows returns every row of a sheet as raw cell text.
func (w *File) Rows(sheet string) ([][]string, error) {
	return w.f.GetRows(sheet)
}

// Close releases the underlying file.
func (w *File) Close() error {
	return w.f.Close()
}

// Discover returns the path of the first .xlsx file in dir, mirroring the
// tariff desk convention of dropping a single workbook into the data
// directory. Returns tariff.ErrSourceNotFound when none is present.
func Discover(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("scan workbook dir %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "~$") {
			// Office lock files.
			continue
		}
		if strings.EqualFold(filepath.Ext(name), ".xlsx") {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", tariff.ErrSourceNotFound
	}
	sort.Strings(names)
	return filepath.Join(dir, names[0]), nil
}
