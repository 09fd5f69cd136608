package tariff

import "strings"

// Workbook abstracts named-sheet access over whatever produced the raw data
// (an xlsx file in production, an in-memory fixture in tests).
type Workbook interface {
	SheetNames() []string
	Rows(sheet string) ([][]string, error)
}

// headerScanLimit bounds how many leading rows are searched for a header
// marker. Spreadsheet authors put titles and notes above the real header, but
// never this many.
const headerScanLimit = 20

// findHeaderRow scans the leading rows of a sheet for a cell containing any
// of the marker tokens, case-insensitive. It returns the index of the first
// matching row.
func findHeaderRow(rows [][]string, markers ...string) (int, bool) {
	limit := len(rows)
	if limit > headerScanLimit {
		limit = headerScanLimit
	}
	for i := 0; i < limit; i++ {
		for _, cell := range rows[i] {
			upper := strings.ToUpper(cell)
			for _, marker := range markers {
				if strings.Contains(upper, marker) {
					return i, true
				}
			}
		}
	}
	return 0, false
}
