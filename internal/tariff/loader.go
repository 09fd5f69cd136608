package tariff

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Sheet and column names as published in the carrier workbook. Column
// positions move between revisions, so headers are located by content and
// matched by normalized name.
const (
	SheetCountries = "DATOS"
	SheetRates     = "SALIDAS EXPORT"

	colCountryList = "PAISES"
	colCountry     = "PAIS"
	colZip         = "ZIP CODE"
	colZone        = "AUXILIAR"
	colWeight      = "KILOS"
	colMaut        = "MAUT"
	colMautPct     = "MAUD %"
	colFuel        = "GASOIL"
	colHazmat      = "ADR"
	colHazmatFee   = "T.ADR"
	colDelivery    = "ENTREGA"
	colAppointment = "T.CITA"
	colTax         = "TASA"
	colDeparture   = "SALIDAS"
	colTransit     = "TRANSIT TIME"
	colArrival     = "LLEGADA"

	markerYes = "SI"
)

// Load parses the two tariff sheets out of a workbook and builds an immutable
// dataset. It is a pure function of the workbook contents; repeated calls
// with the same source yield the same dataset.
func Load(wb Workbook) (*Dataset, error) {
	countryRows, err := sheetRows(wb, SheetCountries)
	if err != nil {
		return nil, err
	}
	headerIdx, ok := findHeaderRow(countryRows, colCountryList)
	if !ok {
		return nil, &HeaderNotFoundError{Sheet: SheetCountries, Marker: colCountryList}
	}
	countries := buildCountries(newTable(countryRows, headerIdx))

	rateRows, err := sheetRows(wb, SheetRates)
	if err != nil {
		return nil, err
	}
	headerIdx, ok = findHeaderRow(rateRows, colZip, colZone)
	if !ok {
		return nil, &HeaderNotFoundError{Sheet: SheetRates, Marker: colZip}
	}
	rates := newTable(rateRows, headerIdx)

	ds := &Dataset{
		Countries: countries,
		Rates:     buildRates(rates),
		Prices:    buildPrices(rates),
		LoadedAt:  time.Now(),
		byCountry: make(map[string]CountryInfo, len(countries)),
	}
	for _, c := range countries {
		if _, exists := ds.byCountry[c.Name]; !exists {
			ds.byCountry[c.Name] = c
		}
	}
	return ds, nil
}

func sheetRows(wb Workbook, name string) ([][]string, error) {
	actual := ""
	for _, s := range wb.SheetNames() {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			actual = s
			break
		}
	}
	if actual == "" {
		return nil, &SheetMissingError{Sheet: name}
	}
	rows, err := wb.Rows(actual)
	if err != nil {
		return nil, &MalformedSourceError{Sheet: name, Err: err}
	}
	return rows, nil
}

// table indexes sheet records by normalized, aliased column name. The first
// occurrence wins when headers collide after normalization.
type table struct {
	cols    map[string]int
	order   []string
	records [][]string
}

func newTable(rows [][]string, headerIdx int) *table {
	t := &table{cols: make(map[string]int)}
	header := rows[headerIdx]
	for i, name := range header {
		normalized := aliasColumn(strings.ToUpper(strings.TrimSpace(name)))
		if normalized == "" {
			continue
		}
		if _, exists := t.cols[normalized]; !exists {
			t.cols[normalized] = i
			t.order = append(t.order, normalized)
		}
	}
	t.records = rows[headerIdx+1:]
	return t
}

// aliasColumn tolerates inconsistent spreadsheet naming by folding known
// variants onto canonical column names.
func aliasColumn(name string) string {
	switch {
	case strings.Contains(name, "CITA"):
		return colAppointment
	case strings.Contains(name, "TASA"):
		return colTax
	case strings.Contains(name, "ENTREGA"):
		return colDelivery
	}
	return name
}

func (t *table) has(col string) bool {
	_, ok := t.cols[col]
	return ok
}

func (t *table) cell(record []string, col string) string {
	idx, ok := t.cols[col]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func buildCountries(t *table) []CountryInfo {
	var out []CountryInfo
	for _, rec := range t.records {
		name := NormalizeCountry(t.cell(rec, colCountryList))
		if name == "" {
			continue
		}
		info := CountryInfo{
			Name:         name,
			RequiresMaut: isMarkerSet(t.cell(rec, colMaut)),
		}
		if v, ok := parseNumber(t.cell(rec, colMautPct)); ok {
			info.MautPercent = NormalizePercent(v)
		}
		if v, ok := parseNumber(t.cell(rec, colFuel)); ok {
			info.FuelPercent = NormalizePercent(v)
		}
		for _, col := range t.order {
			switch col {
			case colCountryList, colMaut, colMautPct, colFuel:
				continue
			}
			if v := t.cell(rec, col); v != "" {
				if info.Extra == nil {
					info.Extra = make(map[string]string)
				}
				info.Extra[col] = v
			}
		}
		out = append(out, info)
	}
	return out
}

func buildRates(t *table) []RateRow {
	keyCols := make([]string, 0, 3)
	for _, col := range []string{colCountry, colZip, colZone} {
		if t.has(col) {
			keyCols = append(keyCols, col)
		}
	}
	var out []RateRow
	for _, rec := range t.records {
		missing := false
		for _, col := range keyCols {
			if t.cell(rec, col) == "" {
				missing = true
				break
			}
		}
		if missing {
			continue
		}
		row := RateRow{
			Country:           NormalizeCountry(t.cell(rec, colCountry)),
			ZipPrefix:         NormalizeZip(t.cell(rec, colZip)),
			ZoneCode:          t.cell(rec, colZone),
			DepartureSchedule: t.cell(rec, colDeparture),
			TransitTime:       t.cell(rec, colTransit),
			HazmatVariant:     isMarkerSet(t.cell(rec, colHazmat)),
			DeliveryVariant:   isMarkerSet(t.cell(rec, colDelivery)),
			HazmatFee:         t.cell(rec, colHazmatFee),
			AppointmentFee:    t.cell(rec, colAppointment),
			HandlingFee:       t.cell(rec, colTax),
		}
		if row.TransitTime == "" {
			row.TransitTime = t.cell(rec, colArrival)
		}
		out = append(out, row)
	}
	return out
}

// buildPrices extracts the weight-bracket price matrix from the rate sheet.
// Rows without a numeric weight are excluded rather than failing the load.
func buildPrices(t *table) *PriceTable {
	pt := &PriceTable{zones: make(map[string]struct{})}
	if !t.has(colWeight) {
		return pt
	}
	for _, col := range t.order {
		if col != colWeight {
			pt.zones[col] = struct{}{}
		}
	}
	seen := make(map[float64]struct{})
	for _, rec := range t.records {
		ceiling, ok := parseNumber(t.cell(rec, colWeight))
		if !ok {
			continue
		}
		if _, dup := seen[ceiling]; dup {
			continue
		}
		seen[ceiling] = struct{}{}
		prices := make(map[string]float64)
		for _, col := range t.order {
			if col == colWeight {
				continue
			}
			if v, numeric := parseNumber(t.cell(rec, col)); numeric {
				prices[col] = v
			}
		}
		pt.rows = append(pt.rows, bracketRow{Ceiling: ceiling, Prices: prices})
	}
	sort.SliceStable(pt.rows, func(i, j int) bool { return pt.rows[i].Ceiling < pt.rows[j].Ceiling })
	return pt
}

func isMarkerSet(cell string) bool {
	return strings.ToUpper(strings.TrimSpace(cell)) == markerYes
}

// parseNumber coerces a cell to a float, tolerating a decimal comma. It
// reports false for empty or non-numeric text.
func parseNumber(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, false
	}
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
