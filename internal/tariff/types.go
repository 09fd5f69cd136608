package tariff

import (
	"sort"
	"strings"
	"time"
)

// CountryInfo holds per-destination metadata parsed from the country sheet.
type CountryInfo struct {
	Name         string
	RequiresMaut bool
	MautPercent  float64
	FuelPercent  float64
	// Extra carries columns the engine does not interpret, keyed by
	// normalized header name.
	Extra map[string]string
}

// RateRow is one tariff line for a (country, zip prefix) lane. Several rows
// may share the same lane when the carrier publishes service variants.
type RateRow struct {
	Country           string
	ZipPrefix         string
	ZoneCode          string
	DepartureSchedule string
	TransitTime       string
	HazmatVariant     bool
	DeliveryVariant   bool
	// Fee fields keep the raw cell text. Spreadsheet data entry is
	// inconsistent, so parsing happens at surcharge time with a zero
	// fallback instead of failing the load.
	HazmatFee      string
	AppointmentFee string
	HandlingFee    string
}

type bracketRow struct {
	Ceiling float64
	Prices  map[string]float64
}

// PriceTable maps ascending weight-bracket ceilings to per-zone base prices.
type PriceTable struct {
	rows  []bracketRow
	zones map[string]struct{}
}

// Brackets returns the bracket ceilings in ascending order.
func (t *PriceTable) Brackets() []float64 {
	out := make([]float64, 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, r.Ceiling)
	}
	return out
}

// HasZone reports whether the table carries a price column for the zone.
func (t *PriceTable) HasZone(zone string) bool {
	_, ok := t.zones[zone]
	return ok
}

// MaxBracket returns the largest bracket ceiling, or 0 for an empty table.
func (t *PriceTable) MaxBracket() float64 {
	if len(t.rows) == 0 {
		return 0
	}
	return t.rows[len(t.rows)-1].Ceiling
}

// Dataset is one immutable load of the tariff workbook. It is shared
// read-only across quote computations and replaced wholesale on reload.
type Dataset struct {
	Countries []CountryInfo
	Rates     []RateRow
	Prices    *PriceTable
	LoadedAt  time.Time

	byCountry map[string]CountryInfo
}

// Country looks up country metadata by name. The name is trimmed and
// upper-cased before the lookup.
func (d *Dataset) Country(name string) (CountryInfo, bool) {
	info, ok := d.byCountry[NormalizeCountry(name)]
	return info, ok
}

// CountryNames returns the known destination countries in sorted order.
func (d *Dataset) CountryNames() []string {
	names := make([]string, 0, len(d.byCountry))
	for name := range d.byCountry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RoutesFor returns every rate row for the lane in dataset order.
func (d *Dataset) RoutesFor(country, zipPrefix string) []RateRow {
	country = NormalizeCountry(country)
	zipPrefix = NormalizeZip(zipPrefix)
	var out []RateRow
	for _, row := range d.Rates {
		if row.Country == country && row.ZipPrefix == zipPrefix {
			out = append(out, row)
		}
	}
	return out
}

// ShipmentRequest describes one quote attempt.
type ShipmentRequest struct {
	Country     string
	ZipPrefix   string
	Hazmat      bool
	Delivery    bool
	Appointment bool
	Length      float64
	Width       float64
	Height      float64
	UnitWeight  float64
	Quantity    int
}

// SurchargeLine is one itemized entry in a quote breakdown. Informational
// lines carry a zero amount.
type SurchargeLine struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Quote is the result of a successful price resolution.
type Quote struct {
	BasePrice         float64         `json:"basePrice"`
	TotalPrice        float64         `json:"totalPrice"`
	BillableWeight    float64         `json:"billableWeight"`
	BracketKg         float64         `json:"bracketKg"`
	ZoneCode          string          `json:"zoneCode"`
	DepartureSchedule string          `json:"departureSchedule,omitempty"`
	TransitTime       string          `json:"transitTime,omitempty"`
	Lines             []SurchargeLine `json:"lines"`
}

// NormalizeCountry trims and upper-cases a country name for use as a key.
func NormalizeCountry(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// NormalizeZip coerces a zip prefix to its canonical 2-character form:
// trailing ".0" artifacts from numeric coercion are stripped and the value
// is left-padded with zeros. Normalization is idempotent.
func NormalizeZip(zip string) string {
	zip = strings.TrimSpace(zip)
	zip = strings.TrimSuffix(zip, ".0")
	for len(zip) < 2 {
		zip = "0" + zip
	}
	return zip
}
