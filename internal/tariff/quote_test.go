package tariff

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func fixtureDataset(t *testing.T) *Dataset {
	t.Helper()
	ds, err := Load(fixtureWorkbook())
	require.NoError(t, err)
	return ds
}

func eurPallet(country, zip string) ShipmentRequest {
	return ShipmentRequest{
		Country:    country,
		ZipPrefix:  zip,
		Length:     1.2,
		Width:      0.8,
		Height:     1.0,
		UnitWeight: 200,
		Quantity:   1,
	}
}

func TestQuoteNoExtras(t *testing.T) {
	ds := fixtureDataset(t)

	quote, err := ComputeQuote(ds, eurPallet("FRANCE", "75"))
	require.NoError(t, err)

	// max(200, 0.96 m3 * 333) = 319.68 kg -> 500 kg bracket in Z1.
	require.InDelta(t, 319.68, quote.BillableWeight, 1e-9)
	require.Equal(t, float64(500), quote.BracketKg)
	require.Equal(t, "Z1", quote.ZoneCode)
	require.Equal(t, float64(130), quote.BasePrice)
	require.Equal(t, quote.BasePrice, quote.TotalPrice)
	require.Empty(t, quote.Lines)
	require.Equal(t, "Tue/Thu", quote.DepartureSchedule)
	require.Equal(t, "48-72h", quote.TransitTime)
}

func TestQuoteMautCountry(t *testing.T) {
	ds := fixtureDataset(t)

	quote, err := ComputeQuote(ds, eurPallet("GERMANY", "10"))
	require.NoError(t, err)

	require.Equal(t, float64(160), quote.BasePrice) // Z2, 500 kg bracket
	require.InDelta(t, 160+160*0.15+12, quote.TotalPrice, 1e-9)
	require.Len(t, quote.Lines, 2)
	require.Equal(t, "MAUT (15.0%)", quote.Lines[0].Label)
	require.Equal(t, "Handling fee", quote.Lines[1].Label)
}

func TestQuoteHazmatWithoutVariantRow(t *testing.T) {
	ds := fixtureDataset(t)

	req := eurPallet("SPAIN", "05")
	req.Hazmat = true
	quote, err := ComputeQuote(ds, req)
	require.NoError(t, err)

	require.Len(t, quote.Lines, 1)
	require.Equal(t, float64(0), quote.Lines[0].Amount)
	require.Equal(t, quote.BasePrice, quote.TotalPrice)
}

func TestQuoteHazmatVariantSwitchesRow(t *testing.T) {
	ds := fixtureDataset(t)

	req := eurPallet("FRANCE", "75")
	req.Hazmat = true
	quote, err := ComputeQuote(ds, req)
	require.NoError(t, err)

	require.Equal(t, "Z2", quote.ZoneCode)
	require.Equal(t, float64(160), quote.BasePrice)
	require.Len(t, quote.Lines, 1)
	require.Contains(t, quote.Lines[0].Label, "included")
}

func TestQuoteWeightOutOfRange(t *testing.T) {
	ds := fixtureDataset(t)

	req := eurPallet("FRANCE", "75")
	req.Quantity = 10 // 3196.8 kg billable, beyond the 1000 kg top bracket
	_, err := ComputeQuote(ds, req)

	var oor *WeightOutOfRangeError
	require.ErrorAs(t, err, &oor)
	require.Equal(t, float64(1000), oor.MaxBracket)
}

func TestQuoteNoTariffForRoute(t *testing.T) {
	ds := fixtureDataset(t)

	_, err := ComputeQuote(ds, eurPallet("FRANCE", "99"))
	var notFound *NoTariffForRouteError
	require.ErrorAs(t, err, &notFound)
}

func TestQuoteUnknownZone(t *testing.T) {
	ds := fixtureDataset(t)

	_, err := ComputeQuote(ds, eurPallet("PORTUGAL", "40"))
	var unknown *UnknownZoneError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "Z9", unknown.Zone)
}

func TestQuoteAppointmentWithoutDefinedFee(t *testing.T) {
	ds := fixtureDataset(t)

	req := eurPallet("SPAIN", "5")
	req.Appointment = true
	quote, err := ComputeQuote(ds, req)
	require.NoError(t, err)

	require.Len(t, quote.Lines, 1)
	require.Equal(t, float64(0), quote.Lines[0].Amount)
	require.Contains(t, quote.Lines[0].Label, "no defined fee")
}

func TestQuoteInvalidInput(t *testing.T) {
	ds := fixtureDataset(t)

	cases := []struct {
		name   string
		mutate func(*ShipmentRequest)
	}{
		{"empty zip", func(r *ShipmentRequest) { r.ZipPrefix = "" }},
		{"empty country", func(r *ShipmentRequest) { r.Country = "" }},
		{"unknown country", func(r *ShipmentRequest) { r.Country = "ATLANTIS" }},
		{"zero quantity", func(r *ShipmentRequest) { r.Quantity = 0 }},
		{"negative height", func(r *ShipmentRequest) { r.Height = -1 }},
		{"negative weight", func(r *ShipmentRequest) { r.UnitWeight = -5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := eurPallet("FRANCE", "75")
			tc.mutate(&req)
			_, err := ComputeQuote(ds, req)
			var invalid *InvalidInputError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidInputError, got %v", err)
			}
		})
	}
}
