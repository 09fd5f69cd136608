package tariff

// Resolve picks the single rate row that prices a shipment. Candidates are
// the rows matching the lane in dataset order; the first one is the default.
// A requested service replaces the candidate with the first matching variant
// row. Delivery is evaluated after hazmat, so when both variants exist the
// delivery row wins outright. Variants never combine; one row is always the
// pricing basis.
func Resolve(rows []RateRow, country, zipPrefix string, wantHazmat, wantDelivery bool) (RateRow, error) {
	country = NormalizeCountry(country)
	zipPrefix = NormalizeZip(zipPrefix)

	var candidates []RateRow
	for _, row := range rows {
		if row.Country == country && row.ZipPrefix == zipPrefix {
			candidates = append(candidates, row)
		}
	}
	if len(candidates) == 0 {
		return RateRow{}, &NoTariffForRouteError{Country: country, ZipPrefix: zipPrefix}
	}

	resolved := candidates[0]
	if wantHazmat {
		for _, row := range candidates {
			if row.HazmatVariant {
				resolved = row
				break
			}
		}
	}
	if wantDelivery {
		for _, row := range candidates {
			if row.DeliveryVariant {
				resolved = row
				break
			}
		}
	}
	return resolved, nil
}
