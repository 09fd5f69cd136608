package tariff

// BasePrice resolves a billable weight to the cheapest bracket at or above it
// and returns that bracket's price for the zone along with the bracket
// ceiling used. Bracket rows missing a price for the zone are skipped in
// favour of the next ceiling up.
func (t *PriceTable) BasePrice(billableWeight float64, zone string) (price, ceiling float64, err error) {
	if !t.HasZone(zone) {
		return 0, 0, &UnknownZoneError{Zone: zone}
	}
	for _, row := range t.rows {
		if row.Ceiling < billableWeight {
			continue
		}
		if p, ok := row.Prices[zone]; ok {
			return p, row.Ceiling, nil
		}
	}
	return 0, 0, &WeightOutOfRangeError{
		Weight:     billableWeight,
		MaxBracket: t.MaxBracket(),
		Zone:       zone,
	}
}
