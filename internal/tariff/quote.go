package tariff

import "strings"

// ComputeQuote runs the full pricing pipeline for one shipment request
// against an immutable dataset: validate, resolve the route, derive the
// billable weight, look up the bracket price and layer surcharges.
func ComputeQuote(ds *Dataset, req ShipmentRequest) (*Quote, error) {
	if err := validateRequest(ds, req); err != nil {
		return nil, err
	}

	route, err := Resolve(ds.Rates, req.Country, req.ZipPrefix, req.Hazmat, req.Delivery)
	if err != nil {
		return nil, err
	}

	billable := ChargeableWeight(req.Length, req.Width, req.Height, req.UnitWeight, req.Quantity)
	base, bracket, err := ds.Prices.BasePrice(billable, route.ZoneCode)
	if err != nil {
		return nil, err
	}

	country, _ := ds.Country(req.Country)
	extra, lines := ComputeSurcharges(base, country, route, req)

	return &Quote{
		BasePrice:         base,
		TotalPrice:        base + extra,
		BillableWeight:    billable,
		BracketKg:         bracket,
		ZoneCode:          route.ZoneCode,
		DepartureSchedule: route.DepartureSchedule,
		TransitTime:       route.TransitTime,
		Lines:             lines,
	}, nil
}

func validateRequest(ds *Dataset, req ShipmentRequest) error {
	if strings.TrimSpace(req.Country) == "" {
		return &InvalidInputError{Field: "country", Reason: "must not be empty"}
	}
	if strings.TrimSpace(req.ZipPrefix) == "" {
		return &InvalidInputError{Field: "zipPrefix", Reason: "must not be empty"}
	}
	if req.Length < 0 || req.Width < 0 || req.Height < 0 {
		return &InvalidInputError{Field: "dimensions", Reason: "must not be negative"}
	}
	if req.UnitWeight < 0 {
		return &InvalidInputError{Field: "unitWeight", Reason: "must not be negative"}
	}
	if req.Quantity < 1 {
		return &InvalidInputError{Field: "quantity", Reason: "must be at least 1"}
	}
	if _, ok := ds.Country(req.Country); !ok {
		return &InvalidInputError{Field: "country", Reason: "unknown destination country"}
	}
	return nil
}
