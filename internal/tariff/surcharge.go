package tariff

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizePercent interprets a percentage sourced from a spreadsheet cell.
// Values above 1 are taken as whole percentages ("14" means 14%) and divided
// by 100; values at or below 1 are already fractions. Idempotent.
func NormalizePercent(v float64) float64 {
	if v > 1 {
		return v / 100
	}
	return v
}

// ComputeSurcharges layers the conditional surcharges on top of a base price
// in a fixed order: fuel, MAUT, hazmat, appointment, handling. It returns the
// additive total and the itemized lines, including zero-amount informational
// lines.
func ComputeSurcharges(basePrice float64, country CountryInfo, route RateRow, req ShipmentRequest) (float64, []SurchargeLine) {
	var total float64
	var lines []SurchargeLine

	if pct := NormalizePercent(country.FuelPercent); pct > 0 {
		amount := basePrice * pct
		total += amount
		lines = append(lines, SurchargeLine{
			Label:  fmt.Sprintf("Fuel surcharge (%.1f%%)", pct*100),
			Amount: amount,
		})
	}

	if country.RequiresMaut {
		pct := NormalizePercent(country.MautPercent)
		amount := basePrice * pct
		total += amount
		lines = append(lines, SurchargeLine{
			Label:  fmt.Sprintf("MAUT (%.1f%%)", pct*100),
			Amount: amount,
		})
	}

	if req.Hazmat {
		switch {
		case route.HazmatVariant:
			// The hazmat tariff row already prices the service.
			lines = append(lines, SurchargeLine{Label: "ADR included in base rate"})
		default:
			if fee := parseFee(route.HazmatFee); fee > 0 {
				total += fee
				lines = append(lines, SurchargeLine{Label: "ADR surcharge", Amount: fee})
			} else {
				lines = append(lines, SurchargeLine{Label: "ADR requested (no additional cost)"})
			}
		}
	}

	if req.Appointment {
		fee := parseFee(route.AppointmentFee)
		total += fee
		if fee > 0 {
			lines = append(lines, SurchargeLine{Label: "Appointment booking", Amount: fee})
		} else {
			lines = append(lines, SurchargeLine{Label: "Appointment requested (no defined fee)"})
		}
	}

	if fee := parseFee(route.HandlingFee); fee > 0 {
		total += fee
		lines = append(lines, SurchargeLine{Label: "Handling fee", Amount: fee})
	}

	return total, lines
}

// parseFee reads an optional fee cell. Placeholder text and negative values
// degrade to zero; spreadsheet data entry is expected to be inconsistent.
func parseFee(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
