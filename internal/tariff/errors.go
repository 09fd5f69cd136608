package tariff

import (
	"errors"
	"fmt"
)

// ErrSourceNotFound is returned by source adapters when no workbook is
// available to load.
var ErrSourceNotFound = errors.New("no tariff workbook found")

// SheetMissingError indicates a required sheet is absent from the workbook.
type SheetMissingError struct {
	Sheet string
}

func (e *SheetMissingError) Error() string {
	return fmt.Sprintf("sheet %q not found in workbook", e.Sheet)
}

// HeaderNotFoundError indicates the marker token identifying a header row was
// not found within the scan window.
type HeaderNotFoundError struct {
	Sheet  string
	Marker string
}

func (e *HeaderNotFoundError) Error() string {
	return fmt.Sprintf("header marker %q not found in sheet %q", e.Marker, e.Sheet)
}

// MalformedSourceError wraps a lower-level parse failure with the sheet it
// occurred in.
type MalformedSourceError struct {
	Sheet string
	Err   error
}

func (e *MalformedSourceError) Error() string {
	return fmt.Sprintf("malformed sheet %q: %v", e.Sheet, e.Err)
}

func (e *MalformedSourceError) Unwrap() error { return e.Err }

// NoTariffForRouteError indicates no rate row matches the requested lane.
type NoTariffForRouteError struct {
	Country   string
	ZipPrefix string
}

func (e *NoTariffForRouteError) Error() string {
	return fmt.Sprintf("no tariff for %s with zip prefix %s", e.Country, e.ZipPrefix)
}

// WeightOutOfRangeError indicates the billable weight exceeds every bracket
// ceiling available for the zone.
type WeightOutOfRangeError struct {
	Weight     float64
	MaxBracket float64
	Zone       string
}

func (e *WeightOutOfRangeError) Error() string {
	return fmt.Sprintf("billable weight %.2f kg exceeds the maximum bracket of %.0f kg for zone %s",
		e.Weight, e.MaxBracket, e.Zone)
}

// UnknownZoneError indicates the resolved zone code has no price column.
type UnknownZoneError struct {
	Zone string
}

func (e *UnknownZoneError) Error() string {
	return fmt.Sprintf("zone %q has no price column in the rate table", e.Zone)
}

// InvalidInputError rejects a shipment request before resolution begins.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
