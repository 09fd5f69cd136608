package tariff

import (
	"errors"
	"testing"
)

func laneRows() []RateRow {
	return []RateRow{
		{Country: "FRANCE", ZipPrefix: "75", ZoneCode: "Z1"},
		{Country: "FRANCE", ZipPrefix: "75", ZoneCode: "Z2", HazmatVariant: true},
		{Country: "FRANCE", ZipPrefix: "75", ZoneCode: "Z3", DeliveryVariant: true},
		{Country: "FRANCE", ZipPrefix: "13", ZoneCode: "Z4"},
	}
}

func TestResolveDefaultsToFirstMatch(t *testing.T) {
	row, err := Resolve(laneRows(), "France", "75", false, false)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if row.ZoneCode != "Z1" {
		t.Fatalf("expected first lane row Z1, got %s", row.ZoneCode)
	}
}

func TestResolveHazmatOverride(t *testing.T) {
	row, err := Resolve(laneRows(), "FRANCE", "75", true, false)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if row.ZoneCode != "Z2" {
		t.Fatalf("expected hazmat variant Z2, got %s", row.ZoneCode)
	}
}

func TestResolveDeliveryWinsOverHazmat(t *testing.T) {
	// Last-write-wins: delivery is evaluated after hazmat, so with both
	// flags set and separate single-purpose variant rows the delivery row
	// is the final candidate.
	row, err := Resolve(laneRows(), "FRANCE", "75", true, true)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if row.ZoneCode != "Z3" {
		t.Fatalf("expected delivery variant Z3, got %s", row.ZoneCode)
	}
}

func TestResolveNormalizesLaneKeys(t *testing.T) {
	row, err := Resolve(laneRows(), " france ", "75.0", false, false)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if row.ZoneCode != "Z1" {
		t.Fatalf("expected Z1, got %s", row.ZoneCode)
	}
}

func TestResolveNoTariff(t *testing.T) {
	_, err := Resolve(laneRows(), "FRANCE", "99", false, false)
	var notFound *NoTariffForRouteError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NoTariffForRouteError, got %v", err)
	}
	if notFound.Country != "FRANCE" || notFound.ZipPrefix != "99" {
		t.Fatalf("unexpected error payload: %+v", notFound)
	}
}

func TestResolveDeterministic(t *testing.T) {
	rows := laneRows()
	first, err := Resolve(rows, "FRANCE", "75", true, true)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Resolve(rows, "FRANCE", "75", true, true)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if again.ZoneCode != first.ZoneCode {
			t.Fatalf("resolution not stable: %s vs %s", again.ZoneCode, first.ZoneCode)
		}
	}
}
