package tariff

import (
	"math"
	"testing"
)

func TestChargeableWeightVolumetricWins(t *testing.T) {
	// 1.2 x 0.8 x 1.0 m at 333 kg/m3 bills as 319.68 kg.
	got := ChargeableWeight(1.2, 0.8, 1.0, 200, 1)
	if math.Abs(got-319.68) > 1e-9 {
		t.Fatalf("expected 319.68, got %v", got)
	}
}

func TestChargeableWeightActualWins(t *testing.T) {
	got := ChargeableWeight(1.2, 0.8, 1.0, 500, 1)
	if got != 500 {
		t.Fatalf("expected actual weight 500, got %v", got)
	}
}

func TestChargeableWeightScalesWithQuantity(t *testing.T) {
	single := ChargeableWeight(1.2, 1.0, 1.5, 100, 1)
	triple := ChargeableWeight(1.2, 1.0, 1.5, 100, 3)
	if math.Abs(triple-3*single) > 1e-9 {
		t.Fatalf("expected linear scaling, got %v vs 3*%v", triple, single)
	}
}

func TestChargeableWeightNeverBelowActual(t *testing.T) {
	cases := []struct {
		l, w, h, unit float64
		qty           int
	}{
		{0, 0, 0, 100, 1},
		{1.2, 0.8, 2.4, 50, 5},
		{0.5, 0.5, 0.5, 900, 2},
		{2.4, 1.0, 1.0, 0, 1},
	}
	for _, c := range cases {
		got := ChargeableWeight(c.l, c.w, c.h, c.unit, c.qty)
		actual := c.unit * float64(c.qty)
		if got < actual {
			t.Fatalf("billable %v below actual %v for %+v", got, actual, c)
		}
	}
}
