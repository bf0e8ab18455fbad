package fixedpoint

import (
	"errors"
	"testing"
)

func TestRayFromPercentDefaults(t *testing.T) {
	full, err := RayFromPercent(100)
	if err != nil {
		t.Fatalf("RayFromPercent: %v", err)
	}
	if full.Cmp(OneRay) != 0 {
		t.Fatalf("100%% should equal OneRay, got %s", full)
	}

	zero, err := RayFromPercent(0)
	if err != nil {
		t.Fatalf("RayFromPercent: %v", err)
	}
	if !zero.IsZero() {
		t.Fatalf("0%% should be zero, got %s", zero)
	}
}

func TestRayMulScalePreserving(t *testing.T) {
	half, err := RayFromFraction(1, 2)
	if err != nil {
		t.Fatalf("RayFromFraction: %v", err)
	}
	got, err := half.Mul(half)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	quarter, err := RayFromFraction(1, 4)
	if err != nil {
		t.Fatalf("RayFromFraction: %v", err)
	}
	if got.Cmp(quarter) != 0 {
		t.Fatalf("got %s want %s", got, quarter)
	}
}

func TestRayMulWad(t *testing.T) {
	tenPercent, err := RayFromPercent(10)
	if err != nil {
		t.Fatalf("RayFromPercent: %v", err)
	}
	thousand := WadFromInt64(1000)
	got, err := tenPercent.MulWad(thousand)
	if err != nil {
		t.Fatalf("MulWad: %v", err)
	}
	if want := WadFromInt64(100); got.Cmp(want) != 0 {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestRayDivByZero(t *testing.T) {
	_, err := OneRay.Div(ZeroRay)
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
}
