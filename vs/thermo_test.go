package vs

import (
	"fmt"
	"os"
	"testing"

	"github.com/cpmech/gosl/chk"
)

// f(rs) = rs*u(rs) = rs^3 when u(rs) = rs^2, so the central difference
// (fP-2f0+fM)/drs^2 is exact: d²(rs^3)/drs² = 6*rs0.
func TestThermoDerivativeMatchesAnalyticSecondDerivative(t *testing.T) {
	u := func(rs float64) (float64, error) { return rs * rs, nil }
	got, err := ThermoDerivative(u, 2.0, 0.01, "")
	if err != nil {
		t.Fatalf("ThermoDerivative failed: %v", err)
	}
	chk.Scalar(t, "d2(rs^3)/drs2 at rs0=2", 1e-6, got, 6*2.0)
}

func TestThermoDerivativeCachesSamplesToFile(t *testing.T) {
	calls := 0
	u := func(rs float64) (float64, error) {
		calls++
		return rs * rs, nil
	}
	path := t.TempDir() + "/thermo.dat"

	first, err := ThermoDerivative(u, 2.0, 0.01, path)
	if err != nil {
		t.Fatalf("first ThermoDerivative failed: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 samples on a cold cache, got %d", calls)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected thermo file to be written: %v", err)
	}

	poisoned := func(rs float64) (float64, error) {
		return 0, fmt.Errorf("should not be called on a cache hit")
	}
	second, err := ThermoDerivative(poisoned, 2.0, 0.01, path)
	if err != nil {
		t.Fatalf("second ThermoDerivative failed: %v", err)
	}
	chk.Scalar(t, "cached result matches recomputed result", 1e-12, second, first)
}

func TestThermoDerivativeRejectsNonPositiveStep(t *testing.T) {
	u := func(rs float64) (float64, error) { return rs * rs, nil }
	if _, err := ThermoDerivative(u, 2.0, 0, ""); err == nil {
		t.Fatalf("expected an error for a non-positive rs step")
	}
}
