package lindhard

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/qupled/qupled-go/grid"
	"github.com/qupled/qupled-go/quad"
)

func testState(t *testing.T) grid.State {
	t.Helper()
	mu, err := grid.SolveMu(1.0, -10, 10)
	if err != nil {
		t.Fatalf("SolveMu failed: %v", err)
	}
	return grid.State{Rs: 1.0, Theta: 1.0, Mu: mu}
}

func TestMatsubaraZeroAtXZero(t *testing.T) {
	st := testState(t)
	ws := quad.NewWorkspace()
	v, err := Matsubara(0, 0, 20, st, ws)
	if err != nil {
		t.Fatalf("Matsubara failed: %v", err)
	}
	chk.Scalar(t, "phi_0(0)", 1e-15, v, 0)
}

func TestMatsubaraFiniteAwayFromOrigin(t *testing.T) {
	st := testState(t)
	ws := quad.NewWorkspace()
	for _, l := range []int{0, 1, 5} {
		v, err := Matsubara(l, 1.0, 20, st, ws)
		if err != nil {
			t.Fatalf("Matsubara(l=%d) failed: %v", l, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			t.Fatalf("Matsubara(l=%d) expected a finite, non-negative response, got %v", l, v)
		}
	}
}

func TestDynamicZeroAtXZero(t *testing.T) {
	st := testState(t)
	ws := quad.NewWorkspace()
	re, im, err := Dynamic(1.0, 0, 20, st, ws)
	if err != nil {
		t.Fatalf("Dynamic failed: %v", err)
	}
	chk.Scalar(t, "re", 1e-15, re, 0)
	chk.Scalar(t, "im", 1e-15, im, 0)
}

func TestDynamicMatchesStaticAtOmegaZero(t *testing.T) {
	st := testState(t)
	ws := quad.NewWorkspace()
	re, im, err := Dynamic(0, 1.0, 20, st, ws)
	if err != nil {
		t.Fatalf("Dynamic failed: %v", err)
	}
	static, err := Matsubara(0, 1.0, 20, st, ws)
	if err != nil {
		t.Fatalf("Matsubara failed: %v", err)
	}
	chk.Scalar(t, "re==static", 1e-10, re, static)
	chk.Scalar(t, "im", 1e-15, im, 0)
}
