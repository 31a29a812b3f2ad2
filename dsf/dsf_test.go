package dsf

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/qupled/qupled-go/field"
	"github.com/qupled/qupled-go/grid"
)

func TestComputeZeroAtTargetZero(t *testing.T) {
	wAxis, err := grid.NewAxis(0.5, 2.0, true)
	if err != nil {
		t.Fatalf("axis: %v", err)
	}
	st := grid.State{Rs: 1.0, Theta: 1.0, Mu: 0.1}
	phiRe := field.NewField2D(1, wAxis.N())
	phiIm := field.NewField2D(1, wAxis.N())
	psiRe := field.NewField2D(1, wAxis.N())
	psiIm := field.NewField2D(1, wAxis.N())
	out := Compute(0, wAxis, 0, st, 0, phiRe, phiIm, psiRe, psiIm)
	for j, v := range out {
		chk.Scalar(t, "S(0,Omega_j)", 1e-15, v, 0)
		_ = j
	}
}

func TestDetailedBalanceRatio(t *testing.T) {
	r := DetailedBalanceRatio(1.0, 2.0)
	chk.Scalar(t, "detailed balance", 1e-12, r, 0.6065306597126334)
}
