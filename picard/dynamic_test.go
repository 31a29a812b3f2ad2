package picard

import (
	"math"
	"testing"

	"github.com/qupled/qupled-go/adr"
	"github.com/qupled/qupled-go/grid"
	"github.com/qupled/qupled-go/lindhard"
)

func TestRunDynamicPartiallyDynamicConverges(t *testing.T) {
	xAxis, err := grid.NewAxis(1.0, 3.0, true)
	if err != nil {
		t.Fatalf("x axis: %v", err)
	}
	wAxis, err := grid.NewAxis(1.0, 2.0, true)
	if err != nil {
		t.Fatalf("w axis: %v", err)
	}
	st := grid.State{Rs: 1.0, Theta: 1.0, Mu: 0.1}

	phiRe, phiIm, err := lindhard.DynamicField(xAxis, wAxis, st)
	if err != nil {
		t.Fatalf("DynamicField failed: %v", err)
	}

	s := make([]float64, xAxis.N())
	b := make([]float64, xAxis.N())
	for i := range s {
		s[i] = 1.0
	}

	ctl := Controls{MaxIters: 3, MinErr: 1e-5, Mix: 0.3}
	res, err := RunDynamic(xAxis, wAxis, st, s, b, adr.PartiallyDynamic, phiRe, phiIm, ctl, 1)
	if err != nil {
		t.Fatalf("RunDynamic failed: %v", err)
	}
	if res.Iters == 0 {
		t.Fatalf("expected at least one iteration")
	}
	for i := 0; i < xAxis.N(); i++ {
		for j := 0; j < wAxis.N(); j++ {
			v := res.PsiRe.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("psi_re(%d,%d) is non-finite: %v", i, j, v)
			}
		}
	}
}

func TestRunDynamicFullyDynamicConverges(t *testing.T) {
	xAxis, err := grid.NewAxis(1.0, 3.0, true)
	if err != nil {
		t.Fatalf("x axis: %v", err)
	}
	wAxis, err := grid.NewAxis(1.0, 2.0, true)
	if err != nil {
		t.Fatalf("w axis: %v", err)
	}
	st := grid.State{Rs: 1.0, Theta: 1.0, Mu: 0.1}

	phiRe, phiIm, err := lindhard.DynamicField(xAxis, wAxis, st)
	if err != nil {
		t.Fatalf("DynamicField failed: %v", err)
	}

	s := make([]float64, xAxis.N())
	b := make([]float64, xAxis.N())
	for i := range s {
		s[i] = 1.0
	}

	// FullyDynamic couples ψ_im to itself at every Ω index (not just Ω=0),
	// the one path where the real/imaginary outer coefficients (adr.ratio)
	// must be distinguished correctly.
	ctl := Controls{MaxIters: 3, MinErr: 1e-5, Mix: 0.3}
	res, err := RunDynamic(xAxis, wAxis, st, s, b, adr.FullyDynamic, phiRe, phiIm, ctl, 1)
	if err != nil {
		t.Fatalf("RunDynamic failed: %v", err)
	}
	if res.Iters == 0 {
		t.Fatalf("expected at least one iteration")
	}
	for i := 0; i < xAxis.N(); i++ {
		for j := 0; j < wAxis.N(); j++ {
			re, im := res.PsiRe.At(i, j), res.PsiIm.At(i, j)
			if math.IsNaN(re) || math.IsInf(re, 0) {
				t.Fatalf("psi_re(%d,%d) is non-finite: %v", i, j, re)
			}
			if math.IsNaN(im) || math.IsInf(im, 0) {
				t.Fatalf("psi_im(%d,%d) is non-finite: %v", i, j, im)
			}
		}
	}
}
