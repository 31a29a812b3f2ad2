package adr

import (
	"os"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/google/go-cmp/cmp"
	"github.com/qupled/qupled-go/field"
	"github.com/qupled/qupled-go/grid"
)

func testAxes(t *testing.T) (*grid.Axis, *grid.Axis) {
	t.Helper()
	xAxis, err := grid.NewAxis(0.5, 4.0, true)
	if err != nil {
		t.Fatalf("x axis: %v", err)
	}
	wAxis, err := grid.NewAxis(0.5, 4.0, true)
	if err != nil {
		t.Fatalf("w axis: %v", err)
	}
	return xAxis, wAxis
}

func TestFixedKernelComputeFillsAllCells(t *testing.T) {
	xAxis, wAxis := testAxes(t)
	st := grid.State{Rs: 1.0, Theta: 1.0, Mu: 0.1}
	s := make([]float64, xAxis.N())
	for i := range s {
		s[i] = 1.0
	}
	k := NewFixedKernel(xAxis.N(), wAxis.N(), xAxis.N())
	if err := k.Compute(xAxis, wAxis, st, s, 2); err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if !k.Populated {
		t.Fatalf("expected Populated to be set after Compute")
	}
	for _, v := range k.Re.Data {
		if v != v { // NaN check without importing math
			t.Fatalf("NaN found in K_fixed.Re")
		}
	}
}

func TestCacheRoundTrip(t *testing.T) {
	xAxis, wAxis := testAxes(t)
	st := grid.State{Rs: 1.0, Theta: 1.0, Mu: 0.1}
	nx, nw := xAxis.N(), wAxis.N()
	snap := &Snapshot{
		PhiRe: field.NewField2D(nx, nw), PhiIm: field.NewField2D(nx, nw),
		PsiRe: field.NewField2D(nx, nw), PsiIm: field.NewField2D(nx, nw),
	}
	for i := 0; i < nx; i++ {
		for j := 0; j < nw; j++ {
			snap.PhiRe.Set(i, j, float64(i)+0.1*float64(j))
			snap.PsiIm.Set(i, j, float64(i)*float64(j))
		}
	}

	path := t.TempDir() + "/dynamic_adr_test.bin"
	if err := WriteCache(path, xAxis, wAxis, st, snap); err != nil {
		t.Fatalf("WriteCache failed: %v", err)
	}
	defer os.Remove(path)

	loaded, err := ReadCache(path, xAxis, wAxis, st)
	if err != nil {
		t.Fatalf("ReadCache failed: %v", err)
	}
	chk.Scalar(t, "PhiRe[2,3]", 1e-15, loaded.PhiRe.At(2, 3), snap.PhiRe.At(2, 3))
	chk.Scalar(t, "PsiIm[1,1]", 1e-15, loaded.PsiIm.At(1, 1), snap.PsiIm.At(1, 1))

	// The binary round trip is lossless, so the whole snapshot - not just a
	// couple of sampled cells - must compare equal.
	if diff := cmp.Diff(snap, loaded); diff != "" {
		t.Fatalf("snapshot round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRatioRealAndImagBranchesDiffer(t *testing.T) {
	// phi_re=1, phi_im=2, psi_re=3, psi_im=4 at (k=0, j=1): real branch is
	// (1*3+2*4)/5=2.2, imaginary branch is (2*3-1*4)/5=0.4 (spec §4.F).
	phiRe := field.NewField2D(1, 2)
	phiIm := field.NewField2D(1, 2)
	psiRe := field.NewField2D(1, 2)
	psiIm := field.NewField2D(1, 2)
	phiRe.Set(0, 1, 1)
	phiIm.Set(0, 1, 2)
	psiRe.Set(0, 1, 3)
	psiIm.Set(0, 1, 4)

	re := ratio(FullyDynamic, 0, 1, phiRe, phiIm, psiRe, psiIm, false)
	im := ratio(FullyDynamic, 0, 1, phiRe, phiIm, psiRe, psiIm, true)
	chk.Scalar(t, "real branch", 1e-12, re, 2.2)
	chk.Scalar(t, "imag branch", 1e-12, im, 0.4)
	if re == im {
		t.Fatalf("real and imaginary coefficient branches must differ, both got %v", re)
	}
}

func TestCacheMismatchOnPerturbedHeader(t *testing.T) {
	xAxis, wAxis := testAxes(t)
	st := grid.State{Rs: 1.0, Theta: 1.0, Mu: 0.1}
	nx, nw := xAxis.N(), wAxis.N()
	snap := &Snapshot{
		PhiRe: field.NewField2D(nx, nw), PhiIm: field.NewField2D(nx, nw),
		PsiRe: field.NewField2D(nx, nw), PsiIm: field.NewField2D(nx, nw),
	}
	path := t.TempDir() + "/dynamic_adr_mismatch.bin"
	if err := WriteCache(path, xAxis, wAxis, st, snap); err != nil {
		t.Fatalf("WriteCache failed: %v", err)
	}
	defer os.Remove(path)

	perturbed := st
	perturbed.Rs = st.Rs + 0.0001
	_, err := ReadCache(path, xAxis, wAxis, perturbed)
	if err == nil {
		t.Fatalf("expected CacheMismatch, got nil")
	}
	if _, ok := err.(*CacheMismatch); !ok {
		t.Fatalf("expected *CacheMismatch, got %T: %v", err, err)
	}
}
