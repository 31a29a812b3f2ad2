package quad

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/interp"
)

// TabulatedFunc turns a set of (x, y) samples into a callable, O(log n)
// per-evaluation integrand via a natural cubic spline (spec §4.B:
// "Integrands that are themselves tabulated are represented by natural
// cubic splines over their sample grid; spline construction is O(n) per
// rebuild and each integrand evaluation is O(log n) via a lookup
// accelerator"). The lookup accelerator is gonum's internal binary search
// over the spline breakpoints.
type TabulatedFunc struct {
	spline interp.NaturalCubic
	xmin   float64
	xmax   float64
}

// Rebuild fits the spline to new samples, reusing the receiver's storage.
// xs must be strictly increasing and len(xs) >= 2.
func (t *TabulatedFunc) Rebuild(xs, ys []float64) error {
	if len(xs) < 2 || len(xs) != len(ys) {
		return chk.Err("quad: TabulatedFunc needs >=2 matching samples, got %d/%d", len(xs), len(ys))
	}
	if err := t.spline.Fit(xs, ys); err != nil {
		return chk.Err("quad: spline fit failed: %v", err)
	}
	t.xmin, t.xmax = xs[0], xs[len(xs)-1]
	return nil
}

// At evaluates the spline at x, clamping to the sample range at the
// boundary (the integrands this wraps are only ever queried within range by
// construction, but clamping avoids extrapolation blow-up under roundoff at
// the exact endpoints).
func (t *TabulatedFunc) At(x float64) float64 {
	if x < t.xmin {
		x = t.xmin
	} else if x > t.xmax {
		x = t.xmax
	}
	return t.spline.Predict(x)
}

// Func adapts the receiver to the func(float64) float64 signature expected
// by Workspace.Integrate.
func (t *TabulatedFunc) Func() func(float64) float64 { return t.At }
