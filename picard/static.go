// package picard implements the fixed-point (Picard) iteration that couples
// the static structure factor S to the static local-field correction G
// (spec §4.E) and, for the quantum/dynamic schemes, the auxiliary response
// ψ to S via φ (spec §4.G). Both loops follow the same
// compute-mix-measure-residual shape as msolid.Driver.Run, generalized from
// a stress-strain fixed point to a structure-factor fixed point.
package picard

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/qupled/qupled-go/grid"
	"github.com/qupled/qupled-go/ssf"
	"gonum.org/v1/gonum/floats"
)

// NumericalFailure reports Picard non-convergence. It is a warning, not a
// fatal error (spec §7): callers still use Result.
type NumericalFailure struct {
	Residual float64
	Iters    int
}

func (e *NumericalFailure) Error() string {
	return chk.Err("picard: failed to converge after %d iterations (residual %.3e)", e.Iters, e.Residual).Error()
}

func (e *NumericalFailure) Kind() string { return "NumericalFailure" }

// Controls bundles the Picard loop's iteration controls (spec §6,
// --iter/--min-err/--mix).
type Controls struct {
	MaxIters int
	MinErr   float64
	Mix      float64
}

// StaticResult holds the outcome of the static-scheme Picard loop.
type StaticResult struct {
	S, G     []float64
	Iters    int
	Residual float64
	Warning  error // non-nil NumericalFailure if the cap was hit
}

// staticKernel evaluates the STLS local-field-correction integrand
// (grounded verbatim on qupled's compute_slfc/slfc — see
// original_source/stls.c):
//
//	k(x,y) contributes -3/4 y² (S(y)-1) (1 + (x²-y²)/(2xy)·log|(x+y)/(x-y)|)
//	for x != y, and y² (S(y)-1) at x=y.
func staticKernel(x, y, sy float64) float64 {
	if x <= 0 || y <= 0 {
		return 0
	}
	x2, y2 := x*x, y*y
	if x == y {
		return y2 * (sy - 1)
	}
	return -0.75 * y2 * (sy - 1) * (1 + (x2-y2)/(2*x*y)*math.Log(math.Abs((x+y)/(x-y))))
}

// StaticLFC computes G_new(x_i) = Δx Σ_j k(x_i, x_j) for every grid point,
// following compute_slfc's rectangle-rule sum over all but the last grid
// point.
func StaticLFC(xAxis *grid.Axis, s []float64) []float64 {
	n := xAxis.N()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		xi := xAxis.At(i)
		sum := 0.0
		for j := 0; j < n-1; j++ {
			sum += staticKernel(xi, xAxis.At(j), s[j])
		}
		out[i] = sum * xAxis.Delta
	}
	return out
}

// RunStatic iterates the STLS fixed point S <-> G to convergence (spec
// §4.E). b is the bridge field (all-zero for the plain STLS closure, the
// IET bridge term for the STLS-IET closures — spec §4.E "IET variant",
// implemented as G - b inside ssf.Static). alpha is the VS CSR parameter
// (spec §4.K); pass 1.0 for every non-VS scheme, where it is a no-op.
func RunStatic(xAxis *grid.Axis, shf []float64, b []float64, alpha float64, st grid.State, phiStatic func(int) []float64, ctl Controls) (*StaticResult, error) {
	n := xAxis.N()
	g := make([]float64, n)
	gNew := make([]float64, n)
	for i := range gNew {
		gNew[i] = 1.0
	}
	s := make([]float64, n)
	for i := 0; i < n; i++ {
		s[i] = ssf.Static(xAxis.At(i), shf[i], g[i], b[i], alpha, phiStatic(i), st)
	}

	res := &StaticResult{}
	iterErr := 1.0
	iter := 0
	for iter < ctl.MaxIters && iterErr > ctl.MinErr {
		gNew = StaticLFC(xAxis, s)
		iterErr = floats.Distance(gNew, g, 2)
		floats.AddScaledTo(g, g, ctl.Mix, sub(gNew, g))
		iter++
		for i := 0; i < n; i++ {
			s[i] = ssf.Static(xAxis.At(i), shf[i], g[i], b[i], alpha, phiStatic(i), st)
		}
	}
	res.S, res.G, res.Iters, res.Residual = s, g, iter, iterErr
	if iterErr > ctl.MinErr {
		res.Warning = &NumericalFailure{Residual: iterErr, Iters: iter}
	}
	return res, nil
}

func sub(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}
