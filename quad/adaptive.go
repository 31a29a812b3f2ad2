// package quad implements the one-dimensional quadrature primitives shared
// by every closure: a doubly-adaptive composite Simpson's rule for
// closed-form integrands, and a cached cubic-spline lookup for tabulated
// ones. Every worker goroutine owns its own Workspace (spec §4.B,
// "Workers own their own splines and workspaces").
package quad

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/integrate"
)

const (
	// DefaultRelTol is the default relative error target for Adaptive.
	DefaultRelTol = 1e-5
	// MaxRefinements bounds the number of sample-doubling refinements; this
	// is the "workspace size 100 intervals" of spec §4.B.
	MaxRefinements = 100
	minSamples     = 17
)

// Workspace holds the sample buffers reused across repeated calls to
// Integrate so that a worker goroutine performs no further allocation once
// warmed up. A Workspace must not be shared between goroutines.
type Workspace struct {
	x, f []float64
}

// NewWorkspace allocates a workspace with its initial sample buffer.
func NewWorkspace() *Workspace {
	return &Workspace{
		x: make([]float64, minSamples),
		f: make([]float64, minSamples),
	}
}

// Integrate approximates ∫_a^b f(t) dt by composite Simpson's rule,
// doubling the sample count until two consecutive estimates agree to
// relTol (relative) or MaxRefinements is reached. Returns a
// NumericalFailure-flavoured error if f ever returns a non-finite value.
func (w *Workspace) Integrate(f func(float64) float64, a, b, relTol float64) (float64, error) {
	if b <= a {
		return 0, nil
	}
	if relTol <= 0 {
		relTol = DefaultRelTol
	}
	n := minSamples
	prev, err := w.simpsons(f, a, b, n)
	if err != nil {
		return 0, err
	}
	for r := 0; r < MaxRefinements; r++ {
		n = 2*(n-1) + 1
		cur, err := w.simpsons(f, a, b, n)
		if err != nil {
			return 0, err
		}
		denom := math.Abs(cur)
		if denom < 1e-300 {
			denom = 1
		}
		if math.Abs(cur-prev)/denom <= relTol {
			return cur, nil
		}
		prev = cur
	}
	return prev, nil
}

func (w *Workspace) simpsons(f func(float64) float64, a, b float64, n int) (float64, error) {
	if cap(w.x) < n {
		w.x = make([]float64, n)
		w.f = make([]float64, n)
	}
	w.x = w.x[:n]
	w.f = w.f[:n]
	h := (b - a) / float64(n-1)
	for i := 0; i < n; i++ {
		xi := a + float64(i)*h
		w.x[i] = xi
		fi := f(xi)
		if math.IsNaN(fi) || math.IsInf(fi, 0) {
			return 0, chk.Err("quad: non-finite integrand value %v at x=%v", fi, xi)
		}
		w.f[i] = fi
	}
	return integrate.Simpsons(w.x, w.f), nil
}

// Adaptive is a convenience entry point that allocates its own Workspace.
// Hot loops (the parallel driver's per-(i,j) evaluation) should use a
// worker-owned Workspace instead via Integrate.
func Adaptive(f func(float64) float64, a, b, relTol float64) (float64, error) {
	return NewWorkspace().Integrate(f, a, b, relTol)
}
