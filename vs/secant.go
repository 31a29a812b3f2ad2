// package vs implements the outer compressibility-sum-rule (CSR) consistency
// loop of the Vashishta-Singwi closures (spec §4.K), generalizing
// msolid.Driver's "run to convergence, inspect residual, advance a state
// variable" outer-iteration shape from a stress-path driver to a
// one-parameter secant search on α.
package vs

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// ResidualFunc runs the inner static (or dynamic) Picard loop of spec §4.E
// (or §4.G) to convergence at the given trial α and returns the CSR
// residual: the mismatch between the thermodynamically derived
// ∂²(rs·f_xc)/∂rs² and the structurally derived limit of G(x→0) (spec §4.K).
type ResidualFunc func(alpha float64) (float64, error)

// Controls bundles the VS outer-loop controls (spec §6, --vs-alpha,
// --vs-min-err, --vs-mix); --vs-solve-csr is handled by scheme.Run, which
// skips Run entirely when it is 0.
type Controls struct {
	MaxIters  int
	EpsAlpha  float64
	AlphaInit float64
	// Mix damps the secant step (1.0 = undamped secant); values below 1
	// trade slower convergence for stability against a noisy residual.
	Mix float64
}

// Result holds the converged α and the trajectory length.
type Result struct {
	Alpha    float64
	Iters    int
	Residual float64
	Warning  error
}

// NumericalFailure reports outer-loop non-convergence (spec §7).
type NumericalFailure struct {
	Residual float64
	Iters    int
}

func (e *NumericalFailure) Error() string {
	return chk.Err("vs: CSR outer loop failed to converge after %d iterations (residual %.3e)", e.Iters, e.Residual).Error()
}

// Run drives α to a CSR-consistent fixed point by the secant method (spec
// §4.K: "update α by secant step; terminate on |Δα| ≤ ε_α or iter ≥
// n_iter_α"). Two distinct starting points are needed to seed the secant;
// the second is offset by 1% of AlphaInit (or 0.01 if AlphaInit is zero).
func Run(residual ResidualFunc, ctl Controls) (*Result, error) {
	mix := ctl.Mix
	if mix == 0 {
		mix = 1.0
	}
	a0 := ctl.AlphaInit
	step := 0.01 * a0
	if step == 0 {
		step = 0.01
	}
	a1 := a0 + step

	r0, err := residual(a0)
	if err != nil {
		return nil, err
	}
	r1, err := residual(a1)
	if err != nil {
		return nil, err
	}

	iter := 0
	dAlpha := math.Abs(a1 - a0)
	for iter < ctl.MaxIters && dAlpha > ctl.EpsAlpha {
		if r1 == r0 {
			break
		}
		aNext := a1 - mix*r1*(a1-a0)/(r1-r0)
		a0, r0 = a1, r1
		a1 = aNext
		r1, err = residual(a1)
		if err != nil {
			return nil, err
		}
		dAlpha = math.Abs(a1 - a0)
		iter++
	}

	res := &Result{Alpha: a1, Iters: iter, Residual: r1}
	if dAlpha > ctl.EpsAlpha {
		res.Warning = &NumericalFailure{Residual: r1, Iters: iter}
	}
	return res, nil
}
