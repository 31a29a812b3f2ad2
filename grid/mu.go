package grid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/qupled/qupled-go/quad"
)

// MuTolerance is the absolute bisection tolerance on μ (spec §4.A).
const MuTolerance = 1e-10

// gammaThreeHalves is Γ(3/2) = √π/2.
const gammaThreeHalves = 0.8862269254527580

// fermiDiracHalf evaluates the complete Fermi-Dirac integral of order 1/2,
//
//	F_{1/2}(μ) = (1/Γ(3/2)) ∫_0^∞ √ε / (1 + e^{ε-μ}) dε
//
// by adaptive quadrature (component B); no example repo exposes a
// special-function library for this, so it is evaluated the same way every
// other integral in this solver is (see SPEC_FULL.md §4.A′).
func fermiDiracHalf(mu float64, ws *quad.Workspace) (float64, error) {
	cutoff := math.Max(80.0, mu+80.0)
	integrand := func(eps float64) float64 {
		return math.Sqrt(eps) / (1 + math.Exp(eps-mu))
	}
	integral, err := ws.Integrate(integrand, 0, cutoff, 1e-8)
	if err != nil {
		return 0, err
	}
	return integral / gammaThreeHalves, nil
}

// normalizationResidual returns Γ(3/2)·F_{1/2}(μ) - 2/(3Θ^{3/2}).
func normalizationResidual(mu, theta float64, ws *quad.Workspace) (float64, error) {
	f, err := fermiDiracHalf(mu, ws)
	if err != nil {
		return 0, err
	}
	return gammaThreeHalves*f - 2/(3*math.Pow(theta, 1.5)), nil
}

// SolveMu solves the Fermi-Dirac normalization Γ(3/2)·F_{1/2}(μ) = 2/(3Θ^{3/2})
// for μ by bracketed bisection over [muLo, muHi] to MuTolerance (spec §4.A).
// Returns a ConfigError-flavoured error if the bracket does not straddle a
// root.
func SolveMu(theta, muLo, muHi float64) (float64, error) {
	if theta <= 0 {
		return 0, chk.Err("grid: theta must be positive, got %v", theta)
	}
	if muLo >= muHi {
		return 0, chk.Err("grid: mu bracket [%v,%v] is empty", muLo, muHi)
	}
	ws := quad.NewWorkspace()
	flo, err := normalizationResidual(muLo, theta, ws)
	if err != nil {
		return 0, err
	}
	fhi, err := normalizationResidual(muHi, theta, ws)
	if err != nil {
		return 0, err
	}
	if flo == 0 {
		return muLo, nil
	}
	if fhi == 0 {
		return muHi, nil
	}
	if (flo > 0) == (fhi > 0) {
		return 0, chk.Err("grid: mu bracket [%v,%v] does not straddle a root (residuals %v, %v)", muLo, muHi, flo, fhi)
	}
	lo, hi := muLo, muHi
	flolo := flo
	for hi-lo > MuTolerance {
		mid := 0.5 * (lo + hi)
		fmid, err := normalizationResidual(mid, theta, ws)
		if err != nil {
			return 0, err
		}
		if fmid == 0 {
			return mid, nil
		}
		if (fmid > 0) == (flolo > 0) {
			lo, flolo = mid, fmid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi), nil
}
