// package dsf assembles the dynamic structure factor S(x, Ω) at a single
// target wave-vector from the ideal and auxiliary density responses and the
// bridge function (spec §4.H), grounded verbatim on qupled's
// compute_dsf_qstls_iet (see original_source/dynamic_qstls_iet.c).
package dsf

import (
	"math"

	"github.com/qupled/qupled-go/field"
	"github.com/qupled/qupled-go/grid"
)

// Compute evaluates S(x_target, Ω_j) for every Ω_j on omegaAxis. targetIdx is
// the row of phiRe/phiIm/psiRe/psiIm corresponding to x_target; bAtTarget is
// the bridge function evaluated once at x_target (spec §4.H: "Bridge function
// at the target wave-vector").
//
// The Ω=0 branch uses a Θ-derivative limit of the general formula (the
// 1/(1-e^{-Ω/Θ}) detailed-balance factor diverges as Ω→0, so the reference
// solver substitutes a separately-derived closed form there); both branches
// return 0 at x_target=0.
func Compute(xTarget float64, omegaAxis *grid.Axis, targetIdx int, st grid.State, bAtTarget float64, phiRe, phiIm, psiRe, psiIm *field.Field2D) []float64 {
	out := make([]float64, omegaAxis.N())
	if xTarget == 0 {
		return out
	}
	ff1 := 4 * grid.Lambda * st.Rs / (math.Pi * xTarget * xTarget)
	for j := 0; j < omegaAxis.N(); j++ {
		omega := omegaAxis.At(j)
		pr := phiRe.At(targetIdx, j)
		pi := phiIm.At(targetIdx, j)
		sr := psiRe.At(targetIdx, j)
		si := psiIm.At(targetIdx, j)

		var numer, denomRe, denomIm float64
		if omega == 0 {
			ff2 := st.Theta / (4 * xTarget)
			numer = (1-ff1*sr)/(math.Exp(xTarget*xTarget/(4*st.Theta)-st.Mu)+1) - 3.0/(4*xTarget)*ff1*pr*si
			numer *= ff2
			denomRe = 1 + ff1*((1-bAtTarget)*pr-sr)
			denomIm = 0
		} else {
			ff2 := 1.0 / (1 - math.Exp(-omega/st.Theta))
			numer = pi + ff1*(pr*si-pi*sr)
			numer *= ff2 / math.Pi
			denomRe = 1 + ff1*((1-bAtTarget)*pr-sr)
			denomIm = ff1 * ((1-bAtTarget)*pi - si)
		}
		denom := denomRe*denomRe + denomIm*denomIm
		out[j] = numer / denom
	}
	return out
}

// DetailedBalanceRatio returns S(x, -Ω)/S(x, Ω) = e^{-Ω/Θ} (spec §8, Laws),
// used only by tests to check the relation the closed-form S(x,Ω) satisfies
// by construction via its 1/(1-e^{-Ω/Θ}) factor.
func DetailedBalanceRatio(omega, theta float64) float64 {
	return math.Exp(-omega / theta)
}
