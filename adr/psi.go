package adr

import (
	"github.com/qupled/qupled-go/field"
	"github.com/qupled/qupled-go/grid"
	"github.com/qupled/qupled-go/quad"
)

// ratio returns the outer-integrand coefficient of (S(w)-1) at w-index k
// (grounded on adr_iet_update's int_lev1_1 term, generalized per spec §4.F's
// fully-dynamic note). PartiallyDynamic always reads the Ω-index-0 slice of
// ψ/φ regardless of the target Ω index omegaIdx, coupling every Ω only
// through the static (Ω=0) ψ; FullyDynamic reads the same Ω index as the
// target, coupling ψ(w, Ω) to itself across every Ω. imag selects the
// imaginary-branch coefficient (φ_im·ψ_re - φ_re·ψ_im)/|φ|² over the real
// one (φ_re·ψ_re + φ_im·ψ_im)/|φ|² (spec §4.F).
func ratio(mode Mode, k, omegaIdx int, phiRe, phiIm, psiRe, psiIm *field.Field2D, imag bool) float64 {
	j := omegaIdx
	if mode == PartiallyDynamic {
		j = 0
	}
	pr, pi := phiRe.At(k, j), phiIm.At(k, j)
	denom := pr*pr + pi*pi
	if denom == 0 {
		return 0
	}
	if imag {
		return (pi*psiRe.At(k, j) - pr*psiIm.At(k, j)) / denom
	}
	return (pr*psiRe.At(k, j) + pi*psiIm.At(k, j)) / denom
}

// UpdateLane recomputes ψ(x_i, Ω_j) (one cell) from the cached inner integral
// lane K.{Re,Im}.Lane(i,j) and the outer S, b fields (grounded on
// compute_dynamic_adr_iet_re_lev1's w-loop: integrand = int_lev1_1[w] *
// int_lev1_2[w] / w, zero at w=0).
func UpdateLane(mode Mode, i, j int, xAxis, omegaAxis *grid.Axis, s, b []float64,
	kfixed *FixedKernel, phiRe, phiIm, psiRe, psiIm *field.Field2D,
	ws *quad.Workspace, sp *quad.TabulatedFunc, imag bool) (float64, error) {

	n := xAxis.N()
	lane := kfixed.Re.Lane(i, j)
	if imag {
		lane = kfixed.Im.Lane(i, j)
	}
	xs := make([]float64, n)
	ys := make([]float64, n)
	copy(xs, xAxis.Values)
	for k := 0; k < n; k++ {
		w := xs[k]
		if w == 0 {
			ys[k] = 0
			continue
		}
		inner1 := s[k]*(1-b[k]) - ratio(mode, k, j, phiRe, phiIm, psiRe, psiIm, imag)*(s[k]-1)
		ys[k] = inner1 * lane[k] / w
	}
	if err := sp.Rebuild(xs, ys); err != nil {
		return 0, err
	}
	return ws.Integrate(sp.Func(), xAxis.Values[0], xAxis.Max, quad.DefaultRelTol)
}
