// package ssf implements the static-structure-factor closure that couples
// the ideal density response φ, the static local-field correction G and the
// bridge function b into S(x) (spec §4.D).
package ssf

import (
	"math"

	"github.com/qupled/qupled-go/field"
	"github.com/qupled/qupled-go/grid"
	"github.com/qupled/qupled-go/quad"
)

// Constants f1, f2 of spec §4.D: λ=(4/(9π))^(1/3), f1=4λ²rs, f2=(3Θ/2)f1.
func Coefficients(st grid.State) (f1, f2 float64) {
	f1 = 4 * grid.Lambda * grid.Lambda * st.Rs
	f2 = 1.5 * st.Theta * f1
	return
}

// HartreeFock evaluates S_HF(x), the Hartree-Fock limit of the static
// structure factor, by direct quadrature (grounded on qupled's
// SsfHF::integrand — see original_source/src/rpa.cpp):
//
//	S_HF(x) = 1 - (3Θ/4x) ∫_0^xmax y/(e^{y²/Θ-μ}+1) ·
//	              log[(1+e^{μ-(y-x)²/Θ})/(1+e^{μ-(y+x)²/Θ})] dy
//
// and the x=0 limit of the same integrand otherwise.
func HartreeFock(x, xmax float64, st grid.State, ws *quad.Workspace) (float64, error) {
	if x == 0 {
		integrand := func(y float64) float64 {
			y2 := y * y
			e := math.Exp(y2/st.Theta - st.Mu)
			return -3 * y2 / ((1 + e) * (1 + e))
		}
		integral, err := ws.Integrate(integrand, 0, xmax, quad.DefaultRelTol)
		if err != nil {
			return 0, err
		}
		return 1 + integral, nil
	}
	integrand := func(y float64) float64 {
		y2 := y * y
		ypx := y + x
		ymx := y - x
		return -3 * st.Theta / (4 * x) * y / (math.Exp(y2/st.Theta-st.Mu) + 1) *
			math.Log((1 + math.Exp(st.Mu-ymx*ymx/st.Theta)) / (1 + math.Exp(st.Mu-ypx*ypx/st.Theta)))
	}
	integral, err := ws.Integrate(integrand, 0, xmax, quad.DefaultRelTol)
	if err != nil {
		return 0, err
	}
	return 1 + integral, nil
}

// Static evaluates S(x) at a single grid point from the Matsubara φ_l(x)
// row, the current G(x) and bridge b(x) (spec §4.D):
//
//	S(x) = S_HF(x) - f2(1-G(x)) Σ_l c_l φ_l(x)² / (πλx² + f1(1-G(x))φ_l(x))
//
// alpha is the VS compressibility-sum-rule parameter (spec §4.K): it scales
// the many-body local-field term before the bridge correction is subtracted,
// gEff = alpha*G(x) - b(x), so alpha=1 recovers the plain STLS/IET closure.
func Static(x, shf, g, b, alpha float64, phiRow []float64, st grid.State) float64 {
	if x == 0 {
		return 0
	}
	f1, f2 := Coefficients(st)
	gEff := alpha*g - b
	x2 := x * x
	sum := 0.0
	for l, phi := range phiRow {
		c := 2.0
		if l == 0 {
			c = 1.0
		}
		denom := math.Pi*grid.Lambda*x2 + f1*(1-gEff)*phi
		sum += c * phi * phi / denom
	}
	return shf - f2*(1-gEff)*sum
}

// Field evaluates S(x) over the whole x grid at alpha=1 (the plain
// STLS/IET closure, with no CSR perturbation).
func Field(xAxis *grid.Axis, shf []float64, g []float64, b []float64, phi *field.Field2D, st grid.State) []float64 {
	out := make([]float64, xAxis.N())
	for i := 0; i < xAxis.N(); i++ {
		out[i] = Static(xAxis.At(i), shf[i], g[i], b[i], 1.0, phi.Row(i), st)
	}
	return out
}

// HartreeFockField evaluates S_HF(x) over the whole x grid.
func HartreeFockField(xAxis *grid.Axis, st grid.State) ([]float64, error) {
	out := make([]float64, xAxis.N())
	ws := quad.NewWorkspace()
	for i := 0; i < xAxis.N(); i++ {
		v, err := HartreeFock(xAxis.At(i), xAxis.Max, st, ws)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
