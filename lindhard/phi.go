// package lindhard evaluates the ideal (Lindhard) density response φ on the
// Matsubara grid and on the real-frequency grid (spec §4.C).
package lindhard

import (
	"math"

	"github.com/qupled/qupled-go/field"
	"github.com/qupled/qupled-go/grid"
	"github.com/qupled/qupled-go/quad"
)

// Matsubara evaluates φ_l(x) for Matsubara index l >= 0 and x >= 0.
//
//	l > 0: φ_l(x) = (1/2x) ∫_0^xmax [y/(e^{y²/Θ-μ}+1)] ·
//	               log[((x²+2xy)²+(2πlΘ)²)/((x²-2xy)²+(2πlΘ)²)] dy
//	l = 0: closed-form limit with branches on x<2y, x>2y, x=2y (and x=0).
func Matsubara(l int, x, xmax float64, st grid.State, ws *quad.Workspace) (float64, error) {
	if x == 0 {
		return 0, nil
	}
	if l == 0 {
		return matsubaraZero(x, xmax, st, ws)
	}
	omegaL := 2 * math.Pi * float64(l) * st.Theta
	omegaL2 := omegaL * omegaL
	integrand := func(y float64) float64 {
		y2 := y * y
		x2 := x * x
		txy := 2 * x * y
		num := (x2+txy)*(x2+txy) + omegaL2
		den := (x2-txy)*(x2-txy) + omegaL2
		return y / (math.Exp(y2/st.Theta-st.Mu) + 1) * math.Log(num/den)
	}
	integral, err := ws.Integrate(integrand, 0, xmax, quad.DefaultRelTol)
	if err != nil {
		return 0, err
	}
	return integral / (2 * x), nil
}

// matsubaraZero implements the l=0 limit (spec §4.C), following the
// closed-form branch structure of the original Matsubara-sum integrand
// (qupled's Idr::integrand(y) at l=0): the would-be log singularity at
// y=x/2 is resolved analytically rather than by quadrature refinement.
func matsubaraZero(x, xmax float64, st grid.State, ws *quad.Workspace) (float64, error) {
	integrand := func(y float64) float64 {
		y2 := y * y
		x2 := x * x
		xy := x * y
		denom := math.Exp(y2/st.Theta-st.Mu) + math.Exp(-y2/st.Theta+st.Mu) + 2
		switch {
		case x < 2*y:
			return 1 / (st.Theta * x) * ((y2-x2/4)*math.Log((2*y+x)/(2*y-x)) + xy) * y / denom
		case x > 2*y:
			return 1 / (st.Theta * x) * ((y2-x2/4)*math.Log((2*y+x)/(x-2*y)) + xy) * y / denom
		default:
			return y2 / st.Theta / denom
		}
	}
	return ws.Integrate(integrand, 0, xmax, quad.DefaultRelTol)
}

// MatsubaraField fills a (n_x, n_l) field with φ_l(x_i) for every grid
// point and Matsubara index.
func MatsubaraField(xAxis *grid.Axis, nl int, st grid.State) (*field.Field2D, error) {
	out := field.NewField2D(xAxis.N(), nl)
	ws := quad.NewWorkspace()
	for i := 0; i < xAxis.N(); i++ {
		x := xAxis.At(i)
		for l := 0; l < nl; l++ {
			v, err := Matsubara(l, x, xAxis.Max, st, ws)
			if err != nil {
				return nil, err
			}
			out.Set(i, l, v)
		}
	}
	return out, nil
}

// Dynamic evaluates the real and imaginary parts of φ(x, Ω) on the
// real-frequency grid (spec §4.C, "a separate branch handles W=0"). The
// real part is the analytic continuation of Matsubara(l>0) replacing
// (2πlΘ)² by -Ω²; the imaginary part is the Landau-damping contribution
// that appears once the denominator of that continuation can change sign
// within the integration range.
func Dynamic(omega, x, xmax float64, st grid.State, ws *quad.Workspace) (re, im float64, err error) {
	if x == 0 {
		return 0, 0, nil
	}
	if omega == 0 {
		v, err := matsubaraZero(x, xmax, st, ws)
		return v, 0, err
	}
	omega2 := omega * omega
	reIntegrand := func(y float64) float64 {
		y2 := y * y
		x2 := x * x
		txy := 2 * x * y
		num := math.Abs((x2+txy)*(x2+txy) - omega2)
		den := math.Abs((x2-txy)*(x2-txy) - omega2)
		weight := y / (math.Exp(y2/st.Theta-st.Mu) + 1)
		if den == 0 {
			den = 1e-300
		}
		return weight * math.Log(num/den)
	}
	reIntegral, err := ws.Integrate(reIntegrand, 0, xmax, quad.DefaultRelTol)
	if err != nil {
		return 0, 0, err
	}
	re = reIntegral / (2 * x)

	imIntegrand := func(y float64) float64 {
		y2 := y * y
		x2 := x * x
		weight := y / (math.Exp(y2/st.Theta-st.Mu) + 1)
		lower := math.Abs(x2 - 2*x*y)
		upper := x2 + 2*x*y
		if lower < omega && omega < upper {
			return weight
		}
		return 0
	}
	imIntegral, err := ws.Integrate(imIntegrand, 0, xmax, quad.DefaultRelTol)
	if err != nil {
		return 0, 0, err
	}
	im = math.Pi / (2 * x) * imIntegral
	return re, im, nil
}

// DynamicField fills (n_x, n_W) real and imaginary fields for φ(x, Ω).
func DynamicField(xAxis, wAxis *grid.Axis, st grid.State) (re, im *field.Field2D, err error) {
	re = field.NewField2D(xAxis.N(), wAxis.N())
	im = field.NewField2D(xAxis.N(), wAxis.N())
	ws := quad.NewWorkspace()
	for i := 0; i < xAxis.N(); i++ {
		x := xAxis.At(i)
		for j := 0; j < wAxis.N(); j++ {
			w := 0.0
			if j > 0 || !wAxis.Centered {
				w = wAxis.At(j)
			}
			r, m, err := Dynamic(w, x, xAxis.Max, st, ws)
			if err != nil {
				return nil, nil, err
			}
			re.Set(i, j, r)
			im.Set(i, j, m)
		}
	}
	return re, im, nil
}
