package adr

import (
	"math"

	"github.com/qupled/qupled-go/grid"
	"github.com/qupled/qupled-go/quad"
)

// level3Real evaluates I2_re(x, w, u, Ω), the innermost q-quadrature of the
// real part of ψ (grounded verbatim on qupled's
// compute_dynamic_adr_iet_re_lev3_partial_xwuW / _xwu0 — see
// original_source/dynamic_qstls_iet.c). qMin/qMax bound q to the full grid
// range, matching the original's reuse of the single wave-vector grid for
// every one of x, w, u, q.
func level3Real(x, w, u, omega float64, st grid.State, qMin, qMax float64, ws *quad.Workspace) (float64, error) {
	if x == 0 {
		return 0, nil
	}
	x2 := x * x
	w2 := w * w
	u2 := u * u
	base := x2 + w2 - u2
	if omega == 0 {
		integrand := func(q float64) float64 {
			if q == 0 {
				return 0
			}
			f1 := base + 4*x*q
			f2 := base - 4*x*q
			if f2 == 0 {
				return 0
			}
			logarg := math.Abs(f1 / f2)
			weight := q / (math.Exp(q*q/st.Theta-st.Mu) + math.Exp(-q*q/st.Theta+st.Mu) + 2)
			bracket := (q*q-base*base/(16*x2))*math.Log(logarg) + (q/x)*base/2
			return -3 / (4 * st.Theta) * weight * bracket
		}
		return ws.Integrate(integrand, qMin, qMax, quad.DefaultRelTol)
	}
	omega2 := omega * omega
	integrand := func(q float64) float64 {
		f1 := base + 4*x*q
		f2 := base - 4*x*q
		d1 := f1*f1 - 4*omega2
		d2 := f2*f2 - 4*omega2
		if d2 == 0 {
			return 0
		}
		logarg := math.Abs(d1 / d2)
		weight := q / (math.Exp(q*q/st.Theta-st.Mu) + 1)
		return -3.0 / 8.0 * weight * math.Log(logarg)
	}
	return ws.Integrate(integrand, qMin, qMax, quad.DefaultRelTol)
}

// level3Imag evaluates I2_im(x, w, u, Ω) (grounded on
// compute_dynamic_adr_iet_im_lev3_partial_xwuW), a rectangular-indicator
// integral over q whose bounds and indicator thresholds derive from
// tt = (x²+w²-u²)/2.
func level3Imag(x, w, u, omega float64, st grid.State, ws *quad.Workspace) (float64, error) {
	if x == 0 {
		return 0, nil
	}
	tt := (x*x + w*w - u*u) / 2
	qMin := math.Abs(omega-tt) / (2 * x)
	qMax := (omega + tt) / (2 * x)
	if qMax <= qMin {
		return 0, nil
	}
	hh1 := (tt + omega) / (2 * x)
	hh2 := (tt - omega) / (2 * x)
	integrand := func(q float64) float64 {
		q2 := q * q
		out1, out2 := 0.0, 0.0
		if q2 > hh1*hh1 {
			out1 = 1
		}
		if q2 > hh2*hh2 {
			out2 = -1
		}
		if out1+out2 == 0 {
			return 0
		}
		weight := q / (math.Exp(q2/st.Theta-st.Mu) + 1)
		return 3 * math.Pi / 8 * (out1 + out2) * weight
	}
	return ws.Integrate(integrand, qMin, qMax, quad.DefaultRelTol)
}

// level2 evaluates I1(x, w, Ω) = ∫ u(S(u)-1) I2(x,w,u,Ω) du over
// u ∈ [|w-x|, min(w+x, wMax)] (grounded on
// compute_dynamic_adr_iet_re_lev2/_im_lev2). imag selects I2_im over I2_re.
// sOf interpolates the fixed static structure factor S(u) at arbitrary u.
func level2(x, w, omega float64, st grid.State, uAxis *grid.Axis, sOf func(float64) float64, imag bool, ws *quad.Workspace, sp *quad.TabulatedFunc) (float64, error) {
	uMin := math.Abs(w - x)
	uMax := w + x
	if uMax > uAxis.Max {
		uMax = uAxis.Max
	}
	if uMax <= uMin {
		return 0, nil
	}
	n := uAxis.N()
	xs := make([]float64, n)
	ys := make([]float64, n)
	copy(xs, uAxis.Values)
	for k := 0; k < n; k++ {
		u := xs[k]
		var v float64
		var err error
		if imag {
			v, err = level3Imag(x, w, u, omega, st, ws)
		} else {
			v, err = level3Real(x, w, u, omega, st, uAxis.Values[0], uAxis.Max, ws)
		}
		if err != nil {
			return 0, err
		}
		ys[k] = u * (sOf(u) - 1) * v
	}
	if err := sp.Rebuild(xs, ys); err != nil {
		return 0, err
	}
	return ws.Integrate(sp.Func(), uMin, uMax, quad.DefaultRelTol)
}
