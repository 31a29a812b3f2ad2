package adr

import (
	"sync"

	"github.com/qupled/qupled-go/field"
	"github.com/qupled/qupled-go/grid"
	"github.com/qupled/qupled-go/quad"
	"github.com/qupled/qupled-go/worker"
)

// FixedKernel holds the state-point-independent inner integral of ψ, tabulated
// on (target x index, Ω index, w index) — spec §3's K_fixed[i,j,k] — together
// with a Populated flag distinguishing "freshly allocated" from "computed"
// (spec §9, "Cache sentinel values"). Only Compute sets Populated: the cache
// file of cache.go holds φ and ψ, not K_fixed, so no kernel is ever loaded
// from disk.
//
// Grounding: tracing compute_dynamic_adr_iet_re_lev1's compute_fixed /
// write_dynamic_adr_iet_fixed / read_dynamic_adr_iet_fixed logic together with
// compute_dynamic_adr_iet_re_lev2's own loop over the w grid shows that what
// is cached is K_fixed[i,j,k] = I1(x_i, w_k, Ω_j) — the level-2 (u-integral)
// result, not the level-3 (q-integral) result. This is valid to cache across
// the whole ψ Picard loop because S(u) is held fixed throughout that loop in
// the reference solver: S is converged by the static scheme before the
// dynamic loop ever starts (spec §1, data flow A → C → D → {G → F → H}).
type FixedKernel struct {
	Re        *field.Field3D
	Im        *field.Field3D
	Populated bool
}

// NewFixedKernel allocates an unpopulated kernel shaped (nx, nOmega, nw).
func NewFixedKernel(nx, nOmega, nw int) *FixedKernel {
	return &FixedKernel{
		Re: field.NewField3D(nx, nOmega, nw),
		Im: field.NewField3D(nx, nOmega, nw),
	}
}

// Compute fills K_fixed from scratch by evaluating I1(x_i, w_k, Ω_j) for the
// real and imaginary branches of the level-3 integrand, over every target
// index i. xAxis supplies both the target-x and inner-w/u/q grids (a single
// grid serves all four roles, matching the reference solver); omegaAxis is
// the frequency grid. s is the fixed static structure factor sampled on
// xAxis.
//
// The outer target index i is the unit of work handed to worker.Run's static
// block partition (spec §4.J: "the outer pair (x_i, Ω_j) is the unit of
// work... work assignment is a static block partition over i"); each worker
// owns its own quadrature workspace and spline tables and writes only into
// the (i, *, *) slab it was assigned, so no locking is needed.
func (k *FixedKernel) Compute(xAxis, omegaAxis *grid.Axis, st grid.State, s []float64, nThreads int) error {
	sSpline := &quad.TabulatedFunc{}
	if err := sSpline.Rebuild(xAxis.Values, s); err != nil {
		return err
	}
	sOf := sSpline.Func()
	nOmega, nw := k.Re.N1, k.Re.N2

	var workErr error
	var mu sync.Mutex
	worker.Run(k.Re.N0, nThreads, func() *worker.Scratch { return worker.NewScratch(xAxis.N()) },
		func(lo, hi int, sc *worker.Scratch) {
			ws := sc.Workspace
			sp := sc.SplineA
			for i := lo; i < hi; i++ {
				x := xAxis.At(i)
				for j := 0; j < nOmega; j++ {
					omega := omegaAxis.At(j)
					for kk := 0; kk < nw; kk++ {
						w := xAxis.At(kk)
						re, err := level2(x, w, omega, st, xAxis, sOf, false, ws, sp)
						if err != nil {
							mu.Lock()
							workErr = err
							mu.Unlock()
							return
						}
						im, err := level2(x, w, omega, st, xAxis, sOf, true, ws, sc.SplineB)
						if err != nil {
							mu.Lock()
							workErr = err
							mu.Unlock()
							return
						}
						k.Re.Set(i, j, kk, re)
						k.Im.Set(i, j, kk, im)
					}
				}
			}
		})
	if workErr != nil {
		return workErr
	}
	k.Populated = true
	return nil
}
