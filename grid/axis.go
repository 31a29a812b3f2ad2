// package grid builds the uniform wave-vector and frequency grids shared by
// every closure, and solves the Fermi-Dirac normalization for the chemical
// potential μ(Θ).
package grid

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Axis is a uniform 1-D grid with n = floor(max/delta) intervals.
//
// Centered chooses the cell-centred convention x_i = (i+1/2)*Delta; the
// alternative is the node-centred convention x_i = i*Delta. The convention
// is fixed once per run (spec §9, "Wave-vector grid origin") and must match
// across every persisted cache file for the same run.
type Axis struct {
	Delta    float64
	Max      float64
	Centered bool
	Values   []float64
}

// NewAxis builds a uniform axis from a (Δ, max) pair.
func NewAxis(delta, max float64, centered bool) (*Axis, error) {
	if delta <= 0 {
		return nil, chk.Err("grid: delta must be positive, got %v", delta)
	}
	if max <= 0 {
		return nil, chk.Err("grid: max must be positive, got %v", max)
	}
	n := int(math.Floor(max / delta))
	if n < 2 {
		return nil, chk.Err("grid: too few points (n=%d) for delta=%v max=%v", n, delta, max)
	}
	a := &Axis{Delta: delta, Max: max, Centered: centered, Values: make([]float64, n)}
	for i := 0; i < n; i++ {
		if centered {
			a.Values[i] = (float64(i) + 0.5) * delta
		} else {
			a.Values[i] = float64(i) * delta
		}
	}
	return a, nil
}

// N returns the number of grid points.
func (a *Axis) N() int { return len(a.Values) }

// At returns the i-th grid value, panicking on an out-of-range index; the
// grid is read-only for the lifetime of a run (spec §3 "Lifecycles").
func (a *Axis) At(i int) float64 { return a.Values[i] }

// IndexOf returns the index i such that Values[i] is within Δ/2 of x, or -1.
// Used by the dynamic scheme to locate the grid point nearest the configured
// target wave-vector; S(x, Ω) is evaluated at that grid point (index 0 when
// IndexOf returns -1), and φ and ψ are not interpolated to the exact target.
func (a *Axis) IndexOf(x float64) int {
	for i, v := range a.Values {
		if math.Abs(v-x) < a.Delta/2 {
			return i
		}
	}
	return -1
}
