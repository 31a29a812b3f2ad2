// package worker runs a static block partition of the outer wave-vector
// index across a fixed pool of goroutines (spec §4.J, §5), generalizing the
// go func(...){ ...; done <- 1 }() fan-out/join pattern of
// fem/t_bh_test.go from a fixed set of independent test analyses to a
// configurable n_threads.
package worker

import (
	"github.com/qupled/qupled-go/quad"
)

// Scratch is the per-worker workspace of spec §4.J: "two spline tables, one
// quadrature workspace, two scratch buffers of length n_x". It must never be
// shared across workers — each block owns exactly one.
type Scratch struct {
	Workspace    *quad.Workspace
	SplineA      *quad.TabulatedFunc
	SplineB      *quad.TabulatedFunc
	BufA, BufB   []float64
}

// NewScratch allocates a Scratch sized for an n-point x-grid.
func NewScratch(n int) *Scratch {
	return &Scratch{
		Workspace: quad.NewWorkspace(),
		SplineA:   &quad.TabulatedFunc{},
		SplineB:   &quad.TabulatedFunc{},
		BufA:      make([]float64, n),
		BufB:      make([]float64, n),
	}
}

// Blocks splits [0, n) into nThreads contiguous, near-equal index ranges
// (spec §4.J: "work assignment is a static block partition over i"). Ranges
// are returned as [lo, hi) pairs; nThreads <= 0 is treated as 1.
func Blocks(n, nThreads int) [][2]int {
	if nThreads < 1 {
		nThreads = 1
	}
	if nThreads > n {
		nThreads = n
	}
	out := make([][2]int, 0, nThreads)
	base := n / nThreads
	rem := n % nThreads
	lo := 0
	for t := 0; t < nThreads; t++ {
		size := base
		if t < rem {
			size++
		}
		hi := lo + size
		out = append(out, [2]int{lo, hi})
		lo = hi
	}
	return out
}

// Run partitions [0, n) into nThreads blocks and invokes fn(lo, hi, scratch)
// once per block on its own goroutine, joining before returning. fn must
// only write into the disjoint output cells owned by [lo, hi) (spec §5,
// "Shared resources": no locks are required under this discipline).
func Run(n, nThreads int, newScratch func() *Scratch, fn func(lo, hi int, s *Scratch)) {
	blocks := Blocks(n, nThreads)
	done := make(chan int, len(blocks))
	for _, b := range blocks {
		go func(lo, hi int) {
			fn(lo, hi, newScratch())
			done <- 1
		}(b[0], b[1])
	}
	for range blocks {
		<-done
	}
}
