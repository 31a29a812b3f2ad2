package worker

import "testing"

func TestBlocksCoverRangeExactlyOnce(t *testing.T) {
	n := 17
	for _, nThreads := range []int{1, 2, 3, 4, 8, 100} {
		blocks := Blocks(n, nThreads)
		seen := make([]bool, n)
		for _, b := range blocks {
			for i := b[0]; i < b[1]; i++ {
				if seen[i] {
					t.Fatalf("index %d covered twice with nThreads=%d", i, nThreads)
				}
				seen[i] = true
			}
		}
		for i, ok := range seen {
			if !ok {
				t.Fatalf("index %d never covered with nThreads=%d", i, nThreads)
			}
		}
	}
}

func TestRunWritesDisjointCells(t *testing.T) {
	n := 50
	out := make([]float64, n)
	Run(n, 4, func() *Scratch { return NewScratch(n) }, func(lo, hi int, s *Scratch) {
		for i := lo; i < hi; i++ {
			out[i] = float64(i) * 2
		}
	})
	for i := 0; i < n; i++ {
		if out[i] != float64(i)*2 {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], float64(i)*2)
		}
	}
}
