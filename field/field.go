// package field implements the dense rectangular index-to-float64 mappings
// used throughout the solver (spec §9, "Multi-dimensional arrays"): a
// strided buffer with bounds-checked (i,j[,k]) access and row-major
// iteration order, matching what the cache file layout of spec §4.I
// requires on disk.
package field

import "github.com/cpmech/gosl/chk"

// Field2D is a dense (n0 x n1) row-major array of float64, used for
// S(x), G(x), b(x) and the φ/ψ real-frequency fields (spec §3).
type Field2D struct {
	N0, N1 int
	Data   []float64
}

// NewField2D allocates a zeroed Field2D.
func NewField2D(n0, n1 int) *Field2D {
	return &Field2D{N0: n0, N1: n1, Data: make([]float64, n0*n1)}
}

func (f *Field2D) index(i, j int) int {
	if i < 0 || i >= f.N0 || j < 0 || j >= f.N1 {
		chk.Panic("field: index (%d,%d) out of range for shape (%d,%d)", i, j, f.N0, f.N1)
	}
	return i*f.N1 + j
}

// At returns the value at (i,j).
func (f *Field2D) At(i, j int) float64 { return f.Data[f.index(i, j)] }

// Set assigns the value at (i,j).
func (f *Field2D) Set(i, j int, v float64) { f.Data[f.index(i, j)] = v }

// Row returns the contiguous slice backing row i (for j=0..N1-1). The
// returned slice aliases the field's storage.
func (f *Field2D) Row(i int) []float64 {
	if i < 0 || i >= f.N0 {
		chk.Panic("field: row %d out of range for shape (%d,%d)", i, f.N0, f.N1)
	}
	return f.Data[i*f.N1 : (i+1)*f.N1]
}

// Field3D is a dense (n0 x n1 x n2) row-major array of float64, used for the
// fixed-kernel cache K_fixed[i,j,k] (spec §3).
type Field3D struct {
	N0, N1, N2 int
	Data       []float64
}

// NewField3D allocates a zeroed Field3D.
func NewField3D(n0, n1, n2 int) *Field3D {
	return &Field3D{N0: n0, N1: n1, N2: n2, Data: make([]float64, n0*n1*n2)}
}

func (f *Field3D) index(i, j, k int) int {
	if i < 0 || i >= f.N0 || j < 0 || j >= f.N1 || k < 0 || k >= f.N2 {
		chk.Panic("field: index (%d,%d,%d) out of range for shape (%d,%d,%d)", i, j, k, f.N0, f.N1, f.N2)
	}
	return (i*f.N1+j)*f.N2 + k
}

// At returns the value at (i,j,k).
func (f *Field3D) At(i, j, k int) float64 { return f.Data[f.index(i, j, k)] }

// Set assigns the value at (i,j,k).
func (f *Field3D) Set(i, j, k int, v float64) { f.Data[f.index(i, j, k)] = v }

// Lane returns the contiguous slice backing (i,j,*). The returned slice
// aliases the field's storage.
func (f *Field3D) Lane(i, j int) []float64 {
	if i < 0 || i >= f.N0 || j < 0 || j >= f.N1 {
		chk.Panic("field: lane (%d,%d) out of range for shape (%d,%d,%d)", i, j, f.N0, f.N1, f.N2)
	}
	start := (i*f.N1 + j) * f.N2
	return f.Data[start : start+f.N2]
}
