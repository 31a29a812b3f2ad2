package adr

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/qupled/qupled-go/field"
	"github.com/qupled/qupled-go/grid"
)

// DblTol is the header-comparison tolerance of spec §4.I (`DBL_TOL`).
const DblTol = 1e-10

// CacheMismatch reports a header or EOF mismatch on cache load (spec §7,
// component I). It is fatal, unlike picard.NumericalFailure.
type CacheMismatch struct {
	Reason string
}

func (e *CacheMismatch) Error() string {
	return chk.Err("adr: cache mismatch: %s", e.Reason).Error()
}

func (e *CacheMismatch) Kind() string { return "CacheMismatch" }

// Snapshot bundles the four fields persisted by the fixed-kernel cache: the
// real-frequency Lindhard response and the auxiliary response, both on the
// (x, Ω) grid (spec §4.I).
type Snapshot struct {
	PhiRe, PhiIm, PsiRe, PsiIm *field.Field2D
}

type cacheHeader struct {
	NX     int32
	DX     float64
	XMax   float64
	NW     int32
	DW     float64
	WMax   float64
	Theta  float64
	Rs     float64
}

// WriteCache writes s to path in the exact little-endian binary layout of
// spec §4.I: a fixed header followed by the flat row-major (x-then-Ω)
// concatenation of φ_re, φ_im, ψ_re, ψ_im.
func WriteCache(path string, xAxis, wAxis *grid.Axis, st grid.State, s *Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return chk.Err("adr: cannot create cache file %q: %v", path, err)
	}
	defer f.Close()

	hdr := cacheHeader{
		NX: int32(xAxis.N()), DX: xAxis.Delta, XMax: xAxis.Max,
		NW: int32(wAxis.N()), DW: wAxis.Delta, WMax: wAxis.Max,
		Theta: st.Theta, Rs: st.Rs,
	}
	if err := binary.Write(f, binary.LittleEndian, &hdr); err != nil {
		return chk.Err("adr: cannot write cache header to %q: %v", path, err)
	}
	for _, fd := range []*field.Field2D{s.PhiRe, s.PhiIm, s.PsiRe, s.PsiIm} {
		if err := binary.Write(f, binary.LittleEndian, fd.Data); err != nil {
			return chk.Err("adr: cannot write cache payload to %q: %v", path, err)
		}
	}
	return nil
}

// ReadCache loads and validates a cache file against the current run's grids
// and state point, returning CacheMismatch on any header or trailing-byte
// discrepancy (spec §4.I, §8 invariants 4 and 5).
func ReadCache(path string, xAxis, wAxis *grid.Axis, st grid.State) (*Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, chk.Err("adr: cannot read cache file %q: %v", path, err)
	}
	r := bytes.NewReader(raw)

	var hdr cacheHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, &CacheMismatch{Reason: "truncated header"}
	}
	if int(hdr.NX) != xAxis.N() {
		return nil, &CacheMismatch{Reason: "State point from imported file is incompatible: n_x mismatch"}
	}
	if int(hdr.NW) != wAxis.N() {
		return nil, &CacheMismatch{Reason: "State point from imported file is incompatible: n_W mismatch"}
	}
	if err := closeEnough("dx", hdr.DX, xAxis.Delta); err != nil {
		return nil, err
	}
	if err := closeEnough("x_max", hdr.XMax, xAxis.Max); err != nil {
		return nil, err
	}
	if err := closeEnough("dW", hdr.DW, wAxis.Delta); err != nil {
		return nil, err
	}
	if err := closeEnough("W_max", hdr.WMax, wAxis.Max); err != nil {
		return nil, err
	}
	if err := closeEnough("Theta", hdr.Theta, st.Theta); err != nil {
		return nil, err
	}
	if err := closeEnough("rs", hdr.Rs, st.Rs); err != nil {
		return nil, err
	}

	nx, nw := xAxis.N(), wAxis.N()
	snap := &Snapshot{
		PhiRe: field.NewField2D(nx, nw), PhiIm: field.NewField2D(nx, nw),
		PsiRe: field.NewField2D(nx, nw), PsiIm: field.NewField2D(nx, nw),
	}
	for _, fd := range []*field.Field2D{snap.PhiRe, snap.PhiIm, snap.PsiRe, snap.PsiIm} {
		if err := binary.Read(r, binary.LittleEndian, fd.Data); err != nil {
			return nil, &CacheMismatch{Reason: "truncated payload"}
		}
	}
	// An unconsumed PopulatedSentinel in slot [0] of either psi field means
	// the file was written by a run that never finished computing psi (spec
	// §9, "Sentinel-valued cache slots") — reject it rather than hand back a
	// snapshot with a bogus +Inf cell.
	if isSentinel(snap.PsiRe) || isSentinel(snap.PsiIm) {
		return nil, &CacheMismatch{Reason: "State point from imported file is incompatible: unpopulated psi sentinel"}
	}
	// The file must end exactly after the payload: one trailing-byte probe
	// must hit EOF.
	var probe [1]byte
	if _, err := r.Read(probe[:]); err != io.EOF {
		return nil, &CacheMismatch{Reason: "trailing bytes after payload"}
	}
	return snap, nil
}

func closeEnough(name string, got, want float64) error {
	if math.Abs(got-want) > DblTol {
		return &CacheMismatch{Reason: chk.Err("State point from imported file is incompatible: %s mismatch: file has %v, run has %v", name, got, want).Error()}
	}
	return nil
}

// PopulatedSentinel marks slot [0] of a freshly-allocated Field2D as "not yet
// computed" using +Inf (spec §9, "Sentinel-valued cache slots"). The
// in-memory FixedKernel.Populated flag, set only by FixedKernel.Compute,
// tracks the kernel itself; this sentinel applies only to the ψ fields of a
// cache file. ReadCache calls isSentinel to reject a cache file whose psi
// payload still carries it.
func PopulatedSentinel(fd *field.Field2D) {
	if len(fd.Data) > 0 {
		fd.Data[0] = math.Inf(1)
	}
}

// isSentinel reports whether fd still carries the PopulatedSentinel marker.
func isSentinel(fd *field.Field2D) bool {
	return len(fd.Data) > 0 && math.IsInf(fd.Data[0], 1)
}
