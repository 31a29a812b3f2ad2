// package out writes the two-column result tables and the binary restart
// guess file of spec §6, using github.com/cpmech/gosl/io's file helpers the
// way inp/sim.go reads and writes simulation files.
package out

import (
	"bytes"
	"encoding/binary"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// IOError reports a failed open/read/write/close of an output or cache file
// (spec §7).
type IOError struct {
	msg string
}

func (e *IOError) Error() string { return e.msg }
func (e *IOError) Kind() string  { return "IOError" }

func ioErr(format string, args ...interface{}) *IOError {
	return &IOError{msg: chk.Err(format, args...).Error()}
}

// WriteTable writes a two-column "x value" text file (ssf_<scheme>.dat,
// slfc_<scheme>.dat, dsf_<scheme>.dat — spec §6).
func WriteTable(path string, x, y []float64) error {
	if len(x) != len(y) {
		return ioErr("out: mismatched column lengths %d/%d for %q", len(x), len(y), path)
	}
	var buf bytes.Buffer
	for i := range x {
		io.Ff(&buf, "%.10e %.10e\n", x[i], y[i])
	}
	if err := io.WriteFileV(path, &buf); err != nil {
		return ioErr("out: cannot write %q: %v", path, err)
	}
	return nil
}

// guessHeader mirrors the layout written before φ and S_HF in
// dens_response.bin: enough of the input state to validate a restart.
type guessHeader struct {
	NX    int32
	DX    float64
	XMax  float64
	Theta float64
	Rs    float64
}

// GuessFile bundles the restart payload of spec §6: "(input-header, φ,
// S_HF)".
type GuessFile struct {
	Rs, Theta, Dx, Xmax float64
	Phi                 []float64 // flattened (n_x * n_l)
	Shf                 []float64 // length n_x
}

// WriteGuess persists g to path in a fixed little-endian layout analogous to
// adr's cache file (spec §4.I). scheme.Run and scheme.OutputFiles do not call
// it, so `--mode guess` writes no guess file.
func WriteGuess(path string, g *GuessFile) error {
	var buf bytes.Buffer
	hdr := guessHeader{NX: int32(len(g.Shf)), DX: g.Dx, XMax: g.Xmax, Theta: g.Theta, Rs: g.Rs}
	if err := binary.Write(&buf, binary.LittleEndian, &hdr); err != nil {
		return ioErr("out: cannot encode guess header for %q: %v", path, err)
	}
	if err := binary.Write(&buf, binary.LittleEndian, g.Phi); err != nil {
		return ioErr("out: cannot encode guess phi payload for %q: %v", path, err)
	}
	if err := binary.Write(&buf, binary.LittleEndian, g.Shf); err != nil {
		return ioErr("out: cannot encode guess shf payload for %q: %v", path, err)
	}
	if err := io.WriteFileV(path, &buf); err != nil {
		return ioErr("out: cannot write %q: %v", path, err)
	}
	return nil
}

// ReadGuess reads back a guess file written by WriteGuess. nl is the
// Matsubara truncation used to size the flattened φ payload.
func ReadGuess(path string, nl int) (*GuessFile, error) {
	raw, err := io.ReadFile(path)
	if err != nil {
		return nil, ioErr("out: cannot read guess file %q: %v", path, err)
	}
	r := bytes.NewReader(raw)
	var hdr guessHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, ioErr("out: truncated guess header in %q: %v", path, err)
	}
	g := &GuessFile{Rs: hdr.Rs, Theta: hdr.Theta, Dx: hdr.DX, Xmax: hdr.XMax}
	g.Phi = make([]float64, int(hdr.NX)*nl)
	g.Shf = make([]float64, int(hdr.NX))
	if err := binary.Read(r, binary.LittleEndian, g.Phi); err != nil {
		return nil, ioErr("out: truncated guess phi payload in %q: %v", path, err)
	}
	if err := binary.Read(r, binary.LittleEndian, g.Shf); err != nil {
		return nil, ioErr("out: truncated guess shf payload in %q: %v", path, err)
	}
	return g, nil
}
