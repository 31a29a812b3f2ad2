package vs

import (
	"bufio"
	"math"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/qupled/qupled-go/out"
)

// thermoTol bounds how far a cached rs sample may drift from the requested
// grid before ThermoDerivative treats the cache file as stale.
const thermoTol = 1e-9

// ThermoFunc evaluates the coupling-constant-integrated internal energy
// u(rs) at the fixed Θ, α and bridge mapping of the current run.
type ThermoFunc func(rs float64) (float64, error)

// ThermoDerivative estimates rs·∂²(rs·f_xc)/∂rs² at rs0 by a three-point
// central difference of rs·u(rs) over step drs — the thermodynamic side of
// the CSR consistency check (spec §4.K: "a small grid of (rs, Θ) points
// near the target to assemble the needed derivatives"). If path is
// non-empty and already holds a sample triple on the same rs grid, the
// three u(rs) evaluations (each a full inner Picard solve) are skipped;
// otherwise f is called three times and the samples are persisted to path.
func ThermoDerivative(f ThermoFunc, rs0, drs float64, path string) (float64, error) {
	if drs <= 0 {
		return 0, chk.Err("vs: thermodynamic rs step must be positive, got %v", drs)
	}
	rs := []float64{rs0 - drs, rs0, rs0 + drs}

	u, err := loadThermoSamples(path, rs)
	if err != nil {
		return 0, err
	}
	if u == nil {
		u = make([]float64, len(rs))
		for i, r := range rs {
			v, err := f(r)
			if err != nil {
				return 0, err
			}
			u[i] = v
		}
		if path != "" {
			if err := out.WriteTable(path, rs, u); err != nil {
				return 0, err
			}
		}
	}

	fM, f0, fP := rs[0]*u[0], rs[1]*u[1], rs[2]*u[2]
	return (fP - 2*f0 + fM) / (drs * drs), nil
}

// loadThermoSamples reads a rs/u table previously written by
// ThermoDerivative and returns its u column if the rs column matches want
// within thermoTol. It returns (nil, nil) on any miss — a missing file, a
// parse failure, or a grid mismatch — since a stale or absent cache is not
// an error, just a cue to recompute.
func loadThermoSamples(path string, want []float64) ([]float64, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := io.ReadFile(path)
	if err != nil {
		return nil, nil
	}
	var rs, u []float64
	scanner := bufio.NewScanner(strings.NewReader(string(raw)))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			return nil, nil
		}
		rv, err1 := strconv.ParseFloat(fields[0], 64)
		uv, err2 := strconv.ParseFloat(fields[1], 64)
		if err1 != nil || err2 != nil {
			return nil, nil
		}
		rs = append(rs, rv)
		u = append(u, uv)
	}
	if len(rs) != len(want) {
		return nil, nil
	}
	for i, w := range want {
		if math.Abs(rs[i]-w) > thermoTol {
			return nil, nil
		}
	}
	return u, nil
}
