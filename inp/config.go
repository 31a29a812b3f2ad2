// package inp parses and validates the run configuration (spec §6): a CLI
// flag set instead of a JSON (.sim) file, keeping the same chk.Err-based
// validation idiom.
package inp

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/qupled/qupled-go/theory"
)

// ConfigError reports a configuration value that violates a documented
// constraint (spec §7).
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string { return e.msg }
func (e *ConfigError) Kind() string  { return "ConfigError" }

func configErr(format string, args ...interface{}) *ConfigError {
	return &ConfigError{msg: chk.Err(format, args...).Error()}
}

// LoggingConfig gates the io.Pf/Pfred/Pfyel diagnostics (spec §9, "Mutable
// global state": a single process-wide debug boolean is abstracted here as a
// value handed to constructors, not a package global).
type LoggingConfig struct {
	Verbose bool
}

// Config bundles every flag of spec §6's CLI surface.
type Config struct {
	Theory string
	Mode   string // static, dynamic, guess

	Rs, Theta float64
	Dx, Xmax  float64
	Nl        int

	Iter   int
	MinErr float64
	Mix    float64

	MuGuessLo, MuGuessHi float64

	DynDw, DynWmax, DynXtarget float64

	Omp int

	IetMapping string

	StlsGuess    string
	QstlsGuess   string
	QstlsFix     string
	QstlsIetFix  string
	QstlsIetStat int // 1 = partially-dynamic, 0 = fully-dynamic

	VsDrs, VsDt, VsAlpha, VsMinErr, VsMix float64
	VsSolveCsr                            int
	VsThermoFile                          string

	Log LoggingConfig
}

// ParseFlags parses args (typically os.Args[1:]) into a Config using the
// standard flag package, matching the defaults of spec §6's flag table. It
// does not validate; call Validate separately, keeping parsing and
// constraint-checking as distinct steps.
func ParseFlags(args []string) (*Config, error) {
	fs := flag.NewFlagSet("qupled", flag.ContinueOnError)
	c := &Config{}

	fs.StringVar(&c.Theory, "theory", "STLS", "closure to solve")
	fs.StringVar(&c.Mode, "mode", "static", "static, dynamic, or guess")
	fs.Float64Var(&c.Rs, "rs", 1.0, "coupling parameter")
	fs.Float64Var(&c.Theta, "Theta", 1.0, "degeneracy parameter")
	fs.Float64Var(&c.Dx, "dx", 0.1, "x-grid resolution")
	fs.Float64Var(&c.Xmax, "xmax", 20.0, "x-grid cutoff")
	fs.IntVar(&c.Nl, "nl", 128, "Matsubara truncation")
	fs.IntVar(&c.Iter, "iter", 1000, "Picard iteration cap")
	fs.Float64Var(&c.MinErr, "min-err", 1e-5, "Picard convergence threshold")
	fs.Float64Var(&c.Mix, "mix", 0.1, "Picard mixing parameter")
	fs.Float64Var(&c.MuGuessLo, "mu-guess-lo", -10, "chemical potential bracket, lower")
	fs.Float64Var(&c.MuGuessHi, "mu-guess-hi", 10, "chemical potential bracket, upper")
	fs.Float64Var(&c.DynDw, "dyn-dw", 0.1, "real-frequency grid resolution")
	fs.Float64Var(&c.DynWmax, "dyn-wmax", 20.0, "real-frequency grid cutoff")
	fs.Float64Var(&c.DynXtarget, "dyn-xtarget", 1.0, "target wave-vector for S(x,Omega)")
	fs.IntVar(&c.Omp, "omp", 1, "worker count")
	fs.StringVar(&c.IetMapping, "iet-mapping", "standard", "standard, sqrt, or linear")
	fs.StringVar(&c.StlsGuess, "stls-guess", "", "STLS restart guess file")
	fs.StringVar(&c.QstlsGuess, "qstls-guess", "", "QSTLS restart guess file")
	fs.StringVar(&c.QstlsFix, "qstls-fix", "", "QSTLS fixed-kernel cache file")
	fs.StringVar(&c.QstlsIetFix, "qstls-iet-fix", "", "QSTLS-IET fixed-kernel cache file")
	fs.IntVar(&c.QstlsIetStat, "qstls-iet-static", 1, "1=partially-dynamic, 0=fully-dynamic")
	fs.Float64Var(&c.VsDrs, "vs-drs", 0.01, "VS thermodynamic rs grid step")
	fs.Float64Var(&c.VsDt, "vs-dt", 0.01, "VS thermodynamic Theta grid step")
	fs.Float64Var(&c.VsAlpha, "vs-alpha", 0.7, "VS CSR parameter initial guess")
	fs.Float64Var(&c.VsMinErr, "vs-min-err", 1e-3, "VS outer-loop convergence threshold")
	fs.Float64Var(&c.VsMix, "vs-mix", 0.1, "VS outer-loop secant damping")
	fs.IntVar(&c.VsSolveCsr, "vs-solve-csr", 1, "enforce the CSR outer loop")
	fs.StringVar(&c.VsThermoFile, "vs-thermo-file", "", "VS thermodynamic derivative cache file")
	fs.BoolVar(&c.Log.Verbose, "verbose", false, "verbose diagnostics")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks every documented constraint of spec §6/§7, returning the
// first violation found as a ConfigError.
func (c *Config) Validate() error {
	if _, err := theory.Lookup(c.Theory); err != nil {
		return configErr("unknown theory %q", c.Theory)
	}
	switch c.Mode {
	case "static", "dynamic", "guess":
	default:
		return configErr("unknown mode %q", c.Mode)
	}
	if c.Rs <= 0 {
		return configErr("rs must be positive, got %v", c.Rs)
	}
	if c.Theta < 0 {
		return configErr("Theta must be non-negative, got %v", c.Theta)
	}
	if c.Dx <= 0 {
		return configErr("dx must be positive, got %v", c.Dx)
	}
	if c.Xmax <= 0 {
		return configErr("xmax must be positive, got %v", c.Xmax)
	}
	if c.Nl < 1 {
		return configErr("nl must be >= 1, got %d", c.Nl)
	}
	if c.Iter < 1 {
		return configErr("iter must be >= 1, got %d", c.Iter)
	}
	if c.MinErr <= 0 {
		return configErr("min-err must be positive, got %v", c.MinErr)
	}
	if c.Mix <= 0 || c.Mix > 1 {
		return configErr("mix must be in (0,1], got %v", c.Mix)
	}
	if c.MuGuessLo >= c.MuGuessHi {
		return configErr("mu-guess-lo (%v) must be < mu-guess-hi (%v)", c.MuGuessLo, c.MuGuessHi)
	}
	if c.Mode == "dynamic" {
		if c.DynDw <= 0 {
			return configErr("dyn-dw must be positive, got %v", c.DynDw)
		}
		if c.DynWmax <= 0 {
			return configErr("dyn-wmax must be positive, got %v", c.DynWmax)
		}
		if c.DynXtarget < 0 {
			return configErr("dyn-xtarget must be non-negative, got %v", c.DynXtarget)
		}
		if c.QstlsIetStat != 0 && c.QstlsIetStat != 1 {
			return configErr("qstls-iet-static must be 0 or 1, got %d", c.QstlsIetStat)
		}
	}
	if c.Omp < 1 {
		return configErr("omp must be >= 1, got %d", c.Omp)
	}
	switch c.IetMapping {
	case "standard", "sqrt", "linear":
	default:
		return configErr("unknown iet-mapping %q", c.IetMapping)
	}
	if c.VsSolveCsr != 0 && c.VsSolveCsr != 1 {
		return configErr("vs-solve-csr must be 0 or 1, got %d", c.VsSolveCsr)
	}
	return nil
}
