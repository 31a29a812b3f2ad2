package scheme

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/qupled/qupled-go/inp"
)

func smallConfig(theory string) *inp.Config {
	return &inp.Config{
		Theory: theory, Mode: "static",
		Rs: 1.0, Theta: 1.0,
		Dx: 0.5, Xmax: 3.0,
		Nl: 4, Iter: 20, MinErr: 1e-3, Mix: 0.3,
		MuGuessLo: -10, MuGuessHi: 10,
		DynDw: 0.5, DynWmax: 2.0, DynXtarget: 1.0,
		Omp: 1, IetMapping: "standard",
		QstlsIetStat: 1, VsAlpha: 0.7, VsMinErr: 1e-2,
	}
}

func TestRunRPAProducesZeroAtOrigin(t *testing.T) {
	res, err := Run(smallConfig("RPA"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	chk.Scalar(t, "S(x=0)", 1e-12, res.S[0], 0)
}

func TestRunSTLSStaysFinite(t *testing.T) {
	res, err := Run(smallConfig("STLS"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for i, v := range res.S {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("S[%d] is non-finite: %v", i, v)
		}
	}
}

func TestRunVSSTLSSolvesCsrAwayFromInitialGuess(t *testing.T) {
	cfg := smallConfig("VSSTLS")
	cfg.VsDrs, cfg.VsDt, cfg.VsSolveCsr = 0.05, 0.05, 1
	res, err := Run(cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	// A CSR residual that genuinely depends on alpha (through
	// ssf.Static's alpha*G term) need not root at the initial guess,
	// unlike the disguised alpha-independent stub this replaces.
	for i, v := range res.S {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("S[%d] is non-finite: %v", i, v)
		}
	}
	if math.IsNaN(res.VSAlpha) || math.IsInf(res.VSAlpha, 0) {
		t.Fatalf("VSAlpha is non-finite: %v", res.VSAlpha)
	}
	if res.VSAlpha == cfg.VsAlpha {
		t.Fatalf("expected the CSR search to move alpha away from the initial guess %v", cfg.VsAlpha)
	}
}

func TestRunVSSTLSSkipsCsrWhenDisabled(t *testing.T) {
	cfg := smallConfig("VSSTLS")
	cfg.VsDrs, cfg.VsDt, cfg.VsSolveCsr = 0.05, 0.05, 0
	res, err := Run(cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	chk.Scalar(t, "alpha unchanged when CSR is disabled", 1e-9, res.VSAlpha, cfg.VsAlpha)
}
