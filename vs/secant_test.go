package vs

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestRunFindsLinearRoot(t *testing.T) {
	residual := func(alpha float64) (float64, error) {
		return 2*alpha - 1.4, nil // root at alpha = 0.7
	}
	ctl := Controls{MaxIters: 50, EpsAlpha: 1e-10, AlphaInit: 0.5}
	res, err := Run(residual, ctl)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	chk.Scalar(t, "alpha", 1e-6, res.Alpha, 0.7)
	if res.Warning != nil {
		t.Fatalf("unexpected warning: %v", res.Warning)
	}
}

func TestRunReportsWarningWhenSecantStalls(t *testing.T) {
	residual := func(alpha float64) (float64, error) {
		return 1.0, nil // constant: the secant step is undefined, so Run stops with |Δα| above EpsAlpha
	}
	ctl := Controls{MaxIters: 3, EpsAlpha: 1e-12, AlphaInit: 0.5}
	res, err := Run(residual, ctl)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Warning == nil {
		t.Fatalf("expected a NumericalFailure warning")
	}
}
