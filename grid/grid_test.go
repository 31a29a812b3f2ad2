package grid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestNewAxisCentered(t *testing.T) {
	a, err := NewAxis(0.1, 2.0, true)
	if err != nil {
		t.Fatalf("NewAxis failed: %v", err)
	}
	chk.Scalar(t, "n", 1e-15, float64(a.N()), 20)
	chk.Scalar(t, "x0", 1e-15, a.At(0), 0.05)
	chk.Scalar(t, "x_last", 1e-15, a.At(a.N()-1), 1.95)
}

func TestNewAxisNodeCentered(t *testing.T) {
	a, err := NewAxis(0.1, 2.0, false)
	if err != nil {
		t.Fatalf("NewAxis failed: %v", err)
	}
	chk.Scalar(t, "x0", 1e-15, a.At(0), 0.0)
	chk.Scalar(t, "x1", 1e-15, a.At(1), 0.1)
}

func TestNewAxisRejectsBadInput(t *testing.T) {
	if _, err := NewAxis(-0.1, 2.0, true); err == nil {
		t.Fatalf("expected ConfigError for negative delta")
	}
	if _, err := NewAxis(0.1, -2.0, true); err == nil {
		t.Fatalf("expected ConfigError for negative max")
	}
}

func TestSolveMuBracketFailure(t *testing.T) {
	if _, err := SolveMu(1.0, 10, -10); err == nil {
		t.Fatalf("expected ConfigError for empty bracket")
	}
}

func TestSolveMuDegenerateLimit(t *testing.T) {
	// At small Theta the gas is strongly degenerate and mu should sit well
	// above zero, close to the Fermi energy in reduced units.
	mu, err := SolveMu(0.1, -10, 10)
	if err != nil {
		t.Fatalf("SolveMu failed: %v", err)
	}
	if mu <= 0 {
		t.Fatalf("expected a positive chemical potential at small Theta, got %v", mu)
	}
}

func TestSolveMuClassicalLimit(t *testing.T) {
	// At large Theta the gas is non-degenerate and mu should be large and
	// negative (Boltzmann regime).
	mu, err := SolveMu(50.0, -10, 10)
	if err != nil {
		t.Fatalf("SolveMu failed: %v", err)
	}
	if mu >= 0 {
		t.Fatalf("expected a negative chemical potential at large Theta, got %v", mu)
	}
}
