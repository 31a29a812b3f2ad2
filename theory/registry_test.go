package theory

import "testing"

func TestLookupKnownTheories(t *testing.T) {
	for _, name := range []string{"RPA", "STLS", "STLS-HNC", "QSTLS", "QSTLS-IOI", "VSSTLS", "QVSSTLS", "ESA"} {
		if _, err := Lookup(name); err != nil {
			t.Fatalf("Lookup(%q) failed: %v", name, err)
		}
	}
}

func TestLookupUnknownTheory(t *testing.T) {
	if _, err := Lookup("NOT-A-THEORY"); err == nil {
		t.Fatalf("expected an error for an unknown theory")
	}
}

func TestQuantumTheoriesAreDynamic(t *testing.T) {
	s, err := Lookup("QSTLS-HNC")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !s.Dynamic || !s.Bridge {
		t.Fatalf("QSTLS-HNC should be dynamic and bridge-coupled, got %+v", s)
	}
}
