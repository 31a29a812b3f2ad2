// package theory maps a `--theory` name onto the set of solver components it
// requires, grounded on fem.solverallocators — a string-keyed registry of
// assembly functions, generalized here from "which FEsolver to build" to
// "which closure ingredients this theory needs".
package theory

import (
	"github.com/cpmech/gosl/chk"
	"github.com/qupled/qupled-go/bridge"
)

// Scheme describes the ingredients a named theory wires together.
type Scheme struct {
	Name    string
	Dynamic bool           // requires the ψ/adr/dsf pipeline (spec §4.F-H) instead of the classical closure alone
	Bridge  bool           // requires a nonzero IET bridge term (spec §4.E "IET variant")
	Mapping bridge.Mapping // default bridge mapping for this theory, overridable by --iet-mapping
	VS      bool           // wrapped by the outer CSR loop (spec §4.K)
}

var registry = map[string]Scheme{
	"RPA":      {Name: "RPA", Dynamic: false, Bridge: false},
	"ESA":      {Name: "ESA", Dynamic: false, Bridge: false},
	"STLS":     {Name: "STLS", Dynamic: false, Bridge: false},
	"STLS-HNC": {Name: "STLS-HNC", Dynamic: false, Bridge: true, Mapping: bridge.Standard},
	"STLS-IOI": {Name: "STLS-IOI", Dynamic: false, Bridge: true, Mapping: bridge.Sqrt},
	"STLS-LCT": {Name: "STLS-LCT", Dynamic: false, Bridge: true, Mapping: bridge.Linear},

	"QSTLS":     {Name: "QSTLS", Dynamic: true, Bridge: false},
	"QSTLS-HNC": {Name: "QSTLS-HNC", Dynamic: true, Bridge: true, Mapping: bridge.Standard},
	"QSTLS-IOI": {Name: "QSTLS-IOI", Dynamic: true, Bridge: true, Mapping: bridge.Sqrt},
	"QSTLS-LCT": {Name: "QSTLS-LCT", Dynamic: true, Bridge: true, Mapping: bridge.Linear},

	"VSSTLS":  {Name: "VSSTLS", Dynamic: false, Bridge: false, VS: true},
	"QVSSTLS": {Name: "QVSSTLS", Dynamic: true, Bridge: false, VS: true},
}

// Lookup resolves a --theory name to its Scheme, or a ConfigError-flavoured
// error for an unrecognized name (spec §6 flag table).
func Lookup(name string) (Scheme, error) {
	s, ok := registry[name]
	if !ok {
		return Scheme{}, chk.Err("theory: unknown theory %q", name)
	}
	return s, nil
}
