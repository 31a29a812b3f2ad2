// package adr computes the auxiliary density response ψ(x, Ω) — the most
// expensive object in the solver (spec §4.F, "three-level quadrature") —
// and persists its state-point-independent inner integral to a binary
// cache (spec §4.I). It is grounded on ele/porous, the largest and most
// deeply nested coupled-field element in the reference element library.
package adr

// Mode selects between the partially-dynamic (default IET) closure, whose
// inner integral I1 is cached and re-used across Picard iterations, and the
// fully-dynamic closure, whose outer coefficient couples ψ(w, Ω) at every Ω
// into its own fixed point (spec §4.F, §9 "qstls_iet_static semantics").
type Mode int

const (
	PartiallyDynamic Mode = iota
	FullyDynamic
)
