package grid

// State holds a single (rs, Θ, μ) state point. μ is derived from Θ once at
// init and treated as read-only for the rest of the run (spec §3).
type State struct {
	Rs    float64
	Theta float64
	Mu    float64
}

// Lambda is λ = (4/(9π))^(1/3), the Wigner-Seitz length-scale constant used
// throughout the static-structure-factor closure (spec §4.D).
const Lambda = 0.6203504908994001 // (4/(9*pi))^(1/3)
