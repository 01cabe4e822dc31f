package metrics

import (
	"math"

	"github.com/avane-k/physim/internal/quantum"
)

// NormDrift tracks how far the integrated probability density strays
// from 1 while rendering a wavefunction animation. It is the quantum
// counterpart of EnergyDrift: the evolution is exact, so any drift is
// pure quadrature error and should stay tiny.
type NormDrift struct {
	state    *quantum.Superposition
	maxDrift float64
	samples  int
}

func NewNormDrift(state *quantum.Superposition) *NormDrift {
	return &NormDrift{state: state}
}

func (n *NormDrift) Name() string { return "norm_drift" }

func (n *NormDrift) Sample(t float64) {
	n.samples++
	drift := math.Abs(n.state.Norm(t) - 1)
	n.maxDrift = math.Max(n.maxDrift, drift)
}

func (n *NormDrift) Value() float64 {
	return n.maxDrift
}

func (n *NormDrift) Reset() {
	n.maxDrift = 0
	n.samples = 0
}
