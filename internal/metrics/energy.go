package metrics

import (
	"math"

	"github.com/avane-k/physim/internal/ode"
)

// EnergyDrift tracks the maximum relative deviation of total energy
// from its initial value over a run.
type EnergyDrift struct {
	dyn           ode.System
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(dyn ode.System) *EnergyDrift {
	return &EnergyDrift{dyn: dyn}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(x ode.State, t float64) {
	h, ok := e.dyn.(ode.Hamiltonian)
	if !ok {
		return
	}

	energy := h.Energy(x)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// MeanEnergy reports the average total energy over a run.
type MeanEnergy struct {
	dyn     ode.System
	total   float64
	samples int
}

func NewMeanEnergy(dyn ode.System) *MeanEnergy {
	return &MeanEnergy{dyn: dyn}
}

func (m *MeanEnergy) Name() string { return "mean_energy" }

func (m *MeanEnergy) Observe(x ode.State, t float64) {
	h, ok := m.dyn.(ode.Hamiltonian)
	if !ok {
		return
	}
	m.total += h.Energy(x)
	m.samples++
}

func (m *MeanEnergy) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanEnergy) Reset() {
	m.total = 0
	m.samples = 0
}
