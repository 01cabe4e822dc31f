package integrators

import (
	"math"
	"testing"

	"github.com/avane-k/physim/internal/ode"
)

func TestVerletEnergyBounded(t *testing.T) {
	dyn := &harmonicOscillator{}
	integ := NewVerlet()

	x := ode.State{1.0, 0.0}
	initial := dyn.Energy(x)
	dt := 0.01

	maxDrift := 0.0
	for i := 0; i < 100000; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
		drift := math.Abs(dyn.Energy(x)-initial) / initial
		if drift > maxDrift {
			maxDrift = drift
		}
	}

	// Symplectic integrators bound the energy error instead of
	// accumulating it.
	if maxDrift > 1e-3 {
		t.Errorf("verlet energy drift unbounded: %e", maxDrift)
	}
}

func TestLeapfrogEnergyBounded(t *testing.T) {
	dyn := &harmonicOscillator{}
	integ := NewLeapfrog()

	x := ode.State{1.0, 0.0}
	initial := dyn.Energy(x)
	dt := 0.01

	maxDrift := 0.0
	for i := 0; i < 100000; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
		drift := math.Abs(dyn.Energy(x)-initial) / initial
		if drift > maxDrift {
			maxDrift = drift
		}
	}

	if maxDrift > 1e-3 {
		t.Errorf("leapfrog energy drift unbounded: %e", maxDrift)
	}
}

func TestVerletTracksAnalyticSolution(t *testing.T) {
	dyn := &harmonicOscillator{}
	integ := NewVerlet()

	dt := 0.001
	steps := 1000

	x := ode.State{1.0, 0.0}
	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	expectedQ := math.Cos(float64(steps) * dt)
	if math.Abs(x[0]-expectedQ) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedQ)
	}
}
