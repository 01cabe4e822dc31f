package integrators

import (
	"math"
	"testing"

	"github.com/avane-k/physim/internal/ode"
)

func TestRK45_Step(t *testing.T) {
	integ := NewRK45()
	dyn := &harmonicOscillator{}

	x := ode.State{1.0, 0.0}
	dt := 0.01

	for i := 0; i < 1000; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	if !x.IsValid() {
		t.Error("RK45 produced invalid state")
	}
}

func TestRK45_EnergyConservation(t *testing.T) {
	integ := NewRK45()
	dyn := &harmonicOscillator{}

	x := ode.State{1.0, 0.0}
	initialEnergy := dyn.Energy(x)
	dt := 0.01

	for i := 0; i < 10000; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	drift := math.Abs(dyn.Energy(x)-initialEnergy) / initialEnergy
	if drift > 1e-6 {
		t.Errorf("RK45 energy drift too high: %e", drift)
	}
}

func TestRK45_AdaptiveStep(t *testing.T) {
	integ := NewRK45()
	dyn := &harmonicOscillator{}

	x, newDt, err := integ.StepAdaptive(dyn, ode.State{1.0, 0.0}, 0, 0.1, 1e-8)
	if err != nil {
		t.Errorf("StepAdaptive returned error: %v", err)
	}
	if !x.IsValid() {
		t.Error("StepAdaptive produced invalid state")
	}
	if newDt <= 0 {
		t.Errorf("StepAdaptive returned invalid dt: %f", newDt)
	}
}

func TestRK45_ShrinksStepOnRoughTolerance(t *testing.T) {
	integ := NewRK45()
	dyn := &harmonicOscillator{}

	_, coarse, err := integ.StepAdaptive(dyn, ode.State{1.0, 0.0}, 0, 0.5, 1e-12)
	if err != nil {
		t.Fatalf("StepAdaptive returned error: %v", err)
	}
	if coarse >= 0.5 {
		t.Errorf("expected step shrink under tight tolerance, got %f", coarse)
	}
}
