package metrics

import (
	"math"
	"testing"

	"github.com/avane-k/physim/internal/models"
	"github.com/avane-k/physim/internal/ode"
	"github.com/avane-k/physim/internal/quantum"
)

func TestEnergyDriftZeroForFrozenState(t *testing.T) {
	dp := models.NewDoublePendulum()
	m := NewEnergyDrift(dp)

	x := ode.State{0.5, 0, 0.5, 0}
	m.Observe(x, 0)
	m.Observe(x, 1)
	m.Observe(x, 2)

	if m.Value() != 0 {
		t.Errorf("identical states should have zero drift, got %e", m.Value())
	}
}

func TestEnergyDriftDetectsChange(t *testing.T) {
	dp := models.NewDoublePendulum()
	m := NewEnergyDrift(dp)

	m.Observe(ode.State{0.5, 0, 0.5, 0}, 0)
	m.Observe(ode.State{0.5, 3.0, 0.5, 0}, 1) // spun up: more energy

	if m.Value() == 0 {
		t.Error("expected non-zero drift after energy change")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestMeanEnergy(t *testing.T) {
	p := models.NewPendulum()
	m := NewMeanEnergy(p)

	x := ode.State{math.Pi / 4, 0}
	m.Observe(x, 0)

	if math.Abs(m.Value()-p.Energy(x)) > 1e-12 {
		t.Errorf("expected mean %f, got %f", p.Energy(x), m.Value())
	}
}

func TestStability(t *testing.T) {
	m := NewStability(10.0)

	m.Observe(ode.State{1, 2}, 0)
	m.Observe(ode.State{100, 0}, 1)

	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected stability 0.5, got %f", m.Value())
	}
}

func TestNormDriftStaysTiny(t *testing.T) {
	s := quantum.FirstTwoExcited(quantum.DefaultGrid())
	m := NewNormDrift(s)

	for i := 0; i < 100; i++ {
		m.Sample(float64(i) * 0.1)
	}

	if m.Value() > 1e-3 {
		t.Errorf("norm drift too large: %e", m.Value())
	}
}
