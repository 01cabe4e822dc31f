package ode

import (
	"math"
	"testing"
)

func TestStateClone(t *testing.T) {
	s := State{1, 2, 3}
	c := s.Clone()
	c[0] = 99

	if s[0] != 1 {
		t.Error("clone should not share backing array")
	}
}

func TestStateIsValid(t *testing.T) {
	if !(State{1, 2, 3}).IsValid() {
		t.Error("finite state should be valid")
	}
	if (State{1, math.NaN()}).IsValid() {
		t.Error("NaN state should be invalid")
	}
	if (State{math.Inf(1), 0}).IsValid() {
		t.Error("Inf state should be invalid")
	}
}

func TestStateNorm(t *testing.T) {
	s := State{3, 4}
	if math.Abs(s.Norm()-5) > 1e-12 {
		t.Errorf("expected norm 5, got %f", s.Norm())
	}
}

func TestStateArithmetic(t *testing.T) {
	a := State{1, 2}
	b := State{3, 4}

	sum := a.Add(b)
	if sum[0] != 4 || sum[1] != 6 {
		t.Errorf("unexpected sum: %v", sum)
	}

	diff := b.Sub(a)
	if diff[0] != 2 || diff[1] != 2 {
		t.Errorf("unexpected diff: %v", diff)
	}

	scaled := a.Scale(2)
	if scaled[0] != 2 || scaled[1] != 4 {
		t.Errorf("unexpected scale: %v", scaled)
	}
}

func TestPerturb(t *testing.T) {
	starts := Perturb(State{1.0, 0.0}, 0, 5, 0.01)

	if len(starts) != 5 {
		t.Fatalf("expected 5 starts, got %d", len(starts))
	}
	// Middle entry is the unperturbed original.
	if starts[2][0] != 1.0 {
		t.Errorf("expected center start unperturbed, got %f", starts[2][0])
	}
	if math.Abs(starts[0][0]-(1.0-0.02)) > 1e-12 {
		t.Errorf("unexpected first start: %f", starts[0][0])
	}
}
