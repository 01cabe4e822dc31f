package ode

import (
	"context"
	"errors"
	"math"
	"testing"
)

type decay struct{}

func (d *decay) Derive(x State, t float64) State { return State{-x[0]} }
func (d *decay) StateDim() int                   { return 1 }

type eulerStep struct{}

func (e *eulerStep) Step(dyn System, x State, t, dt float64) State {
	dx := dyn.Derive(x, t)
	result := make(State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}

func TestSimulatorRun(t *testing.T) {
	s := NewSimulator(&decay{}, &eulerStep{})

	cfg := Config{Dt: 0.1, Duration: 1.0}
	result, err := s.Run(context.Background(), State{1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 11 {
		t.Errorf("expected 11 states, got %d", len(result.States))
	}
	if len(result.Times) != 11 {
		t.Errorf("expected 11 times, got %d", len(result.Times))
	}

	final := result.States[len(result.States)-1][0]
	expected := math.Exp(-1.0)
	if math.Abs(final-expected) > 0.2 {
		t.Errorf("expected final state ~%.4f, got %.4f", expected, final)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := NewSimulator(&decay{}, &eulerStep{})

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1.0}},
		{"negative dt", Config{Dt: -0.1, Duration: 1.0}},
		{"zero duration", Config{Dt: 0.1, Duration: 0}},
		{"negative duration", Config{Dt: 0.1, Duration: -1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Run(context.Background(), State{1.0}, tt.cfg)
			if err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSimulatorDimensionMismatch(t *testing.T) {
	s := NewSimulator(&decay{}, &eulerStep{})

	_, err := s.Run(context.Background(), State{1.0, 2.0}, Config{Dt: 0.1, Duration: 1.0})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

type blowup struct{}

func (b *blowup) Derive(x State, t float64) State { return State{x[0] * x[0]} }
func (b *blowup) StateDim() int                   { return 1 }
func (b *blowup) Energy(x State) float64          { return x[0] }

func TestSimulatorEnergyDriftGuard(t *testing.T) {
	s := NewSimulator(&blowup{}, &eulerStep{})

	cfg := Config{Dt: 0.1, Duration: 10.0, MaxEnergyDrift: 0.5}
	result, err := s.Run(context.Background(), State{1.0}, cfg)
	if !errors.Is(err, ErrEnergyDrift) {
		t.Fatalf("expected ErrEnergyDrift, got %v", err)
	}

	// Trajectory up to the abort point is still returned.
	if len(result.States) < 2 {
		t.Errorf("expected partial trajectory, got %d states", len(result.States))
	}

	var stepErr *StepError
	if !errors.As(err, &stepErr) {
		t.Fatal("expected a StepError")
	}
	if stepErr.Time <= 0 {
		t.Errorf("expected positive abort time, got %f", stepErr.Time)
	}
}

type countMetric struct {
	count int
	sum   float64
}

func (c *countMetric) Name() string { return "mean_x0" }
func (c *countMetric) Observe(x State, t float64) {
	c.count++
	c.sum += x[0]
}
func (c *countMetric) Value() float64 {
	if c.count == 0 {
		return 0
	}
	return c.sum / float64(c.count)
}
func (c *countMetric) Reset() {
	c.count = 0
	c.sum = 0
}

func TestSimulatorMetrics(t *testing.T) {
	s := NewSimulator(&decay{}, &eulerStep{})

	metric := &countMetric{}
	s.AddMetric(metric)

	result, err := s.Run(context.Background(), State{1.0}, Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := result.Metrics["mean_x0"]; !ok {
		t.Error("metric not found in result")
	}
	if metric.count != 10 {
		t.Errorf("expected 10 observations, got %d", metric.count)
	}
}

func TestSimulatorContextCancel(t *testing.T) {
	s := NewSimulator(&decay{}, &eulerStep{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Run(ctx, State{1.0}, Config{Dt: 0.001, Duration: 100.0})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunWithCallbackStopsEarly(t *testing.T) {
	s := NewSimulator(&decay{}, &eulerStep{})

	steps := 0
	err := s.RunWithCallback(context.Background(), State{1.0}, Config{Dt: 0.1, Duration: 10.0},
		func(x State, tm float64) bool {
			steps++
			return steps < 5
		})
	if err != nil {
		t.Fatalf("callback run failed: %v", err)
	}
	if steps != 5 {
		t.Errorf("expected 5 callbacks, got %d", steps)
	}
}
