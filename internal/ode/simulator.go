package ode

import (
	"context"
	"fmt"
	"math"
)

type Simulator struct {
	dyn        System
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

func NewSimulator(dyn System, integrator Integrator) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates the system from x0 over cfg.Duration on a fixed time
// grid. The returned Result always contains the trajectory sampled up
// to the point of failure, so a drift abort still yields plottable data.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validate(x0, cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		States:  make([]State, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	initialEnergy, tracksEnergy := s.energy(x)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(x, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, t)
		}

		var newX State
		var err error
		if cfg.Adaptive {
			newX, dt, err = s.adaptiveStep(x, t, dt, cfg)
			if err != nil {
				return result, &StepError{Step: i, Time: t, Wrapped: err}
			}
		} else {
			newX = s.integrator.Step(s.dyn, x, t, dt)
		}

		if cfg.ValidateState && !newX.IsValid() {
			return result, &StepError{Step: i, Time: t, Wrapped: ErrInvalidState}
		}

		x = newX
		t += dt
		result.StepsTaken++

		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)

		if tracksEnergy {
			e, _ := s.energy(x)
			drift := math.Abs(e - initialEnergy)
			if initialEnergy != 0 {
				rel := drift / math.Abs(initialEnergy)
				if rel > result.EnergyDrift {
					result.EnergyDrift = rel
				}
			}
			if cfg.MaxEnergyDrift > 0 && drift > cfg.MaxEnergyDrift {
				return result, &StepError{
					Step: i, Time: t,
					Wrapped: fmt.Errorf("%w: |dE|=%.4g > %.4g", ErrEnergyDrift, drift, cfg.MaxEnergyDrift),
				}
			}
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback steps the system without recording the trajectory,
// invoking callback after every step. The callback returns false to
// stop early.
func (s *Simulator) RunWithCallback(ctx context.Context, x0 State, cfg Config, callback func(x State, t float64) bool) error {
	if err := s.validate(x0, cfg); err != nil {
		return err
	}

	x := x0.Clone()
	t := 0.0

	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(x, t) {
			return nil
		}

		x = s.integrator.Step(s.dyn, x, t, cfg.Dt)
		t += cfg.Dt

		if cfg.ValidateState && !x.IsValid() {
			return fmt.Errorf("at t=%.4f: %w", t, ErrInvalidState)
		}
	}

	return nil
}

func (s *Simulator) validate(x0 State, cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.Adaptive && cfg.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive for adaptive stepping")
	}
	if len(x0) != s.dyn.StateDim() {
		return fmt.Errorf("%w: state has %d entries, system expects %d",
			ErrDimensionMismatch, len(x0), s.dyn.StateDim())
	}
	return nil
}

func (s *Simulator) energy(x State) (float64, bool) {
	h, ok := s.dyn.(Hamiltonian)
	if !ok {
		return 0, false
	}
	return h.Energy(x), true
}

func (s *Simulator) adaptiveStep(x State, t, dt float64, cfg Config) (State, float64, error) {
	if adaptive, ok := s.integrator.(AdaptiveIntegrator); ok {
		newX, nextDt, err := adaptive.StepAdaptive(s.dyn, x, t, dt, cfg.Tolerance)
		if err != nil {
			return nil, dt, err
		}
		nextDt = math.Min(math.Max(nextDt, cfg.MinDt), cfg.MaxDt)
		return newX, nextDt, nil
	}

	// Step doubling for fixed-order integrators.
	x1 := s.integrator.Step(s.dyn, x, t, dt)
	xHalf := s.integrator.Step(s.dyn, x, t, dt/2)
	x2 := s.integrator.Step(s.dyn, xHalf, t+dt/2, dt/2)

	err := x1.Sub(x2).Norm()
	if err > cfg.Tolerance {
		if dt/2 < cfg.MinDt {
			return nil, dt, ErrStepTooSmall
		}
		return s.adaptiveStep(x, t, dt/2, cfg)
	}

	if err < cfg.Tolerance/10 && dt < cfg.MaxDt {
		dt = math.Min(dt*2, cfg.MaxDt)
	}

	return x2, dt, nil
}
