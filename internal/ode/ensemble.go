package ode

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Ensemble runs the same system from perturbed initial conditions.
// The double pendulum demo uses it to show trajectory divergence from
// nearly identical starts.
type Ensemble struct {
	dyn        System
	integrator func() Integrator
	metrics    []func() Metric
}

// NewEnsemble builds an ensemble. The integrator is a constructor
// because steppers carry scratch buffers and must not be shared
// between runs.
func NewEnsemble(dyn System, integrator func() Integrator) *Ensemble {
	return &Ensemble{dyn: dyn, integrator: integrator}
}

func (e *Ensemble) AddMetric(ctor func() Metric) {
	e.metrics = append(e.metrics, ctor)
}

// Run simulates every initial condition concurrently and returns the
// results in input order.
func (e *Ensemble) Run(ctx context.Context, starts []State, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(starts))

	g, ctx := errgroup.WithContext(ctx)
	for i, x0 := range starts {
		g.Go(func() error {
			s := NewSimulator(e.dyn, e.integrator())
			for _, ctor := range e.metrics {
				s.AddMetric(ctor())
			}
			r, err := s.Run(ctx, x0, cfg)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Perturb returns n copies of x0 with entry idx offset by multiples
// of eps, centered on the original.
func Perturb(x0 State, idx, n int, eps float64) []State {
	starts := make([]State, n)
	for i := range starts {
		s := x0.Clone()
		if idx >= 0 && idx < len(s) {
			s[idx] += float64(i-n/2) * eps
		}
		starts[i] = s
	}
	return starts
}
