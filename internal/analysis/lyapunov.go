package analysis

import (
	"math"

	"github.com/avane-k/physim/internal/ode"
)

// LyapunovExponent estimates the largest Lyapunov exponent with the
// trajectory separation method: run two nearby trajectories, average
// ln(|dx(t)|/|dx(0)|), renormalize when the separation grows past 1.
// A positive value indicates chaos.
func LyapunovExponent(dyn ode.System, integ ode.Integrator, x0 ode.State, dt, duration, perturbation float64) float64 {
	if len(x0) == 0 {
		return 0
	}

	x := x0.Clone()
	xp := x0.Clone()
	xp[0] += perturbation
	d0 := perturbation

	t := 0.0
	sumLog := 0.0
	count := 0

	for t < duration {
		x = integ.Step(dyn, x, t, dt)
		xp = integ.Step(dyn, xp, t, dt)
		t += dt

		sep := xp.Sub(x).Norm()
		if sep > 0 && d0 > 0 {
			sumLog += math.Log(sep / d0)
			count++
		}

		// Renormalize to prevent overflow on chaotic systems.
		if sep > 1.0 {
			scale := d0 / sep
			for i := range xp {
				xp[i] = x[i] + (xp[i]-x[i])*scale
			}
		}
	}

	if count == 0 {
		return 0
	}
	return sumLog / (float64(count) * dt)
}
