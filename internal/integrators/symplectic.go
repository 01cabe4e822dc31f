package integrators

import "github.com/avane-k/physim/internal/ode"

// The symplectic steppers assume an interleaved (q, v) state layout:
// even indices are coordinates, odd indices their velocities, matching
// the (theta1, omega1, theta2, omega2) convention of the models
// package. Accelerations are read from the velocity slots of the
// derivative vector.

type Verlet struct {
	scratch ode.State
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(dyn ode.System, x ode.State, t, dt float64) ode.State {
	n := len(x)
	if len(v.scratch) != n {
		v.scratch = make(ode.State, n)
	}

	result := make(ode.State, n)
	dx := dyn.Derive(x, t)
	dt2 := dt * dt

	for i := 0; i+1 < n; i += 2 {
		result[i] = x[i] + x[i+1]*dt + 0.5*dx[i+1]*dt2
	}

	for i := 0; i+1 < n; i += 2 {
		v.scratch[i] = result[i]
		v.scratch[i+1] = x[i+1]
	}

	dxNew := dyn.Derive(v.scratch, t+dt)

	halfDt := 0.5 * dt
	for i := 0; i+1 < n; i += 2 {
		result[i+1] = x[i+1] + (dx[i+1]+dxNew[i+1])*halfDt
	}

	return result
}

type Leapfrog struct {
	scratch ode.State
}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Step(dyn ode.System, x ode.State, t, dt float64) ode.State {
	n := len(x)
	if len(l.scratch) != n {
		l.scratch = make(ode.State, n)
	}

	result := make(ode.State, n)
	dx := dyn.Derive(x, t)
	halfDt := dt * 0.5

	for i := 0; i+1 < n; i += 2 {
		l.scratch[i+1] = x[i+1] + dx[i+1]*halfDt
	}

	for i := 0; i+1 < n; i += 2 {
		result[i] = x[i] + l.scratch[i+1]*dt
		l.scratch[i] = result[i]
	}

	dxNew := dyn.Derive(l.scratch, t+dt)

	for i := 0; i+1 < n; i += 2 {
		result[i+1] = l.scratch[i+1] + dxNew[i+1]*halfDt
	}

	return result
}
