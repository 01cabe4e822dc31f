package models

import (
	"fmt"
	"math"

	"github.com/avane-k/physim/internal/ode"
)

// Pendulum is a single damped pendulum with state (theta, omega).
type Pendulum struct {
	Mass    float64
	Length  float64
	Damping float64
	Gravity float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Mass:    DefaultMass,
		Length:  DefaultLength,
		Damping: 0.0,
		Gravity: DefaultGravity,
	}
}

func (p *Pendulum) StateDim() int { return 2 }

func (p *Pendulum) Derive(x ode.State, t float64) ode.State {
	theta, omega := x[0], x[1]
	alpha := (-p.Damping*omega - p.Mass*p.Gravity*p.Length*math.Sin(theta)) /
		(p.Mass * p.Length * p.Length)
	return ode.State{omega, alpha}
}

func (p *Pendulum) Energy(x ode.State) float64 {
	theta, omega := x[0], x[1]
	ke := 0.5 * p.Mass * p.Length * p.Length * omega * omega
	pe := -p.Mass * p.Gravity * p.Length * math.Cos(theta)
	return ke + pe
}

func (p *Pendulum) Positions(x ode.State) (bx, by float64) {
	return p.Length * math.Sin(x[0]), -p.Length * math.Cos(x[0])
}

func (p *Pendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"m": p.Mass, "l": p.Length, "c": p.Damping, "g": p.Gravity,
	}
}

func (p *Pendulum) SetParam(name string, value float64) error {
	switch name {
	case "m", "l", "g":
		if value <= 0 {
			return fmt.Errorf("parameter %s must be positive, got %f", name, value)
		}
	case "c":
		if value < 0 {
			return fmt.Errorf("damping must be non-negative, got %f", value)
		}
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	switch name {
	case "m":
		p.Mass = value
	case "l":
		p.Length = value
	case "c":
		p.Damping = value
	case "g":
		p.Gravity = value
	}
	return nil
}
