package models

import (
	"fmt"
	"math"

	"github.com/avane-k/physim/internal/ode"
)

const (
	DefaultMass    = 1.0
	DefaultLength  = 1.0
	DefaultGravity = 9.81
)

// DoublePendulum models two point masses on rigid massless rods in
// uniform gravity. State layout is (theta1, omega1, theta2, omega2);
// angles are measured from the downward vertical.
type DoublePendulum struct {
	M1, M2  float64
	L1, L2  float64
	Gravity float64
}

func NewDoublePendulum() *DoublePendulum {
	return &DoublePendulum{
		M1: DefaultMass, M2: DefaultMass,
		L1: DefaultLength, L2: DefaultLength,
		Gravity: DefaultGravity,
	}
}

func (d *DoublePendulum) StateDim() int { return 4 }

func (d *DoublePendulum) Derive(x ode.State, t float64) ode.State {
	theta1, omega1, theta2, omega2 := x[0], x[1], x[2], x[3]
	m1, m2, l1, l2, g := d.M1, d.M2, d.L1, d.L2, d.Gravity

	c, s := math.Cos(theta1-theta2), math.Sin(theta1-theta2)
	den := m1 + m2*s*s

	alpha1 := (m2*g*math.Sin(theta2)*c -
		m2*s*(l1*omega1*omega1*c+l2*omega2*omega2) -
		(m1+m2)*g*math.Sin(theta1)) / (l1 * den)

	alpha2 := ((m1+m2)*(l1*omega1*omega1*s-g*math.Sin(theta2)+g*math.Sin(theta1)*c) +
		m2*l2*omega2*omega2*s*c) / (l2 * den)

	return ode.State{omega1, alpha1, omega2, alpha2}
}

// Energy returns the total mechanical energy with the pivot as the
// potential reference, so the value is negative for low-hanging
// configurations.
func (d *DoublePendulum) Energy(x ode.State) float64 {
	theta1, omega1, theta2, omega2 := x[0], x[1], x[2], x[3]
	m1, m2, l1, l2, g := d.M1, d.M2, d.L1, d.L2, d.Gravity

	pe := -(m1+m2)*l1*g*math.Cos(theta1) - m2*l2*g*math.Cos(theta2)

	v1sq := l1 * l1 * omega1 * omega1
	ke := 0.5*m1*v1sq + 0.5*m2*(v1sq+
		l2*l2*omega2*omega2+
		2*l1*l2*omega1*omega2*math.Cos(theta1-theta2))

	return pe + ke
}

// Positions converts the angular state to cartesian bob coordinates,
// y increasing upward from the anchor.
func (d *DoublePendulum) Positions(x ode.State) (x1, y1, x2, y2 float64) {
	x1 = d.L1 * math.Sin(x[0])
	y1 = -d.L1 * math.Cos(x[0])
	x2 = x1 + d.L2*math.Sin(x[2])
	y2 = y1 - d.L2*math.Cos(x[2])
	return
}

// Reach is the maximum distance of the second bob from the anchor.
func (d *DoublePendulum) Reach() float64 {
	return d.L1 + d.L2
}

func (d *DoublePendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"m1": d.M1, "m2": d.M2,
		"l1": d.L1, "l2": d.L2,
		"g": d.Gravity,
	}
}

func (d *DoublePendulum) SetParam(name string, value float64) error {
	if value <= 0 {
		return fmt.Errorf("parameter %s must be positive, got %f", name, value)
	}
	switch name {
	case "m1":
		d.M1 = value
	case "m2":
		d.M2 = value
	case "l1":
		d.L1 = value
	case "l2":
		d.L2 = value
	case "g":
		d.Gravity = value
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}
