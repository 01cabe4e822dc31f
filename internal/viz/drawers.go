package viz

import (
	"math"

	"github.com/avane-k/physim/internal/models"
	"github.com/avane-k/physim/internal/ode"
)

// DoublePendulumDrawer paints both rods and bobs with a fading trail
// behind the second bob.
type DoublePendulumDrawer struct {
	Model *models.DoublePendulum
	trail [][2]int
}

func NewDoublePendulumDrawer(model *models.DoublePendulum) *DoublePendulumDrawer {
	return &DoublePendulumDrawer{Model: model}
}

func (d *DoublePendulumDrawer) Reset() { d.trail = d.trail[:0] }

func (d *DoublePendulumDrawer) Draw(c *Canvas, x ode.State) {
	if len(x) < 4 {
		return
	}
	x1, y1, x2, y2 := d.Model.Positions(x)

	cw, ch := c.DotWidth(), c.DotHeight()
	anchorX, anchorY := cw/2, ch/4
	scale := float64(ch) / 2 / d.Model.Reach()

	b1x := anchorX + int(x1*scale)
	b1y := anchorY - int(y1*scale)
	b2x := anchorX + int(x2*scale)
	b2y := anchorY - int(y2*scale)

	d.trail = append(d.trail, [2]int{b2x, b2y})
	if len(d.trail) > 200 {
		d.trail = d.trail[1:]
	}
	for _, pt := range d.trail {
		c.Set(pt[0], pt[1])
	}

	c.Set(anchorX, anchorY)
	c.Line(anchorX, anchorY, b1x, b1y)
	c.Line(b1x, b1y, b2x, b2y)
	c.Blob(b1x, b1y, 1)
	c.Blob(b2x, b2y, 1)
}

// PendulumDrawer paints a single pendulum hanging from a fixed pivot.
type PendulumDrawer struct {
	Model *models.Pendulum
	trail [][2]int
}

func NewPendulumDrawer(model *models.Pendulum) *PendulumDrawer {
	return &PendulumDrawer{Model: model}
}

func (d *PendulumDrawer) Reset() { d.trail = d.trail[:0] }

func (d *PendulumDrawer) Draw(c *Canvas, x ode.State) {
	if len(x) < 2 {
		return
	}
	theta := x[0]
	cw, ch := c.DotWidth(), c.DotHeight()
	anchorX, anchorY := cw/2, ch/4
	length := float64(ch) * 0.6

	bx := anchorX + int(length*math.Sin(theta))
	by := anchorY + int(length*math.Cos(theta))

	d.trail = append(d.trail, [2]int{bx, by})
	if len(d.trail) > 100 {
		d.trail = d.trail[1:]
	}
	for _, pt := range d.trail {
		c.Set(pt[0], pt[1])
	}

	c.Set(anchorX, anchorY)
	c.Line(anchorX, anchorY, bx, by)
	c.Blob(bx, by, 1)
}
