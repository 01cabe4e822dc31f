package viz

import (
	"strings"
	"testing"

	"github.com/avane-k/physim/internal/models"
	"github.com/avane-k/physim/internal/ode"
)

func TestCanvasDimensions(t *testing.T) {
	c := NewCanvas(10, 5)
	if c.DotWidth() != 20 || c.DotHeight() != 20 {
		t.Fatalf("dot resolution = %dx%d, want 20x20", c.DotWidth(), c.DotHeight())
	}

	out := c.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("rendered %d rows, want 5", len(lines))
	}
	for _, line := range lines {
		for _, r := range line {
			if r != brailleBase {
				t.Fatalf("fresh canvas has non-empty cell %q", r)
			}
		}
	}
}

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Set(0, 0)
	if c.cells[0] == brailleBase {
		t.Fatal("Set(0,0) left top-left cell empty")
	}

	// Each dot maps to a distinct bit within a cell.
	c.Set(1, 0)
	c.Set(0, 3)
	if c.cells[0] != brailleBase|0x01|0x08|0x40 {
		t.Fatalf("cell bits = %#x", c.cells[0]-brailleBase)
	}

	// Out of range is a no-op.
	c.Set(-1, 2)
	c.Set(100, 2)

	c.Clear()
	for i, cell := range c.cells {
		if cell != brailleBase {
			t.Fatalf("cell %d not cleared", i)
		}
	}
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(8, 8)
	c.Line(0, 0, 15, 15)

	set := 0
	for _, cell := range c.cells {
		if cell != brailleBase {
			set++
		}
	}
	if set == 0 {
		t.Fatal("diagonal line drew nothing")
	}
	// Both endpoints land.
	if c.cells[0] == brailleBase {
		t.Error("line misses origin")
	}
	if c.cells[7*8+7] == brailleBase {
		t.Error("line misses far corner")
	}
}

func TestDoublePendulumDrawerTrail(t *testing.T) {
	model := models.NewDoublePendulum()
	d := NewDoublePendulumDrawer(model)
	c := NewCanvas(canvasCols, canvasRows)

	for i := 0; i < 250; i++ {
		d.Draw(c, ode.State{1.3, 0, 2.3, 0})
	}
	if len(d.trail) != 200 {
		t.Fatalf("trail length = %d, want capped at 200", len(d.trail))
	}

	d.Reset()
	if len(d.trail) != 0 {
		t.Fatal("Reset did not clear trail")
	}
}

func TestLiveModelAdvances(t *testing.T) {
	model := models.NewDoublePendulum()
	lm := NewLiveModel("double_pendulum", model, stubIntegrator{}, NewDoublePendulumDrawer(model),
		ode.State{1, 0, 2, 0}, 0.01, nil)

	if lm.t != 0 {
		t.Fatal("fresh model should start at t=0")
	}
	lm.advance()
	if lm.t == 0 {
		t.Fatal("advance did not move time forward")
	}
	if len(lm.energyHist) == 0 {
		t.Fatal("advance did not record energy")
	}

	lm.reset()
	if lm.t != 0 || len(lm.energyHist) != 0 {
		t.Fatal("reset did not restore initial state")
	}
}

type stubIntegrator struct{}

func (stubIntegrator) Step(dyn ode.System, x ode.State, t, dt float64) ode.State {
	dx := dyn.Derive(x, t)
	return x.Add(dx.Scale(dt))
}
