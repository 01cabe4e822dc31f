package render

import (
	"context"
	"fmt"
	"image"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/avane-k/physim/internal/models"
	"github.com/avane-k/physim/internal/ode"
)

// BobRadius is the world-space bob radius in meters.
const BobRadius = 0.05

// PendulumRenderer rasterizes a stored double pendulum trajectory
// into animation frames. The view is centered on the anchor and spans
// the full reach of both rods plus the bob radius.
type PendulumRenderer struct {
	Model    *models.DoublePendulum
	Width    int
	Height   int
	FPS      int
	TrailSec float64
}

func NewPendulumRenderer(model *models.DoublePendulum, width, height, fps int) *PendulumRenderer {
	return &PendulumRenderer{
		Model:    model,
		Width:    width,
		Height:   height,
		FPS:      fps,
		TrailSec: 0.5,
	}
}

// Render produces one frame per 1/FPS of simulated time. Frames are
// independent given the trajectory, so they render concurrently.
func (r *PendulumRenderer) Render(ctx context.Context, result *ode.Result) ([]*image.Paletted, error) {
	if len(result.States) < 2 {
		return nil, fmt.Errorf("trajectory too short to render")
	}

	dt := result.Times[1] - result.Times[0]
	stride := int(math.Round(1 / (float64(r.FPS) * dt)))
	if stride < 1 {
		stride = 1
	}
	numFrames := len(result.States) / stride
	if numFrames == 0 {
		numFrames = 1
	}
	maxTrail := int(r.TrailSec / dt)

	palette := NewPalette()
	frames := make([]*image.Paletted, numFrames)

	g, ctx := errgroup.WithContext(ctx)
	for fi := 0; fi < numFrames; fi++ {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			f := NewFrame(r.Width, r.Height, palette)
			r.drawFrame(f, result.States, fi*stride, maxTrail)
			frames[fi] = f.Img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return frames, nil
}

// toPixel maps world coordinates (anchor at origin, y up) to pixels.
func (r *PendulumRenderer) toPixel(x, y float64) (int, int) {
	span := 2 * (r.Model.Reach() + BobRadius)
	scale := math.Min(float64(r.Width), float64(r.Height)) / span
	px := float64(r.Width)/2 + x*scale
	py := float64(r.Height)/2 - y*scale
	return int(px), int(py)
}

func (r *PendulumRenderer) drawFrame(f *Frame, states []ode.State, idx, maxTrail int) {
	span := 2 * (r.Model.Reach() + BobRadius)
	scale := math.Min(float64(r.Width), float64(r.Height)) / span
	bobPx := int(math.Max(BobRadius*scale, 2))

	// Fading trail of the second bob, oldest segments faintest.
	seg := maxTrail / TrailSegments
	if seg < 1 {
		seg = 1
	}
	for j := 0; j < TrailSegments; j++ {
		imin := idx - (TrailSegments-j)*seg
		if imin < 0 {
			continue
		}
		imax := imin + seg + 1
		if imax > idx+1 {
			imax = idx + 1
		}
		ci := TrailColor(j)
		for i := imin + 1; i < imax; i++ {
			_, _, ax, ay := r.Model.Positions(states[i-1])
			_, _, bx, by := r.Model.Positions(states[i])
			x0, y0 := r.toPixel(ax, ay)
			x1, y1 := r.toPixel(bx, by)
			f.Line(x0, y0, x1, y1, ci)
		}
	}

	x1, y1, x2, y2 := r.Model.Positions(states[idx])
	ax, ay := r.toPixel(0, 0)
	b1x, b1y := r.toPixel(x1, y1)
	b2x, b2y := r.toPixel(x2, y2)

	f.ThickLine(ax, ay, b1x, b1y, 1, ColorForeground)
	f.ThickLine(b1x, b1y, b2x, b2y, 1, ColorForeground)

	f.Disc(ax, ay, bobPx/2, ColorForeground)
	f.Disc(b1x, b1y, bobPx, ColorBob1)
	f.Disc(b2x, b2y, bobPx, ColorBob2)
}
