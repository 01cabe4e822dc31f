package render

import (
	"context"
	"fmt"
	"image"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/avane-k/physim/internal/quantum"
)

// QHORenderer rasterizes the time evolution of a wavefunction
// superposition: probability density plus the real and imaginary
// parts of psi, on fixed axes so the beat is visible.
type QHORenderer struct {
	State  *quantum.Superposition
	Width  int
	Height int
	FPS    int
}

func NewQHORenderer(state *quantum.Superposition, width, height, fps int) *QHORenderer {
	return &QHORenderer{State: state, Width: width, Height: height, FPS: fps}
}

// Render covers the given duration at FPS frames per second of
// simulated time. A duration of 0 renders exactly one beat period.
func (r *QHORenderer) Render(ctx context.Context, duration float64) ([]*image.Paletted, error) {
	if duration <= 0 {
		duration = r.State.Period()
	}
	if duration <= 0 {
		return nil, fmt.Errorf("stationary state has no period; pass an explicit duration")
	}

	numFrames := int(duration * float64(r.FPS))
	if numFrames < 1 {
		numFrames = 1
	}
	frameDt := duration / float64(numFrames)

	// Fixed vertical range: the density is bounded by the norm
	// concentrating at a point only in pathological grids, so sampling
	// a handful of frames is enough to fix the axes.
	yMax := 0.0
	for i := 0; i < 16; i++ {
		t := duration * float64(i) / 16
		for _, v := range r.State.Density(t) {
			if v > yMax {
				yMax = v
			}
		}
	}
	if yMax == 0 {
		yMax = 1
	}
	yMax *= 1.1

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
			r.drawFrame(f, float64(fi)*frameDt, yMax)
			frames[fi] = f.Img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return frames, nil
}

func (r *QHORenderer) drawFrame(f *Frame, t, yMax float64) {
	grid := r.State.Grid()
	psi := r.State.Evaluate(t)

	// The density occupies [0, yMax] mapped onto the full height; the
	// Re/Im curves share the same scale around the axis line.
	axisY := r.Height * 3 / 4
	f.Line(0, axisY, r.Width-1, axisY, ColorAxis)
	midX, _ := r.xToPixel(grid, 0)
	f.Line(midX, 0, midX, r.Height-1, ColorAxis)

	n := grid.N
	densX := make([]int, n)
	densY := make([]int, n)
	reY := make([]int, n)
	imY := make([]int, n)

	for i, x := range grid.Points() {
		px, _ := r.xToPixel(grid, x)
		densX[i] = px

		rho := real(psi[i])*real(psi[i]) + imag(psi[i])*imag(psi[i])
		densY[i] = axisY - int(rho/yMax*float64(axisY-2))

		// Amplitudes scale by sqrt of the density ceiling.
		amp := float64(r.Height) / 4 / (1.1 * math.Sqrt(yMax))
		reY[i] = axisY - int(real(psi[i])*amp)
		imY[i] = axisY - int(imag(psi[i])*amp)
	}

	f.Polyline(densX, reY, ColorBob1)
	f.Polyline(densX, imY, ColorBob2)
	f.Polyline(densX, densY, ColorForeground)
}

func (r *QHORenderer) xToPixel(grid *quantum.Grid, x float64) (int, int) {
	px := (x - grid.Min) / (grid.Max - grid.Min) * float64(r.Width-1)
	return int(px), 0
}
