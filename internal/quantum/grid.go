package quantum

import "fmt"

// Grid is a uniform spatial grid on [Min, Max].
type Grid struct {
	Min, Max float64
	N        int
	points   []float64
}

func NewGrid(min, max float64, n int) (*Grid, error) {
	if n < 2 {
		return nil, fmt.Errorf("grid needs at least 2 points, got %d", n)
	}
	if max <= min {
		return nil, fmt.Errorf("grid bounds inverted: [%f, %f]", min, max)
	}

	g := &Grid{Min: min, Max: max, N: n}
	g.points = make([]float64, n)
	dx := g.Dx()
	for i := range g.points {
		g.points[i] = min + float64(i)*dx
	}
	return g, nil
}

// DefaultGrid covers [-5, 5] with 512 points, wide enough that the
// low-lying eigenstates vanish at the boundary to double precision.
func DefaultGrid() *Grid {
	g, _ := NewGrid(-5, 5, 512)
	return g
}

func (g *Grid) Dx() float64 {
	return (g.Max - g.Min) / float64(g.N-1)
}

func (g *Grid) Points() []float64 {
	return g.points
}

// Integrate computes the trapezoidal-rule integral of samples taken
// on the grid points. The sample slice must have exactly one value
// per grid point; any other length returns 0 so a mismatched caller
// shows up as a broken norm instead of a garbage integral.
func (g *Grid) Integrate(samples []float64) float64 {
	if len(samples) != g.N {
		return 0
	}
	sum := 0.5 * (samples[0] + samples[g.N-1])
	for i := 1; i < g.N-1; i++ {
		sum += samples[i]
	}
	return sum * g.Dx()
}
