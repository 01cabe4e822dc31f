package quantum

import (
	"fmt"
	"math"
)

// Eigenstate is the n-th energy eigenstate of the harmonic oscillator
// sampled on a grid. Eigenstates are real-valued; time dependence is
// a pure phase applied by Superposition.
type Eigenstate struct {
	N    int
	grid *Grid
	psi  []float64
}

func NewEigenstate(grid *Grid, n int) (*Eigenstate, error) {
	if n < 0 {
		return nil, fmt.Errorf("quantum number must be non-negative, got %d", n)
	}

	e := &Eigenstate{N: n, grid: grid}
	e.psi = make([]float64, grid.N)
	norm := normalization(n)
	for i, x := range grid.Points() {
		e.psi[i] = norm * Hermite(n, x) * math.Exp(-x*x/2)
	}
	return e, nil
}

// Energy returns E_n = n + 1/2 in oscillator units.
func (e *Eigenstate) Energy() float64 {
	return float64(e.N) + 0.5
}

// Values returns the sampled wavefunction. The slice is shared, not
// copied.
func (e *Eigenstate) Values() []float64 {
	return e.psi
}

func (e *Eigenstate) Grid() *Grid {
	return e.grid
}
