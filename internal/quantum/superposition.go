package quantum

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Term is one component of a superposition: coefficient C attached to
// eigenstate N.
type Term struct {
	N int
	C complex128
}

// Superposition is a normalized linear combination of oscillator
// eigenstates. Evaluation at time t attaches exp(-i E_n t) to each
// term, which keeps the norm exactly 1 up to grid quadrature error.
type Superposition struct {
	grid   *Grid
	terms  []Term
	states []*Eigenstate
}

// NewSuperposition builds a superposition from the given terms.
// Terms repeating a quantum number are merged by adding their
// coefficients, then the coefficient vector is normalized so the
// total probability is 1. Normalization relies on eigenstate
// orthogonality, which only holds with one term per n.
func NewSuperposition(grid *Grid, terms []Term) (*Superposition, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("superposition needs at least one term")
	}

	merged := make([]Term, 0, len(terms))
	byN := make(map[int]int, len(terms))
	for _, term := range terms {
		if i, ok := byN[term.N]; ok {
			merged[i].C += term.C
			continue
		}
		byN[term.N] = len(merged)
		merged = append(merged, term)
	}

	total := 0.0
	for _, term := range merged {
		total += real(term.C)*real(term.C) + imag(term.C)*imag(term.C)
	}
	if total == 0 {
		return nil, fmt.Errorf("all coefficients cancel to zero")
	}
	scale := complex(1/math.Sqrt(total), 0)

	s := &Superposition{grid: grid}
	for _, term := range merged {
		state, err := NewEigenstate(grid, term.N)
		if err != nil {
			return nil, err
		}
		s.terms = append(s.terms, Term{N: term.N, C: term.C * scale})
		s.states = append(s.states, state)
	}
	return s, nil
}

// FirstTwoExcited is the animation default: equal weights on n=1 and
// n=2, beating with period 2*pi.
func FirstTwoExcited(grid *Grid) *Superposition {
	s, err := NewSuperposition(grid, []Term{
		{N: 1, C: 1},
		{N: 2, C: 1},
	})
	if err != nil {
		panic(err) // static terms, cannot fail
	}
	return s
}

func (s *Superposition) Grid() *Grid {
	return s.grid
}

func (s *Superposition) Terms() []Term {
	return s.terms
}

// Evaluate returns psi(x, t) on every grid point.
func (s *Superposition) Evaluate(t float64) []complex128 {
	psi := make([]complex128, s.grid.N)
	for k, term := range s.terms {
		phase := term.C * cmplx.Exp(complex(0, -s.states[k].Energy()*t))
		for i, v := range s.states[k].Values() {
			psi[i] += phase * complex(v, 0)
		}
	}
	return psi
}

// Density returns |psi(x, t)|^2 on every grid point.
func (s *Superposition) Density(t float64) []float64 {
	psi := s.Evaluate(t)
	rho := make([]float64, len(psi))
	for i, p := range psi {
		rho[i] = real(p)*real(p) + imag(p)*imag(p)
	}
	return rho
}

// Norm integrates the probability density over the grid. For a valid
// state this is 1 within quadrature error at every time.
func (s *Superposition) Norm(t float64) float64 {
	return s.grid.Integrate(s.Density(t))
}

// ExpectedPosition returns <x>(t), the mean of the density.
func (s *Superposition) ExpectedPosition(t float64) float64 {
	rho := s.Density(t)
	weighted := make([]float64, len(rho))
	for i, x := range s.grid.Points() {
		weighted[i] = x * rho[i]
	}
	return s.grid.Integrate(weighted)
}

// ProbabilityCurrent returns j(x, t) = Im(psi* dpsi/dx) using central
// differences, with one-sided stencils at the boundaries.
func (s *Superposition) ProbabilityCurrent(t float64) []float64 {
	psi := s.Evaluate(t)
	n := len(psi)
	j := make([]float64, n)
	dx := s.grid.Dx()

	for i := 0; i < n; i++ {
		var dpsi complex128
		switch i {
		case 0:
			dpsi = (psi[1] - psi[0]) / complex(dx, 0)
		case n - 1:
			dpsi = (psi[n-1] - psi[n-2]) / complex(dx, 0)
		default:
			dpsi = (psi[i+1] - psi[i-1]) / complex(2*dx, 0)
		}
		j[i] = imag(cmplx.Conj(psi[i]) * dpsi)
	}
	return j
}

// Period returns the revival period of the density. Energy gaps
// between oscillator eigenstates are integers, so the density repeats
// after 2*pi divided by the gcd of the gaps. Single-term states are
// stationary and report 0.
func (s *Superposition) Period() float64 {
	if len(s.terms) < 2 {
		return 0
	}
	g := 0
	for i := 1; i < len(s.terms); i++ {
		gap := s.terms[i].N - s.terms[0].N
		if gap < 0 {
			gap = -gap
		}
		g = gcd(g, gap)
	}
	if g == 0 {
		return 0
	}
	return 2 * math.Pi / float64(g)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
