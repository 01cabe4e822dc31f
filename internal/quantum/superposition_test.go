package quantum_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/avane-k/physim/internal/quantum"
)

var _ = Describe("Hermite", func() {
	DescribeTable("matches the closed forms",
		func(n int, x, expected float64) {
			Expect(quantum.Hermite(n, x)).To(BeNumerically("~", expected, 1e-9))
		},
		Entry("H0", 0, 1.3, 1.0),
		Entry("H1", 1, 1.3, 2*1.3),
		Entry("H2", 2, 1.3, 4*1.3*1.3-2),
		Entry("H3", 3, 1.3, 8*math.Pow(1.3, 3)-12*1.3),
		Entry("H4 at 0", 4, 0.0, 12.0),
	)
})

var _ = Describe("Grid", func() {
	It("rejects degenerate bounds", func() {
		_, err := quantum.NewGrid(1, 1, 128)
		Expect(err).To(HaveOccurred())
	})

	It("rejects too few points", func() {
		_, err := quantum.NewGrid(-5, 5, 1)
		Expect(err).To(HaveOccurred())
	})

	It("integrates a constant exactly", func() {
		g, err := quantum.NewGrid(0, 2, 101)
		Expect(err).NotTo(HaveOccurred())

		samples := make([]float64, g.N)
		for i := range samples {
			samples[i] = 3.0
		}
		Expect(g.Integrate(samples)).To(BeNumerically("~", 6.0, 1e-12))
	})

	It("returns zero for a sample slice of the wrong length", func() {
		g := quantum.DefaultGrid()
		Expect(g.Integrate(make([]float64, g.N-1))).To(BeZero())
		Expect(g.Integrate(nil)).To(BeZero())
	})
})

var _ = Describe("Eigenstate", func() {
	grid := quantum.DefaultGrid()

	It("rejects negative quantum numbers", func() {
		_, err := quantum.NewEigenstate(grid, -1)
		Expect(err).To(HaveOccurred())
	})

	It("has energy n + 1/2", func() {
		for n := 0; n <= 5; n++ {
			e, err := quantum.NewEigenstate(grid, n)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.Energy()).To(Equal(float64(n) + 0.5))
		}
	})

	It("is normalized on the default grid", func() {
		for n := 0; n <= 6; n++ {
			e, _ := quantum.NewEigenstate(grid, n)
			rho := make([]float64, grid.N)
			for i, v := range e.Values() {
				rho[i] = v * v
			}
			Expect(grid.Integrate(rho)).To(BeNumerically("~", 1.0, 1e-3))
		}
	})

	It("is orthogonal to other eigenstates", func() {
		e1, _ := quantum.NewEigenstate(grid, 1)
		e2, _ := quantum.NewEigenstate(grid, 2)
		e4, _ := quantum.NewEigenstate(grid, 4)

		overlap := func(a, b *quantum.Eigenstate) float64 {
			prod := make([]float64, grid.N)
			for i := range prod {
				prod[i] = a.Values()[i] * b.Values()[i]
			}
			return grid.Integrate(prod)
		}

		Expect(overlap(e1, e2)).To(BeNumerically("~", 0.0, 1e-6))
		Expect(overlap(e2, e4)).To(BeNumerically("~", 0.0, 1e-6))
	})
})

var _ = Describe("Superposition", func() {
	grid := quantum.DefaultGrid()

	It("rejects empty term lists", func() {
		_, err := quantum.NewSuperposition(grid, nil)
		Expect(err).To(HaveOccurred())
	})

	It("rejects all-zero coefficients", func() {
		_, err := quantum.NewSuperposition(grid, []quantum.Term{{N: 0, C: 0}})
		Expect(err).To(HaveOccurred())
	})

	It("normalizes coefficients", func() {
		s, err := quantum.NewSuperposition(grid, []quantum.Term{
			{N: 0, C: 3},
			{N: 1, C: 4},
		})
		Expect(err).NotTo(HaveOccurred())

		total := 0.0
		for _, term := range s.Terms() {
			total += real(term.C)*real(term.C) + imag(term.C)*imag(term.C)
		}
		Expect(total).To(BeNumerically("~", 1.0, 1e-12))
	})

	It("merges repeated quantum numbers before normalizing", func() {
		s, err := quantum.NewSuperposition(grid, []quantum.Term{
			{N: 1, C: 1},
			{N: 1, C: 1},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Terms()).To(HaveLen(1))
		Expect(s.Norm(0)).To(BeNumerically("~", 1.0, 1e-3))
	})

	It("rejects coefficients that cancel after merging", func() {
		_, err := quantum.NewSuperposition(grid, []quantum.Term{
			{N: 1, C: 1},
			{N: 1, C: -1},
		})
		Expect(err).To(HaveOccurred())
	})

	Context("the default first-two-excited state", func() {
		s := quantum.FirstTwoExcited(grid)

		It("conserves probability at every sampled time", func() {
			for _, t := range []float64{0, 0.7, math.Pi, 4.2, 2 * math.Pi, 17.3} {
				Expect(s.Norm(t)).To(BeNumerically("~", 1.0, 1e-3))
			}
		})

		It("beats with period 2*pi", func() {
			Expect(s.Period()).To(BeNumerically("~", 2*math.Pi, 1e-12))

			before := s.Density(1.234)
			after := s.Density(1.234 + 2*math.Pi)
			for i := range before {
				Expect(after[i]).To(BeNumerically("~", before[i], 1e-9))
			}
		})

		It("oscillates in mean position", func() {
			left := s.ExpectedPosition(0)
			right := s.ExpectedPosition(math.Pi)
			// Half a beat later the density has swung to the other side.
			Expect(left).NotTo(BeNumerically("~", right, 1e-3))
			Expect(left + right).To(BeNumerically("~", 0.0, 1e-3))
		})

		It("has zero net probability current at t=0", func() {
			// At t=0 the coefficients are real, so psi is real and the
			// current vanishes identically.
			for _, j := range s.ProbabilityCurrent(0) {
				Expect(j).To(BeNumerically("~", 0.0, 1e-9))
			}
		})
	})

	It("reports stationary states as periodless", func() {
		s, err := quantum.NewSuperposition(grid, []quantum.Term{{N: 3, C: 1}})
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Period()).To(BeZero())

		// A stationary density does not move.
		before := s.Density(0)
		after := s.Density(5.5)
		for i := range before {
			Expect(after[i]).To(BeNumerically("~", before[i], 1e-9))
		}
	})
})
