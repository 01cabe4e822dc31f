package quantum

import "math"

// Hermite evaluates the physicists' Hermite polynomial H_n(x) by the
// recurrence H_{n+1} = 2x H_n - 2n H_{n-1}.
func Hermite(n int, x float64) float64 {
	if n == 0 {
		return 1
	}
	if n == 1 {
		return 2 * x
	}

	hPrev, h := 1.0, 2*x
	for k := 1; k < n; k++ {
		hPrev, h = h, 2*x*h-2*float64(k)*hPrev
	}
	return h
}

// normalization returns (2^n n! sqrt(pi))^(-1/2), computed in log
// space so large n does not overflow.
func normalization(n int) float64 {
	lg, _ := math.Lgamma(float64(n) + 1)
	logNorm := -0.5 * (float64(n)*math.Ln2 + lg + 0.5*math.Log(math.Pi))
	return math.Exp(logNorm)
}
