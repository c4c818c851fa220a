package epistemic

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// pmf returns P[X = k] for X ~ Binomial(n, p).
func pmf(k, n int, p float64) float64 {
	if k < 0 || k > n {
		return 0
	}
	// distuv works in log space and yields NaN at the degenerate ends.
	switch p {
	case 0:
		if k == 0 {
			return 1
		}
		return 0
	case 1:
		if k == n {
			return 1
		}
		return 0
	}
	return distuv.Binomial{N: float64(n), P: p}.Prob(float64(k))
}

// sf returns P[X > k] for X ~ Binomial(n, p).
func sf(k, n int, p float64) float64 {
	if k < 0 {
		return 1
	}
	if k >= n {
		return 0
	}
	switch p {
	case 0:
		return 0
	case 1:
		return 1
	}
	// 1-CDF can round a hair below zero far in the tail.
	return math.Max(0, distuv.Binomial{N: float64(n), P: p}.Survival(float64(k)))
}
