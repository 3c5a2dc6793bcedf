package hll

import (
	"math"
	"math/bits"
)

// Estimate returns the cardinality estimate for the given register values.
// len(registers) must be a power of two; zero registers are empty.
//
// The raw harmonic-mean estimate is bias-corrected up to 5m. Linear counting
// replaces it while it stays below the calibration threshold and some
// registers are still empty.
func Estimate(registers []uint8, c Calibration) float64 {
	m := len(registers)
	if m == 0 {
		return 0
	}
	p := uint8(bits.TrailingZeros(uint(m)))
	fm := float64(m)

	var inverseSum float64
	var zeros int
	for _, r := range registers {
		inverseSum += math.Ldexp(1, -int(r))
		if r == 0 {
			zeros++
		}
	}

	e := c.Alpha(p) * fm * fm / inverseSum
	ep := e
	if e <= 5*fm {
		ep = e - c.Bias(e, p)
	}

	h := ep
	if zeros > 0 {
		h = linearCounting(m, zeros)
	}
	if h <= c.Threshold(p) {
		return h
	}
	return ep
}

func linearCounting(m, zeros int) float64 {
	fm := float64(m)
	return fm * math.Log(fm/float64(zeros))
}
