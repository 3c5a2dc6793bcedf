package hll_test

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/keilerkonzept/hll"
	"github.com/stretchr/testify/require"
)

type stubCalibration struct {
	alpha, bias, threshold float64
}

func (c stubCalibration) Alpha(uint8) float64         { return c.alpha }
func (c stubCalibration) Bias(float64, uint8) float64 { return c.bias }
func (c stubCalibration) Threshold(uint8) float64     { return c.threshold }

func filled(m int, values ...uint8) []uint8 {
	reg := make([]uint8, m)
	for i := range reg {
		reg[i] = values[i%len(values)]
	}
	return reg
}

func TestEstimate_Regimes(t *testing.T) {
	tests := []struct {
		name      string
		registers []uint8
		c         stubCalibration
		want      float64
	}{
		// E = 16^2 / (16 * 2^-1) = 32 <= 5m: bias subtracted, no empty registers
		{"bias corrected", filled(16, 1), stubCalibration{1, 2, 0}, 30},
		// E = 16^2 / (16 * 2^-5) = 512 > 5m: bias ignored
		{"raw", filled(16, 5), stubCalibration{1, 2, 0}, 512},
		// V = 8: linear counting 16 ln 2 is below the threshold
		{"linear counting", filled(16, 0, 1), stubCalibration{1, 0, 20}, 16 * math.Ln2},
		// same registers, linear counting above the threshold: E = 256 / 12
		{"threshold", filled(16, 0, 1), stubCalibration{1, 0, 5}, 256.0 / 12},
		// no empty registers: H = Ep, below the threshold
		{"full below threshold", filled(16, 1), stubCalibration{1, 0, 1000}, 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, hll.Estimate(tt.registers, tt.c), 1e-9)
		})
	}
}

func TestEstimate_Empty(t *testing.T) {
	for p := uint8(hll.MinPrecision); p <= hll.MaxPrecision; p++ {
		require.Zero(t, hll.Estimate(make([]uint8, 1<<p), hll.DefaultCalibration), "p=%d", p)
	}
	require.Zero(t, hll.Estimate(nil, hll.DefaultCalibration))
}

func TestEstimate_Accuracy(t *testing.T) {
	const p = 12
	rng := rand.New(rand.NewPCG(1, 2))
	for _, n := range []int{100, 1000, 5000, 20000, 100000} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			reg := make([]uint8, 1<<p)
			for range n {
				j, rank := hll.Split(rng.Uint64(), p)
				reg[j] = max(reg[j], rank)
			}
			got := hll.Estimate(reg, hll.DefaultCalibration)
			t.Logf("error: %0.3f%%", 100*(got-float64(n))/float64(n))
			require.InEpsilon(t, n, got, 0.08)
		})
	}
}
