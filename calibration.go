package hll

import (
	"fmt"
	"math"
	"sort"
)

// Precisions for which calibration constants are available.
const (
	MinPrecision = 4
	MaxPrecision = 18
)

// Calibration supplies the precision-dependent constants of the estimator.
type Calibration interface {
	// Alpha returns the bias constant of the harmonic-mean estimator.
	Alpha(p uint8) float64
	// Bias returns the expected bias of the raw estimate e.
	Bias(e float64, p uint8) float64
	// Threshold returns the cardinality below which linear counting is preferred.
	Threshold(p uint8) float64
}

// DefaultCalibration covers precisions in [MinPrecision, MaxPrecision].
//
// Thresholds are the empirical crossover points published with HyperLogLog++.
// Bias tables are derived from the expected raw estimate of a register array
// whose buckets receive Poisson-distributed hash counts.
var DefaultCalibration Calibration = plusPlus{}

// PrecisionForErrorRate returns the smallest precision whose nominal
// relative error 1.04/sqrt(2^p) does not exceed errorRate.
// Precisions below MinPrecision are raised to MinPrecision.
func PrecisionForErrorRate(errorRate float64) (uint8, error) {
	if !(0 < errorRate && errorRate < 1) {
		return 0, fmt.Errorf("%w: error rate %v not in (0, 1)", ErrInvalidParameter, errorRate)
	}
	p := math.Ceil(math.Log2(math.Pow(1.04/errorRate, 2)))
	if p > MaxPrecision {
		return 0, fmt.Errorf("%w: error rate %v needs precision %v, max is %d", ErrInvalidParameter, errorRate, p, MaxPrecision)
	}
	return uint8(max(p, MinPrecision)), nil
}

var thresholds = [MaxPrecision + 1]float64{
	4: 10, 20, 40, 80, 220, 400, 900, 1800, 3100,
	6500, 11500, 20000, 50000, 120000, 350000,
}

const biasTablePoints = 200

type biasTable struct {
	rawEstimates []float64 // ascending
	biases       []float64
}

var biasTables = func() (out [MaxPrecision + 1]biasTable) {
	for p := uint8(MinPrecision); p <= MaxPrecision; p++ {
		out[p] = newBiasTable(p)
	}
	return
}()

func newBiasTable(p uint8) biasTable {
	m := float64(uint64(1) << p)
	a := alpha(p)
	maxRank := int(MaxRank(p))
	// span raw estimates past 5m, where correction stops
	maxN := 6 * m

	t := biasTable{
		rawEstimates: make([]float64, biasTablePoints),
		biases:       make([]float64, biasTablePoints),
	}
	for i := range biasTablePoints {
		n := maxN * float64(i) / float64(biasTablePoints-1)
		raw := a * m / expectedInversePow2(n/m, maxRank)
		t.rawEstimates[i] = raw
		t.biases[i] = raw - n
	}
	return t
}

// expectedInversePow2 returns E[2^-M] for the register M of a bucket that
// received Poisson(lambda) hashes, where P(M <= k) = exp(-lambda * 2^-k).
func expectedInversePow2(lambda float64, maxRank int) float64 {
	var sum, prev float64
	for k := 0; k <= maxRank; k++ {
		cdf := 1.0
		if k < maxRank {
			cdf = math.Exp(-lambda * math.Ldexp(1, -k))
		}
		sum += math.Ldexp(cdf-prev, -k)
		prev = cdf
	}
	return sum
}

func alpha(p uint8) float64 {
	switch p {
	case 4:
		return 0.673
	case 5:
		return 0.697
	case 6:
		return 0.709
	}
	m := float64(uint64(1) << p)
	return 0.7213 / (1 + 1.079/m)
}

type plusPlus struct{}

func (plusPlus) Alpha(p uint8) float64 { return alpha(p) }

func (plusPlus) Threshold(p uint8) float64 {
	if p < MinPrecision || p > MaxPrecision {
		return 0
	}
	return thresholds[p]
}

// Bias interpolates linearly between the two table points around e.
func (plusPlus) Bias(e float64, p uint8) float64 {
	if p < MinPrecision || p > MaxPrecision {
		return 0
	}
	t := biasTables[p]
	i := sort.SearchFloat64s(t.rawEstimates, e)
	switch i {
	case len(t.rawEstimates):
		return t.biases[i-1]
	case 0:
		return t.biases[0]
	}
	above := t.rawEstimates[i] - e
	below := e - t.rawEstimates[i-1]
	return (t.biases[i]*below + t.biases[i-1]*above) / (above + below)
}
