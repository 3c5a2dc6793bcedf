// Package sliding implements a sliding-window HyperLogLog, as described in
// "Sliding HyperLogLog: Estimating cardinality in a data stream over a sliding window" (Chabchoub, Hébrail, 2010).
//
// Each register keeps a short timeline of (timestamp, rank) observations
// instead of a single maximum, so the sketch can answer distinct-count
// queries for any window up to the configured one.
//
// A Sketch is not safe for concurrent use. Callers that share one between
// goroutines must synchronise access, for example with a sync.RWMutex, or
// hand readers a [Sketch.Clone].
package sliding

import (
	"fmt"
	"math/bits"
	"slices"

	"github.com/keilerkonzept/hll"
	"github.com/keilerkonzept/hll/internal/sizeof"
	"github.com/keilerkonzept/hll/internal/unsafeutil"
)

// Sketch is a sliding-window HyperLogLog.
// The entire structure is serializable using any serialization method - all state fields are exported.
// A decoded sketch uses the default hasher and calibration; pass its Buckets to [FromBuckets] to validate it and choose others.
type Sketch struct {
	Precision uint8    // p: number of hash bits used as the bucket index.
	Window    int64    // Longest queryable window, in ticks.
	Buckets   []Bucket // One timeline per register, 2^p in total.

	hasher      hll.Hasher
	calibration hll.Calibration
}

// New returns an empty sketch whose relative error is at most `errorRate`
// (see [hll.PrecisionForErrorRate]) and which answers queries over windows up to `window` ticks.
//
//   - The hasher defaults to [hll.DefaultHasher] unless the [WithHasher] option is set.
//   - The calibration defaults to [hll.DefaultCalibration] unless the [WithCalibration] option is set.
func New(errorRate float64, window int64, opts ...Option) (*Sketch, error) {
	p, err := hll.PrecisionForErrorRate(errorRate)
	if err != nil {
		return nil, err
	}
	if window <= 0 {
		return nil, fmt.Errorf("%w: window %d must be positive", hll.ErrInvalidParameter, window)
	}

	out := Sketch{
		Precision: p,
		Window:    window,
		Buckets:   make([]Bucket, 1<<p),
	}
	for _, o := range opts {
		o(&out)
	}
	return &out, nil
}

// FromBuckets returns a sketch holding copies of the given bucket timelines.
// The number of buckets must be a power of two between 2^[hll.MinPrecision] and 2^[hll.MaxPrecision].
// Timelines must be sorted and carry valid ranks; they are pruned to `window`.
func FromBuckets(buckets []Bucket, window int64, opts ...Option) (*Sketch, error) {
	m := len(buckets)
	if m == 0 || m&(m-1) != 0 {
		return nil, fmt.Errorf("%w: bucket count %d is not a power of two", hll.ErrMalformedState, m)
	}
	p := uint8(bits.TrailingZeros(uint(m)))
	if p < hll.MinPrecision || p > hll.MaxPrecision {
		return nil, fmt.Errorf("%w: precision %d not in [%d, %d]", hll.ErrMalformedState, p, hll.MinPrecision, hll.MaxPrecision)
	}
	if window <= 0 {
		return nil, fmt.Errorf("%w: window %d must be positive", hll.ErrInvalidParameter, window)
	}

	maxRank := hll.MaxRank(p)
	out := Sketch{
		Precision: p,
		Window:    window,
		Buckets:   make([]Bucket, m),
	}
	for j := range buckets {
		obs := buckets[j].Observations
		if !valid(obs, maxRank) {
			return nil, fmt.Errorf("%w: bucket %d is unsorted or has ranks outside [1, %d]", hll.ErrMalformedState, j, maxRank)
		}
		out.Buckets[j].Observations = prune(slices.Clone(obs), window)
	}
	for _, o := range opts {
		o(&out)
	}
	return &out, nil
}

// M returns the number of registers.
func (me *Sketch) M() int { return len(me.Buckets) }

func (me *Sketch) hash(value []byte) uint64 {
	if me.hasher == nil {
		return hll.DefaultHasher.Sum64(value)
	}
	return me.hasher.Sum64(value)
}

func (me *Sketch) calib() hll.Calibration {
	if me.calibration == nil {
		return hll.DefaultCalibration
	}
	return me.calibration
}

// SizeBytes returns the current size of the sketch in bytes.
func (me *Sketch) SizeBytes() int {
	observations := 0
	for i := range me.Buckets {
		observations += cap(me.Buckets[i].Observations)
	}
	return sizeofSketchStruct +
		len(me.Buckets)*sizeofBucketStruct +
		observations*sizeof.Observation
}

// Add records the given value as seen at `timestamp`.
func (me *Sketch) Add(timestamp int64, value []byte) {
	me.AddHash(timestamp, me.hash(value))
}

// AddString records the given value as seen at `timestamp`.
func (me *Sketch) AddString(timestamp int64, value string) {
	me.AddHash(timestamp, me.hash(unsafeutil.Bytes(value)))
}

// AddHash records an already-hashed value as seen at `timestamp`.
func (me *Sketch) AddHash(timestamp int64, x uint64) {
	j, rank := hll.Split(x, me.Precision)
	me.Buckets[j].insert(hll.Observation{Timestamp: timestamp, Rank: rank}, me.Window)
}

// Merge folds the other sketches into this one, bucket by bucket.
// The result is pruned to this sketch's window. The others are not modified.
func (me *Sketch) Merge(others ...*Sketch) error {
	for _, o := range others {
		if len(o.Buckets) != len(me.Buckets) {
			return fmt.Errorf("%w: merging %d registers into %d", hll.ErrShapeMismatch, len(o.Buckets), len(me.Buckets))
		}
	}

	runs := make([][]hll.Observation, len(others)+1)
	for j := range me.Buckets {
		runs[0] = me.Buckets[j].Observations
		for i, o := range others {
			runs[i+1] = o.Buckets[j].Observations
		}
		me.Buckets[j].merge(me.Window, runs...)
	}
	return nil
}

// Registers returns, for each bucket, the largest rank observed at or after `timestamp - window` (0 if none).
func (me *Sketch) Registers(timestamp, window int64) ([]uint8, error) {
	if err := me.checkWindow(window); err != nil {
		return nil, err
	}
	return me.registers(make([]uint8, len(me.Buckets)), since(timestamp, window)), nil
}

func (me *Sketch) registers(dst []uint8, cutoff int64) []uint8 {
	for j := range me.Buckets {
		dst[j] = me.Buckets[j].max(cutoff)
	}
	return dst
}

func (me *Sketch) checkWindow(window int64) error {
	if window <= 0 || window > me.Window {
		return fmt.Errorf("%w: %d not in (0, %d]", hll.ErrRange, window, me.Window)
	}
	return nil
}

// Estimate returns the estimated number of distinct values seen in the full window ending at `timestamp`.
func (me *Sketch) Estimate(timestamp int64) float64 {
	reg := me.registers(make([]uint8, len(me.Buckets)), since(timestamp, me.Window))
	return hll.Estimate(reg, me.calib())
}

// EstimateWindow returns the estimated number of distinct values seen at or after `timestamp - window`.
// The window must lie in (0, me.Window].
func (me *Sketch) EstimateWindow(timestamp, window int64) (float64, error) {
	reg, err := me.Registers(timestamp, window)
	if err != nil {
		return 0, err
	}
	return hll.Estimate(reg, me.calib()), nil
}

// EstimateWindows is EstimateWindow for several windows ending at the same timestamp.
func (me *Sketch) EstimateWindows(timestamp int64, windows ...int64) ([]float64, error) {
	for _, w := range windows {
		if err := me.checkWindow(w); err != nil {
			return nil, err
		}
	}
	out := make([]float64, len(windows))
	reg := make([]uint8, len(me.Buckets))
	c := me.calib()
	for i, w := range windows {
		out[i] = hll.Estimate(me.registers(reg, since(timestamp, w)), c)
	}
	return out, nil
}

// Equal reports whether both sketches hold identical timelines.
// Sketches with different register counts cannot be compared.
func (me *Sketch) Equal(other *Sketch) (bool, error) {
	if len(me.Buckets) != len(other.Buckets) {
		return false, fmt.Errorf("%w: comparing %d registers with %d", hll.ErrShapeMismatch, len(me.Buckets), len(other.Buckets))
	}
	for j := range me.Buckets {
		if !slices.Equal(me.Buckets[j].Observations, other.Buckets[j].Observations) {
			return false, nil
		}
	}
	return true, nil
}

// Clone returns a deep copy that shares no storage with the sketch.
func (me *Sketch) Clone() *Sketch {
	out := *me
	out.Buckets = make([]Bucket, len(me.Buckets))
	for j := range me.Buckets {
		out.Buckets[j].Observations = slices.Clone(me.Buckets[j].Observations)
	}
	return &out
}

// Reset resets the sketch to an empty state.
func (me *Sketch) Reset() {
	for i := range me.Buckets {
		me.Buckets[i].Observations = me.Buckets[i].Observations[:0]
	}
}
