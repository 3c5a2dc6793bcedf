package sliding

import (
	"math"
	"slices"
	"sort"

	"github.com/keilerkonzept/hll"
	"github.com/keilerkonzept/hll/heap"
)

// Bucket is the timeline of one register: the observations that can still
// be the register's maximum for some query window.
//
// Observations are sorted by [hll.Observation.Before], all lie within one
// window of the newest, and their ranks strictly decrease from oldest to newest.
type Bucket struct {
	Observations []hll.Observation
}

// insert adds a single observation and restores the timeline invariants.
func (me *Bucket) insert(o hll.Observation, window int64) {
	obs := me.Observations
	i := sort.Search(len(obs), func(i int) bool { return o.Before(obs[i]) })
	me.Observations = prune(slices.Insert(obs, i, o), window)
}

// merge replaces the timeline with the merge of the given runs.
// The runs may include me.Observations itself.
func (me *Bucket) merge(window int64, runs ...[]hll.Observation) {
	me.Observations = slices.Clip(prune(heap.Merge(nil, runs...), window))
}

// max returns the largest rank observed at or after cutoff, or 0.
func (me *Bucket) max(cutoff int64) uint8 {
	obs := me.Observations
	// ranks decrease with time, so the oldest qualifying observation holds the max
	i := sort.Search(len(obs), func(i int) bool { return obs[i].Timestamp >= cutoff })
	if i == len(obs) {
		return 0
	}
	return obs[i].Rank
}

// prune keeps, scanning from the newest observation backwards, each
// observation whose rank exceeds that of every newer one, and stops at the
// first observation older than one window before the newest.
// obs must be sorted; it is compacted in place.
func prune(obs []hll.Observation, window int64) []hll.Observation {
	n := len(obs)
	if n == 0 {
		return obs
	}
	cutoff := since(obs[n-1].Timestamp, window)
	kept := n
	var maxRank uint8 // ranks are >= 1, so the newest is always kept
	for i := n - 1; i >= 0; i-- {
		o := obs[i]
		if o.Timestamp < cutoff {
			break
		}
		if o.Rank > maxRank {
			kept--
			obs[kept] = o
			maxRank = o.Rank
		}
	}
	return obs[:copy(obs, obs[kept:])]
}

// valid reports whether the observations are sorted and ranked within [1, maxRank].
func valid(obs []hll.Observation, maxRank uint8) bool {
	for i, o := range obs {
		if o.Rank < 1 || o.Rank > maxRank {
			return false
		}
		if i > 0 && o.Before(obs[i-1]) {
			return false
		}
	}
	return true
}

// since returns timestamp - window, saturating at math.MinInt64.
// window must not be negative.
func since(timestamp, window int64) int64 {
	if c := timestamp - window; c <= timestamp {
		return c
	}
	return math.MinInt64
}
