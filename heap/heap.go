// Package heap merges sorted runs of observations.
package heap

import (
	"container/heap"

	"github.com/keilerkonzept/hll"
)

// Item is the unread head of one run.
type Item struct {
	Observation hll.Observation
	Run         int // index into Min.Runs
	Next        int // position of the following observation in its run
}

// Min is a min-heap of run heads, ordered by observation, then by run index.
type Min struct {
	Items []Item
	Runs  [][]hll.Observation
}

// NewMin returns a heap over the heads of the given runs.
// Each run must be sorted according to [hll.Observation.Before].
func NewMin(runs ...[]hll.Observation) *Min {
	me := &Min{
		Items: make([]Item, 0, len(runs)),
		Runs:  runs,
	}
	for i, run := range runs {
		if len(run) == 0 {
			continue
		}
		me.Items = append(me.Items, Item{Observation: run[0], Run: i, Next: 1})
	}
	me.Reinit()
	return me
}

var _ heap.Interface = &Min{}

func (me *Min) Reinit() { heap.Init(me) }

// Len is container/heap.Interface.Len().
func (me Min) Len() int { return len(me.Items) }

// Less is container/heap.Interface.Less().
func (me Min) Less(i, j int) bool {
	oi, oj := me.Items[i].Observation, me.Items[j].Observation
	if oi == oj {
		return me.Items[i].Run < me.Items[j].Run
	}
	return oi.Before(oj)
}

// Swap is container/heap.Interface.Swap().
func (me Min) Swap(i, j int) { me.Items[i], me.Items[j] = me.Items[j], me.Items[i] }

// Push is container/heap.Interface.Push().
func (me *Min) Push(x interface{}) { me.Items = append(me.Items, x.(Item)) }

// Pop is container/heap.Interface.Pop().
func (me *Min) Pop() interface{} {
	old := me.Items
	n := len(old)
	x := old[n-1]
	me.Items = old[0 : n-1]
	return x
}

// Remaining returns the number of observations not yet returned by Next.
func (me Min) Remaining() int {
	n := 0
	for _, it := range me.Items {
		n += len(me.Runs[it.Run]) - it.Next + 1
	}
	return n
}

// Next removes and returns the smallest unread observation.
func (me *Min) Next() (hll.Observation, bool) {
	if len(me.Items) == 0 {
		return hll.Observation{}, false
	}
	head := &me.Items[0]
	o := head.Observation
	if run := me.Runs[head.Run]; head.Next < len(run) {
		head.Observation = run[head.Next]
		head.Next++
		heap.Fix(me, 0)
	} else {
		heap.Pop(me)
	}
	return o, true
}

// Merge appends the observations of all runs to dst in sorted order.
// Equal observations keep the order of their runs.
func Merge(dst []hll.Observation, runs ...[]hll.Observation) []hll.Observation {
	h := NewMin(runs...)
	if dst == nil {
		dst = make([]hll.Observation, 0, h.Remaining())
	}
	for {
		o, ok := h.Next()
		if !ok {
			return dst
		}
		dst = append(dst, o)
	}
}
