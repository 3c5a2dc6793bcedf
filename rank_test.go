package hll_test

import (
	"testing"

	"github.com/keilerkonzept/hll"
)

func TestRho(t *testing.T) {
	tests := []struct {
		w     uint64
		width uint8
		want  uint8
	}{
		{0b1, 60, 1},
		{0b1000, 60, 4},
		{0b1010_0000, 60, 6},
		{1 << 59, 60, 60},
		{1 << 60, 60, 61}, // set bit above the width
		{0, 60, 61},
		{0, 55, 56},
	}
	for _, tt := range tests {
		if got := hll.Rho(tt.w, tt.width); got != tt.want {
			t.Errorf("Rho(%#x, %d) = %d, want %d", tt.w, tt.width, got, tt.want)
		}
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		x     uint64
		p     uint8
		index int
		rank  uint8
	}{
		{0b1011_0101, 4, 0b0101, 1},
		{0x100 | 3, 4, 3, 5},
		{0, 4, 0, 61},
		{1<<63 | 7, 4, 7, 60},
		{0xffff_ffff, 9, 0x1ff, 1},
		{1 << 9, 9, 0, 1},
	}
	for _, tt := range tests {
		index, rank := hll.Split(tt.x, tt.p)
		if index != tt.index || rank != tt.rank {
			t.Errorf("Split(%#x, %d) = (%d, %d), want (%d, %d)", tt.x, tt.p, index, rank, tt.index, tt.rank)
		}
	}
}

func TestMaxRank(t *testing.T) {
	for p := uint8(hll.MinPrecision); p <= hll.MaxPrecision; p++ {
		if _, rank := hll.Split(0, p); rank != hll.MaxRank(p) {
			t.Errorf("p=%d: rank of zero hash is %d, MaxRank is %d", p, rank, hll.MaxRank(p))
		}
	}
}

func TestObservationBefore(t *testing.T) {
	a := hll.Observation{Timestamp: 1, Rank: 9}
	b := hll.Observation{Timestamp: 2, Rank: 1}
	c := hll.Observation{Timestamp: 2, Rank: 3}

	if !a.Before(b) || b.Before(a) {
		t.Errorf("expected earlier timestamps first")
	}
	if !b.Before(c) || c.Before(b) {
		t.Errorf("expected lower rank first on equal timestamps")
	}
	if c.Before(c) {
		t.Errorf("expected Before to be irreflexive")
	}
}
