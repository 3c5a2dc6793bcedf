package hll

import "math/bits"

// HashWidth is the number of hash bits consumed per value.
const HashWidth = 64

// Rho returns the 1-based position of the least significant set bit among
// the low `width` bits of w, or width+1 if none of them is set.
func Rho(w uint64, width uint8) uint8 {
	if tz := bits.TrailingZeros64(w); tz < int(width) {
		return uint8(tz) + 1
	}
	return width + 1
}

// Split divides the hash x into a bucket index (the low p bits) and the
// rank of the remaining 64-p bits.
func Split(x uint64, p uint8) (index int, rank uint8) {
	m := uint64(1) << p
	index = int(x & (m - 1))
	rank = Rho(x>>p, HashWidth-p)
	return
}

// MaxRank returns the largest rank [Split] can produce at precision p.
func MaxRank(p uint8) uint8 { return HashWidth - p + 1 }
