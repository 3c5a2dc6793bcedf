package hll

import (
	"crypto/sha1"
	"encoding/binary"

	"github.com/OneOfOne/xxhash"
	xxhash2 "github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
)

const hashSeed = 4848280

// Hasher maps a value to a well-distributed 64-bit hash.
// Cryptographic strength is not required.
type Hasher interface {
	Sum64(value []byte) uint64
}

// HasherFunc adapts a plain function to the [Hasher] interface.
type HasherFunc func(value []byte) uint64

func (f HasherFunc) Sum64(value []byte) uint64 { return f(value) }

var (
	// XXHash is seeded 64-bit xxHash (github.com/OneOfOne/xxhash). It is the default hasher.
	XXHash Hasher = HasherFunc(func(value []byte) uint64 { return xxhash.Checksum64S(value, hashSeed) })

	// XXHash2 is unseeded 64-bit xxHash (github.com/cespare/xxhash/v2).
	XXHash2 Hasher = HasherFunc(xxhash2.Sum64)

	// Murmur3 is the 64-bit half of MurmurHash3 x64_128 (github.com/spaolacci/murmur3).
	Murmur3 Hasher = HasherFunc(murmur3.Sum64)

	// SHA1 is the first 8 bytes of a SHA-1 digest, read big-endian.
	SHA1 Hasher = HasherFunc(func(value []byte) uint64 {
		sum := sha1.Sum(value)
		return binary.BigEndian.Uint64(sum[:8])
	})

	DefaultHasher = XXHash
)
