package unsafeutil

import "unsafe"

// Bytes returns the bytes backing s without copying them.
// The result must not be modified.
func Bytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
