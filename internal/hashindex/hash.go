// Package hashindex resolves resource paths to location offsets using the
// image's redirect and offset tables.
package hashindex

// Multiplier is the hash multiplier and the default first-level seed.
const Multiplier uint32 = 0x01000193

// Hash computes the seeded 31-bit multiplicative hash of the UTF-8 bytes
// of s. The result is always non-negative as an int32.
func Hash(seed uint32, s string) uint32 {
	h := seed
	for i := 0; i < len(s); i++ {
		h = h*Multiplier ^ uint32(s[i])
	}
	return h & 0x7FFFFFFF
}

