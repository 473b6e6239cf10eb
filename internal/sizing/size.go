// Package sizing provides overflow-safe offset arithmetic for slicing the
// image buffer.
package sizing

import (
	"fmt"
	"math"

	"github.com/lagertha-vm/lagertha-image/internal/imagetype"
)

// ToInt converts a uint64 to int, returning ErrSizeOverflow if it doesn't fit.
func ToInt(size uint64) (int, error) {
	if size > uint64(math.MaxInt) {
		return 0, imagetype.ErrSizeOverflow
	}
	return int(size), nil
}

// AddUint64 adds two uint64 values, returning (result, false) on overflow.
func AddUint64(a, b uint64) (uint64, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// Range returns buf[off:off+n] or ErrOutOfBounds if the range does not fit.
func Range(buf []byte, off, n uint64) ([]byte, error) {
	end, ok := AddUint64(off, n)
	if !ok {
		return nil, imagetype.ErrSizeOverflow
	}
	if end > uint64(len(buf)) {
		return nil, fmt.Errorf("%w: [%d, %d) exceeds %d bytes", imagetype.ErrOutOfBounds, off, end, len(buf))
	}
	return buf[off:end], nil
}
