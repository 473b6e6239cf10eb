// Package location decodes location records and rebuilds resource names
// from them.
//
// A record is a sequence of attributes. Each attribute starts with a tag
// byte whose high five bits are the kind and whose low three bits are the
// payload length minus one, followed by a big-endian payload. A tag with
// kind 0 ends the record.
package location

import (
	"encoding/binary"
	"fmt"

	"github.com/lagertha-vm/lagertha-image/internal/cursor"
	"github.com/lagertha-vm/lagertha-image/internal/imagetype"
)

// Decode parses the record starting at off within the locations region.
// Attributes may appear in any order; kinds beyond the ones kept by
// imagetype.Entry are skipped. Decoding stops at the end tag or at the end
// of the region.
func Decode(locations []byte, off uint64) (imagetype.Entry, error) {
	var e imagetype.Entry
	if off >= uint64(len(locations)) {
		return e, fmt.Errorf("%w: location %d of %d", imagetype.ErrOutOfBounds, off, len(locations))
	}

	c := cursor.New(locations, binary.BigEndian)
	if err := c.Seek(int(off)); err != nil { //nolint:gosec // bounded by len(locations)
		return e, fmt.Errorf("%w: %w", imagetype.ErrOutOfBounds, err)
	}
	for c.Len() > 0 {
		tag, err := c.U8()
		if err != nil {
			return imagetype.Entry{}, fmt.Errorf("%w: %w", imagetype.ErrCorruptLocation, err)
		}
		if tag <= 7 {
			break
		}
		kind := imagetype.Kind(tag >> 3)
		payload, err := c.Bytes(int(tag&7) + 1)
		if err != nil {
			return imagetype.Entry{}, fmt.Errorf("%w: %s attribute: %w", imagetype.ErrCorruptLocation, kind, err)
		}
		var v uint64
		for _, b := range payload {
			v = v<<8 | uint64(b)
		}
		e.SetAttribute(kind, v)
	}
	return e, nil
}

// Encode appends the record for e to dst. Zero attributes are omitted and
// each payload uses the fewest bytes that hold its value.
func Encode(dst []byte, e imagetype.Entry) []byte {
	for k := imagetype.KindModule; k < imagetype.KindCount; k++ {
		v := e.Attribute(k)
		if v == 0 {
			continue
		}
		n := 1
		for n < 8 && v>>(8*n) != 0 {
			n++
		}
		dst = append(dst, byte(k)<<3|byte(n-1))
		for i := n - 1; i >= 0; i-- {
			dst = append(dst, byte(v>>(8*i)))
		}
	}
	return append(dst, byte(imagetype.KindEnd))
}
