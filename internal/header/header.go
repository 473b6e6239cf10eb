// Package header decodes the fixed image header.
package header

import (
	"encoding/binary"
	"fmt"

	"github.com/lagertha-vm/lagertha-image/internal/cursor"
	"github.com/lagertha-vm/lagertha-image/internal/imagetype"
)

// Magic is the sentinel stored in the first four bytes of every image.
const Magic uint32 = 0xCAFEDADA

// Size is the encoded header length: seven 4-byte little-endian fields.
const Size = 7 * 4

// Header holds the decoded header fields.
type Header struct {
	Magic         uint32
	Major         uint16
	Minor         uint16
	Flags         uint32
	ResourceCount uint32
	TableLength   uint32
	LocationsSize uint32
	StringsSize   uint32
}

// Decode parses the header at the start of buf.
//
// Only the magic is validated. Region sizes are checked lazily by lookups.
func Decode(buf []byte) (Header, error) {
	if len(buf) < Size {
		return Header{}, fmt.Errorf("%w: %d bytes, header needs %d", imagetype.ErrTruncated, len(buf), Size)
	}
	c := cursor.New(buf, binary.LittleEndian)

	var h Header
	fields := []*uint32{&h.Magic, nil, &h.Flags, &h.ResourceCount, &h.TableLength, &h.LocationsSize, &h.StringsSize}
	for _, f := range fields {
		v, err := c.U32()
		if err != nil {
			return Header{}, fmt.Errorf("%w: %v", imagetype.ErrTruncated, err)
		}
		if f == nil {
			h.Major = uint16(v >> 16)    //nolint:gosec // high half
			h.Minor = uint16(v & 0xFFFF) //nolint:gosec // low half
			continue
		}
		*f = v
	}

	if h.Magic != Magic {
		return Header{}, fmt.Errorf("%w: 0x%08X", imagetype.ErrBadMagic, h.Magic)
	}
	return h, nil
}

// Version returns the packed version field (major<<16 | minor).
func (h Header) Version() uint32 {
	return uint32(h.Major)<<16 | uint32(h.Minor)
}

// Encode returns the little-endian encoding of h.
func (h Header) Encode() []byte {
	buf := make([]byte, Size)
	for i, v := range []uint32{h.Magic, h.Version(), h.Flags, h.ResourceCount, h.TableLength, h.LocationsSize, h.StringsSize} {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	return buf
}

// String formats the header for diagnostics.
func (h Header) String() string {
	return fmt.Sprintf("magic=0x%08X version=%d.%d flags=0x%X resources=%d table=%d locations=%d strings=%d",
		h.Magic, h.Major, h.Minor, h.Flags, h.ResourceCount, h.TableLength, h.LocationsSize, h.StringsSize)
}
