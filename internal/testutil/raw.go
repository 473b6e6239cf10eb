package testutil

import (
	"encoding/binary"

	"github.com/lagertha-vm/lagertha-image/internal/header"
)

// RawImage holds every region of an image verbatim. Tests use it to craft
// images the Builder would never produce.
type RawImage struct {
	Header    header.Header
	Redirect  []int32
	Offsets   []uint32
	Locations []byte
	Strings   []byte
	Data      []byte
}

// Encode lays the regions out back to back after the header, with the
// table length and region sizes taken from the regions.
func (r *RawImage) Encode() []byte {
	return r.encode(true)
}

// EncodeAsIs encodes without recomputing header counts and sizes.
func (r *RawImage) EncodeAsIs() []byte {
	return r.encode(false)
}

func (r *RawImage) encode(sync bool) []byte {
	h := r.Header
	if sync {
		h.TableLength = uint32(len(r.Redirect))    //nolint:gosec // test images are small
		h.LocationsSize = uint32(len(r.Locations)) //nolint:gosec // test images are small
		h.StringsSize = uint32(len(r.Strings))     //nolint:gosec // test images are small
	}

	buf := h.Encode()
	for _, v := range r.Redirect {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(v)) //nolint:gosec // two's complement
	}
	for _, v := range r.Offsets {
		buf = binary.LittleEndian.AppendUint32(buf, v)
	}
	buf = append(buf, r.Locations...)
	buf = append(buf, r.Strings...)
	return append(buf, r.Data...)
}
