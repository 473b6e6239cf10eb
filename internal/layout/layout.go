// Package layout computes where each region of an image starts.
package layout

import (
	"fmt"

	"github.com/lagertha-vm/lagertha-image/internal/header"
)

// EntrySize is the width of a redirect or offset table entry.
const EntrySize = 4

// Layout holds absolute byte offsets of the regions following the header.
// Each region starts where the previous one ends; Data extends to the end
// of the file.
type Layout struct {
	Redirect  uint64
	Offsets   uint64
	Locations uint64
	Strings   uint64
	Data      uint64

	TableLength   uint64
	LocationsSize uint64
	StringsSize   uint64
}

// Compute derives the region offsets from a decoded header.
func Compute(h header.Header) Layout {
	l := Layout{
		TableLength:   uint64(h.TableLength),
		LocationsSize: uint64(h.LocationsSize),
		StringsSize:   uint64(h.StringsSize),
	}
	l.Redirect = header.Size
	l.Offsets = l.Redirect + l.TableLength*EntrySize
	l.Locations = l.Offsets + l.TableLength*EntrySize
	l.Strings = l.Locations + l.LocationsSize
	l.Data = l.Strings + l.StringsSize
	return l
}

// String formats the layout for diagnostics.
func (l Layout) String() string {
	return fmt.Sprintf("redirect=%d offsets=%d locations=%d strings=%d data=%d",
		l.Redirect, l.Offsets, l.Locations, l.Strings, l.Data)
}
