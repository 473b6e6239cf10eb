package hashindex

import (
	"encoding/binary"
	"fmt"

	"github.com/lagertha-vm/lagertha-image/internal/cursor"
	"github.com/lagertha-vm/lagertha-image/internal/imagetype"
	"github.com/lagertha-vm/lagertha-image/internal/layout"
	"github.com/lagertha-vm/lagertha-image/internal/sizing"
)

// Index reads the redirect and offset tables straight from the image buffer.
// It is a value type and safe for concurrent use.
type Index struct {
	buf []byte
	l   layout.Layout
}

// New returns an index over buf laid out according to l.
// Table bounds are checked on each read, not here.
func New(buf []byte, l layout.Layout) Index {
	return Index{buf: buf, l: l}
}

// Len returns the number of table slots.
func (x Index) Len() uint64 { return x.l.TableLength }

// Redirect returns redirect table entry i.
func (x Index) Redirect(i uint64) (int32, error) {
	c, err := x.seek(x.l.Redirect, i)
	if err != nil {
		return 0, err
	}
	v, err := c.I32()
	if err != nil {
		return 0, fmt.Errorf("%w: redirect %d: %w", imagetype.ErrOutOfBounds, i, err)
	}
	return v, nil
}

// Offset returns offset table entry i.
func (x Index) Offset(i uint64) (uint32, error) {
	c, err := x.seek(x.l.Offsets, i)
	if err != nil {
		return 0, err
	}
	v, err := c.U32()
	if err != nil {
		return 0, fmt.Errorf("%w: offset %d: %w", imagetype.ErrOutOfBounds, i, err)
	}
	return v, nil
}

// seek returns a cursor positioned at entry i of the table starting at base.
func (x Index) seek(base, i uint64) (*cursor.Cursor, error) {
	if i >= x.l.TableLength {
		return nil, fmt.Errorf("%w: slot %d of %d", imagetype.ErrOutOfBounds, i, x.l.TableLength)
	}
	pos, err := sizing.ToInt(base + i*layout.EntrySize)
	if err != nil {
		return nil, err
	}
	c := cursor.New(x.buf, binary.LittleEndian)
	if err := c.Seek(pos); err != nil {
		return nil, fmt.Errorf("%w: %w", imagetype.ErrOutOfBounds, err)
	}
	return c, nil
}

// Slot resolves path to a table slot. ok is false when the redirect entry
// for the primary bucket is empty.
func (x Index) Slot(path string) (slot uint64, ok bool, err error) {
	n := x.l.TableLength
	if n == 0 {
		return 0, false, nil
	}
	bucket := uint64(Hash(Multiplier, path)) % n
	r, err := x.Redirect(bucket)
	if err != nil {
		return 0, false, err
	}
	switch {
	case r == 0:
		return 0, false, nil
	case r < 0:
		slot = uint64(-1 - int64(r))
		if slot >= n {
			return 0, false, fmt.Errorf("%w: redirect %d at bucket %d resolves past table", imagetype.ErrOutOfBounds, r, bucket)
		}
	default:
		slot = uint64(Hash(uint32(r), path)) % n
	}
	return slot, true, nil
}

// Lookup resolves path to an offset into the locations region. ok is false
// when no entry exists or the slot does not hold a usable offset. A true
// result is only a candidate; the caller must verify the decoded name.
func (x Index) Lookup(path string) (slot uint64, offset uint32, ok bool, err error) {
	slot, ok, err = x.Slot(path)
	if err != nil || !ok {
		return 0, 0, false, err
	}
	offset, err = x.Offset(slot)
	if err != nil {
		return 0, 0, false, err
	}
	if offset == 0 || uint64(offset) >= x.l.LocationsSize {
		return 0, 0, false, nil
	}
	return slot, offset, true, nil
}
