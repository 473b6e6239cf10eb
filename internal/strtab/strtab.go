// Package strtab resolves offsets into the NUL-terminated strings region.
package strtab

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/lagertha-vm/lagertha-image/internal/imagetype"
	"github.com/lagertha-vm/lagertha-image/internal/layout"
	"github.com/lagertha-vm/lagertha-image/internal/sizing"
)

// Table reads strings directly from the image buffer.
type Table struct {
	buf []byte
	l   layout.Layout
}

// New returns a string table over the strings region of buf.
func New(buf []byte, l layout.Layout) Table {
	return Table{buf: buf, l: l}
}

// Raw returns the bytes at off up to, not including, the next NUL or the
// end of the region. The slice aliases the image buffer.
func (t Table) Raw(off uint64) ([]byte, error) {
	if off >= t.l.StringsSize {
		return nil, fmt.Errorf("%w: string %d of %d", imagetype.ErrOutOfBounds, off, t.l.StringsSize)
	}
	region, err := sizing.Range(t.buf, t.l.Strings, t.l.StringsSize)
	if err != nil {
		return nil, err
	}
	b := region[off:]
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return b, nil
}

// Get returns the string at off. Malformed UTF-8 is replaced with U+FFFD.
func (t Table) Get(off uint64) (string, error) {
	b, err := t.Raw(off)
	if err != nil {
		return "", err
	}
	return decode(b), nil
}

// Equal reports whether the string at off equals s.
func (t Table) Equal(off uint64, s string) (bool, error) {
	b, err := t.Raw(off)
	if err != nil {
		return false, err
	}
	if utf8.Valid(b) {
		return string(b) == s, nil
	}
	return decode(b) == s, nil
}

// HasPrefix reports whether s starts with the string at off and returns
// the rest of s.
func (t Table) HasPrefix(off uint64, s string) (string, bool, error) {
	b, err := t.Raw(off)
	if err != nil {
		return "", false, err
	}
	if utf8.Valid(b) {
		if len(b) > len(s) || s[:len(b)] != string(b) {
			return "", false, nil
		}
		return s[len(b):], true, nil
	}
	rest, ok := strings.CutPrefix(s, decode(b))
	return rest, ok, nil
}

func decode(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), string(utf8.RuneError))
	}
	return string(out)
}
