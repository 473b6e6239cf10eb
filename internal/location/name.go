package location

import (
	"strings"

	"github.com/lagertha-vm/lagertha-image/internal/imagetype"
)

// Strings resolves offsets into the strings region.
type Strings interface {
	// Get returns the decoded string at off.
	Get(off uint64) (string, error)
	// Equal reports whether the decoded string at off equals s.
	Equal(off uint64, s string) (bool, error)
	// HasPrefix reports whether s starts with the decoded string at off and
	// returns the remainder of s.
	HasPrefix(off uint64, s string) (string, bool, error)
}

// FullName rebuilds the full path of e: "/module/" if present, then
// "parent/" if present, then the base name, then ".ext" if present.
func FullName(e imagetype.Entry, s Strings) (string, error) {
	var sb strings.Builder
	if off := e.ModuleOffset(); off != 0 {
		m, err := s.Get(off)
		if err != nil {
			return "", err
		}
		sb.WriteByte('/')
		sb.WriteString(m)
		sb.WriteByte('/')
	}
	if off := e.ParentOffset(); off != 0 {
		p, err := s.Get(off)
		if err != nil {
			return "", err
		}
		sb.WriteString(p)
		sb.WriteByte('/')
	}
	b, err := s.Get(e.BaseOffset())
	if err != nil {
		return "", err
	}
	sb.WriteString(b)
	if off := e.ExtensionOffset(); off != 0 {
		x, err := s.Get(off)
		if err != nil {
			return "", err
		}
		sb.WriteByte('.')
		sb.WriteString(x)
	}
	return sb.String(), nil
}

// Matches reports whether FullName(e, s) equals path without building the
// name.
func Matches(e imagetype.Entry, s Strings, path string) (bool, error) {
	rest := path
	var ok bool
	var err error

	if off := e.ModuleOffset(); off != 0 {
		if rest, ok = strings.CutPrefix(rest, "/"); !ok {
			return false, nil
		}
		if rest, ok, err = s.HasPrefix(off, rest); err != nil || !ok {
			return false, err
		}
		if rest, ok = strings.CutPrefix(rest, "/"); !ok {
			return false, nil
		}
	}
	if off := e.ParentOffset(); off != 0 {
		if rest, ok, err = s.HasPrefix(off, rest); err != nil || !ok {
			return false, err
		}
		if rest, ok = strings.CutPrefix(rest, "/"); !ok {
			return false, nil
		}
	}
	if off := e.ExtensionOffset(); off == 0 {
		return s.Equal(e.BaseOffset(), rest)
	}
	if rest, ok, err = s.HasPrefix(e.BaseOffset(), rest); err != nil || !ok {
		return false, err
	}
	if rest, ok = strings.CutPrefix(rest, "."); !ok {
		return false, nil
	}
	return s.Equal(e.ExtensionOffset(), rest)
}
