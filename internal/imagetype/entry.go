package imagetype

// Kind identifies an attribute slot in a location record.
type Kind uint8

// Attribute kinds understood by the reader. KindEnd terminates a record.
const (
	KindEnd Kind = iota
	KindModule
	KindParent
	KindBase
	KindExtension
	KindOffset
	KindCompressed
	KindUncompressed

	// KindCount is the number of attribute slots kept in an Entry.
	KindCount
)

// String returns the attribute name.
func (k Kind) String() string {
	switch k {
	case KindEnd:
		return "end"
	case KindModule:
		return "module"
	case KindParent:
		return "parent"
	case KindBase:
		return "base"
	case KindExtension:
		return "extension"
	case KindOffset:
		return "offset"
	case KindCompressed:
		return "compressed"
	case KindUncompressed:
		return "uncompressed"
	default:
		return "unknown"
	}
}

// Entry is a decoded location record.
//
// The name attributes are offsets into the strings region, with 0 meaning
// absent. An Entry is a plain value; it does not alias the image buffer.
type Entry struct {
	attrs [KindCount]uint64
}

// Attribute returns the raw value of slot k, or 0 for kinds outside the
// range kept by Entry.
func (e Entry) Attribute(k Kind) uint64 {
	if k >= KindCount {
		return 0
	}
	return e.attrs[k]
}

// SetAttribute stores v into slot k. Kinds outside the kept range are ignored.
func (e *Entry) SetAttribute(k Kind, v uint64) {
	if k >= KindCount {
		return
	}
	e.attrs[k] = v
}

// ModuleOffset returns the strings offset of the module name.
func (e Entry) ModuleOffset() uint64 { return e.attrs[KindModule] }

// ParentOffset returns the strings offset of the parent directory.
func (e Entry) ParentOffset() uint64 { return e.attrs[KindParent] }

// BaseOffset returns the strings offset of the base name.
func (e Entry) BaseOffset() uint64 { return e.attrs[KindBase] }

// ExtensionOffset returns the strings offset of the extension.
func (e Entry) ExtensionOffset() uint64 { return e.attrs[KindExtension] }

// ContentOffset returns the content offset relative to the data region.
func (e Entry) ContentOffset() uint64 { return e.attrs[KindOffset] }

// CompressedSize returns the stored size of a compressed resource, or 0.
func (e Entry) CompressedSize() uint64 { return e.attrs[KindCompressed] }

// UncompressedSize returns the size of the resource content.
func (e Entry) UncompressedSize() uint64 { return e.attrs[KindUncompressed] }

// IsCompressed reports whether the resource is stored compressed.
func (e Entry) IsCompressed() bool { return e.attrs[KindCompressed] != 0 }
