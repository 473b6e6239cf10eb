package jimage

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/lagertha-vm/lagertha-image/internal/hashindex"
	"github.com/lagertha-vm/lagertha-image/internal/header"
	"github.com/lagertha-vm/lagertha-image/internal/imagetype"
	"github.com/lagertha-vm/lagertha-image/internal/layout"
	"github.com/lagertha-vm/lagertha-image/internal/location"
	"github.com/lagertha-vm/lagertha-image/internal/mmfile"
	"github.com/lagertha-vm/lagertha-image/internal/sizing"
	"github.com/lagertha-vm/lagertha-image/internal/strtab"
)

// Re-export types from internal packages for the public API.
type (
	// Header is the decoded image header.
	Header = header.Header

	// Layout holds the absolute offsets of the image regions.
	Layout = layout.Layout

	// Entry is a decoded location record.
	Entry = imagetype.Entry

	// Kind identifies an attribute slot in an Entry.
	Kind = imagetype.Kind
)

// Re-export attribute kinds.
const (
	KindModule       = imagetype.KindModule
	KindParent       = imagetype.KindParent
	KindBase         = imagetype.KindBase
	KindExtension    = imagetype.KindExtension
	KindOffset       = imagetype.KindOffset
	KindCompressed   = imagetype.KindCompressed
	KindUncompressed = imagetype.KindUncompressed
)

// Magic is the value every image starts with.
const Magic = header.Magic

// DefaultModule is the module FindClass searches unless WithDefaultModule
// is given.
const DefaultModule = "java.base"

// Image is an open image file.
//
// An Image is immutable after Open or New returns and is safe for
// concurrent lookups. Slices returned by lookups alias the image data and
// must not be modified or used after Close.
type Image struct {
	data   []byte
	file   *mmfile.File // nil when created with New
	hdr    header.Header
	layout layout.Layout
	index  hashindex.Index
	strs   strtab.Table
	closed atomic.Bool

	defaultModule string
	checkVersion  bool
	major, minor  uint16
	logger        *slog.Logger
}

// log returns the logger, falling back to a discard logger if nil.
func (img *Image) log() *slog.Logger {
	if img.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return img.logger
}

// Open maps the image file at path read-only and decodes its header.
//
// Open fails if the file cannot be opened or mapped, is shorter than a
// header, or does not start with Magic. Region sizes are not checked
// against the file length here; lookups that reach past the end of the
// file fail with ErrOutOfBounds.
func Open(path string, opts ...Option) (*Image, error) {
	f, err := mmfile.Open(path)
	if err != nil {
		return nil, fmt.Errorf("jimage: open %s: %w", path, err)
	}
	img, err := newImage(f.Bytes(), opts)
	if err != nil {
		_ = f.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("jimage: open %s: %w", path, err)
	}
	img.file = f
	img.log().Debug("image opened", "path", path, "size", len(img.data))
	return img, nil
}

// New decodes an image held in memory. The data is retained; callers must
// not modify it while the Image is in use.
func New(data []byte, opts ...Option) (*Image, error) {
	return newImage(data, opts)
}

func newImage(data []byte, opts []Option) (*Image, error) {
	img := &Image{defaultModule: DefaultModule}
	for _, opt := range opts {
		opt(img)
	}

	hdr, err := header.Decode(data)
	if err != nil {
		return nil, err
	}
	if img.checkVersion && (hdr.Major != img.major || hdr.Minor != img.minor) {
		return nil, fmt.Errorf("%w: %d.%d, want %d.%d", ErrVersion, hdr.Major, hdr.Minor, img.major, img.minor)
	}

	img.data = data
	img.hdr = hdr
	img.layout = layout.Compute(hdr)
	img.index = hashindex.New(data, img.layout)
	img.strs = strtab.New(data, img.layout)

	img.log().Debug("image header",
		"version", fmt.Sprintf("%d.%d", hdr.Major, hdr.Minor),
		"resources", hdr.ResourceCount,
		"table_length", hdr.TableLength,
		"locations_size", hdr.LocationsSize,
		"strings_size", hdr.StringsSize,
		"data_base", img.layout.Data,
	)
	if img.layout.Data > uint64(len(data)) {
		img.log().Warn("image regions extend past end of data",
			"data_base", img.layout.Data, "size", len(data))
	}
	return img, nil
}

// Close releases the mapping. Calling Close more than once is a no-op.
// Close must not be called while lookups are in flight.
func (img *Image) Close() error {
	if img.closed.Swap(true) {
		return nil
	}
	if img.file == nil {
		return nil
	}
	img.log().Debug("image closed", "path", img.file.Path())
	return img.file.Close()
}

// Closed reports whether Close has been called.
func (img *Image) Closed() bool { return img.closed.Load() }

// Header returns the decoded header.
func (img *Image) Header() Header { return img.hdr }

// Layout returns the region offsets.
func (img *Image) Layout() Layout { return img.layout }

// DefaultModule returns the module FindClass searches.
func (img *Image) DefaultModule() string { return img.defaultModule }

// Size returns the length of the image data in bytes.
func (img *Image) Size() int { return len(img.data) }

// ClassPath returns the full path of a class: "/module/name.class".
// name uses '/' as the package separator, e.g. "java/lang/Object".
func ClassPath(module, name string) string {
	return "/" + module + "/" + name + ".class"
}

// Location returns the location record for the resource at fullPath.
//
// ok is false when no resource has that path, including when the slot the
// path hashes to belongs to a different resource. The returned Entry has
// been verified against fullPath.
func (img *Image) Location(fullPath string) (e Entry, ok bool, err error) {
	if img.closed.Load() {
		return Entry{}, false, ErrClosed
	}

	_, off, ok, err := img.index.Lookup(fullPath)
	if err != nil || !ok {
		return Entry{}, false, err
	}

	locations, err := sizing.Range(img.data, img.layout.Locations, img.layout.LocationsSize)
	if err != nil {
		return Entry{}, false, err
	}
	e, err = location.Decode(locations, uint64(off))
	if err != nil {
		return Entry{}, false, err
	}

	match, err := location.Matches(e, img.strs, fullPath)
	if err != nil {
		return Entry{}, false, err
	}
	if !match {
		if img.log().Enabled(context.Background(), slog.LevelDebug) {
			name, _ := img.FullName(e) //nolint:errcheck // diagnostic only
			img.log().Debug("location name mismatch", "path", fullPath, "found", name)
		}
		return Entry{}, false, nil
	}
	return e, true, nil
}

// FullName rebuilds the full path stored in e.
func (img *Image) FullName(e Entry) (string, error) {
	if img.closed.Load() {
		return "", ErrClosed
	}
	return location.FullName(e, img.strs)
}

// Verify reports whether e names the resource at fullPath.
func (img *Image) Verify(e Entry, fullPath string) (bool, error) {
	if img.closed.Load() {
		return false, ErrClosed
	}
	return location.Matches(e, img.strs, fullPath)
}

// Content returns the content of the resource described by e.
//
// Content returns ErrCompressed for compressed resources and ErrOutOfBounds
// when the content range does not lie within the image. The returned slice
// aliases the image data.
func (img *Image) Content(e Entry) ([]byte, error) {
	if img.closed.Load() {
		return nil, ErrClosed
	}
	if e.IsCompressed() {
		return nil, ErrCompressed
	}
	start, ok := sizing.AddUint64(img.layout.Data, e.ContentOffset())
	if !ok {
		return nil, ErrSizeOverflow
	}
	b, err := sizing.Range(img.data, start, e.UncompressedSize())
	if err != nil {
		return nil, err
	}
	return b[:len(b):len(b)], nil
}

// FindResource returns the content of the resource at fullPath, e.g.
// "/java.base/java/lang/Object.class".
//
// ok is false when the resource does not exist. A compressed resource
// yields ErrCompressed rather than data.
func (img *Image) FindResource(fullPath string) (content []byte, ok bool, err error) {
	e, ok, err := img.Location(fullPath)
	if err != nil || !ok {
		return nil, false, err
	}
	content, err = img.Content(e)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", fullPath, err)
	}
	return content, true, nil
}

// Find returns the content of resource name in module.
func (img *Image) Find(module, name string) ([]byte, bool, error) {
	return img.FindResource("/" + module + "/" + name)
}

// FindClass returns the class file for internalName, e.g.
// "java/lang/Object", from the default module.
func (img *Image) FindClass(internalName string) ([]byte, bool, error) {
	return img.FindResource(ClassPath(img.defaultModule, internalName))
}
