package imagetype

import "errors"

// Sentinel errors for image operations.
var (
	// ErrBadMagic is returned when the file does not start with the image magic.
	ErrBadMagic = errors.New("jimage: bad magic")

	// ErrTruncated is returned when the buffer is too short to hold a header.
	ErrTruncated = errors.New("jimage: truncated image")

	// ErrOutOfBounds is returned when an offset or range falls outside the
	// mapped buffer or outside the region it must belong to.
	ErrOutOfBounds = errors.New("jimage: offset out of bounds")

	// ErrCompressed is returned when a resource is stored compressed.
	// Decompression is not supported.
	ErrCompressed = errors.New("jimage: compressed resources are not supported")

	// ErrCorruptLocation is returned when a location record runs past the
	// end of the locations region.
	ErrCorruptLocation = errors.New("jimage: corrupt location record")

	// ErrSizeOverflow is returned when offsets or sizes exceed supported limits.
	ErrSizeOverflow = errors.New("jimage: size overflow")

	// ErrVersion is returned when the image version does not match the
	// version required with WithVersion.
	ErrVersion = errors.New("jimage: unsupported version")

	// ErrClosed is returned when an image is used after Close.
	ErrClosed = errors.New("jimage: image closed")
)
