package jimage

import "github.com/lagertha-vm/lagertha-image/internal/imagetype"

// Sentinel errors re-exported from internal/imagetype.
var (
	// ErrBadMagic is returned by Open and New when the magic does not match.
	ErrBadMagic = imagetype.ErrBadMagic

	// ErrTruncated is returned when the data is too short to hold a header.
	ErrTruncated = imagetype.ErrTruncated

	// ErrOutOfBounds is returned when an offset or range read from the image
	// points outside the mapped data or the region it belongs to.
	ErrOutOfBounds = imagetype.ErrOutOfBounds

	// ErrCompressed is returned when the requested resource is stored
	// compressed. Decompression is not supported.
	ErrCompressed = imagetype.ErrCompressed

	// ErrCorruptLocation is returned when a location record is truncated.
	ErrCorruptLocation = imagetype.ErrCorruptLocation

	// ErrSizeOverflow is returned when offsets or sizes exceed supported limits.
	ErrSizeOverflow = imagetype.ErrSizeOverflow

	// ErrVersion is returned when the image version differs from the one
	// required with WithVersion.
	ErrVersion = imagetype.ErrVersion

	// ErrClosed is returned when an Image is used after Close.
	ErrClosed = imagetype.ErrClosed
)
