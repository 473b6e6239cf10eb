// Package jimage reads runtime images: single read-only files that pack
// many named resources, typically class files, behind an on-disk hash
// index.
//
// An image is laid out as a fixed header followed by five regions:
//   - Redirect table: one signed 32-bit entry per slot, resolving a primary
//     hash bucket either directly to a slot or to a secondary hash seed
//   - Offset table: one unsigned 32-bit entry per slot, pointing into the
//     locations region
//   - Locations: tagged, variable-length records describing each resource
//   - Strings: NUL-terminated UTF-8 name components
//   - Data: resource content, addressed relative to its own start
//
// Lookups hash the full resource path, read at most two table entries,
// decode one location record and compare the name it encodes against the
// requested path. Content is returned as a slice of the memory-mapped file
// without copying.
//
// # Quick Start
//
//	img, err := jimage.Open("/usr/lib/jvm/jdk/lib/modules")
//	if err != nil {
//	    return err
//	}
//	defer img.Close()
//
//	class, ok, err := img.FindClass("java/lang/Object")
//
// Compressed resources are reported with ErrCompressed; they are never
// returned as data.
//
// The package implements fs.FS and related interfaces over resource paths
// such as "java.base/java/lang/Object.class".
package jimage
