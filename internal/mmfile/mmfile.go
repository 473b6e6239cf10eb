// Package mmfile maps whole files into memory read-only.
package mmfile

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// File is a read-only mapping of an entire file.
type File struct {
	path string
	m    mmap.MMap
}

// Open maps the file at path. The file descriptor is closed before Open
// returns; the mapping stays valid until Close. An empty file yields an
// empty mapping.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return &File{path: path}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	return &File{path: path, m: m}, nil
}

// Bytes returns the mapped contents. The slice must not be modified and
// must not be used after Close.
func (f *File) Bytes() []byte { return f.m }

// Path returns the path the file was opened from.
func (f *File) Path() string { return f.path }

// Close unmaps the file. Calling Close more than once is a no-op.
func (f *File) Close() error {
	if f.m == nil {
		return nil
	}
	err := f.m.Unmap()
	f.m = nil
	return err
}
