package jimage

import (
	"bytes"
	"io"
	"io/fs"
	"path"
	"time"
)

// File is an open resource. It reads directly from the image data.
type File interface {
	fs.File
	io.ReaderAt
	io.Seeker
}

// resourceFile wraps the zero-copy content slice as an fs.File.
type resourceFile struct {
	*bytes.Reader
	info *resourceInfo
}

func (f *resourceFile) Stat() (fs.FileInfo, error) { return f.info, nil }

func (f *resourceFile) Close() error { return nil }

// resourceInfo implements fs.FileInfo for a resource.
type resourceInfo struct {
	name  string
	size  int64
	entry Entry
}

func newResourceInfo(name string, e Entry) *resourceInfo {
	return &resourceInfo{
		name:  path.Base(name),
		size:  int64(e.UncompressedSize()), //nolint:gosec // bounded by the image size once content is read
		entry: e,
	}
}

func (fi *resourceInfo) Name() string       { return fi.name }
func (fi *resourceInfo) Size() int64        { return fi.size }
func (fi *resourceInfo) Mode() fs.FileMode  { return 0o444 }
func (fi *resourceInfo) ModTime() time.Time { return time.Time{} }
func (fi *resourceInfo) IsDir() bool        { return false }

// Sys returns the resource's Entry.
func (fi *resourceInfo) Sys() any { return fi.entry }
