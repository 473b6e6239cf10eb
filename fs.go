package jimage

import (
	"bytes"
	"io/fs"
)

// Interface compliance.
var (
	_ fs.FS         = (*Image)(nil)
	_ fs.StatFS     = (*Image)(nil)
	_ fs.ReadFileFS = (*Image)(nil)
	_ File          = (*resourceFile)(nil)
)

// Open implements fs.FS.
//
// Names are full resource paths without the leading slash, e.g.
// "java.base/java/lang/Object.class". Directories are not listed; only
// resources can be opened. This includes the root: Open(".") fails with
// fs.ErrNotExist, so the image does not pass fstest.TestFS. The returned
// file also implements File.
func (img *Image) Open(name string) (fs.File, error) {
	e, content, err := img.resolve("open", name)
	if err != nil {
		return nil, err
	}
	return &resourceFile{Reader: bytes.NewReader(content), info: newResourceInfo(name, e)}, nil
}

// Stat implements fs.StatFS.
//
// Stat does not read content, so it succeeds for compressed resources.
func (img *Image) Stat(name string) (fs.FileInfo, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrInvalid}
	}
	e, ok, err := img.Location("/" + name)
	if err != nil {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: err}
	}
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return newResourceInfo(name, e), nil
}

// ReadFile implements fs.ReadFileFS. It returns a copy of the content.
func (img *Image) ReadFile(name string) ([]byte, error) {
	_, content, err := img.resolve("readfile", name)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(content), nil
}

func (img *Image) resolve(op, name string) (Entry, []byte, error) {
	if !fs.ValidPath(name) {
		return Entry{}, nil, &fs.PathError{Op: op, Path: name, Err: fs.ErrInvalid}
	}
	e, ok, err := img.Location("/" + name)
	if err != nil {
		return Entry{}, nil, &fs.PathError{Op: op, Path: name, Err: err}
	}
	if !ok {
		return Entry{}, nil, &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
	}
	content, err := img.Content(e)
	if err != nil {
		return Entry{}, nil, &fs.PathError{Op: op, Path: name, Err: err}
	}
	return e, content, nil
}
