// Package cache memoizes image lookups for callers that resolve the same
// resources repeatedly.
//
// The core jimage.Image decodes a location record on every call. Image in
// this package keeps the outcome of recent lookups, hits and misses alike,
// in an adaptive replacement cache keyed by full resource path. Cached
// content slices alias the underlying image, so the cache holds no copies
// and must not outlive it.
package cache

import (
	"fmt"

	"github.com/hashicorp/golang-lru/arc/v2"
	"golang.org/x/sync/singleflight"

	jimage "github.com/lagertha-vm/lagertha-image"
)

// DefaultSize is the number of lookups kept when New is given size 0.
const DefaultSize = 4096

type result struct {
	content []byte
	found   bool
}

// Image wraps a jimage.Image with a lookup cache. It is safe for
// concurrent use.
type Image struct {
	base            *jimage.Image
	lookups         *arc.ARCCache[string, result]
	group           singleflight.Group // zero value is valid
	prefetchWorkers int
}

// Option configures an Image.
type Option func(*Image)

// WithPrefetchConcurrency sets the number of workers used by Prefetch.
// Values <= 0 use DefaultPrefetchWorkers.
func WithPrefetchConcurrency(workers int) Option {
	return func(c *Image) {
		c.prefetchWorkers = workers
	}
}

// New wraps base with a cache holding up to size lookups.
func New(base *jimage.Image, size int, opts ...Option) (*Image, error) {
	if size == 0 {
		size = DefaultSize
	}
	lookups, err := arc.NewARC[string, result](size)
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	c := &Image{base: base, lookups: lookups}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// Base returns the wrapped image.
func (c *Image) Base() *jimage.Image { return c.base }

// FindResource is jimage.Image.FindResource with caching. Errors are
// returned but never cached. Concurrent misses for the same path share a
// single lookup.
//
// Once the base image is closed, FindResource returns jimage.ErrClosed even
// for cached paths. Slices returned earlier alias the unmapped image and
// must not be read after Close.
func (c *Image) FindResource(fullPath string) ([]byte, bool, error) {
	if c.base.Closed() {
		return nil, false, jimage.ErrClosed
	}
	if r, ok := c.lookups.Get(fullPath); ok {
		return r.content, r.found, nil
	}

	v, err, _ := c.group.Do(fullPath, func() (any, error) {
		if r, ok := c.lookups.Get(fullPath); ok {
			return r, nil
		}
		content, found, err := c.base.FindResource(fullPath)
		if err != nil {
			return nil, err
		}
		r := result{content: content, found: found}
		c.lookups.Add(fullPath, r)
		return r, nil
	})
	if err != nil {
		return nil, false, err
	}
	r := v.(result) //nolint:errcheck // type assertion always succeeds when err is nil
	return r.content, r.found, nil
}

// FindClass is jimage.Image.FindClass with caching.
func (c *Image) FindClass(internalName string) ([]byte, bool, error) {
	return c.FindResource(jimage.ClassPath(c.base.DefaultModule(), internalName))
}

// Len returns the number of cached lookups.
func (c *Image) Len() int { return c.lookups.Len() }

// Purge drops all cached lookups.
func (c *Image) Purge() { c.lookups.Purge() }
