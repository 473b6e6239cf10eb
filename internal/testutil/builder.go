// Package testutil builds image fixtures for tests.
package testutil

import (
	"cmp"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/lagertha-vm/lagertha-image/internal/hashindex"
	"github.com/lagertha-vm/lagertha-image/internal/header"
	"github.com/lagertha-vm/lagertha-image/internal/imagetype"
	"github.com/lagertha-vm/lagertha-image/internal/location"
)

// Resource describes one resource to place in a test image.
type Resource struct {
	// Path is the full path, e.g. "/java.base/java/lang/Object.class".
	Path    string
	Content []byte

	// CompressedSize marks the resource as compressed when non-zero.
	CompressedSize uint64
}

// Builder assembles a valid image from resources. The redirect table is
// built the way an image writer does: single-entry buckets point straight
// at a slot, colliding buckets store a secondary seed.
type Builder struct {
	Major, Minor uint16
	Flags        uint32

	resources []Resource
}

// NewBuilder returns a builder for a version 1.0 image.
func NewBuilder() *Builder {
	return &Builder{Major: 1}
}

// Add adds an uncompressed resource.
func (b *Builder) Add(path string, content []byte) *Builder {
	b.resources = append(b.resources, Resource{Path: path, Content: content})
	return b
}

// AddCompressed adds a resource flagged as compressed.
func (b *Builder) AddCompressed(path string, content []byte, compressedSize uint64) *Builder {
	b.resources = append(b.resources, Resource{Path: path, Content: content, CompressedSize: compressedSize})
	return b
}

// Raw assembles the image regions.
func (b *Builder) Raw(tb testing.TB) *RawImage {
	tb.Helper()

	raw := &RawImage{
		Header: header.Header{
			Magic:         header.Magic,
			Major:         b.Major,
			Minor:         b.Minor,
			Flags:         b.Flags,
			ResourceCount: uint32(len(b.resources)), //nolint:gosec // test images are small
		},
		// Offset 0 in both regions is reserved: an unused slot in the
		// offset table and the empty string in the strings table.
		Locations: []byte{0},
		Strings:   []byte{0},
	}

	interned := map[string]uint64{"": 0}
	intern := func(s string) uint64 {
		if s == "" {
			return 0
		}
		if off, ok := interned[s]; ok {
			return off
		}
		off := uint64(len(raw.Strings))
		raw.Strings = append(append(raw.Strings, s...), 0)
		interned[s] = off
		return off
	}

	locs := make([]uint32, len(b.resources))
	for i, r := range b.resources {
		module, parent, base, ext := SplitPath(r.Path)

		var e imagetype.Entry
		e.SetAttribute(imagetype.KindModule, intern(module))
		e.SetAttribute(imagetype.KindParent, intern(parent))
		e.SetAttribute(imagetype.KindBase, intern(base))
		e.SetAttribute(imagetype.KindExtension, intern(ext))
		e.SetAttribute(imagetype.KindOffset, uint64(len(raw.Data)))
		e.SetAttribute(imagetype.KindCompressed, r.CompressedSize)
		e.SetAttribute(imagetype.KindUncompressed, uint64(len(r.Content)))
		raw.Data = append(raw.Data, r.Content...)

		locs[i] = uint32(len(raw.Locations)) //nolint:gosec // test images are small
		raw.Locations = location.Encode(raw.Locations, e)
	}

	raw.Redirect, raw.Offsets = buildTables(tb, b.resources, locs)
	return raw
}

// Build returns the encoded image.
func (b *Builder) Build(tb testing.TB) []byte {
	tb.Helper()
	return b.Raw(tb).Encode()
}

// WriteFile builds the image and writes it to a temporary file.
func (b *Builder) WriteFile(tb testing.TB) string {
	tb.Helper()
	return WriteImage(tb, b.Build(tb))
}

// WriteImage writes data to a file in a test temporary directory.
func WriteImage(tb testing.TB, data []byte) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "modules")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		tb.Fatalf("write image: %v", err)
	}
	return path
}

// SplitPath splits a full path into the name components stored in a
// location record.
func SplitPath(p string) (module, parent, base, ext string) {
	if rest, ok := strings.CutPrefix(p, "/"); ok {
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			module, p = rest[:i], rest[i+1:]
		}
	}
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		parent, p = p[:i], p[i+1:]
	}
	if i := strings.LastIndexByte(p, '.'); i >= 0 {
		p, ext = p[:i], p[i+1:]
	}
	return module, parent, p, ext
}

func buildTables(tb testing.TB, resources []Resource, locs []uint32) ([]int32, []uint32) {
	tb.Helper()

	n := uint32(len(resources)) //nolint:gosec // test images are small
	redirect := make([]int32, n)
	offsets := make([]uint32, n)
	if n == 0 {
		return redirect, offsets
	}

	buckets := make([][]int, n)
	for i, r := range resources {
		bkt := hashindex.Hash(hashindex.Multiplier, r.Path) % n
		buckets[bkt] = append(buckets[bkt], i)
	}
	order := make([]uint32, n)
	for i := range order {
		order[i] = uint32(i) //nolint:gosec // bounded by n
	}
	slices.SortStableFunc(order, func(a, b uint32) int {
		return cmp.Compare(len(buckets[b]), len(buckets[a]))
	})

	used := make([]bool, n)
	for _, bkt := range order {
		members := buckets[bkt]
		if len(members) < 2 {
			continue
		}
		slots := make([]uint32, len(members))
	seeds:
		for seed := uint32(1); seed <= math.MaxInt32; seed++ {
			for j, idx := range members {
				s := hashindex.Hash(seed, resources[idx].Path) % n
				if used[s] || slices.Contains(slots[:j], s) {
					continue seeds
				}
				slots[j] = s
			}
			redirect[bkt] = int32(seed) //nolint:gosec // seed <= MaxInt32
			for j, idx := range members {
				used[slots[j]] = true
				offsets[slots[j]] = locs[idx]
			}
			break
		}
		if redirect[bkt] == 0 {
			tb.Fatalf("no seed resolves bucket %d", bkt)
		}
	}

	free := 0
	for _, bkt := range order {
		members := buckets[bkt]
		if len(members) != 1 {
			continue
		}
		for used[free] {
			free++
		}
		used[free] = true
		redirect[bkt] = int32(-1 - free) //nolint:gosec // free < n
		offsets[free] = locs[members[0]]
	}
	return redirect, offsets
}
