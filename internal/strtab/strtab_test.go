package strtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lagertha-vm/lagertha-image/internal/imagetype"
	"github.com/lagertha-vm/lagertha-image/internal/layout"
)

// newTable places region after a 3-byte prefix so offsets are region-relative.
func newTable(region string) Table {
	buf := append([]byte("xyz"), region...)
	return New(buf, layout.Layout{Strings: 3, StringsSize: uint64(len(region))})
}

func TestGet(t *testing.T) {
	t.Parallel()

	tbl := newTable("\x00java.base\x00java/lang\x00Object\x00class\x00tail")

	tests := []struct {
		off  uint64
		want string
	}{
		{0, ""},
		{1, "java.base"},
		{11, "java/lang"},
		{21, "Object"},
		{28, "class"},
		{30, "ass"},
		{34, "tail"},
	}
	for _, tt := range tests {
		got, err := tbl.Get(tt.off)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "off=%d", tt.off)
	}
}

func TestGetOutOfBounds(t *testing.T) {
	t.Parallel()

	tbl := newTable("abc\x00")
	_, err := tbl.Get(4)
	require.ErrorIs(t, err, imagetype.ErrOutOfBounds)

	short := New([]byte("ab"), layout.Layout{Strings: 0, StringsSize: 10})
	_, err = short.Get(0)
	require.ErrorIs(t, err, imagetype.ErrOutOfBounds)
}

func TestGetLossyUTF8(t *testing.T) {
	t.Parallel()

	tbl := newTable("a\xffb\x00ok\x00")
	got, err := tbl.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "a�b", got)

	eq, err := tbl.Equal(0, "a�b")
	require.NoError(t, err)
	assert.True(t, eq)

	rest, ok, err := tbl.HasPrefix(0, "a�b/c")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/c", rest)
}

func TestEqualAndHasPrefix(t *testing.T) {
	t.Parallel()

	tbl := newTable("Object\x00")

	eq, err := tbl.Equal(0, "Object")
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = tbl.Equal(0, "Objects")
	require.NoError(t, err)
	assert.False(t, eq)

	rest, ok, err := tbl.HasPrefix(0, "Object.class")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, ".class", rest)

	_, ok, err = tbl.HasPrefix(0, "Obj")
	require.NoError(t, err)
	assert.False(t, ok)
}
