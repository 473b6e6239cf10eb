package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lagertha-vm/lagertha-image/internal/hashindex"
)

func TestSplitPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path                      string
		module, parent, base, ext string
	}{
		{"/java.base/java/lang/Object.class", "java.base", "java/lang", "Object", "class"},
		{"/java.base/module-info.class", "java.base", "", "module-info", "class"},
		{"Foo", "", "", "Foo", ""},
		{"a/b/c", "", "a/b", "c", ""},
		{"/m/x.tar.gz", "m", "", "x.tar", "gz"},
	}
	for _, tt := range tests {
		m, p, b, e := SplitPath(tt.path)
		assert.Equal(t, []string{tt.module, tt.parent, tt.base, tt.ext}, []string{m, p, b, e}, tt.path)
	}
}

func TestBuilderTablesAreConsistent(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"} {
		b.Add("/java.base/p/"+name+".class", []byte(name))
	}
	raw := b.Raw(t)
	n := uint32(len(raw.Redirect))
	require.Equal(t, uint32(12), n)

	seen := map[uint32]bool{}
	for _, r := range b.resources {
		bkt := hashindex.Hash(hashindex.Multiplier, r.Path) % n
		v := raw.Redirect[bkt]
		require.NotZero(t, v, r.Path)

		var slot uint32
		if v < 0 {
			slot = uint32(-1 - v)
		} else {
			slot = hashindex.Hash(uint32(v), r.Path) % n
		}
		require.Less(t, slot, n)
		assert.False(t, seen[slot], "slot %d assigned twice", slot)
		seen[slot] = true
		assert.NotZero(t, raw.Offsets[slot])
	}
}
