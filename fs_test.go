package jimage

import (
	"io"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSOpen(t *testing.T) {
	t.Parallel()

	img := newTestImage(t, classes())

	f, err := img.Open("java.base/java/lang/Object.class")
	require.NoError(t, err)
	defer f.Close()

	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, []byte("object bytes"), content)

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, "Object.class", info.Name())
	assert.Equal(t, int64(len("object bytes")), info.Size())
	assert.False(t, info.IsDir())
	assert.Equal(t, fs.FileMode(0o444), info.Mode())
	e, ok := info.Sys().(Entry)
	require.True(t, ok)
	assert.Equal(t, uint64(len("object bytes")), e.UncompressedSize())

	rf, ok := f.(File)
	require.True(t, ok)
	buf := make([]byte, 5)
	n, err := rf.ReadAt(buf, 7)
	require.NoError(t, err)
	assert.Equal(t, "bytes", string(buf[:n]))
}

func TestFSErrors(t *testing.T) {
	t.Parallel()

	img := newTestImage(t, classes().AddCompressed("/java.base/Packed.class", []byte("x"), 1))

	tests := []struct {
		name string
		want error
	}{
		{"/java.base/java/lang/Object.class", fs.ErrInvalid},
		{"java.base/../java.base/java/lang/Object.class", fs.ErrInvalid},
		{"java.base/java/lang/Missing.class", fs.ErrNotExist},
		{"java.base/java/lang", fs.ErrNotExist},
		{".", fs.ErrNotExist},
		{"java.base", fs.ErrNotExist},
		{"java.base/Packed.class", ErrCompressed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := img.Open(tt.name)
			var pathErr *fs.PathError
			require.ErrorAs(t, err, &pathErr)
			assert.Equal(t, "open", pathErr.Op)
			require.ErrorIs(t, err, tt.want)

			_, err = img.ReadFile(tt.name)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFSReadFileCopies(t *testing.T) {
	t.Parallel()

	img := newTestImage(t, classes())

	content, err := img.ReadFile("java.base/java/lang/String.class")
	require.NoError(t, err)
	assert.Equal(t, []byte("string bytes"), content)

	content[0] = 'X'
	again, err := fs.ReadFile(img, "java.base/java/lang/String.class")
	require.NoError(t, err)
	assert.Equal(t, []byte("string bytes"), again)
}

func TestFSStat(t *testing.T) {
	t.Parallel()

	img := newTestImage(t, classes().AddCompressed("/java.base/Packed.class", []byte("xy"), 1))

	info, err := fs.Stat(img, "java.logging/java/util/logging/Logger.class")
	require.NoError(t, err)
	assert.Equal(t, "Logger.class", info.Name())
	assert.Equal(t, int64(len("logger")), info.Size())

	info, err = img.Stat("java.base/Packed.class")
	require.NoError(t, err)
	assert.Equal(t, int64(2), info.Size())

	_, err = img.Stat("java.base/nope")
	require.ErrorIs(t, err, fs.ErrNotExist)

	_, err = img.Stat("/bad")
	require.ErrorIs(t, err, fs.ErrInvalid)
}
