package header

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lagertha-vm/lagertha-image/internal/imagetype"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	want := Header{
		Magic:         Magic,
		Major:         1,
		Minor:         0,
		Flags:         0x10,
		ResourceCount: 42,
		TableLength:   42,
		LocationsSize: 1000,
		StringsSize:   2000,
	}
	buf := want.Encode()
	require.Len(t, buf, Size)

	got, err := Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, uint32(0x00010000), got.Version())
}

func TestDecodeLayoutOnDisk(t *testing.T) {
	t.Parallel()

	buf := make([]byte, Size)
	binary.LittleEndian.PutUint32(buf[0:], 0xCAFEDADA)
	binary.LittleEndian.PutUint32(buf[4:], 0x00020003)
	binary.LittleEndian.PutUint32(buf[16:], 7)

	got, err := Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, uint16(2), got.Major)
	assert.Equal(t, uint16(3), got.Minor)
	assert.Equal(t, uint32(7), got.TableLength)
}

func TestDecodeBadMagic(t *testing.T) {
	t.Parallel()

	buf := Header{Magic: 0xDEADBEEF}.Encode()
	_, err := Decode(buf)
	require.ErrorIs(t, err, imagetype.ErrBadMagic)
	assert.Contains(t, err.Error(), "0xDEADBEEF")
}

func TestDecodeTruncated(t *testing.T) {
	t.Parallel()

	buf := Header{Magic: Magic}.Encode()
	for _, n := range []int{0, 4, Size - 1} {
		_, err := Decode(buf[:n])
		require.ErrorIs(t, err, imagetype.ErrTruncated, "len=%d", n)
	}
}

func TestDecodeIgnoresTrailingBytes(t *testing.T) {
	t.Parallel()

	buf := append(Header{Magic: Magic, TableLength: 3}.Encode(), 0xFF, 0xFF)
	got, err := Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), got.TableLength)
}
