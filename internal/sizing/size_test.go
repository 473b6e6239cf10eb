package sizing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lagertha-vm/lagertha-image/internal/imagetype"
)

func TestToInt(t *testing.T) {
	t.Parallel()

	n, err := ToInt(12)
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	_, err = ToInt(math.MaxUint64)
	require.ErrorIs(t, err, imagetype.ErrSizeOverflow)
}

func TestAddUint64(t *testing.T) {
	t.Parallel()

	sum, ok := AddUint64(1, 2)
	assert.True(t, ok)
	assert.Equal(t, uint64(3), sum)

	_, ok = AddUint64(math.MaxUint64, 1)
	assert.False(t, ok)
}

func TestRange(t *testing.T) {
	t.Parallel()

	buf := []byte{0, 1, 2, 3, 4}

	tests := []struct {
		name    string
		off, n  uint64
		want    []byte
		wantErr error
	}{
		{"whole buffer", 0, 5, buf, nil},
		{"middle", 1, 3, []byte{1, 2, 3}, nil},
		{"empty at end", 5, 0, []byte{}, nil},
		{"past end", 3, 3, nil, imagetype.ErrOutOfBounds},
		{"start past end", 6, 0, nil, imagetype.ErrOutOfBounds},
		{"overflow", math.MaxUint64, 2, nil, imagetype.ErrSizeOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Range(buf, tt.off, tt.n)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
