//go:build unix && !android

package vmem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOS_ReserveReadWrite(t *testing.T) {
	r, err := OS().Reserve(1 << 20)
	require.NoError(t, err)
	defer r.Release()

	data := r.Bytes()
	assert.Len(t, data, 1<<20)
	assert.Equal(t, uintptr(0), uintptr(r.Base())%PageSize)

	// Fresh anonymous mappings are zero-filled.
	assert.Equal(t, byte(0), data[0])
	assert.Equal(t, byte(0), data[len(data)-1])

	data[0] = 1
	data[len(data)-1] = 2
	assert.Equal(t, byte(1), r.Bytes()[0])
	assert.Equal(t, byte(2), r.Bytes()[len(data)-1])
}

func TestOS_Advise(t *testing.T) {
	r, err := OS().Reserve(4 * PageSize)
	require.NoError(t, err)
	defer r.Release()

	for _, p := range []AccessPattern{AccessDefault, AccessSequential, AccessRandom, AccessWillNeed} {
		assert.NoError(t, r.Advise(p), p.String())
	}
}

func TestOS_InvalidSize(t *testing.T) {
	_, err := OS().Reserve(0)
	assert.ErrorIs(t, err, ErrInvalidSize)
}
