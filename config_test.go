package bumparena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCapacity(t *testing.T) {
	tests := []struct {
		in   string
		want uintptr
	}{
		{"65536", 65536},
		{"64KB", 64 << 10},
		{"512MB", 512 << 20},
		{"1GB", 1 << 30},
		{" 4kb ", 4 << 10},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCapacity(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, in := range []string{"", "0", "lots", "-1MB"} {
		_, err := ParseCapacity(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestCapacityFromEnv(t *testing.T) {
	t.Run("unset", func(t *testing.T) {
		t.Setenv(CapacityEnv, "")
		got, err := capacityFromEnv()
		require.NoError(t, err)
		assert.Equal(t, uintptr(DefaultCapacity), got)
	})

	t.Run("set", func(t *testing.T) {
		t.Setenv(CapacityEnv, "256MB")
		got, err := capacityFromEnv()
		require.NoError(t, err)
		assert.Equal(t, uintptr(256<<20), got)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Setenv(CapacityEnv, "plenty")
		got, err := capacityFromEnv()
		assert.Error(t, err)
		assert.Equal(t, uintptr(DefaultCapacity), got)
	})
}

func TestDefault(t *testing.T) {
	a := Default()
	assert.Same(t, a, Default())
	assert.Equal(t, "default", a.opts.name)
}

func TestPackageAllocate(t *testing.T) {
	p := Allocate(16, 8)
	require.NotNil(t, p)
	assert.Zero(t, uintptr(p)%8)

	Deallocate(p, 16, 8)
	assert.True(t, Default().Reserved())
}
