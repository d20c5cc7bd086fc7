package hashtrie

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigSmall(t *testing.T) {
	c := configFor(0)
	assert.Equal(t, 0, c.depth())
	assert.Equal(t, uint64(16), c.next)

	for _, n := range []uint64{1, 7, 15} {
		assert.Same(t, c, configFor(n))
	}

	c = configFor(16)
	require.Equal(t, []uint32{4}, c.fanouts)
	assert.Equal(t, uint64(64), c.next)
	assert.Same(t, c, configFor(63))

	c = configFor(64)
	require.Equal(t, []uint32{4, 4}, c.fanouts)
	assert.Equal(t, uint64(256), c.next)

	c = configFor(256)
	require.Equal(t, []uint32{4, 4, 4}, c.fanouts)
	assert.Equal(t, uint64(1024), c.next)
	assert.Same(t, c, configFor(1023))
}

func TestConfigMid(t *testing.T) {
	c := configFor(1024)
	require.Equal(t, []uint32{4, 4, 4, 4}, c.fanouts)
	assert.Equal(t, uint64(4096), c.next)

	c = configFor(4096)
	require.Equal(t, []uint32{4, 4, 4, 4, 4}, c.fanouts)
	assert.Equal(t, uint64(1<<14), c.next)

	c = configFor(1 << 14)
	require.Equal(t, []uint32{4, 4, 4, 4, 4, 4}, c.fanouts)
	assert.Equal(t, uint64(1<<16), c.next)
}

func TestConfigLarge(t *testing.T) {
	c := configFor(1 << 16)
	require.Equal(t, []uint32{4, 4, 4, 4, 4, 8}, c.fanouts)
	assert.Equal(t, uint64(1<<17), c.next)

	c = configFor(1 << 17)
	require.Equal(t, []uint32{4, 4, 4, 4, 8, 8}, c.fanouts)
	assert.Equal(t, uint64(1<<18), c.next)

	c = configFor(1 << 20)
	require.Equal(t, []uint32{4, 8, 8, 8, 8, 8}, c.fanouts)
	assert.Equal(t, uint64(1<<21), c.next)

	// depth stays pinned and every fanout is a bounded power of two
	for e := 16; e < 48; e++ {
		c := configFor(1 << e)
		require.Equal(t, maxDepth, c.depth(), "n=1<<%d", e)
		for _, f := range c.fanouts {
			require.NotZero(t, f)
			require.Zero(t, f&(f-1))
			require.LessOrEqual(t, f, uint32(maxFanout))
		}
	}
}

// TestConfigSchedule checks the core schedule contract: the
// configuration is constant on [n, next) and changes exactly at next,
// and the thresholds are strictly monotone.
func TestConfigSchedule(t *testing.T) {
	rand.Seed(42)
	samples := make([]uint64, 0, 4096)
	for n := uint64(1); n < 1<<17; n += 97 {
		samples = append(samples, n)
	}
	for e := 17; e < 48; e++ {
		samples = append(samples, 1<<e, 1<<e+rand.Uint64()%(1<<e))
	}

	for _, n := range samples {
		c := configFor(n)
		require.Greater(t, c.next, n, "n=%d", n)
		require.True(t, reflect.DeepEqual(c, configFor(c.next-1)), "n=%d", n)

		cn := configFor(c.next)
		require.False(t, reflect.DeepEqual(c, cn), "n=%d", n)
		require.Greater(t, cn.next, c.next, "n=%d", n)
	}
}

func TestConfigShifts(t *testing.T) {
	// levels sit at fixed byte boundaries, deepest first
	c := configFor(300) // depth 3
	require.Equal(t, 3, c.depth())
	assert.Equal(t, uint(32), c.shift(0))
	assert.Equal(t, uint(24), c.shift(1))
	assert.Equal(t, uint(16), c.shift(2))
}
