package hashtrie_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EinfachAndy/hashtrie"
)

func TestBranchBasics(t *testing.T) {
	c1 := hashtrie.New[uint64, uint64]()
	for i := uint64(1); i <= 100; i++ {
		_, err := c1.Put(i, 317*i)
		require.NoError(t, err)
	}

	c2 := c1.Branch()
	assert.False(t, c1.IsMutable())
	assert.True(t, c2.IsMutable())
	assert.Equal(t, c1.Size(), c2.Size())

	// both versions agree entry for entry right after the branch
	for i := uint64(1); i <= 100; i++ {
		v1, ok1 := c1.Get(i)
		v2, ok2 := c2.Get(i)
		require.True(t, ok1 && ok2, "i=%d", i)
		require.Equal(t, v1, v2, "i=%d", i)
	}

	// mutating the branch leaves the frozen original untouched
	for i := uint64(1); i <= 50; i++ {
		_, err := c2.Put(i, 1000+i)
		require.NoError(t, err)
	}
	removed, err := c2.Remove(60)
	require.NoError(t, err)
	require.True(t, removed)

	for i := uint64(1); i <= 100; i++ {
		v, ok := c1.Get(i)
		require.True(t, ok, "i=%d", i)
		require.Equal(t, 317*i, v, "i=%d", i)
	}
	assert.Equal(t, 100, c1.Size())
	assert.Equal(t, 99, c2.Size())
}

// A frozen map rejects every mutation.
func TestImmutableRejectsMutation(t *testing.T) {
	c0 := hashtrie.New[int, int]()
	_, err := c0.Put(1, 1)
	require.NoError(t, err)

	c1 := c0.Branch()

	_, err = c0.Put(2, 2)
	assert.ErrorIs(t, err, hashtrie.ErrImmutableMutation)
	_, err = c0.Remove(1)
	assert.ErrorIs(t, err, hashtrie.ErrImmutableMutation)

	_, err = c1.Put(2, 2)
	assert.NoError(t, err)
}

func TestFreeze(t *testing.T) {
	m := hashtrie.New[int, int]()
	require.True(t, m.IsMutable())
	m.Freeze()
	require.False(t, m.IsMutable())

	// freezing is idempotent and monotone
	m.Freeze()
	require.False(t, m.IsMutable())
}

func TestDoubleBranch(t *testing.T) {
	m := hashtrie.New[int, int]()
	for i := 1; i <= 30; i++ {
		_, err := m.Put(i, i)
		require.NoError(t, err)
	}

	a, b := m.DoubleBranch()
	require.NotSame(t, a, b)
	assert.False(t, m.IsMutable())
	assert.True(t, a.IsMutable())
	assert.True(t, b.IsMutable())

	_, err := a.Put(100, 100)
	require.NoError(t, err)
	assert.False(t, b.Has(100))
	assert.False(t, m.Has(100))
}

func TestMutable(t *testing.T) {
	m := hashtrie.New[int, int]()
	assert.Same(t, m, m.Mutable())

	m.Freeze()
	mm := m.Mutable()
	require.NotSame(t, m, mm)
	assert.True(t, mm.IsMutable())
}

func TestCopyIsRefused(t *testing.T) {
	m := hashtrie.New[int, int]()
	_, err := m.Copy()
	assert.ErrorIs(t, err, hashtrie.ErrMisuseCopy)
}

// Branching a map whose root is still a leaf must copy the leaf, not
// share it mutably.
func TestBranchTinyMap(t *testing.T) {
	m := hashtrie.New[int, int]()
	_, err := m.Put(1, 1)
	require.NoError(t, err)

	b := m.Branch()
	_, err = b.Put(1, 2)
	require.NoError(t, err)

	v, _ := m.Get(1)
	assert.Equal(t, 1, v)
	v, _ = b.Get(1)
	assert.Equal(t, 2, v)
}
