// Package hashtrie implements a persistent, versioned hash trie map.
//
// A Map behaves like an ordinary hash map while it is mutable: Put and
// Remove are amortized O(1). Branch freezes the map and hands back a new
// mutable version sharing the whole tree, in O(1) amortized; mutations
// on a freshly branched version copy only the nodes on the written path,
// which bounds them at O(n^(1/7)) worst case. The intended sharing
// discipline is mutate privately, freeze, publish the pointer, read
// concurrently without synchronization.
package hashtrie

import (
	"fmt"

	"github.com/EinfachAndy/hashtrie/internal/invariants"
)

// Map is a mapping from keys to values with cheap snapshots. The zero
// value is not usable, construct with New or NewWithHasher.
type Map[K comparable, V any] struct {
	root   node[K, V]
	n      uint64
	cfg    *configuration
	hasher HashFn[K]
}

// New creates a ready to use mutable empty map with default hashing.
func New[K comparable, V any]() *Map[K, V] {
	return NewWithHasher[K, V](GetHasher[K]())
}

// NewWithHasher same as `New` but with a given hash function.
func NewWithHasher[K comparable, V any](hasher HashFn[K]) *Map[K, V] {
	return &Map[K, V]{
		root:   newLeaf[K, V](1),
		cfg:    configFor(0),
		hasher: hasher,
	}
}

// Size returns the number of items in the map.
func (m *Map[K, V]) Size() int {
	return int(m.n)
}

func (m *Map[K, V]) String() string {
	return fmt.Sprintf("hashtrie.Map{n: %d, depth: %d}", m.n, m.cfg.depth())
}

// Get returns the value stored for this key, or false if not found.
// Get never mutates and is safe on mutable and frozen maps alike.
func (m *Map[K, V]) Get(key K) (V, bool) {
	h := m.hasher(key)
	nd := m.root
	for lvl := 0; lvl < m.cfg.depth(); lvl++ {
		in := nd.(*inode[K, V])
		// the array may still lag the configured fanout; both aliased
		// halves agree on the entry until a write applies the grow
		nd = in.children[int(h>>m.cfg.shift(lvl))&(len(in.children)-1)]
	}
	lf := nd.(*leaf[K, V])
	return lf.get(h, key)
}

// GetOr returns the value stored for this key, or def if not found.
func (m *Map[K, V]) GetOr(key K, def V) V {
	if v, ok := m.Get(key); ok {
		return v
	}
	return def
}

// At is the indexed access form of Get. It fails with ErrMissingKey
// when the key is absent.
func (m *Map[K, V]) At(key K) (V, error) {
	v, ok := m.Get(key)
	if !ok {
		return v, fmt.Errorf("%v: %w", key, ErrMissingKey)
	}
	return v, nil
}

// Has returns true if the key is in the map.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Put maps the given key to the given value. If the key already exists
// its value will be overwritten with the new value.
// Returns true, if the element is a new item in the map, and
// ErrImmutableMutation if the map is frozen.
func (m *Map[K, V]) Put(key K, val V) (bool, error) {
	if !m.root.isMutable() {
		return false, ErrImmutableMutation
	}
	h := m.hasher(key)
	root, delta := m.putAt(m.root, 0, h, key, val, 0, 0)
	m.root = root
	if delta == 0 {
		return false, nil
	}
	m.n++
	if m.n == m.cfg.next {
		m.reshape()
	}
	if invariants.Enabled {
		m.check()
	}
	return true, nil
}

// putAt descends to the leaf owning h, cloning shared nodes on the way
// down. nd is always owned by the caller. The returned node replaces nd
// in the parent slot.
func (m *Map[K, V]) putAt(nd node[K, V], lvl int, h uint64, key K, val V, pmask, phash uint64) (node[K, V], int) {
	if lf, ok := nd.(*leaf[K, V]); ok {
		return lf.put(m.hasher, h, key, val)
	}
	in := nd.(*inode[K, V])
	if fan := int(m.cfg.fanouts[lvl]); len(in.children) < fan {
		in.growTo(fan)
	}
	shift := m.cfg.shift(lvl)
	mask := uint64(len(in.children) - 1)
	slot := int(h>>shift) & int(mask)
	pmask |= mask << shift
	phash |= uint64(slot) << shift

	child := in.children[slot]
	if !child.isMutable() {
		child = m.cloneNode(child, pmask, phash)
	}
	nc, delta := m.putAt(child, lvl+1, h, key, val, pmask, phash)
	in.children[slot] = nc
	return in, delta
}

// cloneNode produces a mutable replacement for a shared node. Leaves
// are rebuilt under the path filter, inodes are copied shallowly.
func (m *Map[K, V]) cloneNode(nd node[K, V], pmask, phash uint64) node[K, V] {
	if lf, ok := nd.(*leaf[K, V]); ok {
		return lf.cloneFor(m.hasher, pmask, phash)
	}
	return nd.(*inode[K, V]).clone()
}

// reshape adopts the configuration for the population that just reached
// the previous threshold.
func (m *Map[K, V]) reshape() {
	next := configFor(m.n)
	switch {
	case next.depth() > m.cfg.depth():
		// deepen: the old root becomes every child of a fresh root and
		// the aliased slots specialize on later writes
		m.root.freeze()
		m.root = newINode[K, V](int(next.fanouts[0]), m.root)
	case next.depth() > 0 && next.fanouts[0] > m.cfg.fanouts[0]:
		// same depth, wider root; deeper levels grow lazily on the next
		// write that descends through them
		m.root.(*inode[K, V]).growTo(int(next.fanouts[0]))
	}
	m.cfg = next
}

// Remove removes the specified key-value pair from the map.
// Returns true, if the element was in the map, and
// ErrImmutableMutation if the map is frozen.
func (m *Map[K, V]) Remove(key K) (bool, error) {
	if !m.root.isMutable() {
		return false, ErrImmutableMutation
	}
	h := m.hasher(key)
	root, delta := m.delAt(m.root, 0, h, key, 0, 0)
	m.root = root
	if delta == 0 {
		return false, nil
	}
	m.n--
	// the shape is never shrunk on delete, it stays until the
	// population crosses the next upper threshold again
	if invariants.Enabled {
		m.check()
	}
	return true, nil
}

func (m *Map[K, V]) delAt(nd node[K, V], lvl int, h uint64, key K, pmask, phash uint64) (node[K, V], int) {
	if lf, ok := nd.(*leaf[K, V]); ok {
		// no explicit CoW here, del rebuilds a fresh leaf on a hit
		return lf.del(m.hasher, h, key, pmask, phash)
	}
	in := nd.(*inode[K, V])
	if fan := int(m.cfg.fanouts[lvl]); len(in.children) < fan {
		in.growTo(fan)
	}
	shift := m.cfg.shift(lvl)
	mask := uint64(len(in.children) - 1)
	slot := int(h>>shift) & int(mask)
	pmask |= mask << shift
	phash |= uint64(slot) << shift

	child := in.children[slot]
	if cin, ok := child.(*inode[K, V]); ok && !cin.mut {
		child = cin.clone()
	}
	nc, delta := m.delAt(child, lvl+1, h, key, pmask, phash)
	in.children[slot] = nc
	return in, delta
}

// Clear removes all key-value pairs from the map. The map keeps its
// hasher but drops the whole tree, like a freshly created map.
func (m *Map[K, V]) Clear() error {
	if !m.root.isMutable() {
		return ErrImmutableMutation
	}
	m.root = newLeaf[K, V](1)
	m.n = 0
	m.cfg = configFor(0)
	return nil
}
