package hashtrie

// Freeze marks the map and every transitively owned node immutable.
// A frozen map rejects mutation, can be read concurrently by any number
// of goroutines without synchronization, and is published safely with
// an atomic pointer store. Cost is linear in the number of still
// mutable nodes.
func (m *Map[K, V]) Freeze() {
	m.root.freeze()
}

// IsMutable reports whether the map still accepts Put and Remove.
func (m *Map[K, V]) IsMutable() bool {
	return m.root.isMutable()
}

// Branch freezes m and returns a new mutable map sharing all children
// with it. Only the root node is copied, so branching costs the width
// of the root. The original stays frozen and safe to share.
func (m *Map[K, V]) Branch() *Map[K, V] {
	m.root.freeze()
	var root node[K, V]
	if lf, ok := m.root.(*leaf[K, V]); ok {
		root = lf.cloneFor(m.hasher, 0, 0)
	} else {
		root = m.root.(*inode[K, V]).clone()
	}
	return &Map[K, V]{root: root, n: m.n, cfg: m.cfg, hasher: m.hasher}
}

// DoubleBranch returns two independent mutable branches of m.
func (m *Map[K, V]) DoubleBranch() (*Map[K, V], *Map[K, V]) {
	return m.Branch(), m.Branch()
}

// Mutable returns m itself if it is mutable, otherwise a fresh branch.
func (m *Map[K, V]) Mutable() *Map[K, V] {
	if m.IsMutable() {
		return m
	}
	return m.Branch()
}

// Copy always fails with ErrMisuseCopy: two mutable maps over one tree
// would let their entry counters diverge silently. Use Branch.
func (m *Map[K, V]) Copy() (*Map[K, V], error) {
	return nil, ErrMisuseCopy
}
