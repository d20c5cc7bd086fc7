package hashtrie

// iterFrame records the routing position inside one interior node plus
// the path accumulated above it.
type iterFrame[K comparable, V any] struct {
	in           *inode[K, V]
	idx          int
	pmask, phash uint64
}

// Iterator walks every entry of a map exactly once, in an unspecified
// order that is stable for a frozen snapshot. It is finite and not
// restartable. Mutating the map while iterating it is undefined, branch
// first. For a map whose root is a leaf the iterator does not allocate
// after setup.
type Iterator[K comparable, V any] struct {
	m            *Map[K, V]
	stack        []iterFrame[K, V]
	lf           *leaf[K, V]
	slot         int
	pmask, phash uint64
}

// Iter returns an iterator over all entries of m.
func (m *Map[K, V]) Iter() *Iterator[K, V] {
	it := &Iterator[K, V]{m: m}
	it.descend(m.root, 0, 0)
	return it
}

// descend walks the leftmost spine under nd, pushing one frame per
// interior node, and parks on the leaf at the bottom.
func (it *Iterator[K, V]) descend(nd node[K, V], pmask, phash uint64) {
	for {
		in, ok := nd.(*inode[K, V])
		if !ok {
			it.lf = nd.(*leaf[K, V])
			it.slot = -1
			it.pmask, it.phash = pmask, phash
			return
		}
		it.stack = append(it.stack, iterFrame[K, V]{in: in, pmask: pmask, phash: phash})
		shift := it.m.cfg.shift(len(it.stack) - 1)
		pmask |= uint64(len(in.children)-1) << shift
		nd = in.children[0]
	}
}

// Next returns the next key-value pair, or false when the iteration is
// exhausted.
func (it *Iterator[K, V]) Next() (K, V, bool) {
	for {
		if it.lf != nil {
			for s := it.slot + 1; s < len(it.lf.entries); s++ {
				if !it.lf.occupied(s) {
					continue
				}
				e := it.lf.entries[s]
				// entries reachable only through sibling aliases are
				// skipped here and yielded on their own path
				if it.m.hasher(e.key)&it.pmask != it.phash {
					continue
				}
				it.slot = s
				return e.key, e.val, true
			}
			it.lf = nil
		}
		for len(it.stack) > 0 {
			top := &it.stack[len(it.stack)-1]
			top.idx++
			if top.idx < len(top.in.children) {
				shift := it.m.cfg.shift(len(it.stack) - 1)
				pmask := top.pmask | uint64(len(top.in.children)-1)<<shift
				phash := top.phash | uint64(top.idx)<<shift
				it.descend(top.in.children[top.idx], pmask, phash)
				break
			}
			it.stack = it.stack[:len(it.stack)-1]
		}
		if it.lf == nil {
			var k K
			var v V
			return k, v, false
		}
	}
}

// Each calls 'fn' on every key-value pair in the map in no particular
// order. If 'fn' returns true, the iteration stops.
func (m *Map[K, V]) Each(fn func(key K, val V) bool) {
	it := m.Iter()
	for k, v, ok := it.Next(); ok; k, v, ok = it.Next() {
		if fn(k, v) {
			return
		}
	}
}
