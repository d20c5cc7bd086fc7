package hashtrie

// Pair is one key-value entry, the element type of Diff.
type Pair[K comparable, V any] struct {
	Key K
	Val V
}

// HasPair reports whether m maps key to exactly val.
func HasPair[K comparable, V comparable](m *Map[K, V], key K, val V) bool {
	v, ok := m.Get(key)
	return ok && v == val
}

// Diff returns the entries of a that are not present as equal pairs in
// b. Subtrees that a shares with b are pruned by node identity without
// being visited, so diffing against a recent branch costs proportional
// to the number of changes, not to the map size.
func Diff[K comparable, V comparable](a, b *Map[K, V]) []Pair[K, V] {
	var out []Pair[K, V]
	diffNode(a, b, a.root, 0, 0, 0, &out)
	return out
}

func diffNode[K comparable, V comparable](a, b *Map[K, V], nd node[K, V], lvl int, pmask, phash uint64, out *[]Pair[K, V]) {
	if hasNode(b, nd, phash) {
		return
	}
	if lf, ok := nd.(*leaf[K, V]); ok {
		for s := range lf.entries {
			if !lf.occupied(s) {
				continue
			}
			e := lf.entries[s]
			if a.hasher(e.key)&pmask != phash {
				continue
			}
			if v, ok := b.Get(e.key); !ok || v != e.val {
				*out = append(*out, Pair[K, V]{Key: e.key, Val: e.val})
			}
		}
		return
	}
	in := nd.(*inode[K, V])
	shift := a.cfg.shift(lvl)
	mask := uint64(len(in.children) - 1)
	for idx, c := range in.children {
		diffNode(a, b, c, lvl+1, pmask|mask<<shift, phash|uint64(idx)<<shift, out)
	}
}

// hasNode walks b from its root along the path encoded by phash and
// reports whether it reaches the very node nd. Shared structure is
// recognized by identity, a miss just disables pruning.
func hasNode[K comparable, V any](b *Map[K, V], nd node[K, V], phash uint64) bool {
	cur := b.root
	for lvl := 0; ; lvl++ {
		if cur == nd {
			return true
		}
		in, ok := cur.(*inode[K, V])
		if !ok || lvl >= b.cfg.depth() {
			return false
		}
		cur = in.children[int(phash>>b.cfg.shift(lvl))&(len(in.children)-1)]
	}
}

// Equal reports whether a and b hold exactly the same entries. Identity
// implies equality; small maps are point-checked, large ones fall back
// to an empty structure-sharing diff.
func Equal[K comparable, V comparable](a, b *Map[K, V]) bool {
	if a == b {
		return true
	}
	if a.n != b.n {
		return false
	}
	if a.n < 20 {
		eq := true
		a.Each(func(k K, v V) bool {
			if !HasPair(b, k, v) {
				eq = false
			}
			return !eq
		})
		return eq
	}
	return len(Diff(a, b)) == 0
}
