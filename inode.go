package hashtrie

// node is the union of the two tree node kinds, *inode and *leaf.
// Mutability is monotone: a node goes from mutable to immutable, never
// back. Cloning is the only way to obtain a mutable replacement.
type node[K comparable, V any] interface {
	isMutable() bool
	freeze()
}

// inode routes a slice of hash bits to a homogeneous child array, all
// inodes one level down or all leaves. The array length is a power of
// two and may lag the configured fanout until the next write descends
// through it.
type inode[K comparable, V any] struct {
	children []node[K, V]
	mut      bool
}

// newINode builds a mutable inode of the given fanout with every child
// slot aliased to the same node.
func newINode[K comparable, V any](fanout int, child node[K, V]) *inode[K, V] {
	in := &inode[K, V]{children: make([]node[K, V], fanout), mut: true}
	for i := range in.children {
		in.children[i] = child
	}
	return in
}

func (in *inode[K, V]) isMutable() bool { return in.mut }

// freeze marks the subtree immutable. An already frozen child bounds
// the recursion: its subtree cannot hold mutable nodes.
func (in *inode[K, V]) freeze() {
	if !in.mut {
		return
	}
	in.mut = false
	for _, c := range in.children {
		c.freeze()
	}
}

// clone returns a private copy of the routing array. The children stay
// shared and are cloned themselves when a write descends into them.
func (in *inode[K, V]) clone() *inode[K, V] {
	nc := make([]node[K, V], len(in.children))
	copy(nc, in.children)
	return &inode[K, V]{children: nc, mut: true}
}

// growTo doubles the child array by aliasing until it reaches fanout.
// Every child becomes reachable by two paths, so all children are
// frozen first; a later write through either half specializes its own
// copy under the extended path.
func (in *inode[K, V]) growTo(fanout int) {
	for len(in.children) < fanout {
		for _, c := range in.children {
			c.freeze()
		}
		in.children = append(in.children, in.children...)
	}
}
