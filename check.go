package hashtrie

import (
	"fmt"

	"github.com/EinfachAndy/hashtrie/internal/invariants"
)

func panicf(format string, args ...any) {
	panic(fmt.Errorf("%w: "+format, append([]any{ErrInvariantViolation}, args...)...))
}

// check validates the structural invariants of the whole map. Callers
// guard with invariants.Enabled so the call compiles away in default
// builds; Level refines what runs in an invariants build.
func (m *Map[K, V]) check() {
	if !invariants.Enabled || invariants.Level < 1 {
		return
	}
	if m.cfg.depth() > maxDepth {
		panicf("depth %d exceeds %d", m.cfg.depth(), maxDepth)
	}
	if m.n >= m.cfg.next {
		panicf("population %d outgrew configuration threshold %d", m.n, m.cfg.next)
	}
	if invariants.Level < 2 {
		return
	}
	cnt := m.checkNode(m.root, 0, 0, 0)
	if cnt != int(m.n) {
		panicf("population %d, recount %d", m.n, cnt)
	}
}

// checkNode validates one subtree and returns its path-filtered entry
// count. Aliased children are visited once per path, which is exactly
// how the population must add up.
func (m *Map[K, V]) checkNode(nd node[K, V], lvl int, pmask, phash uint64) int {
	if lf, ok := nd.(*leaf[K, V]); ok {
		if lvl != m.cfg.depth() {
			panicf("leaf at level %d of a depth %d tree", lvl, m.cfg.depth())
		}
		return m.checkLeaf(lf, pmask, phash)
	}
	in := nd.(*inode[K, V])
	if c := len(in.children); c == 0 || c&(c-1) != 0 {
		panicf("child array length %d is not a power of two", c)
	}
	if c := len(in.children); c > int(m.cfg.fanouts[lvl]) {
		panicf("child array length %d exceeds fanout %d at level %d", c, m.cfg.fanouts[lvl], lvl)
	}
	shift := m.cfg.shift(lvl)
	mask := uint64(len(in.children) - 1)
	cnt := 0
	for idx, c := range in.children {
		if !in.mut && c.isMutable() {
			panicf("mutable child under a frozen node at level %d", lvl)
		}
		cnt += m.checkNode(c, lvl+1, pmask|mask<<shift, phash|uint64(idx)<<shift)
	}
	return cnt
}

// checkLeaf recounts the path-owned entries of lf and verifies that
// every one of them is still reachable by probing.
func (m *Map[K, V]) checkLeaf(lf *leaf[K, V], pmask, phash uint64) int {
	cnt := 0
	for s := range lf.entries {
		if !lf.occupied(s) {
			continue
		}
		h := m.hasher(lf.entries[s].key)
		if h&pmask != phash {
			continue
		}
		found := false
		for i, n := 0, lf.probeBudget(); i < n; i++ {
			p := lf.slot(h, i)
			if p == s {
				found = true
				break
			}
			if !lf.occupied(p) {
				break
			}
		}
		if !found {
			panicf("slot %d holds an entry unreachable by probing", s)
		}
		cnt++
	}
	return cnt
}
