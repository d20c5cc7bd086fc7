package hashtrie

const (
	// maxDepth is the number of interior levels of a fully grown tree.
	maxDepth = 6
	// leafBits is the number of low hash bits owned by the leaf tables.
	leafBits = 16
	// maxFanout bounds the child array length of a single interior level.
	maxFanout = 256
)

// configuration describes a tree shape: one branching factor per
// interior level, root first, and the population at which the shape
// must change. Both fields are immutable once the value is built, a
// map only ever swaps the whole configuration pointer.
type configuration struct {
	fanouts []uint32
	// next is the smallest population for which this configuration is
	// no longer valid.
	next uint64
}

func (c *configuration) depth() int { return len(c.fanouts) }

// shift returns the bit position of the hash slice consumed at interior
// level lvl, with level 0 the root. Levels sit at fixed byte boundaries,
// the deepest level always at bit 16, so growing the tree never
// renumbers the paths of existing entries.
func (c *configuration) shift(lvl int) uint {
	return leafBits + 8*uint(len(c.fanouts)-1-lvl)
}

// smallConfigs are the canonical configurations for populations below
// 1024. They are allocated once per process so that small maps never
// allocate for shape bookkeeping.
var smallConfigs = [...]*configuration{
	{fanouts: nil, next: 16},
	{fanouts: []uint32{4}, next: 64},
	{fanouts: []uint32{4, 4}, next: 256},
	{fanouts: []uint32{4, 4, 4}, next: 1024},
}

// configFor maps a population to its tree shape. It is a pure total
// function: for every n' in [n, next) the result is identical, and the
// result at next differs.
func configFor(n uint64) *configuration {
	switch {
	case n < 16:
		return smallConfigs[0]
	case n < 64:
		return smallConfigs[1]
	case n < 256:
		return smallConfigs[2]
	case n < 1024:
		return smallConfigs[3]
	case n < 1<<16:
		// all levels branch by 4, one more level per factor-of-4 growth
		b := Log2(n) + 1
		k := (b - 4 + 1) / 2
		fan := make([]uint32, k)
		for i := range fan {
			fan[i] = 4
		}
		return &configuration{fanouts: fan, next: 1 << (4 + 2*k)}
	default:
		// depth is pinned at maxDepth; spread the hash bits above the
		// leaf selector evenly and hand the remainder to the deepest
		// levels, which double first
		b := Log2(n) + 1
		l := Max(uint64(4), b/7)
		s := b - l
		m := s / 6
		fan := make([]uint32, maxDepth)
		base := uint32(1) << m
		if base > maxFanout {
			base = maxFanout
		}
		for i := range fan {
			fan[i] = base
		}
		extra := s - 6*m
		for i := maxDepth - 1; i >= 0 && extra > 0; i-- {
			if fan[i] < maxFanout {
				fan[i] *= 2
				extra--
			}
		}
		return &configuration{fanouts: fan, next: NextPowerOf2(n + 1)}
	}
}
