package hashtable

import (
	"github.com/corvid-engine/corvid/pkg/board"
)

// PawnEntry caches the pawn-structure-only term of the classical evaluation, keyed by
// Board.PawnKey. MG/EG are the midgame/endgame scores, before tapering, from White's
// perspective.
type PawnEntry struct {
	MG, EG int32
}

// PawnCache is a direct-mapped (no collision detection beyond the key check) cache for
// the pawn-structure evaluation term, which is expensive to recompute (passed/isolated/
// doubled pawn scans) but depends on pawns alone, so it is reused across millions of
// positions that only differ in piece placement.
type PawnCache struct {
	keys    []board.ZobristKey
	entries []PawnEntry
	valid   []bool
	mask    uint64
}

func NewPawnCache(numEntries uint64) *PawnCache {
	n := nextPowerOfTwo(numEntries)
	return &PawnCache{
		keys:    make([]board.ZobristKey, n),
		entries: make([]PawnEntry, n),
		valid:   make([]bool, n),
		mask:    n - 1,
	}
}

func (c *PawnCache) Probe(key board.ZobristKey) (PawnEntry, bool) {
	idx := uint64(key) & c.mask
	if c.valid[idx] && c.keys[idx] == key {
		return c.entries[idx], true
	}
	return PawnEntry{}, false
}

func (c *PawnCache) Store(key board.ZobristKey, e PawnEntry) {
	idx := uint64(key) & c.mask
	c.keys[idx] = key
	c.entries[idx] = e
	c.valid[idx] = true
}

func nextPowerOfTwo(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	p := uint64(1)
	for p < n {
		p <<= 1
	}
	return p
}
