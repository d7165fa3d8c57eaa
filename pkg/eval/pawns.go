package eval

import (
	"github.com/corvid-engine/corvid/pkg/board"
	"github.com/corvid-engine/corvid/pkg/hashtable"
)

// pawnStructure scores doubled, isolated and passed pawns, from White's perspective.
// Expensive enough (file-by-file scans for both colors) that callers should cache the
// result by Board.PawnKey; see pawnStructureCached.
func pawnStructure(b *board.Board) (mg, eg Score) {
	white := b.PieceBB(board.White, board.Pawn)
	black := b.PieceBB(board.Black, board.Pawn)

	var whiteFiles, blackFiles [8]int
	for bb := white; bb != 0; {
		var sq board.Square
		sq, bb = bb.PopLSB()
		whiteFiles[sq.File()]++
	}
	for bb := black; bb != 0; {
		var sq board.Square
		sq, bb = bb.PopLSB()
		blackFiles[sq.File()]++
	}

	score := func(count int) bool { return count > 0 }

	for bb := white; bb != 0; {
		var sq board.Square
		sq, bb = bb.PopLSB()
		f, r := sq.File(), sq.Rank()

		if whiteFiles[f] > 1 {
			mg -= 10
			eg -= 20
		}
		isolated := true
		if f > 0 && score(whiteFiles[f-1]) {
			isolated = false
		}
		if f < 7 && score(whiteFiles[f+1]) {
			isolated = false
		}
		if isolated {
			mg -= 12
			eg -= 18
		}
		if isUnopposed(f, blackFiles) {
			bonus := Score(r) * Score(r) // quadratic in distance advanced
			mg += bonus * 2
			eg += bonus * 5
		}
	}
	for bb := black; bb != 0; {
		var sq board.Square
		sq, bb = bb.PopLSB()
		f, r := sq.File(), sq.Rank()

		if blackFiles[f] > 1 {
			mg += 10
			eg += 20
		}
		isolated := true
		if f > 0 && score(blackFiles[f-1]) {
			isolated = false
		}
		if f < 7 && score(blackFiles[f+1]) {
			isolated = false
		}
		if isolated {
			mg += 12
			eg += 18
		}
		if isUnopposed(f, whiteFiles) {
			dist := Score(7 - r)
			bonus := dist * dist
			mg -= bonus * 2
			eg -= bonus * 5
		}
	}
	return mg, eg
}

// isUnopposed reports whether no enemy pawn remains on file f or its neighbors -- a
// simplified passed-pawn test that skips the rank comparison a full check would need,
// since the dominant term is whether the enemy has any pawn left to block or capture it.
func isUnopposed(f int, enemyFiles [8]int) bool {
	if enemyFiles[f] > 0 {
		return false
	}
	if f > 0 && enemyFiles[f-1] > 0 {
		return false
	}
	if f < 7 && enemyFiles[f+1] > 0 {
		return false
	}
	return true
}

// pawnStructureCached is pawnStructure backed by a PawnCache keyed on Board.PawnKey.
func pawnStructureCached(b *board.Board, cache *hashtable.PawnCache) (mg, eg Score) {
	if cache == nil {
		return pawnStructure(b)
	}
	key := b.PawnKey()
	if e, ok := cache.Probe(key); ok {
		return Score(e.MG), Score(e.EG)
	}
	mg, eg = pawnStructure(b)
	cache.Store(key, hashtable.PawnEntry{MG: int32(mg), EG: int32(eg)})
	return mg, eg
}
