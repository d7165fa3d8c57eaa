package eval

import (
	"math"

	"github.com/corvid-engine/corvid/pkg/board"
)

// kingRing and kingOuterRing are the squares one and two rings out from each king square,
// precomputed once from the king attack table shifted outward a further ring.
var kingRing, kingOuterRing [board.NumSquares]board.Bitboard

func init() {
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		inner := board.KingAttackboard(sq)
		kingRing[sq] = inner

		var outer board.Bitboard
		for bb := inner; bb != 0; {
			var ringSq board.Square
			ringSq, bb = bb.PopLSB()
			outer |= board.KingAttackboard(ringSq)
		}
		kingOuterRing[sq] = outer &^ inner &^ board.BitMask(sq)
	}
}

// kingSafetyWeight is the per-attacking-piece-kind weight used to accumulate king-danger
// units, indexed by the four buckets: {check & undefended, non-check & undefended,
// check & defended, non-check & defended}. A target square counts as defended when any
// piece of the king's side attacks it; the defender's value is not compared with the
// attacker's.
var kingSafetyWeight = [board.NumPieceKinds][4]int{
	board.Knight: {8, 4, 4, 2},
	board.Bishop: {8, 4, 4, 2},
	board.Rook:   {12, 6, 6, 3},
	board.Queen:  {20, 10, 10, 5},
}

// sigmoidTable converts accumulated king-danger units (units/10, clamped to [0,127]) to a
// centipawn penalty; it rises slowly at first and steeply once danger compounds.
var sigmoidTable [128]Score

func init() {
	for i := range sigmoidTable {
		x := float64(i) - 64
		// logistic curve scaled to top out a little above 500cp.
		sigmoidTable[i] = Score(520 / (1 + math.Exp(-x/16)))
	}
}

// kingSafety accumulates king-danger units for both kings and converts each through the
// sigmoid table, from White's perspective.
func kingSafety(b *board.Board) Score {
	return kingDanger(b, board.White) - kingDanger(b, board.Black)
}

func kingDanger(b *board.Board, c board.Color) Score {
	them := c.Opponent()
	kingSq := b.King(c)
	ring := kingRing[kingSq] | kingOuterRing[kingSq]

	units := 0
	for p := board.Knight; p <= board.Queen; p++ {
		for bb := b.PieceBB(them, p); bb != 0; {
			var sq board.Square
			sq, bb = bb.PopLSB()
			pieceAttacks := board.Attackboard(p, sq, b.Occupied())
			ringAttacks := pieceAttacks & ring
			if ringAttacks == 0 {
				continue
			}
			check := pieceAttacks.IsSet(kingSq)
			for tbb := ringAttacks; tbb != 0; {
				var target board.Square
				target, tbb = tbb.PopLSB()
				defended := b.IsAttacked(c, target)
				units += kingSafetyWeight[p][bucketIndex(check, defended)]
			}
		}
	}

	idx := units / 10
	if idx > 127 {
		idx = 127
	}
	if idx < 0 {
		idx = 0
	}
	return -sigmoidTable[idx]
}

func bucketIndex(check, defended bool) int {
	switch {
	case check && !defended:
		return 0
	case !check && !defended:
		return 1
	case check && defended:
		return 2
	default:
		return 3
	}
}
