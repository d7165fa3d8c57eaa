package eval

import "github.com/corvid-engine/corvid/pkg/board"

// centerTable scores a file or rank index (0..7) by closeness to the center, used to
// build piece-square bonuses algorithmically instead of as hand-tuned 64-entry tables.
var centerTable = [8]int{0, 1, 2, 3, 3, 2, 1, 0}

// phaseWeight is the game-phase contribution of one piece of the given kind, out of
// totalPhase for the full starting set of non-pawn, non-king material.
func phaseWeight(p board.PieceKind) int {
	switch p {
	case board.Knight, board.Bishop:
		return 1
	case board.Rook:
		return 2
	case board.Queen:
		return 4
	default:
		return 0
	}
}

// totalPhase is the phase sum for a full starting set of non-pawn, non-king material:
// 4 knights + 4 bishops + 4 rooks*2 + 2 queens*4 = 4+4+8+8 = 24.
const totalPhase = 24

// gamePhase returns the current phase in [0,24]: 24 at the start of the game (all
// non-pawn material on board), trending to 0 as pieces are traded off.
func gamePhase(b *board.Board) int {
	phase := 0
	for c := board.White; c < board.NumColors; c++ {
		for _, p := range [4]board.PieceKind{board.Knight, board.Bishop, board.Rook, board.Queen} {
			phase += phaseWeight(p) * b.PieceBB(c, p).PopCount()
		}
	}
	if phase > totalPhase {
		phase = totalPhase
	}
	return phase
}

// taper blends a midgame and endgame term by the game phase: full mg weight at phase 24,
// full eg weight at phase 0.
func taper(mg, eg Score, phase int) Score {
	return (mg*Score(phase) + eg*Score(totalPhase-phase)) / Score(totalPhase)
}

// mirror flips a square vertically, so piece-square tables written for White apply to
// Black by mirroring across the rank axis.
func mirror(sq board.Square) board.Square {
	return sq ^ 56
}

// pstBonus returns the placement bonus for piece p of color c on sq, as (midgame, endgame)
// centipawn pairs, built from file/rank centralization instead of literal 64-entry tables.
func pstBonus(c board.Color, p board.PieceKind, sq board.Square) (Score, Score) {
	if c == board.Black {
		sq = mirror(sq)
	}
	file, rank := sq.File(), sq.Rank()
	central := Score(centerTable[file] + centerTable[rank])

	switch p {
	case board.Pawn:
		advance := Score(rank) // 0 at rank1 (never happens), up to 6 at rank7
		return advance * 8, advance * 12
	case board.Knight:
		return central * 6, central * 4
	case board.Bishop:
		return central * 4, central * 3
	case board.Rook:
		return central * 2, central * 2
	case board.Queen:
		return central * 2, central * 3
	case board.King:
		// Midgame: reward tucking into a corner behind pawns. Endgame: reward centralizing.
		cornerMG := Score(centerTable[0] - centerTable[file] + centerTable[0] - centerTable[rank])
		return cornerMG * 6, central * 8
	default:
		return 0, 0
	}
}

// Material sums nominal piece values and piece-square placement, tapered by game phase.
// It is the evaluator's largest and cheapest term and the one every other term adjusts.
func Material(b *board.Board) Score {
	var mg, eg Score
	for c := board.White; c < board.NumColors; c++ {
		unit := Score(1)
		if c == board.Black {
			unit = -1
		}
		for p := board.Pawn; p <= board.King; p++ {
			for bb := b.PieceBB(c, p); bb != 0; {
				var sq board.Square
				sq, bb = bb.PopLSB()
				pmg, peg := pstBonus(c, p, sq)
				if p != board.King {
					pmg += NominalValue(p)
					peg += NominalValue(p)
				}
				mg += unit * pmg
				eg += unit * peg
			}
		}
	}
	return taper(mg, eg, gamePhase(b))
}

// BishopPair rewards holding both bishops, which cooperate on both color complexes.
func BishopPair(b *board.Board) Score {
	var s Score
	if b.PieceBB(board.White, board.Bishop).PopCount() >= 2 {
		s += 30
	}
	if b.PieceBB(board.Black, board.Bishop).PopCount() >= 2 {
		s -= 30
	}
	return s
}
