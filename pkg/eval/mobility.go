package eval

import "github.com/corvid-engine/corvid/pkg/board"

// mobilityWeight is the centipawn value of one extra reachable square, per piece kind.
func mobilityWeight(p board.PieceKind) Score {
	switch p {
	case board.Knight:
		return 4
	case board.Bishop:
		return 4
	case board.Rook:
		return 2
	case board.Queen:
		return 1
	default:
		return 0
	}
}

// mobility rewards pieces with more squares available, excluding squares held by own
// pawns (which a piece is never going to move to) and attacked by enemy pawns (which it
// would be captured stepping onto), from White's perspective.
func mobility(b *board.Board) Score {
	return mobilityFor(b, board.White) - mobilityFor(b, board.Black)
}

func mobilityFor(b *board.Board, c board.Color) Score {
	them := c.Opponent()
	occ := b.Occupied()
	ownPawns := b.PieceBB(c, board.Pawn)
	enemyPawnAttacks := board.PawnAttacksFrom(them, b.PieceBB(them, board.Pawn))
	safe := ^ownPawns &^ enemyPawnAttacks

	var total Score
	for _, p := range [4]board.PieceKind{board.Knight, board.Bishop, board.Rook, board.Queen} {
		w := mobilityWeight(p)
		for bb := b.PieceBB(c, p); bb != 0; {
			var sq board.Square
			sq, bb = bb.PopLSB()
			n := (board.Attackboard(p, sq, occ) & safe).PopCount()
			total += w * Score(n)
		}
	}
	return total
}

// rookFiles rewards rooks on open (no pawns) and semi-open (no own pawns) files, and on
// the seventh rank, from White's perspective.
func rookFiles(b *board.Board) Score {
	return rookFilesFor(b, board.White) - rookFilesFor(b, board.Black)
}

func rookFilesFor(b *board.Board, c board.Color) Score {
	ownPawns := b.PieceBB(c, board.Pawn)
	enemyPawns := b.PieceBB(c.Opponent(), board.Pawn)
	seventh := board.Rank7
	if c == board.Black {
		seventh = board.Rank2
	}

	var s Score
	for bb := b.PieceBB(c, board.Rook); bb != 0; {
		var sq board.Square
		sq, bb = bb.PopLSB()
		file := board.BitFile(sq.File())
		switch {
		case file&ownPawns == 0 && file&enemyPawns == 0:
			s += 20 // open file
		case file&ownPawns == 0:
			s += 10 // semi-open file
		}
		if sq.Rank() == seventh {
			s += 20
		}
	}
	return s
}
