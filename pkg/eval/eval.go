package eval

import (
	"context"

	"github.com/corvid-engine/corvid/pkg/board"
)

// Evaluator is a static position evaluator, from the perspective of the side to move.
// PushMove/PopMove let an implementation that keeps incrementally-updated state (the NNUE
// accumulator stack, notably) stay in lockstep with the search's Board.MakeMove/TakeMove
// calls; the classical evaluator has no such state and no-ops them.
type Evaluator interface {
	Evaluate(ctx context.Context, b *board.Board) Score
	PushMove(b *board.Board, m board.Move)
	PopMove(b *board.Board)
}

// NominalValue is the textbook material value of a piece, used by the material term and by
// quiescence delta pruning; move ordering ranks captures by Board.SEE instead. The King's value is
// arbitrarily large so it always dominates a capture comparison.
func NominalValue(p board.PieceKind) Score {
	switch p {
	case board.Pawn:
		return 100
	case board.Knight, board.Bishop:
		return 320
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	case board.King:
		return 20000
	default:
		return 0
	}
}

// NominalValueGain is the nominal material gain of making move m. Move ordering does not
// use it; captures are ranked by Board.SEE.
func NominalValueGain(m board.Move) Score {
	switch m.Kind() {
	case board.PromotionCapture:
		return NominalValue(m.Captured()) + NominalValue(m.Promotion()) - NominalValue(board.Pawn)
	case board.Promotion:
		return NominalValue(m.Promotion()) - NominalValue(board.Pawn)
	case board.Capture:
		return NominalValue(m.Captured())
	case board.EnPassant:
		return NominalValue(board.Pawn)
	default:
		return 0
	}
}
