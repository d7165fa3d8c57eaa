package eval

import (
	"context"

	"github.com/corvid-engine/corvid/pkg/board"
	"github.com/corvid-engine/corvid/pkg/hashtable"
)

// Classical is the hand-tuned evaluator: material plus piece-square placement (tapered by
// game phase), mobility, pawn structure, king safety, rook file occupation and the bishop
// pair. It has no incrementally-updated state, so PushMove/PopMove are no-ops -- every
// Evaluate call recomputes from the board, aside from the pawn-structure term, which is
// cached by PawnKey since it is by far the most expensive to recompute per call.
type Classical struct {
	Pawns *hashtable.PawnCache
	Noise Noise
}

func NewClassical(pawnCacheEntries uint64) *Classical {
	return &Classical{Pawns: hashtable.NewPawnCache(pawnCacheEntries)}
}

func (c *Classical) Evaluate(ctx context.Context, b *board.Board) Score {
	if b.IsInsufficientMaterial() {
		return DrawScore
	}

	score := Material(b)
	score += BishopPair(b)
	score += Score(mobility(b))
	score += kingSafety(b)
	score += rookFiles(b)

	pmg, peg := pawnStructureCached(b, c.Pawns)
	score += taper(pmg, peg, gamePhase(b))

	score += c.Noise.Sample()

	return Unit(b.Turn()) * score
}

func (c *Classical) PushMove(b *board.Board, m board.Move) {}
func (c *Classical) PopMove(b *board.Board)                {}
