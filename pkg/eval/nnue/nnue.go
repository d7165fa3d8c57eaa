package nnue

import (
	"context"

	"github.com/corvid-engine/corvid/pkg/board"
	"github.com/corvid-engine/corvid/pkg/eval"
)

// NNUE evaluates a position with a loaded Network, maintaining one Accumulator
// incrementally across make/undo instead of recomputing it every call.
//
// Contract with the caller (the search's make/undo loop): PushMove must be called once
// board.MakeMove has already been applied, and PopMove once board.TakeMove has already
// been applied -- both see the board in the same state MakeMove/TakeMove leave it in.
// This lets PushMove read the post-move king squares directly off the board instead of
// re-deriving them, and lets PopMove be a pure stack pop instead of a recompute.
type NNUE struct {
	net   *Network
	acc   Accumulator
	stack []Accumulator
	sp    int
}

func New(net *Network) *NNUE {
	return &NNUE{net: net, stack: make([]Accumulator, board.MaxPlies)}
}

// Reset rebuilds both perspectives from scratch; call once after setting up a position
// (e.g. from FEN) before making any moves against it.
func (n *NNUE) Reset(b *board.Board) {
	n.acc.rebuildBoth(n.net, b)
	n.sp = 0
}

func (n *NNUE) Evaluate(ctx context.Context, b *board.Board) eval.Score {
	us, them := b.Turn(), b.Turn().Opponent()

	var in [l2In]float32
	for i := 0; i < Size; i++ {
		in[i] = clampReLU(n.acc.values[us][i])
	}
	for i := 0; i < Size; i++ {
		in[Size+i] = clampReLU(n.acc.values[them][i])
	}

	o2 := n.net.layer2(&in)
	o3 := n.net.layer3(&o2)
	out := n.net.layer4(&o3)

	return eval.Score(out * 100)
}

// PushMove folds the feature changes caused by m into the accumulator. See the type doc
// for the required call ordering relative to board.MakeMove.
func (n *NNUE) PushMove(b *board.Board, m board.Move) {
	n.stack[n.sp] = n.acc
	n.sp++

	if m.IsNull() {
		return
	}

	mover := b.Turn().Opponent() // MakeMove already flipped the side to move
	opp := mover.Opponent()
	from, to, piece, kind := m.From(), m.To(), m.Piece(), m.Kind()

	kingMoved := piece == board.King
	var moverBucketOld, moverBucketNew int
	if kingMoved {
		moverBucketOld = kingBucket(mover, from)
		moverBucketNew = kingBucket(mover, to)
	}

	for _, p := range [2]board.Color{mover, opp} {
		if kingMoved && p == mover && moverBucketNew != moverBucketOld {
			n.acc.rebuild(n.net, b, p)
			continue
		}
		n.applyDelta(p, kingBucket(p, b.King(p)), mover, opp, from, to, piece, kind, m)
	}
}

// applyDelta folds the feature changes of one move into perspective p's accumulator, at
// the given (already-resolved) king bucket. The king itself never contributes a feature:
// a plain king step touches nothing here, and castling only moves the rook.
func (n *NNUE) applyDelta(p board.Color, bucket int, mover, opp board.Color, from, to board.Square, piece board.PieceKind, kind board.MoveKind, m board.Move) {
	add := func(c board.Color, k board.PieceKind, sq board.Square) {
		n.acc.addFeature(n.net, p, featureIndex(p, c, k, sq, bucket))
	}
	remove := func(c board.Color, k board.PieceKind, sq board.Square) {
		n.acc.removeFeature(n.net, p, featureIndex(p, c, k, sq, bucket))
	}

	switch kind {
	case board.Capture:
		remove(opp, m.Captured(), to)
		if piece != board.King {
			remove(mover, piece, from)
			add(mover, piece, to)
		}

	case board.EnPassant:
		epSq := to - 8
		if mover == board.Black {
			epSq = to + 8
		}
		remove(opp, board.Pawn, epSq)
		remove(mover, board.Pawn, from)
		add(mover, board.Pawn, to)

	case board.Promotion:
		remove(mover, board.Pawn, from)
		add(mover, m.Promotion(), to)

	case board.PromotionCapture:
		remove(opp, m.Captured(), to)
		remove(mover, board.Pawn, from)
		add(mover, m.Promotion(), to)

	case board.Castle:
		rookFrom, rookTo := castleRookSquares(to)
		remove(mover, board.Rook, rookFrom)
		add(mover, board.Rook, rookTo)

	default: // Normal, DoublePawnPush
		if piece == board.King {
			return // kings are never a feature; bucket changes are handled by the caller
		}
		remove(mover, piece, from)
		add(mover, piece, to)
	}
}

// castleRookSquares mirrors board's private helper of the same shape: the rook's
// from/to squares are a function of the king's destination file and rank alone.
func castleRookSquares(kingTo board.Square) (board.Square, board.Square) {
	rank := kingTo.Rank()
	if kingTo.File() == board.FileG {
		return board.NewSquare(board.FileH, rank), board.NewSquare(board.FileF, rank)
	}
	return board.NewSquare(board.FileA, rank), board.NewSquare(board.FileD, rank)
}

func (n *NNUE) PopMove(b *board.Board) {
	n.sp--
	n.acc = n.stack[n.sp]
}
