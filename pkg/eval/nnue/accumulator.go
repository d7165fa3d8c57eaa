package nnue

import "github.com/corvid-engine/corvid/pkg/board"

// kingBuckets maps a king square to one of 32 buckets. Squares are pre-oriented (see
// orient), so both perspectives index the table from their own back rank. On the first
// two ranks every square has its own bucket; from the third rank up, files a-b, c-d, e-f
// and g-h share a bucket, and ranks 5-6 and 7-8 share the same row of buckets. Ported
// verbatim from the original engine's KING_BUCKETS table.
var kingBuckets = [64]int{
	0, 1, 2, 3, 4, 5, 6, 7,
	8, 9, 10, 11, 12, 13, 14, 15,
	16, 16, 17, 17, 18, 18, 19, 19,
	20, 20, 21, 21, 22, 22, 23, 23,
	24, 24, 25, 25, 26, 26, 27, 27,
	24, 24, 25, 25, 26, 26, 27, 27,
	28, 28, 29, 29, 30, 30, 31, 31,
	28, 28, 29, 29, 30, 30, 31, 31,
}

// orient mirrors a square vertically for Black's perspective, so both perspectives see
// their own king the same way up.
func orient(perspective board.Color, sq board.Square) board.Square {
	if perspective == board.Black {
		return board.Square(uint8(sq) ^ 56)
	}
	return sq
}

func kingBucket(perspective board.Color, kingSq board.Square) int {
	return kingBuckets[orient(perspective, kingSq)]
}

// pieceSlot maps Pawn..Queen to 0..4. King is never a feature: only the king's square
// selects the bucket, it never appears in the sparse input itself.
func pieceSlot(p board.PieceKind) int {
	return int(p) - int(board.Pawn)
}

// featureIndex returns the sparse input index, from perspective's point of view, of
// piece (pieceColor, kind) standing on sq, given perspective's king bucket. This is the
// "640*bucket + 64*index + square" formula from the original engine, generalized so
// perspective and the piece's owner are both parameters instead of baked-in white/black.
func featureIndex(perspective, pieceColor board.Color, kind board.PieceKind, sq board.Square, bucket int) int {
	idx := pieceSlot(kind) * 2
	if pieceColor != perspective {
		idx++
	}
	return 640*bucket + 64*idx + int(orient(perspective, sq))
}

// Accumulator holds the first hidden layer's activations for both perspectives,
// maintained incrementally as features are added or removed.
type Accumulator struct {
	values [board.NumColors][Size]float32
}

func (a *Accumulator) addFeature(net *Network, perspective board.Color, feature int) {
	base := feature * Size
	row := net.w1[base : base+Size]
	acc := &a.values[perspective]
	for i := 0; i < Size; i++ {
		acc[i] += row[i]
	}
}

func (a *Accumulator) removeFeature(net *Network, perspective board.Color, feature int) {
	base := feature * Size
	row := net.w1[base : base+Size]
	acc := &a.values[perspective]
	for i := 0; i < Size; i++ {
		acc[i] -= row[i]
	}
}

// rebuild recomputes perspective's accumulator from scratch from the live board. Used on
// initial setup and whenever a king move changes that perspective's own bucket.
func (a *Accumulator) rebuild(net *Network, b *board.Board, perspective board.Color) {
	a.values[perspective] = net.b1
	bucket := kingBucket(perspective, b.King(perspective))
	for c := board.White; c < board.NumColors; c++ {
		for p := board.Pawn; p <= board.Queen; p++ {
			for bb := b.PieceBB(c, p); bb != 0; {
				var sq board.Square
				sq, bb = bb.PopLSB()
				a.addFeature(net, perspective, featureIndex(perspective, c, p, sq, bucket))
			}
		}
	}
}

func (a *Accumulator) rebuildBoth(net *Network, b *board.Board) {
	a.rebuild(net, b, board.White)
	a.rebuild(net, b, board.Black)
}
