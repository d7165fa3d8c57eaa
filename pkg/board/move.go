package board

import "fmt"

// MoveKind classifies a Move beyond its from/to squares.
type MoveKind uint8

const (
	NullMove MoveKind = iota
	Normal
	Capture
	Castle
	Promotion
	DoublePawnPush
	PromotionCapture
	EnPassant
)

func (k MoveKind) IsCapture() bool {
	return k == Capture || k == PromotionCapture || k == EnPassant
}

func (k MoveKind) IsPromotion() bool {
	return k == Promotion || k == PromotionCapture
}

// Move is an opaque packed value: from(6) to(6) piece(3) kind(3) captured(3) promotion(2)
// score(8), for 31 of its 32 bits. Two moves compare equal iff everything but the
// ordering-score byte matches -- see Equals.
type Move uint32

const (
	moveFromShift      = 0
	moveToShift        = 6
	movePieceShift     = 12
	moveKindShift      = 15
	moveCapturedShift  = 18
	movePromotionShift = 21
	moveScoreShift     = 23

	moveFieldMask6 = 0x3f
	moveFieldMask3 = 0x7
	moveFieldMask2 = 0x3
	moveFieldMask8 = 0xff

	// moveIdentityMask covers every field except the ordering score.
	moveIdentityMask Move = (1 << moveScoreShift) - 1
)

// promotion kinds pack into 2 bits: Knight=0, Bishop=1, Rook=2, Queen=3.
var promoEncodeTable = map[PieceKind]uint32{Knight: 0, Bishop: 1, Rook: 2, Queen: 3}
var promoDecodeTable = [4]PieceKind{Knight, Bishop, Rook, Queen}

func encodePromotion(p PieceKind) uint32 {
	if p == NoPiece {
		return 0
	}
	return promoEncodeTable[p]
}

// NewMove builds a packed Move. captured/promotion may be NoPiece when not applicable.
func NewMove(from, to Square, piece PieceKind, kind MoveKind, captured, promotion PieceKind) Move {
	m := Move(uint32(from)&moveFieldMask6) << moveFromShift
	m |= Move(uint32(to)&moveFieldMask6) << moveToShift
	m |= Move(uint32(piece)&moveFieldMask3) << movePieceShift
	m |= Move(uint32(kind)&moveFieldMask3) << moveKindShift
	m |= Move(uint32(captured)&moveFieldMask3) << moveCapturedShift
	m |= Move(encodePromotion(promotion)&moveFieldMask2) << movePromotionShift
	return m
}

func (m Move) From() Square {
	return Square((m >> moveFromShift) & moveFieldMask6)
}

func (m Move) To() Square {
	return Square((m >> moveToShift) & moveFieldMask6)
}

func (m Move) Piece() PieceKind {
	return PieceKind((m >> movePieceShift) & moveFieldMask3)
}

func (m Move) Kind() MoveKind {
	return MoveKind((m >> moveKindShift) & moveFieldMask3)
}

func (m Move) Captured() PieceKind {
	return PieceKind((m >> moveCapturedShift) & moveFieldMask3)
}

// Promotion returns the promotion piece kind, or NoPiece if this is not a promotion.
func (m Move) Promotion() PieceKind {
	if !m.Kind().IsPromotion() {
		return NoPiece
	}
	idx := uint32(m>>movePromotionShift) & moveFieldMask2
	return promoDecodeTable[idx]
}

func (m Move) OrderScore() uint8 {
	return uint8((m >> moveScoreShift) & moveFieldMask8)
}

// WithOrderScore returns a copy of m with the ordering score set; does not affect Equals.
func (m Move) WithOrderScore(score uint8) Move {
	return (m &^ (Move(moveFieldMask8) << moveScoreShift)) | Move(score)<<moveScoreShift
}

func (m Move) IsNull() bool {
	return m.Kind() == NullMove
}

func (m Move) IsCapture() bool {
	return m.Kind().IsCapture()
}

func (m Move) IsPromotion() bool {
	return m.Kind().IsPromotion()
}

// Equals compares two moves ignoring the ordering-score byte.
func (m Move) Equals(o Move) bool {
	return m&moveIdentityMask == o&moveIdentityMask
}

// String renders the move in long algebraic notation, e.g. "e2e4" or "a7a8q".
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if p := m.Promotion(); p != NoPiece {
		s += p.String()
	}
	return s
}

func (m Move) GoString() string {
	return fmt.Sprintf("Move(%v %v->%v)", m.Piece(), m.From(), m.To())
}
