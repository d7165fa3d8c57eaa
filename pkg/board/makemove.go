package board

// MakeMove applies move m to the board, updating bitboards, mailbox, castling rights,
// en-passant, the fifty-move counter and the Zobrist keys incrementally, and pushes an
// undo record for TakeMove. Infallible on legal input; a ply overflow or a move that
// does not match the piece actually standing on From is a programmer error.
func (b *Board) MakeMove(m Move) {
	if b.ply >= MaxPlies {
		panic("board: ply overflow, undo history exhausted")
	}

	mover := b.turn
	from, to := m.From(), m.To()
	piece := m.Piece()
	kind := m.Kind()

	b.history[b.ply] = undoRecord{
		halfmove: b.halfmove,
		castling: b.castling,
		ep:       b.ep,
		key:      b.key,
		pawnKey:  b.pawnKey,
		move:     m,
	}
	b.ply++

	if piece == Pawn || kind.IsCapture() {
		b.halfmove = 0
	} else {
		b.halfmove++
	}

	if b.ep.IsValid() {
		b.key = b.keys.XorEPFile(b.key, b.ep.File())
	}
	b.ep = NoSquare

	switch kind {
	case Capture:
		b.takePiece(to, mover.Opponent(), m.Captured())
		b.takePiece(from, mover, piece)
		b.putPiece(to, mover, piece)

	case EnPassant:
		captured := enPassantCapturedSquare(mover, to)
		b.takePiece(captured, mover.Opponent(), Pawn)
		b.takePiece(from, mover, Pawn)
		b.putPiece(to, mover, Pawn)

	case Promotion:
		b.takePiece(from, mover, Pawn)
		b.putPiece(to, mover, m.Promotion())

	case PromotionCapture:
		b.takePiece(to, mover.Opponent(), m.Captured())
		b.takePiece(from, mover, Pawn)
		b.putPiece(to, mover, m.Promotion())

	case Castle:
		b.takePiece(from, mover, King)
		b.putPiece(to, mover, King)
		rookFrom, rookTo := castlingRookSquares(to)
		b.takePiece(rookFrom, mover, Rook)
		b.putPiece(rookTo, mover, Rook)

	case DoublePawnPush:
		b.takePiece(from, mover, Pawn)
		b.putPiece(to, mover, Pawn)
		b.ep = doublePushEnPassantSquare(mover, to)
		b.key = b.keys.XorEPFile(b.key, b.ep.File())

	default: // Normal
		b.takePiece(from, mover, piece)
		b.putPiece(to, mover, piece)
	}

	lost := (castleRightsLost[from] | castleRightsLost[to]) & b.castling
	if lost != 0 {
		for _, right := range []Castling{WhiteShort, WhiteLong, BlackShort, BlackLong} {
			if lost.Has(right) {
				b.key = b.keys.XorCastleBit(b.key, right)
				b.castling &^= right
			}
		}
	}

	b.turn = mover.Opponent()
	b.key = b.keys.XorSide(b.key)
	if mover == Black {
		b.fullmove++
	}
}

// TakeMove reverses the most recently made move. A TakeMove with no prior MakeMove on
// this ply is a programmer error (it corrupts the undo ring for every ply above it).
func (b *Board) TakeMove() Move {
	if b.ply == 0 {
		panic("board: TakeMove with empty undo history")
	}
	rec := b.history[b.ply-1]
	mover := b.turn.Opponent()
	m := rec.move

	from, to := m.From(), m.To()
	piece := m.Piece()

	switch m.Kind() {
	case Capture:
		b.remove(to, mover, piece)
		b.place(from, mover, piece)
		b.place(to, mover.Opponent(), m.Captured())

	case EnPassant:
		captured := enPassantCapturedSquare(mover, to)
		b.remove(to, mover, Pawn)
		b.place(from, mover, Pawn)
		b.place(captured, mover.Opponent(), Pawn)

	case Promotion:
		b.remove(to, mover, m.Promotion())
		b.place(from, mover, Pawn)

	case PromotionCapture:
		b.remove(to, mover, m.Promotion())
		b.place(from, mover, Pawn)
		b.place(to, mover.Opponent(), m.Captured())

	case Castle:
		b.remove(to, mover, King)
		b.place(from, mover, King)
		rookFrom, rookTo := castlingRookSquares(to)
		b.remove(rookTo, mover, Rook)
		b.place(rookFrom, mover, Rook)

	default: // Normal, DoublePawnPush
		b.remove(to, mover, piece)
		b.place(from, mover, piece)
	}

	b.castling = rec.castling
	b.ep = rec.ep
	b.halfmove = rec.halfmove
	b.key = rec.key
	b.pawnKey = rec.pawnKey
	b.turn = mover
	b.ply--
	if mover == Black {
		b.fullmove--
	}
	return m
}

// MakeNullMove passes the turn without moving a piece, used by null-move pruning. Only
// side-to-move, en-passant and the Zobrist key change.
func (b *Board) MakeNullMove() {
	if b.ply >= MaxPlies {
		panic("board: ply overflow, undo history exhausted")
	}
	b.history[b.ply] = undoRecord{halfmove: b.halfmove, castling: b.castling, ep: b.ep, key: b.key, pawnKey: b.pawnKey, move: NewMove(0, 0, NoPiece, NullMove, NoPiece, NoPiece)}
	b.ply++

	if b.ep.IsValid() {
		b.key = b.keys.XorEPFile(b.key, b.ep.File())
	}
	b.ep = NoSquare
	b.turn = b.turn.Opponent()
	b.key = b.keys.XorSide(b.key)
}

func (b *Board) TakeNullMove() {
	if b.ply == 0 {
		panic("board: TakeNullMove with empty undo history")
	}
	rec := b.history[b.ply-1]
	b.ep = rec.ep
	b.key = rec.key
	b.turn = b.turn.Opponent()
	b.ply--
}

// LastMove returns the most recently made move, if any.
func (b *Board) LastMove() (Move, bool) {
	if b.ply == 0 {
		return 0, false
	}
	return b.history[b.ply-1].move, true
}

func enPassantCapturedSquare(mover Color, to Square) Square {
	if mover == White {
		return to - 8
	}
	return to + 8
}

func doublePushEnPassantSquare(mover Color, to Square) Square {
	if mover == White {
		return to - 8
	}
	return to + 8
}

// castlingRookSquares returns the rook's from/to squares given the king's destination.
func castlingRookSquares(kingTo Square) (Square, Square) {
	rank := kingTo.Rank()
	if kingTo.File() == FileG {
		return NewSquare(FileH, rank), NewSquare(FileF, rank)
	}
	return NewSquare(FileA, rank), NewSquare(FileD, rank)
}
