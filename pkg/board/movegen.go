package board

// promotionPieces lists every piece a pawn can promote to, in generation order.
var promotionPieces = [4]PieceKind{Queen, Rook, Bishop, Knight}

var slidingDirs = [8]Direction{North, South, East, West, NorthEast, NorthWest, SouthEast, SouthWest}

// pinInfo is the result of scanning for absolute pins against the side-to-move's king.
type pinInfo struct {
	pinned Bitboard
	line   [NumSquares]Bitboard // valid only where pinned is set: squares the pinned piece may move to
}

// computePins finds every friendly piece absolutely pinned to kingSq by an enemy slider.
func (b *Board) computePins(us Color, kingSq Square) pinInfo {
	them := us.Opponent()
	friendly := b.colorAll[us]
	enemy := b.colorAll[them]

	var info pinInfo
	for _, d := range slidingDirs {
		ray := rays[d][kingSq]
		blockers := ray & b.all
		if blockers == 0 {
			continue
		}
		var first Square
		if d.isPositive() {
			first = blockers.LSB()
		} else {
			first = blockers.MSB()
		}
		if friendly&BitMask(first) == 0 {
			continue // first piece on the ray belongs to them, or it's a check, not a pin
		}
		beyond := rays[d][first] & b.all
		if beyond == 0 {
			continue
		}
		var second Square
		if d.isPositive() {
			second = beyond.LSB()
		} else {
			second = beyond.MSB()
		}
		if enemy&BitMask(second) == 0 {
			continue
		}
		_, p, _ := b.Piece(second)
		orthogonal := d == North || d == South || d == East || d == West
		if (orthogonal && (p == Rook || p == Queen)) || (!orthogonal && (p == Bishop || p == Queen)) {
			info.pinned |= BitMask(first)
			info.line[first] = BitMask(second) | Between(kingSq, second)
		}
	}
	return info
}

// allowed returns the set of squares a piece on sq is allowed to move to, given the current
// check/pin state: every square if not in check nor pinned, the block/capture mask if in
// single check, intersected with the pin ray if the piece is pinned.
func allowed(sq Square, checkMask Bitboard, pins pinInfo) Bitboard {
	mask := checkMask
	if pins.pinned.IsSet(sq) {
		mask &= pins.line[sq]
	}
	return mask
}

// GenerateLegalMoves returns every legal move in the current position.
func (b *Board) GenerateLegalMoves() []Move {
	return b.generateMoves(false)
}

// GenerateCaptures returns every legal capture and every legal queen promotion, for
// quiescence search. Promotions (with or without capture) are emitted to a queen only;
// underpromotions are not generated.
func (b *Board) GenerateCaptures() []Move {
	return b.generateMoves(true)
}

func (b *Board) generateMoves(capturesOnly bool) []Move {
	moves := make([]Move, 0, 48)

	us := b.turn
	them := us.Opponent()
	kingSq := b.King(us)
	occ := b.all
	friendly := b.colorAll[us]
	enemy := b.colorAll[them]

	checkers := b.AttackersTo(kingSq, them, occ)
	numCheckers := checkers.PopCount()

	var checkMask Bitboard = ^EmptyBitboard
	switch numCheckers {
	case 0:
		// unrestricted
	case 1:
		checkerSq := checkers.LSB()
		checkMask = BitMask(checkerSq) | Between(kingSq, checkerSq)
	default:
		checkMask = EmptyBitboard
	}

	moves = b.generateKingMoves(moves, us, kingSq, occ, capturesOnly)
	if numCheckers >= 2 {
		return moves // double check: only the king can move
	}
	if numCheckers == 0 {
		moves = b.generateCastles(moves, us)
	}

	pins := b.computePins(us, kingSq)

	moves = b.generatePawnMoves(moves, us, checkMask, pins, capturesOnly)

	for _, p := range [4]PieceKind{Knight, Bishop, Rook, Queen} {
		for bb := b.pieces[us][p]; bb != 0; {
			var sq Square
			sq, bb = bb.PopLSB()
			attacks := Attackboard(p, sq, occ) &^ friendly & allowed(sq, checkMask, pins)
			moves = b.emitFromAttacks(moves, sq, p, attacks, enemy, capturesOnly)
		}
	}

	return moves
}

func (b *Board) emitFromAttacks(moves []Move, from Square, piece PieceKind, targets, enemy Bitboard, capturesOnly bool) []Move {
	for bb := targets; bb != 0; {
		var to Square
		to, bb = bb.PopLSB()
		if enemy.IsSet(to) {
			moves = append(moves, NewMove(from, to, piece, Capture, b.mailbox[to], NoPiece))
		} else if !capturesOnly {
			moves = append(moves, NewMove(from, to, piece, Normal, NoPiece, NoPiece))
		}
	}
	return moves
}

func (b *Board) generateKingMoves(moves []Move, us Color, kingSq Square, occ Bitboard, capturesOnly bool) []Move {
	them := us.Opponent()
	friendly := b.colorAll[us]
	enemy := b.colorAll[them]

	targets := KingAttackboard(kingSq) &^ friendly
	occWithoutKing := occ &^ BitMask(kingSq) // a king must not "hide" behind its own square from a slider

	for bb := targets; bb != 0; {
		var to Square
		to, bb = bb.PopLSB()
		if b.AttackersTo(to, them, occWithoutKing) != 0 {
			continue
		}
		if enemy.IsSet(to) {
			moves = append(moves, NewMove(kingSq, to, King, Capture, b.mailbox[to], NoPiece))
		} else if !capturesOnly {
			moves = append(moves, NewMove(kingSq, to, King, Normal, NoPiece, NoPiece))
		}
	}
	return moves
}

func (b *Board) generateCastles(moves []Move, us Color) []Move {
	them := us.Opponent()
	rank := Rank1
	short, long := WhiteShort, WhiteLong
	if us == Black {
		rank = Rank8
		short, long = BlackShort, BlackLong
	}
	kingSq := NewSquare(FileE, rank)

	if b.castling.Has(short) {
		f, g := NewSquare(FileF, rank), NewSquare(FileG, rank)
		if !b.all.IsSet(f) && !b.all.IsSet(g) &&
			b.AttackersTo(kingSq, them, b.all) == 0 &&
			b.AttackersTo(f, them, b.all) == 0 &&
			b.AttackersTo(g, them, b.all) == 0 {
			moves = append(moves, NewMove(kingSq, g, King, Castle, NoPiece, NoPiece))
		}
	}
	if b.castling.Has(long) {
		d, c, bSq := NewSquare(FileD, rank), NewSquare(FileC, rank), NewSquare(FileB, rank)
		if !b.all.IsSet(d) && !b.all.IsSet(c) && !b.all.IsSet(bSq) &&
			b.AttackersTo(kingSq, them, b.all) == 0 &&
			b.AttackersTo(d, them, b.all) == 0 &&
			b.AttackersTo(c, them, b.all) == 0 {
			moves = append(moves, NewMove(kingSq, c, King, Castle, NoPiece, NoPiece))
		}
	}
	return moves
}

func (b *Board) generatePawnMoves(moves []Move, us Color, checkMask Bitboard, pins pinInfo, capturesOnly bool) []Move {
	them := us.Opponent()
	enemy := b.colorAll[them]
	pawns := b.pieces[us][Pawn]

	promoRank := Rank8
	startRank := Rank2
	if us == Black {
		promoRank = Rank1
		startRank = Rank7
	}

	for bb := pawns; bb != 0; {
		var from Square
		from, bb = bb.PopLSB()
		mask := allowed(from, checkMask, pins)

		// Captures (incl. promotion-captures).
		for att := PawnAttackboard(us, from) & enemy & mask; att != 0; {
			var to Square
			to, att = att.PopLSB()
			if to.Rank() == promoRank {
				if capturesOnly {
					moves = append(moves, NewMove(from, to, Pawn, PromotionCapture, b.mailbox[to], Queen))
				} else {
					for _, promo := range promotionPieces {
						moves = append(moves, NewMove(from, to, Pawn, PromotionCapture, b.mailbox[to], promo))
					}
				}
			} else {
				moves = append(moves, NewMove(from, to, Pawn, Capture, b.mailbox[to], NoPiece))
			}
		}

		// En passant.
		if ep, ok := b.EnPassant(); ok {
			if PawnAttackboard(us, from).IsSet(ep) {
				captured := enPassantCapturedSquare(us, ep)
				if (mask.IsSet(ep) || mask.IsSet(captured)) && b.enPassantLegal(us, from, ep, captured) {
					moves = append(moves, NewMove(from, ep, Pawn, EnPassant, Pawn, NoPiece))
				}
			}
		}

		// Single and double pushes. The promotion-push branch below still needs to run
		// under capturesOnly, since a pawn one step from the promotion rank is never on
		// its own starting rank -- quiescence's generator must see those pushes too.
		var single Square
		if us == White {
			single = from + 8
		} else {
			single = from - 8
		}
		if !b.all.IsSet(single) {
			if mask.IsSet(single) {
				if single.Rank() == promoRank {
					if !capturesOnly {
						for _, promo := range promotionPieces {
							moves = append(moves, NewMove(from, single, Pawn, Promotion, NoPiece, promo))
						}
					} else {
						moves = append(moves, NewMove(from, single, Pawn, Promotion, NoPiece, Queen))
					}
				} else if !capturesOnly {
					moves = append(moves, NewMove(from, single, Pawn, Normal, NoPiece, NoPiece))
				}
			}
			if !capturesOnly && from.Rank() == startRank {
				var double Square
				if us == White {
					double = from + 16
				} else {
					double = from - 16
				}
				if !b.all.IsSet(double) && mask.IsSet(double) {
					moves = append(moves, NewMove(from, double, Pawn, DoublePawnPush, NoPiece, NoPiece))
				}
			}
		}
	}
	return moves
}

// enPassantLegal handles the rare case where an en-passant capture exposes its own king to a
// horizontal pin through the two pawns -- the ordinary pin mask can't see it because both
// pawns vacate the rank simultaneously, so this simulates the resulting occupancy directly.
func (b *Board) enPassantLegal(us Color, from, to, captured Square) bool {
	kingSq := b.King(us)
	occAfter := (b.all &^ BitMask(from) &^ BitMask(captured)) | BitMask(to)
	// Mask by occAfter so the captured pawn itself no longer counts as an attacker.
	return b.AttackersTo(kingSq, us.Opponent(), occAfter)&occAfter == 0
}
