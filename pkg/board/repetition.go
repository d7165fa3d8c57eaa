package board

// IsRepetitionDraw reports whether the current position has recurred enough times to be
// claimed a draw. searchPly is how many plies deep the current search is below the root:
// a prior occurrence at most searchPly plies back (at the root itself or below it in the
// search tree) is draw-scored after that single occurrence, since the opponent can force
// it again; occurrences further back than that require the full two prior occurrences,
// matching the game-theoretic threefold rule.
func (b *Board) IsRepetitionDraw(searchPly int) bool {
	if b.halfmove < 4 {
		return false
	}
	key := b.key
	occurrences := 0
	limit := b.halfmove
	if limit > b.ply {
		limit = b.ply
	}
	for i := 4; i <= limit; i += 2 {
		idx := b.ply - i
		if b.history[idx].key != key {
			continue
		}
		if i <= searchPly {
			return true // would recur inside the search tree: one occurrence suffices
		}
		occurrences++
		if occurrences >= 2 {
			return true
		}
	}
	return false
}

// IsFiftyMoveDraw reports whether the fifty-move rule allows a draw claim.
func (b *Board) IsFiftyMoveDraw() bool {
	return b.halfmove >= 100
}

// IsInsufficientMaterial reports whether neither side has enough material to deliver mate.
func (b *Board) IsInsufficientMaterial() bool {
	if b.pieces[White][Pawn]|b.pieces[Black][Pawn] != 0 {
		return false
	}
	if b.pieces[White][Rook]|b.pieces[Black][Rook]|b.pieces[White][Queen]|b.pieces[Black][Queen] != 0 {
		return false
	}
	minor := b.pieces[White][Knight] | b.pieces[White][Bishop] | b.pieces[Black][Knight] | b.pieces[Black][Bishop]
	return minor.PopCount() <= 1
}
