package search

import (
	"context"

	"github.com/corvid-engine/corvid/pkg/board"
	"github.com/corvid-engine/corvid/pkg/eval"
	"github.com/corvid-engine/corvid/pkg/hashtable"
)

// deltaMargin is the section 4.9 quiescence delta-pruning constant added to the stand-pat
// score before comparing a capture's potential gain against alpha.
const deltaMargin = 90

// quiescence is the capture-only search that terminates PVS's leaves, per section 4.9's
// quiescence bullet. alpha/beta and the result are from the side to move's perspective.
func (s *Searcher) quiescence(ctx context.Context, b *board.Board, alpha, beta eval.Score) eval.Score {
	if s.halted() {
		panic(haltSignal{})
	}

	ply := s.searchPly(b)
	inCheck := b.IsChecked(b.Turn())

	best := eval.NegInf
	if !inCheck {
		standPat := s.Eval.Evaluate(ctx, b)
		best = standPat
		if standPat >= beta {
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	s.nodes++

	key := b.Key()
	if entry, ok := s.TT.Probe(key); ok {
		score := eval.Score(hashtable.RebaseScoreForProbe(entry.Score, ply))
		switch entry.Bound {
		case hashtable.ExactBound:
			return score
		case hashtable.LowerBound:
			if score >= beta {
				return score
			}
		case hashtable.UpperBound:
			if score <= alpha {
				return score
			}
		}
	}

	var moves []board.Move
	if inCheck {
		moves = b.GenerateLegalMoves()
	} else {
		moves = b.GenerateCaptures()
	}

	if len(moves) == 0 {
		full := moves
		if !inCheck {
			full = b.GenerateLegalMoves()
		}
		if len(full) == 0 {
			if inCheck {
				return eval.MatedIn(ply)
			}
			return s.drawScore()
		}
		return alpha
	}

	if inCheck {
		orderByScore(moves, scoreEvasionMove)
	} else {
		orderByScore(moves, func(m board.Move) uint8 { return scoreQuiescenceMove(b, m) })
	}

	standPat := best // valid stand-pat only when !inCheck; unused otherwise

	for _, m := range moves {
		if !inCheck && m.IsCapture() {
			see := b.SEE(m)
			if see < 0 {
				continue
			}
			margin := standPat + deltaMargin
			if see == 0 {
				margin += eval.NominalValue(m.Captured())
			}
			if margin < alpha {
				if margin > best {
					best = margin
				}
				continue
			}
		}

		b.MakeMove(m)
		s.Eval.PushMove(b, m)
		score := -s.quiescence(ctx, b, -beta, -alpha)
		b.TakeMove()
		s.Eval.PopMove(b)

		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			return alpha
		}
	}

	return best
}
