package search

import (
	"context"
	"math"

	"github.com/corvid-engine/corvid/pkg/board"
	"github.com/corvid-engine/corvid/pkg/eval"
	"github.com/corvid-engine/corvid/pkg/hashtable"
)

// haltSignal is thrown via panic/recover to unwind the recursive search cleanly once the
// node budget or an external Halt fires, instead of threading an error return through
// every one of negamax's many return points.
type haltSignal struct{}

// reverseFutilityMaxDepth, razorDepth, razorMargin and futilityMaxDepth all come directly
// from section 4.9's numbered steps.
const (
	reverseFutilityMaxDepth = 4
	razorDepth              = 3
	razorMargin             = 1150
	futilityMaxDepth        = 4
)

// Negamax is the PVS interior search at (depth, alpha, beta), following section 4.9's
// sixteen numbered steps. alpha/beta and the returned score are from the side to move's
// perspective. allowNull is false only for the child reached by this node's own null move,
// so two null moves never stack. Extensions (in-check, one-reply, recapture) are added to
// the children's depth at this node; no extension state is passed between nodes.
func (s *Searcher) Negamax(ctx context.Context, b *board.Board, depth int, alpha, beta eval.Score, pv, allowNull bool) eval.Score {
	if s.halted() {
		panic(haltSignal{})
	}

	ply := s.searchPly(b)
	if ply > s.seldepth {
		s.seldepth = ply
	}

	// 2: repetition / fifty-move draw.
	if b.IsRepetitionDraw(ply) || b.IsFiftyMoveDraw() {
		return s.drawScore()
	}

	// 3: mate-distance pruning.
	alpha = eval.Max(alpha, eval.MatedIn(ply))
	beta = eval.Min(beta, eval.MateIn(ply+1))
	if alpha >= beta {
		return alpha
	}

	inCheck := b.IsChecked(b.Turn())
	var extension int
	if inCheck {
		// 4: in-check extension.
		extension++
	}

	// 5: quiescence handoff.
	if depth <= 0 && !inCheck {
		return s.quiescence(ctx, b, alpha, beta)
	}

	origAlpha := alpha
	key := b.Key()

	// 6: TT probe.
	var hashMove board.Move
	if entry, ok := s.TT.Probe(key); ok {
		hashMove = entry.Move
		if !pv && entry.Depth >= depth {
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
	}

	s.nodes++

	// 7: static eval, once, skipped in check.
	var staticEval eval.Score
	haveStaticEval := false
	if !inCheck {
		staticEval = s.Eval.Evaluate(ctx, b)
		haveStaticEval = true
	}

	if !pv && !inCheck {
		// 8: reverse futility pruning.
		if depth <= reverseFutilityMaxDepth {
			margin := eval.Score(depth * 125)
			if staticEval-margin >= beta {
				return staticEval - margin
			}
		}

		// 9: razoring.
		if depth == razorDepth && extension == 0 && b.HasNonPawnMaterial(b.Turn()) {
			if staticEval+razorMargin <= alpha {
				depth--
			}
		}

		// 10: null-move pruning.
		if allowNull && depth > 1 && b.HasNonPawnMaterial(b.Turn()) && staticEval >= beta {
			reduction := 3 + depth/4
			b.MakeNullMove()
			s.Eval.PushMove(b, 0)
			score := -s.Negamax(ctx, b, depth-1-reduction, -beta, -beta+1, false, false)
			b.TakeNullMove()
			s.Eval.PopMove(b)

			if score >= beta {
				if score.IsMate() {
					score = beta // avoid reporting unproven zugzwang mates
				}
				s.TT.Store(key, ply, hashtable.Entry{Bound: hashtable.LowerBound, Depth: depth, Score: int32(score), Move: hashMove})
				return score
			}
		}
	}

	// 11: move generation / terminal test.
	moves := b.GenerateLegalMoves()
	if len(moves) == 0 {
		if inCheck {
			return eval.MatedIn(ply)
		}
		return s.drawScore()
	}

	// 12: one-reply extension.
	if len(moves) == 1 {
		extension++
	}

	// 13: futility preamble.
	futile := false
	var futilityMargin eval.Score
	if !pv && !inCheck && depth <= futilityMaxDepth && !alpha.IsMate() && !beta.IsMate() {
		futilityMargin = 150 + eval.Score(150*depth)
		if haveStaticEval && staticEval+futilityMargin < alpha {
			futile = true
		}
	}

	s.orderMoves(b, moves, ply, hashMove)

	lastMove, hasLastMove := b.LastMove()

	best := eval.NegInf
	bestMove := board.Move(0)
	fallbackSet := false
	var fallback eval.Score

	for i, m := range moves {
		// 15a: futility cutoff on quiet/low-value moves.
		if futile && m.OrderScore() <= 240 {
			if !fallbackSet {
				fallback = staticEval + futilityMargin
				fallbackSet = true
			}
			break
		}

		moveExt := 0
		// 15b: recapture extension, PV only.
		if pv && hasLastMove && m.IsCapture() && lastMove.IsCapture() && m.To() == lastMove.To() && m.Captured() == lastMove.Captured() {
			moveExt = 1
		}

		// 15c: late-move reduction.
		r := 0
		if !inCheck && i > 0 && depth >= 2 {
			r = lateMoveReduction(m.OrderScore(), depth, i+1, pv)
		}

		b.MakeMove(m)
		s.Eval.PushMove(b, m)

		var score eval.Score
		childDepth := depth - 1 + extension + moveExt

		if pv && i == 0 {
			// 15e: full window, full depth for the PV's first move.
			score = -s.Negamax(ctx, b, childDepth, -beta, -alpha, true, true)
		} else {
			// 15f: null-window search, possibly reduced.
			score = -s.Negamax(ctx, b, childDepth-r, -alpha-1, -alpha, false, true)
			if score > alpha && r > 0 {
				score = -s.Negamax(ctx, b, childDepth, -alpha-1, -alpha, false, true)
			}
			if pv && score > alpha && score < beta {
				score = -s.Negamax(ctx, b, childDepth, -beta, -alpha, true, true)
			}
		}

		b.TakeMove()
		s.Eval.PopMove(b)

		if score > best {
			best = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
		}

		if alpha >= beta {
			// 15g: beta cutoff.
			if !m.IsCapture() && !m.IsPromotion() {
				s.killers.record(ply, m)
				s.history.record(b.Turn(), m, depth)
			}
			s.TT.Store(key, ply, hashtable.Entry{Bound: hashtable.LowerBound, Depth: depth, Score: int32(alpha), Move: m})
			return alpha
		}
	}

	if fallbackSet && fallback > best {
		best = fallback
	}

	// 16: store the final bound.
	bound := hashtable.UpperBound
	if best > origAlpha {
		bound = hashtable.ExactBound
	}
	s.TT.Store(key, ply, hashtable.Entry{Bound: bound, Depth: depth, Score: int32(best), Move: bestMove})

	return best
}

// lateMoveReduction implements the four log-formula bands from section 4.9, clamped to
// [0,4]. score is the move's 8-bit ordering key, moveNo is 1-based.
func lateMoveReduction(score uint8, depth, moveNo int, isPV bool) int {
	d, n := math.Log(float64(depth)), math.Log(float64(moveNo))
	pv := 0.0
	if isPV {
		pv = 1.0
	}

	var r float64
	switch {
	case score <= 180:
		s := math.Log(float64(score) + 1)
		r = -0.5 - 0.2*s - 2*pv + (2.0-0.3*s)*d + (0.3+0.15*s)*n
	case score >= 181 && score <= 184:
		r = 0.5 - 0.4*pv + 1.35*d + 0.4*n
	case score >= 185 && score <= 189:
		r = -0.85 + 1.35*d + 0.4*n
	case score >= 191 && score <= 193 && !isPV:
		r = -1.85 + 0.5*d + 1.65*n
	default:
		return 0
	}

	v := int(math.Floor(r))
	if v < 0 {
		return 0
	}
	if v > 4 {
		return 4
	}
	return v
}
