package search

import (
	"context"
	"sync"
	"time"

	"github.com/corvid-engine/corvid/pkg/board"
	"github.com/corvid-engine/corvid/pkg/eval"
	"github.com/corvid-engine/corvid/pkg/hashtable"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// aspirationWindow is the initial +-25cp window applied around the previous iteration's
// score once depth reaches aspirationMinDepth, per section 4.9.
const (
	aspirationWindow   = eval.Score(25)
	aspirationMinDepth = 4
)

// Iterative drives a Searcher from depth 1 up to a limit or until time/nodes run out,
// emitting one PV per completed depth. It implements Launcher.
type Iterative struct {
	Searcher *Searcher
}

func (it *Iterative) Launch(ctx context.Context, b *board.Board, opt Options) (Handle, <-chan PV) {
	out := make(chan PV, 1)
	h := &handle{init: iox.NewAsyncCloser(), quit: iox.NewAsyncCloser()}
	go h.process(ctx, it.Searcher, b, opt, out)
	return h, out
}

type handle struct {
	init, quit iox.AsyncCloser

	mu sync.Mutex
	pv PV
}

func (h *handle) Halt() PV {
	<-h.init.Closed()
	h.quit.Close()

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pv
}

func (h *handle) process(ctx context.Context, s *Searcher, b *board.Board, opt Options, out chan PV) {
	defer h.init.Close()
	defer close(out)

	soft, hard, useTime := timeLimits(opt, b.Turn())
	start := time.Now()

	deadline := func() bool {
		if h.quit.IsClosed() || ctx.Err() != nil {
			return true
		}
		if useTime && time.Since(start) > hard {
			return true
		}
		if limit, ok := opt.NodesLimit.V(); ok && s.nodes >= limit {
			return true
		}
		return false
	}
	s.reset(b, deadline)

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	var prev eval.Score
	for depth := 1; !h.quit.IsClosed(); depth++ {
		pv, halted := s.searchIteration(wctx, b, depth, prev)
		if halted {
			return
		}
		prev = pv.Score
		logw.Debugf(ctx, "Searched %v: %v", b, pv)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv

		h.init.Close()

		if limit, ok := opt.DepthLimit.V(); ok && depth >= limit {
			return
		}
		if md, ok := pv.Score.MateDistance(); ok && abs(md) <= depth {
			return
		}
		if useTime && time.Since(start) > soft/2 {
			return
		}
	}
}

// searchIteration runs one iterative-deepening depth with aspiration-window retries,
// recovering from a haltSignal panic raised by Negamax/quiescence/rootSearch. prevScore
// is the previous depth's score, used to center the aspiration window once depth reaches
// aspirationMinDepth.
func (s *Searcher) searchIteration(ctx context.Context, b *board.Board, depth int, prevScore eval.Score) (pv PV, halted bool) {
	start := time.Now()

	alpha, beta := eval.NegInf, eval.Inf
	if depth >= aspirationMinDepth {
		alpha, beta = prevScore-aspirationWindow, prevScore+aspirationWindow
	}

	var score eval.Score
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(haltSignal); ok {
					halted = true
					return
				}
				panic(r)
			}
		}()
		for {
			score = s.rootSearch(ctx, b, depth, alpha, beta)
			if score <= alpha && alpha != eval.NegInf {
				alpha = eval.NegInf
				continue
			}
			if score >= beta && beta != eval.Inf {
				beta = eval.Inf
				continue
			}
			break
		}
	}()
	if halted {
		return PV{}, true
	}

	moves := s.reconstructPV(b, depth)
	return PV{
		Depth: depth,
		Moves: moves,
		Score: score,
		Nodes: s.nodes,
		Time:  time.Since(start),
		Hash:  s.TT.Used(),
	}, false
}

// FixedDepth runs iterative deepening synchronously from depth 1 up to depth, ignoring
// any time/node budget, and returns the final completed PV. Intended for tests and
// callers (e.g. a perft-style analysis command) that want one blocking call instead of
// Launch's channel-based protocol.
func (s *Searcher) FixedDepth(ctx context.Context, b *board.Board, depth int) PV {
	s.reset(b, func() bool { return ctx.Err() != nil })

	var best PV
	var prev eval.Score
	for d := 1; d <= depth; d++ {
		pv, halted := s.searchIteration(ctx, b, d, prev)
		if halted {
			break
		}
		best = pv
		prev = pv.Score
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// timeLimits resolves the move's soft/hard time budget from Options, in priority order:
// Infinite (no budget), a fixed MoveTime, then a clock-derived TimeControl.
func timeLimits(opt Options, turn board.Color) (soft, hard time.Duration, useTime bool) {
	if opt.Infinite {
		return 0, 0, false
	}
	if mt, ok := opt.MoveTime.V(); ok {
		return mt, mt, true
	}
	if tc, ok := opt.TimeControl.V(); ok {
		s, h := tc.Limits(turn)
		return s, h, true
	}
	return 0, 0, false
}

// rootSearch is the depth-N root iteration: ordinary alpha-beta (not PVS) over the legal
// root moves, sorted with the same ordering as interior nodes, honouring the aspiration
// bounds passed in by the caller.
func (s *Searcher) rootSearch(ctx context.Context, b *board.Board, depth int, alpha, beta eval.Score) eval.Score {
	if s.halted() {
		panic(haltSignal{})
	}

	moves := b.GenerateLegalMoves()
	if len(moves) == 0 {
		if b.IsChecked(b.Turn()) {
			return eval.MatedIn(0)
		}
		return s.drawScore()
	}

	var hashMove board.Move
	if entry, ok := s.TT.Probe(b.Key()); ok {
		hashMove = entry.Move
	}
	s.orderMoves(b, moves, 0, hashMove)

	origAlpha := alpha
	best := eval.NegInf
	bestMove := moves[0]

	for _, m := range moves {
		b.MakeMove(m)
		s.Eval.PushMove(b, m)

		score := -s.Negamax(ctx, b, depth-1, -beta, -alpha, true, true)

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
			break
		}
	}

	bound := hashtable.ExactBound
	switch {
	case best <= origAlpha:
		bound = hashtable.UpperBound
	case best >= beta:
		bound = hashtable.LowerBound
	}
	s.TT.Store(b.Key(), 0, hashtable.Entry{Bound: bound, Depth: depth, Score: int32(best), Move: bestMove})

	return best
}

// reconstructPV walks the TT from the root, replaying each stored best move on b, stopping
// at a missing entry, a null move, or a move that no longer matches a legal move (a hash
// collision). b is left exactly as it was found: every applied move is undone before return.
func (s *Searcher) reconstructPV(b *board.Board, maxLen int) []board.Move {
	var moves []board.Move

	for len(moves) < maxLen {
		entry, ok := s.TT.Probe(b.Key())
		if !ok || entry.Move.IsNull() {
			break
		}

		legal := b.GenerateLegalMoves()
		found := false
		for _, m := range legal {
			if m.Equals(entry.Move) {
				found = true
				break
			}
		}
		if !found {
			break
		}

		moves = append(moves, entry.Move)
		b.MakeMove(entry.Move)
	}

	for range moves {
		b.TakeMove()
	}
	return moves
}
