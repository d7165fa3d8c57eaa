package search

import (
	"sync/atomic"

	"github.com/corvid-engine/corvid/pkg/board"
	"github.com/corvid-engine/corvid/pkg/eval"
	"github.com/corvid-engine/corvid/pkg/hashtable"
)

// nodeCheckInterval is how often (in visited nodes) the searcher polls for a stop signal
// and re-checks the time budget, matching section 4.9's "every 5,000 nodes".
const nodeCheckInterval = 5000

// Searcher holds everything one principal-variation search owns exclusively for the
// lifetime of a single Launch: the evaluator, the shared hash tables, and the per-search
// move-ordering heuristics. It is not safe for concurrent use by more than one goroutine.
type Searcher struct {
	Eval  eval.Evaluator
	TT    hashtable.TranspositionTable
	Noise eval.Noise

	killers killerTable
	history historyTable

	nodes    uint64
	seldepth int

	stop     atomic.Bool
	deadline func() bool // returns true once the hard/soft time budget is exhausted

	rootPly int // b.Ply() at the start of this search, subtracted to get search-relative ply
}

// NewSearcher builds a Searcher around an evaluator and transposition table that outlive
// any single search (typically one engine-lifetime instance of each, reused across moves).
func NewSearcher(e eval.Evaluator, tt hashtable.TranspositionTable) *Searcher {
	return &Searcher{Eval: e, TT: tt}
}

// reset prepares the heuristic tables and counters for a new root search and starts a new
// transposition-table generation when the table supports one. The killer and history
// tables persist across searches: history is aged, killers are kept as they are, and
// neither is cleared.
func (s *Searcher) reset(b *board.Board, deadline func() bool) {
	if g, ok := s.TT.(interface{ NewGeneration() }); ok {
		g.NewGeneration()
	}
	s.history.age()
	s.nodes = 0
	s.seldepth = 0
	s.stop.Store(false)
	s.deadline = deadline
	s.rootPly = b.Ply()
}

// searchPly is the ply of b relative to the start of this search, used for mate-distance
// scoring and the killer table index.
func (s *Searcher) searchPly(b *board.Board) int {
	return b.Ply() - s.rootPly
}

// halted reports whether the search should unwind: either s.stop is already set, or the
// deadline func reports an explicit Halt, a cancelled context or the time/node budget
// running out. The deadline is checked every nodeCheckInterval visited nodes, and a true
// result is latched into s.stop.
func (s *Searcher) halted() bool {
	if s.stop.Load() {
		return true
	}
	if s.nodes%nodeCheckInterval == 0 && s.deadline != nil && s.deadline() {
		s.stop.Store(true)
		return true
	}
	return false
}

func (s *Searcher) drawScore() eval.Score {
	return eval.DrawScore + s.Noise.Sample()
}
