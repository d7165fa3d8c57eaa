// Package search implements iterative-deepening principal variation search over a
// board.Board, using an eval.Evaluator for leaf scoring and a hashtable.TranspositionTable
// for move ordering, cutoffs and PV reconstruction.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/corvid-engine/corvid/pkg/board"
	"github.com/corvid-engine/corvid/pkg/eval"
)

// ErrHalted names the case of a search stopped before it produced a result at the
// requested depth, via an external Halt or a time/node budget running out. No function in
// this package returns it: a halted iteration is reported by searchIteration's halted
// result instead.
var ErrHalted = errors.New("search halted")

// PV is the principal variation found at one completed iterative-deepening depth.
type PV struct {
	Depth int
	Moves []board.Move
	Score eval.Score
	Nodes uint64
	Time  time.Duration
	Hash  float64 // transposition table fill fraction, [0,1]
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v hash=%.1f%% pv=%v",
		p.Depth, p.Score, p.Nodes, p.Time, 100*p.Hash, p.Moves)
}

// Launcher starts a new iterative-deepening search from a position. The board is
// expected to be exclusively owned by the search until the handle is halted or the PV
// channel closes.
type Launcher interface {
	Launch(ctx context.Context, b *board.Board, opt Options) (Handle, <-chan PV)
}

// Handle lets the owner stop an in-flight search and retrieve its best completed PV.
type Handle interface {
	// Halt stops the search, if running, and returns the best PV found so far. Idempotent.
	Halt() PV
}
