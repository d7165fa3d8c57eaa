package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/corvid-engine/corvid/pkg/board"
	"github.com/corvid-engine/corvid/pkg/board/fen"
	"github.com/corvid-engine/corvid/pkg/eval"
	"github.com/corvid-engine/corvid/pkg/eval/nnue"
	"github.com/corvid-engine/corvid/pkg/hashtable"
	"github.com/corvid-engine/corvid/pkg/search"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 1, 0)

// Options are the engine's persistent configuration, settable via UCI "setoption" (or
// the console driver's equivalent commands).
type Options struct {
	// Depth is the default search depth limit. If zero, there is no limit; overridden by
	// per-search options if provided.
	Depth uint
	// Hash is the transposition table size in MB. If zero, no transposition table is used.
	Hash uint
	// Noise adds up to this many centipawns of randomness to leaf evaluations, so that
	// repeated self-play doesn't collapse onto one line.
	Noise uint
	// ClassicalEval forces the hand-tuned evaluator even when an NNUE network is loaded.
	ClassicalEval bool
	// NNUE_Path is the binary network file to load; empty falls back to ClassicalEval.
	NNUE_Path string
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%v, noise=%v, classical=%v, nnue=%q}",
		o.Depth, o.Hash, o.Noise, o.ClassicalEval, o.NNUE_Path)
}

// Engine encapsulates game-playing logic, search and evaluation: one current Board, one
// evaluator, one transposition table and one Launcher, all owned exclusively by it.
type Engine struct {
	name, author string

	searcher *search.Searcher
	launcher search.Launcher
	keys     *board.Keys
	seed     int64
	opts     Options

	b         *board.Board
	tt        hashtable.TranspositionTable
	evaluator eval.Evaluator
	active    search.Handle
	mu        sync.Mutex
}

// Option is an engine creation option.
type Option func(*Engine)

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithZobrist configures the engine to use the given random seed instead of the default
// of one, and to seed the leaf-evaluation noise source.
func WithZobrist(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

func New(ctx context.Context, name, author string, opts ...Option) *Engine {
	e := &Engine{
		name:   name,
		author: author,
		seed:   1,
	}
	for _, fn := range opts {
		fn(e)
	}
	e.keys = board.NewKeys(e.seed)

	_ = e.Reset(ctx, fen.Initial)

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

func (e *Engine) SetDepth(depth uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Depth = depth
}

func (e *Engine) SetHash(sizeMB uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Hash = sizeMB
	e.tt = newTranspositionTable(context.Background(), sizeMB)
	e.syncSearcher()
}

func (e *Engine) SetNoise(centipawns uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Noise = centipawns
	e.rebuildEvaluator(context.Background())
	e.syncSearcher()
}

// Board returns a clone of the current position, safe for the caller to inspect or
// search without racing the engine's own goroutine.
func (e *Engine) Board() *board.Board {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.b.Clone()
}

// Position returns the current position in FEN format.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fen.Encode(e.b)
}

// Reset resets the engine to a new starting position in FEN format.
func (e *Engine) Reset(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Reset %v, depth=%v, TT=%vMB, noise=%vcp", position, e.opts.Depth, e.opts.Hash, e.opts.Noise)

	e.haltSearchIfActive(ctx)

	b, err := fen.Decode(e.keys, position)
	if err != nil {
		return err
	}
	e.b = b
	e.tt = newTranspositionTable(ctx, e.opts.Hash)
	e.rebuildEvaluator(ctx)
	e.syncSearcher()

	logw.Infof(ctx, "New board: %v", e.b)
	return nil
}

// syncSearcher points the persistent Searcher (and its killer/history heuristics, which
// must survive across searches) at the engine's current evaluator and transposition
// table. Must be called with e.mu held, after e.evaluator/e.tt are assigned.
func (e *Engine) syncSearcher() {
	if e.searcher == nil {
		e.searcher = search.NewSearcher(e.evaluator, e.tt)
		e.launcher = &search.Iterative{Searcher: e.searcher}
		return
	}
	e.searcher.Eval = e.evaluator
	e.searcher.TT = e.tt
}

func newTranspositionTable(ctx context.Context, sizeMB uint) hashtable.TranspositionTable {
	if sizeMB == 0 {
		return hashtable.NoTranspositionTable{}
	}
	return hashtable.New(ctx, uint64(sizeMB)<<20)
}

// rebuildEvaluator picks NNUE over Classical when a network path is configured and
// loads cleanly, falling back to Classical (with the caller's requested noise) otherwise.
// Must be called with e.mu held.
func (e *Engine) rebuildEvaluator(ctx context.Context) {
	if !e.opts.ClassicalEval && e.opts.NNUE_Path != "" {
		if net, err := nnue.Load(e.opts.NNUE_Path); err == nil {
			impl := nnue.New(net)
			impl.Reset(e.b)
			e.evaluator = impl
			return
		} else {
			logw.Warningf(ctx, "Failed to load NNUE network %v, falling back to classical: %v", e.opts.NNUE_Path, err)
		}
	}

	classical := eval.NewClassical(1 << 16)
	classical.Noise = eval.NewNoise(int(e.opts.Noise), e.seed)
	e.evaluator = classical
}

// Move selects the given move, usually an opponent move, specified in long algebraic
// notation (e.g. "e2e4", "a7a8q").
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltSearchIfActive(ctx)

	for _, m := range e.b.GenerateLegalMoves() {
		if m.String() != move {
			continue
		}

		e.b.MakeMove(m)
		e.evaluator.PushMove(e.b, m)

		logw.Infof(ctx, "Move %v: %v", m, e.b)
		return nil
	}
	return fmt.Errorf("invalid move: %v", move)
}

// TakeBack undoes the latest move.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltSearchIfActive(ctx)

	if e.b.Ply() == 0 {
		return fmt.Errorf("no move to take back")
	}

	m := e.b.TakeMove()
	e.evaluator.PopMove(e.b)

	logw.Infof(ctx, "Takeback %v", m)
	return nil
}

// Analyze starts a search of the current position, using opt.DepthLimit if set, else the
// engine's configured default depth.
func (e *Engine) Analyze(ctx context.Context, opt search.Options) (<-chan search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := opt.DepthLimit.V(); !ok && e.opts.Depth > 0 {
		opt.DepthLimit = lang.Some(int(e.opts.Depth))
	}

	logw.Infof(ctx, "Analyze %v, opt=%v", e.b, opt)

	if e.active != nil {
		return nil, fmt.Errorf("search already active")
	}

	handle, out := e.launcher.Launch(ctx, e.b.Clone(), opt)
	e.active = handle
	return out, nil
}

// Halt halts the active search and returns the principal variation, if any.
func (e *Engine) Halt(ctx context.Context) (search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pv, ok := e.haltSearchIfActive(ctx)
	if !ok {
		return search.PV{}, fmt.Errorf("no active search")
	}
	return pv, nil
}

func (e *Engine) haltSearchIfActive(ctx context.Context) (search.PV, bool) {
	if e.active != nil {
		pv := e.active.Halt()
		logw.Infof(ctx, "Search %v halted: %v", e.b, pv)

		e.active = nil
		return pv, true
	}
	return search.PV{}, false
}
