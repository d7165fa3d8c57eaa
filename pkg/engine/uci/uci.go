// Package uci contains a driver for using the engine under the UCI protocol.
//
// See: http://wbec-ridderkerk.nl/html/UCIProtocol.html
// See: https://en.wikipedia.org/wiki/Universal_Chess_Interface
package uci

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/corvid-engine/corvid/pkg/board/fen"
	"github.com/corvid-engine/corvid/pkg/engine"
	"github.com/corvid-engine/corvid/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"go.uber.org/atomic"
)

const ProtocolName = "uci"

// Driver implements a UCI driver for an engine. It is activated if sent "uci".
type Driver struct {
	e *engine.Engine

	out chan<- string

	active       atomic.Bool    // user is waiting for engine to move
	ponder       chan search.PV // chan for intermediate search information
	lastPosition string         // last position line (empty if no last position)

	quit   chan struct{}
	closed atomic.Bool
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		e:      e,
		out:    out,
		ponder: make(chan search.PV, 400),
		quit:   make(chan struct{}),
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) Close() {
	if d.closed.CompareAndSwap(false, true) {
		close(d.quit)
	}
}

func (d *Driver) Closed() <-chan struct{} {
	return d.quit
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	// * uci
	//
	//	tell engine to use the uci (universal chess interface),
	//	this will be send once as a first command after program boot
	//	to tell the engine to switch to uci mode.
	//	After receiving the uci command the engine must identify itself with the "id" command
	//	and sent the "option" commands to tell the GUI which engine settings the engine supports if any.
	//	After that the engine should sent "uciok" to acknowledge the uci mode.
	//	If no uciok is sent within a certain time period, the engine task will be killed by the GUI.

	logw.Infof(ctx, "UCI protocol initialized")

	// * id
	//	* name <x>
	//		this must be sent after receiving the "uci" command to identify the engine.
	//	* author <x>
	//		this must be sent after receiving the "uci" command to identify the engine.

	d.out <- fmt.Sprintf("id name %v", d.e.Name())
	d.out <- fmt.Sprintf("id author %v", d.e.Author())

	// * option
	//
	//	This command tells the GUI which parameters can be changed in the engine.

	d.out <- "option name Hash type spin default 0 min 0 max 65536"
	d.out <- "option name Noise type spin default 0 min 0 max 1000"
	d.out <- "option name Clear Hash type button"

	// * uciok
	//
	//	Must be sent after the id and optional options to tell the GUI that the engine
	//	has sent all infos and is ready in uci mode.

	d.out <- "uciok"

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			parts := strings.Split(strings.TrimSpace(line), " ")
			if len(parts) == 0 {
				break
			}

			cmd := parts[0]
			args := parts[1:]

			switch strings.ToLower(cmd) {
			case "isready":
				// This is used to synchronize the engine with the GUI: must always be
				// answered with "readyok", even while the engine is calculating.

				d.out <- "readyok"

			case "debug":
				// Toggle extra "info string" diagnostics; not implemented.

			case "setoption":
				// * setoption name <id> [value <x>]

				var name, value string
				if len(args) > 1 {
					name = args[1]
				}
				if len(args) > 3 {
					value = args[3]
				}

				switch name {
				case "Hash":
					if n, err := strconv.Atoi(value); err == nil && n >= 0 {
						d.e.SetHash(uint(n))
					}
				case "Noise":
					if n, err := strconv.Atoi(value); err == nil && n >= 0 {
						d.e.SetNoise(uint(n))
					}
				case "Clear":
					if len(args) > 2 && args[2] == "Hash" {
						d.e.SetHash(d.e.Options().Hash)
					}
				}

			case "register":
				// Registration is not required by this engine.

			case "ucinewgame":
				// Sent before the next search will be from a different game; the engine
				// should not rely on ever seeing it.

				d.ensureInactive(ctx)
				d.lastPosition = ""

			case "position":
				// * position [fen <fenstring> | startpos ]  moves <move1> .... <movei>

				d.ensureInactive(ctx)

				if d.lastPosition != "" && strings.HasPrefix(line, d.lastPosition) {
					// Continuation of game.

					moves := strings.TrimSpace(strings.TrimPrefix(line, d.lastPosition))
					for _, arg := range strings.Split(moves, " ") {
						if arg == "moves" || arg == "" {
							continue
						}

						if err := d.e.Move(ctx, arg); err != nil {
							logw.Errorf(ctx, "Invalid position move '%v': %v: %v", arg, line, err)
							return
						}
					}

					d.lastPosition = line
					break
				}

				// New position.

				position := fen.Initial
				if len(args) >= 7 && args[0] == "fen" {
					position = strings.Join(args[1:7], " ")
				}

				if err := d.e.Reset(ctx, position); err != nil {
					logw.Errorf(ctx, "Invalid position: %v", line)
					return
				}

				move := false
				for _, arg := range args {
					if arg == "moves" {
						move = true
						continue
					}
					if !move {
						continue
					}

					if err := d.e.Move(ctx, arg); err != nil {
						logw.Errorf(ctx, "Invalid position move '%v': %v: %v", arg, line, err)
						return
					}
				}
				d.lastPosition = line

			case "go":
				// * go [searchmoves ...] [ponder] [wtime x] [btime x] [winc x] [binc x]
				//      [movestogo x] [depth x] [nodes x] [mate x] [movetime x] [infinite]

				d.ensureInactive(ctx)

				opt, err := parseGo(args)
				if err != nil {
					logw.Errorf(ctx, "Invalid go command %q: %v", line, err)
					return
				}

				out, err := d.e.Analyze(ctx, opt)
				if err != nil {
					logw.Errorf(ctx, "Analyze failed: %v", err)
					return
				}
				d.active.Store(true)

				// Forward ponder info. Complete search if it ends, unless infinite.

				go func() {
					var last search.PV
					for pv := range out {
						last = pv
						d.ponder <- pv
					}
					if !opt.Infinite {
						d.searchCompleted(ctx, last)
					}
				}()

			case "stop":
				// Stop calculating as soon as possible; a "bestmove" must still follow.

				pv, err := d.e.Halt(ctx)
				if err == nil {
					d.searchCompleted(ctx, pv)
				}

			case "ponderhit":
				// The opponent played the expected ponder move; this driver does not
				// distinguish ponder search from normal search, so there is nothing to do.

			case "quit":
				return

			default:
				logw.Warningf(ctx, "Unknown command '%v': %v", cmd, args)
			}

		case pv := <-d.ponder:
			// "info depth 2 score cp 214 nodes 2124 time 1242 nps 1710 hashfull 0 pv e2e4 e7e5 g1f3"

			if d.active.Load() {
				d.out <- printPV(pv)
			}

		case <-d.quit:
			d.ensureInactive(ctx)

			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

// parseGo turns a UCI "go" argument list into search.Options, per section 6's
// abstract time-control surface. Unknown tokens (searchmoves, ponder, mate) are
// accepted and ignored, matching original_source's Uci.cpp parameter surface.
func parseGo(args []string) (search.Options, error) {
	var opt search.Options
	var tc search.TimeControl
	haveTC := false

	next := func(i *int) (string, error) {
		*i++
		if *i >= len(args) {
			return "", fmt.Errorf("missing argument")
		}
		return args[*i], nil
	}
	nextInt := func(i *int) (int, error) {
		s, err := next(i)
		if err != nil {
			return 0, err
		}
		return strconv.Atoi(s)
	}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			n, err := nextInt(&i)
			if err != nil {
				return opt, err
			}
			opt.DepthLimit = lang.Some(n)
		case "nodes":
			n, err := nextInt(&i)
			if err != nil {
				return opt, err
			}
			opt.NodesLimit = lang.Some(uint64(n))
		case "movetime":
			n, err := nextInt(&i)
			if err != nil {
				return opt, err
			}
			opt.MoveTime = lang.Some(time.Duration(n) * time.Millisecond)
		case "wtime":
			n, err := nextInt(&i)
			if err != nil {
				return opt, err
			}
			tc.White = time.Duration(n) * time.Millisecond
			haveTC = true
		case "btime":
			n, err := nextInt(&i)
			if err != nil {
				return opt, err
			}
			tc.Black = time.Duration(n) * time.Millisecond
			haveTC = true
		case "winc":
			n, err := nextInt(&i)
			if err != nil {
				return opt, err
			}
			tc.WhiteInc = time.Duration(n) * time.Millisecond
			haveTC = true
		case "binc":
			n, err := nextInt(&i)
			if err != nil {
				return opt, err
			}
			tc.BlackInc = time.Duration(n) * time.Millisecond
			haveTC = true
		case "movestogo":
			n, err := nextInt(&i)
			if err != nil {
				return opt, err
			}
			tc.MovesToGo = n
			haveTC = true
		case "infinite":
			opt.Infinite = true
		default:
			// searchmoves's move list, ponder, mate-in-N and any other token this
			// driver doesn't act on: silently ignored, matching the rest of the
			// engine's minimal go-parameter surface.
		}
	}

	if haveTC {
		opt.TimeControl = lang.Some(tc)
	}
	return opt, nil
}

func (d *Driver) ensureInactive(ctx context.Context) {
	d.active.Store(false)
	_, _ = d.e.Halt(ctx)
}

func (d *Driver) searchCompleted(ctx context.Context, pv search.PV) {
	if d.active.CompareAndSwap(true, false) {
		// * bestmove <move1> [ ponder <move2> ]
		//
		//	the engine has stopped searching and found the move <move> best in this
		//	position; this must always be sent if the engine stops searching.

		if len(pv.Moves) > 0 {
			d.out <- printPV(pv)
			d.out <- fmt.Sprintf("bestmove %v", pv.Moves[0])
		} else {
			// No PV: position is checkmate or stalemate.

			d.out <- "bestmove 0000"
		}
	} // else: stale or duplicate result
}

func printPV(pv search.PV) string {
	parts := []string{"info"}
	parts = append(parts, fmt.Sprintf("depth %v", pv.Depth))
	if mate, ok := pv.Score.MateDistance(); ok {
		parts = append(parts, fmt.Sprintf("score mate %v", mate))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %v", int(pv.Score)))
	}
	if pv.Nodes > 0 {
		parts = append(parts, fmt.Sprintf("nodes %v", pv.Nodes))
	}
	if pv.Time > 0 {
		parts = append(parts, fmt.Sprintf("time %v", pv.Time.Milliseconds()))
	}
	if pv.Nodes > 0 && pv.Time > 0 {
		parts = append(parts, fmt.Sprintf("nps %v", uint64(time.Second)*pv.Nodes/uint64(pv.Time)))
	}
	parts = append(parts, fmt.Sprintf("hashfull %v", int(1000*pv.Hash)))
	if len(pv.Moves) > 0 {
		strs := make([]string, len(pv.Moves))
		for i, m := range pv.Moves {
			strs[i] = m.String()
		}
		parts = append(parts, "pv")
		parts = append(parts, strings.Join(strs, " "))
	}

	return strings.Join(parts, " ")
}
