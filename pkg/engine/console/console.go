// Package console implements a line-oriented debugging front end for the engine: moves,
// FEN reset, undo and analysis, without the UCI protocol's command/response ceremony.
package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/corvid-engine/corvid/pkg/board"
	"github.com/corvid-engine/corvid/pkg/board/fen"
	"github.com/corvid-engine/corvid/pkg/engine"
	"github.com/corvid-engine/corvid/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

const ProtocolName = "console"

// Driver implements a console driver for debugging.
type Driver struct {
	iox.AsyncCloser

	e *engine.Engine

	out chan<- string

	active atomic.Bool // user is waiting for engine to move
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		e:           e,
		out:         out,
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "Console protocol initialized")

	d.out <- fmt.Sprintf("engine %v (%v)", d.e.Name(), d.e.Author())
	d.printBoard(ctx)

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
			case "reset", "r":
				// reset [<fenstring>] moves ...

				d.ensureInactive(ctx)

				pos := fen.Initial
				if len(args) > 0 && args[0] != "moves" {
					pos = strings.Join(args[0:6], " ")
				}
				if err := d.e.Reset(ctx, pos); err != nil {
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
				d.printBoard(ctx)

			case "undo", "u":
				d.ensureInactive(ctx)

				_ = d.e.TakeBack(ctx)
				d.printBoard(ctx)

			case "print", "p":
				d.printBoard(ctx)

			case "analyze", "a":
				d.ensureInactive(ctx)

				var opt search.Options
				if len(args) > 0 {
					if depth, err := strconv.Atoi(args[0]); err == nil {
						opt.DepthLimit = lang.Some(depth)
					}
				}

				out, err := d.e.Analyze(ctx, opt)
				if err != nil {
					logw.Errorf(ctx, "Analyze failed: %v", err)
					return
				}
				d.active.Store(true)

				go func() {
					var last search.PV
					for pv := range out {
						last = pv
						d.out <- pv.String()
					}
					d.searchCompleted(ctx, last)
				}()

			case "depth", "d":
				if len(args) > 0 {
					depth, _ := strconv.Atoi(args[0])
					d.e.SetDepth(uint(depth))
				}

			case "hash": // size in MB
				if len(args) > 0 {
					hash, _ := strconv.Atoi(args[0])
					d.e.SetHash(uint(hash))
				}

			case "nohash":
				d.e.SetHash(0)

			case "noise": // evaluation randomness in centipawns
				if len(args) > 0 {
					noise, _ := strconv.Atoi(args[0])
					d.e.SetNoise(uint(noise))
				}

			case "nonoise":
				d.e.SetNoise(0)

			case "halt", "stop":
				pv, err := d.e.Halt(ctx)
				if err == nil {
					d.searchCompleted(ctx, pv)
				}

			case "quit", "exit", "q":
				d.ensureInactive(ctx)
				return

			case "":
				// ignore empty command

			default:
				// Assume move if not a recognized command.

				d.ensureInactive(ctx)
				if err := d.e.Move(ctx, cmd); err != nil {
					d.out <- fmt.Sprintf("invalid move: '%v'", cmd)
				} else {
					d.printBoard(ctx)
				}
			}

		case <-d.Closed():
			d.ensureInactive(ctx)

			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func (d *Driver) ensureInactive(ctx context.Context) {
	d.active.Store(false)
	_, _ = d.e.Halt(ctx)
}

func (d *Driver) searchCompleted(ctx context.Context, pv search.PV) {
	if d.active.CompareAndSwap(true, false) {
		if len(pv.Moves) > 0 {
			d.out <- fmt.Sprintf("bestmove %v", pv.Moves[0])
		}
	} // else: stale or duplicate result
}

const (
	files      = "    a   b   c   d   e   f   g   h"
	horizontal = "  ---------------------------------"
	vertical   = " | "
)

func (d *Driver) printBoard(ctx context.Context) {
	b := d.e.Board()

	d.out <- ""
	d.out <- files
	d.out <- horizontal
	for rank := 7; rank >= 0; rank-- {
		var sb strings.Builder
		sb.WriteString(strconv.Itoa(rank+1) + vertical)
		for file := 0; file < 8; file++ {
			if color, piece, ok := b.Piece(board.NewSquare(file, rank)); ok {
				sb.WriteString(printPiece(color, piece))
			} else {
				sb.WriteString(" ")
			}
			sb.WriteString(vertical)
		}
		d.out <- sb.String()
		d.out <- horizontal
	}
	d.out <- files
	d.out <- ""
	d.out <- fmt.Sprintf("fen: %v", d.e.Position())
	d.out <- fmt.Sprintf("turn: %v, ply: %v, key: 0x%x", b.Turn(), b.Ply(), uint64(b.Key()))
	d.out <- ""
}

func printPiece(c board.Color, p board.PieceKind) string {
	if c == board.White {
		return strings.ToUpper(p.String())
	}
	return strings.ToLower(p.String())
}
