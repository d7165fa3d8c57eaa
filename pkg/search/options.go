package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/corvid-engine/corvid/pkg/board"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Options hold the dynamic, per-search limits a caller (typically the UCI front end) may
// set on a given Launch.
type Options struct {
	DepthLimit  lang.Optional[int]
	NodesLimit  lang.Optional[uint64]
	MoveTime    lang.Optional[time.Duration] // fixed time for this move, overriding TimeControl
	TimeControl lang.Optional[TimeControl]
	Infinite    bool // search until Halt, ignoring every other limit
}

func (o Options) String() string {
	var parts []string
	if v, ok := o.DepthLimit.V(); ok {
		parts = append(parts, fmt.Sprintf("depth=%v", v))
	}
	if v, ok := o.NodesLimit.V(); ok {
		parts = append(parts, fmt.Sprintf("nodes=%v", v))
	}
	if v, ok := o.MoveTime.V(); ok {
		parts = append(parts, fmt.Sprintf("movetime=%v", v))
	}
	if v, ok := o.TimeControl.V(); ok {
		parts = append(parts, fmt.Sprintf("time=%v", v))
	}
	if o.Infinite {
		parts = append(parts, "infinite")
	}
	return fmt.Sprintf("[%v]", strings.Join(parts, ", "))
}

// TimeControl is the UCI "go wtime/btime/winc/binc/movestogo" clock state.
type TimeControl struct {
	White, Black       time.Duration
	WhiteInc, BlackInc time.Duration
	MovesToGo          int // 0 == rest of game
}

// Limits returns the soft and hard time budget for a move by c. Past the soft limit no
// new iterative-deepening depth is started; the hard limit is enforced as an absolute
// cutoff regardless of search progress.
func (t TimeControl) Limits(c board.Color) (time.Duration, time.Duration) {
	remainder, inc := t.White, t.WhiteInc
	if c == board.Black {
		remainder, inc = t.Black, t.BlackInc
	}

	moves := time.Duration(40)
	if t.MovesToGo > 0 {
		moves = time.Duration(t.MovesToGo) + 1
	}

	soft := remainder/(2*moves) + inc/2
	hard := 3 * soft
	return soft, hard
}

func (t TimeControl) String() string {
	if t.MovesToGo == 0 {
		return fmt.Sprintf("%.1f<>%.1f", t.White.Seconds(), t.Black.Seconds())
	}
	return fmt.Sprintf("%.1f<>%.1f[moves=%v]", t.White.Seconds(), t.Black.Seconds(), t.MovesToGo)
}
