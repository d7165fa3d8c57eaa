// Package eval contains static position evaluation: the classical hand-tuned evaluator
// and, behind the same interface, the NNUE evaluator in the nnue subpackage.
package eval

import (
	"fmt"

	"github.com/corvid-engine/corvid/pkg/board"
)

// Score is a signed centipawn score from the perspective of the side to move, unless
// documented otherwise (White's perspective is used internally by the classical terms,
// then flipped once at the root). Mate scores are encoded as MateScore minus the number
// of plies to the mate, so shorter mates always compare as more extreme.
type Score int32

const (
	// MateScore is the base magnitude for a forced mate, matching the original engine's
	// Constants.h so ply-relative TT rebasing lines up with the same threshold everywhere.
	MateScore    Score = 32000
	MaxScore     Score = MateScore + Score(board.MaxPlies)
	MinScore           = -MaxScore
	Inf                = MaxScore + 1
	NegInf             = MinScore - 1
	DrawScore    Score = 0
)

func (s Score) String() string {
	if mate, ok := s.MateDistance(); ok {
		if mate >= 0 {
			return fmt.Sprintf("mate %d", mate)
		}
		return fmt.Sprintf("mate %d", mate)
	}
	return fmt.Sprintf("cp %d", int32(s))
}

// Unit returns the signed unit for the color: 1 for White, -1 for Black. Evaluation terms
// computed from White's perspective are multiplied by Unit(turn) to get the side-to-move
// perspective PVS expects.
func Unit(c board.Color) Score {
	if c == board.White {
		return 1
	}
	return -1
}

// IsMate reports whether s encodes a forced mate in either direction.
func (s Score) IsMate() bool {
	return s >= MateScore-Score(board.MaxPlies) || s <= -MateScore+Score(board.MaxPlies)
}

// MateDistance returns the signed number of full moves to deliver (positive) or receive
// (negative) mate, if s is a mate score.
func (s Score) MateDistance() (int, bool) {
	switch {
	case s >= MateScore-Score(board.MaxPlies):
		plies := int(MateScore - s)
		return (plies + 1) / 2, true
	case s <= -MateScore+Score(board.MaxPlies):
		plies := int(MateScore + s)
		return -(plies + 1) / 2, true
	default:
		return 0, false
	}
}

// MatedIn builds the score for being mated in the given number of plies from the current node.
func MatedIn(ply int) Score {
	return -MateScore + Score(ply)
}

// MateIn builds the score for delivering mate in the given number of plies from the current node.
func MateIn(ply int) Score {
	return MateScore - Score(ply)
}

func Max(a, b Score) Score {
	if a > b {
		return a
	}
	return b
}

func Min(a, b Score) Score {
	if a < b {
		return a
	}
	return b
}

// Crop clamps s into [MinScore, MaxScore].
func Crop(s Score) Score {
	switch {
	case s > MaxScore:
		return MaxScore
	case s < MinScore:
		return MinScore
	default:
		return s
	}
}
