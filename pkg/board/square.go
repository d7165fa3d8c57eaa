// Package board contains the chess position representation, move generation, static
// exchange evaluation and Zobrist hashing that sit underneath search and evaluation.
package board

import "fmt"

// Square identifies one of the 64 squares, A1=0 .. H8=63. This matches a little-endian
// rank-file bitboard mapping, so North is "<<8" and East is "<<1".
//
//	56 57 58 59 60 61 62 63   (rank 8)
//	48 49 50 51 52 53 54 55
//	40 41 42 43 44 45 46 47
//	32 33 34 35 36 37 38 39
//	24 25 26 27 28 29 30 31
//	16 17 18 19 20 21 22 23
//	 8  9 10 11 12 13 14 15
//	 0  1  2  3  4  5  6  7   (rank 1)
type Square uint8

const (
	ZeroSquare Square = 0
	NumSquares Square = 64
	NoSquare   Square = 64 // sentinel: not a valid square
)

// NewSquare builds a square from a zero-based file (0=a..7=h) and rank (0=1..7=8).
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

func (s Square) File() int { return int(s) & 7 }
func (s Square) Rank() int { return int(s) >> 3 }

// IsValid reports whether s is a real board square (as opposed to NoSquare).
func (s Square) IsValid() bool { return s < NumSquares }

func ParseSquare(str string) (Square, error) {
	if len(str) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %q", str)
	}
	f := str[0]
	r := str[1]
	if f < 'a' || f > 'h' || r < '1' || r > '8' {
		return NoSquare, fmt.Errorf("invalid square: %q", str)
	}
	return NewSquare(int(f-'a'), int(r-'1')), nil
}

func (s Square) String() string {
	if !s.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+byte(s.File()), '1'+byte(s.Rank()))
}

// Rank/File masks, by index 0..7.
const (
	FileA = 0
	FileB = 1
	FileC = 2
	FileD = 3
	FileE = 4
	FileF = 5
	FileG = 6
	FileH = 7

	Rank1 = 0
	Rank2 = 1
	Rank3 = 2
	Rank4 = 3
	Rank5 = 4
	Rank6 = 5
	Rank7 = 6
	Rank8 = 7
)
