package board_test

import "github.com/corvid-engine/corvid/pkg/board"

// sq parses a square literal like "e4" for use in test tables; it panics on a malformed
// literal, which only ever happens if the literal itself is wrong.
func sq(s string) board.Square {
	v, err := board.ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return v
}
