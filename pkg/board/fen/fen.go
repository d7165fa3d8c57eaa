// Package fen reads and writes chess positions in Forsyth-Edwards Notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/corvid-engine/corvid/pkg/board"
)

const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode parses a FEN record into a ready-to-use Board.
//
// Example:
//
//	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
func Decode(keys *board.Keys, f string) (*board.Board, error) {
	// A FEN record has six space-separated fields.
	parts := strings.Split(strings.TrimSpace(f), " ")
	if len(parts) != 6 {
		return nil, fmt.Errorf("fen: invalid number of sections: %q", f)
	}

	// (1) Piece placement, rank 8 down to rank 1, file a through h within each rank.
	var placements []board.Placement
	rank, file := 7, 0
	for _, r := range parts[0] {
		switch {
		case r == '/':
			if file != 8 {
				return nil, fmt.Errorf("fen: short rank: %q", f)
			}
			rank--
			file = 0

		case unicode.IsDigit(r):
			file += int(r - '0')

		case unicode.IsLetter(r):
			piece, ok := board.ParsePieceKind(byte(r))
			if !ok || file >= 8 || rank < 0 {
				return nil, fmt.Errorf("fen: invalid piece placement: %q", f)
			}
			color := board.Black
			if unicode.IsUpper(r) {
				color = board.White
			}
			placements = append(placements, board.Placement{
				Square: board.NewSquare(file, rank),
				Color:  color,
				Piece:  piece,
			})
			file++

		default:
			return nil, fmt.Errorf("fen: invalid character in placement: %q", f)
		}
	}
	if rank != 0 || file != 8 {
		return nil, fmt.Errorf("fen: wrong number of ranks or squares: %q", f)
	}

	// (2) Active color: "w" or "b".
	turn, ok := parseColor(parts[1])
	if !ok {
		return nil, fmt.Errorf("fen: invalid active color: %q", f)
	}

	// (3) Castling availability: "-", or one or more of "KQkq".
	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, fmt.Errorf("fen: invalid castling rights: %q", f)
	}

	// (4) En-passant target square, or "-".
	ep := board.NoSquare
	if parts[3] != "-" {
		sq, err := board.ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("fen: invalid en-passant square: %q", f)
		}
		ep = sq
	}

	// (5) Halfmove clock since the last pawn move or capture.
	halfmove, err := strconv.Atoi(parts[4])
	if err != nil || halfmove < 0 {
		return nil, fmt.Errorf("fen: invalid halfmove clock: %q", f)
	}

	// (6) Fullmove number, starting at 1 and incremented after Black's move.
	fullmove, err := strconv.Atoi(parts[5])
	if err != nil || fullmove < 1 {
		return nil, fmt.Errorf("fen: invalid fullmove number: %q", f)
	}

	return board.NewBoard(keys, placements, turn, castling, ep, halfmove, fullmove), nil
}

// Encode renders b as a FEN record.
func Encode(b *board.Board) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		blanks := 0
		for file := 0; file < 8; file++ {
			color, piece, ok := b.Piece(board.NewSquare(file, rank))
			if !ok {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteByte(letter(color, piece))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	ep := "-"
	if sq, ok := b.EnPassant(); ok {
		ep = sq.String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v",
		sb.String(), b.Turn(), b.Castling(), ep, b.HalfmoveClock(), b.FullMoveNumber())
}

func parseColor(s string) (board.Color, bool) {
	switch s {
	case "w", "W":
		return board.White, true
	case "b", "B":
		return board.Black, true
	default:
		return 0, false
	}
}

func parseCastling(s string) (board.Castling, bool) {
	if s == "-" {
		return board.NoCastling, true
	}
	var ret board.Castling
	for _, r := range s {
		switch r {
		case 'K':
			ret |= board.WhiteShort
		case 'Q':
			ret |= board.WhiteLong
		case 'k':
			ret |= board.BlackShort
		case 'q':
			ret |= board.BlackLong
		default:
			return 0, false
		}
	}
	return ret, true
}

func letter(c board.Color, p board.PieceKind) byte {
	s := p.String()[0]
	if c == board.White {
		return s - ('a' - 'A')
	}
	return s
}
