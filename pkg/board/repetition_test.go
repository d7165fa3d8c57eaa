package board_test

import (
	"testing"

	"github.com/corvid-engine/corvid/pkg/board"
	"github.com/corvid-engine/corvid/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIsRepetitionDrawAtGameRoot replays the classic Kg1-h2-g1 / Kg8-h7-g8 shuffle twice.
// The starting position recurs at ply 4 (its second occurrence) and ply 8 (its third): with
// searchPly 0 -- as if this were the root of a fresh search -- the draw claim requires the
// full two prior occurrences, so it must read false at ply 4 and true at ply 8.
func TestIsRepetitionDrawAtGameRoot(t *testing.T) {
	b, err := fen.Decode(board.DefaultKeys, "6k1/8/8/8/8/8/8/6K1 w - - 0 1")
	require.NoError(t, err)

	shuffle := []board.Move{
		board.NewMove(sq("g1"), sq("h2"), board.King, board.Normal, board.NoPiece, board.NoPiece),
		board.NewMove(sq("g8"), sq("h7"), board.King, board.Normal, board.NoPiece, board.NoPiece),
		board.NewMove(sq("h2"), sq("g1"), board.King, board.Normal, board.NoPiece, board.NoPiece),
		board.NewMove(sq("h7"), sq("g8"), board.King, board.Normal, board.NoPiece, board.NoPiece),
	}

	for _, m := range shuffle {
		b.MakeMove(m)
	}
	assert.False(t, b.IsRepetitionDraw(0), "starting position has only recurred once at ply 4")

	for _, m := range shuffle {
		b.MakeMove(m)
	}
	assert.True(t, b.IsRepetitionDraw(0), "starting position has now recurred a third time at ply 8")
}

// TestIsRepetitionDrawInsideSearchTree checks the relaxed in-tree rule: a position that
// recurs even once within the portion of history the search itself just played (ply <=
// searchPly) is treated as a draw immediately, since the opponent could force it again.
func TestIsRepetitionDrawInsideSearchTree(t *testing.T) {
	b, err := fen.Decode(board.DefaultKeys, "6k1/8/8/8/8/8/8/6K1 w - - 0 1")
	require.NoError(t, err)

	shuffle := []board.Move{
		board.NewMove(sq("g1"), sq("h2"), board.King, board.Normal, board.NoPiece, board.NoPiece),
		board.NewMove(sq("g8"), sq("h7"), board.King, board.Normal, board.NoPiece, board.NoPiece),
		board.NewMove(sq("h2"), sq("g1"), board.King, board.Normal, board.NoPiece, board.NoPiece),
		board.NewMove(sq("h7"), sq("g8"), board.King, board.Normal, board.NoPiece, board.NoPiece),
	}
	for _, m := range shuffle {
		b.MakeMove(m)
	}

	// The whole 4-ply shuffle happened inside this hypothetical search (searchPly >= 4),
	// so the single recurrence at ply 4 is enough to claim a draw.
	assert.True(t, b.IsRepetitionDraw(4))
}
