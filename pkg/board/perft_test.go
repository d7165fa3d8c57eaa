package board_test

import (
	"testing"

	"github.com/corvid-engine/corvid/pkg/board"
	"github.com/corvid-engine/corvid/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPerft checks the move generator against known leaf-node counts. These are the
// standard perft vectors, including Kiwipete and the Fine #70-adjacent tactical positions
// that stress castling, en passant, promotion and pinned-piece discovery together.
func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
		nodes uint64
	}{
		{"startpos", fen.Initial, 5, 4865609},
		{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 4, 4085603},
		{"rook-endgame", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 5, 674624},
		{"promotion-heavy", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 4, 422333},
		{"discovered-check", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 0 1", 3, 62379},
		{"open-center", "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 1", 3, 89890},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := fen.Decode(board.DefaultKeys, tt.fen)
			require.NoError(t, err)

			assert.Equal(t, tt.nodes, b.Perft(tt.depth))
		})
	}
}

// TestDivideSumsToPerft checks that Divide's per-root-move subtotals always sum back to
// the same total Perft reports, so a diverging root move can be isolated with confidence.
func TestDivideSumsToPerft(t *testing.T) {
	b, err := fen.Decode(board.DefaultKeys, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	want := b.Perft(3)

	entries := b.Divide(3)
	var got uint64
	for _, e := range entries {
		got += e.Nodes
	}
	assert.Equal(t, want, got)
}
