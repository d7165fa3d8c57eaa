package eval_test

import (
	"context"
	"testing"

	"github.com/corvid-engine/corvid/pkg/board"
	"github.com/corvid-engine/corvid/pkg/board/fen"
	"github.com/corvid-engine/corvid/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEvaluateIsMirrorSymmetric checks that flipping a position top-to-bottom and
// swapping every piece's color (so the side that was ahead is still ahead, now playing
// the other color) gives the same evaluation from the new side to move's perspective.
// Every term Classical computes -- material, piece-square placement, mobility, pawn
// structure, king safety, rook files, the bishop pair -- must be symmetric under this
// transform, since none of them may depend on which color is which, only on the
// position's shape relative to the side to move.
func TestEvaluateIsMirrorSymmetric(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name, fen, mirror string
	}{
		{
			name:   "lone-extra-pawn",
			fen:    "4k3/8/8/8/3P4/8/8/4K3 w - - 0 1",
			mirror: "4k3/8/8/3p4/8/8/8/4K3 b - - 0 1",
		},
		{
			name:   "symmetric-minor-pieces",
			fen:    "r1bqk2r/pppp1ppp/2n2n2/2b1p3/2B1P3/2N2N2/PPPP1PPP/R1BQK2R w KQkq - 0 1",
			mirror: "r1bqk2r/pppp1ppp/2n2n2/2b1p3/2B1P3/2N2N2/PPPP1PPP/R1BQK2R b KQkq - 0 1",
		},
		{
			name:   "pawn-structure",
			fen:    "4k3/pp3ppp/8/2p5/2P5/8/PP3PPP/4K3 w - - 0 1",
			mirror: "4k3/pp3ppp/8/2p5/2P5/8/PP3PPP/4K3 b - - 0 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := fen.Decode(board.DefaultKeys, tt.fen)
			require.NoError(t, err)

			m, err := fen.Decode(board.DefaultKeys, tt.mirror)
			require.NoError(t, err)

			ce := eval.NewClassical(1 << 10)
			cm := eval.NewClassical(1 << 10)

			assert.Equal(t, ce.Evaluate(ctx, b), cm.Evaluate(ctx, m))
		})
	}
}

func TestEvaluateDrawsOnInsufficientMaterial(t *testing.T) {
	ctx := context.Background()

	b, err := fen.Decode(board.DefaultKeys, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	c := eval.NewClassical(1 << 10)
	assert.Equal(t, eval.DrawScore, c.Evaluate(ctx, b))
}

func TestEvaluateFavorsMaterialAdvantage(t *testing.T) {
	ctx := context.Background()

	b, err := fen.Decode(board.DefaultKeys, "4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	require.NoError(t, err)

	c := eval.NewClassical(1 << 10)
	assert.Greater(t, c.Evaluate(ctx, b), eval.Score(800))
}

func TestNominalValueGain(t *testing.T) {
	from, err := board.ParseSquare("e4")
	require.NoError(t, err)
	to, err := board.ParseSquare("d5")
	require.NoError(t, err)

	m := board.NewMove(from, to, board.Pawn, board.Capture, board.Knight, board.NoPiece)
	assert.Equal(t, eval.NominalValue(board.Knight), eval.NominalValueGain(m))
}
