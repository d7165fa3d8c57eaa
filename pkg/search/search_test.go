package search_test

import (
	"context"
	"testing"

	"github.com/corvid-engine/corvid/pkg/board"
	"github.com/corvid-engine/corvid/pkg/board/fen"
	"github.com/corvid-engine/corvid/pkg/eval"
	"github.com/corvid-engine/corvid/pkg/hashtable"
	"github.com/corvid-engine/corvid/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSearcher() *search.Searcher {
	ctx := context.Background()
	tt := hashtable.New(ctx, 1<<20)
	return search.NewSearcher(eval.NewClassical(1<<16), tt)
}

func TestFixedDepthFindsMateInOne(t *testing.T) {
	ctx := context.Background()

	// White to play Ra8#: the king on g8 has no escape square, all blocked by its own
	// pawns, and nothing can interpose or capture the rook along the back rank.
	b, err := fen.Decode(board.DefaultKeys, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	require.NoError(t, err)

	s := newSearcher()
	pv := s.FixedDepth(ctx, b, 3)

	require.NotEmpty(t, pv.Moves)
	assert.Equal(t, "a1a8", pv.Moves[0].String())

	md, ok := pv.Score.MateDistance()
	require.True(t, ok, "expected a mate score, got %v", pv.Score)
	assert.Equal(t, 1, md)
}

func TestFixedDepthFindsHangingQueen(t *testing.T) {
	ctx := context.Background()

	// Black's queen on d4 is undefended and sits on the same open file as White's queen:
	// Qxd4 wins it outright with nothing else competitive at this depth.
	b, err := fen.Decode(board.DefaultKeys, "4k3/8/8/8/3q4/8/8/3QK3 w - - 0 1")
	require.NoError(t, err)

	s := newSearcher()
	pv := s.FixedDepth(ctx, b, 3)

	require.NotEmpty(t, pv.Moves)
	assert.Equal(t, "d1d4", pv.Moves[0].String())
	assert.Greater(t, pv.Score, eval.Score(500))
}

func TestFixedDepthScoresBareKingsAsDraw(t *testing.T) {
	ctx := context.Background()

	// A lone king vs king endgame: any search depth must resolve to a draw score, since
	// neither side has enough material to force mate.
	b, err := fen.Decode(board.DefaultKeys, "8/8/8/4k3/8/4K3/8/8 w - - 0 1")
	require.NoError(t, err)

	s := newSearcher()
	pv := s.FixedDepth(ctx, b, 4)

	assert.Equal(t, eval.DrawScore, pv.Score)
}

func TestSearchDoesNotPanicFromStartPosition(t *testing.T) {
	ctx := context.Background()
	b, err := fen.Decode(board.DefaultKeys, fen.Initial)
	require.NoError(t, err)

	s := newSearcher()
	pv := s.FixedDepth(ctx, b, 3)

	require.NotEmpty(t, pv.Moves)
	assert.Equal(t, 3, pv.Depth)
}
