package hashtable_test

import (
	"context"
	"testing"

	"github.com/corvid-engine/corvid/pkg/board"
	"github.com/corvid-engine/corvid/pkg/hashtable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranspositionStoreProbeRoundTrip(t *testing.T) {
	ctx := context.Background()
	tt := hashtable.New(ctx, 1<<16)

	key := board.ZobristKey(0x1234)
	want := hashtable.Entry{Bound: hashtable.ExactBound, Depth: 4, Score: 120}

	tt.Store(key, 0, want)

	got, ok := tt.Probe(key)
	require.True(t, ok)
	assert.Equal(t, want.Bound, got.Bound)
	assert.Equal(t, want.Depth, got.Depth)
	assert.Equal(t, want.Score, got.Score)
}

func TestTranspositionProbeMissReturnsFalse(t *testing.T) {
	ctx := context.Background()
	tt := hashtable.New(ctx, 1<<16)

	_, ok := tt.Probe(board.ZobristKey(0xdead))
	assert.False(t, ok)
}

func TestNoTranspositionTableAlwaysMisses(t *testing.T) {
	var tt hashtable.NoTranspositionTable

	tt.Store(board.ZobristKey(1), 0, hashtable.Entry{Bound: hashtable.ExactBound, Depth: 10})

	_, ok := tt.Probe(board.ZobristKey(1))
	assert.False(t, ok)
	assert.Equal(t, uint64(0), tt.Size())
	assert.Equal(t, float64(0), tt.Used())
}

func TestRebaseScoreForStoreAndProbeRoundTrip(t *testing.T) {
	mate := hashtable.MateScore - 3 // mate in 3 plies from the root

	stored := hashtable.RebaseScoreForStore(mate, 5)
	probed := hashtable.RebaseScoreForProbe(stored, 5)

	assert.Equal(t, mate, probed)
}

func TestPawnCacheStoreProbeRoundTrip(t *testing.T) {
	c := hashtable.NewPawnCache(1 << 10)

	key := board.ZobristKey(0xabc)
	want := hashtable.PawnEntry{MG: 12, EG: -4}
	c.Store(key, want)

	got, ok := c.Probe(key)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestPawnCacheMissOnUnseenKey(t *testing.T) {
	c := hashtable.NewPawnCache(1 << 10)

	_, ok := c.Probe(board.ZobristKey(0x999))
	assert.False(t, ok)
}
