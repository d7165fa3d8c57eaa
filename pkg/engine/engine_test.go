package engine_test

import (
	"context"
	"testing"

	"github.com/corvid-engine/corvid/pkg/board/fen"
	"github.com/corvid-engine/corvid/pkg/engine"
	"github.com/corvid-engine/corvid/pkg/search"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToInitialPosition(t *testing.T) {
	ctx := context.Background()

	e := engine.New(ctx, "corvid-test", "tester")
	assert.Equal(t, fen.Initial, e.Position())
}

func TestResetInvalidFEN(t *testing.T) {
	ctx := context.Background()

	e := engine.New(ctx, "corvid-test", "tester")
	assert.Error(t, e.Reset(ctx, "not a fen string"))
}

func TestMoveAndTakeBack(t *testing.T) {
	ctx := context.Background()

	e := engine.New(ctx, "corvid-test", "tester")
	require.NoError(t, e.Move(ctx, "e2e4"))
	assert.NotEqual(t, fen.Initial, e.Position())

	require.NoError(t, e.TakeBack(ctx))
	assert.Equal(t, fen.Initial, e.Position())
}

func TestMoveInvalid(t *testing.T) {
	ctx := context.Background()

	e := engine.New(ctx, "corvid-test", "tester")
	assert.Error(t, e.Move(ctx, "e2e5"))
}

func TestTakeBackWithoutMoveFails(t *testing.T) {
	ctx := context.Background()

	e := engine.New(ctx, "corvid-test", "tester")
	assert.Error(t, e.TakeBack(ctx))
}

func TestBoardCloneIsIndependent(t *testing.T) {
	ctx := context.Background()

	e := engine.New(ctx, "corvid-test", "tester")
	b := e.Board()

	require.NoError(t, e.Move(ctx, "e2e4"))
	assert.Equal(t, fen.Initial, fen.Encode(b))
	assert.NotEqual(t, fen.Encode(b), e.Position())
}

func TestAnalyzeRejectsConcurrentSearch(t *testing.T) {
	ctx := context.Background()

	e := engine.New(ctx, "corvid-test", "tester")

	out, err := e.Analyze(ctx, search.Options{DepthLimit: lang.Some(1)})
	require.NoError(t, err)

	_, err = e.Analyze(ctx, search.Options{DepthLimit: lang.Some(1)})
	assert.Error(t, err)

	_, err = e.Halt(ctx)
	assert.NoError(t, err)

	for range out {
		// drain until the launcher closes the channel after Halt.
	}
}

func TestHaltWithoutActiveSearchFails(t *testing.T) {
	ctx := context.Background()

	e := engine.New(ctx, "corvid-test", "tester")
	_, err := e.Halt(ctx)
	assert.Error(t, err)
}

func TestSetHashAndSetNoisePreserveSearcher(t *testing.T) {
	ctx := context.Background()

	e := engine.New(ctx, "corvid-test", "tester")
	e.SetHash(1)
	e.SetNoise(5)

	assert.Equal(t, uint(1), e.Options().Hash)
	assert.Equal(t, uint(5), e.Options().Noise)

	out, err := e.Analyze(ctx, search.Options{DepthLimit: lang.Some(1)})
	require.NoError(t, err)
	_, err = e.Halt(ctx)
	require.NoError(t, err)
	for range out {
	}
}
