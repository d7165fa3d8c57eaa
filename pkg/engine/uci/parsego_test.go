package uci

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGoDepth(t *testing.T) {
	opt, err := parseGo([]string{"depth", "6"})
	require.NoError(t, err)

	depth, ok := opt.DepthLimit.V()
	require.True(t, ok)
	assert.Equal(t, 6, depth)
}

func TestParseGoMoveTime(t *testing.T) {
	opt, err := parseGo([]string{"movetime", "1500"})
	require.NoError(t, err)

	mt, ok := opt.MoveTime.V()
	require.True(t, ok)
	assert.Equal(t, 1500*time.Millisecond, mt)
}

func TestParseGoTimeControl(t *testing.T) {
	opt, err := parseGo([]string{"wtime", "60000", "btime", "50000", "winc", "1000", "binc", "500", "movestogo", "20"})
	require.NoError(t, err)

	tc, ok := opt.TimeControl.V()
	require.True(t, ok)
	assert.Equal(t, 60*time.Second, tc.White)
	assert.Equal(t, 50*time.Second, tc.Black)
	assert.Equal(t, time.Second, tc.WhiteInc)
	assert.Equal(t, 500*time.Millisecond, tc.BlackInc)
	assert.Equal(t, 20, tc.MovesToGo)
}

func TestParseGoInfinite(t *testing.T) {
	opt, err := parseGo([]string{"infinite"})
	require.NoError(t, err)
	assert.True(t, opt.Infinite)
}

func TestParseGoIgnoresUnknownTokens(t *testing.T) {
	opt, err := parseGo([]string{"searchmoves", "e2e4", "d2d4", "ponder", "depth", "3"})
	require.NoError(t, err)

	depth, ok := opt.DepthLimit.V()
	require.True(t, ok)
	assert.Equal(t, 3, depth)
}

func TestParseGoMissingArgument(t *testing.T) {
	_, err := parseGo([]string{"depth"})
	assert.Error(t, err)
}

func TestParseGoNoArguments(t *testing.T) {
	opt, err := parseGo(nil)
	require.NoError(t, err)

	_, ok := opt.DepthLimit.V()
	assert.False(t, ok)
	assert.False(t, opt.Infinite)
}
