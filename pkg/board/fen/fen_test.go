package fen_test

import (
	"testing"

	"github.com/corvid-engine/corvid/pkg/board"
	"github.com/corvid-engine/corvid/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	tests := []string{
		fen.Initial,
		"4k3/2pppp2/8/4P1K1/4PP2/3P4/8/8 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/5P2/PPPPP1PP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"8/8/8/3k4/8/3K4/8/8 b - - 14 37",
	}

	for _, tt := range tests {
		b, err := fen.Decode(board.DefaultKeys, tt)
		require.NoError(t, err)
		assert.Equal(t, tt, fen.Encode(b))
		assert.NoError(t, b.Verify())
	}
}

func TestDecodeEnPassant(t *testing.T) {
	b, err := fen.Decode(board.DefaultKeys, "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	require.NoError(t, err)

	sq, ok := b.EnPassant()
	require.True(t, ok)
	assert.Equal(t, "d6", sq.String())
}

func TestDecodeInvalid(t *testing.T) {
	tests := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBXR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN w KQkq - 0 1",
	}
	for _, tt := range tests {
		_, err := fen.Decode(board.DefaultKeys, tt)
		assert.Error(t, err)
	}
}
