package board_test

import (
	"testing"

	"github.com/corvid-engine/corvid/pkg/board"
	"github.com/corvid-engine/corvid/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPinnedPieceMayOnlyMoveAlongPinRay checks that a rook pinned against its own king by
// an enemy rook can move along the pin ray but never off it.
func TestPinnedPieceMayOnlyMoveAlongPinRay(t *testing.T) {
	// White king on e1, white rook on e4 pinned by the black rook on e8.
	b, err := fen.Decode(board.DefaultKeys, "k3r3/8/8/8/4R3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	for _, m := range b.GenerateLegalMoves() {
		if m.From() != sq("e4") {
			continue
		}
		assert.Equal(t, sq("e4").File(), m.To().File(), "pinned rook left the e-file: %v", m)
	}
}

// TestPinnedKnightHasNoLegalMoves checks that a pinned knight, which has no move that
// stays on the pin ray, generates no moves at all.
func TestPinnedKnightHasNoLegalMoves(t *testing.T) {
	// White king on e1, white knight on e4 pinned by the black rook on e8.
	b, err := fen.Decode(board.DefaultKeys, "4r3/8/8/8/4N3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	for _, m := range b.GenerateLegalMoves() {
		assert.NotEqual(t, sq("e4"), m.From(), "pinned knight generated a move: %v", m)
	}
}

// TestCheckEvasionsBlockCaptureOrKingMove checks that when in check from a single sliding
// piece, every legal move either captures the checker, blocks the check ray, or moves the
// king, and that at least one such evasion exists.
func TestCheckEvasionsBlockCaptureOrKingMove(t *testing.T) {
	// White king on e1, in check from the black rook on e8. Nothing else on the board
	// but a white knight on c3 that can block on e4 or e2, and the king itself.
	b, err := fen.Decode(board.DefaultKeys, "4r3/8/8/8/8/2N5/8/4K3 w - - 0 1")
	require.NoError(t, err)

	require.True(t, b.IsChecked(board.White))

	moves := b.GenerateLegalMoves()
	for _, m := range moves {
		blocksOrCaptures := m.From() == sq("c3") && m.To().File() == sq("e1").File()
		kingMoves := m.From() == sq("e1")
		assert.True(t, blocksOrCaptures || kingMoves, "illegal evasion: %v", m)
	}
	assert.NotEmpty(t, moves)
}

// TestCheckmateHasNoLegalMoves checks the classic back-rank mate: black to move, boxed in
// by its own pawns with the white rook delivering mate along the 8th rank.
func TestCheckmateHasNoLegalMoves(t *testing.T) {
	b, err := fen.Decode(board.DefaultKeys, "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1")
	require.NoError(t, err)

	require.True(t, b.IsChecked(board.Black))
	assert.Empty(t, b.GenerateLegalMoves())
}

// TestStalemateHasNoLegalMovesWhileNotInCheck checks the standard king-and-queen-vs-king
// stalemate position.
func TestStalemateHasNoLegalMovesWhileNotInCheck(t *testing.T) {
	b, err := fen.Decode(board.DefaultKeys, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)

	require.False(t, b.IsChecked(board.Black))
	assert.Empty(t, b.GenerateLegalMoves())
}

// TestGenerateCapturesIncludesNonCapturingPromotion checks that quiescence's restricted
// generator still emits a pawn push that promotes, even though it isn't a capture: a pawn
// one step from the promotion rank is never on its own starting rank, so a guard that
// skipped push generation for non-starting-rank pawns under capturesOnly silently dropped
// every queening push.
func TestGenerateCapturesIncludesNonCapturingPromotion(t *testing.T) {
	b, err := fen.Decode(board.DefaultKeys, "8/4P3/8/8/8/8/8/4K2k w - - 0 1")
	require.NoError(t, err)

	found := false
	for _, m := range b.GenerateCaptures() {
		if m.From() == sq("e7") && m.To() == sq("e8") && m.IsPromotion() {
			found = true
		}
	}
	assert.True(t, found, "GenerateCaptures omitted the non-capturing promotion push e7e8=Q")
}

// TestEnPassantCapturePinnedAwayIsIllegal checks the classic edge case where an en passant
// capture would expose the capturing pawn's own king to a rook check along the rank that
// only becomes open once both pawns leave it.
func TestEnPassantCapturePinnedAwayIsIllegal(t *testing.T) {
	b, err := fen.Decode(board.DefaultKeys, "8/8/8/8/R2Pp1k1/8/8/4K3 b - d3 0 1")
	require.NoError(t, err)

	for _, m := range b.GenerateLegalMoves() {
		assert.False(t, m.IsCapture() && m.To() == sq("d3"), "illegal pinned en passant allowed: %v", m)
	}
}
