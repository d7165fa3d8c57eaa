package search

import "github.com/corvid-engine/corvid/pkg/board"

// historyCeiling bounds the history table before it is divided by 16, so the band 1..180
// scaling (scoreQuiet) never loses resolution to runaway counters from a long game.
const historyCeiling int32 = 1 << 20

// killerTable holds the two most recent quiet moves that caused a beta cutoff at each
// ply, used as a cheap ordering hint before the history table is consulted.
type killerTable [board.MaxPlies][2]board.Move

func (k *killerTable) record(ply int, m board.Move) {
	if m.Equals(k[ply][0]) {
		return
	}
	k[ply][1] = k[ply][0]
	k[ply][0] = m
}

func (k *killerTable) at(ply int) (board.Move, board.Move) {
	return k[ply][0], k[ply][1]
}

// historyTable is the per (color, from, to) quiet-move cutoff counter.
type historyTable struct {
	counts [board.NumColors][64][64]int32
	max    int32
}

func (h *historyTable) record(c board.Color, m board.Move, depth int) {
	bonus := int32(depth * depth)
	v := h.counts[c][m.From()][m.To()] + bonus
	h.counts[c][m.From()][m.To()] = v
	if v > h.max {
		h.max = v
		if h.max > historyCeiling {
			for _, row := range h.counts {
				for i := range row {
					for j := range row[i] {
						row[i][j] /= 16
					}
				}
			}
			h.max /= 16
		}
	}
}

// age divides every history entry by 8 at the start of a new root search, so stale
// information from an earlier position decays rather than persisting forever.
func (h *historyTable) age() {
	for c := range h.counts {
		for i := range h.counts[c] {
			for j := range h.counts[c][i] {
				h.counts[c][i][j] /= 8
			}
		}
	}
	h.max /= 8
}

func (h *historyTable) score(c board.Color, m board.Move) uint8 {
	return scaleToBand(h.counts[c][m.From()][m.To()], h.max, 1, 180)
}

// scaleToBand linearly maps value in [0,max] to [lo,hi], clamping both ends. max<=0
// collapses everything to lo.
func scaleToBand(value, max int32, lo, hi uint8) uint8 {
	if value <= 0 || max <= 0 {
		return lo
	}
	if value >= max {
		return hi
	}
	span := int32(hi) - int32(lo)
	return lo + uint8(int64(value)*int64(span)/int64(max))
}

// orderingScore assigns the 8-bit ordering key from spec section 4.8: hash move highest,
// then queen promotions, then SEE-graded captures, then killers, then history-ranked
// quiets, with underpromotions last.
func (s *Searcher) orderingScore(b *board.Board, m board.Move, ply int, hashMove board.Move) uint8 {
	if hashMove != 0 && m.Equals(hashMove) {
		return 255
	}
	if m.IsPromotion() {
		if m.Promotion() != board.Queen {
			return 0
		}
		if m.IsCapture() {
			return 254
		}
		return 253
	}
	if m.IsCapture() {
		see := b.SEE(m)
		switch {
		case see > 0:
			return scaleToBand(int32(see), 2000, 241, 249)
		case see == 0:
			return 240
		default:
			return scaleToBand(int32(-see), 2000, 181, 189)
		}
	}

	k0, k1 := s.killers.at(ply)
	if m.Equals(k0) {
		return 194
	}
	if m.Equals(k1) {
		return 193
	}
	if ply >= 2 {
		pk0, pk1 := s.killers.at(ply - 2)
		if m.Equals(pk0) {
			return 192
		}
		if m.Equals(pk1) {
			return 191
		}
	}

	return s.history.score(b.Turn(), m)
}

// orderMoves scores and insertion-sorts moves in place, highest ordering score first.
// Move lists at one ply are small (rarely above ~40), so an O(n^2) insertion sort beats
// the overhead of a heap for this size, and keeps the sort stable for equal-priority
// quiets.
func (s *Searcher) orderMoves(b *board.Board, moves []board.Move, ply int, hashMove board.Move) {
	scores := make([]uint8, len(moves))
	for i, m := range moves {
		sc := s.orderingScore(b, m, ply, hashMove)
		scores[i] = sc
		moves[i] = m.WithOrderScore(sc)
	}
	for i := 1; i < len(moves); i++ {
		m, sc := moves[i], scores[i]
		j := i - 1
		for j >= 0 && scores[j] < sc {
			moves[j+1] = moves[j]
			scores[j+1] = scores[j]
			j--
		}
		moves[j+1] = m
		scores[j+1] = sc
	}
}

// scoreQuiescenceMove implements the simpler quiescence-only ordering: promotions first,
// then captures ranked by SEE clamped to +-1000 and mapped into [1,254].
func scoreQuiescenceMove(b *board.Board, m board.Move) uint8 {
	if m.IsPromotion() {
		return 255
	}
	see := b.SEE(m)
	switch {
	case see > 1000:
		see = 1000
	case see < -1000:
		see = -1000
	}
	return scaleToBand(int32(see+1000), 2000, 1, 254)
}

// scoreEvasionMove is the trivial check-evasion ordering: captures outrank non-captures.
func scoreEvasionMove(m board.Move) uint8 {
	if m.IsCapture() {
		return 1
	}
	return 0
}

func orderByScore(moves []board.Move, score func(board.Move) uint8) {
	scores := make([]uint8, len(moves))
	for i, m := range moves {
		sc := score(m)
		scores[i] = sc
		moves[i] = m.WithOrderScore(sc)
	}
	for i := 1; i < len(moves); i++ {
		m, sc := moves[i], scores[i]
		j := i - 1
		for j >= 0 && scores[j] < sc {
			moves[j+1] = moves[j]
			scores[j+1] = scores[j]
			j--
		}
		moves[j+1] = m
		scores[j+1] = sc
	}
}
