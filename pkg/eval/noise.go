package eval

import "math/rand"

// Noise adds a small amount of randomness to evaluations, so that repeated games between
// equal-strength configurations don't collapse to the same line every time. The limit
// specifies how many centipawns to add/remove, in [-limit/2, limit-1-limit/2]. The zero value
// always returns zero.
type Noise struct {
	rand  *rand.Rand
	limit int
}

func NewNoise(limit int, seed int64) Noise {
	return Noise{limit: limit, rand: rand.New(rand.NewSource(seed))}
}

// Sample draws one noise value. Exported so the search package can apply the same
// jitter to draw scores that Classical applies to its own evaluation.
func (n Noise) Sample() Score {
	if n.limit <= 0 || n.rand == nil {
		return 0
	}
	return Score(n.rand.Intn(n.limit) - n.limit/2)
}
