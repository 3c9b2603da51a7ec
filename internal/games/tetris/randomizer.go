package tetris

import "math/rand"

// Randomizer decides which piece comes next. The engine draws from it once
// per spawn, so fairness policies can be swapped without touching the rules.
type Randomizer interface {
	NextPieceType() PieceType
}

// UniformRandomizer picks each piece independently and uniformly among the
// seven types, with replacement.
type UniformRandomizer struct {
	rng *rand.Rand
}

// NewUniformRandomizer creates a randomizer seeded for reproducible play.
func NewUniformRandomizer(seed int64) *UniformRandomizer {
	return &UniformRandomizer{rng: rand.New(rand.NewSource(seed))}
}

// NextPieceType returns a uniformly chosen piece.
func (r *UniformRandomizer) NextPieceType() PieceType {
	return pieceTypes[r.rng.Intn(len(pieceTypes))]
}

// SequenceRandomizer replays a fixed list of pieces, wrapping around at the
// end. An empty sequence yields PieceI forever.
type SequenceRandomizer struct {
	seq []PieceType
	pos int
}

// NewSequenceRandomizer creates a randomizer that cycles through seq.
func NewSequenceRandomizer(seq ...PieceType) *SequenceRandomizer {
	return &SequenceRandomizer{seq: seq}
}

// NextPieceType returns the next piece of the sequence.
func (r *SequenceRandomizer) NextPieceType() PieceType {
	if len(r.seq) == 0 {
		return PieceI
	}
	p := r.seq[r.pos%len(r.seq)]
	r.pos++
	return p
}
