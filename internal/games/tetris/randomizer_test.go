package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniformRandomizerDeterministic(t *testing.T) {
	a := NewUniformRandomizer(7)
	b := NewUniformRandomizer(7)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.NextPieceType(), b.NextPieceType(), "draw %d", i)
	}
}

func TestUniformRandomizerCoversAllPieces(t *testing.T) {
	r := NewUniformRandomizer(1)
	seen := make(map[PieceType]int)

	for i := 0; i < 1000; i++ {
		p := r.NextPieceType()
		assert.True(t, p.Valid())
		seen[p]++
	}

	assert.Len(t, seen, len(PieceTypes()))
}

func TestSequenceRandomizer(t *testing.T) {
	r := NewSequenceRandomizer(PieceS, PieceZ)

	got := make([]PieceType, 5)
	for i := range got {
		got[i] = r.NextPieceType()
	}

	assert.Equal(t, []PieceType{PieceS, PieceZ, PieceS, PieceZ, PieceS}, got)
}

func TestSequenceRandomizerEmpty(t *testing.T) {
	r := NewSequenceRandomizer()

	assert.Equal(t, PieceI, r.NextPieceType())
	assert.Equal(t, PieceI, r.NextPieceType())
}
