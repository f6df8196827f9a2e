package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 64; i++ {
		assert.Equal(t, a.Chance(0.5), b.Chance(0.5), "draw %d", i)
	}
}

func TestRNGChanceBounds(t *testing.T) {
	r := NewRNG(1)
	for i := 0; i < 16; i++ {
		assert.False(t, r.Chance(0))
		assert.False(t, r.Chance(-1))
		assert.True(t, r.Chance(1))
		assert.True(t, r.Chance(2))
	}
}
