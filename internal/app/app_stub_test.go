//go:build !ebiten

package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sandfall/internal/sand"
)

func TestHeadlessGameRefusesToRun(t *testing.T) {
	g := &Game{}
	assert.ErrorIs(t, g.Update(), errNoWindow)
	assert.PanicsWithValue(t, errNoWindow, func() { New(sand.New(2, 2), 1, 0) })
}
