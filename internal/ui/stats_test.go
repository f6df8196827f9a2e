package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsLine(t *testing.T) {
	assert.Equal(t, "running  tick 12  active 4  painted 3  tps 60", statsLine(false, 12, 4, 3, 59.7))
	assert.Equal(t, "paused  tick 0  active 0  painted 0  tps 0", statsLine(true, 0, 0, 0, 0))
}

func TestStatsPanelFitsFixedWidthFace(t *testing.T) {
	line := statsLine(false, 1, 2, 3, 60)
	w, h := statsPanelSize(line)
	// Face7x13 advances 7 pixels per glyph.
	assert.Equal(t, 7*len(line)+2*statsPadding, w)
	assert.Equal(t, 13+2*statsPadding, h)
	assert.Equal(t, statsPadding+11, statsBaseline())
}
