package ui

import (
	"fmt"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const statsPadding = 4

var (
	statsFace      = basicfont.Face7x13
	statsTextColor = color.RGBA{R: 220, G: 220, B: 230, A: 255}
)

func statsLine(paused bool, ticks uint64, active, painted int, tps float64) string {
	state := "running"
	if paused {
		state = "paused"
	}
	return fmt.Sprintf("%s  tick %d  active %d  painted %d  tps %.0f", state, ticks, active, painted, tps)
}

// statsPanelSize returns the backdrop size needed to hold line.
func statsPanelSize(line string) (int, int) {
	w := font.MeasureString(statsFace, line).Ceil()
	return w + 2*statsPadding, statsFace.Height + 2*statsPadding
}

// statsBaseline is the y coordinate text.Draw expects for the first line.
func statsBaseline() int { return statsPadding + statsFace.Ascent }
