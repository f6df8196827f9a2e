//go:build ebiten

package ui

import (
	"image/color"

	"sandfall/internal/core"
	"sandfall/internal/sand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
)

type activityProvider interface {
	Ticks() uint64
	Active() int
}

type frontierProvider interface {
	Changes() []sand.Change
}

// Overlay draws optional debugging visuals on top of the base simulation.
type Overlay struct {
	sim          core.Sim
	scale        int
	showStats    bool
	showFrontier bool
	painted      int
	paused       bool

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale, showStats: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update allows the overlay to update internal state.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showStats = !o.showStats
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showFrontier = !o.showFrontier
	}
}

// Record stores per-frame numbers reported by the game loop.
func (o *Overlay) Record(painted int, paused bool) {
	o.painted = painted
	o.paused = paused
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}

	if o.showFrontier {
		if provider, ok := o.sim.(frontierProvider); ok {
			o.drawFrontier(screen, provider.Changes(), scale)
		}
	}

	if !o.showStats {
		return
	}
	provider, ok := o.sim.(activityProvider)
	if !ok {
		return
	}
	line := statsLine(o.paused, provider.Ticks(), provider.Active(), o.painted, ebiten.ActualTPS())
	o.drawStats(screen, line)
}

func (o *Overlay) drawStats(screen *ebiten.Image, line string) {
	w, h := statsPanelSize(line)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w), float64(h))
	op.ColorScale.Scale(0, 0, 0, 0.7)
	screen.DrawImage(o.pixel, op)
	text.Draw(screen, line, statsFace, statsPadding, statsBaseline(), statsTextColor)
}

func (o *Overlay) drawFrontier(screen *ebiten.Image, changes []sand.Change, scale int) {
	w := o.sim.Size().W
	if w <= 0 {
		return
	}
	for _, c := range changes {
		x, y := c.Index%w, c.Index/w
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(scale), float64(scale))
		op.GeoM.Translate(float64(x*scale), float64(y*scale))
		if c.Material == sand.Sand {
			op.ColorScale.Scale(1, 0.55, 0.15, 0.6)
		} else {
			op.ColorScale.Scale(0.25, 0.45, 1, 0.6)
		}
		screen.DrawImage(o.pixel, op)
	}
}
