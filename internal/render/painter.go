//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"sandfall/internal/core"
	"sandfall/internal/sand"
)

// GridPainter keeps a w*h image in sync with a simulation by repainting only
// the cells that changed.
type GridPainter struct {
	w, h    int
	img     *ebiten.Image
	buf     []byte
	palette []color.RGBA
	merge   *Coalescer
	dirty   bool
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int, palette []color.RGBA) *GridPainter {
	return &GridPainter{
		w:       w,
		h:       h,
		img:     ebiten.NewImage(w, h),
		buf:     make([]byte, 4*w*h),
		palette: palette,
		merge:   NewCoalescer(w),
		dirty:   true,
	}
}

// Repaint redraws every cell from the simulation's grid.
func (gp *GridPainter) Repaint(sim core.Sim) {
	cells := sim.Cells()
	if len(cells) != gp.w*gp.h {
		return
	}
	fillPaletteRGBA(gp.buf, cells, gp.palette)
	gp.dirty = true
}

// Apply repaints the cells named by changes and returns how many distinct
// cells were touched.
func (gp *GridPainter) Apply(changes []sand.Change) int {
	if len(changes) == 0 {
		return 0
	}
	unique := gp.merge.Coalesce(changes)
	fillChangesRGBA(gp.buf, unique, gp.palette)
	gp.dirty = true
	return len(unique)
}

// Draw uploads pending pixel updates and draws the image scaled onto dst.
func (gp *GridPainter) Draw(dst *ebiten.Image, scale int) {
	if gp.dirty {
		gp.img.WritePixels(gp.buf)
		gp.dirty = false
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}
