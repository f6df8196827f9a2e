package render

import (
	"image/color"

	"github.com/kamstrup/intmap"

	"sandfall/internal/sand"
)

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		setPixel(buf, i, palette[idx])
	}
}

// fillChangesRGBA repaints only the cells named by changes. Indices outside
// the buffer are skipped.
func fillChangesRGBA(buf []byte, changes []sand.Change, palette []color.RGBA) {
	if len(palette) == 0 {
		return
	}
	last := len(palette) - 1
	for _, c := range changes {
		if c.Index < 0 || 4*c.Index+3 >= len(buf) {
			continue
		}
		idx := int(c.Material)
		if idx > last {
			idx = last
		}
		setPixel(buf, c.Index, palette[idx])
	}
}

func setPixel(buf []byte, i int, col color.RGBA) {
	base := i * 4
	buf[base+0] = col.R
	buf[base+1] = col.G
	buf[base+2] = col.B
	buf[base+3] = col.A
}

// Coalescer reduces a change list to one record per cell. It keeps its seen
// set between calls to avoid reallocating every frame.
type Coalescer struct {
	seen *intmap.Map[int, struct{}]
	out  []sand.Change
}

// NewCoalescer returns a Coalescer sized for roughly capacity distinct cells.
func NewCoalescer(capacity int) *Coalescer {
	return &Coalescer{seen: intmap.New[int, struct{}](capacity)}
}

// Coalesce returns one record per index carrying the last material written to
// it, ordered by last occurrence. The result is reused by the next call.
func (c *Coalescer) Coalesce(changes []sand.Change) []sand.Change {
	c.seen.Clear()
	c.out = c.out[:0]
	for i := len(changes) - 1; i >= 0; i-- {
		ch := changes[i]
		if _, ok := c.seen.Get(ch.Index); ok {
			continue
		}
		c.seen.Put(ch.Index, struct{}{})
		c.out = append(c.out, ch)
	}
	for i, j := 0, len(c.out)-1; i < j; i, j = i+1, j-1 {
		c.out[i], c.out[j] = c.out[j], c.out[i]
	}
	return c.out
}
