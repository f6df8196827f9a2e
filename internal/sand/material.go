package sand

import "image/color"

// Material enumerates the contents of a cell. The zero value is Air.
type Material uint8

const (
	Air Material = iota
	Sand

	materialCount
)

// String returns the lower-case material name.
func (m Material) String() string {
	switch m {
	case Air:
		return "air"
	case Sand:
		return "sand"
	default:
		return "unknown"
	}
}

// Valid reports whether m is a defined material.
func (m Material) Valid() bool { return m < materialCount }

var palette = []color.RGBA{
	Air:  {R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	Sand: {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
}

// Palette returns the render colors indexed by Material.
func Palette() []color.RGBA {
	return palette
}
