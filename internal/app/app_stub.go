//go:build !ebiten

package app

import (
	"errors"

	"sandfall/internal/sand"
)

var errNoWindow = errors.New("app: window support is compiled out; rebuild with -tags ebiten")

// Game stands in for the windowed driver in headless builds so packages that
// reference it still compile.
type Game struct{}

// New panics: a headless build has no window to open.
func New(*sand.Simulation, int, int64) *Game {
	panic(errNoWindow)
}

// Reset does nothing without a window.
func (g *Game) Reset(int64) {}

// Update returns errNoWindow.
func (g *Game) Update() error { return errNoWindow }

// Draw does nothing without a window.
func (g *Game) Draw(any) {}

// Layout reports an empty screen.
func (g *Game) Layout(int, int) (int, int) { return 0, 0 }
