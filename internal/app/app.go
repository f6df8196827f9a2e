//go:build ebiten

package app

import (
	"time"

	"sandfall/internal/render"
	"sandfall/internal/sand"
	"sandfall/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts the sand simulation to the ebiten.Game interface.
type Game struct {
	sim     *sand.Simulation
	painter *render.GridPainter
	overlay *ui.Overlay

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim *sand.Simulation, scale int, seed int64) *Game {
	size := sim.Size()
	gp := render.NewGridPainter(size.W, size.H, sand.Palette())
	gp.Repaint(sim)
	return &Game{
		sim:     sim,
		painter: gp,
		overlay: ui.NewOverlay(sim, scale),
		scale:   scale,
		seed:    seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.painter.Repaint(g.sim)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	if err := g.handleMouse(); err != nil {
		return err
	}

	if g.overlay != nil {
		g.overlay.Update()
	}

	painted := 0
	if (!g.paused) || g.tickOnce {
		g.sim.Tick()
		painted = g.painter.Apply(g.sim.Applied())
		g.tickOnce = false
	}
	if g.overlay != nil {
		g.overlay.Record(painted, g.paused)
	}
	return nil
}

func (g *Game) handleMouse() error {
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if !left && !right {
		return nil
	}
	cx, cy := ebiten.CursorPosition()
	x, y, ok := g.cellAt(cx, cy)
	if !ok {
		return nil
	}
	if left {
		return g.sim.PlaceSand(x, y)
	}
	return g.sim.PlaceAir(x, y)
}

// cellAt maps screen pixels to a grid cell.
func (g *Game) cellAt(px, py int) (int, int, bool) {
	if px < 0 || py < 0 {
		return 0, 0, false
	}
	x, y := px/g.scale, py/g.scale
	size := g.sim.Size()
	if x >= size.W || y >= size.H {
		return 0, 0, false
	}
	return x, y, true
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Draw(screen, g.scale)
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W * g.scale, s.H * g.scale
}
