// Package term runs the sand simulation inside a terminal using tcell.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"sandfall/internal/core"
	"sandfall/internal/render"
	"sandfall/internal/sand"
)

const frameInterval = 16 * time.Millisecond

var styles = []tcell.Style{
	sand.Air:  tcell.StyleDefault.Background(tcell.ColorBlack),
	sand.Sand: tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.NewRGBColor(230, 200, 120)),
}

var glyphs = []rune{
	sand.Air:  ' ',
	sand.Sand: '█',
}

// Driver feeds terminal input into a Simulation and paints the cells each tick
// changes. Each grid cell covers scale×scale terminal cells.
type Driver struct {
	screen tcell.Screen
	sim    *sand.Simulation
	step   *core.FixedStep
	merge  *render.Coalescer
	scale  int
	seed   int64

	paused   bool
	tickOnce bool
	status   bool
}

// New constructs a Driver drawing to an initialized screen.
func New(screen tcell.Screen, sim *sand.Simulation, scale, tps int, seed int64) *Driver {
	if scale <= 0 {
		scale = 1
	}
	size := sim.Size()
	d := &Driver{
		screen: screen,
		sim:    sim,
		step:   core.NewFixedStep(tps),
		merge:  render.NewCoalescer(size.W),
		scale:  scale,
		seed:   seed,
		status: true,
	}
	d.Repaint()
	return d
}

// Paused reports whether ticking is suspended.
func (d *Driver) Paused() bool { return d.paused }

// HandleEvent applies a terminal event. It returns false when the driver
// should exit.
func (d *Driver) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return d.handleKey(ev)
	case *tcell.EventMouse:
		d.handleMouse(ev)
	case *tcell.EventResize:
		d.screen.Sync()
		d.Repaint()
	}
	return true
}

func (d *Driver) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			d.paused = !d.paused
		case 'n':
			d.tickOnce = true
		case 'r':
			d.Reset(d.seed)
		case 's':
			d.Reset(time.Now().UnixNano())
		case 'i':
			d.status = !d.status
			d.Repaint()
		}
	}
	return true
}

func (d *Driver) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	sandBtn := buttons&tcell.Button1 != 0
	airBtn := buttons&(tcell.Button2|tcell.Button3) != 0
	if !sandBtn && !airBtn {
		return
	}
	x, y, ok := d.CellAt(ev.Position())
	if !ok {
		return
	}
	// CellAt already bounds-checked the coordinates.
	if sandBtn {
		_ = d.sim.PlaceSand(x, y)
		return
	}
	_ = d.sim.PlaceAir(x, y)
}

// CellAt maps a terminal position to a grid cell.
func (d *Driver) CellAt(col, row int) (int, int, bool) {
	if col < 0 || row < 0 {
		return 0, 0, false
	}
	x, y := col/d.scale, row/d.scale
	size := d.sim.Size()
	if x >= size.W || y >= size.H {
		return 0, 0, false
	}
	return x, y, true
}

// Reset reinitializes the simulation and repaints the whole grid.
func (d *Driver) Reset(seed int64) {
	d.seed = seed
	d.sim.Reset(seed)
	d.tickOnce = false
	d.Repaint()
}

// Frame advances the simulation when due and paints what changed. It reports
// whether a tick ran.
func (d *Driver) Frame() bool {
	ticked := false
	if d.tickOnce || (!d.paused && d.step.ShouldStep()) {
		d.sim.Tick()
		d.tickOnce = false
		ticked = true
		for _, c := range d.merge.Coalesce(d.sim.Applied()) {
			d.paintCell(c.Index, c.Material)
		}
	}
	d.drawStatus()
	d.screen.Show()
	return ticked
}

// Repaint redraws every grid cell.
func (d *Driver) Repaint() {
	d.screen.Clear()
	for i, c := range d.sim.Cells() {
		d.paintCell(i, sand.Material(c))
	}
	d.drawStatus()
	d.screen.Show()
}

func (d *Driver) paintCell(index int, m sand.Material) {
	if !m.Valid() {
		m = sand.Air
	}
	x, y := d.sim.IndexToXY(index)
	for dy := 0; dy < d.scale; dy++ {
		for dx := 0; dx < d.scale; dx++ {
			d.screen.SetContent(x*d.scale+dx, y*d.scale+dy, glyphs[m], nil, styles[m])
		}
	}
}

func (d *Driver) drawStatus() {
	if !d.status {
		return
	}
	row := d.sim.Size().H * d.scale
	_, screenH := d.screen.Size()
	if row >= screenH {
		return
	}
	state := "running"
	if d.paused {
		state = "paused"
	}
	line := []rune(fmt.Sprintf("%s  tick %d  active %d  [space] pause [n] step [r] reset [q] quit",
		state, d.sim.Ticks(), d.sim.Active()))
	screenW, _ := d.screen.Size()
	for col := 0; col < screenW; col++ {
		ch := ' '
		if col < len(line) {
			ch = line[col]
		}
		d.screen.SetContent(col, row, ch, nil, tcell.StyleDefault.Reverse(true))
	}
}

// Run polls events and paints frames until the user quits or ctx is done.
func (d *Driver) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	// PollEvent returns nil once the screen is finalized.
	go func() {
		defer close(events)
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !d.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			d.Frame()
		}
	}
}
