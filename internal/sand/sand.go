// Package sand implements a falling-sand automaton driven by a frontier of
// pending cell changes instead of a full-grid scan.
package sand

import (
	"errors"
	"fmt"

	"sandfall/internal/core"
)

// ErrIndexOutOfRange is returned by edits addressing a cell outside the grid.
var ErrIndexOutOfRange = errors.New("sand: index out of range")

// Change records that the cell at Index is to become Material.
type Change struct {
	Index    int
	Material Material
}

// Simulation owns the grid and the frontier of pending changes. It is not safe
// for concurrent use.
type Simulation struct {
	cfg  Config
	grid *core.ByteGrid

	pending []Change
	applied []Change
	spare   []Change

	ticks uint64
}

// New returns a Simulation of the given dimensions with every cell Air.
func New(w, h int) *Simulation {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a Simulation configured from the provided options. The
// grid starts empty; call Reset to apply the configured fill.
func NewWithConfig(cfg Config) *Simulation {
	return &Simulation{cfg: cfg, grid: core.NewByteGrid(cfg.Width, cfg.Height)}
}

// Name returns the simulation identifier.
func (s *Simulation) Name() string { return "sand" }

// Size reports the grid dimensions.
func (s *Simulation) Size() core.Size { return s.grid.Size() }

// Cells exposes the grid as raw Material bytes.
func (s *Simulation) Cells() []uint8 { return s.grid.Cells() }

// Ticks returns the number of completed ticks since construction or Reset.
func (s *Simulation) Ticks() uint64 { return s.ticks }

// Changes returns the pending changes: the records produced by the last tick
// plus any edits queued since. The slice is owned by the simulation and is
// only valid until the next Tick.
func (s *Simulation) Changes() []Change { return s.pending }

// Applied returns the records the last tick wrote to the grid, in the order
// they were written. Same ownership rules as Changes.
func (s *Simulation) Applied() []Change { return s.applied }

// Active returns the length of the frontier.
func (s *Simulation) Active() int { return len(s.pending) }

// Quiescent reports whether the next tick would do nothing.
func (s *Simulation) Quiescent() bool { return len(s.pending) == 0 }

// IndexToXY converts a cell index into grid coordinates.
func (s *Simulation) IndexToXY(index int) (int, int) { return s.grid.XY(index) }

// At returns the material currently stored at (x, y).
func (s *Simulation) At(x, y int) (Material, error) {
	if !s.grid.InBounds(x, y) {
		return Air, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrIndexOutOfRange, x, y, s.grid.W, s.grid.H)
	}
	return Material(s.grid.Cells()[s.grid.Index(x, y)]), nil
}

// PlaceSand queues (x, y) to become Sand.
func (s *Simulation) PlaceSand(x, y int) error { return s.Place(x, y, Sand) }

// PlaceAir queues (x, y) to become Air.
func (s *Simulation) PlaceAir(x, y int) error { return s.Place(x, y, Air) }

// Place queues a change of (x, y) to m. The grid itself is only written by the
// next Tick. Nothing is queued when the cell already holds m, but the check is
// against the grid, so repeated edits before a tick queue duplicate records.
func (s *Simulation) Place(x, y int, m Material) error {
	if !s.grid.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrIndexOutOfRange, x, y, s.grid.W, s.grid.H)
	}
	if !m.Valid() {
		return fmt.Errorf("sand: unknown material %d", m)
	}
	idx := s.grid.Index(x, y)
	if Material(s.grid.Cells()[idx]) == m {
		return nil
	}
	s.pending = append(s.pending, Change{Index: idx, Material: m})
	return nil
}

// Tick advances the simulation by one step.
//
// Records are processed strictly in list order. Each record first schedules
// its neighbour effects for the next tick, then is written to the grid, so a
// later record sees writes made by earlier records in the same tick.
func (s *Simulation) Tick() {
	cells := s.grid.Cells()
	w := s.grid.W
	next := s.spare[:0]

	for _, c := range s.pending {
		switch c.Material {
		case Air:
			// A vacated cell pulls down the grain sitting above it.
			if above := c.Index - w; above >= 0 && Material(cells[above]) == Sand {
				next = append(next,
					Change{Index: above, Material: Air},
					Change{Index: c.Index, Material: Sand},
				)
			}
		case Sand:
			if below := c.Index + w; below < len(cells) && Material(cells[below]) == Air {
				next = append(next,
					Change{Index: c.Index, Material: Air},
					Change{Index: below, Material: Sand},
				)
			}
		}
		cells[c.Index] = uint8(c.Material)
	}

	s.spare = s.applied
	s.applied = s.pending
	s.pending = next
	s.ticks++
}

// Step advances the simulation by one tick.
func (s *Simulation) Step() { s.Tick() }

// Reset clears the grid to Air and drops all pending work. When the config
// asks for a fill, a seeded random subset of cells is queued as sand edits.
// A zero seed falls back to the configured one.
func (s *Simulation) Reset(seed int64) {
	s.grid.Clear()
	s.pending = s.pending[:0]
	s.applied = s.applied[:0]
	s.ticks = 0

	if s.cfg.Fill <= 0 {
		return
	}
	if seed == 0 {
		seed = s.cfg.Seed
	}
	rng := core.NewRNG(seed)
	for i := 0; i < s.grid.Len(); i++ {
		if rng.Chance(s.cfg.Fill) {
			s.pending = append(s.pending, Change{Index: i, Material: Sand})
		}
	}
}
