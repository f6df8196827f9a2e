package term

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sandfall/internal/sand"
)

const (
	gridW, gridH = 10, 5
	testScale    = 2
)

func newTestDriver(t *testing.T) (*Driver, *sand.Simulation, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, gridH*testScale+1)

	sim := sand.New(gridW, gridH)
	d := New(screen, sim, testScale, 60, 1)
	return d, sim, screen
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func statusLine(screen tcell.Screen, row int) string {
	w, _ := screen.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		sb.WriteRune(runeAt(screen, x, row))
	}
	return sb.String()
}

func TestLeftClickQueuesSand(t *testing.T) {
	d, sim, _ := newTestDriver(t)

	assert.True(t, d.HandleEvent(tcell.NewEventMouse(5, 3, tcell.Button1, tcell.ModNone)))
	assert.Equal(t, []sand.Change{{Index: 1*gridW + 2, Material: sand.Sand}}, sim.Changes())
}

func TestRightClickQueuesAir(t *testing.T) {
	d, sim, _ := newTestDriver(t)
	require.NoError(t, sim.PlaceSand(0, gridH-1))
	sim.Tick()
	require.True(t, sim.Quiescent())

	d.HandleEvent(tcell.NewEventMouse(0, (gridH-1)*testScale, tcell.Button3, tcell.ModNone))
	assert.Equal(t, []sand.Change{{Index: (gridH-1)*gridW + 0, Material: sand.Air}}, sim.Changes())

	// Clearing an already empty cell queues nothing.
	d.HandleEvent(tcell.NewEventMouse(2, 0, tcell.Button2, tcell.ModNone))
	assert.Len(t, sim.Changes(), 1)
}

func TestClicksOutsideGridIgnored(t *testing.T) {
	d, sim, _ := newTestDriver(t)
	d.HandleEvent(tcell.NewEventMouse(gridW*testScale, 0, tcell.Button1, tcell.ModNone))
	d.HandleEvent(tcell.NewEventMouse(0, gridH*testScale, tcell.Button1, tcell.ModNone))
	d.HandleEvent(tcell.NewEventMouse(-1, 0, tcell.Button1, tcell.ModNone))
	d.HandleEvent(tcell.NewEventMouse(3, 3, tcell.ButtonNone, tcell.ModNone))
	assert.Empty(t, sim.Changes())
}

func TestCellAt(t *testing.T) {
	d, _, _ := newTestDriver(t)
	x, y, ok := d.CellAt(7, 9)
	assert.True(t, ok)
	assert.Equal(t, 3, x)
	assert.Equal(t, 4, y)

	_, _, ok = d.CellAt(20, 0)
	assert.False(t, ok)
}

func TestFramePaintsAppliedCells(t *testing.T) {
	d, sim, screen := newTestDriver(t)
	now := time.Unix(0, 0)
	d.step.SetClock(func() time.Time { return now })

	require.NoError(t, sim.PlaceSand(3, 0))
	assert.Equal(t, ' ', runeAt(screen, 3*testScale, 0))

	require.True(t, d.Frame())
	for dy := 0; dy < testScale; dy++ {
		for dx := 0; dx < testScale; dx++ {
			assert.Equal(t, '█', runeAt(screen, 3*testScale+dx, dy))
		}
	}

	// Not due yet.
	assert.False(t, d.Frame())

	now = now.Add(time.Second / 60)
	require.True(t, d.Frame())
	assert.Equal(t, ' ', runeAt(screen, 3*testScale, 0))
	assert.Equal(t, '█', runeAt(screen, 3*testScale, 1*testScale))
}

func TestScreenMatchesGridAfterSettling(t *testing.T) {
	d, sim, screen := newTestDriver(t)
	for x := 0; x < gridW; x += 2 {
		require.NoError(t, sim.PlaceSand(x, x%gridH))
	}
	d.paused = true
	for i := 0; i < 3*gridH; i++ {
		d.tickOnce = true
		d.Frame()
	}
	require.True(t, sim.Quiescent())

	for y := 0; y < gridH; y++ {
		for x := 0; x < gridW; x++ {
			m, err := sim.At(x, y)
			require.NoError(t, err)
			want := ' '
			if m == sand.Sand {
				want = '█'
			}
			assert.Equal(t, want, runeAt(screen, x*testScale, y*testScale), "cell (%d,%d)", x, y)
		}
	}
}

func TestPausedFrameDoesNotTick(t *testing.T) {
	d, sim, _ := newTestDriver(t)
	require.NoError(t, sim.PlaceSand(1, 1))
	d.paused = true

	assert.False(t, d.Frame())
	assert.Zero(t, sim.Ticks())

	d.tickOnce = true
	assert.True(t, d.Frame())
	assert.Equal(t, uint64(1), sim.Ticks())
	assert.False(t, d.Frame())
}

func TestKeys(t *testing.T) {
	d, sim, _ := newTestDriver(t)

	assert.True(t, d.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)))
	assert.True(t, d.Paused())

	require.NoError(t, sim.PlaceSand(4, 0))
	assert.True(t, d.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone)))
	assert.True(t, d.Frame())

	assert.True(t, d.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone)))
	assert.Zero(t, sim.Ticks())
	assert.Empty(t, sim.Changes())

	assert.False(t, d.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, d.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, d.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone)))
}

func TestStatusLine(t *testing.T) {
	d, sim, screen := newTestDriver(t)
	require.NoError(t, sim.PlaceSand(0, 0))
	d.paused = true
	d.Frame()

	line := statusLine(screen, gridH*testScale)
	assert.True(t, strings.HasPrefix(line, "paused  tick 0  active 1"), line)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	d, _, _ := newTestDriver(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, d.Run(ctx), context.Canceled)
}

func TestRunStopsOnQuitKey(t *testing.T) {
	d, _, screen := newTestDriver(t)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, d.Run(ctx))
}
