package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/headless/pkg/geometry"
	"github.com/odvcencio/headless/pkg/overlay"
	"github.com/odvcencio/headless/pkg/runtime"
	"github.com/odvcencio/headless/pkg/schedule"
	"github.com/odvcencio/headless/pkg/terminal"
)

// stubRoot is an empty base layer for screens under test.
type stubRoot struct {
	Base
}

func (*stubRoot) Measure(c runtime.Constraints) geometry.Size { return geometry.Size{} }
func (*stubRoot) Render(ctx runtime.RenderContext)            {}

func newTestMenu(t *testing.T, cfg MenuConfig) (*Menu, *runtime.Screen, *manualClock) {
	t.Helper()

	screen := runtime.NewScreen(80, 24)
	screen.SetRoot(&stubRoot{})

	sched, clock := newManualScheduler()
	cfg.Host = screen
	cfg.Scheduler = sched
	if cfg.Label == "" {
		cfg.Label = "File"
	}
	if cfg.Items == nil {
		cfg.Items = []MenuItem{
			{Label: "Open"},
			{Label: "Save"},
			{Label: "Quit"},
		}
	}
	m := NewMenu(cfg)
	m.Layout(geometry.NewRect(2, 0, 8, 1))
	return m, screen, clock
}

func TestMenuHoverIntentOpen(t *testing.T) {
	m, screen, clock := newTestMenu(t, MenuConfig{})

	m.SetHovered(true)
	assert.False(t, m.IsOpen(), "surface must not open before the delay")
	assert.Equal(t, 1, screen.LayerCount())

	clock.advance()
	assert.True(t, m.IsOpen())
	assert.Equal(t, 2, screen.LayerCount())

	open, err := m.Controller().IsOpen()
	require.NoError(t, err)
	assert.True(t, open)
}

func TestMenuHoverPassThroughNeverOpens(t *testing.T) {
	m, screen, clock := newTestMenu(t, MenuConfig{})

	// Pointer crosses the trigger without resting.
	m.SetHovered(true)
	m.SetHovered(false)
	clock.advance()

	assert.False(t, m.IsOpen())
	assert.Equal(t, 1, screen.LayerCount())
}

func TestMenuSurfaceHoverKeepsOpen(t *testing.T) {
	m, screen, clock := newTestMenu(t, MenuConfig{})
	require.NoError(t, m.Open())

	// Pointer leaves the trigger heading for the surface.
	m.SetHovered(false)
	m.list.SetHovered(true)
	clock.advance()

	assert.True(t, m.IsOpen(), "hovering the surface must cancel the close intent")
	assert.Equal(t, 2, screen.LayerCount())

	// Leaving the surface closes after the grace period.
	m.list.SetHovered(false)
	assert.True(t, m.IsOpen(), "close waits for the delay")
	clock.advance()
	assert.False(t, m.IsOpen())
	assert.Equal(t, 1, screen.LayerCount())
}

func TestMenuClickTogglesImmediately(t *testing.T) {
	m, screen, _ := newTestMenu(t, MenuConfig{})

	m.HandleMessage(pressAt(3, 0))
	assert.True(t, m.IsOpen())
	assert.Equal(t, 2, screen.LayerCount())

	m.HandleMessage(releaseAt(3, 0))
	m.HandleMessage(pressAt(3, 0))
	assert.False(t, m.IsOpen())
	assert.Equal(t, 1, screen.LayerCount())
}

func TestMenuSelectItemClosesAndFires(t *testing.T) {
	var picked string
	items := []MenuItem{
		{Label: "Open", OnSelect: func() { picked = "Open" }},
		{Label: "Save", OnSelect: func() { picked = "Save" }},
	}
	m, screen, _ := newTestMenu(t, MenuConfig{Items: items})
	require.NoError(t, m.Open())
	screen.Render()

	list := m.list
	row := list.Bounds().Y + 1
	list.HandleMessage(pressAt(list.Bounds().X+1, row))
	list.HandleMessage(releaseAt(list.Bounds().X+1, row))

	assert.Equal(t, "Save", picked)
	assert.False(t, m.IsOpen())
	assert.Equal(t, 1, screen.LayerCount())
}

func TestMenuKeyboardNavigation(t *testing.T) {
	var picked string
	items := []MenuItem{
		{Label: "Open", OnSelect: func() { picked = "Open" }},
		{Label: "Sep", Disabled: true},
		{Label: "Quit", OnSelect: func() { picked = "Quit" }},
	}
	m, screen, _ := newTestMenu(t, MenuConfig{Items: items})
	m.Focus()

	m.HandleMessage(keyMsg(terminal.KeyEnter))
	require.True(t, m.IsOpen())

	// Down from the first row skips the disabled separator.
	result := screen.HandleMessage(keyMsg(terminal.KeyDown))
	require.True(t, result.Handled)
	screen.HandleMessage(keyMsg(terminal.KeyEnter))

	assert.Equal(t, "Quit", picked)
	assert.False(t, m.IsOpen())
}

func TestMenuEscapeCloses(t *testing.T) {
	m, screen, _ := newTestMenu(t, MenuConfig{})
	require.NoError(t, m.Open())

	result := screen.HandleMessage(keyMsg(terminal.KeyEscape))
	require.True(t, result.Handled)
	assert.False(t, m.IsOpen())
	assert.Equal(t, 1, screen.LayerCount())
}

func TestMenuLightDismiss(t *testing.T) {
	m, screen, _ := newTestMenu(t, MenuConfig{})
	require.NoError(t, m.Open())
	screen.Render()

	// Press far from the surface: the screen pops the layer and closes
	// the controller, and the menu observes it.
	screen.HandleMessage(pressAt(70, 20))
	assert.Equal(t, 1, screen.LayerCount())
	assert.False(t, m.IsOpen())

	open, err := m.Controller().IsOpen()
	require.NoError(t, err)
	assert.False(t, open)
}

func TestMenuOwnedControllerDisposedWithMenu(t *testing.T) {
	m, _, _ := newTestMenu(t, MenuConfig{})
	require.True(t, m.Controller().Owned())

	require.NoError(t, m.Dispose())
	_, err := m.Controller().State()
	assert.ErrorIs(t, err, overlay.ErrDisposed)
}

func TestMenuBorrowedControllerSurvivesDispose(t *testing.T) {
	ctrl := overlay.NewController(overlay.Config{})
	m, _, _ := newTestMenu(t, MenuConfig{Controller: ctrl})
	require.False(t, m.Controller().Owned())

	require.NoError(t, m.Open())
	require.NoError(t, m.Dispose())

	// The borrowed controller is closed but still alive.
	st, err := ctrl.State()
	require.NoError(t, err)
	assert.Equal(t, overlay.Closed, st)
}

func TestMenuExternalCloseTearsDownSurface(t *testing.T) {
	ctrl := overlay.NewController(overlay.Config{})
	m, screen, _ := newTestMenu(t, MenuConfig{Controller: ctrl})

	require.NoError(t, m.Open())
	require.Equal(t, 2, screen.LayerCount())

	// The lender closes the controller directly; the surface layer must
	// come down with it, not just the menu's open flag.
	require.NoError(t, ctrl.Close())
	assert.False(t, m.IsOpen())
	assert.Equal(t, 1, screen.LayerCount())
}

func TestMenuExternalCloseRemovesOnlyItsLayer(t *testing.T) {
	ctrl := overlay.NewController(overlay.Config{})
	m, screen, _ := newTestMenu(t, MenuConfig{Controller: ctrl})
	require.NoError(t, m.Open())

	above := screen.PushLayer(&stubRoot{}, false)
	require.Equal(t, 3, screen.LayerCount())

	require.NoError(t, ctrl.Close())
	assert.Equal(t, 2, screen.LayerCount())
	assert.Same(t, above, screen.TopLayer(), "the unrelated layer above must survive")
}

func TestMenuAnchoredPlacement(t *testing.T) {
	m, screen, _ := newTestMenu(t, MenuConfig{})
	require.NoError(t, m.Open())

	top := screen.TopLayer()
	require.NotNil(t, top)
	pl := top.Placement()
	assert.Equal(t, m.Bounds().Y+m.Bounds().Height, pl.Rect.Y, "surface should sit below the trigger")
	assert.Equal(t, m.Bounds().X, pl.Rect.X)
	assert.False(t, pl.Clamped)
}

func TestMenuSharedSchedulerNoCollision(t *testing.T) {
	screen := runtime.NewScreen(80, 24)
	screen.SetRoot(&stubRoot{})
	clock := &manualClock{}
	sched := schedule.New(schedule.Config{NewTimer: clock.factory})

	a := NewMenu(MenuConfig{Label: "A", Items: []MenuItem{{Label: "x"}}, Host: screen, Scheduler: sched})
	b := NewMenu(MenuConfig{Label: "B", Items: []MenuItem{{Label: "y"}}, Host: screen, Scheduler: sched})
	a.Layout(geometry.NewRect(0, 0, 5, 1))
	b.Layout(geometry.NewRect(10, 0, 5, 1))

	// Both menus arm their open intents on the same scheduler; the slots
	// are namespaced per instance so neither supersedes the other.
	a.SetHovered(true)
	b.SetHovered(true)
	assert.Equal(t, 2, clock.live())
}
