package widget

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/headless/pkg/focus"
	"github.com/odvcencio/headless/pkg/geometry"
	"github.com/odvcencio/headless/pkg/overlay"
	"github.com/odvcencio/headless/pkg/runtime"
	"github.com/odvcencio/headless/pkg/schedule"
	"github.com/odvcencio/headless/pkg/terminal"
)

// Hover-intent defaults: the surface opens only after the pointer rests
// on the trigger, and survives short excursions off the surface.
const (
	DefaultOpenDelay  = 150 * time.Millisecond
	DefaultCloseDelay = 300 * time.Millisecond
)

// MenuItem is one entry in a menu's surface.
type MenuItem struct {
	Label    string
	Disabled bool
	OnSelect func()
}

// LayerHost is where a menu pushes its anchored surface. *runtime.Screen
// satisfies it.
type LayerHost interface {
	PushAnchored(cmd runtime.PushOverlay) *runtime.Layer
	RemoveLayer(layer *runtime.Layer) bool
}

// MenuConfig configures a Menu.
type MenuConfig struct {
	Label string
	Items []MenuItem
	Host  LayerHost

	// Scheduler drives hover intent. Required for delayed open/close;
	// without one, hover opens and closes immediately.
	Scheduler *schedule.Scheduler

	// Controller is borrowed when non-nil; the menu then never disposes
	// it. When nil the menu creates and owns one.
	Controller *overlay.Controller

	// Placement overrides the default below-with-above-fallback spec.
	Placement overlay.Spec

	// FocusHandle lends an external focus handle; the caller keeps its
	// lifetime. Nil lets the menu allocate and own one.
	FocusHandle *focus.Handle

	OpenDelay  time.Duration
	CloseDelay time.Duration

	Styles StyleFunc
}

// Menu is a trigger widget that opens an anchored list surface. Opening
// and closing run on hover intent through scheduler slots, so a pointer
// passing over the trigger does not flash the surface, and a short
// excursion off the surface does not tear it down.
type Menu struct {
	FocusableBase

	id     string
	label  string
	items  []MenuItem
	host   LayerHost
	sched  *schedule.Scheduler
	ctrl   *overlay.Controller
	spec   overlay.Spec
	styles StyleFunc

	openDelay  time.Duration
	closeDelay time.Duration

	list   *menuList
	layer  *runtime.Layer
	pushed bool
}

// NewMenu creates a menu.
func NewMenu(cfg MenuConfig) *Menu {
	styles := cfg.Styles
	if styles == nil {
		styles = defaultTheme.Button.Resolve
	}
	ctrl := cfg.Controller
	if ctrl == nil {
		ctrl = overlay.NewController(overlay.Config{Owned: true})
	}
	spec := cfg.Placement
	if spec.Primary == (overlay.Alignment{}) {
		spec = overlay.Spec{
			Primary:   overlay.BelowStart,
			Fallbacks: []overlay.Alignment{overlay.AboveStart},
		}
	}
	openDelay := cfg.OpenDelay
	if openDelay == 0 {
		openDelay = DefaultOpenDelay
	}
	closeDelay := cfg.CloseDelay
	if closeDelay == 0 {
		closeDelay = DefaultCloseDelay
	}

	m := &Menu{
		id:         ulid.Make().String(),
		label:      cfg.Label,
		items:      cfg.Items,
		host:       cfg.Host,
		sched:      cfg.Scheduler,
		ctrl:       ctrl,
		spec:       spec,
		styles:     styles,
		openDelay:  openDelay,
		closeDelay: closeDelay,
	}
	m.list = &menuList{menu: m, hovered: -1}
	if cfg.FocusHandle != nil {
		_ = m.UseFocusHandle(cfg.FocusHandle)
	}

	// All close paths converge here: Close, light dismiss, and an
	// external owner closing a borrowed controller each deliver a
	// Closing edge, and the surface layer comes down with it.
	_, _ = ctrl.AddListener(func(st overlay.State) {
		if st == overlay.Closing || st == overlay.Closed {
			m.removeSurface()
		}
	})
	return m
}

// ID returns the menu's instance identifier. Scheduler slots are
// namespaced with it so menus sharing one scheduler cannot collide.
func (m *Menu) ID() string {
	return m.id
}

// Controller exposes the menu's overlay controller.
func (m *Menu) Controller() *overlay.Controller {
	return m.ctrl
}

// IsOpen reports whether the surface is up.
func (m *Menu) IsOpen() bool {
	return m.pushed
}

// Open raises the surface immediately, canceling any pending intent.
func (m *Menu) Open() error {
	m.cancelIntents()
	if m.pushed {
		return nil
	}
	if err := m.ctrl.Open(); err != nil {
		return err
	}
	m.pushed = true
	m.layer = m.host.PushAnchored(runtime.PushOverlay{
		Widget:     m.list,
		AnchorOf:   m.Bounds,
		Spec:       m.spec,
		Controller: m.ctrl,
		Dismiss:    true,
	})
	return nil
}

// Close tears the surface down immediately, canceling any pending
// intent. The controller's Closing edge triggers the actual layer
// removal through the listener.
func (m *Menu) Close() error {
	m.cancelIntents()
	if !m.pushed {
		return nil
	}
	err := m.ctrl.Close()
	if m.pushed {
		// A disposed controller delivers no edge; tear down directly.
		m.removeSurface()
	}
	return err
}

// removeSurface takes the surface layer off the host. Idempotent: the
// screen's light dismiss may have removed the layer already.
func (m *Menu) removeSurface() {
	if !m.pushed {
		return
	}
	m.pushed = false
	if m.layer != nil {
		m.host.RemoveLayer(m.layer)
		m.layer = nil
	}
}

// Dispose releases the menu's resources. The controller and focus
// handle are released only when the menu owns them.
func (m *Menu) Dispose() error {
	if err := m.Close(); err != nil {
		return err
	}
	m.ReleaseFocus()
	if m.ctrl.Owned() {
		return m.ctrl.Dispose()
	}
	return nil
}

// SetHovered implements hover intent on the trigger.
func (m *Menu) SetHovered(on bool) {
	m.Base.SetHovered(on)
	if !m.Enabled() {
		return
	}
	if on {
		m.cancelClose()
		if !m.pushed {
			m.scheduleOpen()
		}
	} else if m.pushed {
		m.cancelOpen()
		m.scheduleClose()
	} else {
		m.cancelOpen()
	}
}

// surfaceHover is fed by the list widget so the surface keeps itself
// alive while the pointer is on it.
func (m *Menu) surfaceHover(on bool) {
	if on {
		m.cancelClose()
	} else if m.pushed {
		m.scheduleClose()
	}
}

func (m *Menu) scheduleOpen() {
	if m.sched == nil {
		_ = m.Open()
		return
	}
	m.sched.Schedule(m.id+"/open", m.openDelay, func() { _ = m.Open() })
}

func (m *Menu) scheduleClose() {
	if m.sched == nil {
		_ = m.Close()
		return
	}
	m.sched.Schedule(m.id+"/close", m.closeDelay, func() { _ = m.Close() })
}

func (m *Menu) cancelOpen() {
	if m.sched != nil {
		m.sched.CancelSlot(m.id + "/open")
	}
}

func (m *Menu) cancelClose() {
	if m.sched != nil {
		m.sched.CancelSlot(m.id + "/close")
	}
}

func (m *Menu) cancelIntents() {
	m.cancelOpen()
	m.cancelClose()
}

func (m *Menu) selectItem(i int) {
	if i < 0 || i >= len(m.items) || m.items[i].Disabled {
		return
	}
	item := m.items[i]
	_ = m.Close()
	if item.OnSelect != nil {
		item.OnSelect()
	}
}

// Measure returns the trigger size.
func (m *Menu) Measure(c runtime.Constraints) geometry.Size {
	return c.Constrain(geometry.Size{Width: labelWidth(m.label) + 4, Height: 1})
}

// Render draws the trigger and registers it for pointer hits.
func (m *Menu) Render(ctx runtime.RenderContext) {
	style := m.styles(m.States())
	ctx.Buffer.Fill(ctx.Bounds, ' ', style)
	drawLabel(ctx.Buffer, ctx.Bounds.Inset(0, 2, 0, 2), m.label+" ▾", style)
	ctx.RegisterHit(m)
}

// HandleMessage toggles the surface on click or keyboard activation and
// closes it on Escape.
func (m *Menu) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if !m.Enabled() {
		return runtime.Unhandled()
	}

	switch msg := msg.(type) {
	case runtime.MouseMsg:
		switch msg.Action {
		case terminal.MousePress:
			if msg.Button == terminal.MouseLeft {
				if m.pushed {
					_ = m.Close()
				} else {
					_ = m.Open()
				}
				return runtime.Handled()
			}
		case terminal.MouseRelease:
			return runtime.Handled()
		}

	case runtime.KeyMsg:
		switch {
		case m.IsFocused() && isActivation(msg):
			if m.pushed {
				_ = m.Close()
			} else {
				_ = m.Open()
				m.list.hovered = m.list.firstEnabled()
			}
			return runtime.Handled()
		case msg.Key == terminal.KeyEscape && m.pushed:
			_ = m.Close()
			return runtime.Handled()
		}
	}
	return runtime.Unhandled()
}

// menuList is the anchored surface: one row per item.
type menuList struct {
	Base

	menu    *Menu
	hovered int
}

func (l *menuList) Measure(c runtime.Constraints) geometry.Size {
	w := 0
	for _, item := range l.menu.items {
		if lw := labelWidth(item.Label) + 2; lw > w {
			w = lw
		}
	}
	return c.Constrain(geometry.Size{Width: w, Height: len(l.menu.items)})
}

func (l *menuList) Render(ctx runtime.RenderContext) {
	ctx.Buffer.Fill(ctx.Bounds, ' ', defaultTheme.Overlay)
	for i, item := range l.menu.items {
		if i >= ctx.Bounds.Height {
			break
		}
		row := geometry.NewRect(ctx.Bounds.X, ctx.Bounds.Y+i, ctx.Bounds.Width, 1)
		states := rowStates(l.States(), false, i == l.hovered, item.Disabled)
		style := defaultTheme.Item.Resolve(states)
		ctx.Buffer.Fill(row, ' ', style)
		drawLabel(ctx.Buffer, row.Inset(0, 1, 0, 1), item.Label, style)
	}
	ctx.RegisterHit(l)
}

func (l *menuList) HandleMessage(msg runtime.Message) runtime.HandleResult {
	switch m := msg.(type) {
	case runtime.MouseMsg:
		switch m.Action {
		case terminal.MouseMove:
			l.hovered = l.rowAt(m.Y)
			return runtime.Handled()
		case terminal.MousePress:
			if m.Button == terminal.MouseLeft {
				return runtime.Handled()
			}
		case terminal.MouseRelease:
			if l.bounds.Contains(m.X, m.Y) {
				l.menu.selectItem(l.rowAt(m.Y))
			}
			return runtime.Handled()
		}

	case runtime.KeyMsg:
		switch {
		case m.Key == terminal.KeyDown:
			l.moveHover(1)
			return runtime.Handled()
		case m.Key == terminal.KeyUp:
			l.moveHover(-1)
			return runtime.Handled()
		case isActivation(m):
			l.menu.selectItem(l.hovered)
			return runtime.Handled()
		case m.Key == terminal.KeyEscape:
			_ = l.menu.Close()
			return runtime.Handled()
		}
	}
	return runtime.Unhandled()
}

// SetHovered keeps the surface alive while the pointer is on it.
func (l *menuList) SetHovered(on bool) {
	l.Base.SetHovered(on)
	if !on {
		l.hovered = -1
	}
	l.menu.surfaceHover(on)
}

func (l *menuList) rowAt(y int) int {
	i := y - l.bounds.Y
	if i < 0 || i >= len(l.menu.items) {
		return -1
	}
	return i
}

func (l *menuList) moveHover(delta int) {
	items := l.menu.items
	for i := l.hovered + delta; i >= 0 && i < len(items); i += delta {
		if !items[i].Disabled {
			l.hovered = i
			return
		}
	}
}

func (l *menuList) firstEnabled() int {
	for i, item := range l.menu.items {
		if !item.Disabled {
			return i
		}
	}
	return -1
}
