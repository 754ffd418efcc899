// Package tcell implements backend.Backend on top of tcell.
package tcell

import (
	"strings"

	tcell "github.com/gdamore/tcell/v2"

	"github.com/odvcencio/headless/pkg/backend"
	"github.com/odvcencio/headless/pkg/terminal"
)

// Backend implements backend.Backend using a tcell screen.
type Backend struct {
	screen tcell.Screen

	// Previous button mask, used to classify press/release/motion.
	lastButtons tcell.ButtonMask

	// Bracketed paste accumulation.
	inPaste     bool
	pasteBuffer strings.Builder
}

// New creates a backend on the process terminal.
func New() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Backend{screen: screen}, nil
}

// NewWithScreen creates a backend over an existing tcell screen. The sim
// backend uses this with a simulation screen.
func NewWithScreen(screen tcell.Screen) *Backend {
	return &Backend{screen: screen}
}

// Init initializes the screen and enables motion-level mouse reporting.
func (b *Backend) Init() error {
	if err := b.screen.Init(); err != nil {
		return err
	}
	b.screen.EnableMouse(tcell.MouseButtonEvents, tcell.MouseDragEvents, tcell.MouseMotionEvents)
	b.screen.EnablePaste()
	return nil
}

// Fini restores the terminal.
func (b *Backend) Fini() {
	b.screen.Fini()
}

// Size returns the terminal dimensions.
func (b *Backend) Size() (width, height int) {
	return b.screen.Size()
}

// SetContent sets the cell at (x, y).
func (b *Backend) SetContent(x, y int, r rune, style backend.Style) {
	b.screen.SetContent(x, y, r, nil, toTcellStyle(style))
}

// Show flushes pending content to the terminal.
func (b *Backend) Show() {
	b.screen.Show()
}

// Clear clears the screen.
func (b *Backend) Clear() {
	b.screen.Clear()
}

// HideCursor hides the cursor.
func (b *Backend) HideCursor() {
	b.screen.HideCursor()
}

// ShowCursor shows the cursor at the given position.
func (b *Backend) ShowCursor(x, y int) {
	b.screen.ShowCursor(x, y)
}

// Sync forces a full repaint.
func (b *Backend) Sync() {
	b.screen.Sync()
}

// PollEvent blocks until an event is available.
func (b *Backend) PollEvent() terminal.Event {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch e := ev.(type) {
		case *tcell.EventPaste:
			if e.Start() {
				b.inPaste = true
				b.pasteBuffer.Reset()
				continue
			}
			b.inPaste = false
			text := b.pasteBuffer.String()
			b.pasteBuffer.Reset()
			if text != "" {
				return terminal.PasteEvent{Text: text}
			}
			continue

		case *tcell.EventKey:
			if b.inPaste {
				switch e.Key() {
				case tcell.KeyRune:
					b.pasteBuffer.WriteRune(e.Rune())
				case tcell.KeyEnter:
					b.pasteBuffer.WriteRune('\n')
				case tcell.KeyTab:
					b.pasteBuffer.WriteRune('\t')
				}
				continue
			}
			return keyEvent(e)

		case *tcell.EventResize:
			w, h := e.Size()
			return terminal.ResizeEvent{Width: w, Height: h}

		case *tcell.EventMouse:
			if out, ok := b.mouseEvent(e); ok {
				return out
			}
			continue

		default:
			continue
		}
	}
}

// PostEvent injects an event into the tcell queue.
func (b *Backend) PostEvent(ev terminal.Event) error {
	tev := toTcellEvent(ev)
	if tev == nil {
		return nil
	}
	return b.screen.PostEvent(tev)
}

func keyEvent(e *tcell.EventKey) terminal.KeyEvent {
	mods := e.Modifiers()
	return terminal.KeyEvent{
		Key:   logicalKey(e.Key()),
		Rune:  e.Rune(),
		Alt:   mods&tcell.ModAlt != 0,
		Ctrl:  mods&tcell.ModCtrl != 0,
		Shift: mods&tcell.ModShift != 0,
	}
}

// mouseEvent classifies a tcell mouse event against the previous button
// mask. tcell reports state, not edges, so press/release/motion have to
// be derived here.
func (b *Backend) mouseEvent(e *tcell.EventMouse) (terminal.MouseEvent, bool) {
	x, y := e.Position()
	mods := e.Modifiers()
	buttons := e.Buttons()
	prev := b.lastButtons
	b.lastButtons = buttons &^ (tcell.WheelUp | tcell.WheelDown)

	out := terminal.MouseEvent{
		X:     x,
		Y:     y,
		Alt:   mods&tcell.ModAlt != 0,
		Ctrl:  mods&tcell.ModCtrl != 0,
		Shift: mods&tcell.ModShift != 0,
	}

	// Wheel events are instantaneous presses.
	if buttons&tcell.WheelUp != 0 {
		out.Button = terminal.MouseWheelUp
		out.Action = terminal.MousePress
		return out, true
	}
	if buttons&tcell.WheelDown != 0 {
		out.Button = terminal.MouseWheelDown
		out.Action = terminal.MousePress
		return out, true
	}

	pressed := buttons &^ prev
	released := prev &^ buttons

	switch {
	case pressed != 0:
		out.Button = firstButton(pressed)
		out.Action = terminal.MousePress
	case released != 0:
		out.Button = firstButton(released)
		out.Action = terminal.MouseRelease
	default:
		out.Button = terminal.MouseNone
		out.Action = terminal.MouseMove
	}
	return out, true
}

func firstButton(mask tcell.ButtonMask) terminal.MouseButton {
	switch {
	case mask&tcell.Button1 != 0:
		return terminal.MouseLeft
	case mask&tcell.Button2 != 0:
		return terminal.MouseMiddle
	case mask&tcell.Button3 != 0:
		return terminal.MouseRight
	}
	return terminal.MouseNone
}

func toTcellStyle(s backend.Style) tcell.Style {
	fg, bg, attrs := s.Decompose()
	style := tcell.StyleDefault.
		Foreground(toTcellColor(fg)).
		Background(toTcellColor(bg))

	if attrs&backend.AttrBold != 0 {
		style = style.Bold(true)
	}
	if attrs&backend.AttrDim != 0 {
		style = style.Dim(true)
	}
	if attrs&backend.AttrItalic != 0 {
		style = style.Italic(true)
	}
	if attrs&backend.AttrUnderline != 0 {
		style = style.Underline(true)
	}
	if attrs&backend.AttrReverse != 0 {
		style = style.Reverse(true)
	}
	return style
}

func toTcellColor(c backend.Color) tcell.Color {
	if c == backend.ColorDefault {
		return tcell.ColorDefault
	}
	if c.IsRGB() {
		r, g, b := c.Components()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	return tcell.PaletteColor(int(c))
}

// FromTcellStyle converts a tcell style back to a backend style. The sim
// backend uses this when capturing cells.
func FromTcellStyle(ts tcell.Style) backend.Style {
	fg, bg, attrs := ts.Decompose()
	style := backend.DefaultStyle().
		Foreground(fromTcellColor(fg)).
		Background(fromTcellColor(bg))

	if attrs&tcell.AttrBold != 0 {
		style = style.Bold(true)
	}
	if attrs&tcell.AttrDim != 0 {
		style = style.Dim(true)
	}
	if attrs&tcell.AttrItalic != 0 {
		style = style.Italic(true)
	}
	if attrs&tcell.AttrUnderline != 0 {
		style = style.Underline(true)
	}
	if attrs&tcell.AttrReverse != 0 {
		style = style.Reverse(true)
	}
	return style
}

func fromTcellColor(tc tcell.Color) backend.Color {
	if tc == tcell.ColorDefault {
		return backend.ColorDefault
	}
	if tc&tcell.ColorIsRGB != 0 {
		r, g, b := tc.RGB()
		return backend.RGB(uint8(r), uint8(g), uint8(b))
	}
	return backend.Color(tc & 0xFF)
}

// toTcellEvent converts our event types to tcell events for PostEvent.
func toTcellEvent(ev terminal.Event) tcell.Event {
	switch e := ev.(type) {
	case terminal.ResizeEvent:
		return tcell.NewEventResize(e.Width, e.Height)
	case terminal.KeyEvent:
		var mods tcell.ModMask
		if e.Alt {
			mods |= tcell.ModAlt
		}
		if e.Ctrl {
			mods |= tcell.ModCtrl
		}
		if e.Shift {
			mods |= tcell.ModShift
		}
		return tcell.NewEventKey(physicalKey(e.Key), e.Rune, mods)
	case terminal.MouseEvent:
		var buttons tcell.ButtonMask
		if e.Action == terminal.MousePress {
			buttons = buttonMask(e.Button)
		}
		return tcell.NewEventMouse(e.X, e.Y, buttons, 0)
	default:
		return nil
	}
}

func buttonMask(b terminal.MouseButton) tcell.ButtonMask {
	switch b {
	case terminal.MouseLeft:
		return tcell.Button1
	case terminal.MouseMiddle:
		return tcell.Button2
	case terminal.MouseRight:
		return tcell.Button3
	case terminal.MouseWheelUp:
		return tcell.WheelUp
	case terminal.MouseWheelDown:
		return tcell.WheelDown
	}
	return tcell.ButtonNone
}

var keyTable = map[tcell.Key]terminal.Key{
	tcell.KeyRune:       terminal.KeyRune,
	tcell.KeyEnter:      terminal.KeyEnter,
	tcell.KeyBackspace:  terminal.KeyBackspace,
	tcell.KeyBackspace2: terminal.KeyBackspace,
	tcell.KeyTab:        terminal.KeyTab,
	tcell.KeyBacktab:    terminal.KeyBacktab,
	tcell.KeyEscape:     terminal.KeyEscape,
	tcell.KeyUp:         terminal.KeyUp,
	tcell.KeyDown:       terminal.KeyDown,
	tcell.KeyLeft:       terminal.KeyLeft,
	tcell.KeyRight:      terminal.KeyRight,
	tcell.KeyHome:       terminal.KeyHome,
	tcell.KeyEnd:        terminal.KeyEnd,
	tcell.KeyPgUp:       terminal.KeyPageUp,
	tcell.KeyPgDn:       terminal.KeyPageDown,
	tcell.KeyDelete:     terminal.KeyDelete,
	tcell.KeyInsert:     terminal.KeyInsert,
	tcell.KeyF1:         terminal.KeyF1,
	tcell.KeyF2:         terminal.KeyF2,
	tcell.KeyF3:         terminal.KeyF3,
	tcell.KeyF4:         terminal.KeyF4,
	tcell.KeyF5:         terminal.KeyF5,
	tcell.KeyF6:         terminal.KeyF6,
	tcell.KeyF7:         terminal.KeyF7,
	tcell.KeyF8:         terminal.KeyF8,
	tcell.KeyF9:         terminal.KeyF9,
	tcell.KeyF10:        terminal.KeyF10,
	tcell.KeyF11:        terminal.KeyF11,
	tcell.KeyF12:        terminal.KeyF12,
	tcell.KeyCtrlC:      terminal.KeyCtrlC,
}

func logicalKey(k tcell.Key) terminal.Key {
	if out, ok := keyTable[k]; ok {
		return out
	}
	return terminal.KeyNone
}

func physicalKey(k terminal.Key) tcell.Key {
	for tk, lk := range keyTable {
		if lk == k && tk != tcell.KeyBackspace2 {
			return tk
		}
	}
	return tcell.KeyRune
}

var _ backend.Backend = (*Backend)(nil)
