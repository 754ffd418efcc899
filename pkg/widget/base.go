// Package widget provides headless components built on the interaction
// core: buttons, checkboxes, toggles, radio groups, and hover-intent
// menus. Widgets own no pixels beyond their render pass; all state flows
// through interaction trackers so visuals stay a pure function of state.
package widget

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/headless/pkg/backend"
	"github.com/odvcencio/headless/pkg/focus"
	"github.com/odvcencio/headless/pkg/geometry"
	"github.com/odvcencio/headless/pkg/interaction"
	"github.com/odvcencio/headless/pkg/runtime"
	"github.com/odvcencio/headless/pkg/terminal"
	"github.com/odvcencio/headless/pkg/theme"
)

// StyleFunc resolves a state snapshot to a style. Widgets default to the
// package theme's tables; consumers may replace it wholesale.
type StyleFunc func(interaction.StateSet) backend.Style

var defaultTheme = theme.DefaultTheme()

// Base provides common functionality for widgets: bounds storage and an
// interaction tracker with focus and hover plumbed into it. Embed it to
// get default implementations.
type Base struct {
	bounds  geometry.Rect
	tracker interaction.Tracker
}

// Layout stores the assigned bounds.
func (b *Base) Layout(bounds geometry.Rect) {
	b.bounds = bounds
}

// Bounds returns the widget's assigned bounds.
func (b *Base) Bounds() geometry.Rect {
	return b.bounds
}

// HandleMessage returns Unhandled by default.
func (b *Base) HandleMessage(msg runtime.Message) runtime.HandleResult {
	return runtime.Unhandled()
}

// Tracker exposes the widget's interaction tracker for listener
// registration.
func (b *Base) Tracker() *interaction.Tracker {
	return &b.tracker
}

// States returns the masked state snapshot.
func (b *Base) States() interaction.StateSet {
	return b.tracker.Snapshot()
}

// SetHovered feeds synthesized pointer enter/exit into the tracker.
func (b *Base) SetHovered(on bool) {
	b.tracker.SetHovered(on)
}

// SetEnabled enables or disables the widget.
func (b *Base) SetEnabled(on bool) {
	b.tracker.SetDisabled(!on)
}

// Enabled reports whether the widget accepts interaction.
func (b *Base) Enabled() bool {
	return !b.tracker.Disabled()
}

// CanFocus returns false by default.
func (b *Base) CanFocus() bool {
	return false
}

// Focus marks the widget as focused.
func (b *Base) Focus() {
	b.tracker.SetFocused(true)
}

// Blur marks the widget as unfocused.
func (b *Base) Blur() {
	b.tracker.SetFocused(false)
}

// IsFocused returns whether the widget is focused.
func (b *Base) IsFocused() bool {
	return b.States().Has(interaction.Focused)
}

// FocusableBase extends Base for focusable widgets. Disabled widgets
// refuse focus. Focus flows through a coordinator-managed handle: the
// widget allocates an owned handle on first use, or a caller lends one
// with UseFocusHandle and keeps its lifetime.
type FocusableBase struct {
	Base

	coord focus.Coordinator
}

// CanFocus returns true while the widget is enabled.
func (f *FocusableBase) CanFocus() bool {
	return f.Enabled()
}

func (f *FocusableBase) ensureHandle() {
	if f.coord.Attached() {
		return
	}
	f.coord.OnFocus(func(on bool) { f.tracker.SetFocused(on) })
	_ = f.coord.Attach(nil)
}

// UseFocusHandle lends an external handle to the widget, replacing the
// current one. The tracker follows the new handle's focus state.
func (f *FocusableBase) UseFocusHandle(h *focus.Handle) error {
	if f.coord.Attached() {
		return f.coord.Swap(h)
	}
	f.coord.OnFocus(func(on bool) { f.tracker.SetFocused(on) })
	if err := f.coord.Attach(h); err != nil {
		return err
	}
	f.tracker.SetFocused(f.coord.Current().Focused())
	return nil
}

// FocusHandle returns the live handle, or nil before first use.
func (f *FocusableBase) FocusHandle() *focus.Handle {
	return f.coord.Current()
}

// ReleaseFocus detaches the handle at teardown. A lent handle survives;
// an owned one is disposed with the widget.
func (f *FocusableBase) ReleaseFocus() {
	if f.coord.Attached() && f.coord.Current().Focused() {
		f.coord.Current().SetFocused(false)
	}
	f.coord.Detach()
}

// Focus routes the gain through the handle so the tracker edge comes
// from the coordinator's listener.
func (f *FocusableBase) Focus() {
	f.ensureHandle()
	f.coord.Current().SetFocused(true)
}

// Blur routes the loss through the handle.
func (f *FocusableBase) Blur() {
	if !f.coord.Attached() {
		f.tracker.SetFocused(false)
		return
	}
	f.coord.Current().SetFocused(false)
}

// isActivation reports whether a key message activates the focused
// widget: Enter or the space bar.
func isActivation(msg runtime.KeyMsg) bool {
	return msg.Key == terminal.KeyEnter || (msg.Key == terminal.KeyRune && msg.Rune == ' ')
}

// labelWidth is the display width of a label in cells.
func labelWidth(s string) int {
	return runewidth.StringWidth(s)
}

// drawLabel draws a single line of text clipped to bounds.
func drawLabel(buf *runtime.Buffer, bounds geometry.Rect, text string, style backend.Style) {
	if bounds.Height < 1 {
		return
	}
	if runewidth.StringWidth(text) > bounds.Width {
		text = runewidth.Truncate(text, bounds.Width, "…")
	}
	buf.SetString(bounds.X, bounds.Y, text, style)
}
