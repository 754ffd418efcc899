package widget

import (
	"github.com/odvcencio/headless/pkg/geometry"
	"github.com/odvcencio/headless/pkg/interaction"
	"github.com/odvcencio/headless/pkg/runtime"
	"github.com/odvcencio/headless/pkg/terminal"
)

// Toggle is a two-position switch. Unlike Checkbox it renders as a
// slider and supports explicit left/right keys in addition to
// activation.
type Toggle struct {
	FocusableBase

	label    string
	on       bool
	onChange func(bool)
	styles   StyleFunc
}

// NewToggle creates a toggle switch.
func NewToggle(label string, onChange func(bool)) *Toggle {
	return &Toggle{
		label:    label,
		onChange: onChange,
		styles:   defaultTheme.Control.Resolve,
	}
}

// SetStyles overrides the default theme table.
func (t *Toggle) SetStyles(fn StyleFunc) {
	t.styles = fn
}

// On reports the current position.
func (t *Toggle) On() bool {
	return t.on
}

// SetOn sets the position without firing onChange.
func (t *Toggle) SetOn(on bool) {
	t.on = on
	t.Tracker().SetSelected(on)
}

func (t *Toggle) flip(on bool) {
	if t.on == on {
		return
	}
	t.SetOn(on)
	if t.onChange != nil {
		t.onChange(t.on)
	}
}

// Measure returns room for the slider glyphs plus the label.
func (t *Toggle) Measure(cons runtime.Constraints) geometry.Size {
	return cons.Constrain(geometry.Size{Width: labelWidth(t.label) + 6, Height: 1})
}

// Render draws the slider and label.
func (t *Toggle) Render(ctx runtime.RenderContext) {
	style := t.styles(t.States())
	knob := "(●  )"
	if t.on {
		knob = "(  ●)"
	}
	drawLabel(ctx.Buffer, ctx.Bounds, knob+" "+t.label, style)
	ctx.RegisterHit(t)
}

// HandleMessage flips on click, activation, or left/right keys.
func (t *Toggle) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if !t.Enabled() {
		return runtime.Unhandled()
	}

	switch m := msg.(type) {
	case runtime.MouseMsg:
		switch m.Action {
		case terminal.MousePress:
			if m.Button == terminal.MouseLeft {
				t.Tracker().SetPressed(true)
				return runtime.Handled()
			}
		case terminal.MouseRelease:
			wasPressed := t.Tracker().Raw().Has(interaction.Pressed)
			t.Tracker().SetPressed(false)
			if wasPressed && t.bounds.Contains(m.X, m.Y) {
				t.flip(!t.on)
			}
			return runtime.Handled()
		}

	case runtime.KeyMsg:
		if !t.IsFocused() {
			return runtime.Unhandled()
		}
		switch {
		case isActivation(m):
			t.flip(!t.on)
			return runtime.Handled()
		case m.Key == terminal.KeyLeft:
			t.flip(false)
			return runtime.Handled()
		case m.Key == terminal.KeyRight:
			t.flip(true)
			return runtime.Handled()
		}
	}
	return runtime.Unhandled()
}
