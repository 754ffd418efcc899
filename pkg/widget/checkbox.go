package widget

import (
	"github.com/odvcencio/headless/pkg/geometry"
	"github.com/odvcencio/headless/pkg/interaction"
	"github.com/odvcencio/headless/pkg/runtime"
	"github.com/odvcencio/headless/pkg/terminal"
)

// Checkbox is an on/off control with a label. The checked flag is
// mirrored into the tracker's selected state so the theme can style it.
type Checkbox struct {
	FocusableBase

	label    string
	checked  bool
	onChange func(bool)
	styles   StyleFunc
}

// NewCheckbox creates a checkbox.
func NewCheckbox(label string, onChange func(bool)) *Checkbox {
	return &Checkbox{
		label:    label,
		onChange: onChange,
		styles:   defaultTheme.Control.Resolve,
	}
}

// SetStyles overrides the default theme table.
func (c *Checkbox) SetStyles(fn StyleFunc) {
	c.styles = fn
}

// Checked reports the current value.
func (c *Checkbox) Checked() bool {
	return c.checked
}

// SetChecked sets the value without firing onChange.
func (c *Checkbox) SetChecked(on bool) {
	c.checked = on
	c.Tracker().SetSelected(on)
}

// Toggle flips the value and fires onChange.
func (c *Checkbox) Toggle() {
	c.SetChecked(!c.checked)
	if c.onChange != nil {
		c.onChange(c.checked)
	}
}

// Measure returns room for the box glyph plus the label.
func (c *Checkbox) Measure(cons runtime.Constraints) geometry.Size {
	return cons.Constrain(geometry.Size{Width: labelWidth(c.label) + 4, Height: 1})
}

// Render draws the box and label.
func (c *Checkbox) Render(ctx runtime.RenderContext) {
	style := c.styles(c.States())
	mark := "[ ]"
	if c.checked {
		mark = "[x]"
	}
	drawLabel(ctx.Buffer, ctx.Bounds, mark+" "+c.label, style)
	ctx.RegisterHit(c)
}

// HandleMessage toggles on click or keyboard activation.
func (c *Checkbox) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if !c.Enabled() {
		return runtime.Unhandled()
	}

	switch m := msg.(type) {
	case runtime.MouseMsg:
		switch m.Action {
		case terminal.MousePress:
			if m.Button == terminal.MouseLeft {
				c.Tracker().SetPressed(true)
				return runtime.Handled()
			}
		case terminal.MouseRelease:
			wasPressed := c.Tracker().Raw().Has(interaction.Pressed)
			c.Tracker().SetPressed(false)
			if wasPressed && c.bounds.Contains(m.X, m.Y) {
				c.Toggle()
			}
			return runtime.Handled()
		}

	case runtime.KeyMsg:
		if c.IsFocused() && isActivation(m) {
			c.Toggle()
			return runtime.Handled()
		}
	}
	return runtime.Unhandled()
}
