package widget

import (
	"github.com/odvcencio/headless/pkg/focus"
	"github.com/odvcencio/headless/pkg/geometry"
	"github.com/odvcencio/headless/pkg/interaction"
	"github.com/odvcencio/headless/pkg/runtime"
	"github.com/odvcencio/headless/pkg/terminal"
)

// RadioOption is one entry in a RadioGroup.
type RadioOption struct {
	Label    string
	Disabled bool
}

// RadioGroup is a vertical list of mutually exclusive options. Keyboard
// movement runs through the bounded traversal engine, stepping over
// disabled options; Home and End jump to the first and last selectable
// option.
type RadioGroup struct {
	FocusableBase

	options  []RadioOption
	selected int
	hovered  int
	onSelect func(int)
	styles   StyleFunc

	traverser *focus.Traverser
}

// NewRadioGroup creates a radio group. Selection starts at -1 until the
// user or caller picks an option.
func NewRadioGroup(options []RadioOption, onSelect func(int)) *RadioGroup {
	g := &RadioGroup{
		options:  options,
		selected: -1,
		hovered:  -1,
		onSelect: onSelect,
		styles:   defaultTheme.Control.Resolve,
	}
	g.traverser = focus.NewTraverser((*radioMover)(g), nil)
	return g
}

// SetStyles overrides the default theme table.
func (g *RadioGroup) SetStyles(fn StyleFunc) {
	g.styles = fn
}

// Selected returns the selected option index, or -1.
func (g *RadioGroup) Selected() int {
	return g.selected
}

// Select picks an option by index, firing onSelect on change. Disabled
// and out-of-range indexes are ignored.
func (g *RadioGroup) Select(i int) {
	if i < 0 || i >= len(g.options) || g.options[i].Disabled || i == g.selected {
		return
	}
	g.selected = i
	g.Tracker().SetSelected(true)
	if g.onSelect != nil {
		g.onSelect(i)
	}
}

// radioMover adapts the group to the traversal engine: one step moves
// the selection to the adjacent enabled option, reporting false at the
// ends.
type radioMover RadioGroup

func (m *radioMover) Step(dir focus.Direction) bool {
	g := (*RadioGroup)(m)
	delta, start := 1, g.selected+1
	if dir == focus.Backward {
		delta = -1
		start = g.selected - 1
		if g.selected < 0 {
			// Nothing selected yet; enter from the far end.
			start = len(g.options) - 1
		}
	}
	for i := start; i >= 0 && i < len(g.options); i += delta {
		if !g.options[i].Disabled {
			g.Select(i)
			return true
		}
	}
	return false
}

// Measure returns the widest option row by display width.
func (g *RadioGroup) Measure(cons runtime.Constraints) geometry.Size {
	w := 0
	for _, opt := range g.options {
		if lw := labelWidth(opt.Label) + 4; lw > w {
			w = lw
		}
	}
	return cons.Constrain(geometry.Size{Width: w, Height: len(g.options)})
}

// Render draws one option per row.
func (g *RadioGroup) Render(ctx runtime.RenderContext) {
	base := g.States()
	for i, opt := range g.options {
		row := geometry.NewRect(ctx.Bounds.X, ctx.Bounds.Y+i, ctx.Bounds.Width, 1)
		if row.Y >= ctx.Bounds.Y+ctx.Bounds.Height {
			break
		}

		states := rowStates(base, i == g.selected, i == g.hovered, opt.Disabled)
		style := g.styles(states)

		mark := "( )"
		if i == g.selected {
			mark = "(•)"
		}
		drawLabel(ctx.Buffer, row, mark+" "+opt.Label, style)
	}
	ctx.RegisterHit(g)
}

// HandleMessage routes arrows through the traversal engine and clicks to
// the option under the pointer.
func (g *RadioGroup) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if !g.Enabled() {
		return runtime.Unhandled()
	}

	switch m := msg.(type) {
	case runtime.MouseMsg:
		switch m.Action {
		case terminal.MouseMove:
			g.hovered = g.rowAt(m.Y)
			return runtime.Handled()
		case terminal.MousePress:
			if m.Button == terminal.MouseLeft {
				g.Select(g.rowAt(m.Y))
				return runtime.Handled()
			}
		}

	case runtime.KeyMsg:
		if !g.IsFocused() {
			return runtime.Unhandled()
		}
		switch m.Key {
		case terminal.KeyDown:
			g.traverser.Next()
			return runtime.Handled()
		case terminal.KeyUp:
			g.traverser.Previous()
			return runtime.Handled()
		case terminal.KeyHome:
			g.traverser.First()
			return runtime.Handled()
		case terminal.KeyEnd:
			g.traverser.Last()
			return runtime.Handled()
		}
	}
	return runtime.Unhandled()
}

// SetHovered clears the row highlight when the pointer leaves the group.
func (g *RadioGroup) SetHovered(on bool) {
	g.Base.SetHovered(on)
	if !on {
		g.hovered = -1
	}
}

// rowStates derives a per-row snapshot from the group's own states.
// Disabled rows mask hover and press the same way the tracker does.
func rowStates(base interaction.StateSet, selected, hovered, disabled bool) interaction.StateSet {
	set := base &^ (interaction.Selected | interaction.Hovered)
	if selected {
		set |= interaction.Selected
	}
	if hovered {
		set |= interaction.Hovered
	}
	if disabled {
		set |= interaction.Disabled
		set &^= interaction.Hovered | interaction.Pressed
	}
	return set
}

func (g *RadioGroup) rowAt(y int) int {
	i := y - g.bounds.Y
	if i < 0 || i >= len(g.options) {
		return -1
	}
	return i
}
