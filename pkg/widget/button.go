package widget

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/headless/pkg/focus"
	"github.com/odvcencio/headless/pkg/geometry"
	"github.com/odvcencio/headless/pkg/interaction"
	"github.com/odvcencio/headless/pkg/runtime"
	"github.com/odvcencio/headless/pkg/schedule"
	"github.com/odvcencio/headless/pkg/terminal"
)

// PressFlashDuration is how long a keyboard activation shows the pressed
// visual before it is released by the scheduler.
const PressFlashDuration = 120 * time.Millisecond

// ButtonConfig configures a Button.
type ButtonConfig struct {
	Label   string
	OnClick func()

	// Styles overrides the default theme table.
	Styles StyleFunc

	// Scheduler drives the keyboard press flash. Without one, keyboard
	// activation clicks without pressed feedback.
	Scheduler *schedule.Scheduler

	// FocusHandle lends an external focus handle; the caller keeps its
	// lifetime. Nil lets the button allocate and own one.
	FocusHandle *focus.Handle
}

// Button is a clickable widget. Pointer presses hold the pressed state
// until release; keyboard activation flashes it through the scheduler so
// the click still reads as a press.
type Button struct {
	FocusableBase

	id      string
	label   string
	onClick func()
	styles  StyleFunc
	sched   *schedule.Scheduler
}

// NewButton creates a button.
func NewButton(cfg ButtonConfig) *Button {
	styles := cfg.Styles
	if styles == nil {
		styles = defaultTheme.Button.Resolve
	}
	b := &Button{
		id:      ulid.Make().String(),
		label:   cfg.Label,
		onClick: cfg.OnClick,
		styles:  styles,
		sched:   cfg.Scheduler,
	}
	if cfg.FocusHandle != nil {
		_ = b.UseFocusHandle(cfg.FocusHandle)
	}
	return b
}

// ID returns the button's instance identifier.
func (b *Button) ID() string {
	return b.id
}

// Label returns the button text.
func (b *Button) Label() string {
	return b.label
}

// SetLabel changes the button text.
func (b *Button) SetLabel(label string) {
	b.label = label
}

// Measure returns the label width plus bracket padding.
func (b *Button) Measure(c runtime.Constraints) geometry.Size {
	return c.Constrain(geometry.Size{Width: labelWidth(b.label) + 4, Height: 1})
}

// Render draws the button and registers it for pointer hits.
func (b *Button) Render(ctx runtime.RenderContext) {
	style := b.styles(b.States())
	ctx.Buffer.Fill(ctx.Bounds, ' ', style)
	drawLabel(ctx.Buffer, ctx.Bounds.Inset(0, 2, 0, 2), b.label, style)
	ctx.RegisterHit(b)
}

// HandleMessage processes clicks and keyboard activation.
func (b *Button) HandleMessage(msg runtime.Message) runtime.HandleResult {
	if !b.Enabled() {
		return runtime.Unhandled()
	}

	switch m := msg.(type) {
	case runtime.MouseMsg:
		switch m.Action {
		case terminal.MousePress:
			if m.Button == terminal.MouseLeft {
				b.Tracker().SetPressed(true)
				return runtime.Handled()
			}
		case terminal.MouseRelease:
			wasPressed := b.Tracker().Raw().Has(interaction.Pressed)
			b.Tracker().SetPressed(false)
			if wasPressed && b.bounds.Contains(m.X, m.Y) {
				b.click()
			}
			return runtime.Handled()
		}

	case runtime.KeyMsg:
		if b.IsFocused() && isActivation(m) {
			b.flashPress()
			b.click()
			return runtime.Handled()
		}
	}
	return runtime.Unhandled()
}

// flashPress shows the pressed state momentarily for keyboard
// activation. Rapid activations reset the flash rather than stacking
// releases.
func (b *Button) flashPress() {
	if b.sched == nil {
		return
	}
	b.Tracker().SetPressed(true)
	b.sched.Schedule(b.id+"/press", PressFlashDuration, func() {
		b.Tracker().SetPressed(false)
	})
}

func (b *Button) click() {
	if b.onClick != nil {
		b.onClick()
	}
}
