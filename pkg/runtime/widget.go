// Package runtime hosts the interaction core on a terminal event loop:
// the widget contract, message and command flow, the layer stack with
// anchored overlay surfaces, pointer hit testing with hover synthesis,
// and the single-goroutine App loop that serializes all mutation.
package runtime

import "github.com/odvcencio/headless/pkg/geometry"

// Constraints define the min/max space available during measure.
type Constraints struct {
	MinWidth, MaxWidth   int
	MinHeight, MaxHeight int
}

const maxInt = int(^uint(0) >> 1)

// Tight forces an exact size.
func Tight(w, h int) Constraints {
	return Constraints{MinWidth: w, MaxWidth: w, MinHeight: h, MaxHeight: h}
}

// Loose allows anything up to the given bounds.
func Loose(w, h int) Constraints {
	return Constraints{MaxWidth: w, MaxHeight: h}
}

// Unbounded has no limits.
func Unbounded() Constraints {
	return Constraints{MaxWidth: maxInt, MaxHeight: maxInt}
}

// Constrain clamps a size to fit these constraints.
func (c Constraints) Constrain(s geometry.Size) geometry.Size {
	return geometry.Size{
		Width:  geometry.Clamp(s.Width, c.MinWidth, c.MaxWidth),
		Height: geometry.Clamp(s.Height, c.MinHeight, c.MaxHeight),
	}
}

// Widget is the contract every component implements.
type Widget interface {
	// Measure returns the desired size under the given constraints.
	Measure(c Constraints) geometry.Size

	// Layout assigns the final bounds; widgets store them for Render
	// and hit registration.
	Layout(bounds geometry.Rect)

	// Bounds returns the last assigned bounds.
	Bounds() geometry.Rect

	// Render draws the widget and registers its interactive regions.
	Render(ctx RenderContext)

	// HandleMessage processes an input message.
	HandleMessage(msg Message) HandleResult
}

// Focusable is a widget that can hold keyboard focus. It satisfies
// focus.Target so layers can put it in their focus ring.
type Focusable interface {
	Widget

	CanFocus() bool
	Focus()
	Blur()
	IsFocused() bool
}

// Hoverable is a widget that reacts to synthesized pointer enter/exit.
// The screen guarantees matched pairs: every SetHovered(true) is followed
// by exactly one SetHovered(false) when the pointer leaves, the widget
// disappears, or its layer is popped.
type Hoverable interface {
	Widget

	SetHovered(on bool)
}

// HandleResult is returned from HandleMessage.
type HandleResult struct {
	Handled  bool
	Commands []Command
}

// Handled reports the message as consumed.
func Handled() HandleResult {
	return HandleResult{Handled: true}
}

// Unhandled reports the message as not consumed.
func Unhandled() HandleResult {
	return HandleResult{Handled: false}
}

// WithCommands reports the message consumed with commands for the host.
func WithCommands(cmds ...Command) HandleResult {
	return HandleResult{Handled: true, Commands: cmds}
}

// RenderContext is handed to widgets during rendering.
type RenderContext struct {
	Buffer  *Buffer
	Bounds  geometry.Rect
	Focused bool // whether the containing layer is the focused layer

	hits *HitGrid
}

// Sub narrows the context to a child's bounds.
func (ctx RenderContext) Sub(bounds geometry.Rect) RenderContext {
	ctx.Bounds = bounds
	return ctx
}

// RegisterHit records the widget as occupying its context bounds for
// pointer routing. Widgets rendered later (higher layers) win overlaps.
func (ctx RenderContext) RegisterHit(w Widget) {
	if ctx.hits != nil {
		ctx.hits.Add(w, ctx.Bounds)
	}
}
