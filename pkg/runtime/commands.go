package runtime

import (
	"github.com/odvcencio/headless/pkg/geometry"
	"github.com/odvcencio/headless/pkg/overlay"
)

// Command represents an intent emitted by widgets, bubbling up to the
// screen and then the app for handling.
type Command interface {
	isCommand()
}

// Quit asks the application to exit.
type Quit struct{}

func (Quit) isCommand() {}

// Refresh requests a full repaint.
type Refresh struct{}

func (Refresh) isCommand() {}

// FocusNext moves focus one step forward in the focused layer's ring.
type FocusNext struct{}

func (FocusNext) isCommand() {}

// FocusPrev moves focus one step backward.
type FocusPrev struct{}

func (FocusPrev) isCommand() {}

// FocusFirst moves focus to the ring's first position.
type FocusFirst struct{}

func (FocusFirst) isCommand() {}

// FocusLast moves focus to the ring's last position.
type FocusLast struct{}

func (FocusLast) isCommand() {}

// PushOverlay asks the screen to push a floating layer anchored to a
// trigger. AnchorOf is re-queried on every reflow so the surface follows
// its anchor.
type PushOverlay struct {
	Widget     Widget
	AnchorOf   func() geometry.Rect
	Spec       overlay.Spec
	Controller *overlay.Controller
	Modal      bool
	Dismiss    bool // pop when the pointer is pressed outside the surface
}

func (PushOverlay) isCommand() {}

// PopOverlay asks the screen to pop the top layer.
type PopOverlay struct{}

func (PopOverlay) isCommand() {}
