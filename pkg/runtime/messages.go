package runtime

import (
	"time"

	"github.com/odvcencio/headless/pkg/terminal"
)

// Message represents an event flowing into the UI: terminal input,
// timer firings, or work marshaled onto the loop from other goroutines.
type Message interface {
	isMessage()
}

// KeyMsg is a keyboard input event with its resolved logical key.
type KeyMsg struct {
	Key   terminal.Key
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (KeyMsg) isMessage() {}

// ResizeMsg indicates the terminal size changed.
type ResizeMsg struct {
	Width  int
	Height int
}

func (ResizeMsg) isMessage() {}

// MouseMsg is a mouse input event, including motion.
type MouseMsg struct {
	X, Y   int
	Button terminal.MouseButton
	Action terminal.MouseAction
	Alt    bool
	Ctrl   bool
	Shift  bool
}

func (MouseMsg) isMessage() {}

// PasteMsg is bracketed-paste text.
type PasteMsg struct {
	Text string
}

func (PasteMsg) isMessage() {}

// TickMsg is sent on each frame tick.
type TickMsg struct {
	Time time.Time
}

func (TickMsg) isMessage() {}

// FuncMsg carries a closure to run on the loop goroutine. The delay
// scheduler and transition completions use it so every mutation stays
// serialized on the loop.
type FuncMsg struct {
	Fn func()
}

func (FuncMsg) isMessage() {}
