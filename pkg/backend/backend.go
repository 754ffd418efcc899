// Package backend defines the terminal abstraction the interaction core
// renders through. Implementations exist for real terminals (tcell) and
// for tests (sim), so interaction behavior can be driven end to end by
// injected events without a TTY.
package backend

import "github.com/odvcencio/headless/pkg/terminal"

// Backend is the terminal abstraction layer.
type Backend interface {
	// Init enters raw mode and the alternate screen, and enables mouse
	// motion reporting. Hover tracking depends on motion events.
	Init() error

	// Fini restores the terminal state.
	Fini()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetContent sets the cell at (x, y).
	SetContent(x, y int, r rune, style Style)

	// Show flushes the internal buffer to the terminal.
	Show()

	// Clear clears the screen.
	Clear()

	// HideCursor hides the terminal cursor.
	HideCursor()

	// ShowCursor shows the cursor at the given position.
	ShowCursor(x, y int)

	// PollEvent blocks until an event is available. Returns nil when the
	// backend is shutting down.
	PollEvent() terminal.Event

	// PostEvent injects an event into the queue. Used by tests and by
	// internal wakeups.
	PostEvent(ev terminal.Event) error

	// Sync forces a full repaint on the next Show.
	Sync()
}
