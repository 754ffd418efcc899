package overlay

import (
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"
)

// ErrDisposed reports a call on a controller after Dispose. Disposed
// controllers fail loudly so use-after-dispose bugs surface during
// integration instead of silently succeeding in production.
var ErrDisposed = errors.New("overlay: controller disposed")

// State is the overlay lifecycle state. Opening and Closing exist only
// while an enter or exit transition is running; a controller without
// transitions collapses them immediately.
type State int

const (
	Closed State = iota
	Opening
	Open
	Closing
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Opening:
		return "opening"
	case Open:
		return "open"
	case Closing:
		return "closing"
	}
	return "unknown"
}

// Transition runs an enter or exit animation and calls done when it
// completes. done is safe to call late: a completion that arrives after
// the controller moved on is ignored.
type Transition func(done func())

// ListenerID identifies a registered listener for removal.
type ListenerID int

// Config configures a Controller.
type Config struct {
	// Owned records which side is responsible for disposal: true when a
	// consuming component created the controller internally, false when
	// the caller constructed it and lent it out. Fixed at construction.
	Owned bool

	// Enter and Exit are optional transition hooks. Nil hooks commit the
	// target state immediately.
	Enter Transition
	Exit  Transition
}

type listener struct {
	id ListenerID
	fn func(State)
}

// Controller owns the open/closed lifecycle of one floating surface.
// Listeners are notified exactly once per state transition, synchronously,
// before the call that caused the transition returns.
type Controller struct {
	id        string
	owned     bool
	enter     Transition
	exit      Transition
	state     State
	epoch     uint64 // invalidates stale transition completions
	disposed  bool
	listeners []listener
	nextID    ListenerID
}

// NewController creates a controller in the Closed state.
func NewController(cfg Config) *Controller {
	return &Controller{
		id:    ulid.Make().String(),
		owned: cfg.Owned,
		enter: cfg.Enter,
		exit:  cfg.Exit,
	}
}

// ID returns the controller's instance identifier, for diagnostics.
func (c *Controller) ID() string {
	return c.id
}

// Owned reports which side disposes this controller.
func (c *Controller) Owned() bool {
	return c.owned
}

// State returns the current lifecycle state.
func (c *Controller) State() (State, error) {
	if c.disposed {
		return Closed, c.disposedErr("state")
	}
	return c.state, nil
}

// IsOpen reports whether the overlay is open or on its way open.
func (c *Controller) IsOpen() (bool, error) {
	if c.disposed {
		return false, c.disposedErr("isOpen")
	}
	return c.state == Open || c.state == Opening, nil
}

// Open starts opening the surface. A surface already open or opening is
// left alone; a closing surface turns around.
func (c *Controller) Open() error {
	if c.disposed {
		return c.disposedErr("open")
	}
	if c.state == Open || c.state == Opening {
		return nil
	}

	c.setState(Opening)
	epoch := c.epoch
	commit := func() {
		if c.disposed || c.epoch != epoch || c.state != Opening {
			return
		}
		c.setState(Open)
	}
	if c.enter == nil {
		commit()
		return nil
	}
	c.enter(commit)
	return nil
}

// Close starts closing the surface. Already closed or closing is a no-op;
// an opening surface turns around.
func (c *Controller) Close() error {
	if c.disposed {
		return c.disposedErr("close")
	}
	if c.state == Closed || c.state == Closing {
		return nil
	}

	c.setState(Closing)
	epoch := c.epoch
	commit := func() {
		if c.disposed || c.epoch != epoch || c.state != Closing {
			return
		}
		c.setState(Closed)
	}
	if c.exit == nil {
		commit()
		return nil
	}
	c.exit(commit)
	return nil
}

// Toggle opens a closed surface and closes an open one.
func (c *Controller) Toggle() error {
	if c.disposed {
		return c.disposedErr("toggle")
	}
	if c.state == Open || c.state == Opening {
		return c.Close()
	}
	return c.Open()
}

// AddListener registers fn for state transitions.
func (c *Controller) AddListener(fn func(State)) (ListenerID, error) {
	if c.disposed {
		return 0, c.disposedErr("addListener")
	}
	c.nextID++
	c.listeners = append(c.listeners, listener{id: c.nextID, fn: fn})
	return c.nextID, nil
}

// RemoveListener unregisters a listener. Unknown IDs are ignored.
func (c *Controller) RemoveListener(id ListenerID) error {
	if c.disposed {
		return c.disposedErr("removeListener")
	}
	for i, l := range c.listeners {
		if l.id == id {
			c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
			break
		}
	}
	return nil
}

// Dispose permanently retires the controller. Every later call on it,
// including a second Dispose, fails with ErrDisposed.
func (c *Controller) Dispose() error {
	if c.disposed {
		return c.disposedErr("dispose")
	}
	c.disposed = true
	c.epoch++
	c.listeners = nil
	return nil
}

// setState commits a state change and notifies listeners once.
func (c *Controller) setState(next State) {
	if c.state == next {
		return
	}
	c.state = next
	c.epoch++
	for _, l := range c.listeners {
		l.fn(next)
	}
}

func (c *Controller) disposedErr(op string) error {
	return fmt.Errorf("%s on controller %s: %w", op, c.id, ErrDisposed)
}
