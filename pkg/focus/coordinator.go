package focus

import "fmt"

// Coordinator manages the focus handle of a single component across its
// lifecycle: allocation at mount, replacement on configuration change,
// and release at teardown. A handle the coordinator allocated is owned
// and disposed on detach; a borrowed handle is left untouched so the
// caller keeps control of its lifetime.
type Coordinator struct {
	handle   *Handle
	attached bool
	onFocus  func(bool)
}

// NewCoordinator creates a coordinator with nothing attached.
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// OnFocus registers the component's focus-change listener. It follows the
// live handle across Swap.
func (c *Coordinator) OnFocus(fn func(bool)) {
	c.onFocus = fn
	if c.attached {
		c.handle.notify(fn)
	}
}

// Attach binds the coordinator to external, or allocates an owned handle
// when external is nil. Attaching twice is an ErrInvalidState.
func (c *Coordinator) Attach(external *Handle) error {
	if c.attached {
		return fmt.Errorf("attach with handle already attached: %w", ErrInvalidState)
	}
	if external == nil {
		external = newOwnedHandle()
	}
	c.handle = external
	c.attached = true
	c.handle.notify(c.onFocus)
	return nil
}

// Swap replaces the current handle with next (nil allocates an owned
// replacement). The focus predicate is preserved by re-querying the new
// handle rather than carrying over the old handle's state. Swapping with
// nothing attached is an ErrInvalidState: it means mount and
// configuration-change ordering is broken upstream.
func (c *Coordinator) Swap(next *Handle) error {
	if !c.attached {
		return fmt.Errorf("swap with no handle attached: %w", ErrInvalidState)
	}

	prev := c.handle
	wasFocused := prev.Focused()
	prev.notify(nil)
	if prev.owned {
		prev.dispose()
	}

	if next == nil {
		next = newOwnedHandle()
	}
	c.handle = next
	next.notify(c.onFocus)

	// Publish an edge only if the re-queried predicate actually differs.
	if c.onFocus != nil && next.Focused() != wasFocused {
		c.onFocus(next.Focused())
	}
	return nil
}

// Detach releases the handle, disposing it only if owned. Calling Detach
// twice is a no-op.
func (c *Coordinator) Detach() {
	if !c.attached {
		return
	}
	c.handle.notify(nil)
	if c.handle.owned {
		c.handle.dispose()
	}
	c.handle = nil
	c.attached = false
}

// Current returns the attached handle, or nil.
func (c *Coordinator) Current() *Handle {
	return c.handle
}

// Attached reports whether a handle is bound.
func (c *Coordinator) Attached() bool {
	return c.attached
}
