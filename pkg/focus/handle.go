// Package focus manages the focus resources of interaction components:
// a Handle wrapping the host focus node, a Coordinator owning or
// borrowing that handle across configuration changes, and a bounded
// traversal engine for directional focus movement.
package focus

import "errors"

// ErrInvalidState reports an operation attempted in the wrong lifecycle
// phase, such as swapping a handle while nothing is attached. It marks an
// integration bug upstream and is never swallowed.
var ErrInvalidState = errors.New("focus: invalid lifecycle state")

// Handle wraps a host focus resource. The owned flag is fixed at
// construction: true when the core allocated the handle, false when the
// caller supplied it. Only the owning side disposes it.
type Handle struct {
	owned    bool
	disposed bool
	focused  bool
	onChange func(bool)
}

// NewHandle creates a caller-owned handle for lending to a component.
func NewHandle() *Handle {
	return &Handle{}
}

// newOwnedHandle creates a core-allocated handle.
func newOwnedHandle() *Handle {
	return &Handle{owned: true}
}

// Owned reports whether the core allocated this handle.
func (h *Handle) Owned() bool {
	return h.owned
}

// Disposed reports whether the handle has been released.
func (h *Handle) Disposed() bool {
	return h.disposed
}

// Focused reports whether the host currently assigns focus here.
func (h *Handle) Focused() bool {
	return h.focused
}

// SetFocused records a focus gain or loss reported by the host, invoking
// the change listener on an actual edge.
func (h *Handle) SetFocused(on bool) {
	if h.disposed || h.focused == on {
		return
	}
	h.focused = on
	if h.onChange != nil {
		h.onChange(on)
	}
}

// notify installs the coordinator's change listener. A nil fn detaches.
func (h *Handle) notify(fn func(bool)) {
	h.onChange = fn
}

// dispose releases the handle. Idempotent.
func (h *Handle) dispose() {
	h.disposed = true
	h.onChange = nil
	h.focused = false
}
