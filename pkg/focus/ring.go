package focus

// Target is a member of a focus group.
type Target interface {
	// CanFocus reports whether the member can currently receive focus.
	CanFocus() bool

	// Focus is called when the member gains focus.
	Focus()

	// Blur is called when the member loses focus.
	Blur()
}

// Ring is an ordered focus group implementing Mover. A linear ring stops
// at its ends; a wrapping ring cycles, which makes it exactly the kind of
// circular traversal order the engine's cap exists to survive.
type Ring struct {
	targets []Target
	current int // index of focused member, -1 if none
	wrap    bool
}

// NewRing creates a focus group. wrap selects cyclic traversal.
func NewRing(wrap bool, targets ...Target) *Ring {
	return &Ring{targets: targets, current: -1, wrap: wrap}
}

// Add appends a member to the group.
func (r *Ring) Add(t Target) {
	r.targets = append(r.targets, t)
}

// Remove drops a member. If it was focused, focus is cleared.
func (r *Ring) Remove(t Target) {
	for i, existing := range r.targets {
		if existing == t {
			if r.current == i {
				t.Blur()
				r.current = -1
			} else if r.current > i {
				r.current--
			}
			r.targets = append(r.targets[:i], r.targets[i+1:]...)
			return
		}
	}
}

// Current returns the focused member, or nil.
func (r *Ring) Current() Target {
	if r.current >= 0 && r.current < len(r.targets) {
		return r.targets[r.current]
	}
	return nil
}

// Len returns the number of members.
func (r *Ring) Len() int {
	return len(r.targets)
}

// Step implements Mover: advance focus to the nearest focusable member
// in dir. Reports false when no movement is possible, which for a linear
// ring means the boundary was reached.
func (r *Ring) Step(dir Direction) bool {
	n := len(r.targets)
	if n == 0 {
		return false
	}

	delta := 1
	if dir == Backward {
		delta = -1
	}

	// Nothing focused yet: enter the ring at the near end.
	if r.current < 0 {
		start := 0
		if dir == Backward {
			start = n - 1
		}
		for i := 0; i < n; i++ {
			idx := start + i*delta
			if idx < 0 || idx >= n {
				break
			}
			if r.targets[idx].CanFocus() {
				return r.focusIndex(idx)
			}
		}
		return false
	}

	for i := 1; i <= n; i++ {
		idx := r.current + i*delta
		if idx < 0 || idx >= n {
			if !r.wrap {
				return false
			}
			idx = (idx%n + n) % n
		}
		if r.targets[idx].CanFocus() {
			return r.focusIndex(idx)
		}
	}
	return false
}

func (r *Ring) focusIndex(i int) bool {
	if i == r.current {
		return false
	}
	if r.current >= 0 && r.current < len(r.targets) {
		r.targets[r.current].Blur()
	}
	r.current = i
	r.targets[i].Focus()
	return true
}
