package interaction

// FlagFunc observes edge transitions of a single flag's visible value.
type FlagFunc func(on bool)

// ChangeFunc observes the visible state set after any visible change.
// Components hand their visual builder this snapshot.
type ChangeFunc func(s StateSet)

// Tracker combines raw interaction signals into one visible state set for
// a single component instance. Trackers are not shared across instances.
//
// All listener invocation is edge-triggered on the visible value: setting
// a flag to the value it already shows invokes nothing, and the masking
// applied while disabled means the disabling transition itself delivers
// the hover/press "became false" edges exactly once.
type Tracker struct {
	raw StateSet

	visible StateSet // last published masked set

	onHover  FlagFunc
	onPress  FlagFunc
	onFocus  FlagFunc
	onSelect FlagFunc
	onDrag   FlagFunc
	onChange ChangeFunc
}

// NewTracker creates a tracker with all flags clear.
func NewTracker() *Tracker {
	return &Tracker{}
}

// OnHover registers the hover edge listener. At most one per flag.
func (t *Tracker) OnHover(fn FlagFunc) { t.onHover = fn }

// OnPress registers the press edge listener.
func (t *Tracker) OnPress(fn FlagFunc) { t.onPress = fn }

// OnFocus registers the focus edge listener.
func (t *Tracker) OnFocus(fn FlagFunc) { t.onFocus = fn }

// OnSelect registers the selection edge listener.
func (t *Tracker) OnSelect(fn FlagFunc) { t.onSelect = fn }

// OnDrag registers the drag edge listener.
func (t *Tracker) OnDrag(fn FlagFunc) { t.onDrag = fn }

// OnChange registers the listener invoked after any visible change.
func (t *Tracker) OnChange(fn ChangeFunc) { t.onChange = fn }

// SetHovered records the raw hover flag.
func (t *Tracker) SetHovered(on bool) { t.set(Hovered, on) }

// SetPressed records the raw press flag.
func (t *Tracker) SetPressed(on bool) { t.set(Pressed, on) }

// SetFocused records the focus flag.
func (t *Tracker) SetFocused(on bool) { t.set(Focused, on) }

// SetDisabled records the disabled flag. Disabling a component that is
// visibly hovered or pressed delivers those flags' "became false" edges.
func (t *Tracker) SetDisabled(on bool) { t.set(Disabled, on) }

// SetSelected records the selection flag.
func (t *Tracker) SetSelected(on bool) { t.set(Selected, on) }

// SetDragged records the drag flag.
func (t *Tracker) SetDragged(on bool) { t.set(Dragged, on) }

// Snapshot returns the externally visible state set.
func (t *Tracker) Snapshot() StateSet {
	return mask(t.raw)
}

// Raw returns the unmasked flags, including hover/press recorded while
// disabled.
func (t *Tracker) Raw() StateSet {
	return t.raw
}

// Disabled reports the raw disabled flag.
func (t *Tracker) Disabled() bool {
	return t.raw.Has(Disabled)
}

func (t *Tracker) set(flag StateSet, on bool) {
	next := t.raw.with(flag, on)
	if next == t.raw {
		return
	}
	t.raw = next
	t.publish()
}

// publish diffs the masked set against the last published one and fires
// one listener per changed flag, then the change listener once.
func (t *Tracker) publish() {
	next := mask(t.raw)
	prev := t.visible
	if next == prev {
		return
	}
	t.visible = next

	changed := next ^ prev
	notify := func(flag StateSet, fn FlagFunc) {
		if changed.Has(flag) && fn != nil {
			fn(next.Has(flag))
		}
	}
	notify(Hovered, t.onHover)
	notify(Pressed, t.onPress)
	notify(Focused, t.onFocus)
	notify(Selected, t.onSelect)
	notify(Dragged, t.onDrag)
	if t.onChange != nil {
		t.onChange(next)
	}
}

// mask suppresses hover and press while disabled.
func mask(s StateSet) StateSet {
	if s.Has(Disabled) {
		return s &^ (Hovered | Pressed)
	}
	return s
}
