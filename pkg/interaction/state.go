// Package interaction derives a component's authoritative interaction
// state from raw hover, press, focus, disable, select, and drag signals.
//
// A Tracker records every raw signal as it arrives, but exposes a masked
// view: a disabled component never reports itself hovered or pressed.
// Raw values are retained underneath so re-enabling mid-gesture resumes
// from current reality rather than a stale snapshot.
package interaction

import "strings"

// StateSet is a set of interaction state flags. Flags are not mutually
// exclusive; a component can be hovered, focused, and selected at once.
type StateSet uint8

const (
	Hovered StateSet = 1 << iota
	Pressed
	Focused
	Disabled
	Selected
	Dragged
)

// Has reports whether every flag in q is present in s.
func (s StateSet) Has(q StateSet) bool {
	return s&q == q
}

var stateNames = []struct {
	flag StateSet
	name string
}{
	{Hovered, "hovered"},
	{Pressed, "pressed"},
	{Focused, "focused"},
	{Disabled, "disabled"},
	{Selected, "selected"},
	{Dragged, "dragged"},
}

// String lists the set flags, for diagnostics and test failures.
func (s StateSet) String() string {
	if s == 0 {
		return "none"
	}
	var parts []string
	for _, e := range stateNames {
		if s.Has(e.flag) {
			parts = append(parts, e.name)
		}
	}
	return strings.Join(parts, "+")
}

func (s StateSet) with(flag StateSet, on bool) StateSet {
	if on {
		return s | flag
	}
	return s &^ flag
}
