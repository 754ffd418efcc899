// Package theme provides the default visual language for the toolkit:
// a dark palette and per-state style tables widgets resolve their
// interaction snapshots against.
package theme

import (
	"github.com/odvcencio/headless/pkg/backend"
	"github.com/odvcencio/headless/pkg/interaction"
)

// States is a style table keyed by interaction state. Widgets hand their
// masked snapshot to Resolve and draw with whatever comes back.
type States struct {
	Base     backend.Style
	Hovered  backend.Style
	Pressed  backend.Style
	Focused  backend.Style
	Selected backend.Style
	Disabled backend.Style
}

// Resolve picks the style for a state snapshot. Disabled wins over
// everything; among the rest, pressed beats hovered beats selected
// beats focused. The snapshot is already masked, so a disabled widget
// never reports hover or press here.
func (s States) Resolve(set interaction.StateSet) backend.Style {
	switch {
	case set.Has(interaction.Disabled):
		return s.Disabled
	case set.Has(interaction.Pressed):
		return s.Pressed
	case set.Has(interaction.Hovered):
		return s.Hovered
	case set.Has(interaction.Selected):
		return s.Selected
	case set.Has(interaction.Focused):
		return s.Focused
	default:
		return s.Base
	}
}

// Theme defines the complete visual language.
type Theme struct {
	// Core palette
	Background backend.Style
	Surface    backend.Style

	// Text hierarchy
	TextPrimary backend.Style
	TextMuted   backend.Style

	// UI elements
	Border      backend.Style
	BorderFocus backend.Style
	Accent      backend.Style

	// Per-widget state tables
	Button   States
	Item     States // menu items, list rows
	Control  States // checkboxes, toggles, radios
	Overlay  backend.Style
	Shortcut backend.Style
}

// DefaultTheme returns the stock dark theme.
func DefaultTheme() *Theme {
	base := backend.DefaultStyle()

	bg := backend.RGB(12, 12, 16)
	surface := backend.RGB(22, 22, 28)
	raised := backend.RGB(32, 32, 40)
	text := backend.RGB(240, 238, 232)
	muted := backend.RGB(100, 98, 92)
	accent := backend.RGB(255, 183, 77)
	inverse := backend.RGB(12, 12, 16)

	return &Theme{
		Background:  base.Background(bg),
		Surface:     base.Background(surface),
		TextPrimary: base.Foreground(text),
		TextMuted:   base.Foreground(muted),
		Border:      base.Foreground(backend.RGB(50, 50, 60)),
		BorderFocus: base.Foreground(accent),
		Accent:      base.Foreground(accent),

		Button: States{
			Base:     base.Foreground(text).Background(surface),
			Hovered:  base.Foreground(text).Background(raised),
			Pressed:  base.Foreground(inverse).Background(accent),
			Focused:  base.Foreground(accent).Background(surface).Bold(true),
			Selected: base.Foreground(accent).Background(surface),
			Disabled: base.Foreground(muted).Background(bg).Dim(true),
		},
		Item: States{
			Base:     base.Foreground(text).Background(raised),
			Hovered:  base.Foreground(inverse).Background(accent),
			Pressed:  base.Foreground(inverse).Background(backend.RGB(255, 200, 100)),
			Focused:  base.Foreground(accent).Background(raised),
			Selected: base.Foreground(accent).Background(raised).Bold(true),
			Disabled: base.Foreground(muted).Background(raised).Dim(true),
		},
		Control: States{
			Base:     base.Foreground(text),
			Hovered:  base.Foreground(accent),
			Pressed:  base.Foreground(accent).Bold(true),
			Focused:  base.Foreground(accent).Underline(true),
			Selected: base.Foreground(accent),
			Disabled: base.Foreground(muted).Dim(true),
		},
		Overlay:  base.Foreground(text).Background(raised),
		Shortcut: base.Foreground(muted).Italic(true),
	}
}
