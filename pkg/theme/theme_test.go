package theme

import (
	"testing"

	"github.com/odvcencio/headless/pkg/interaction"
)

func TestStatesResolvePrecedence(t *testing.T) {
	s := DefaultTheme().Button

	tests := []struct {
		name string
		set  interaction.StateSet
		want interface{}
	}{
		{"empty", 0, s.Base},
		{"hovered", interaction.Hovered, s.Hovered},
		{"pressed beats hovered", interaction.Hovered | interaction.Pressed, s.Pressed},
		{"hovered beats selected", interaction.Hovered | interaction.Selected, s.Hovered},
		{"selected beats focused", interaction.Focused | interaction.Selected, s.Selected},
		{"focused alone", interaction.Focused, s.Focused},
		{"disabled beats everything", interaction.Hovered | interaction.Pressed | interaction.Focused | interaction.Selected | interaction.Disabled, s.Disabled},
	}

	for _, tt := range tests {
		if got := s.Resolve(tt.set); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDefaultThemeDistinctStates(t *testing.T) {
	s := DefaultTheme().Button

	if s.Base == s.Hovered {
		t.Error("hovered should be visually distinct from base")
	}
	if s.Base == s.Disabled {
		t.Error("disabled should be visually distinct from base")
	}
	if s.Hovered == s.Pressed {
		t.Error("pressed should be visually distinct from hovered")
	}
}
