package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/headless/pkg/geometry"
	"github.com/odvcencio/headless/pkg/interaction"
	"github.com/odvcencio/headless/pkg/terminal"
)

func TestButtonClickOnReleaseInside(t *testing.T) {
	var clicks int
	b := NewButton(ButtonConfig{Label: "OK", OnClick: func() { clicks++ }})
	b.Layout(geometry.NewRect(0, 0, 8, 1))

	b.HandleMessage(pressAt(2, 0))
	assert.True(t, b.States().Has(interaction.Pressed))

	b.HandleMessage(releaseAt(2, 0))
	assert.False(t, b.States().Has(interaction.Pressed))
	assert.Equal(t, 1, clicks)
}

func TestButtonNoClickOnReleaseOutside(t *testing.T) {
	var clicks int
	b := NewButton(ButtonConfig{Label: "OK", OnClick: func() { clicks++ }})
	b.Layout(geometry.NewRect(0, 0, 8, 1))

	b.HandleMessage(pressAt(2, 0))
	// Dragged off before releasing: press state clears, no click.
	b.HandleMessage(releaseAt(50, 10))
	assert.False(t, b.States().Has(interaction.Pressed))
	assert.Zero(t, clicks)
}

func TestButtonKeyboardActivation(t *testing.T) {
	sched, clock := newManualScheduler()

	var clicks int
	b := NewButton(ButtonConfig{Label: "OK", OnClick: func() { clicks++ }, Scheduler: sched})
	b.Layout(geometry.NewRect(0, 0, 8, 1))
	b.Focus()

	result := b.HandleMessage(keyMsg(terminal.KeyEnter))
	require.True(t, result.Handled)
	assert.Equal(t, 1, clicks)

	// The press flash holds until the scheduler releases it.
	assert.True(t, b.States().Has(interaction.Pressed))
	clock.advance()
	assert.False(t, b.States().Has(interaction.Pressed))
}

func TestButtonRapidActivationsResetFlash(t *testing.T) {
	sched, clock := newManualScheduler()

	b := NewButton(ButtonConfig{Label: "OK", Scheduler: sched})
	b.Focus()

	b.HandleMessage(keyMsg(terminal.KeyEnter))
	b.HandleMessage(keyMsg(terminal.KeyEnter))
	b.HandleMessage(keyMsg(terminal.KeyEnter))

	// One live timer, the rest superseded.
	assert.Equal(t, 1, clock.live())
	clock.advance()
	assert.False(t, b.States().Has(interaction.Pressed))
}

func TestButtonUnfocusedIgnoresKeys(t *testing.T) {
	var clicks int
	b := NewButton(ButtonConfig{Label: "OK", OnClick: func() { clicks++ }})

	result := b.HandleMessage(keyMsg(terminal.KeyEnter))
	assert.False(t, result.Handled)
	assert.Zero(t, clicks)
}

func TestButtonDisabledIgnoresEverything(t *testing.T) {
	var clicks int
	b := NewButton(ButtonConfig{Label: "OK", OnClick: func() { clicks++ }})
	b.Layout(geometry.NewRect(0, 0, 8, 1))
	b.Focus()
	b.SetEnabled(false)

	b.HandleMessage(pressAt(2, 0))
	b.HandleMessage(releaseAt(2, 0))
	b.HandleMessage(keyMsg(terminal.KeyEnter))

	assert.Zero(t, clicks)
	assert.False(t, b.CanFocus())
}

func TestButtonDisabledMasksHover(t *testing.T) {
	b := NewButton(ButtonConfig{Label: "OK"})
	b.SetHovered(true)
	assert.True(t, b.States().Has(interaction.Hovered))

	b.SetEnabled(false)
	assert.False(t, b.States().Has(interaction.Hovered))

	// The raw flag survives and resurfaces on enable.
	b.SetEnabled(true)
	assert.True(t, b.States().Has(interaction.Hovered))
}

func TestButtonSpaceActivates(t *testing.T) {
	var clicks int
	b := NewButton(ButtonConfig{Label: "OK", OnClick: func() { clicks++ }})
	b.Focus()

	b.HandleMessage(runeMsg(' '))
	assert.Equal(t, 1, clicks)
}
