package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/odvcencio/headless/pkg/geometry"
	"github.com/odvcencio/headless/pkg/interaction"
	"github.com/odvcencio/headless/pkg/terminal"
)

func TestCheckboxToggleByClick(t *testing.T) {
	var got []bool
	c := NewCheckbox("Enable", func(on bool) { got = append(got, on) })
	c.Layout(geometry.NewRect(0, 0, 12, 1))

	c.HandleMessage(pressAt(1, 0))
	c.HandleMessage(releaseAt(1, 0))
	assert.True(t, c.Checked())

	c.HandleMessage(pressAt(1, 0))
	c.HandleMessage(releaseAt(1, 0))
	assert.False(t, c.Checked())

	assert.Equal(t, []bool{true, false}, got)
}

func TestCheckboxKeyboardToggle(t *testing.T) {
	c := NewCheckbox("Enable", nil)
	c.Focus()

	c.HandleMessage(keyMsg(terminal.KeyEnter))
	assert.True(t, c.Checked())
	assert.True(t, c.States().Has(interaction.Selected))

	c.HandleMessage(runeMsg(' '))
	assert.False(t, c.Checked())
	assert.False(t, c.States().Has(interaction.Selected))
}

func TestCheckboxSetCheckedSilent(t *testing.T) {
	var fired int
	c := NewCheckbox("Enable", func(bool) { fired++ })

	c.SetChecked(true)
	assert.True(t, c.Checked())
	assert.Zero(t, fired)
}

func TestToggleFlip(t *testing.T) {
	var got []bool
	tg := NewToggle("Dark mode", func(on bool) { got = append(got, on) })
	tg.Focus()

	tg.HandleMessage(keyMsg(terminal.KeyEnter))
	assert.True(t, tg.On())

	// Direction keys set an absolute position; redundant presses are
	// silent.
	tg.HandleMessage(keyMsg(terminal.KeyRight))
	assert.True(t, tg.On())
	tg.HandleMessage(keyMsg(terminal.KeyLeft))
	assert.False(t, tg.On())

	assert.Equal(t, []bool{true, false}, got)
}

func TestToggleClick(t *testing.T) {
	tg := NewToggle("Dark mode", nil)
	tg.Layout(geometry.NewRect(0, 0, 16, 1))

	tg.HandleMessage(pressAt(1, 0))
	tg.HandleMessage(releaseAt(1, 0))
	assert.True(t, tg.On())
}

func TestToggleDisabled(t *testing.T) {
	tg := NewToggle("Dark mode", nil)
	tg.Focus()
	tg.SetEnabled(false)

	result := tg.HandleMessage(keyMsg(terminal.KeyEnter))
	assert.False(t, result.Handled)
	assert.False(t, tg.On())
}
