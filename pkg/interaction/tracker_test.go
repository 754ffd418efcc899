package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_SnapshotMasksWhileDisabled(t *testing.T) {
	tr := NewTracker()
	tr.SetHovered(true)
	tr.SetPressed(true)
	tr.SetFocused(true)

	require.Equal(t, Hovered|Pressed|Focused, tr.Snapshot())

	tr.SetDisabled(true)

	snap := tr.Snapshot()
	assert.False(t, snap.Has(Hovered), "disabled snapshot must not contain hovered")
	assert.False(t, snap.Has(Pressed), "disabled snapshot must not contain pressed")
	assert.True(t, snap.Has(Focused))
	assert.True(t, snap.Has(Disabled))

	// Raw flags survive underneath.
	assert.True(t, tr.Raw().Has(Hovered))
	assert.True(t, tr.Raw().Has(Pressed))
}

func TestTracker_MaskingHoldsForAllSignalOrders(t *testing.T) {
	// Whatever arrives after disabling, the visible set stays clean.
	tr := NewTracker()
	tr.SetDisabled(true)

	tr.SetHovered(true)
	tr.SetPressed(true)
	tr.SetHovered(false)
	tr.SetHovered(true)
	tr.SetPressed(false)
	tr.SetPressed(true)

	snap := tr.Snapshot()
	assert.False(t, snap.Has(Hovered))
	assert.False(t, snap.Has(Pressed))
}

func TestTracker_DisableSynthesizesReleaseEdgesOnce(t *testing.T) {
	tr := NewTracker()

	var hoverEdges, pressEdges []bool
	tr.OnHover(func(on bool) { hoverEdges = append(hoverEdges, on) })
	tr.OnPress(func(on bool) { pressEdges = append(pressEdges, on) })

	tr.SetHovered(true)
	tr.SetPressed(true)
	require.Equal(t, []bool{true}, hoverEdges)
	require.Equal(t, []bool{true}, pressEdges)

	tr.SetDisabled(true)
	assert.Equal(t, []bool{true, false}, hoverEdges, "disable must deliver hover false edge")
	assert.Equal(t, []bool{true, false}, pressEdges, "disable must deliver press false edge")

	// Raw churn while disabled produces no further edges.
	tr.SetHovered(false)
	tr.SetHovered(true)
	tr.SetPressed(false)
	assert.Equal(t, []bool{true, false}, hoverEdges)
	assert.Equal(t, []bool{true, false}, pressEdges)
}

func TestTracker_ReenableResumesFromRawFlags(t *testing.T) {
	tr := NewTracker()

	var hoverEdges []bool
	tr.OnHover(func(on bool) { hoverEdges = append(hoverEdges, on) })

	tr.SetHovered(true)
	tr.SetDisabled(true)
	require.Equal(t, []bool{true, false}, hoverEdges)

	// Pointer still over the component; re-enabling restores hover.
	tr.SetDisabled(false)
	assert.Equal(t, []bool{true, false, true}, hoverEdges)
	assert.True(t, tr.Snapshot().Has(Hovered))
}

func TestTracker_NoRedundantNotifications(t *testing.T) {
	tr := NewTracker()

	calls := 0
	tr.OnFocus(func(bool) { calls++ })

	tr.SetFocused(true)
	tr.SetFocused(true)
	tr.SetFocused(true)
	assert.Equal(t, 1, calls)

	tr.SetFocused(false)
	tr.SetFocused(false)
	assert.Equal(t, 2, calls)
}

func TestTracker_ChangeListenerSeesMaskedSet(t *testing.T) {
	tr := NewTracker()

	var last StateSet
	changes := 0
	tr.OnChange(func(s StateSet) {
		last = s
		changes++
	})

	tr.SetPressed(true)
	require.Equal(t, 1, changes)
	assert.True(t, last.Has(Pressed))

	tr.SetDisabled(true)
	require.Equal(t, 2, changes)
	assert.False(t, last.Has(Pressed))
	assert.True(t, last.Has(Disabled))

	// Setting an already-masked flag is invisible: no change callback.
	tr.SetHovered(true)
	assert.Equal(t, 2, changes)
}

func TestTracker_SelectedAndDraggedUnaffectedByDisable(t *testing.T) {
	tr := NewTracker()
	tr.SetSelected(true)
	tr.SetDragged(true)
	tr.SetDisabled(true)

	snap := tr.Snapshot()
	assert.True(t, snap.Has(Selected))
	assert.True(t, snap.Has(Dragged))
}

func TestStateSet_String(t *testing.T) {
	assert.Equal(t, "none", StateSet(0).String())
	assert.Equal(t, "hovered+focused", (Hovered | Focused).String())
}
