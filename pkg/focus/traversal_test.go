package focus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTarget struct {
	id       string
	canFocus bool
	focused  bool
}

func (f *fakeTarget) CanFocus() bool { return f.canFocus }
func (f *fakeTarget) Focus()         { f.focused = true }
func (f *fakeTarget) Blur()          { f.focused = false }

func makeRing(wrap bool, n int) (*Ring, []*fakeTarget) {
	targets := make([]*fakeTarget, n)
	ring := NewRing(wrap)
	for i := range targets {
		targets[i] = &fakeTarget{id: string(rune('a' + i%26)), canFocus: true}
		ring.Add(targets[i])
	}
	return ring, targets
}

func TestRing_LinearTraversal(t *testing.T) {
	ring, targets := makeRing(false, 3)
	tr := NewTraverser(ring, nil)

	tr.First()
	assert.Same(t, targets[0], ring.Current().(*fakeTarget))

	require.True(t, tr.Next())
	assert.Same(t, targets[1], ring.Current().(*fakeTarget))
	assert.False(t, targets[0].focused, "previous member blurred")
	assert.True(t, targets[1].focused)

	tr.Last()
	assert.Same(t, targets[2], ring.Current().(*fakeTarget))

	// At the linear boundary, Next reports no movement.
	assert.False(t, tr.Next())
	assert.Same(t, targets[2], ring.Current().(*fakeTarget))
}

func TestRing_SkipsNonFocusable(t *testing.T) {
	ring, targets := makeRing(false, 4)
	targets[1].canFocus = false
	targets[3].canFocus = false
	tr := NewTraverser(ring, nil)

	tr.First()
	assert.Same(t, targets[0], ring.Current().(*fakeTarget))

	require.True(t, tr.Next())
	assert.Same(t, targets[2], ring.Current().(*fakeTarget))

	tr.Last()
	assert.Same(t, targets[2], ring.Current().(*fakeTarget))
}

func TestTraverser_TerminatesOnAllGraphSizes(t *testing.T) {
	for _, n := range []int{1, 2, 100} {
		ring, _ := makeRing(false, n)
		tr := NewTraverser(ring, nil)

		start := time.Now()
		tr.First()
		tr.Last()
		tr.Next()
		tr.Previous()
		elapsed := time.Since(start)

		assert.Less(t, elapsed, 50*time.Millisecond, "size %d traversal too slow", n)
		assert.NotNil(t, ring.Current())
	}
}

func TestTraverser_CircularGraphHitsCapAndReturns(t *testing.T) {
	// A wrapping ring never reports a boundary, which is exactly the
	// misconfiguration the cap guards against.
	ring, _ := makeRing(true, 5)
	tr := NewTraverser(ring, nil)

	start := time.Now()
	tr.First()
	tr.Last()
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 50*time.Millisecond)
	assert.NotNil(t, ring.Current(), "cap leaves focus at the last reached position")
}

// countingMover counts primitive invocations to verify the bound.
type countingMover struct {
	steps int
}

func (m *countingMover) Step(Direction) bool {
	m.steps++
	return true // never reaches a boundary
}

func TestTraverser_CapBoundsPrimitiveInvocations(t *testing.T) {
	m := &countingMover{}
	tr := NewTraverser(m, nil)

	tr.First()
	assert.Equal(t, TraversalCap, m.steps)

	m.steps = 0
	tr.Last()
	assert.Equal(t, TraversalCap, m.steps)
}

func TestRing_RemoveFocusedClearsFocus(t *testing.T) {
	ring, targets := makeRing(false, 2)
	tr := NewTraverser(ring, nil)
	tr.First()

	ring.Remove(targets[0])
	assert.Nil(t, ring.Current())
	assert.False(t, targets[0].focused)
	assert.Equal(t, 1, ring.Len())
}
