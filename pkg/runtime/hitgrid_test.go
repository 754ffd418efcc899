package runtime

import (
	"testing"

	"github.com/odvcencio/headless/pkg/geometry"
)

func TestHitGridAddAndLookup(t *testing.T) {
	g := NewHitGrid(20, 10)

	a := &mockWidget{}
	g.Add(a, geometry.NewRect(2, 2, 5, 3))

	if g.WidgetAt(2, 2) != a {
		t.Error("expected widget at its top-left corner")
	}
	if g.WidgetAt(6, 4) != a {
		t.Error("expected widget at its bottom-right corner")
	}
	if g.WidgetAt(7, 2) != nil {
		t.Error("expected nil just past the right edge")
	}
	if g.WidgetAt(-1, 0) != nil || g.WidgetAt(20, 0) != nil {
		t.Error("expected nil out of bounds")
	}
}

func TestHitGridLaterWins(t *testing.T) {
	g := NewHitGrid(20, 10)

	under := &mockWidget{}
	over := &mockWidget{}
	g.Add(under, geometry.NewRect(0, 0, 20, 10))
	g.Add(over, geometry.NewRect(5, 5, 4, 2))

	if g.WidgetAt(6, 6) != over {
		t.Error("later registration should win the overlap")
	}
	if g.WidgetAt(0, 0) != under {
		t.Error("non-overlapping cells keep the earlier widget")
	}
}

func TestHitGridClipsToGrid(t *testing.T) {
	g := NewHitGrid(10, 10)

	w := &mockWidget{}
	g.Add(w, geometry.NewRect(8, 8, 10, 10))

	if g.WidgetAt(9, 9) != w {
		t.Error("expected clipped widget inside the grid")
	}
}

func TestHitGridForget(t *testing.T) {
	g := NewHitGrid(10, 10)

	w := &mockWidget{}
	g.Add(w, geometry.NewRect(0, 0, 4, 4))
	g.Forget(w)

	if g.WidgetAt(1, 1) != nil {
		t.Error("forgotten widget should no longer be hit")
	}
}

func TestHitGridClear(t *testing.T) {
	g := NewHitGrid(10, 10)

	w := &mockWidget{}
	g.Add(w, geometry.NewRect(0, 0, 4, 4))
	g.Clear()

	if g.WidgetAt(1, 1) != nil {
		t.Error("cleared grid should be empty")
	}
}
