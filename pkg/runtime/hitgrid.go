package runtime

import "github.com/odvcencio/headless/pkg/geometry"

// HitGrid maps screen cells to widgets for pointer routing. It is
// rebuilt on every render pass; widgets added later overwrite earlier
// ones, so higher layers naturally win overlaps.
type HitGrid struct {
	width   int
	height  int
	cells   []int
	widgets []Widget
}

// NewHitGrid creates a grid with the given dimensions.
func NewHitGrid(width, height int) *HitGrid {
	g := &HitGrid{}
	g.Resize(width, height)
	return g
}

// Resize updates the grid dimensions and clears it.
func (g *HitGrid) Resize(width, height int) {
	if width == g.width && height == g.height {
		return
	}
	g.width = width
	g.height = height
	if width*height <= 0 {
		g.cells = nil
		g.widgets = nil
		return
	}
	g.cells = make([]int, width*height)
	g.Clear()
}

// Clear resets the grid contents.
func (g *HitGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = -1
	}
	g.widgets = g.widgets[:0]
}

// Add records a widget occupying bounds.
func (g *HitGrid) Add(w Widget, bounds geometry.Rect) {
	if w == nil || bounds.Empty() || g.width <= 0 {
		return
	}
	bounds = bounds.Intersection(geometry.NewRect(0, 0, g.width, g.height))
	if bounds.Empty() {
		return
	}

	id := len(g.widgets)
	g.widgets = append(g.widgets, w)
	for y := bounds.Y; y < bounds.Y+bounds.Height; y++ {
		row := y * g.width
		for x := bounds.X; x < bounds.X+bounds.Width; x++ {
			g.cells[row+x] = id
		}
	}
}

// WidgetAt returns the topmost widget at (x, y), or nil.
func (g *HitGrid) WidgetAt(x, y int) Widget {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return nil
	}
	idx := g.cells[y*g.width+x]
	if idx < 0 || idx >= len(g.widgets) {
		return nil
	}
	return g.widgets[idx]
}

// Forget removes a widget's registrations without a rebuild, so a
// popped layer's widgets stop receiving pointer events immediately.
func (g *HitGrid) Forget(w Widget) {
	for id, existing := range g.widgets {
		if existing == w {
			g.widgets[id] = nil
		}
	}
}
