// Package geometry provides the integer cell geometry shared by the
// interaction core: points, sizes, rectangles, and the containment and
// clamping predicates the overlay placement solver is built on.
package geometry

// Point is a position in cell coordinates.
type Point struct {
	X, Y int
}

// Add returns the point translated by the given deltas.
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Size is a width/height pair in cells.
type Size struct {
	Width, Height int
}

// Zero reports whether both dimensions are zero.
func (s Size) Zero() bool {
	return s.Width == 0 && s.Height == 0
}

// Rect is a positioned rectangle.
type Rect struct {
	X, Y, Width, Height int
}

// ZeroRect is the zero value rect.
var ZeroRect = Rect{}

// NewRect creates a rect from position and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// RectAt creates a rect from an origin point and a size.
func RectAt(origin Point, size Size) Rect {
	return Rect{X: origin.X, Y: origin.Y, Width: size.Width, Height: size.Height}
}

// Origin returns the rect's top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rect's dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the point is inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// ContainsRect reports whether other lies entirely within r.
// A rect touching r's edge exactly is considered contained.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X &&
		other.Y >= r.Y &&
		other.X+other.Width <= r.X+r.Width &&
		other.Y+other.Height <= r.Y+r.Height
}

// Intersects reports whether the two rects overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Intersection returns the overlapping area of two rects.
func (r Rect) Intersection(other Rect) Rect {
	x := max(r.X, other.X)
	y := max(r.Y, other.Y)
	x2 := min(r.X+r.Width, other.X+other.Width)
	y2 := min(r.Y+r.Height, other.Y+other.Height)
	if x2 <= x || y2 <= y {
		return ZeroRect
	}
	return Rect{X: x, Y: y, Width: x2 - x, Height: y2 - y}
}

// Inset returns a rect shrunk by the given amounts.
func (r Rect) Inset(top, right, bottom, left int) Rect {
	return Rect{
		X:      r.X + left,
		Y:      r.Y + top,
		Width:  max(0, r.Width-left-right),
		Height: max(0, r.Height-top-bottom),
	}
}

// ClampInto returns r translated so that it lies within bounds on each
// axis independently. If r is larger than bounds on an axis, it is pinned
// to the bounds origin on that axis.
func (r Rect) ClampInto(bounds Rect) Rect {
	r.X = Clamp(r.X, bounds.X, bounds.X+bounds.Width-r.Width)
	r.Y = Clamp(r.Y, bounds.Y, bounds.Y+bounds.Height-r.Height)
	return r
}

// Clamp limits v to the range [lo, hi]. If hi < lo, lo wins.
func Clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
