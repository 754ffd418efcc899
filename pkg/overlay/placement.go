// Package overlay computes where floating surfaces go and owns their
// open/closed lifecycle. The placement solver maps an anchor rectangle,
// a surface size, and a ranked list of alignments to a concrete on-screen
// rectangle that stays inside the viewport whenever any alignment allows
// it; the controller runs the Closed/Opening/Open/Closing state machine
// that the surrounding components drive.
package overlay

import (
	"math"

	"github.com/odvcencio/headless/pkg/geometry"
)

// Alignment maps a fractional reference point on the anchor to a
// fractional reference point on the surface, plus a cell offset. The
// surface is positioned so the two reference points coincide.
type Alignment struct {
	AnchorX, AnchorY   float64 // 0 = left/top of anchor, 1 = right/bottom
	SurfaceX, SurfaceY float64 // 0 = left/top of surface, 1 = right/bottom
	OffsetX, OffsetY   int
}

// Common alignments for menus, popovers, and select lists.
var (
	// BelowStart hangs the surface under the anchor, left edges flush.
	BelowStart = Alignment{AnchorX: 0, AnchorY: 1, SurfaceX: 0, SurfaceY: 0}
	// BelowEnd hangs the surface under the anchor, right edges flush.
	BelowEnd = Alignment{AnchorX: 1, AnchorY: 1, SurfaceX: 1, SurfaceY: 0}
	// AboveStart places the surface over the anchor, left edges flush.
	AboveStart = Alignment{AnchorX: 0, AnchorY: 0, SurfaceX: 0, SurfaceY: 1}
	// AboveEnd places the surface over the anchor, right edges flush.
	AboveEnd = Alignment{AnchorX: 1, AnchorY: 0, SurfaceX: 1, SurfaceY: 1}
	// RightStart places the surface to the anchor's right, top edges flush.
	RightStart = Alignment{AnchorX: 1, AnchorY: 0, SurfaceX: 0, SurfaceY: 0}
	// LeftStart places the surface to the anchor's left, top edges flush.
	LeftStart = Alignment{AnchorX: 0, AnchorY: 0, SurfaceX: 1, SurfaceY: 0}
	// Center centers the surface on the anchor.
	Center = Alignment{AnchorX: 0.5, AnchorY: 0.5, SurfaceX: 0.5, SurfaceY: 0.5}
)

// Spec is a primary alignment plus ranked fallbacks. Empty fallbacks
// means "clamp if the primary does not fit".
type Spec struct {
	Primary   Alignment
	Fallbacks []Alignment
}

// Placement is the resolved geometry for a surface at a point in time.
// It is recomputed from scratch on every trigger, never persisted across
// opens.
type Placement struct {
	Rect      geometry.Rect
	Alignment Alignment // the alignment that produced Rect
	Clamped   bool      // true when nothing fit and the primary was clamped
}

// candidate computes the rectangle a single alignment produces.
func (a Alignment) candidate(anchor geometry.Rect, surface geometry.Size) geometry.Rect {
	ax := float64(anchor.X) + a.AnchorX*float64(anchor.Width)
	ay := float64(anchor.Y) + a.AnchorY*float64(anchor.Height)
	x := int(math.Round(ax-a.SurfaceX*float64(surface.Width))) + a.OffsetX
	y := int(math.Round(ay-a.SurfaceY*float64(surface.Height))) + a.OffsetY
	return geometry.NewRect(x, y, surface.Width, surface.Height)
}

// Resolve chooses the surface rectangle. The primary alignment wins if
// its candidate is fully contained in the viewport (touching an edge
// counts as contained); otherwise the fallbacks are tried in order; if
// nothing fits, the primary candidate is clamped into the viewport on
// each axis independently.
func Resolve(anchor geometry.Rect, surface geometry.Size, spec Spec, viewport geometry.Rect) Placement {
	primary := spec.Primary.candidate(anchor, surface)
	if viewport.ContainsRect(primary) {
		return Placement{Rect: primary, Alignment: spec.Primary}
	}

	for _, fb := range spec.Fallbacks {
		if c := fb.candidate(anchor, surface); viewport.ContainsRect(c) {
			return Placement{Rect: c, Alignment: fb}
		}
	}

	return Placement{
		Rect:      primary.ClampInto(viewport),
		Alignment: spec.Primary,
		Clamped:   true,
	}
}
