package runtime

import (
	"github.com/odvcencio/headless/pkg/focus"
	"github.com/odvcencio/headless/pkg/geometry"
	"github.com/odvcencio/headless/pkg/overlay"
	"github.com/odvcencio/headless/pkg/terminal"
)

// Layer is one stratum of the screen: the base widget tree or a floating
// surface above it. Each layer has its own focus ring, so overlays trap
// keyboard traversal.
type Layer struct {
	Root  Widget
	Ring  *focus.Ring
	Modal bool

	// Anchored-surface fields; zero for the base layer.
	anchorOf   func() geometry.Rect
	spec       overlay.Spec
	controller *overlay.Controller
	dismiss    bool
	placement  overlay.Placement

	traverser *focus.Traverser
}

// Placement returns the layer's last resolved placement. Only meaningful
// for anchored layers.
func (l *Layer) Placement() overlay.Placement {
	return l.placement
}

// Controller returns the overlay controller driving this layer, or nil.
func (l *Layer) Controller() *overlay.Controller {
	return l.controller
}

// Screen manages the widget tree, the layer stack, pointer routing, and
// rendering. All methods run on the app loop.
type Screen struct {
	width, height int
	layers        []*Layer
	buffer        *Buffer
	hits          *HitGrid

	hovered Widget // widget under the pointer, if Hoverable
	pressed Widget // widget that saw the last press, captured until release
}

// NewScreen creates a screen with the given dimensions.
func NewScreen(w, h int) *Screen {
	return &Screen{
		width:  w,
		height: h,
		buffer: NewBuffer(w, h),
		hits:   NewHitGrid(w, h),
	}
}

// Size returns the screen dimensions.
func (s *Screen) Size() (w, h int) {
	return s.width, s.height
}

// Viewport returns the screen rect overlays are constrained to.
func (s *Screen) Viewport() geometry.Rect {
	return geometry.NewRect(0, 0, s.width, s.height)
}

// Buffer returns the render buffer.
func (s *Screen) Buffer() *Buffer {
	return s.buffer
}

// SetRoot sets the base layer's root widget, creating the layer if
// needed.
func (s *Screen) SetRoot(root Widget) {
	if len(s.layers) == 0 {
		s.layers = append(s.layers, s.newLayer(root))
	} else {
		s.layers[0].Root = root
	}
	if root != nil {
		root.Layout(s.Viewport())
	}
}

// Root returns the base layer's root widget.
func (s *Screen) Root() Widget {
	if len(s.layers) == 0 {
		return nil
	}
	return s.layers[0].Root
}

// Resize changes the screen dimensions, re-laying out every layer and
// re-resolving every anchored surface against the new viewport.
func (s *Screen) Resize(w, h int) {
	s.width = w
	s.height = h
	s.buffer.Resize(w, h)
	s.hits.Resize(w, h)
	s.Reflow()
}

// Reflow re-runs layout for all layers with the latest geometry. Anchored
// layers re-resolve their placement from scratch: alignment choice can
// flip discontinuously as the anchor or viewport moves, so there is no
// incremental adjustment.
func (s *Screen) Reflow() {
	for _, layer := range s.layers {
		s.layoutLayer(layer)
	}
}

// AnchorChanged notifies the screen that a trigger widget moved; anchored
// surfaces re-resolve against the anchor's current geometry.
func (s *Screen) AnchorChanged() {
	s.Reflow()
}

func (s *Screen) layoutLayer(layer *Layer) {
	if layer.Root == nil {
		return
	}
	if layer.anchorOf == nil {
		layer.Root.Layout(s.Viewport())
		return
	}

	viewport := s.Viewport()
	size := layer.Root.Measure(Loose(viewport.Width, viewport.Height))
	layer.placement = overlay.Resolve(layer.anchorOf(), size, layer.spec, viewport)
	layer.Root.Layout(layer.placement.Rect)
}

// PushLayer adds a plain (non-anchored) layer.
func (s *Screen) PushLayer(root Widget, modal bool) *Layer {
	layer := s.newLayer(root)
	layer.Modal = modal
	s.layers = append(s.layers, layer)
	s.layoutLayer(layer)
	return layer
}

// PushAnchored adds a floating layer positioned by the placement solver
// relative to anchorOf. The layer follows its anchor across reflows.
func (s *Screen) PushAnchored(cmd PushOverlay) *Layer {
	layer := s.newLayer(cmd.Widget)
	layer.Modal = cmd.Modal
	layer.anchorOf = cmd.AnchorOf
	layer.spec = cmd.Spec
	layer.controller = cmd.Controller
	layer.dismiss = cmd.Dismiss
	s.layers = append(s.layers, layer)
	s.layoutLayer(layer)
	return layer
}

// PopLayer removes the top layer. The base layer cannot be popped.
// Hover and press capture pointing into the removed layer are released,
// so no widget is left with a stuck hovered or pressed flag.
func (s *Screen) PopLayer() bool {
	if len(s.layers) <= 1 {
		return false
	}
	return s.RemoveLayer(s.layers[len(s.layers)-1])
}

// RemoveLayer removes a specific layer wherever it sits in the stack.
// The base layer cannot be removed. Returns false when the layer is not
// present, so teardown paths that can overlap are safe to run twice.
func (s *Screen) RemoveLayer(layer *Layer) bool {
	for i := len(s.layers) - 1; i >= 1; i-- {
		if s.layers[i] != layer {
			continue
		}
		s.layers = append(s.layers[:i], s.layers[i+1:]...)
		s.releaseLayer(layer)
		return true
	}
	return false
}

func (s *Screen) releaseLayer(layer *Layer) {
	if layer.Root == nil {
		return
	}
	if s.hovered != nil && inTree(layer.Root, s.hovered) {
		s.setHovered(nil)
	}
	if s.pressed != nil && inTree(layer.Root, s.pressed) {
		s.pressed = nil
	}
	s.hits.Forget(layer.Root)
}

// TopLayer returns the topmost layer, or nil.
func (s *Screen) TopLayer() *Layer {
	if len(s.layers) == 0 {
		return nil
	}
	return s.layers[len(s.layers)-1]
}

// LayerCount returns the number of layers.
func (s *Screen) LayerCount() int {
	return len(s.layers)
}

// FocusRing returns the focused (top) layer's ring.
func (s *Screen) FocusRing() *focus.Ring {
	if top := s.TopLayer(); top != nil {
		return top.Ring
	}
	return nil
}

func (s *Screen) newLayer(root Widget) *Layer {
	ring := focus.NewRing(false)
	return &Layer{
		Root:      root,
		Ring:      ring,
		traverser: focus.NewTraverser(ring, nil),
	}
}

// Render draws all layers bottom to top and rebuilds the hit grid.
func (s *Screen) Render() {
	s.buffer.Clear()
	s.hits.Clear()

	ctx := RenderContext{
		Buffer: s.buffer,
		Bounds: s.Viewport(),
		hits:   s.hits,
	}
	for i, layer := range s.layers {
		if layer.Root == nil {
			continue
		}
		ctx.Focused = i == len(s.layers)-1
		layer.Root.Render(ctx.Sub(layer.Root.Bounds()))
	}
}

// HandleMessage routes a message. Pointer messages go through the hit
// grid; everything else goes to the top layer and bubbles down through
// non-modal layers.
func (s *Screen) HandleMessage(msg Message) HandleResult {
	if m, ok := msg.(MouseMsg); ok {
		return s.handleMouse(m)
	}

	for i := len(s.layers) - 1; i >= 0; i-- {
		layer := s.layers[i]
		if layer.Root == nil {
			continue
		}
		result := layer.Root.HandleMessage(msg)
		result.Commands = s.handleCommands(result.Commands)
		if result.Handled {
			return result
		}
		if layer.Modal {
			break
		}
	}
	return Unhandled()
}

// handleMouse synthesizes hover enter/exit from motion, captures the
// pressed widget until release, and light-dismisses anchored layers on
// outside presses.
func (s *Screen) handleMouse(m MouseMsg) HandleResult {
	target := s.hits.WidgetAt(m.X, m.Y)

	switch m.Action {
	case terminal.MouseMove:
		s.setHovered(target)
		if s.pressed != nil {
			// Motion while pressed goes to the captured widget.
			result := s.pressed.HandleMessage(m)
			result.Commands = s.handleCommands(result.Commands)
			return result
		}
		return Handled()

	case terminal.MousePress:
		s.setHovered(target)
		if top := s.TopLayer(); top != nil && top.dismiss && s.outsideLayer(top, m.X, m.Y) {
			// The press is consumed by the dismissal; it never reaches
			// whatever sits underneath the surface.
			s.dismissTop(top)
			return Handled()
		}
		if target == nil {
			return Unhandled()
		}
		s.pressed = target
		result := target.HandleMessage(m)
		result.Commands = s.handleCommands(result.Commands)
		return result

	case terminal.MouseRelease:
		pressed := s.pressed
		s.pressed = nil
		if pressed == nil {
			pressed = target
		}
		if pressed == nil {
			return Unhandled()
		}
		result := pressed.HandleMessage(m)
		result.Commands = s.handleCommands(result.Commands)
		return result
	}

	if target == nil {
		return Unhandled()
	}
	result := target.HandleMessage(m)
	result.Commands = s.handleCommands(result.Commands)
	return result
}

// setHovered moves the synthesized hover from the current widget to
// next, emitting the exit edge before the enter edge.
func (s *Screen) setHovered(next Widget) {
	if s.hovered == next {
		return
	}
	if h, ok := s.hovered.(Hoverable); ok {
		h.SetHovered(false)
	}
	s.hovered = next
	if h, ok := next.(Hoverable); ok {
		h.SetHovered(true)
	}
}

// outsideLayer reports whether (x, y) falls outside the layer's root
// bounds. A press on a base-layer widget still counts as outside: the
// dismissal swallows it rather than activating what is underneath.
func (s *Screen) outsideLayer(layer *Layer, x, y int) bool {
	if layer.Root == nil {
		return true
	}
	return !layer.Root.Bounds().Contains(x, y)
}

// dismissTop closes the top anchored layer through its controller when
// one is attached, so listeners observe the transition; the layer is
// removed either way. A listener may already have removed it, which
// RemoveLayer tolerates.
func (s *Screen) dismissTop(top *Layer) {
	if top.controller != nil {
		// A disposed controller cannot veto dismissal.
		_ = top.controller.Close()
	}
	s.RemoveLayer(top)
}

// handleCommands consumes screen-level commands and returns the rest for
// the app.
func (s *Screen) handleCommands(cmds []Command) []Command {
	var rest []Command
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case FocusNext:
			if top := s.TopLayer(); top != nil {
				top.traverser.Next()
			}
		case FocusPrev:
			if top := s.TopLayer(); top != nil {
				top.traverser.Previous()
			}
		case FocusFirst:
			if top := s.TopLayer(); top != nil {
				top.traverser.First()
			}
		case FocusLast:
			if top := s.TopLayer(); top != nil {
				top.traverser.Last()
			}
		case PushOverlay:
			s.PushAnchored(c)
		case PopOverlay:
			s.PopLayer()
		default:
			rest = append(rest, cmd)
		}
	}
	return rest
}

// inTree reports whether needle is root or rendered within root's
// bounds. Containment by bounds is the best the runtime can do without
// a child-walk contract on Widget.
func inTree(root, needle Widget) bool {
	if root == needle {
		return true
	}
	rb := root.Bounds()
	nb := needle.Bounds()
	return rb.ContainsRect(nb)
}
