// Package sim provides a simulation backend for tests, built on tcell's
// simulation screen. Tests inject key and mouse events (including hover
// motion) and capture rendered frames as strings.
package sim

import (
	"strings"
	"sync"

	tcellv2 "github.com/gdamore/tcell/v2"

	"github.com/odvcencio/headless/pkg/backend"
	"github.com/odvcencio/headless/pkg/backend/tcell"
	"github.com/odvcencio/headless/pkg/terminal"
)

// Backend is a testable backend using tcell's simulation screen.
type Backend struct {
	*tcell.Backend
	screen        tcellv2.SimulationScreen
	width, height int
	mu            sync.Mutex
}

// New creates a simulation backend with the given dimensions.
func New(width, height int) *Backend {
	screen := tcellv2.NewSimulationScreen("")
	screen.SetSize(width, height)
	return &Backend{
		Backend: tcell.NewWithScreen(screen),
		screen:  screen,
		width:   width,
		height:  height,
	}
}

// Init initializes the simulation screen. The configured size is
// re-applied because tcell resets a simulation screen to its default
// dimensions during Init.
func (s *Backend) Init() error {
	if err := s.Backend.Init(); err != nil {
		return err
	}
	s.screen.SetSize(s.width, s.height)
	return nil
}

// InjectKey injects a key press.
func (s *Backend) InjectKey(key terminal.Key, r rune) {
	s.PostEvent(terminal.KeyEvent{Key: key, Rune: r})
}

// InjectRune injects a regular character key press.
func (s *Backend) InjectRune(r rune) {
	s.InjectKey(terminal.KeyRune, r)
}

// InjectMouseMove injects pointer motion to (x, y).
func (s *Backend) InjectMouseMove(x, y int) {
	s.PostEvent(terminal.MouseEvent{X: x, Y: y, Action: terminal.MouseMove})
}

// InjectClick injects a left-button press followed by a release at (x, y).
func (s *Backend) InjectClick(x, y int) {
	s.PostEvent(terminal.MouseEvent{X: x, Y: y, Button: terminal.MouseLeft, Action: terminal.MousePress})
	s.PostEvent(terminal.MouseEvent{X: x, Y: y, Action: terminal.MouseRelease})
}

// InjectResize resizes the simulation screen and posts a resize event.
func (s *Backend) InjectResize(width, height int) {
	s.mu.Lock()
	s.screen.SetSize(width, height)
	s.mu.Unlock()
	s.PostEvent(terminal.ResizeEvent{Width: width, Height: height})
}

// Capture returns the current screen content as a newline-joined string.
func (s *Backend) Capture() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, h := s.screen.Size()
	lines := make([]string, 0, h)
	for y := 0; y < h; y++ {
		var line strings.Builder
		for x := 0; x < w; x++ {
			r, comb, _, _ := s.screen.GetContent(x, y)
			if r == 0 {
				r = ' '
			}
			line.WriteRune(r)
			for _, c := range comb {
				line.WriteRune(c)
			}
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// CaptureCell returns the rune and style of a single cell.
func (s *Backend) CaptureCell(x, y int) (rune, backend.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, _, style, _ := s.screen.GetContent(x, y)
	return r, tcell.FromTcellStyle(style)
}

// FindText returns the screen position of the first occurrence of text,
// or (-1, -1) if absent.
func (s *Backend) FindText(text string) (x, y int) {
	for row, line := range strings.Split(s.Capture(), "\n") {
		if col := strings.Index(line, text); col >= 0 {
			return col, row
		}
	}
	return -1, -1
}

// ContainsText reports whether text appears anywhere on screen.
func (s *Backend) ContainsText(text string) bool {
	x, _ := s.FindText(text)
	return x >= 0
}

var _ backend.Backend = (*Backend)(nil)
