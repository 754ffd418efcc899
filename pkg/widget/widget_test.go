package widget

import (
	"time"

	"github.com/odvcencio/headless/pkg/runtime"
	"github.com/odvcencio/headless/pkg/schedule"
	"github.com/odvcencio/headless/pkg/terminal"
)

// manualClock is a hand-driven scheduler backend so tests control time.
type manualClock struct {
	armed []*manualTimer
}

type manualTimer struct {
	d       time.Duration
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := t.stopped
	t.stopped = true
	return !was
}

func (c *manualClock) factory(d time.Duration, fn func()) schedule.Timer {
	t := &manualTimer{d: d, fn: fn}
	c.armed = append(c.armed, t)
	return t
}

// advance fires every live timer armed so far.
func (c *manualClock) advance() {
	armed := c.armed
	c.armed = nil
	for _, t := range armed {
		if !t.stopped {
			t.fn()
		}
	}
}

// live returns the number of unstopped armed timers.
func (c *manualClock) live() int {
	n := 0
	for _, t := range c.armed {
		if !t.stopped {
			n++
		}
	}
	return n
}

func newManualScheduler() (*schedule.Scheduler, *manualClock) {
	clock := &manualClock{}
	sched := schedule.New(schedule.Config{NewTimer: clock.factory})
	return sched, clock
}

func keyMsg(k terminal.Key) runtime.KeyMsg {
	return runtime.KeyMsg{Key: k}
}

func runeMsg(r rune) runtime.KeyMsg {
	return runtime.KeyMsg{Key: terminal.KeyRune, Rune: r}
}

func pressAt(x, y int) runtime.MouseMsg {
	return runtime.MouseMsg{X: x, Y: y, Button: terminal.MouseLeft, Action: terminal.MousePress}
}

func releaseAt(x, y int) runtime.MouseMsg {
	return runtime.MouseMsg{X: x, Y: y, Button: terminal.MouseLeft, Action: terminal.MouseRelease}
}

func moveTo(x, y int) runtime.MouseMsg {
	return runtime.MouseMsg{X: x, Y: y, Button: terminal.MouseNone, Action: terminal.MouseMove}
}
