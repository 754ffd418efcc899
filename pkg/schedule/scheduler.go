// Package schedule issues cancelable delayed actions for interaction
// components: hover-intent opens, auto-close timers, keyboard press
// feedback. Each logical action lives in a named slot, and every slot
// carries a generation counter so a timer that fires after it has been
// superseded or canceled is a silent no-op rather than a race.
package schedule

import (
	"sync"
	"time"
)

// Token identifies one scheduled action. Canceling with a stale token
// (one whose generation has been superseded) does nothing.
type Token struct {
	Slot       string
	Generation uint64
}

// Zero reports whether the token was never issued.
func (t Token) Zero() bool {
	return t.Slot == "" && t.Generation == 0
}

// Timer is the armed-timer handle the scheduler holds per slot.
type Timer interface {
	Stop() bool
}

// Config configures a Scheduler.
type Config struct {
	// Post marshals a fired action onto the host event loop. When nil the
	// action runs on the timer goroutine; embedders that own a loop should
	// always set it.
	Post func(fn func())

	// NewTimer arms a one-shot timer. Defaults to time.AfterFunc. Tests
	// substitute a manual timer to drive firings deterministically.
	NewTimer func(d time.Duration, fn func()) Timer
}

type slot struct {
	generation uint64
	timer      Timer
}

// Scheduler owns the delayed actions of a single component. One live
// timer exists per slot at any instant; scheduling into a slot always
// supersedes whatever was pending there.
type Scheduler struct {
	mu       sync.Mutex
	post     func(fn func())
	newTimer func(d time.Duration, fn func()) Timer
	slots    map[string]*slot
	closed   bool
}

// New creates a scheduler from config.
func New(cfg Config) *Scheduler {
	post := cfg.Post
	if post == nil {
		post = func(fn func()) { fn() }
	}
	newTimer := cfg.NewTimer
	if newTimer == nil {
		newTimer = func(d time.Duration, fn func()) Timer {
			return time.AfterFunc(d, fn)
		}
	}
	return &Scheduler{
		post:     post,
		newTimer: newTimer,
		slots:    make(map[string]*slot),
	}
}

// Schedule arms action to run after d, replacing any pending action in
// the same slot. The replaced timer is guaranteed canceled before the new
// one is armed. A zero duration still goes through the timer path: the
// action runs on a later loop turn, never inline.
//
// Returns the zero Token after Close.
func (s *Scheduler) Schedule(name string, d time.Duration, action func()) Token {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Token{}
	}
	sl := s.slots[name]
	if sl == nil {
		sl = &slot{}
		s.slots[name] = sl
	}
	if sl.timer != nil {
		sl.timer.Stop()
		sl.timer = nil
	}
	sl.generation++
	gen := sl.generation
	sl.timer = s.newTimer(d, func() {
		s.fire(name, gen, action)
	})
	s.mu.Unlock()

	return Token{Slot: name, Generation: gen}
}

// fire posts the action to the host loop. The generation check happens
// inside the posted closure, so a cancellation that lands between timer
// expiry and loop turn still wins.
func (s *Scheduler) fire(name string, gen uint64, action func()) {
	s.post(func() {
		if s.take(name, gen) {
			action()
		}
	})
}

// take consumes a firing if it is still current.
func (s *Scheduler) take(name string, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	sl := s.slots[name]
	if sl == nil || sl.generation != gen {
		return false
	}
	sl.timer = nil
	return true
}

// Cancel revokes the action identified by token. A stale or zero token is
// a no-op.
func (s *Scheduler) Cancel(token Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl := s.slots[token.Slot]
	if sl == nil || sl.generation != token.Generation {
		return
	}
	s.cancelSlot(sl)
}

// CancelSlot revokes whatever is pending in the named slot.
func (s *Scheduler) CancelSlot(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sl := s.slots[name]; sl != nil {
		s.cancelSlot(sl)
	}
}

// CancelAll revokes every pending action. Called on component teardown
// and whenever a timing configuration changes mid-flight, since a timer
// armed under the old duration must not fire.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sl := range s.slots {
		s.cancelSlot(sl)
	}
}

// Close cancels everything and rejects further scheduling.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for _, sl := range s.slots {
		s.cancelSlot(sl)
	}
}

// Pending reports whether the named slot has an armed timer.
func (s *Scheduler) Pending(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl := s.slots[name]
	return sl != nil && sl.timer != nil
}

// cancelSlot stops the timer and bumps the generation so an in-flight
// firing that already left the timer goroutine is invalidated too.
func (s *Scheduler) cancelSlot(sl *slot) {
	if sl.timer != nil {
		sl.timer.Stop()
		sl.timer = nil
	}
	sl.generation++
}
