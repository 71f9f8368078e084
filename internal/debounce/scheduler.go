// Package debounce schedules cancellable, keyed callbacks. Scheduling a key
// that already has a pending callback replaces it, so only the last call in a
// burst runs once the delay elapses without another call.
package debounce

import (
	"errors"
	"sync"
	"time"
)

// ErrClosed is returned when scheduling on a closed scheduler.
var ErrClosed = errors.New("debounce: scheduler closed")

// Timer is the subset of *time.Timer the scheduler needs.
type Timer interface {
	Stop() bool
}

// AfterFunc arms fn to run after d.
type AfterFunc func(d time.Duration, fn func()) Timer

// SystemAfterFunc wraps time.AfterFunc.
func SystemAfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

type entry struct {
	timer Timer
}

// Scheduler owns a set of pending callbacks keyed by id.
type Scheduler struct {
	mu      sync.Mutex
	after   AfterFunc
	pending map[string]*entry
	closed  bool
}

// New creates a scheduler. A nil after uses the system clock.
func New(after AfterFunc) *Scheduler {
	if after == nil {
		after = SystemAfterFunc
	}
	return &Scheduler{after: after, pending: make(map[string]*entry)}
}

// Schedule cancels any pending callback for id and arms fn to run after delay.
func (s *Scheduler) Schedule(id string, delay time.Duration, fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if prev, ok := s.pending[id]; ok {
		prev.timer.Stop()
		delete(s.pending, id)
	}
	e := &entry{}
	e.timer = s.after(delay, func() {
		s.mu.Lock()
		current, ok := s.pending[id]
		if !ok || current != e {
			s.mu.Unlock()
			return
		}
		delete(s.pending, id)
		s.mu.Unlock()
		fn()
	})
	s.pending[id] = e
	return nil
}

// Cancel drops the pending callback for id. It reports whether one was pending.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.pending[id]
	if !ok {
		return false
	}
	e.timer.Stop()
	delete(s.pending, id)
	return true
}

// Pending reports whether a callback is armed for id.
func (s *Scheduler) Pending(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[id]
	return ok
}

// Close cancels every pending callback. Later calls to Schedule fail.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.pending {
		e.timer.Stop()
		delete(s.pending, id)
	}
	s.closed = true
}
