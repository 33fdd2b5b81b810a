package render

import (
	"sync"
	"time"
)

// DefaultDelay is roughly one frame at 60Hz.
const DefaultDelay = 16 * time.Millisecond

// Scheduler holds at most one pending task and runs it after a fixed delay.
// Scheduling again before the delay expires replaces the pending task and
// restarts the delay, so a burst of requests collapses into one run of the
// last one.
type Scheduler struct {
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending func()
	gen     uint64
}

// NewScheduler returns a scheduler with the given delay. Non-positive delays
// use DefaultDelay.
func NewScheduler(delay time.Duration) *Scheduler {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Scheduler{delay: delay}
}

// Delay returns the coalescing window.
func (s *Scheduler) Delay() time.Duration { return s.delay }

// Schedule replaces any pending task with fn.
func (s *Scheduler) Schedule(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen
	s.pending = fn
	s.timer = time.AfterFunc(s.delay, func() { s.fire(gen) })
}

func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.pending == nil {
		s.mu.Unlock()
		return
	}
	fn := s.take()
	s.mu.Unlock()
	fn()
}

// take clears the pending slot. Callers hold s.mu.
func (s *Scheduler) take() func() {
	fn := s.pending
	s.pending = nil
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	return fn
}

// Pending reports whether a task is waiting to run.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Cancel drops the pending task. It reports whether one was dropped.
func (s *Scheduler) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.take() != nil
}

// Flush runs the pending task now, on the calling goroutine. It reports
// whether a task ran.
func (s *Scheduler) Flush() bool {
	s.mu.Lock()
	fn := s.take()
	s.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}
