// Package testutil holds test doubles shared by several packages.
package testutil

import (
	"time"

	"github.com/xvierd/pomodial/internal/ports"
)

// ManualScheduler implements ports.Scheduler on a virtual clock. Callbacks
// run only when Advance moves the clock forward, on the caller's goroutine.
type ManualScheduler struct {
	now   time.Duration
	tasks []*manualTask
}

type manualTask struct {
	at        time.Duration
	interval  time.Duration
	fn        func()
	cancelled bool
}

func (t *manualTask) Cancel() { t.cancelled = true }

// Every implements ports.Scheduler.
func (s *ManualScheduler) Every(interval time.Duration, fn func()) ports.Handle {
	t := &manualTask{at: s.now + interval, interval: interval, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// After implements ports.Scheduler.
func (s *ManualScheduler) After(delay time.Duration, fn func()) ports.Handle {
	t := &manualTask{at: s.now + delay, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance fires every callback due within d, in time order. Callbacks due
// at the same instant run in the order they were scheduled.
func (s *ManualScheduler) Advance(d time.Duration) {
	end := s.now + d
	for {
		next := s.nextDue(end)
		if next == nil {
			break
		}
		s.now = next.at
		if next.interval > 0 {
			next.at += next.interval
		} else {
			next.cancelled = true
		}
		next.fn()
	}
	s.now = end
}

func (s *ManualScheduler) nextDue(end time.Duration) *manualTask {
	var next *manualTask
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if t.cancelled {
			continue
		}
		live = append(live, t)
		if t.at <= end && (next == nil || t.at < next.at) {
			next = t
		}
	}
	s.tasks = live
	return next
}

// Repeating returns how many live repeating callbacks exist.
func (s *ManualScheduler) Repeating() int {
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled && t.interval > 0 {
			n++
		}
	}
	return n
}

// Pending returns how many live one-shot callbacks exist.
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled && t.interval == 0 {
			n++
		}
	}
	return n
}

var _ ports.Scheduler = (*ManualScheduler)(nil)
