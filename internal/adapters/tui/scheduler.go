package tui

import (
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xvierd/pomodial/internal/ports"
)

// Sender posts messages into a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// callbackMsg carries a scheduled callback onto the update loop.
type callbackMsg struct {
	handle *handle
	fn     func()
}

// run calls the callback unless its handle was cancelled after sending.
func (m callbackMsg) run() bool {
	if m.handle.cancelled.Load() {
		return false
	}
	m.fn()
	return true
}

type handle struct {
	scheduler *Scheduler
	done      chan struct{}
	once      sync.Once
	cancelled atomic.Bool
}

// Cancel implements ports.Handle.
func (h *handle) Cancel() {
	h.cancelled.Store(true)
	h.stop()
}

// stop ends the timer goroutine without marking the handle cancelled, so a
// message already in flight still runs.
func (h *handle) stop() {
	h.once.Do(func() {
		close(h.done)
		h.scheduler.untrack(h)
	})
}

// Scheduler implements ports.Scheduler on goroutine timers. Callbacks are
// never run on the timer goroutine: they are sent to the program and run by
// Model.Update, so the controller only ever sees one goroutine.
type Scheduler struct {
	mu      sync.Mutex
	sender  Sender
	handles map[*handle]struct{}
	wg      sync.WaitGroup
}

// NewScheduler creates a scheduler with no program attached. Callbacks that
// fire before Attach are dropped.
func NewScheduler() *Scheduler {
	return &Scheduler{handles: make(map[*handle]struct{})}
}

// Attach sets the program callbacks are delivered to.
func (s *Scheduler) Attach(sender Sender) {
	s.mu.Lock()
	s.sender = sender
	s.mu.Unlock()
}

// Every implements ports.Scheduler.
func (s *Scheduler) Every(interval time.Duration, fn func()) ports.Handle {
	h := s.track()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-h.done:
				return
			case <-ticker.C:
				s.send(callbackMsg{handle: h, fn: fn})
			}
		}
	}()
	return h
}

// After implements ports.Scheduler.
func (s *Scheduler) After(delay time.Duration, fn func()) ports.Handle {
	h := s.track()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-h.done:
		case <-timer.C:
			s.send(callbackMsg{handle: h, fn: fn})
			h.stop()
		}
	}()
	return h
}

// Close cancels every outstanding callback and waits for the timer
// goroutines to exit.
func (s *Scheduler) Close() {
	s.mu.Lock()
	handles := make([]*handle, 0, len(s.handles))
	for h := range s.handles {
		handles = append(handles, h)
	}
	s.mu.Unlock()

	for _, h := range handles {
		h.Cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) track() *handle {
	h := &handle{scheduler: s, done: make(chan struct{})}
	s.mu.Lock()
	s.handles[h] = struct{}{}
	s.mu.Unlock()
	return h
}

func (s *Scheduler) untrack(h *handle) {
	s.mu.Lock()
	delete(s.handles, h)
	s.mu.Unlock()
}

func (s *Scheduler) send(msg callbackMsg) {
	s.mu.Lock()
	sender := s.sender
	s.mu.Unlock()
	if sender != nil {
		sender.Send(msg)
	}
}

var _ ports.Scheduler = (*Scheduler)(nil)
