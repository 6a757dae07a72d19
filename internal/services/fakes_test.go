package services

import (
	"context"
	"testing"
	"time"

	"github.com/xvierd/pomodial/internal/adapters/storage"
	"github.com/xvierd/pomodial/internal/domain"
	"github.com/xvierd/pomodial/internal/ports"
	"github.com/xvierd/pomodial/internal/testutil"
)

// fakeView records what the controller pushed.
type fakeView struct {
	renders   []domain.Snapshot
	minutes   int
	seconds   int
	kind      domain.SessionKind
	shake     bool
	shakeOns  int
	flips     int
	mirrored  bool
	history   []*domain.HistoryEntry
}

func (v *fakeView) Render(snap domain.Snapshot) { v.renders = append(v.renders, snap) }
func (v *fakeView) ShowDuration(m, s int)       { v.minutes, v.seconds = m, s }
func (v *fakeView) ShowSessionKind(k domain.SessionKind) {
	v.kind = k
}
func (v *fakeView) SetShake(on bool) {
	if on {
		v.shakeOns++
	}
	v.shake = on
}
func (v *fakeView) ToggleFlip()   { v.flips++ }
func (v *fakeView) ToggleMirror() { v.mirrored = !v.mirrored }
func (v *fakeView) ShowHistory(entries []*domain.HistoryEntry) {
	v.history = entries
}

func (v *fakeView) last() domain.Snapshot {
	return v.renders[len(v.renders)-1]
}

// fakeAlerter holds the acknowledgement until Ack is called, unless auto is set.
type fakeAlerter struct {
	auto     bool
	messages []string
	ack      func()
}

func (a *fakeAlerter) Alert(message string, ack func()) {
	a.messages = append(a.messages, message)
	if a.auto {
		ack()
		return
	}
	a.ack = ack
}

func (a *fakeAlerter) Ack() {
	if a.ack != nil {
		ack := a.ack
		a.ack = nil
		ack()
	}
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type harness struct {
	ctrl      *TimerController
	scheduler *testutil.ManualScheduler
	view      *fakeView
	alerter   *fakeAlerter
	history   ports.HistoryRepository
}

func newHarness(t *testing.T, d domain.Durations) *harness {
	t.Helper()

	repo, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("Failed to create test storage: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	h := &harness{
		scheduler: &testutil.ManualScheduler{},
		view:      &fakeView{},
		alerter:   &fakeAlerter{auto: true},
		history:   repo,
	}
	ctrl, err := NewTimerController(context.Background(), d, Deps{
		View:      h.view,
		Scheduler: h.scheduler,
		Clock:     fixedClock{t: time.Date(2026, 10, 16, 14, 30, 0, 0, time.Local)},
		Alerter:   h.alerter,
		History:   repo,
	})
	if err != nil {
		t.Fatalf("NewTimerController() error = %v", err)
	}
	ctrl.Refresh()
	h.ctrl = ctrl
	return h
}

// completionSequence is the time from the last tick to the flip landing.
const completionSequence = ShakeDelay + FlipDelay
