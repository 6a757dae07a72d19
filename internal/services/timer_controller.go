package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xvierd/pomodial/internal/domain"
	"github.com/xvierd/pomodial/internal/ports"
	"go.uber.org/zap"
)

// Timing of the countdown and of the completion sequence.
const (
	TickInterval = time.Second
	ShakeDelay   = 700 * time.Millisecond
	FlipDelay    = 500 * time.Millisecond
)

// AlertMessage is shown when an interval runs out.
const AlertMessage = "Time is up!"

// Deps groups the collaborators of a TimerController.
type Deps struct {
	View      ports.View
	Scheduler ports.Scheduler
	Clock     ports.Clock
	Alerter   ports.Alerter
	History   ports.HistoryRepository
	Logger    *zap.Logger
}

// TimerController owns the countdown state and reacts to user commands,
// ticks and delayed transition callbacks. It is not safe for concurrent
// use: every call must come from the same logical flow, which the
// scheduler adapter guarantees for its callbacks.
type TimerController struct {
	ctx       context.Context
	state     domain.TimerState
	view      ports.View
	scheduler ports.Scheduler
	clock     ports.Clock
	alerter   ports.Alerter
	history   ports.HistoryRepository
	logger    *zap.Logger

	ticker ports.Handle

	// pending holds delayed transition callbacks not yet fired. Reset
	// cancels them and bumps generation so that a callback already in
	// flight is ignored as well.
	pending    []ports.Handle
	generation uint64

	// completing is set from natural completion until the resulting flip
	// lands.
	completing bool
}

// NewTimerController creates a controller for an idle work session.
// Nothing is drawn until Refresh is called.
func NewTimerController(ctx context.Context, durations domain.Durations, deps Deps) (*TimerController, error) {
	if err := durations.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create timer: %w", err)
	}
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &TimerController{
		ctx:       ctx,
		state:     domain.NewTimerState(durations),
		view:      deps.View,
		scheduler: deps.Scheduler,
		clock:     deps.Clock,
		alerter:   deps.Alerter,
		history:   deps.History,
		logger:    deps.Logger,
	}, nil
}

// SetView attaches the display after construction.
func (c *TimerController) SetView(view ports.View) {
	c.view = view
}

// Refresh pushes the whole state to the view.
func (c *TimerController) Refresh() {
	c.render()
	c.showDuration()
	c.view.ShowSessionKind(c.state.Phase.Kind())
	c.pushHistory()
}

// Snapshot returns the current render snapshot.
func (c *TimerController) Snapshot() domain.Snapshot {
	return c.state.Snapshot()
}

// Phase returns the current phase.
func (c *TimerController) Phase() domain.Phase {
	return c.state.Phase
}

// Durations returns the configured durations.
func (c *TimerController) Durations() domain.Durations {
	return c.state.Durations
}

// Pending reports whether a delayed transition callback is outstanding.
func (c *TimerController) Pending() bool {
	return len(c.pending) > 0
}

// Start begins the one-second countdown.
//
// Start is a no-op while running. It is also a no-op while a completion is
// in progress: from the final tick, through the shake and the alert, until
// the flip to the next session lands. Calling Stop in that window does not
// lift this; only Reset or the landed flip does.
func (c *TimerController) Start() {
	if c.state.Phase.Running() || c.completing {
		return
	}
	c.state.Phase = c.state.Phase.Start()
	c.ticker = c.scheduler.Every(TickInterval, c.tick)
	c.logger.Debug("timer started",
		zap.String("phase", c.state.Phase.String()),
		zap.Int("remaining", c.state.Remaining))
}

// Stop cancels the countdown. It is idempotent.
func (c *TimerController) Stop() {
	c.stopTicker()
	c.state.Phase = c.state.Phase.Stop()
}

// Reset stops the countdown, drops any pending transition and refills the
// current session kind to its configured duration.
func (c *TimerController) Reset() {
	c.stopTicker()
	c.cancelPending()
	c.completing = false
	c.state.Phase = c.state.Phase.Stop()
	c.fill(c.state.Durations.For(c.state.Phase.Kind()))
	c.render()
	c.showDuration()
	c.view.SetShake(false)
	c.logger.Debug("timer reset", zap.String("phase", c.state.Phase.String()))
}

// ToggleSession flips to the other session kind without recording history.
// It works whether or not the countdown is running.
func (c *TimerController) ToggleSession() {
	c.flip()
}

// SetTimeFromInput sets the time from the raw minute and second fields.
func (c *TimerController) SetTimeFromInput(minutes, seconds string) {
	c.fill(domain.ParseClockFields(minutes, seconds))
	c.showDuration()
	c.render()
}

// SetTimeFromDial sets the time from a point on the dial in canvas units.
// A point that maps to zero seconds leaves the time unchanged.
func (c *TimerController) SetTimeFromDial(x, y float64) {
	limit := c.state.Durations.For(c.state.Phase.Kind())
	if candidate := domain.TimeFromAngle(domain.AngleFromPoint(x, y), limit); candidate > 0 {
		c.fill(candidate)
	}
	c.showDuration()
	c.render()
}

// History returns the recorded sessions, oldest first.
func (c *TimerController) History(ctx context.Context) ([]*domain.HistoryEntry, error) {
	entries, err := c.history.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return entries, nil
}

// DeleteHistory removes one history entry.
func (c *TimerController) DeleteHistory(ctx context.Context, id string) error {
	if err := c.history.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}
	c.pushHistory()
	return nil
}

func (c *TimerController) tick() {
	if !c.state.Phase.Running() {
		return
	}
	if c.state.Remaining > 0 {
		c.state.Remaining--
		c.render()
		return
	}
	c.stopTicker()
	c.state.Phase = c.state.Phase.Stop()
	c.completeSession()
}

// completeSession records the finished session, shakes the dial, then
// raises the alert and flips once the alert is acknowledged.
func (c *TimerController) completeSession() {
	kind := c.state.Phase.Kind()
	c.logger.Info("session complete", zap.String("kind", string(kind)))

	c.recordHistory(kind)
	c.completing = true
	c.view.SetShake(true)

	gen := c.generation
	c.after(ShakeDelay, func() {
		c.view.SetShake(false)
		c.alerter.Alert(AlertMessage, func() {
			if gen != c.generation {
				return
			}
			c.flip()
		})
	})
}

// flip plays the card-flip cue and, after FlipDelay, switches session kind.
func (c *TimerController) flip() {
	c.view.ToggleFlip()
	c.after(FlipDelay, func() {
		c.state.Phase = c.state.Phase.Flip()
		kind := c.state.Phase.Kind()
		c.fill(c.state.Durations.For(kind))
		c.completing = false

		c.render()
		c.showDuration()
		c.view.ShowSessionKind(kind)
		c.view.ToggleMirror()
		c.logger.Debug("session flipped", zap.String("phase", c.state.Phase.String()))
	})
}

// after schedules fn under the current generation.
func (c *TimerController) after(delay time.Duration, fn func()) {
	gen := c.generation
	var h ports.Handle
	h = c.scheduler.After(delay, func() {
		c.forget(h)
		if gen != c.generation {
			return
		}
		fn()
	})
	c.pending = append(c.pending, h)
}

func (c *TimerController) forget(h ports.Handle) {
	for i, p := range c.pending {
		if p == h {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return
		}
	}
}

func (c *TimerController) cancelPending() {
	c.generation++
	for _, h := range c.pending {
		h.Cancel()
	}
	c.pending = nil
}

func (c *TimerController) stopTicker() {
	if c.ticker != nil {
		c.ticker.Cancel()
		c.ticker = nil
	}
}

func (c *TimerController) fill(seconds int) {
	c.state.Remaining = seconds
	c.state.Total = seconds
}

func (c *TimerController) render() {
	c.view.Render(c.state.Snapshot())
}

func (c *TimerController) showDuration() {
	c.view.ShowDuration(domain.SplitClock(c.state.Remaining))
}

func (c *TimerController) recordHistory(kind domain.SessionKind) {
	entry := domain.NewHistoryEntry(kind, c.clock.Now())
	if err := c.history.Append(c.ctx, entry); err != nil {
		c.logger.Warn("failed to record history", zap.Error(err))
		return
	}
	c.pushHistory()
}

func (c *TimerController) pushHistory() {
	entries, err := c.history.List(c.ctx)
	if err != nil {
		c.logger.Warn("failed to list history", zap.Error(err))
		return
	}
	c.view.ShowHistory(entries)
}
