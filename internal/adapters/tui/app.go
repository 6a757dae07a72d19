package tui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/xvierd/pomodial/internal/domain"
	"github.com/xvierd/pomodial/internal/ports"
	"github.com/xvierd/pomodial/internal/services"
)

// Options configures an App.
type Options struct {
	Durations domain.Durations
	History   ports.HistoryRepository
	Clock     ports.Clock
	Logger    *zap.Logger

	// Scheduler overrides the program-backed scheduler.
	Scheduler ports.Scheduler

	// OnAlert is called whenever the end-of-interval alert is raised.
	OnAlert func(message string)

	// ProgramOptions are appended to the defaults (alt screen, mouse).
	ProgramOptions []tea.ProgramOption
}

// App wires the timer controller to a bubbletea program.
type App struct {
	timer     *services.TimerController
	ui        *screen
	scheduler *Scheduler
	logger    *zap.Logger
	opts      []tea.ProgramOption

	mu      sync.Mutex
	program *tea.Program
}

// NewApp builds the controller and its terminal view.
func NewApp(ctx context.Context, opts Options) (*App, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	ui := newScreen()
	ui.onAlert = opts.OnAlert

	var owned *Scheduler
	sched := opts.Scheduler
	if sched == nil {
		owned = NewScheduler()
		sched = owned
	}

	timer, err := services.NewTimerController(ctx, opts.Durations, services.Deps{
		View:      ui,
		Scheduler: sched,
		Clock:     opts.Clock,
		Alerter:   ui,
		History:   opts.History,
		Logger:    opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	timer.Refresh()

	return &App{
		timer:     timer,
		ui:        ui,
		scheduler: owned,
		logger:    opts.Logger,
		opts:      opts.ProgramOptions,
	}, nil
}

// Timer returns the controller driven by the app.
func (a *App) Timer() *services.TimerController {
	return a.timer
}

// Model returns a fresh model bound to the app's controller.
func (a *App) Model(ctx context.Context) Model {
	return NewModel(ctx, a.timer, a.ui, a.logger)
}

// Run starts the terminal interface and blocks until the user quits or
// ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}, a.opts...)

	program := tea.NewProgram(a.Model(ctx), opts...)
	a.mu.Lock()
	a.program = program
	a.mu.Unlock()

	if a.scheduler != nil {
		a.scheduler.Attach(program)
		defer a.scheduler.Close()
	}

	// Handle context cancellation
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			program.Quit()
		case <-done:
		}
	}()

	a.logger.Debug("tui started")
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	a.timer.Stop()
	a.logger.Debug("tui stopped")
	return nil
}

// Stop asks a running program to quit.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.program != nil {
		a.program.Quit()
	}
}
