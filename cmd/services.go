package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xvierd/pomodial/internal/adapters/notification"
	"github.com/xvierd/pomodial/internal/adapters/storage"
	"github.com/xvierd/pomodial/internal/adapters/tui"
	"github.com/xvierd/pomodial/internal/config"
	"github.com/xvierd/pomodial/internal/logging"
	"github.com/xvierd/pomodial/internal/ports"
)

// appDeps groups everything built at startup.
type appDeps struct {
	config   *config.Config
	logger   *zap.Logger
	history  ports.HistoryRepository
	notifier *notification.Notifier
	app      *tui.App
}

// configOverrides are the command-line values that win over the file.
type configOverrides struct {
	work    *config.Duration
	brk     *config.Duration
	logFile string
	verbose bool
}

// resolveConfig loads the config file and applies changed flags on top.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	var o configOverrides
	if cmd.Flags().Changed("work") {
		d := config.Duration(workDuration)
		o.work = &d
	}
	if cmd.Flags().Changed("break") {
		d := config.Duration(breakDuration)
		o.brk = &d
	}
	o.logFile = logFile
	o.verbose = verbose
	return loadConfig(configPath, o)
}

func loadConfig(path string, o configOverrides) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if o.work != nil {
		cfg.Timer.WorkDuration = *o.work
	}
	if o.brk != nil {
		cfg.Timer.BreakDuration = *o.brk
	}
	if o.logFile != "" {
		cfg.Log.File = o.logFile
	}
	if o.verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// initializeServices sets up all the required services and adapters.
func initializeServices(ctx context.Context, cfg *config.Config) (*appDeps, error) {
	deps := &appDeps{config: cfg}

	logger, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	deps.logger = logger

	deps.history, err = storage.NewMemory()
	if err != nil {
		_ = deps.cleanup()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	deps.notifier = notification.New(&cfg.Notifications)

	deps.app, err = tui.NewApp(ctx, tui.Options{
		Durations: cfg.ToDurations(),
		History:   deps.history,
		Clock:     ports.SystemClock{},
		Logger:    logger,
		OnAlert:   deps.mirrorAlert,
	})
	if err != nil {
		_ = deps.cleanup()
		return nil, fmt.Errorf("failed to initialize timer: %w", err)
	}

	logger.Info("pomodial started",
		zap.Stringer("work", cfg.Timer.WorkDuration),
		zap.Stringer("break", cfg.Timer.BreakDuration),
		zap.Bool("notifications", deps.notifier.IsEnabled()))
	return deps, nil
}

// mirrorAlert forwards the end-of-interval alert to the desktop without
// holding up the update loop.
func (d *appDeps) mirrorAlert(message string) {
	if d.notifier == nil || !d.notifier.IsEnabled() {
		return
	}
	go func() {
		if err := d.notifier.NotifyIntervalElapsed(message); err != nil {
			d.logger.Warn("notification failed", zap.Error(err))
		}
	}()
}

// cleanup closes all resources.
func (d *appDeps) cleanup() error {
	var errs []error
	if d.history != nil {
		if err := d.history.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close storage: %w", err))
		}
	}
	if d.logger != nil {
		_ = d.logger.Sync()
	}
	return errors.Join(errs...)
}
