// Package cmd provides the CLI commands for the pomodial application.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

var (
	// Version info (set at build time via ldflags)
	Version = "dev"

	// Global flags
	configPath    string
	workDuration  time.Duration
	breakDuration time.Duration
	logFile       string
	verbose       bool
)

// errNotTerminal is returned when stdout cannot host the dial.
var errNotTerminal = errors.New("pomodial needs an interactive terminal")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pomodial",
	Short: "pomodial - a Pomodoro dial timer for the terminal",
	Long: `pomodial draws a circular countdown dial that alternates between
work and break sessions.

Click the dial to set the time by angle, or type minutes and seconds
into the fields. Completed sessions are listed until you quit.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTimer,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to the config file (default: ~/.pomodial/config.toml)")
	rootCmd.Flags().DurationVar(&workDuration, "work", 0, "Work session length, e.g. 25m (overrides config)")
	rootCmd.Flags().DurationVar(&breakDuration, "break", 0, "Break session length, e.g. 5m (overrides config)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Write debug logs to this file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("pomodial\nVersion: {{.Version}}\n")
}

func runTimer(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(os.Stdout.Fd()) {
		return errNotTerminal
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := setupSignalHandler()
	defer stop()

	deps, err := initializeServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.cleanup(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}()

	return deps.app.Run(ctx)
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
