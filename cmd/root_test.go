package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xvierd/pomodial/internal/config"
	"github.com/xvierd/pomodial/internal/domain"
)

// executeCmd is a helper to execute a cobra command in tests
func executeCmd(cmd *cobra.Command, args ...string) (stdout string, stderr string, err error) {
	// Flag values survive between Execute calls; start each run clean.
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	if args == nil {
		args = []string{}
	}

	bufOut := new(bytes.Buffer)
	bufErr := new(bytes.Buffer)

	cmd.SetOut(bufOut)
	cmd.SetErr(bufErr)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return bufOut.String(), bufErr.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "pomodial", rootCmd.Use)
}

func TestRootCmd_Help(t *testing.T) {
	stdout, _, err := executeCmd(rootCmd, "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "pomodial")
	assert.Contains(t, stdout, "--work")
}

func TestRootCmd_Flags(t *testing.T) {
	for _, name := range []string{"config", "work", "break", "log-file", "verbose"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), "--%s should be registered", name)
	}
}

func TestRootCmd_Version(t *testing.T) {
	stdout, _, err := executeCmd(rootCmd, "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Version: "+Version)
}

func TestRootCmd_RequiresTerminal(t *testing.T) {
	// go test never gives the process a terminal on stdout.
	_, _, err := executeCmd(rootCmd)
	assert.ErrorIs(t, err, errNotTerminal)
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	_, _, err := executeCmd(rootCmd, "extra")
	assert.Error(t, err)
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, `
[timer]
work_duration = "50m"
break_duration = "10m"

[log]
level = "warn"
`)
	work := config.Duration(15 * time.Minute)
	cfg, err := loadConfig(path, configOverrides{work: &work, verbose: true, logFile: "/tmp/pomodial.log"})
	require.NoError(t, err)

	assert.Equal(t, domain.Durations{Work: 900, Break: 600}, cfg.ToDurations())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/pomodial.log", cfg.Log.File)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, err := loadConfig(path, configOverrides{})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDurations(), cfg.ToDurations())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_RejectsTinyOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")
	brk := config.Duration(100 * time.Millisecond)

	_, err := loadConfig(path, configOverrides{brk: &brk})
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)
}

func TestInitializeServices(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Timer.WorkDuration = config.Duration(time.Minute)

	deps, err := initializeServices(context.Background(), cfg)
	require.NoError(t, err)
	defer func() { assert.NoError(t, deps.cleanup()) }()

	require.NotNil(t, deps.app)
	assert.Equal(t, 60, deps.app.Timer().Snapshot().Remaining)
	assert.False(t, deps.notifier.IsEnabled())

	// Disabled notifications never reach the desktop.
	deps.mirrorAlert("Time is up!")
}

func TestInitializeServices_BadLogLevel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Log.File = filepath.Join(t.TempDir(), "pomodial.log")
	cfg.Log.Level = "loud"

	_, err := initializeServices(context.Background(), cfg)
	assert.Error(t, err)
}
