// Package config provides configuration management for pomodial.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/xvierd/pomodial/internal/domain"
)

// Config holds all configuration for the pomodial application.
type Config struct {
	Timer         TimerConfig        `mapstructure:"timer"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Log           LogConfig          `mapstructure:"log"`
}

// TimerConfig holds the two session lengths used as reset targets.
type TimerConfig struct {
	WorkDuration  Duration `mapstructure:"work_duration"`
	BreakDuration Duration `mapstructure:"break_duration"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	// Enabled mirrors the in-terminal "Time is up!" alert to a desktop
	// notification. It is the only thing ever sent, and the terminal alert
	// is raised either way. Off by default.
	Enabled bool `mapstructure:"enabled"`
}

// LogConfig holds logging settings. An empty file disables logging.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Timer: TimerConfig{
			WorkDuration:  Duration(25 * time.Minute),
			BreakDuration: Duration(5 * time.Minute),
		},
		Notifications: NotificationConfig{
			Enabled: false,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the configuration from path, or from the default location
// when path is empty. A missing file yields the defaults; environment
// variables prefixed with POMODIAL_ override both.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix("POMODIAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".pomodial", "config.toml"), nil
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("timer.work_duration", defaults.Timer.WorkDuration.String())
	v.SetDefault("timer.break_duration", defaults.Timer.BreakDuration.String())
	v.SetDefault("notifications.enabled", defaults.Notifications.Enabled)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.level", defaults.Log.Level)
}

// Validate checks that both session lengths are at least one second.
func (c *Config) Validate() error {
	if time.Duration(c.Timer.WorkDuration) < time.Second {
		return fmt.Errorf("work duration %s: %w", c.Timer.WorkDuration, domain.ErrInvalidDuration)
	}
	if time.Duration(c.Timer.BreakDuration) < time.Second {
		return fmt.Errorf("break duration %s: %w", c.Timer.BreakDuration, domain.ErrInvalidDuration)
	}
	return nil
}

// ToDurations converts the timer settings to whole-second domain durations.
func (c *Config) ToDurations() domain.Durations {
	return domain.Durations{
		Work:  int(time.Duration(c.Timer.WorkDuration) / time.Second),
		Break: int(time.Duration(c.Timer.BreakDuration) / time.Second),
	}
}
