// Package notification mirrors the end-of-interval alert to the desktop.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/xvierd/pomodial/internal/config"
)

// Notifier handles desktop notifications.
type Notifier struct {
	cfg  *config.NotificationConfig
	send func(title, message string) error
}

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{
		cfg: cfg,
		send: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}

	return n.send(title, message)
}

// NotifyIntervalElapsed mirrors the blocking end-of-interval alert.
func (n *Notifier) NotifyIntervalElapsed(message string) error {
	if err := n.Notify("⏱ pomodial", message); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}
