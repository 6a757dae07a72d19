package notification

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/pomodial/internal/config"
)

type sent struct {
	title   string
	message string
}

func recordingNotifier(cfg *config.NotificationConfig, err error) (*Notifier, *[]sent) {
	var calls []sent
	n := New(cfg)
	n.send = func(title, message string) error {
		calls = append(calls, sent{title, message})
		return err
	}
	return n, &calls
}

func TestNotifier_Disabled(t *testing.T) {
	n, calls := recordingNotifier(&config.NotificationConfig{Enabled: false}, nil)

	require.NoError(t, n.NotifyIntervalElapsed("Time is up!"))
	assert.False(t, n.IsEnabled())
	assert.Empty(t, *calls)
}

func TestNotifier_NilConfig(t *testing.T) {
	n, calls := recordingNotifier(nil, nil)

	require.NoError(t, n.Notify("title", "message"))
	assert.Empty(t, *calls)
}

func TestNotifier_Enabled(t *testing.T) {
	n, calls := recordingNotifier(&config.NotificationConfig{Enabled: true}, nil)

	require.NoError(t, n.NotifyIntervalElapsed("Time is up!"))
	require.Len(t, *calls, 1)
	assert.Equal(t, "Time is up!", (*calls)[0].message)
	assert.Contains(t, (*calls)[0].title, "pomodial")
}

func TestNotifier_SendError(t *testing.T) {
	boom := errors.New("no notification daemon")
	n, _ := recordingNotifier(&config.NotificationConfig{Enabled: true}, boom)

	err := n.NotifyIntervalElapsed("Time is up!")
	assert.ErrorIs(t, err, boom)
}
