package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhase_Transitions(t *testing.T) {
	tests := []struct {
		name  string
		phase Phase
		start Phase
		stop  Phase
		flip  Phase
	}{
		{"idle work", PhaseIdleWork, PhaseRunningWork, PhaseIdleWork, PhaseIdleBreak},
		{"running work", PhaseRunningWork, PhaseRunningWork, PhaseIdleWork, PhaseRunningBreak},
		{"idle break", PhaseIdleBreak, PhaseRunningBreak, PhaseIdleBreak, PhaseIdleWork},
		{"running break", PhaseRunningBreak, PhaseRunningBreak, PhaseIdleBreak, PhaseRunningWork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.start, tt.phase.Start())
			assert.Equal(t, tt.stop, tt.phase.Stop())
			assert.Equal(t, tt.flip, tt.phase.Flip())
			assert.Equal(t, tt.phase.Running(), tt.phase.Flip().Running(), "flip keeps the run state")
			assert.NotEqual(t, tt.phase.Kind(), tt.phase.Flip().Kind(), "flip inverts the kind")
		})
	}
}

func TestPhase_KindAndRunning(t *testing.T) {
	assert.Equal(t, SessionKindWork, PhaseIdleWork.Kind())
	assert.Equal(t, SessionKindWork, PhaseRunningWork.Kind())
	assert.Equal(t, SessionKindBreak, PhaseIdleBreak.Kind())
	assert.Equal(t, SessionKindBreak, PhaseRunningBreak.Kind())

	assert.False(t, PhaseIdleWork.Running())
	assert.True(t, PhaseRunningWork.Running())
	assert.False(t, PhaseIdleBreak.Running())
	assert.True(t, PhaseRunningBreak.Running())
}

func TestSessionKind_Label(t *testing.T) {
	assert.Equal(t, "Focus time", SessionKindWork.Label())
	assert.Equal(t, "Break time", SessionKindBreak.Label())
	assert.Equal(t, SessionKindBreak, SessionKindWork.Other())
	assert.Equal(t, SessionKindWork, SessionKindBreak.Other())
}

func TestDurations(t *testing.T) {
	d := DefaultDurations()
	assert.Equal(t, 1500, d.For(SessionKindWork))
	assert.Equal(t, 300, d.For(SessionKindBreak))
	assert.NoError(t, d.Validate())

	assert.ErrorIs(t, Durations{Work: 0, Break: 300}.Validate(), ErrInvalidDuration)
	assert.ErrorIs(t, Durations{Work: 60, Break: -1}.Validate(), ErrInvalidDuration)
}

func TestNewTimerState(t *testing.T) {
	s := NewTimerState(Durations{Work: 90, Break: 30})
	assert.Equal(t, PhaseIdleWork, s.Phase)
	assert.Equal(t, 90, s.Remaining)
	assert.Equal(t, 90, s.Total)

	snap := s.Snapshot()
	assert.Equal(t, SessionKindWork, snap.Kind)
	assert.False(t, snap.Running)
	assert.Equal(t, 1.0, snap.Progress())
}

func TestSnapshot_Progress(t *testing.T) {
	tests := []struct {
		name      string
		remaining int
		total     int
		want      float64
	}{
		{"full", 60, 60, 1},
		{"half", 30, 60, 0.5},
		{"empty", 0, 60, 0},
		{"zero total", 0, 0, 0},
		{"negative total", -60, -60, 0},
		{"over total", 90, 60, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Snapshot{Remaining: tt.remaining, Total: tt.total}.Progress()
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
