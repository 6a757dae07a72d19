// Package domain holds the countdown model of the dial timer: session kinds,
// the run/idle state machine, the timer state and its history entries.
package domain

// SessionKind selects which configured duration is authoritative and which
// color and label are shown.
type SessionKind string

const (
	SessionKindWork  SessionKind = "work"
	SessionKindBreak SessionKind = "break"
)

// Other returns the opposite session kind.
func (k SessionKind) Other() SessionKind {
	if k == SessionKindWork {
		return SessionKindBreak
	}
	return SessionKindWork
}

// Label returns a human-readable label for the session kind.
func (k SessionKind) Label() string {
	switch k {
	case SessionKindWork:
		return "Focus time"
	case SessionKindBreak:
		return "Break time"
	default:
		return "Unknown"
	}
}

// Phase is the combined run state and session kind of the timer.
type Phase int

const (
	PhaseIdleWork Phase = iota
	PhaseRunningWork
	PhaseIdleBreak
	PhaseRunningBreak
)

// Kind returns the session kind of the phase.
func (p Phase) Kind() SessionKind {
	if p == PhaseIdleBreak || p == PhaseRunningBreak {
		return SessionKindBreak
	}
	return SessionKindWork
}

// Running reports whether the countdown is ticking in this phase.
func (p Phase) Running() bool {
	return p == PhaseRunningWork || p == PhaseRunningBreak
}

// Start returns the running phase of the same kind.
func (p Phase) Start() Phase {
	return phaseOf(p.Kind(), true)
}

// Stop returns the idle phase of the same kind.
func (p Phase) Stop() Phase {
	return phaseOf(p.Kind(), false)
}

// Flip returns the phase of the opposite kind, keeping the run state.
func (p Phase) Flip() Phase {
	return phaseOf(p.Kind().Other(), p.Running())
}

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdleWork:
		return "idle-work"
	case PhaseRunningWork:
		return "running-work"
	case PhaseIdleBreak:
		return "idle-break"
	case PhaseRunningBreak:
		return "running-break"
	default:
		return "unknown"
	}
}

func phaseOf(kind SessionKind, running bool) Phase {
	switch {
	case kind == SessionKindBreak && running:
		return PhaseRunningBreak
	case kind == SessionKindBreak:
		return PhaseIdleBreak
	case running:
		return PhaseRunningWork
	default:
		return PhaseIdleWork
	}
}

// Durations holds the configured length of each session kind in seconds.
type Durations struct {
	Work  int
	Break int
}

// DefaultDurations returns the classic 25/5 split.
func DefaultDurations() Durations {
	return Durations{
		Work:  25 * 60,
		Break: 5 * 60,
	}
}

// For returns the configured duration of the given kind.
func (d Durations) For(kind SessionKind) int {
	if kind == SessionKindBreak {
		return d.Break
	}
	return d.Work
}

// Validate checks that both durations are positive.
func (d Durations) Validate() error {
	if d.Work <= 0 || d.Break <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

// TimerState is the mutable countdown model owned by the controller.
type TimerState struct {
	Phase     Phase
	Remaining int
	Total     int
	Durations Durations
}

// NewTimerState creates an idle work session filled to the work duration.
func NewTimerState(d Durations) TimerState {
	return TimerState{
		Phase:     PhaseIdleWork,
		Remaining: d.Work,
		Total:     d.Work,
		Durations: d,
	}
}

// Snapshot captures what the renderer needs from the state.
func (s TimerState) Snapshot() Snapshot {
	return Snapshot{
		Remaining: s.Remaining,
		Total:     s.Total,
		Kind:      s.Phase.Kind(),
		Running:   s.Phase.Running(),
	}
}

// Snapshot is an immutable view of the timer state at one instant.
type Snapshot struct {
	Remaining int
	Total     int
	Kind      SessionKind
	Running   bool
}

// Progress returns remaining/total clamped to [0, 1]. A non-positive
// total yields 0.
func (s Snapshot) Progress() float64 {
	if s.Total <= 0 || s.Remaining <= 0 {
		return 0
	}
	p := float64(s.Remaining) / float64(s.Total)
	if p > 1 {
		return 1
	}
	return p
}
