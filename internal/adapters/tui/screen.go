package tui

import (
	"math"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/xvierd/pomodial/internal/domain"
	"github.com/xvierd/pomodial/internal/ports"
	"github.com/xvierd/pomodial/internal/services"
)

// Animation timing of the shake and flip cues.
const frameInterval = 50 * time.Millisecond

var flipFrames = int(services.FlipDelay / frameInterval)

var shakePattern = []int{-1, 1, -2, 2, -1, 1}

type alert struct {
	message string
	ack     func()
}

// screen is the display state the controller writes to. The model holds it
// by pointer so writes survive bubbletea's value-copied models.
type screen struct {
	snapshot domain.Snapshot
	kind     domain.SessionKind
	minutes  textinput.Model
	seconds  textinput.Model
	filled   bool
	history  []*domain.HistoryEntry
	selected int

	shaking   bool
	flipFrame int
	mirrored  bool
	frame     int
	animating bool

	alert   *alert
	onAlert func(message string)
}

func newScreen() *screen {
	return &screen{
		kind:    domain.SessionKindWork,
		minutes: newClockInput("min"),
		seconds: newClockInput("sec"),
	}
}

func newClockInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = 5
	in.Width = 5
	return in
}

// Render implements ports.View.
func (s *screen) Render(snap domain.Snapshot) {
	s.snapshot = snap
}

// ShowDuration implements ports.View. After the first fill a field is
// rewritten only when it does not already read as the incoming value.
func (s *screen) ShowDuration(minutes, seconds int) {
	if !s.filled || domain.ParseClockFields(s.minutes.Value(), "") != minutes*60 {
		s.minutes.SetValue(strconv.Itoa(minutes))
	}
	if !s.filled || domain.ParseClockFields("", s.seconds.Value()) != seconds {
		s.seconds.SetValue(strconv.Itoa(seconds))
	}
	s.filled = true
}

// ShowSessionKind implements ports.View.
func (s *screen) ShowSessionKind(kind domain.SessionKind) {
	s.kind = kind
}

// SetShake implements ports.View.
func (s *screen) SetShake(on bool) {
	s.shaking = on
}

// ToggleFlip implements ports.View by starting the squeeze animation.
func (s *screen) ToggleFlip() {
	s.flipFrame = 1
}

// ToggleMirror implements ports.View.
func (s *screen) ToggleMirror() {
	s.mirrored = !s.mirrored
}

// ShowHistory implements ports.View.
func (s *screen) ShowHistory(entries []*domain.HistoryEntry) {
	s.history = entries
	if s.selected >= len(entries) {
		s.selected = len(entries) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

// Alert implements ports.Alerter. The alert stays up until acknowledge.
func (s *screen) Alert(message string, ack func()) {
	s.alert = &alert{message: message, ack: ack}
	if s.onAlert != nil {
		s.onAlert(message)
	}
}

func (s *screen) acknowledge() {
	a := s.alert
	s.alert = nil
	if a != nil && a.ack != nil {
		a.ack()
	}
}

func (s *screen) selectedEntry() *domain.HistoryEntry {
	if s.selected < 0 || s.selected >= len(s.history) {
		return nil
	}
	return s.history[s.selected]
}

func (s *screen) needsFrames() bool {
	return s.shaking || s.flipFrame > 0
}

func (s *screen) advance() {
	s.frame++
	if s.flipFrame > 0 {
		s.flipFrame++
		if s.flipFrame > flipFrames {
			s.flipFrame = 0
		}
	}
}

func (s *screen) squeeze() float64 {
	if s.flipFrame == 0 {
		return 1
	}
	return math.Abs(math.Cos(math.Pi * float64(s.flipFrame) / float64(flipFrames)))
}

func (s *screen) shakeOffset() int {
	if !s.shaking {
		return 0
	}
	return shakePattern[s.frame%len(shakePattern)]
}

var (
	_ ports.View    = (*screen)(nil)
	_ ports.Alerter = (*screen)(nil)
)
