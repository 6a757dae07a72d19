// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/xvierd/pomodial/internal/domain"
	"github.com/xvierd/pomodial/internal/render"
	"github.com/xvierd/pomodial/internal/services"
)

// Layout of the dial on screen, in cells from the top-left corner.
const (
	dialTop  = 2
	dialLeft = 2

	defaultDialRows = 10
	minDialRows     = 6
	maxDialRows     = 15

	// belowClockRows counts the lines under the clock other than history
	// entries, with the error line always reserved.
	belowClockRows = 9

	// bigClockRows is the height of the block-glyph clock.
	bigClockRows = 5

	// Windows shorter than this show the block clock instead of the dial.
	compactHeight = dialTop + minDialRows + belowClockRows + 1
)

type focus int

const (
	focusDial focus = iota
	focusMinutes
	focusSeconds
	focusHistory
	focusCount
)

// frameMsg advances the shake and flip animations.
type frameMsg struct{}

// Model represents the TUI state.
type Model struct {
	ctx     context.Context
	timer   *services.TimerController
	ui      *screen
	keys    keyMap
	help    help.Model
	palette render.Palette
	logger  *zap.Logger

	focus     focus
	width     int
	height    int
	lastError error
}

// NewModel creates a new TUI model around a controller and its screen.
func NewModel(ctx context.Context, timer *services.TimerController, ui *screen, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Model{
		ctx:     ctx,
		timer:   timer,
		ui:      ui,
		keys:    defaultKeyMap(),
		help:    help.New(),
		palette: render.DefaultPalette(),
		logger:  logger,
	}
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case callbackMsg:
		msg.run()

	case frameMsg:
		m.ui.animating = false
		m.ui.advance()

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	default:
		cmd = m.updateFocusedInput(msg)
	}

	if frame := m.animate(); frame != nil {
		return m, tea.Batch(cmd, frame)
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// The alert is modal: only acknowledge and ctrl+c get through.
	if m.ui.alert != nil {
		switch {
		case msg.String() == "ctrl+c":
			return tea.Quit
		case key.Matches(msg, m.keys.Ack):
			m.ui.acknowledge()
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Start):
		m.timer.Start()
	case key.Matches(msg, m.keys.Stop):
		m.timer.Stop()
	case key.Matches(msg, m.keys.Reset):
		m.timer.Reset()
	case key.Matches(msg, m.keys.Toggle):
		m.timer.ToggleSession()
	case key.Matches(msg, m.keys.Focus):
		return m.setFocus((m.focus + 1) % focusCount)
	case m.focus == focusHistory && key.Matches(msg, m.keys.Up):
		if m.ui.selected > 0 {
			m.ui.selected--
		}
	case m.focus == focusHistory && key.Matches(msg, m.keys.Down):
		if m.ui.selected < len(m.ui.history)-1 {
			m.ui.selected++
		}
	case m.focus == focusHistory && key.Matches(msg, m.keys.Delete):
		m.deleteSelected()
	case m.focus == focusMinutes || m.focus == focusSeconds:
		if editsClock(msg) {
			return m.updateFocusedInput(msg)
		}
	}
	return nil
}

// editsClock reports whether a key edits a numeric field. Letters are
// commands, so only signs, digits and cursor keys reach the inputs.
func editsClock(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete, tea.KeyLeft, tea.KeyRight, tea.KeyHome, tea.KeyEnd:
		return true
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if (r < '0' || r > '9') && r != '-' && r != '+' {
				return false
			}
		}
		return len(msg.Runes) > 0
	default:
		return false
	}
}

func (m *Model) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var in *textinput.Model
	switch m.focus {
	case focusMinutes:
		in = &m.ui.minutes
	case focusSeconds:
		in = &m.ui.seconds
	default:
		return nil
	}

	before := in.Value()
	updated, cmd := in.Update(msg)
	*in = updated
	if in.Value() != before {
		m.timer.SetTimeFromInput(m.ui.minutes.Value(), m.ui.seconds.Value())
	}
	return cmd
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.ui.minutes.Blur()
	m.ui.seconds.Blur()
	switch f {
	case focusMinutes:
		return m.ui.minutes.Focus()
	case focusSeconds:
		return m.ui.seconds.Focus()
	}
	return nil
}

func (m *Model) deleteSelected() {
	entry := m.ui.selectedEntry()
	if entry == nil {
		return
	}
	if err := m.timer.DeleteHistory(m.ctx, entry.ID); err != nil {
		m.lastError = err
		m.logger.Warn("failed to delete history entry", zap.String("id", entry.ID), zap.Error(err))
		return
	}
	m.lastError = nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.ui.alert != nil || m.compact() {
		return
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	dial := m.dial()
	col, row := msg.X-dialLeft, msg.Y-dialTop
	if !dial.Contains(col, row) {
		return
	}
	m.setFocus(focusDial)
	x, y := dial.CellToCanvas(col, row)
	m.timer.SetTimeFromDial(x, y)
}

// animate keeps one frame tick in flight while a cue is playing.
func (m *Model) animate() tea.Cmd {
	if !m.ui.needsFrames() || m.ui.animating {
		return nil
	}
	m.ui.animating = true
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

func (m Model) compact() bool {
	return m.height > 0 && m.height < compactHeight
}

// dialSize fits a square dial into the window. Cells are about twice as
// tall as wide, so a square needs twice as many columns as rows. The dial
// shrinks to make room for history, down to minDialRows.
func (m Model) dialSize() (cols, rows int) {
	rows = defaultDialRows
	if m.height > 0 {
		rows = m.height - dialTop - belowClockRows - max(len(m.ui.history), 1)
	}
	if m.width > 0 && rows*2 > m.width-2*dialLeft {
		rows = (m.width - 2*dialLeft) / 2
	}
	rows = max(minDialRows, min(rows, maxDialRows))
	return rows * 2, rows
}

// historyRows is how many history entries fit under a clock of clockRows.
// At least one line is always shown.
func (m Model) historyRows(clockRows int) int {
	n := max(len(m.ui.history), 1)
	if m.height > 0 {
		n = min(n, max(1, m.height-dialTop-clockRows-belowClockRows))
	}
	return n
}

func (m Model) dial() *render.Raster {
	cols, rows := m.dialSize()
	r := render.NewRaster(cols, rows)
	r.Mirror = m.ui.mirrored
	r.Squeeze = m.ui.squeeze()
	r.Offset = m.ui.shakeOffset()
	render.Draw(r, m.ui.snapshot, m.palette)
	return r
}

// View renders the TUI.
func (m Model) View() string {
	if m.ui.alert != nil {
		return m.viewAlert()
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.palette.Text))
	kindStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.palette.SectorColor(m.ui.kind)))
	helpStyle := lipgloss.NewStyle().Faint(true)
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Work))

	var sections []string
	sections = append(sections, titleStyle.Render("⏱ pomodial"))
	sections = append(sections, "")
	var clockRows int
	if m.compact() {
		clock := domain.FormatClock(m.ui.snapshot.Remaining)
		sections = append(sections, renderBigTime(clock, lipgloss.Color(m.palette.SectorColor(m.ui.kind)), m.width))
		clockRows = bigClockRows
	} else {
		sections = append(sections, m.dial().String())
		_, clockRows = m.dialSize()
	}
	sections = append(sections, "")

	status := "stopped"
	if m.timer.Phase().Running() {
		status = "running"
	}
	sections = append(sections, kindStyle.Render(m.ui.kind.Label())+helpStyle.Render(" · "+status))
	sections = append(sections, "")
	sections = append(sections, m.viewInputs())
	sections = append(sections, "")
	sections = append(sections, m.viewHistory(m.historyRows(clockRows))...)
	sections = append(sections, "")
	if m.lastError != nil {
		sections = append(sections, errStyle.Render(fmt.Sprintf("Error: %v", m.lastError)))
	}
	sections = append(sections, m.help.View(m.keys))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.NewStyle().PaddingLeft(dialLeft).Render(content)
}

func (m Model) viewInputs() string {
	label := lipgloss.NewStyle().Faint(true)
	active := lipgloss.NewStyle().Bold(true)
	field := func(name string, in textinput.Model, f focus) string {
		style := label
		if m.focus == f {
			style = active
		}
		return style.Render(name+" ") + "[" + in.View() + "]"
	}
	return field("min", m.ui.minutes, focusMinutes) + "  " + field("sec", m.ui.seconds, focusSeconds)
}

// viewHistory renders at most limit entries. Unfocused it shows the most
// recent ones; focused, the window follows the selection.
func (m Model) viewHistory(limit int) []string {
	header := lipgloss.NewStyle().Bold(true)
	if m.focus == focusHistory {
		header = header.Underline(true)
	}
	entries := m.ui.history
	title := "History"
	if len(entries) > limit {
		title = fmt.Sprintf("History (%d of %d)", limit, len(entries))
	}
	lines := []string{header.Render(title)}
	if len(entries) == 0 {
		lines = append(lines, lipgloss.NewStyle().Faint(true).Render("  no sessions yet"))
		return lines
	}

	start := len(entries) - min(limit, len(entries))
	if m.focus == focusHistory {
		start = max(0, min(m.ui.selected-limit+1, start))
	}
	end := min(start+limit, len(entries))
	for i := start; i < end; i++ {
		cursor := "  "
		if m.focus == focusHistory && i == m.ui.selected {
			cursor = "> "
		}
		lines = append(lines, cursor+entries[i].Label())
	}
	return lines
}

func (m Model) viewAlert() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.palette.SectorColor(m.ui.kind))).
		Padding(1, 4).
		Render(lipgloss.JoinVertical(lipgloss.Center,
			lipgloss.NewStyle().Bold(true).Render(m.ui.alert.message),
			"",
			lipgloss.NewStyle().Faint(true).Render("press enter"),
		))
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
