package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/robopath/internal/planner"
	"github.com/vovakirdan/robopath/internal/render"
)

// Animation speed bounds for the faster/slower keys.
const (
	fastestStep = 10 * time.Millisecond
	slowestStep = 2 * time.Second
)

// plannedMsg carries a finished search into the model.
type plannedMsg struct {
	outcome planner.Outcome
	err     error
}

// planCmd runs one planning call off the UI goroutine.
func planCmd(p *planner.Planner, seed int64) tea.Cmd {
	return func() tea.Msg {
		out, err := p.Plan(context.Background(), seed)
		return plannedMsg{outcome: out, err: err}
	}
}

// Model is the Bubble Tea model that animates a route one cell per tick.
type Model struct {
	planner      *planner.Planner
	seed         int64
	outcome      planner.Outcome
	ready        bool
	err          error
	step         int
	paused       bool
	showExplored bool
	delay        time.Duration
	keys         ViewerKeyMap
	help         help.Model
	width        int
	height       int
	notice       string
	quitting     bool
}

// NewModel creates a viewer that plans the board for seed on start.
// A zero seed is replaced by a time-based one.
func NewModel(p *planner.Planner, seed int64) Model {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	display := p.Config().Display

	return Model{
		planner:      p,
		seed:         seed,
		showExplored: display.ShowExplored,
		delay:        time.Duration(display.StepDelayMS) * time.Millisecond,
		keys:         DefaultViewerKeyMap(),
		help:         help.New(),
	}
}

// Init plans the first board and starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(planCmd(m.planner, m.seed), tickCmd(m.delay))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case plannedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.outcome = msg.outcome
		m.seed = msg.outcome.Seed
		m.ready = true
		m.step = 0
		return m, nil

	case TickMsg:
		if m.ready && !m.paused && m.step < len(m.outcome.Result.Path) {
			m.step++
		}
		return m, tickCmd(m.delay)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused

	case key.Matches(msg, m.keys.Regenerate):
		m.ready = false
		return m, planCmd(m.planner, m.seed+1)

	case key.Matches(msg, m.keys.Replay):
		m.step = 0

	case key.Matches(msg, m.keys.Explored):
		m.showExplored = !m.showExplored

	case key.Matches(msg, m.keys.Faster):
		m.delay = max(m.delay/2, fastestStep)

	case key.Matches(msg, m.keys.Slower):
		m.delay = min(max(m.delay, fastestStep)*2, slowestStep)

	case key.Matches(msg, m.keys.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.notice = "screenshot failed: " + err.Error()
		} else {
			m.notice = "saved " + path
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// Frame returns the board as currently revealed, or nil before the first
// search completes.
func (m Model) Frame() *render.Frame {
	if !m.ready {
		return nil
	}
	return render.Snapshot(m.outcome.Grid, m.outcome.Result, m.step, m.showExplored)
}

// Step returns how many path cells are revealed.
func (m Model) Step() int {
	return m.step
}

// Outcome returns the displayed search.
func (m Model) Outcome() planner.Outcome {
	return m.outcome
}

// Paused returns true while the animation is halted.
func (m Model) Paused() bool {
	return m.paused
}

// Delay returns the current time between steps.
func (m Model) Delay() time.Duration {
	return m.delay
}

// Done returns true once the whole route is on screen.
func (m Model) Done() bool {
	return m.ready && m.step >= len(m.outcome.Result.Path)
}

// IsQuitting returns true if user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// saveScreenshot writes the current frame as plain text.
func (m Model) saveScreenshot() (string, error) {
	f := m.Frame()
	if f == nil {
		return "", fmt.Errorf("nothing to save yet")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".robopath", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%d_%s.txt", m.outcome.Source, m.outcome.Seed, timestamp))
	content := f.String() + "\n" + render.Summary(m.outcome.Result) + "\n"
	return path, os.WriteFile(path, []byte(content), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	if m.err != nil {
		b.WriteString(failStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render(m.help.View(m.keys)))
		return b.String()
	}

	f := m.Frame()
	if f == nil {
		return "Planning..."
	}

	title := fmt.Sprintf("ROBOPATH | %s | seed %d", m.outcome.Source, m.outcome.Seed)
	if m.outcome.Attempts > 1 {
		title += fmt.Sprintf(" | attempt %d", m.outcome.Attempts)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(boardStyle.Render(RenderFrame(f)))
	b.WriteString("\n")

	summary := render.Summary(m.outcome.Result)
	if m.outcome.Result.Found() {
		b.WriteString(statusStyle.Render(summary))
	} else {
		b.WriteString(failStyle.Render(summary))
	}
	b.WriteString("\n")

	progress := fmt.Sprintf("step %d/%d  delay %s", m.step, len(m.outcome.Result.Path), m.delay)
	if m.paused {
		progress += "  [paused]"
	} else if m.Done() && m.outcome.Result.Found() {
		progress += "  [arrived]"
	}
	b.WriteString(statusStyle.Render(progress))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(render.Legend()))
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(statusStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	if m.width > 0 {
		lines := strings.Split(b.String(), "\n")
		for i, line := range lines {
			lines[i] = centerText(line, m.width)
		}
		return strings.Join(lines, "\n")
	}
	return b.String()
}

// Run starts the Bubble Tea program for the viewer.
func Run(p *planner.Planner, seed int64) error {
	model := NewModel(p, seed)

	prog := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := prog.Run()
	return err
}
