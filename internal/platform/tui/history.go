package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/robopath/internal/registry"
	"github.com/vovakirdan/robopath/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the source list
	sidebarWidth       = 24  // Width of source sidebar
	maxRuns            = 200 // Max runs to load per source
	allSources         = ""  // Tab that lists every run
)

// HistoryKeyMap defines the key bindings for the run history.
type HistoryKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextSource key.Binding
	PrevSource key.Binding
	Reload     key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextSource, k.PrevSource, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextSource, k.PrevSource},
		{k.Reload, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextSource: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next source"),
		),
		PrevSource: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev source"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing stored runs.
type HistoryModel struct {
	sources     []string // allSources first, then sorted IDs
	cursor      int
	store       *storage.Store
	runs        []storage.RunRecord
	stats       map[string]*storage.SourceStats
	err         error
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewHistoryModel creates a history browser over store.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	m := HistoryModel{
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.reload()
	return m
}

// historySources merges registered generators with sources found in stats.
func historySources(stats map[string]*storage.SourceStats) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, g := range registry.List() {
		seen[g.ID] = true
		ids = append(ids, g.ID)
	}
	for id := range stats {
		if !seen[id] {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return append([]string{allSources}, ids...)
}

func sourceLabel(id string) string {
	if id == allSources {
		return "all"
	}
	return id
}

// reload refreshes stats, the source list and the table.
func (m *HistoryModel) reload() {
	m.stats = nil
	if m.store != nil {
		stats, err := m.store.AllSourceStats()
		if err != nil {
			m.err = err
		}
		m.stats = stats
	}

	current := allSources
	if m.cursor < len(m.sources) {
		current = m.sources[m.cursor]
	}
	m.sources = historySources(m.stats)
	m.cursor = max(slices.Index(m.sources, current), 0)
	m.loadRuns()
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Source", Width: 10},
		{Title: "Seed", Width: 12},
		{Title: "Cost", Width: 6},
		{Title: "Len", Width: 4},
		{Title: "Exp", Width: 5},
		{Title: "Facing", Width: 9},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads runs for the selected source.
func (m *HistoryModel) loadRuns() {
	m.runs = nil
	if m.store != nil {
		runs, err := m.store.RecentRuns(m.sources[m.cursor], maxRuns)
		if err != nil {
			m.err = err
		} else {
			m.runs = runs
		}
	}
	m.updateTableRows()
}

// updateTableRows fills the table from the loaded runs.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		cost := "-"
		if r.Found {
			cost = fmt.Sprintf("%d", r.Cost)
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			r.Source,
			fmt.Sprintf("%d", r.Seed),
			cost,
			fmt.Sprintf("%d", r.PathLength),
			fmt.Sprintf("%d", r.Expanded),
			r.Facing,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextSource):
			m.cursor = (m.cursor + 1) % len(m.sources)
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.PrevSource):
			m.cursor = (m.cursor - 1 + len(m.sources)) % len(m.sources)
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.Reload):
			m.err = nil
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Source returns the selected source ID, empty for all sources.
func (m HistoryModel) Source() string {
	return m.sources[m.cursor]
}

// Runs returns the runs shown in the table.
func (m HistoryModel) Runs() []storage.RunRecord {
	return m.runs
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("RUN HISTORY | %s", sourceLabel(m.Source()))
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(failStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderStats summarizes the selected source.
func (m HistoryModel) renderStats() string {
	st := m.stats[m.Source()]
	if m.Source() == allSources {
		st = &storage.SourceStats{}
		for _, s := range m.stats {
			st.Runs += s.Runs
			st.Found += s.Found
		}
	}
	if st == nil || st.Runs == 0 {
		return "no runs"
	}

	lines := []string{
		fmt.Sprintf("runs   %d", st.Runs),
		fmt.Sprintf("found  %.0f%%", st.SuccessRate()*100),
	}
	if m.Source() != allSources && st.Found > 0 {
		lines = append(lines,
			fmt.Sprintf("best   %d", st.BestCost),
			fmt.Sprintf("avg    %.1f", st.AvgCost),
			fmt.Sprintf("length %.1f", st.AvgLength),
		)
	}
	return strings.Join(lines, "\n")
}

// renderWideLayout renders the history with a source sidebar.
func (m HistoryModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Sources\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, id := range m.sources {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := sourceLabel(id)
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}
	sidebar.WriteString("\n")
	sidebar.WriteString(helpStyle.Render(m.renderStats()))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", boardStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders source tabs above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.sources))
	for i, id := range m.sources {
		name := sourceLabel(id)
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(" " + name + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 {
		tabLine = fmt.Sprintf("< %s >", sourceLabel(m.Source()))
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(boardStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nPlan a route to fill the history!")
	}

	return m.table.View()
}

// RunHistory runs the history browser.
func RunHistory(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
