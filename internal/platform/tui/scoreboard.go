package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// Scoreboard layout constants
const (
	maxSessions  = 100 // Max sessions to load per view
	tableMargins = 8   // Rows for title, stats, help and borders
)

// HistorySource is what the scoreboard reads. *storage.Store satisfies it.
type HistorySource interface {
	RecentSessions(limit int) ([]storage.SessionRecord, error)
	TopSessions(limit int) ([]storage.SessionRecord, error)
	Stats() (*storage.SessionStats, error)
}

// HistoryView selects which sessions the table lists.
type HistoryView int

const (
	ViewRecent HistoryView = iota
	ViewBest
)

func (v HistoryView) String() string {
	if v == ViewBest {
		return "Best"
	}
	return "Recent"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Switch key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Switch, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "recent/best"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the session history screen.
type ScoreboardModel struct {
	source   HistorySource
	view     HistoryView
	sessions []storage.SessionRecord
	stats    *storage.SessionStats
	loadErr  error
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(source HistorySource, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		source: source,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Result", Width: 6},
		{Title: "Score", Width: 6},
		{Title: "Blocks", Width: 7},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 13},
	}

	height := max(m.height-tableMargins, 3)
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
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

// load reads the current view and the aggregate stats.
func (m *ScoreboardModel) load() {
	m.sessions, m.stats, m.loadErr = nil, nil, nil
	if m.source == nil {
		m.updateTableRows()
		return
	}

	var err error
	if m.view == ViewBest {
		m.sessions, err = m.source.TopSessions(maxSessions)
	} else {
		m.sessions, err = m.source.RecentSessions(maxSessions)
	}
	if err != nil {
		m.loadErr = err
	}
	if stats, statsErr := m.source.Stats(); statsErr == nil {
		m.stats = stats
	}
	m.updateTableRows()
}

func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.sessions))
	for i, s := range m.sessions {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			s.Outcome,
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d/%d", s.BlocksDestroyed, s.BlocksTotal),
			fmt.Sprintf("%.1fs", s.Duration.Seconds()),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Switch):
			if m.view == ViewRecent {
				m.view = ViewBest
			} else {
				m.view = ViewRecent
			}
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Scrolling and everything else goes to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	tableBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, titleStyle.Render("BREAKOUT HISTORY")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.renderTabs()))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, dimStyle.Render(m.statsLine())))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tableBoxStyle.Render(m.renderTableContent())))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	tabs := []HistoryView{ViewRecent, ViewBest}
	parts := make([]string, len(tabs))
	for i, v := range tabs {
		if v == m.view {
			parts[i] = activeTabStyle.Render(v.String())
		} else {
			parts[i] = dimStyle.Render(" " + v.String() + " ")
		}
	}
	return strings.Join(parts, " ")
}

func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.Played == 0 {
		return "no sessions yet"
	}
	line := fmt.Sprintf("played %d  won %d  lost %d  win rate %.0f%%  best %d",
		m.stats.Played, m.stats.Won, m.stats.Lost, m.stats.WinRate()*100, m.stats.BestScore)
	if m.stats.FastestWin > 0 {
		line += fmt.Sprintf("  fastest win %.1fs", m.stats.FastestWin.Seconds())
	}
	return line
}

func (m ScoreboardModel) renderTableContent() string {
	if m.loadErr != nil {
		return dimStyle.Italic(true).Padding(2, 4).Render("Could not load sessions:\n" + m.loadErr.Error())
	}
	if len(m.sessions) == 0 {
		return dimStyle.Italic(true).Padding(2, 4).Render("No sessions recorded yet.\nPlay a game to start the history!")
	}
	return m.table.View()
}

// CurrentView reports which list is showing.
func (m ScoreboardModel) CurrentView() HistoryView {
	return m.view
}

// Sessions returns the rows currently loaded.
func (m ScoreboardModel) Sessions() []storage.SessionRecord {
	return m.sessions
}

// IsQuitting returns true if user wants to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the session history screen.
func RunScoreboard(source HistorySource, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(source, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
