package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/frogcore/internal/storage"
)

// Scoreboard layout constants
const (
	recentGames = 20 // Games shown in the history view
)

// scoreboardView selects what the table shows.
type scoreboardView int

const (
	viewHighScores scoreboardView = iota
	viewHistory
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	SwitchView key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.SwitchView, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.SwitchView, k.Quit},
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
		SwitchView: key.NewBinding(
			key.WithKeys("tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "scores/history"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	store    *storage.Store
	view     scoreboardView
	scores   []storage.ScoreEntry
	games    []storage.GameRecord
	stats    *storage.Stats
	err      error
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.load()
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// load reads the table, the history and the aggregate stats.
func (m *ScoreboardModel) load() {
	if m.store == nil {
		return
	}
	if m.scores, m.err = m.store.Top(); m.err != nil {
		return
	}
	if m.games, m.err = m.store.RecentGames(recentGames); m.err != nil {
		return
	}
	m.stats, m.err = m.store.Stats()
}

// columns returns the columns for the current view.
func (m *ScoreboardModel) columns() []table.Column {
	if m.view == viewHistory {
		return []table.Column{
			{Title: "Game", Width: 6},
			{Title: "Score", Width: 8},
			{Title: "Level", Width: 6},
			{Title: "Time", Width: 8},
			{Title: "Date", Width: 14},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Name", Width: storage.MaxNameLength + 2},
		{Title: "Score", Width: 8},
		{Title: "Date", Width: 14},
	}
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	height := m.height - 10 // Leave room for header, stats, help, and margins
	if height < storage.TableSize+1 {
		height = storage.TableSize + 1
	}

	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	// Table styles
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

// updateTableRows fills the table from the loaded data.
func (m *ScoreboardModel) updateTableRows() {
	var rows []table.Row
	if m.view == viewHistory {
		rows = make([]table.Row, len(m.games))
		for i, g := range m.games {
			rows[i] = table.Row{
				fmt.Sprintf("%d", g.ID),
				fmt.Sprintf("%d", g.Score),
				fmt.Sprintf("%d", g.Level),
				fmt.Sprintf("%d:%02d", g.Duration/60, g.Duration%60),
				g.CreatedAt.Format("Jan 02 15:04"),
			}
		}
	} else {
		rows = make([]table.Row, len(m.scores))
		for i, s := range m.scores {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", s.Rank),
				s.Name,
				fmt.Sprintf("%d", s.Score),
				s.CreatedAt.Format("Jan 02 15:04"),
			}
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

		case key.Matches(msg, m.keys.SwitchView):
			if m.view == viewHighScores {
				m.view = viewHistory
			} else {
				m.view = viewHighScores
			}
			m.table = m.createTable()
			m.updateTableRows()
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

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := "HIGH SCORES"
	if m.view == viewHistory {
		title = "RECENT GAMES"
	}
	b.WriteString(titleStyle.MarginBottom(1).Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	b.WriteString(centerText(panelStyle.Render(m.renderTableContent()), m.width))
	b.WriteString("\n")

	if m.stats != nil && m.stats.GamesCount > 0 {
		line := fmt.Sprintf("%d games   best %d   average %.1f   best level %d   last played %s",
			m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore, m.stats.BestLevel,
			m.stats.LastPlayed.Format("Jan 02 15:04"))
		b.WriteString(centerText(labelStyle.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.err != nil {
		return emptyStyle.Render("Could not read scores:\n" + m.err.Error())
	}
	if (m.view == viewHighScores && len(m.scores) == 0) || (m.view == viewHistory && len(m.games) == 0) {
		return emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// RunScoreboard runs the scoreboard screen.
func RunScoreboard(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
