package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/frogcore/internal/crossing"
)

// ConsoleModel is the Bubble Tea model for a console session.
type ConsoleModel struct {
	console   *Console
	keys      ConsoleKeyMap
	help      help.Model
	frameRate int
	width     int
	height    int
	quitting  bool
}

// NewConsoleModel wraps a started console.
func NewConsoleModel(c *Console, width, height int) ConsoleModel {
	h := help.New()
	h.ShowAll = false
	return ConsoleModel{
		console:   c,
		keys:      DefaultConsoleKeyMap(),
		help:      h,
		frameRate: c.cfg.FrameRate,
		width:     width,
		height:    height,
	}
}

// Init starts the main-loop ticks.
func (m ConsoleModel) Init() tea.Cmd {
	return tickCmd(m.frameRate)
}

// Update handles messages.
func (m ConsoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m ConsoleModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		m.console.Stop()
		return m, tea.Quit
	}

	if mv, ok := m.keys.StickMove(msg); ok {
		m.console.Engine().Push(mv)
		return m, nil
	}

	switches := m.console.Engine().Board().Switches
	switch {
	case key.Matches(msg, m.keys.Volume):
		switches.ToggleVolumeDown()
	case key.Matches(msg, m.keys.Mute):
		switches.ToggleMuted()
	case key.Matches(msg, m.keys.Pause):
		m.console.TogglePause()
	case key.Matches(msg, m.keys.Restart):
		if m.console.Game().Over {
			m.console.Restart()
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// handleTick runs one main-loop iteration.
func (m ConsoleModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	m.console.Step()
	return m, tickCmd(m.frameRate)
}

// View renders the console.
func (m ConsoleModel) View() string {
	if m.quitting {
		return ""
	}

	c := m.console
	g := c.Game()
	snap := c.Engine().Snapshot()
	x, y := c.Engine().Board().Stick.Position()

	var b strings.Builder
	b.WriteString(titleStyle.Render(centerText("FROGCORE", m.width)))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("score %d   lives %d   level %d   crossings %d",
		g.Score, g.Lives, g.Level, g.Crossings)
	field := panelStyle.Render(renderField(g.Render()) + "\n\n" + labelStyle.Render(stats))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, field, "  ", boardPanel(snap, x, y)))
	b.WriteString("\n")

	if status := m.status(); status != "" {
		b.WriteString(alertStyle.Render(status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// status returns the banner line for the current game state.
func (m ConsoleModel) status() string {
	c := m.console
	g := c.Game()
	switch {
	case g.Won:
		return fmt.Sprintf("WINNER! score %d%s  r to play again", g.Score, rankSuffix(c.Rank()))
	case g.Over:
		return fmt.Sprintf("GAME OVER  score %d%s  r to play again", g.Score, rankSuffix(c.Rank()))
	case c.Engine().Paused():
		return "PAUSED"
	case c.LastEvent() == crossing.EventLevelUp:
		return fmt.Sprintf("LEVEL %d", g.Level)
	}
	return ""
}

func rankSuffix(rank int) string {
	if rank == 0 {
		return ""
	}
	return fmt.Sprintf("  high score #%d", rank)
}

// Console returns the session behind the model.
func (m ConsoleModel) Console() *Console {
	return m.console
}

// RunConsole runs a console session in the terminal until the player quits.
func RunConsole(ctx context.Context, c *Console, width, height int) error {
	c.Start(ctx)
	defer c.Stop()

	p := tea.NewProgram(
		NewConsoleModel(c, width, height),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
