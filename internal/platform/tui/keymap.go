package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/frogcore/internal/joystick"
)

// ConsoleKeyMap defines the key bindings for the console.
type ConsoleKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	UpLeft    key.Binding
	UpRight   key.Binding
	DownLeft  key.Binding
	DownRight key.Binding
	Volume    key.Binding
	Mute      key.Binding
	Pause     key.Binding
	Restart   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ConsoleKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Pause, k.Volume, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ConsoleKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.UpLeft, k.UpRight, k.DownLeft, k.DownRight},
		{k.Volume, k.Mute, k.Pause, k.Restart},
		{k.Help, k.Quit},
	}
}

// DefaultConsoleKeyMap returns default key bindings.
func DefaultConsoleKeyMap() ConsoleKeyMap {
	return ConsoleKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "hop"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "back"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		UpLeft: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "up-left"),
		),
		UpRight: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "up-right"),
		),
		DownLeft: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "down-left"),
		),
		DownRight: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "down-right"),
		),
		Volume: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "volume"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// StickMove returns the stick direction bound to msg, if any.
func (k ConsoleKeyMap) StickMove(msg tea.KeyMsg) (joystick.Move, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return joystick.MoveUp, true
	case key.Matches(msg, k.Down):
		return joystick.MoveDown, true
	case key.Matches(msg, k.Left):
		return joystick.MoveLeft, true
	case key.Matches(msg, k.Right):
		return joystick.MoveRight, true
	case key.Matches(msg, k.UpLeft):
		return joystick.MoveUpLeft, true
	case key.Matches(msg, k.UpRight):
		return joystick.MoveUpRight, true
	case key.Matches(msg, k.DownLeft):
		return joystick.MoveDownLeft, true
	case key.Matches(msg, k.DownRight):
		return joystick.MoveDownRight, true
	}
	return joystick.MoveNone, false
}
