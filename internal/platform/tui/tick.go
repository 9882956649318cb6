// Package tui is the terminal front end for frogcore. It runs the engine's
// main loop off Bubble Tea ticks and renders the virtual board.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFrameRate is how many main-loop iterations the console runs per
// second.
const DefaultFrameRate = 100

// TickMsg is sent to trigger a main-loop iteration.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(frameRate int) tea.Cmd {
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	interval := time.Second / time.Duration(frameRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
