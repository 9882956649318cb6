package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/frogcore/internal/engine"
	"github.com/vovakirdan/frogcore/internal/joystick"
)

const (
	timerBarWidth = 20
	panelWidth    = 30
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	segmentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	alertStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	// fieldStyles colours the play field by glyph.
	fieldStyles = map[rune]lipgloss.Style{
		'@': lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		'#': lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		'_': lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		'.': lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
)

// centerText centers text within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// renderField colours a field drawn by crossing.Game.Render.
// Adjacent cells with the same glyph share one style run.
func renderField(field string) string {
	lines := strings.Split(field, "\n")
	for i, line := range lines {
		var sb strings.Builder
		runes := []rune(line)
		for x := 0; x < len(runes); {
			end := x
			for end < len(runes) && runes[end] == runes[x] {
				end++
			}
			run := string(runes[x:end])
			if style, ok := fieldStyles[runes[x]]; ok {
				run = style.Render(run)
			}
			sb.WriteString(run)
			x = end
		}
		lines[i] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// timerBar draws the remaining fraction of the round.
func timerBar(remaining, limit uint16, width int) string {
	filled := 0
	if limit > 0 {
		filled = int(remaining) * width / int(limit)
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// queueLine draws the queued moves oldest first.
func queueLine(queue []joystick.Move, capacity int) string {
	var sb strings.Builder
	for i := 0; i < capacity; i++ {
		if i < len(queue) {
			sb.WriteRune(queue[i].Arrow())
		} else {
			sb.WriteRune('·')
		}
	}
	return sb.String()
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// boardPanel renders the display, the timer, the stick and the buzzer.
func boardPanel(snap engine.Snapshot, stickX, stickY uint16) string {
	var b strings.Builder

	b.WriteString(segmentStyle.Render(SevenSegmentPair(snap.Left, snap.Right)))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("time "), timerBar(snap.Remaining, snap.TimeLimit, timerBarWidth))
	fmt.Fprintf(&b, "%s %d/%d ticks\n", labelStyle.Render("     "), snap.Remaining, snap.TimeLimit)
	fmt.Fprintf(&b, "%s x=%4d y=%4d\n", labelStyle.Render("stick"), stickX, stickY)
	fmt.Fprintf(&b, "%s %s", labelStyle.Render("queue"), queueLine(snap.Queue, joystick.QueueCapacity))
	if snap.Dropped > 0 {
		fmt.Fprintf(&b, " (%d dropped)", snap.Dropped)
	}
	b.WriteString("\n\n")

	a := snap.Audio
	fmt.Fprintf(&b, "%s %s %s %d/%d\n", labelStyle.Render("track"), a.Track, a.Phase, a.Cursor, a.Len)
	fmt.Fprintf(&b, "%s %dHz period=%d pulse=%d\n", labelStyle.Render("pwm  "), a.Freq, snap.Registers.Period, snap.Registers.Pulse)
	fmt.Fprintf(&b, "%s out=%s vol-low=%s mute=%s",
		labelStyle.Render("     "), onOff(snap.Registers.Enabled), onOff(snap.VolumeLow), onOff(snap.Muted))

	return panelStyle.Width(panelWidth + 10).Render(b.String())
}
