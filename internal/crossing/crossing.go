// Package crossing is the minimal game collaborator the console runs on
// top of the real-time core: a frog hopping across a grid of lanes. It has
// no traffic; it exists to turn queued moves into scores and sound effects.
package crossing

import (
	"strings"

	"github.com/vovakirdan/frogcore/internal/audio"
	"github.com/vovakirdan/frogcore/internal/joystick"
)

// Defaults for the field and the game.
const (
	DefaultCols         = 15
	DefaultRows         = 8
	DefaultLives        = 3
	CrossingsPerLevel   = 3
	DefaultWinningLevel = 5
)

// Field glyphs.
const (
	frogRune = '@'
	homeRune = '#'
	laneRune = '.'
	bankRune = '_'
)

const startRow = 0

// Event is what a move or a timeout did to the game.
type Event int

const (
	EventNone     Event = iota
	EventHop            // moved without reaching home
	EventMadeIt         // reached the far bank
	EventLevelUp        // finished a level
	EventWinner         // finished the last level
	EventDied           // ran out of time
	EventGameOver       // lost the last life
)

// Track returns the sound effect for an event, or NoTrack.
func (e Event) Track() audio.TrackID {
	switch e {
	case EventHop:
		return audio.TrackJump
	case EventMadeIt:
		return audio.TrackMadeIt
	case EventLevelUp:
		return audio.TrackLevelUp
	case EventWinner:
		return audio.TrackWinner
	case EventDied:
		return audio.TrackDied
	case EventGameOver:
		return audio.TrackOver
	default:
		return audio.NoTrack
	}
}

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventHop:
		return "hop"
	case EventMadeIt:
		return "made it"
	case EventLevelUp:
		return "level up"
	case EventWinner:
		return "winner"
	case EventDied:
		return "died"
	case EventGameOver:
		return "game over"
	default:
		return "none"
	}
}

// Game is one play session.
type Game struct {
	cols, rows   int
	winningLevel int

	x, row    int
	Score     int
	Lives     int
	Level     int
	Crossings int
	Over      bool
	Won       bool
}

// New creates a game with the frog at the bottom centre.
func New(cols, rows, lives int) *Game {
	if cols < 3 {
		cols = DefaultCols
	}
	if rows < 2 {
		rows = DefaultRows
	}
	if lives < 1 {
		lives = DefaultLives
	}
	g := &Game{cols: cols, rows: rows, winningLevel: DefaultWinningLevel, Lives: lives}
	g.home()
	return g
}

func (g *Game) home() {
	g.x = g.cols / 2
	g.row = startRow
}

// Position returns the frog's column and row, row 0 being the near bank.
func (g *Game) Position() (x, row int) {
	return g.x, g.row
}

// Apply moves the frog. Every forward hop scores a point.
func (g *Game) Apply(m joystick.Move) Event {
	if g.Over || m == joystick.MoveNone {
		return EventNone
	}

	dx, dy := 0, 0
	switch m {
	case joystick.MoveUp:
		dy = 1
	case joystick.MoveDown:
		dy = -1
	case joystick.MoveLeft:
		dx = -1
	case joystick.MoveRight:
		dx = 1
	case joystick.MoveUpLeft:
		dx, dy = -1, 1
	case joystick.MoveUpRight:
		dx, dy = 1, 1
	case joystick.MoveDownLeft:
		dx, dy = -1, -1
	case joystick.MoveDownRight:
		dx, dy = 1, -1
	}

	g.x = clamp(g.x+dx, 0, g.cols-1)
	g.row = clamp(g.row+dy, startRow, g.rows-1)
	if dy > 0 {
		g.Score++
	}

	if g.row < g.rows-1 {
		return EventHop
	}

	g.Crossings++
	g.home()
	if g.Crossings%CrossingsPerLevel != 0 {
		return EventMadeIt
	}
	g.Level++
	if g.Level >= g.winningLevel {
		g.Over = true
		g.Won = true
		return EventWinner
	}
	return EventLevelUp
}

// TimeUp costs a life. The frog goes back to the near bank.
func (g *Game) TimeUp() Event {
	if g.Over {
		return EventNone
	}
	g.Lives--
	g.home()
	if g.Lives <= 0 {
		g.Lives = 0
		g.Over = true
		return EventGameOver
	}
	return EventDied
}

// Render draws the field, far bank on top.
func (g *Game) Render() string {
	var b strings.Builder
	for row := g.rows - 1; row >= 0; row-- {
		fill := laneRune
		switch row {
		case g.rows - 1:
			fill = homeRune
		case startRow:
			fill = bankRune
		}
		for x := 0; x < g.cols; x++ {
			if x == g.x && row == g.row {
				b.WriteRune(frogRune)
			} else {
				b.WriteRune(fill)
			}
		}
		if row > 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
