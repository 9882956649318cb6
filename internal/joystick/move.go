// Package joystick samples a two-axis analog joystick, classifies its
// deflection into one of eight directions and queues the result for the
// main loop.
package joystick

// Move is a classified joystick direction.
// Codes are stable: other components compare them by value.
type Move uint8

const (
	MoveNone Move = iota
	MoveUp
	MoveLeft
	MoveRight
	MoveDown
	MoveUpLeft
	MoveUpRight
	MoveDownLeft
	MoveDownRight
)

// firstDiagonal is the lowest diagonal move code.
const firstDiagonal = MoveUpLeft

// IsDiagonal reports whether the move combines two directions.
func (m Move) IsDiagonal() bool {
	return m >= firstDiagonal && m <= MoveDownRight
}

// String returns a human-readable name for the move.
func (m Move) String() string {
	switch m {
	case MoveNone:
		return "None"
	case MoveUp:
		return "Up"
	case MoveLeft:
		return "Left"
	case MoveRight:
		return "Right"
	case MoveDown:
		return "Down"
	case MoveUpLeft:
		return "UpLeft"
	case MoveUpRight:
		return "UpRight"
	case MoveDownLeft:
		return "DownLeft"
	case MoveDownRight:
		return "DownRight"
	default:
		return "Unknown"
	}
}

// Arrow returns a single-rune glyph for the move, used by the console.
func (m Move) Arrow() rune {
	switch m {
	case MoveUp:
		return '↑'
	case MoveLeft:
		return '←'
	case MoveRight:
		return '→'
	case MoveDown:
		return '↓'
	case MoveUpLeft:
		return '↖'
	case MoveUpRight:
		return '↗'
	case MoveDownLeft:
		return '↙'
	case MoveDownRight:
		return '↘'
	default:
		return '·'
	}
}
