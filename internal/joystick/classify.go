package joystick

// Default deflection factors relative to the calibrated rest reading.
const (
	DefaultCardinalFactor = 1.3
	DefaultDiagonalFactor = 1.1
)

// Calibration holds the axis readings captured with the stick at rest.
type Calibration struct {
	RestX uint16
	RestY uint16
}

// Thresholds are multiplicative deflection factors. A reading beyond
// rest*factor or below rest/factor counts as deflected.
type Thresholds struct {
	Cardinal float64
	Diagonal float64
}

// DefaultThresholds returns the stock sensitivity.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Cardinal: DefaultCardinalFactor,
		Diagonal: DefaultDiagonalFactor,
	}
}

// Classify maps one pair of axis readings to a move.
//
// Increasing Y is up and increasing X is left. Diagonals are checked before
// cardinals so a corner deflection produces one diagonal move rather than
// two cardinal ones.
func Classify(x, y uint16, cal Calibration, th Thresholds) Move {
	fx, fy := float64(x), float64(y)
	rx, ry := float64(cal.RestX), float64(cal.RestY)

	up := fy >= ry*th.Diagonal
	down := fy <= ry/th.Diagonal
	left := fx >= rx*th.Diagonal
	right := fx <= rx/th.Diagonal

	switch {
	case up && left:
		return MoveUpLeft
	case up && right:
		return MoveUpRight
	case down && left:
		return MoveDownLeft
	case down && right:
		return MoveDownRight
	case fy >= ry*th.Cardinal:
		return MoveUp
	case fx >= rx*th.Cardinal:
		return MoveLeft
	case fx <= rx/th.Cardinal:
		return MoveRight
	case fy <= ry/th.Cardinal:
		return MoveDown
	}
	return MoveNone
}
