package countdown

// Seven-segment patterns, bit 0 = segment a through bit 6 = segment g,
// bit 7 = decimal point.
var digits = [10]uint8{0x3F, 0x06, 0x5B, 0x4F, 0x66, 0x6D, 0x7D, 0x07, 0x7F, 0x6F}

const (
	segBlank     uint8 = 0x00
	segPoint     uint8 = 0x80
	segZeroPoint       = 0x3F | segPoint // "0."
)

// Digit returns the pattern for a decimal digit. Values above 9 use their
// last digit.
func Digit(d int) uint8 {
	if d < 0 {
		d = -d
	}
	return digits[d%10]
}

// Segments returns the pattern for one digit of the two-digit display
// showing remaining ticks of 10 ms.
//
// From ten seconds up both digits show whole seconds. Between one and ten
// seconds the left digit is blank. Under a second the display reads "0."
// followed by tenths.
func Segments(remaining uint16, left bool) uint8 {
	c := int(remaining)
	switch {
	case c >= 1000:
		if left {
			return Digit(c / 1000)
		}
		return Digit(c / 100)
	case c >= 100:
		if left {
			return segBlank
		}
		return Digit(c / 100)
	default:
		if left {
			return segZeroPoint
		}
		return Digit(c / 10)
	}
}
