package tui

import "strings"

// Segment bits, a through g then the decimal point.
const (
	segA = 1 << iota
	segB
	segC
	segD
	segE
	segF
	segG
	segDP
)

func lit(segments uint8, bit uint8, on string) string {
	if segments&bit != 0 {
		return on
	}
	return " "
}

// SevenSegment draws a segment pattern as three lines of text.
func SevenSegment(segments uint8) [3]string {
	return [3]string{
		" " + lit(segments, segA, "_") + "  ",
		lit(segments, segF, "|") + lit(segments, segG, "_") + lit(segments, segB, "|") + " ",
		lit(segments, segE, "|") + lit(segments, segD, "_") + lit(segments, segC, "|") + lit(segments, segDP, "."),
	}
}

// SevenSegmentPair draws both display digits side by side.
func SevenSegmentPair(left, right uint8) string {
	l, r := SevenSegment(left), SevenSegment(right)
	lines := make([]string, 3)
	for i := range lines {
		lines[i] = l[i] + " " + r[i]
	}
	return strings.Join(lines, "\n")
}
