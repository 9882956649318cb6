package board

import "sync"

// SegmentLatch holds the last pattern written to each digit of a two-digit
// multiplexed seven-segment display.
type SegmentLatch struct {
	mu          sync.Mutex
	left, right uint8
	refreshes   int
}

// Show implements countdown.Display.
func (d *SegmentLatch) Show(segments uint8, left bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if left {
		d.left = segments
	} else {
		d.right = segments
	}
	d.refreshes++
}

// Clear blanks both digits.
func (d *SegmentLatch) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.left, d.right = 0, 0
}

// Digits returns the latched patterns.
func (d *SegmentLatch) Digits() (left, right uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.left, d.right
}

// Refreshes returns how many digit writes the display has seen.
func (d *SegmentLatch) Refreshes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.refreshes
}
