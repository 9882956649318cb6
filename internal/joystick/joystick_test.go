package joystick

import (
	"testing"

	"github.com/vovakirdan/frogcore/internal/clock"
)

// fakeStick returns fixed readings and counts conversions.
type fakeStick struct {
	x, y  uint16
	reads int
}

func (f *fakeStick) ReadAxis(axis Axis) uint16 {
	f.reads++
	if axis == AxisX {
		return f.x
	}
	return f.y
}

func TestClassify(t *testing.T) {
	cal := Calibration{RestX: 512, RestY: 512}
	th := DefaultThresholds()

	tests := []struct {
		name     string
		x, y     uint16
		expected Move
	}{
		{"at rest", 512, 512, MoveNone},
		{"small wobble", 540, 490, MoveNone},
		{"up", 512, 700, MoveUp},
		{"down", 512, 300, MoveDown},
		{"left", 700, 512, MoveLeft},
		{"right", 300, 512, MoveRight},
		{"up-left corner", 700, 700, MoveUpLeft},
		{"up-right corner", 300, 700, MoveUpRight},
		{"down-left corner", 700, 300, MoveDownLeft},
		{"down-right corner", 300, 300, MoveDownRight},
		// Past the diagonal threshold on both axes but the cardinal on neither.
		{"shallow diagonal", 570, 570, MoveUpLeft},
		// Past the cardinal threshold on Y only; X within the diagonal band.
		{"up with slight drift", 530, 680, MoveUp},
		{"up threshold exact", 512, 666, MoveUp},
		{"below up threshold", 512, 665, MoveNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.x, tc.y, cal, th)
			if got != tc.expected {
				t.Errorf("Classify(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestMoveIsDiagonal(t *testing.T) {
	for m := MoveNone; m <= MoveDownRight; m++ {
		expected := m >= MoveUpLeft
		if m.IsDiagonal() != expected {
			t.Errorf("%v.IsDiagonal() = %v, expected %v", m, m.IsDiagonal(), expected)
		}
	}
}

func TestQueueFIFOAndBound(t *testing.T) {
	var q Queue
	pushed := []Move{}
	for i := 0; i < QueueCapacity+3; i++ {
		m := Move(i%8 + 1)
		ok := q.Push(m)
		if i < QueueCapacity {
			if !ok {
				t.Fatalf("push %d rejected before capacity", i)
			}
			pushed = append(pushed, m)
		} else if ok {
			t.Fatalf("push %d accepted beyond capacity", i)
		}
		if q.Len() > QueueCapacity {
			t.Fatalf("queue length %d exceeds capacity", q.Len())
		}
	}

	for i, want := range pushed {
		if got := q.Pop(); got != want {
			t.Errorf("pop %d = %v, expected %v", i, got, want)
		}
	}
	if got := q.Pop(); got != MoveNone {
		t.Errorf("pop on empty queue = %v, expected None", got)
	}
}

func TestQueueWrapsAround(t *testing.T) {
	var q Queue
	// Interleave pushes and pops so head travels around the ring.
	next := Move(1)
	expect := Move(1)
	for q.Len() < QueueCapacity-1 {
		q.Push(next)
		next = next%8 + 1
		q.Push(next)
		next = next%8 + 1
		if got := q.Pop(); got != expect {
			t.Fatalf("pop = %v, expected %v", got, expect)
		}
		expect = expect%8 + 1
	}
	snap := q.Snapshot()
	if len(snap) != QueueCapacity-1 {
		t.Fatalf("snapshot length %d, expected %d", len(snap), QueueCapacity-1)
	}
	for i, m := range snap {
		if m != expect {
			t.Errorf("snapshot[%d] = %v, expected %v", i, m, expect)
		}
		expect = expect%8 + 1
	}
}

func TestQueueClear(t *testing.T) {
	var q Queue
	q.Push(MoveUp)
	q.Push(MoveDown)
	q.Clear()
	if q.Len() != 0 {
		t.Errorf("Len() after Clear = %d", q.Len())
	}
	if q.Pop() != MoveNone {
		t.Error("Pop after Clear should return None")
	}
}

func newTestSampler(stick *fakeStick) (*Sampler, *clock.Manual) {
	clk := clock.NewManual(1000)
	s := NewSampler(stick, clk, DefaultConfig(), nil)
	s.Init()
	return s, clk
}

func TestSamplerCalibratesAtRest(t *testing.T) {
	stick := &fakeStick{x: 500, y: 520}
	s, _ := newTestSampler(stick)

	cal := s.Calibration()
	if cal.RestX != 500 || cal.RestY != 520 {
		t.Errorf("Calibration() = %+v, expected {500 520}", cal)
	}
	if s.Len() != 0 {
		t.Errorf("queue should be empty after Init, got %d", s.Len())
	}
}

func TestSamplerBeforeInitIsInert(t *testing.T) {
	stick := &fakeStick{x: 900, y: 900}
	s := NewSampler(stick, clock.NewManual(0), DefaultConfig(), nil)
	if m := s.Sample(); m != MoveNone || s.Len() != 0 {
		t.Errorf("uncalibrated Sample() = %v, queue len %d", m, s.Len())
	}
}

func TestSamplerRepeatInterval(t *testing.T) {
	stick := &fakeStick{x: 512, y: 512}
	s, clk := newTestSampler(stick)
	stick.y = 700

	// Init counts as the last move, so nothing until 250ms have passed.
	clk.Advance(249)
	if m := s.Sample(); m != MoveNone {
		t.Fatalf("sampled %v before repeat interval", m)
	}
	clk.Step()
	if m := s.Sample(); m != MoveUp {
		t.Fatalf("Sample() = %v, expected Up", m)
	}

	// Holding the stick does not repeat inside the interval.
	clk.Advance(100)
	s.Sample()
	if s.Len() != 1 {
		t.Errorf("held stick queued %d moves inside the interval", s.Len())
	}

	clk.Advance(150)
	s.Sample()
	if s.Len() != 2 {
		t.Errorf("expected a repeat after 250ms, queue len %d", s.Len())
	}
}

func TestSamplerSkipsReadsInsideInterval(t *testing.T) {
	stick := &fakeStick{x: 512, y: 512}
	s, clk := newTestSampler(stick)
	before := stick.reads

	clk.Advance(10)
	s.Sample()
	if stick.reads != before {
		t.Errorf("sampler converted %d times inside the repeat interval", stick.reads-before)
	}

	clk.Advance(250)
	s.Sample()
	if stick.reads-before != 2 {
		t.Errorf("expected exactly one pair of reads, got %d", stick.reads-before)
	}
}

func TestSamplerRestDoesNotResetInterval(t *testing.T) {
	stick := &fakeStick{x: 512, y: 512}
	s, clk := newTestSampler(stick)

	clk.Advance(300)
	s.Sample() // at rest, no move
	stick.x = 300
	clk.Step()
	if m := s.Sample(); m != MoveRight {
		t.Errorf("Sample() = %v, expected Right immediately after a rest sample", m)
	}
}

func TestSamplerDropsWhenFull(t *testing.T) {
	stick := &fakeStick{x: 512, y: 512}
	s, clk := newTestSampler(stick)
	stick.y = 300

	for i := 0; i < QueueCapacity+4; i++ {
		clk.Advance(DefaultRepeatInterval)
		s.Sample()
	}

	if s.Len() != QueueCapacity {
		t.Errorf("Len() = %d, expected %d", s.Len(), QueueCapacity)
	}
	if s.Dropped() != 4 {
		t.Errorf("Dropped() = %d, expected 4", s.Dropped())
	}
	for i := 0; i < QueueCapacity; i++ {
		if m := s.PopMove(); m != MoveDown {
			t.Errorf("pop %d = %v, expected Down", i, m)
		}
	}
	if m := s.PopMove(); m != MoveNone {
		t.Errorf("pop on drained queue = %v", m)
	}
}

func TestSamplerAcrossClockWrap(t *testing.T) {
	stick := &fakeStick{x: 512, y: 512}
	clk := clock.NewManual(0xFFFFFF80)
	s := NewSampler(stick, clk, DefaultConfig(), nil)
	s.Init()
	stick.x = 700

	clk.Advance(200) // crosses the wrap
	if m := s.Sample(); m != MoveNone {
		t.Fatalf("sampled %v before interval across the wrap", m)
	}
	clk.Advance(50)
	if m := s.Sample(); m != MoveLeft {
		t.Errorf("Sample() = %v across the wrap, expected Left", m)
	}
}

func TestSamplerClearQueue(t *testing.T) {
	stick := &fakeStick{x: 512, y: 512}
	s, clk := newTestSampler(stick)
	stick.y = 700
	clk.Advance(250)
	s.Sample()

	s.ClearQueue()
	if s.PopMove() != MoveNone {
		t.Error("PopMove after ClearQueue should return None")
	}
}
