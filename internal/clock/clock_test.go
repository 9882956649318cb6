package clock

import (
	"context"
	"testing"
	"time"
)

func TestSinceWraparound(t *testing.T) {
	tests := []struct {
		name       string
		start, now Tick
		expected   uint32
	}{
		{"no wrap", 100, 350, 250},
		{"same reading", 42, 42, 0},
		{"across wrap", 0xFFFFFF00, 0x00000010, 0x110},
		{"just before wrap", 0xFFFFFFFF, 0xFFFFFFFF, 0},
		{"one past wrap", 0xFFFFFFFF, 0, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Since(tc.start, tc.now); got != tc.expected {
				t.Errorf("Since(%#x, %#x) = %d, expected %d", tc.start, tc.now, got, tc.expected)
			}
		})
	}
}

func TestReached(t *testing.T) {
	start := Tick(0xFFFFFF00)
	if Reached(start, 250, start+249) {
		t.Error("Reached should be false one millisecond early")
	}
	if !Reached(start, 250, start+250) {
		t.Error("Reached should be true at exactly the duration")
	}
}

func TestManualRegistrationFiresOncePerInterval(t *testing.T) {
	m := NewManual(0)
	fired := 0
	m.Register(10, func() { fired++ })

	m.Advance(9)
	if fired != 0 {
		t.Fatalf("fired %d times before the first interval", fired)
	}
	m.Step()
	if fired != 1 {
		t.Fatalf("expected 1 tick at 10ms, got %d", fired)
	}
	m.Advance(95)
	if fired != 10 {
		t.Errorf("expected 10 ticks at 105ms, got %d", fired)
	}
}

func TestManualRegistrationAcrossWrap(t *testing.T) {
	m := NewManual(0xFFFFFFF0)
	fired := 0
	m.Register(10, func() { fired++ })

	m.Advance(40)
	if fired != 4 {
		t.Errorf("expected 4 ticks across the wrap, got %d", fired)
	}
	if m.Now() != 0x18 {
		t.Errorf("Now() = %#x, expected 0x18", m.Now())
	}
}

func TestRegistrationClearPending(t *testing.T) {
	fired := 0
	r := newRegistration(10, func() { fired++ }, 0)
	r.pending.Add(3)

	r.ClearPending()
	if n := r.drain(); n != 0 || fired != 0 {
		t.Errorf("drain after ClearPending ran %d callbacks", fired)
	}

	r.pending.Add(2)
	if n := r.drain(); n != 2 || fired != 2 {
		t.Errorf("drain ran %d callbacks, expected 2", fired)
	}
}

func TestPumpPollRunsOnCaller(t *testing.T) {
	p := NewPump()
	fired := 0
	p.Register(1, func() { fired++ })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	//nolint:errcheck // Run returns the context error on shutdown
	p.Run(ctx)

	// Nothing runs until the caller polls.
	if fired != 0 {
		t.Fatalf("callback ran %d times before Poll", fired)
	}
	n := p.Poll()
	if n == 0 || n != fired {
		t.Errorf("Poll() = %d, fired = %d; expected equal and non-zero", n, fired)
	}
	if p.Poll() != 0 {
		t.Error("second Poll should find no pending ticks")
	}
}
