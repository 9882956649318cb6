package crossing

import (
	"strings"
	"testing"

	"github.com/vovakirdan/frogcore/internal/audio"
	"github.com/vovakirdan/frogcore/internal/joystick"
)

func TestHopsScoreForwardOnly(t *testing.T) {
	g := New(5, 4, 3)

	tests := []struct {
		move  joystick.Move
		event Event
		score int
	}{
		{joystick.MoveLeft, EventHop, 0},
		{joystick.MoveDown, EventHop, 0}, // already on the near bank
		{joystick.MoveUp, EventHop, 1},
		{joystick.MoveUpRight, EventHop, 2},
		{joystick.MoveDownLeft, EventHop, 2},
		{joystick.MoveNone, EventNone, 2},
	}
	for _, tc := range tests {
		if ev := g.Apply(tc.move); ev != tc.event || g.Score != tc.score {
			t.Errorf("Apply(%v) = %v score %d, expected %v score %d", tc.move, ev, g.Score, tc.event, tc.score)
		}
	}
}

func TestCrossingAndLevels(t *testing.T) {
	g := New(5, 3, 3)

	cross := func() Event {
		g.Apply(joystick.MoveUp)
		return g.Apply(joystick.MoveUp)
	}

	if ev := cross(); ev != EventMadeIt {
		t.Fatalf("first crossing = %v, expected made it", ev)
	}
	if _, row := g.Position(); row != 0 {
		t.Errorf("frog should return to the near bank, row=%d", row)
	}
	cross()
	if ev := cross(); ev != EventLevelUp || g.Level != 1 {
		t.Errorf("third crossing = %v level %d, expected level up to 1", ev, g.Level)
	}

	for g.Level < DefaultWinningLevel-1 {
		for i := 0; i < CrossingsPerLevel; i++ {
			cross()
		}
	}
	cross()
	cross()
	if ev := cross(); ev != EventWinner || !g.Won || !g.Over {
		t.Errorf("final crossing = %v won=%v over=%v", ev, g.Won, g.Over)
	}
	if ev := g.Apply(joystick.MoveUp); ev != EventNone {
		t.Errorf("moves after the game ends should be ignored, got %v", ev)
	}
}

func TestTimeUp(t *testing.T) {
	g := New(5, 4, 2)
	g.Apply(joystick.MoveUp)

	if ev := g.TimeUp(); ev != EventDied || g.Lives != 1 {
		t.Errorf("TimeUp() = %v lives %d", ev, g.Lives)
	}
	if _, row := g.Position(); row != 0 {
		t.Error("dying should send the frog home")
	}
	if ev := g.TimeUp(); ev != EventGameOver || !g.Over || g.Won {
		t.Errorf("last life TimeUp() = %v over=%v", ev, g.Over)
	}
	if ev := g.TimeUp(); ev != EventNone {
		t.Errorf("TimeUp() after game over = %v", ev)
	}
}

func TestEventTracks(t *testing.T) {
	tests := map[Event]audio.TrackID{
		EventNone:     audio.NoTrack,
		EventHop:      audio.TrackJump,
		EventMadeIt:   audio.TrackMadeIt,
		EventLevelUp:  audio.TrackLevelUp,
		EventWinner:   audio.TrackWinner,
		EventDied:     audio.TrackDied,
		EventGameOver: audio.TrackOver,
	}
	for ev, id := range tests {
		if got := ev.Track(); got != id {
			t.Errorf("%v.Track() = %v, expected %v", ev, got, id)
		}
	}
}

func TestRender(t *testing.T) {
	g := New(5, 3, 1)
	expected := strings.Join([]string{
		"#####",
		".....",
		"__@__",
	}, "\n")
	if got := g.Render(); got != expected {
		t.Errorf("Render() =\n%s\nexpected\n%s", got, expected)
	}
}
