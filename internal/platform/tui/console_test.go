package tui

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/frogcore/internal/audio"
	"github.com/vovakirdan/frogcore/internal/clock"
	"github.com/vovakirdan/frogcore/internal/config"
	"github.com/vovakirdan/frogcore/internal/crossing"
	"github.com/vovakirdan/frogcore/internal/engine"
	"github.com/vovakirdan/frogcore/internal/joystick"
	"github.com/vovakirdan/frogcore/internal/storage"
)

func testConsoleConfig(limit uint16) ConsoleConfig {
	cfg := DefaultConsoleConfig()
	cfg.Difficulty = config.DifficultyConfig{}
	if limit > 0 {
		cfg.Engine.Countdown.TimeLimit = limit
	}
	return cfg
}

func newTestConsole(t *testing.T, cfg ConsoleConfig) (*Console, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(0)
	c := newConsole(clk, cfg, engine.WithIdle(clk.Step))
	c.Start(context.Background())
	return c, clk
}

// hop waits out the repeat interval, pushes the stick and runs one step
// after the next sample.
func hop(c *Console, clk *clock.Manual, m joystick.Move) crossing.Event {
	clk.Advance(joystick.DefaultRepeatInterval)
	c.Engine().Push(m)
	clk.Advance(10)
	return c.Step()
}

func TestConsoleHopPlaysJump(t *testing.T) {
	c, clk := newTestConsole(t, testConsoleConfig(0))

	if ev := hop(c, clk, joystick.MoveUp); ev != crossing.EventHop {
		t.Fatalf("hop = %v, expected %v", ev, crossing.EventHop)
	}
	if c.Game().Score != 1 {
		t.Errorf("score = %d, expected 1", c.Game().Score)
	}
	if st := c.Engine().Sequencer().Status(); st.Track != audio.TrackJump {
		t.Errorf("playing %v, expected the jump track", st.Track)
	}
	if c.LastEvent() != crossing.EventHop {
		t.Errorf("LastEvent() = %v", c.LastEvent())
	}
}

func TestConsoleStepWithoutMove(t *testing.T) {
	c, clk := newTestConsole(t, testConsoleConfig(0))
	clk.Advance(100)
	if ev := c.Step(); ev != crossing.EventNone {
		t.Errorf("Step() with the stick at rest = %v", ev)
	}
}

func TestConsoleCrossingRefillsTimer(t *testing.T) {
	c, clk := newTestConsole(t, testConsoleConfig(0))

	var ev crossing.Event
	for i := 0; i < crossing.DefaultRows-1; i++ {
		ev = hop(c, clk, joystick.MoveUp)
	}
	if ev != crossing.EventMadeIt {
		t.Fatalf("last hop = %v, expected %v", ev, crossing.EventMadeIt)
	}
	if c.Game().Crossings != 1 {
		t.Errorf("crossings = %d", c.Game().Crossings)
	}
	snap := c.Engine().Snapshot()
	if snap.Remaining != snap.TimeLimit {
		t.Errorf("remaining = %d after a crossing, expected the full %d", snap.Remaining, snap.TimeLimit)
	}
	if c.Engine().Sequencer().Loaded() {
		t.Error("the made-it tune plays in the foreground and should be finished")
	}
}

func TestConsoleLevelUpShrinksTimer(t *testing.T) {
	cfg := testConsoleConfig(0)
	cfg.Difficulty = config.DifficultyConfig{Enabled: true, MaxAt: 5, TimeReduction: 0.5}
	c, clk := newTestConsole(t, cfg)

	var ev crossing.Event
	for i := 0; i < crossing.CrossingsPerLevel*(crossing.DefaultRows-1); i++ {
		ev = hop(c, clk, joystick.MoveUp)
	}
	if ev != crossing.EventLevelUp || c.Game().Level != 1 {
		t.Fatalf("last hop = %v at level %d, expected a level up", ev, c.Game().Level)
	}

	expected := config.NewDifficultyManager(cfg.Difficulty).TimeLimit(cfg.Engine.Countdown.TimeLimit, 1)
	if got := c.Engine().Countdown().TimeLimit(); got != expected {
		t.Errorf("time limit = %d, expected %d", got, expected)
	}
	if expected >= cfg.Engine.Countdown.TimeLimit {
		t.Errorf("level 1 limit %d should be below the base %d", expected, cfg.Engine.Countdown.TimeLimit)
	}
	if c.Engine().Countdown().Remaining() != expected {
		t.Errorf("remaining = %d, expected a fresh round", c.Engine().Countdown().Remaining())
	}
}

func TestConsoleTimeUpCostsLife(t *testing.T) {
	c, clk := newTestConsole(t, testConsoleConfig(10))

	clk.Advance(100)
	if !c.Engine().Expired() {
		t.Fatal("round should have expired")
	}
	if ev := c.Step(); ev != crossing.EventDied {
		t.Fatalf("Step() = %v, expected %v", ev, crossing.EventDied)
	}
	if c.Game().Lives != crossing.DefaultLives-1 {
		t.Errorf("lives = %d", c.Game().Lives)
	}
	if c.Engine().Countdown().Remaining() != 10 {
		t.Errorf("remaining = %d, expected a fresh round", c.Engine().Countdown().Remaining())
	}
}

func TestConsoleGameOverSavesScore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	cfg := testConsoleConfig(100)
	cfg.Store = store
	cfg.Player = "  tadpole-the-great "
	c, clk := newTestConsole(t, cfg)

	if ev := hop(c, clk, joystick.MoveUp); ev != crossing.EventHop {
		t.Fatalf("hop = %v", ev)
	}

	var ev crossing.Event
	for i := 0; i < crossing.DefaultLives; i++ {
		clk.Advance(1000)
		ev = c.Step()
	}
	if ev != crossing.EventGameOver || !c.Game().Over {
		t.Fatalf("last step = %v, expected game over", ev)
	}
	if c.Rank() != 1 {
		t.Errorf("Rank() = %d, expected 1", c.Rank())
	}

	top, err := store.Top()
	if err != nil {
		t.Fatalf("Top() error: %v", err)
	}
	if len(top) != 1 || top[0].Name != "tadpole-th" || top[0].Score != 1 {
		t.Errorf("Top() = %+v", top)
	}
	games, err := store.RecentGames(10)
	if err != nil {
		t.Fatalf("RecentGames() error: %v", err)
	}
	if len(games) != 1 || games[0].Score != 1 {
		t.Errorf("RecentGames() = %+v", games)
	}

	// Nothing more happens until a restart.
	clk.Advance(1000)
	if ev := c.Step(); ev != crossing.EventNone {
		t.Errorf("Step() after game over = %v", ev)
	}
	if games, _ := store.RecentGames(10); len(games) != 1 {
		t.Errorf("game recorded %d times", len(games))
	}
}

func TestConsolePause(t *testing.T) {
	c, clk := newTestConsole(t, testConsoleConfig(10))

	c.TogglePause()
	if !c.Engine().Paused() {
		t.Fatal("TogglePause should pause")
	}
	clk.Advance(200)
	if c.Engine().Expired() {
		t.Error("the timer should not run while paused")
	}
	if ev := c.Step(); ev != crossing.EventNone {
		t.Errorf("Step() while paused = %v", ev)
	}

	c.TogglePause()
	if c.Engine().Paused() {
		t.Error("TogglePause should resume")
	}
}

func TestConsoleRestart(t *testing.T) {
	c, clk := newTestConsole(t, testConsoleConfig(10))
	for !c.Game().Over {
		clk.Advance(100)
		c.Step()
	}

	c.TogglePause()
	if c.Engine().Paused() {
		t.Error("a finished game cannot be paused")
	}

	c.Restart()
	g := c.Game()
	if g.Over || g.Lives != crossing.DefaultLives || g.Score != 0 {
		t.Errorf("after Restart over=%v lives=%d score=%d", g.Over, g.Lives, g.Score)
	}
	if c.Engine().Countdown().Remaining() != 10 || c.Rank() != 0 {
		t.Errorf("Restart should start a fresh round, remaining=%d", c.Engine().Countdown().Remaining())
	}
}

func TestPlayerName(t *testing.T) {
	tests := map[string]string{
		"":               "",
		"  frog  ":       "frog",
		"abcdefghijklmn": "abcdefghij",
		"жабажабажаба":   "жабажабажа",
	}
	for in, expected := range tests {
		if got := playerName(in); got != expected {
			t.Errorf("playerName(%q) = %q, expected %q", in, got, expected)
		}
	}
}
