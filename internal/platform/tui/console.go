package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/frogcore/internal/audio"
	"github.com/vovakirdan/frogcore/internal/clock"
	"github.com/vovakirdan/frogcore/internal/config"
	"github.com/vovakirdan/frogcore/internal/crossing"
	"github.com/vovakirdan/frogcore/internal/engine"
	"github.com/vovakirdan/frogcore/internal/logging"
	"github.com/vovakirdan/frogcore/internal/storage"
)

// ConsoleConfig holds everything a console session needs.
type ConsoleConfig struct {
	Engine     engine.Config
	Difficulty config.DifficultyConfig

	// Store receives high scores and game history. May be nil.
	Store *storage.Store

	// Player is the name saved with a high score.
	Player string

	Logger    *log.Logger
	FrameRate int
}

// DefaultConsoleConfig returns a console on the stock engine with
// difficulty progression off.
func DefaultConsoleConfig() ConsoleConfig {
	cfg := config.Default()
	return ConsoleConfig{
		Engine:     cfg.Engine(),
		Difficulty: cfg.Difficulty,
		FrameRate:  DefaultFrameRate,
	}
}

// Console is one game session on top of an engine. It is the main loop:
// each Step runs one engine iteration and feeds the move to the game.
type Console struct {
	cfg        ConsoleConfig
	logger     *log.Logger
	engine     *engine.Engine
	pump       *clock.Pump
	game       *crossing.Game
	difficulty *config.DifficultyManager

	started time.Time
	last    crossing.Event
	rank    int
	saved   bool
	stop    context.CancelFunc
}

// NewConsole creates a console driven by the wall clock. Call Start before
// the first Step.
func NewConsole(cfg ConsoleConfig) *Console {
	pump := clock.NewPump()
	c := newConsole(pump, cfg)
	c.pump = pump
	return c
}

func newConsole(clk engine.Clock, cfg ConsoleConfig, opts ...engine.Option) *Console {
	logger := logging.OrDiscard(cfg.Logger)
	opts = append([]engine.Option{engine.WithLogger(logger)}, opts...)
	return &Console{
		cfg:        cfg,
		logger:     logger,
		engine:     engine.New(clk, cfg.Engine, opts...),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
}

// Start initialises the engine and, for a wall-clock console, starts the
// tick pump. It runs until ctx is done or Stop is called.
func (c *Console) Start(ctx context.Context) {
	c.engine.Init()
	c.newGame()

	if c.pump == nil {
		return
	}
	ctx, c.stop = context.WithCancel(ctx)
	go func() {
		//nolint:errcheck // Run only returns the context error
		c.pump.Run(ctx)
	}()
}

// Stop halts the tick pump and silences the buzzer.
func (c *Console) Stop() {
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
	c.engine.Sequencer().Init()
}

func (c *Console) newGame() {
	c.game = crossing.New(crossing.DefaultCols, crossing.DefaultRows, crossing.DefaultLives)
	c.started = time.Now()
	c.last = crossing.EventNone
	c.rank = 0
	c.saved = false
	c.engine.NewRound(c.timeLimit())
}

func (c *Console) timeLimit() uint16 {
	return c.difficulty.TimeLimit(c.cfg.Engine.Countdown.TimeLimit, c.game.Level)
}

// Restart begins a new game on the same engine.
func (c *Console) Restart() {
	c.engine.Resume()
	c.engine.Sequencer().Init()
	c.newGame()
	c.logger.Debug("game restarted")
}

// Step runs one main-loop iteration and returns what happened to the game.
// Foreground tracks block here until they finish.
func (c *Console) Step() crossing.Event {
	m := c.engine.Step()
	if c.game.Over || c.engine.Paused() {
		return crossing.EventNone
	}

	ev := c.game.Apply(m)
	if ev == crossing.EventNone && c.engine.Expired() {
		ev = c.game.TimeUp()
	}
	c.handle(ev)
	return ev
}

func (c *Console) handle(ev crossing.Event) {
	if ev == crossing.EventNone {
		return
	}
	c.last = ev

	if id := ev.Track(); id != audio.NoTrack {
		c.engine.Play(id)
	}

	switch ev {
	case crossing.EventMadeIt, crossing.EventLevelUp, crossing.EventDied:
		c.engine.NewRound(c.timeLimit())
		if ev == crossing.EventLevelUp {
			c.logger.Info("level up", "level", c.game.Level, "timeLimit", c.timeLimit())
		}
	case crossing.EventWinner, crossing.EventGameOver:
		c.finish()
	}
}

// finish records the game. Storage failures are logged, never fatal.
func (c *Console) finish() {
	if c.saved {
		return
	}
	c.saved = true

	score := c.game.Score
	c.logger.Info("game finished", "score", score, "level", c.game.Level, "won", c.game.Won)
	if c.cfg.Store == nil {
		return
	}

	duration := int(time.Since(c.started).Seconds())
	if _, err := c.cfg.Store.RecordGame(score, c.game.Level, duration); err != nil {
		c.logger.Warn("could not record game", "error", err)
	}

	rank, err := c.cfg.Store.Save(playerName(c.cfg.Player), score)
	if err != nil {
		c.logger.Warn("could not save high score", "error", err)
		return
	}
	if rank > 0 {
		c.logger.Info("new high score", "player", c.cfg.Player, "rank", rank)
	}
	c.rank = rank
}

// playerName cuts a login name down to what the high-score table accepts.
func playerName(name string) string {
	r := []rune(strings.TrimSpace(name))
	if len(r) > storage.MaxNameLength {
		r = r[:storage.MaxNameLength]
	}
	return string(r)
}

// TogglePause pauses or resumes the world.
func (c *Console) TogglePause() {
	if c.game.Over {
		return
	}
	if c.engine.Paused() {
		c.engine.Resume()
	} else {
		c.engine.Pause()
	}
}

// Engine returns the engine, for attaching a speaker.
func (c *Console) Engine() *engine.Engine {
	return c.engine
}

// Game returns the current game.
func (c *Console) Game() *crossing.Game {
	return c.game
}

// LastEvent returns the most recent game event.
func (c *Console) LastEvent() crossing.Event {
	return c.last
}

// Rank returns the high-score rank earned by the finished game, or zero.
func (c *Console) Rank() int {
	return c.rank
}
