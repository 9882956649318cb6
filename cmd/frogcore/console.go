package main

import (
	"context"
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/frogcore/internal/audio/speaker"
	"github.com/vovakirdan/frogcore/internal/config"
	"github.com/vovakirdan/frogcore/internal/platform/tui"
	"github.com/vovakirdan/frogcore/internal/storage"
)

var (
	flagDifficulty string
	flagName       string
	flagNoSound    bool
	flagLogFile    string
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Play on the virtual board",
	Long: `Run the game loop on the virtual board in the terminal.

Keys push the joystick; the sampler turns deflections into queued moves
exactly as it would for the analog stick.

Controls:
  Arrows/WASD  - Push the stick
  Q E Z C      - Push diagonally
  V            - Volume switch
  M            - Mute switch
  P/Esc        - Pause
  R            - Restart (after game over)
  ?            - Help
  Ctrl+C       - Quit

Difficulty options:
  easy   - Longer rounds, faster stick repeat
  normal - Rounds shrink as levels are cleared
  hard   - Shorter rounds, slower stick repeat
  fixed  - Every round has the configured length

Examples:
  frogcore console
  frogcore console --difficulty hard --name FROGGY
  frogcore console --no-sound`,
	Args: cobra.NoArgs,
	RunE: runConsole,
}

func init() {
	consoleCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	consoleCmd.Flags().StringVar(&flagName, "name", "", "Name for the high-score table (default: login name)")
	consoleCmd.Flags().BoolVar(&flagNoSound, "no-sound", false, "Do not open the audio device")
	consoleCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while the console runs")
}

func runConsole(cmd *cobra.Command, _ []string) error {
	logger := newLogger()

	// The console owns the terminal, so logs go to a file or nowhere.
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return err
		}
		config.ApplyPreset(&cfg, preset)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	consoleLogger := logger
	if flagLogFile == "" {
		consoleLogger = nil
	}

	console := tui.NewConsole(tui.ConsoleConfig{
		Engine:     cfg.Engine(),
		Difficulty: cfg.Difficulty,
		Store:      store,
		Player:     playerName(),
		Logger:     consoleLogger,
		FrameRate:  frameRate(cfg),
	})

	if !flagNoSound {
		spk, err := speaker.Open(console.Engine().Board().PWM, cfg.Audio.ReferenceHz, int(cfg.Audio.SampleRate), consoleLogger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (continuing without sound)\n", err)
		} else {
			spk.Start()
			defer spk.Close()
		}
	}

	return tui.RunConsole(context.Background(), console, width, height)
}

// frameRate converts the main-loop period into iterations per second.
func frameRate(cfg config.Config) int {
	if cfg.Clock.TickIntervalMS == 0 {
		return tui.DefaultFrameRate
	}
	return int(1000 / cfg.Clock.TickIntervalMS)
}

func playerName() string {
	if flagName != "" {
		return flagName
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}
