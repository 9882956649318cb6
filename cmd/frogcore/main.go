// frogcore runs the real-time core of a handheld frog-crossing game: a
// joystick sampler, a buzzer track sequencer and a countdown timer on a
// virtual board.
//
// Usage:
//
//	frogcore console          - Play on the virtual board in the terminal
//	frogcore tracks           - List the sound effects
//	frogcore play <track>     - Play a sound effect
//	frogcore export <track>   - Render a sound effect to a WAV file
//	frogcore scores           - Show the high-score table
//	frogcore serve            - Start SSH server for remote play
//	frogcore config           - Print or check the configuration
//
// Global flags:
//
//	--config <path>  - Configuration file (default: search ~/.frogcore, ./configs)
//	--db <path>      - Set database path (default: ~/.frogcore/scores.db)
//	--verbose        - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/frogcore/internal/config"
	"github.com/vovakirdan/frogcore/internal/logging"
)

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "frogcore",
	Short: "frogcore - the real-time core of a handheld frog game",
	Long: `frogcore drives a virtual game board: an analog joystick sampled every
tick into a move queue, a buzzer playing sound-effect tracks, and a round
timer on a two-digit seven-segment display.

Available commands:
  console  - Play on the virtual board
  tracks   - List the sound effects
  play     - Play a sound effect on the speaker
  export   - Render a sound effect to WAV
  scores   - View high scores
  serve    - Start SSH server for remote play
  config   - Print or check the configuration

Examples:
  frogcore console
  frogcore play died
  frogcore export winner -o winner.wav
  frogcore serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.frogcore/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(tracksCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger returns the command-line logger.
func newLogger() *log.Logger {
	return logging.New(os.Stderr, "frogcore", flagVerbose)
}

// loadConfig loads the configuration named by --config or found in the
// search path.
func loadConfig(logger *log.Logger) (config.Config, error) {
	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return cfg, err
	}
	logger.Debug("configuration loaded", "source", source)
	return cfg, nil
}
