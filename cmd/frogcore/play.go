package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/frogcore/internal/audio"
	"github.com/vovakirdan/frogcore/internal/audio/speaker"
	"github.com/vovakirdan/frogcore/internal/clock"
	"github.com/vovakirdan/frogcore/internal/engine"
)

var (
	flagVolumeDown bool
	flagMute       bool
	flagHeadless   bool
)

var playCmd = &cobra.Command{
	Use:   "play <track>",
	Short: "Play a sound effect",
	Long: `Play one sound effect through the sequencer and the speaker.

The track is named or numbered as in 'frogcore tracks'. With --headless no
audio device is opened and the note timeline is logged instead.

Examples:
  frogcore play jump
  frogcore play 5 --volume-down
  frogcore play game-over --headless -v`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagVolumeDown, "volume-down", false, "Play with the volume switch down")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Play with the mute switch on")
	playCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Do not open the audio device")
}

func runPlay(_ *cobra.Command, args []string) error {
	logger := newLogger()

	id, ok := audio.ParseTrackID(args[0])
	if !ok {
		return fmt.Errorf("unknown track %q; run 'frogcore tracks' to list them", args[0])
	}

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pump := clock.NewPump()
	e := engine.New(pump, cfg.Engine(), engine.WithLogger(logger))
	e.Init()
	e.Board().Switches.SetVolumeDown(flagVolumeDown)
	e.Board().Switches.SetMuted(flagMute)

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()
	go func() {
		//nolint:errcheck // Run only returns the context error
		pump.Run(runCtx)
	}()

	if !flagHeadless {
		spk, err := speaker.Open(e.Board().PWM, cfg.Audio.ReferenceHz, int(cfg.Audio.SampleRate), logger)
		if err != nil {
			return err
		}
		defer spk.Close()
		spk.Start()
	}

	track, _ := audio.Lookup(id)
	logger.Info("playing", "track", track.Name, "notes", track.Len(), "duration", time.Duration(track.PlayTime(cfg.Audio.RestGapMS))*time.Millisecond)

	// Load does not wait for foreground tracks; waitLogged does.
	started := time.Now()
	e.Sequencer().Load(track)
	if err := waitLogged(ctx, e, logger); err != nil {
		return err
	}
	logger.Info("done", "elapsed", time.Since(started).Round(time.Millisecond))

	// Let the device drain its buffer.
	if !flagHeadless {
		time.Sleep(100 * time.Millisecond)
	}
	return nil
}

// waitLogged runs the main loop until the track unloads, logging each
// note as it starts.
func waitLogged(ctx context.Context, e *engine.Engine, logger *log.Logger) error {
	seq := e.Sequencer()
	cursor := -1
	for seq.Loaded() {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.Step()
		if st := seq.Status(); st.Cursor != cursor && st.Phase == audio.PhaseTone {
			cursor = st.Cursor
			logger.Debug("note", "index", st.Cursor, "freq", st.Freq, "period", st.Period, "pulse", st.Pulse)
		}
		time.Sleep(time.Millisecond)
	}
	return nil
}
