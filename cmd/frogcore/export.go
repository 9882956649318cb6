package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/frogcore/internal/audio"
	"github.com/vovakirdan/frogcore/internal/audio/wavfile"
)

var (
	flagOutput     string
	flagSampleRate int
	flagTailMS     int
	flagExportLow  bool
)

var exportCmd = &cobra.Command{
	Use:   "export <track>",
	Short: "Render a sound effect to a WAV file",
	Long: `Render a sound effect offline and write it as a 16-bit mono WAV file.

Rendering runs the sequencer on a simulated clock, so the file matches what
the buzzer plays note for note.

Examples:
  frogcore export jump
  frogcore export died -o died.wav --tail 200
  frogcore export winner --volume-down --rate 22050`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file (default: <track>.wav)")
	exportCmd.Flags().IntVar(&flagSampleRate, "rate", 0, "Sample rate (default: from config)")
	exportCmd.Flags().IntVar(&flagTailMS, "tail", 0, "Milliseconds of silence after the track")
	exportCmd.Flags().BoolVar(&flagExportLow, "volume-down", false, "Render with the volume switch down")
}

func runExport(_ *cobra.Command, args []string) error {
	logger := newLogger()

	id, ok := audio.ParseTrackID(args[0])
	if !ok {
		return fmt.Errorf("unknown track %q; run 'frogcore tracks' to list them", args[0])
	}
	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	opts := wavfile.DefaultOptions()
	opts.Audio = cfg.Engine().Audio
	opts.SampleRate = int(cfg.Audio.SampleRate)
	if flagSampleRate > 0 {
		opts.SampleRate = flagSampleRate
	}
	opts.VolumeDown = flagExportLow
	opts.Tail = time.Duration(flagTailMS) * time.Millisecond

	path := flagOutput
	if path == "" {
		path = id.String() + ".wav"
	}

	if err := wavfile.Export(path, id, opts); err != nil {
		return err
	}
	logger.Info("exported", "track", id, "path", path, "sampleRate", opts.SampleRate)
	return nil
}
