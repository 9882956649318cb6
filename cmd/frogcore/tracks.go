package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/frogcore/internal/audio"
)

var tracksCmd = &cobra.Command{
	Use:   "tracks",
	Short: "List the sound effects",
	Long:  `Shows every sound effect in the track table with its length and play time.`,
	Args:  cobra.NoArgs,
	RunE:  runTracks,
}

func runTracks(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(newLogger())
	if err != nil {
		return err
	}
	gap := cfg.Audio.RestGapMS

	fmt.Println("Sound effects:")
	fmt.Println()
	fmt.Printf("  %-3s  %-10s  %-5s  %-8s  %s\n", "ID", "Name", "Notes", "Time", "Mode")
	fmt.Printf("  %-3s  %-10s  %-5s  %-8s  %s\n", "--", "----", "-----", "----", "----")

	for _, t := range audio.Tracks() {
		mode := "background"
		if t.Foreground {
			mode = "foreground"
		}
		fmt.Printf("  %-3d  %-10s  %-5d  %-8s  %s\n", t.ID, t.Name, t.Len(), fmt.Sprintf("%dms", t.PlayTime(gap)), mode)
	}

	fmt.Println()
	fmt.Println("Run 'frogcore play <name>' to hear one.")
	return nil
}
