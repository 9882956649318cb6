// Package audio sequences the game's sound effects on a square-wave
// generator. A track is a list of tones; the sequencer steps through them
// by comparing elapsed clock time against each note's duration, so it never
// blocks the caller unless asked to.
package audio

import (
	"fmt"
	"sort"
	"strings"
)

// Tone frequencies in Hz. Zero is a rest note: it still takes its duration
// but drives no waveform.
const (
	Rest    uint16 = 0
	ToneC4  uint16 = 261
	ToneD4  uint16 = 294
	ToneE4  uint16 = 329
	ToneF4  uint16 = 349
	ToneG4  uint16 = 391
	ToneGS4 uint16 = 415
	ToneA4  uint16 = 440
	ToneAS4 uint16 = 455
	ToneB4  uint16 = 466
	ToneC5  uint16 = 523
	ToneCS5 uint16 = 554
	ToneD5  uint16 = 587
	ToneDS5 uint16 = 622
	ToneE5  uint16 = 659
	ToneF5  uint16 = 698
	ToneFS5 uint16 = 740
	ToneG5  uint16 = 784
	ToneGS5 uint16 = 830
	ToneA5  uint16 = 880
)

// TrackID identifies a sound effect. Values are a stable contract; the game
// state refers to tracks by these numbers.
type TrackID int

const (
	NoTrack      TrackID = -1 // continue whatever is loaded
	TrackJump    TrackID = 1
	TrackDied    TrackID = 2
	TrackMadeIt  TrackID = 3
	TrackLevelUp TrackID = 4
	TrackWinner  TrackID = 5
	TrackOver    TrackID = 6
)

// Note is one step of a track.
type Note struct {
	Freq     uint16 // Hz, Rest for silence
	Duration uint16 // ms
}

// Track is an immutable sound effect. Foreground tracks play to completion
// before Play returns; background tracks rely on the caller polling.
type Track struct {
	ID         TrackID
	Name       string
	Notes      []Note
	Foreground bool
}

// Len returns the number of notes.
func (t Track) Len() int {
	return len(t.Notes)
}

// PlayTime returns how long the track stays loaded when polled
// continuously: every note's duration plus a rest gap between consecutive
// notes. The final rest unloads immediately.
func (t Track) PlayTime(restGap uint32) uint32 {
	if len(t.Notes) == 0 {
		return 0
	}
	var total uint32
	for _, n := range t.Notes {
		total += uint32(n.Duration)
	}
	return total + uint32(len(t.Notes)-1)*restGap
}

// tracks is the lookup table from id to descriptor. It is built once in
// init and never modified.
var tracks = map[TrackID]Track{}

func register(t Track) {
	if _, exists := tracks[t.ID]; exists {
		panic(fmt.Sprintf("audio: track %d already registered", t.ID))
	}
	tracks[t.ID] = t
}

func notes(freqs []uint16, durations []uint16) []Note {
	if len(freqs) != len(durations) {
		panic("audio: tone and duration lists differ in length")
	}
	out := make([]Note, len(freqs))
	for i := range freqs {
		out[i] = Note{Freq: freqs[i], Duration: durations[i]}
	}
	return out
}

func init() {
	register(Track{
		ID:    TrackJump,
		Name:  "jump",
		Notes: notes([]uint16{ToneA4, ToneC4}, []uint16{50, 25}),
	})
	register(Track{
		ID:         TrackDied,
		Name:       "died",
		Notes:      notes([]uint16{ToneA4, ToneF4, ToneE4, ToneD4, ToneC4}, []uint16{100, 100, 75, 75, 200}),
		Foreground: true,
	})
	register(Track{
		ID:         TrackMadeIt,
		Name:       "made-it",
		Notes:      notes([]uint16{ToneC4, ToneD4, ToneE4, ToneF4, ToneA4}, []uint16{100, 100, 75, 75, 200}),
		Foreground: true,
	})
	register(Track{
		ID:    TrackLevelUp,
		Name:  "level-up",
		Notes: notes([]uint16{ToneE4, ToneC4, ToneC4, ToneE4, ToneA4}, []uint16{100, 100, 100, 100, 200}),
	})
	register(Track{
		ID:         TrackWinner,
		Name:       "winner",
		Notes:      notes([]uint16{ToneC4, ToneE4, ToneE4, ToneA4, ToneE4, ToneA4}, []uint16{100, 50, 50, 50, 50, 200}),
		Foreground: true,
	})
	register(Track{
		ID:         TrackOver,
		Name:       "game-over",
		Notes:      notes([]uint16{ToneE4, ToneC4, ToneC4}, []uint16{100, 50, 200}),
		Foreground: true,
	})
}

// Lookup returns the track for id. The Notes slice is shared and must not
// be modified.
func Lookup(id TrackID) (Track, bool) {
	t, ok := tracks[id]
	return t, ok
}

// Tracks returns every registered track, sorted by id.
func Tracks() []Track {
	out := make([]Track, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// ParseTrackID resolves a track name ("jump", "game-over") or number.
func ParseTrackID(s string) (TrackID, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range tracks {
		if t.Name == s || fmt.Sprint(int(t.ID)) == s {
			return t.ID, true
		}
	}
	return NoTrack, false
}

// String returns the track's name.
func (id TrackID) String() string {
	if id == NoTrack {
		return "none"
	}
	if t, ok := tracks[id]; ok {
		return t.Name
	}
	return fmt.Sprintf("track(%d)", int(id))
}
