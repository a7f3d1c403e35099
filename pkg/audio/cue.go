// Package audio plays short tones for arena events.
package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

// SampleRate is the output rate for every cue
const SampleRate = beep.SampleRate(44100)

// Cue is a sequence of equal-length sine notes
type Cue struct {
	Name       string
	Notes      []float64 // Hz
	NoteLength time.Duration
}

// Arena cues
var (
	CueBump     = Cue{Name: "bump", Notes: []float64{220}, NoteLength: 40 * time.Millisecond}
	CueWall     = Cue{Name: "wall", Notes: []float64{330}, NoteLength: 30 * time.Millisecond}
	CueRecharge = Cue{Name: "recharge", Notes: []float64{660, 880}, NoteLength: 60 * time.Millisecond}
	CueWin      = Cue{Name: "win", Notes: []float64{523.25, 659.25, 783.99}, NoteLength: 120 * time.Millisecond}
	CueLose     = Cue{Name: "lose", Notes: []float64{392, 311.13, 261.63}, NoteLength: 150 * time.Millisecond}
)

// Samples returns the cue's length in samples at sr
func (c Cue) Samples(sr beep.SampleRate) int {
	return len(c.Notes) * sr.N(c.NoteLength)
}

// Streamer builds a finite stream playing the cue at sr
func (c Cue) Streamer(sr beep.SampleRate) (beep.Streamer, error) {
	if len(c.Notes) == 0 {
		return nil, fmt.Errorf("cue %s has no notes", c.Name)
	}

	n := sr.N(c.NoteLength)
	notes := make([]beep.Streamer, 0, len(c.Notes))
	for _, freq := range c.Notes {
		tone, err := generators.SineTone(sr, freq)
		if err != nil {
			return nil, fmt.Errorf("cue %s: %w", c.Name, err)
		}
		notes = append(notes, beep.Take(n, tone))
	}
	return beep.Seq(notes...), nil
}
