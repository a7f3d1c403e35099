package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Player plays cues without blocking
type Player interface {
	Play(c Cue) error
}

// SpeakerPlayer plays cues on the system audio device
type SpeakerPlayer struct {
	sr beep.SampleRate
}

// NewSpeakerPlayer opens the audio device. Only one may be open at a time.
func NewSpeakerPlayer() (*SpeakerPlayer, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %w", err)
	}
	return &SpeakerPlayer{sr: SampleRate}, nil
}

// Play queues c on the speaker mixer
func (p *SpeakerPlayer) Play(c Cue) error {
	s, err := c.Streamer(p.sr)
	if err != nil {
		return err
	}
	speaker.Play(s)
	return nil
}

// Close releases the audio device
func (p *SpeakerPlayer) Close() {
	speaker.Close()
}
