package audio

import (
	"errors"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/opd-ai/go-robotarena/pkg/event"
)

type fakePlayer struct {
	played []string
	err    error
}

func (f *fakePlayer) Play(c Cue) error {
	f.played = append(f.played, c.Name)
	return f.err
}

func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func TestCue_Streamer(t *testing.T) {
	for _, c := range []Cue{CueBump, CueWall, CueRecharge, CueWin, CueLose} {
		t.Run(c.Name, func(t *testing.T) {
			s, err := c.Streamer(SampleRate)
			if err != nil {
				t.Fatalf("Streamer() failed: %v", err)
			}
			if got, want := drain(s), c.Samples(SampleRate); got != want {
				t.Errorf("streamed %d samples, want %d", got, want)
			}
		})
	}
}

func TestCue_StreamerErrors(t *testing.T) {
	tests := []struct {
		name string
		cue  Cue
	}{
		{"no notes", Cue{Name: "empty", NoteLength: time.Millisecond}},
		{"above nyquist", Cue{Name: "shrill", Notes: []float64{30000}, NoteLength: time.Millisecond}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.cue.Streamer(SampleRate); err == nil {
				t.Error("Streamer() should fail")
			}
		})
	}
}

func TestCues_Handle(t *testing.T) {
	wall := event.NewCollisionEvent(nil)
	wall.Collided = true
	wall.CollidedWithWall = true

	bump := event.NewCollisionEvent(nil)
	bump.Collided = true

	tests := []struct {
		name string
		ev   event.Event
		want []string
	}{
		{"miss", event.NewCollisionEvent(nil), nil},
		{"wall", wall, []string{"wall"}},
		{"bump", bump, []string{"bump"}},
		{"recharge", event.NewRechargeEvent(nil), []string{"recharge"}},
		{"won", event.NewGameEvent(event.GameWon, nil, event.OutcomeWon, 3), []string{"win"}},
		{"lost", event.NewGameEvent(event.GameLost, nil, event.OutcomeLost, 3), []string{"lose"}},
		{"reset", event.NewGameEvent(event.ArenaReset, nil, event.OutcomeNone, 0), nil},
		{"keypress", event.NewKeypressEvent(nil, event.KeyUp), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePlayer{}
			NewCues(nil, p, nil).Handle(tt.ev)
			if len(p.played) != len(tt.want) {
				t.Fatalf("played %v, want %v", p.played, tt.want)
			}
			for i := range tt.want {
				if p.played[i] != tt.want[i] {
					t.Errorf("played %v, want %v", p.played, tt.want)
				}
			}
		})
	}
}

func TestCues_AttachAndPlayerError(t *testing.T) {
	bus := event.NewEventBus()
	p := &fakePlayer{err: errors.New("device busy")}
	NewCues(nil, p, nil).Attach(bus)

	bus.Publish(event.NewRechargeEvent(nil))
	bus.Publish(event.NewGameEvent(event.GameLost, nil, event.OutcomeLost, 1))

	if len(p.played) != 2 {
		t.Errorf("played %v, want two cues", p.played)
	}
}
