// pkg/render/engo/scene_test.go
package engo

import (
	"testing"
	"time"

	"github.com/opd-ai/go-robotarena/pkg/driver"
	"github.com/opd-ai/go-robotarena/pkg/event"
)

func TestArenaScene_Type(t *testing.T) {
	s := NewArenaScene(nil, 0, nil)
	if s.Type() != "ArenaScene" {
		t.Errorf("Type() = %q", s.Type())
	}
	if s.Driver() != nil {
		t.Error("driver should not exist before Setup")
	}
}

func TestFrameDuration(t *testing.T) {
	tests := []struct {
		dt   float32
		want time.Duration
	}{
		{0, 0},
		{0.5, 500 * time.Millisecond},
		{1, time.Second},
	}
	for _, tt := range tests {
		if got := frameDuration(tt.dt); got != tt.want {
			t.Errorf("frameDuration(%v) = %v, want %v", tt.dt, got, tt.want)
		}
	}
}

func TestBindings(t *testing.T) {
	want := map[string]event.Command{
		"turnLeft":  event.CommandTurnLeft,
		"turnRight": event.CommandTurnRight,
		"speedUp":   event.CommandSpeedUp,
		"slowDown":  event.CommandSlowDown,
	}
	controls := map[string]driver.Control{
		"pause":   driver.ControlPause,
		"restart": driver.ControlRestart,
		"quit":    driver.ControlQuit,
	}

	seen := make(map[string]bool)
	for _, b := range bindings {
		t.Run(b.button, func(t *testing.T) {
			if seen[b.button] {
				t.Fatalf("duplicate binding %q", b.button)
			}
			seen[b.button] = true

			if cmd, ok := want[b.button]; ok {
				if b.input.Control != driver.ControlKey {
					t.Fatalf("control = %v, want key", b.input.Control)
				}
				got, err := event.ParseKey(b.input.Key)
				if err != nil {
					t.Fatalf("ParseKey(%d): %v", b.input.Key, err)
				}
				if got != cmd {
					t.Errorf("command = %v, want %v", got, cmd)
				}
				return
			}
			if c, ok := controls[b.button]; !ok || b.input.Control != c {
				t.Errorf("control = %v, want %v", b.input.Control, c)
			}
		})
	}
	if len(seen) != len(want)+len(controls) {
		t.Errorf("bindings = %d, want %d", len(seen), len(want)+len(controls))
	}
}
