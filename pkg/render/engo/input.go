// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-robotarena/pkg/driver"
	"github.com/opd-ai/go-robotarena/pkg/event"
)

// binding ties an engo button to a driver input
type binding struct {
	button string
	key    engo.Key
	input  driver.Input
}

// bindings lists every control the window understands. Arrow keys pass
// through as raw arena key codes.
var bindings = []binding{
	{"turnLeft", engo.KeyArrowLeft, driver.KeyInput(event.KeyLeft)},
	{"turnRight", engo.KeyArrowRight, driver.KeyInput(event.KeyRight)},
	{"speedUp", engo.KeyArrowUp, driver.KeyInput(event.KeyUp)},
	{"slowDown", engo.KeyArrowDown, driver.KeyInput(event.KeyDown)},
	{"pause", engo.KeyP, driver.Input{Control: driver.ControlPause}},
	{"restart", engo.KeyR, driver.Input{Control: driver.ControlRestart}},
	{"quit", engo.KeyEscape, driver.Input{Control: driver.ControlQuit}},
}

// RegisterControls registers the arena buttons with engo
func RegisterControls() {
	for _, b := range bindings {
		engo.Input.RegisterButton(b.button, b.key)
	}
}

// InputSystem forwards button presses to the driver
type InputSystem struct {
	driver *driver.Driver
}

// Remove satisfies the ecs.System interface
func (s *InputSystem) Remove(ecs.BasicEntity) {}

// Update sends one input per button pressed this frame
func (s *InputSystem) Update(dt float32) {
	for _, b := range bindings {
		if engo.Input.Button(b.button).JustPressed() {
			s.driver.Send(b.input)
		}
	}
}
