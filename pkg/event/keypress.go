package event

import (
	"errors"
	"fmt"
)

// Command is a decoded robot control command.
type Command int

const (
	CommandTurnLeft Command = iota
	CommandTurnRight
	CommandSpeedUp
	CommandSlowDown
)

func (c Command) String() string {
	switch c {
	case CommandTurnLeft:
		return "turn_left"
	case CommandTurnRight:
		return "turn_right"
	case CommandSpeedUp:
		return "speed_up"
	case CommandSlowDown:
		return "slow_down"
	default:
		return fmt.Sprintf("command(%d)", int(c))
	}
}

// Raw key codes understood by the arena. They are GLFW key codes, so
// windowing backends built on GLFW can pass codes straight through.
const (
	KeyRight = 262
	KeyLeft  = 263
	KeyDown  = 264
	KeyUp    = 265
)

// ErrUnknownKey is returned by ParseKey for codes with no command.
var ErrUnknownKey = errors.New("unknown key code")

// ParseKey decodes a raw key code.
func ParseKey(code int) (Command, error) {
	switch code {
	case KeyLeft:
		return CommandTurnLeft, nil
	case KeyRight:
		return CommandTurnRight, nil
	case KeyUp:
		return CommandSpeedUp, nil
	case KeyDown:
		return CommandSlowDown, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownKey, code)
	}
}

// KeypressEvent wraps one raw key code from the input layer.
type KeypressEvent struct {
	BaseEvent
	Key int
}

// NewKeypressEvent creates a keypress event for key.
func NewKeypressEvent(source interface{}, key int) *KeypressEvent {
	return &KeypressEvent{
		BaseEvent: BaseEvent{
			EventType: Keypress,
			Source:    source,
		},
		Key: key,
	}
}

// Command decodes the key. An unmapped key means the input layer was wired
// with a bad key table, so it panics instead of returning an error.
func (e *KeypressEvent) Command() Command {
	cmd, err := ParseKey(e.Key)
	if err != nil {
		panic(fmt.Sprintf("event: bad keypress: %v", err))
	}
	return cmd
}
