package entity

import (
	"fmt"

	"github.com/opd-ai/go-robotarena/pkg/event"
	"github.com/opd-ai/go-robotarena/pkg/physics"
)

// MotionHandler owns heading and speed and turns commands and sensor
// readings into changes of either.
type MotionHandler struct {
	heading   float64 // degrees, not wrapped
	speed     float64
	maxSpeed  float64
	turnDelta float64

	initialHeading float64
	initialSpeed   float64
}

// NewMotionHandler creates a handler starting at heading/speed.
func NewMotionHandler(heading, speed, maxSpeed, turnDelta float64) *MotionHandler {
	return &MotionHandler{
		heading:        heading,
		speed:          speed,
		maxSpeed:       maxSpeed,
		turnDelta:      turnDelta,
		initialHeading: heading,
		initialSpeed:   speed,
	}
}

// HeadingAngle returns the heading in degrees.
func (m *MotionHandler) HeadingAngle() float64 { return m.heading }

// SetHeadingAngle sets the heading in degrees.
func (m *MotionHandler) SetHeadingAngle(h float64) { m.heading = h }

// Speed returns the current speed in arena units per tick.
func (m *MotionHandler) Speed() float64 { return m.speed }

// SetSpeed sets the current speed.
func (m *MotionHandler) SetSpeed(s float64) { m.speed = s }

// MaxSpeed returns the speed cap for SpeedUp commands.
func (m *MotionHandler) MaxSpeed() float64 { return m.maxSpeed }

// AcceptCommand applies one user command.
func (m *MotionHandler) AcceptCommand(cmd event.Command) {
	switch cmd {
	case event.CommandTurnLeft:
		m.heading -= m.turnDelta
	case event.CommandTurnRight:
		m.heading += m.turnDelta
	case event.CommandSpeedUp:
		if m.speed < m.maxSpeed {
			m.speed++
		}
		if m.speed > m.maxSpeed {
			m.speed = m.maxSpeed
		}
	case event.CommandSlowDown:
		if m.speed > 0 {
			m.speed--
		}
		if m.speed < 0 {
			m.speed = 0
		}
	default:
		panic(fmt.Sprintf("entity: bad actuator command %v", cmd))
	}
}

// UpdateVelocity reflects the heading off the last contact when the sensor
// is active. A zero contact angle maps to 180 rather than -0.
func (m *MotionHandler) UpdateVelocity(s ContactSensor) {
	if !s.Activated() {
		return
	}
	if s.AngleOfContact() == 0 {
		m.heading = 180
		return
	}
	m.heading = -s.AngleOfContact()
}

// SlowForBump drops speed by one after a collision, never below
// MinBumpSpeed, and never raises a speed already at or below it.
func (m *MotionHandler) SlowForBump() {
	if m.speed > MinBumpSpeed {
		m.speed--
		if m.speed < MinBumpSpeed {
			m.speed = MinBumpSpeed
		}
	}
}

// Reset restores the constructed heading and speed.
func (m *MotionHandler) Reset() {
	m.heading = m.initialHeading
	m.speed = m.initialSpeed
}

// MinBumpSpeed is the floor for collision slow-down; at 1 the robot stalls
// against obstacles.
const MinBumpSpeed = 2

// MotionBehavior advances a position along a heading. Headings are degrees
// measured from +X toward +Y, and +Y points down the screen, so 90 moves
// down and 270 moves up.
type MotionBehavior struct{}

// UpdatePosition returns pos advanced by speed over dt along heading.
func (MotionBehavior) UpdatePosition(pos physics.Vector2D, heading, speed, dt float64) physics.Vector2D {
	return pos.Add(physics.FromHeading(heading, speed*dt))
}
