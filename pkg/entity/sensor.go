package entity

import (
	"github.com/opd-ai/go-robotarena/pkg/event"
	"github.com/opd-ai/go-robotarena/pkg/physics"
)

// Sensor reacts to collision events and reports whether it fired.
type Sensor interface {
	Accept(e *event.CollisionEvent)
	Reset()
	Activated() bool
}

// ContactSensor is a Sensor that also reports where the contact came from.
type ContactSensor interface {
	Sensor
	AngleOfContact() float64
}

// TouchSensor latches the outcome of the most recent collision check.
// The motion handler reads it at the start of the next tick, so headings
// always react to the previous tick's contact.
type TouchSensor struct {
	activated        bool
	angleOfContact   float64
	pointOfContact   physics.Vector2D
	collidedWithWall bool
}

// NewTouchSensor returns a deactivated sensor.
func NewTouchSensor() *TouchSensor {
	return &TouchSensor{}
}

// Accept records e. A non-collision clears the activation but keeps the
// last contact geometry.
func (s *TouchSensor) Accept(e *event.CollisionEvent) {
	s.activated = e.Collided
	if e.Collided {
		s.angleOfContact = e.AngleOfContact
		s.pointOfContact = e.PointOfContact
		s.collidedWithWall = e.CollidedWithWall
	}
}

// Reset deactivates the sensor.
func (s *TouchSensor) Reset() {
	s.activated = false
}

// Activated reports whether the last check was a collision.
func (s *TouchSensor) Activated() bool {
	return s.activated
}

// AngleOfContact returns the last recorded contact angle in degrees.
func (s *TouchSensor) AngleOfContact() float64 {
	return s.angleOfContact
}

// PointOfContact returns the last recorded contact point.
func (s *TouchSensor) PointOfContact() physics.Vector2D {
	return s.pointOfContact
}

// CollidedWithWall reports whether the last recorded contact was a wall.
func (s *TouchSensor) CollidedWithWall() bool {
	return s.collidedWithWall
}
