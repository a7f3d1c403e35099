package entity

import (
	"image/color"

	"github.com/opd-ai/go-robotarena/pkg/event"
	"github.com/opd-ai/go-robotarena/pkg/physics"
)

// HomeBaseParams describes a home base at construction time
type HomeBaseParams struct {
	Radius         float64
	Position       physics.Vector2D
	Color          color.RGBA
	Heading        float64
	Speed          float64
	CollisionDelta float64
}

// HomeBase is the robot's goal. It drifts along its heading and bounces
// off walls and obstacles with the same one-tick-late reflection as the
// robot, but has no battery and never slows down.
type HomeBase struct {
	BaseEntity
	motionHandler  *MotionHandler
	motionBehavior MotionBehavior
	sensorTouch    *TouchSensor
	collisionDelta float64
}

// NewHomeBase creates a home base and draws its id from ids
func NewHomeBase(ids *IDAllocator, p HomeBaseParams) *HomeBase {
	return &HomeBase{
		BaseEntity:     newBaseEntity(ids, KindHomeBase, p.Radius, p.Position, p.Color),
		motionHandler:  NewMotionHandler(p.Heading, p.Speed, p.Speed, 0),
		sensorTouch:    NewTouchSensor(),
		collisionDelta: p.CollisionDelta,
	}
}

func (h *HomeBase) IsMobile() bool { return true }
func (h *HomeBase) HeadingAngle() float64 { return h.motionHandler.HeadingAngle() }
func (h *HomeBase) Speed() float64 { return h.motionHandler.Speed() }
func (h *HomeBase) CollisionDelta() float64 { return h.collisionDelta }

// SetHeadingAngle overrides the heading
func (h *HomeBase) SetHeadingAngle(deg float64) { h.motionHandler.SetHeadingAngle(deg) }

// SetSpeed overrides the speed
func (h *HomeBase) SetSpeed(s float64) { h.motionHandler.SetSpeed(s) }

// Sensor exposes the touch sensor for inspection
func (h *HomeBase) Sensor() *TouchSensor { return h.sensorTouch }

// TimestepUpdate steers off the last contact and moves one tick
func (h *HomeBase) TimestepUpdate(dt float64) {
	h.motionHandler.UpdateVelocity(h.sensorTouch)
	h.Position = h.motionBehavior.UpdatePosition(
		h.Position, h.motionHandler.HeadingAngle(), h.motionHandler.Speed(), dt)
}

// Accept records the tick's collision outcome
func (h *HomeBase) Accept(e *event.CollisionEvent) {
	h.sensorTouch.Accept(e)
}

// Reset restores the home base to its constructed state
func (h *HomeBase) Reset() {
	h.resetBase()
	h.motionHandler.Reset()
	h.sensorTouch.Reset()
}

// Render draws the home base
func (h *HomeBase) Render(r Renderer) {
	r.RenderHomeBase(h)
}
