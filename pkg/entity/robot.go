// pkg/entity/robot.go
package entity

import (
	"image/color"

	"github.com/opd-ai/go-robotarena/pkg/event"
	"github.com/opd-ai/go-robotarena/pkg/physics"
)

// RobotParams describes a robot at construction time
type RobotParams struct {
	Radius           float64
	Position         physics.Vector2D
	Color            color.RGBA
	CollisionDelta   float64
	BatteryMaxCharge float64
	AngleDelta       float64
	InitialHeading   float64
	InitialSpeed     float64
	MaxSpeed         float64
}

// Robot is the player-controlled entity
type Robot struct {
	BaseEntity
	battery        *Battery
	motionHandler  *MotionHandler
	motionBehavior MotionBehavior
	sensorTouch    *TouchSensor
	collisionDelta float64

	// hitRechargeStation lives for one tick: set by the arena's recharge
	// check, cleared at the end of the next TimestepUpdate.
	hitRechargeStation bool
}

// NewRobot creates a robot and draws its id from ids
func NewRobot(ids *IDAllocator, p RobotParams) *Robot {
	return &Robot{
		BaseEntity:     newBaseEntity(ids, KindRobot, p.Radius, p.Position, p.Color),
		battery:        NewBattery(p.BatteryMaxCharge),
		motionHandler:  NewMotionHandler(p.InitialHeading, p.InitialSpeed, p.MaxSpeed, p.AngleDelta),
		sensorTouch:    NewTouchSensor(),
		collisionDelta: p.CollisionDelta,
	}
}

// IsMobile reports true
func (r *Robot) IsMobile() bool { return true }

// HeadingAngle returns the heading in degrees
func (r *Robot) HeadingAngle() float64 { return r.motionHandler.HeadingAngle() }

// SetHeadingAngle overrides the heading
func (r *Robot) SetHeadingAngle(h float64) { r.motionHandler.SetHeadingAngle(h) }

// Speed returns the current speed
func (r *Robot) Speed() float64 { return r.motionHandler.Speed() }

// SetSpeed overrides the current speed
func (r *Robot) SetSpeed(s float64) { r.motionHandler.SetSpeed(s) }

// CollisionDelta returns the near-miss buffer used for this robot's checks
func (r *Robot) CollisionDelta() float64 { return r.collisionDelta }

// BatteryLevel returns the remaining charge
func (r *Robot) BatteryLevel() float64 { return r.battery.Level() }

// Battery exposes the battery for inspection
func (r *Robot) Battery() *Battery { return r.battery }

// Sensor exposes the touch sensor for inspection
func (r *Robot) Sensor() *TouchSensor { return r.sensorTouch }

// HitRechargeStation reports whether this tick already resolved a recharge
func (r *Robot) HitRechargeStation() bool { return r.hitRechargeStation }

// SetHitRechargeStation marks (or clears) this tick's recharge contact
func (r *Robot) SetHitRechargeStation(hit bool) { r.hitRechargeStation = hit }

// TimestepUpdate moves the robot one tick. The order matters: the heading
// is steered by the previous tick's contact before the move, and the
// battery is charged for the distance actually covered.
func (r *Robot) TimestepUpdate(dt float64) {
	oldPos := r.Position

	r.motionHandler.UpdateVelocity(r.sensorTouch)

	r.Position = r.motionBehavior.UpdatePosition(
		r.Position, r.motionHandler.HeadingAngle(), r.motionHandler.Speed(), dt)

	r.battery.Deplete(oldPos, r.Position, dt)

	r.hitRechargeStation = false
}

// Accept handles the tick's collision outcome. The sensor always sees the
// event so a miss clears it. Entity bumps cost charge unless the robot is
// on the recharge station this tick; walls cost neither charge nor speed.
func (r *Robot) Accept(e *event.CollisionEvent) {
	r.sensorTouch.Accept(e)
	if !e.Collided {
		return
	}
	if !r.hitRechargeStation && !e.CollidedWithWall {
		r.battery.Accept(e)
	}
	if !e.CollidedWithWall {
		r.motionHandler.SlowForBump()
	}
}

// AcceptRecharge fills the battery
func (r *Robot) AcceptRecharge(_ *event.RechargeEvent) {
	r.battery.Recharge()
}

// EventCmd forwards a user command to the motion handler
func (r *Robot) EventCmd(cmd event.Command) {
	r.motionHandler.AcceptCommand(cmd)
}

// Reset restores the robot to its constructed state
func (r *Robot) Reset() {
	r.resetBase()
	r.battery.Reset()
	r.motionHandler.Reset()
	r.sensorTouch.Reset()
	r.hitRechargeStation = false
}

// Render draws the robot
func (r *Robot) Render(rd Renderer) {
	rd.RenderRobot(r)
}
