package arena

import (
	"math"

	"github.com/opd-ai/go-robotarena/pkg/entity"
	"github.com/opd-ai/go-robotarena/pkg/event"
	"github.com/opd-ai/go-robotarena/pkg/physics"
)

// CheckForEntityOutOfBounds fills e if ent touches a wall. Walls are tested
// right, left, bottom, top and only the first match is reported.
//
// Two behaviours are kept as-is: the left wall only sets the angle when
// x <= width, and the top wall reports its contact at y = height.
func (a *Arena) CheckForEntityOutOfBounds(ent entity.Mobile, e *event.CollisionEvent) {
	pos := ent.GetPosition()
	r := ent.GetRadius()

	switch {
	case pos.X+r >= a.width:
		a.wallContact(e, physics.Vector2D{X: a.width, Y: pos.Y})
		e.AngleOfContact = ent.HeadingAngle() - 180
	case pos.X-r <= 0:
		a.wallContact(e, physics.Vector2D{X: 0, Y: pos.Y})
		if pos.X <= a.width {
			e.AngleOfContact = ent.HeadingAngle() + 180
		}
	case pos.Y+r >= a.height:
		a.wallContact(e, physics.Vector2D{X: pos.X, Y: a.height})
		e.AngleOfContact = ent.HeadingAngle()
	case pos.Y-r <= 0:
		a.wallContact(e, physics.Vector2D{X: pos.X, Y: a.height})
		e.AngleOfContact = ent.HeadingAngle()
	default:
		e.Collided = false
	}
}

func (a *Arena) wallContact(e *event.CollisionEvent, p physics.Vector2D) {
	e.Collided = true
	e.CollidedWithWall = true
	e.PointOfContact = p
}

// CheckForEntityCollision fills e with the contact between a and b. The
// collided flag is symmetric in a and b; the point and angle are computed
// from a's side.
func (a *Arena) CheckForEntityCollision(ent1, ent2 entity.Entity, e *event.CollisionEvent, delta float64) {
	p1, p2 := ent1.GetPosition(), ent2.GetPosition()
	r1, r2 := ent1.GetRadius(), ent2.GetRadius()

	if !ent1.Collider().CollidesWithin(ent2.Collider(), delta) {
		e.Collided = false
		e.PointOfContact = p1
		return
	}

	e.Collided = true
	e.AngleOfContact = physics.Rad2Deg(ContactAngle(p1, p2))
	e.PointOfContact = physics.Vector2D{
		X: (p1.X*r2 + p2.X*r1) / (r1 + r2),
		Y: (p1.Y*r2 + p2.Y*r1) / (r1 + r2),
	}
}

// ContactAngle returns, in radians, the angle a mobile entity at p1 is
// reflected from when it touches something at p2.
func ContactAngle(p1, p2 physics.Vector2D) float64 {
	dx := p2.X - p1.X
	dy := p1.Y - p2.Y
	switch {
	case dx == 0:
		return math.Pi + dy*math.Pi/2
	case p1.X > p2.X:
		return math.Atan(dy / dx)
	default:
		return math.Atan(dy/dx) + math.Pi
	}
}
