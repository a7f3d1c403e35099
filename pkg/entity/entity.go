// pkg/entity/entity.go
package entity

import (
	"fmt"
	"image/color"

	"github.com/opd-ai/go-robotarena/pkg/event"
	"github.com/opd-ai/go-robotarena/pkg/physics"
)

// ID is a per-kind sequential identifier
type ID int

// Kind tags the concrete entity variant
type Kind int

const (
	KindRobot Kind = iota
	KindHomeBase
	KindRechargeStation
	KindObstacle
)

func (k Kind) String() string {
	switch k {
	case KindRobot:
		return "Robot"
	case KindHomeBase:
		return "HomeBase"
	case KindRechargeStation:
		return "RechargeStation"
	case KindObstacle:
		return "Obstacle"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Entity is the capability set shared by every arena object
type Entity interface {
	GetID() ID
	GetKind() Kind
	Name() string
	GetPosition() physics.Vector2D
	GetRadius() float64
	GetColor() color.RGBA
	Collider() physics.Circle
	IsMobile() bool
	TimestepUpdate(dt float64)
	Reset()
	Render(r Renderer)
}

// Mobile is implemented by entities that move on their own and receive
// collision feedback from the arena.
type Mobile interface {
	Entity
	HeadingAngle() float64
	Speed() float64
	CollisionDelta() float64
	Accept(e *event.CollisionEvent)
}

// BaseEntity contains common functionality for all entities
type BaseEntity struct {
	ID       ID
	Kind     Kind
	Position physics.Vector2D
	Radius   float64
	Color    color.RGBA

	initial physics.Vector2D
	ids     *IDAllocator
}

func newBaseEntity(ids *IDAllocator, kind Kind, radius float64, pos physics.Vector2D, c color.RGBA) BaseEntity {
	return BaseEntity{
		ID:       ids.Next(kind),
		Kind:     kind,
		Position: pos,
		Radius:   radius,
		Color:    c,
		initial:  pos,
		ids:      ids,
	}
}

// GetID returns the entity's identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// GetKind returns the entity variant
func (e *BaseEntity) GetKind() Kind {
	return e.Kind
}

// Name returns the display name, e.g. "Obstacle3"
func (e *BaseEntity) Name() string {
	return fmt.Sprintf("%s%d", e.Kind, e.ID)
}

// GetPosition returns the entity's position
func (e *BaseEntity) GetPosition() physics.Vector2D {
	return e.Position
}

// SetPosition moves the entity
func (e *BaseEntity) SetPosition(p physics.Vector2D) {
	e.Position = p
}

// GetRadius returns the entity's radius
func (e *BaseEntity) GetRadius() float64 {
	return e.Radius
}

// GetColor returns the entity's draw color
func (e *BaseEntity) GetColor() color.RGBA {
	return e.Color
}

// Collider returns the entity's collision shape
func (e *BaseEntity) Collider() physics.Circle {
	return physics.Circle{
		Center: e.Position,
		Radius: e.Radius,
	}
}

// resetBase puts the entity back where it was built and draws a fresh id.
// The arena zeroes the allocator first, so ids come out as they did at
// construction.
func (e *BaseEntity) resetBase() {
	e.Position = e.initial
	if e.ids != nil {
		e.ID = e.ids.Next(e.Kind)
	}
}
