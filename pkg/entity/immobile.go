package entity

import (
	"image/color"

	"github.com/opd-ai/go-robotarena/pkg/physics"
)

// ImmobileParams describes a stationary entity at construction time
type ImmobileParams struct {
	Radius   float64
	Position physics.Vector2D
	Color    color.RGBA
}

type immobile struct {
	BaseEntity
}

func (i *immobile) IsMobile() bool { return false }
func (i *immobile) TimestepUpdate(dt float64) {}
func (i *immobile) Reset() { i.resetBase() }

// RechargeStation refills the robot's battery on contact
type RechargeStation struct {
	immobile
}

// NewRechargeStation creates a recharge station and draws its id from ids
func NewRechargeStation(ids *IDAllocator, p ImmobileParams) *RechargeStation {
	return &RechargeStation{immobile{newBaseEntity(ids, KindRechargeStation, p.Radius, p.Position, p.Color)}}
}

// Render draws the recharge station
func (s *RechargeStation) Render(r Renderer) {
	r.RenderRechargeStation(s)
}

// Obstacle blocks movement and costs the robot charge on contact
type Obstacle struct {
	immobile
}

// NewObstacle creates an obstacle and draws its id from ids
func NewObstacle(ids *IDAllocator, p ImmobileParams) *Obstacle {
	return &Obstacle{immobile{newBaseEntity(ids, KindObstacle, p.Radius, p.Position, p.Color)}}
}

// Render draws the obstacle
func (o *Obstacle) Render(r Renderer) {
	r.RenderObstacle(o)
}
